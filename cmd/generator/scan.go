package main

import (
	"fmt"
	"go/ast"
	"go/token"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/a-peyrard/simpledic/slices"
	"github.com/rs/zerolog"
	"golang.org/x/tools/go/packages"
)

const (
	componentAnnotationTag = "@component"
	interfaceAnnotationTag = "@interface"
	injectAnnotationTag    = "@inject"

	simpledicImportPath = "github.com/a-peyrard/simpledic"
	emptyRegistryName   = "EmptyRegistry"
)

type (
	ParamDefinition struct {
		Name     string
		Optional bool
	}

	ComponentDefinition struct {
		FnName      string
		ImportPath  string
		Description string
		ID          string
		Implements  []string
		Params      []ParamDefinition
	}

	InterfaceDefinition struct {
		TypeName    string
		ImportPath  string
		Description string
		ID          string
	}

	RegistryDefinition struct {
		PackageName string
		ImportPath  string
		StructName  string
	}

	ScanResult struct {
		Registry   *RegistryDefinition
		Components []ComponentDefinition
		Interfaces []InterfaceDefinition
	}
)

func (p ParamDefinition) String() string {
	if p.Optional {
		return p.Name + " (optional)"
	}
	return p.Name
}

func (c ComponentDefinition) String() string {
	return fmt.Sprintf(
		`✨ Component: %s
Description: %s
Import Path: %s
ID: %s
Implements: [%s]
Params: [%s]`,
		c.FnName,
		c.Description,
		c.ImportPath,
		c.ID,
		strings.Join(c.Implements, ", "),
		strings.Join(slices.Map(c.Params, ParamDefinition.String), ", "),
	)
}

func (i InterfaceDefinition) String() string {
	return fmt.Sprintf(
		`🔌 Interface: %s
Description: %s
Import Path: %s
ID: %s`,
		i.TypeName,
		i.Description,
		i.ImportPath,
		i.ID,
	)
}

// scanModule loads every package under dir and collects the annotated components and interfaces,
// and the registry struct declared in targetFile.
func scanModule(logger *zerolog.Logger, dir string, targetFile string) (*ScanResult, error) {
	cfg := &packages.Config{
		Mode: packages.NeedName | packages.NeedFiles | packages.NeedSyntax,
		Dir:  dir,
	}
	pkgs, err := packages.Load(cfg, "./...")
	if err != nil {
		return nil, fmt.Errorf("failed to load packages in %s:\n\t%w", dir, err)
	}

	targetFile, err = filepath.Abs(targetFile)
	if err != nil {
		return nil, err
	}

	result := &ScanResult{}
	for _, pkg := range pkgs {
		logger := logger.With().Str("package", pkg.PkgPath).Logger()
		logger.Debug().Msg("Scanning package")

		for _, file := range pkg.Syntax {
			filePath := pkg.Fset.Position(file.Pos()).Filename
			if filePath == targetFile {
				if registry := findRegistry(&logger, file, pkg.PkgPath); registry != nil {
					result.Registry = registry
				}
			}
			scanFile(&logger, pkg, file, result)
		}
	}

	return result, nil
}

// findRegistry looks for a struct embedding simpledic.EmptyRegistry.
func findRegistry(logger *zerolog.Logger, file *ast.File, importPath string) *RegistryDefinition {
	simpledicName, imported := importName(file, simpledicImportPath)
	if !imported {
		return nil
	}

	var registry *RegistryDefinition
	ast.Inspect(file, func(n ast.Node) bool {
		typeSpec, ok := n.(*ast.TypeSpec)
		if !ok {
			return true
		}
		structType, ok := typeSpec.Type.(*ast.StructType)
		if !ok {
			return true
		}
		for _, field := range structType.Fields.List {
			if len(field.Names) > 0 {
				continue
			}
			sel, ok := field.Type.(*ast.SelectorExpr)
			if !ok {
				continue
			}
			if ident, ok := sel.X.(*ast.Ident); ok && ident.Name == simpledicName && sel.Sel.Name == emptyRegistryName {
				logger.Debug().Str("struct", typeSpec.Name.Name).Msg("=> Found registry")
				registry = &RegistryDefinition{
					PackageName: file.Name.Name,
					ImportPath:  importPath,
					StructName:  typeSpec.Name.Name,
				}
				return false
			}
		}
		return true
	})
	return registry
}

func scanFile(logger *zerolog.Logger, pkg *packages.Package, file *ast.File, result *ScanResult) {
	for _, decl := range file.Decls {
		switch d := decl.(type) {
		case *ast.FuncDecl:
			if d.Doc == nil || d.Recv != nil || !hasAnnotation(d.Doc.Text(), componentAnnotationTag) {
				continue
			}
			logger := logger.With().Str("component", d.Name.Name).Logger()
			logger.Debug().Msg("=> Found component")

			annotation := parseTypeAnnotation(&logger, d.Doc.Text(), componentAnnotationTag)
			id, _ := annotation.ID()
			result.Components = append(result.Components, ComponentDefinition{
				FnName:      d.Name.Name,
				ImportPath:  pkg.PkgPath,
				Description: annotation.description,
				ID:          id,
				Implements:  annotation.Implements(),
				Params:      scanParams(&logger, pkg.Fset, file, d.Type.Params),
			})

		case *ast.GenDecl:
			if d.Tok != token.TYPE {
				continue
			}
			for _, spec := range d.Specs {
				typeSpec, ok := spec.(*ast.TypeSpec)
				if !ok {
					continue
				}
				if _, ok := typeSpec.Type.(*ast.InterfaceType); !ok {
					continue
				}
				// a single spec declaration carries its doc on the GenDecl
				doc := typeSpec.Doc
				if doc == nil && len(d.Specs) == 1 {
					doc = d.Doc
				}
				if doc == nil || !hasAnnotation(doc.Text(), interfaceAnnotationTag) {
					continue
				}
				logger := logger.With().Str("interface", typeSpec.Name.Name).Logger()
				logger.Debug().Msg("=> Found interface")

				annotation := parseTypeAnnotation(&logger, doc.Text(), interfaceAnnotationTag)
				id, _ := annotation.ID()
				result.Interfaces = append(result.Interfaces, InterfaceDefinition{
					TypeName:    typeSpec.Name.Name,
					ImportPath:  pkg.PkgPath,
					Description: annotation.description,
					ID:          id,
				})
			}
		}
	}
}

func scanParams(logger *zerolog.Logger, fset *token.FileSet, file *ast.File, params *ast.FieldList) []ParamDefinition {
	if params == nil {
		return nil
	}
	var definitions []ParamDefinition
	for _, param := range params.List {
		inject := parseInjectAnnotation(logger, findCommentForParam(fset, file, param))
		if len(param.Names) == 0 {
			definitions = append(definitions, ParamDefinition{Optional: inject.Optional()})
			continue
		}
		for _, name := range param.Names {
			definitions = append(definitions, ParamDefinition{Name: name.Name, Optional: inject.Optional()})
		}
	}
	return definitions
}

func findCommentForParam(fset *token.FileSet, file *ast.File, param *ast.Field) string {
	paramLine := fset.Position(param.End()).Line

	for _, commentGroup := range file.Comments {
		for _, comment := range commentGroup.List {
			if fset.Position(comment.Pos()).Line == paramLine {
				return comment.Text
			}
		}
	}
	return ""
}

// importName returns the name under which the file imports the path.
func importName(file *ast.File, path string) (string, bool) {
	for _, imp := range file.Imports {
		importPath, err := strconv.Unquote(imp.Path.Value)
		if err != nil || importPath != path {
			continue
		}
		if imp.Name != nil {
			return imp.Name.Name, true
		}
		return path[strings.LastIndex(path, "/")+1:], true
	}
	return "", false
}
