package main

import (
	"bytes"
	"cmp"
	"fmt"
	"go/format"
	"go/token"
	"regexp"
	"slices"
	"strconv"
	"strings"
	"text/template"

	"github.com/a-peyrard/simpledic/set"
	sslices "github.com/a-peyrard/simpledic/slices"
)

var (
	nonIdentifierChars = regexp.MustCompile(`[^a-zA-Z0-9_]`)

	// names the generated code uses itself
	reservedAliases = []string{"errors", "simpledic", "reg"}

	registryTemplate = template.Must(template.New("registry").Parse(`// Code generated by simpledic generator. DO NOT EDIT.

package {{ .PackageName }}

import (
	"errors"

	"github.com/a-peyrard/simpledic"
{{- range .Imports }}
	{{ .Alias }} "{{ .Path }}"
{{- end }}
)

// Describe registers the annotated interfaces and components of the module.
func ({{ .StructName }}) Describe(reg *simpledic.Registry) error {
	return errors.Join(
{{- range .Entries }}
		{{ . }},
{{- end }}
	)
}
`))
)

type (
	importSpec struct {
		Alias string
		Path  string
	}

	templateData struct {
		PackageName string
		StructName  string
		Imports     []importSpec
		Entries     []string
	}
)

// generateCode renders the Describe method of the registry, gofmt-ed.
func generateCode(result *ScanResult) ([]byte, error) {
	if result.Registry == nil {
		return nil, fmt.Errorf("no registry struct found")
	}
	registry := result.Registry

	interfaces := slices.Clone(result.Interfaces)
	slices.SortStableFunc(interfaces, func(a, b InterfaceDefinition) int {
		return cmp.Or(cmp.Compare(a.ImportPath, b.ImportPath), cmp.Compare(a.TypeName, b.TypeName))
	})
	components := slices.Clone(result.Components)
	slices.SortStableFunc(components, func(a, b ComponentDefinition) int {
		return cmp.Or(cmp.Compare(a.ImportPath, b.ImportPath), cmp.Compare(a.FnName, b.FnName))
	})

	importWithAlias := map[string]string{registry.ImportPath: ""}
	usedAliases := set.NewWithValues(reservedAliases...)
	var imports []importSpec
	addImport := func(importPath string) {
		if _, found := importWithAlias[importPath]; found {
			return
		}
		alias := findSuitableAlias(importPath, usedAliases)
		usedAliases.Add(alias)
		importWithAlias[importPath] = alias
		imports = append(imports, importSpec{Alias: alias, Path: importPath})
	}

	data := templateData{
		PackageName: registry.PackageName,
		StructName:  registry.StructName,
	}
	for _, i := range interfaces {
		if i.ImportPath != registry.ImportPath && !token.IsExported(i.TypeName) {
			return nil, fmt.Errorf("interface %s.%s is not exported", i.ImportPath, i.TypeName)
		}
		addImport(i.ImportPath)
		data.Entries = append(data.Entries, fmt.Sprintf(
			"simpledic.DescribeInterface[%s](%s)",
			generateFQN(i.ImportPath, i.TypeName, importWithAlias),
			strings.Join(append([]string{"reg"}, interfaceOptions(i)...), ", "),
		))
	}
	for _, c := range components {
		if c.ImportPath != registry.ImportPath && !token.IsExported(c.FnName) {
			return nil, fmt.Errorf("component constructor %s.%s is not exported", c.ImportPath, c.FnName)
		}
		addImport(c.ImportPath)
		data.Entries = append(data.Entries, fmt.Sprintf(
			"simpledic.DescribeConstructor(%s)",
			strings.Join(append([]string{"reg", generateFQN(c.ImportPath, c.FnName, importWithAlias)}, componentOptions(c)...), ", "),
		))
	}
	data.Imports = imports

	var buf bytes.Buffer
	if err := registryTemplate.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("failed to render registry:\n\t%w", err)
	}
	code, err := format.Source(buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("failed to format generated code:\n\t%w\n%s", err, buf.String())
	}
	return code, nil
}

func interfaceOptions(i InterfaceDefinition) []string {
	if i.ID == "" {
		return nil
	}
	return []string{fmt.Sprintf("simpledic.WithID(%q)", i.ID)}
}

func componentOptions(c ComponentDefinition) []string {
	var opts []string
	if c.ID != "" {
		opts = append(opts, fmt.Sprintf("simpledic.WithID(%q)", c.ID))
	}
	if len(c.Params) > 0 {
		names := sslices.Map(c.Params, func(p ParamDefinition) string { return strconv.Quote(p.Name) })
		opts = append(opts, fmt.Sprintf("simpledic.ParamNames(%s)", strings.Join(names, ", ")))
	}
	var optional []string
	for idx, p := range c.Params {
		if p.Optional {
			optional = append(optional, strconv.Itoa(idx))
		}
	}
	if len(optional) > 0 {
		opts = append(opts, fmt.Sprintf("simpledic.OptionalParams(%s)", strings.Join(optional, ", ")))
	}
	if len(c.Implements) > 0 {
		ids := sslices.Map(c.Implements, strconv.Quote)
		opts = append(opts, fmt.Sprintf("simpledic.Implements(%s)", strings.Join(ids, ", ")))
	}
	return opts
}

// generateFQN qualifies a type or function name with the alias of its import path. Names from
// the registry package itself, or without import path, are left unqualified.
func generateFQN(importPath string, name string, importWithAlias map[string]string) string {
	alias := importWithAlias[importPath]
	if importPath == "" || alias == "" {
		return name
	}
	if strings.HasPrefix(name, "*") {
		return "*" + alias + "." + strings.TrimPrefix(name, "*")
	}
	return alias + "." + name
}

// findSuitableAlias derives a free import alias from the last element of the import path,
// prefixing it with the initial of the previous elements on collision, then adding a counter.
func findSuitableAlias(importPath string, usedAliases set.Set[string]) string {
	tokens := sslices.Map(strings.Split(importPath, "/"), func(token string) string {
		return nonIdentifierChars.ReplaceAllString(token, "")
	})

	alias := tokens[len(tokens)-1]
	if alias == "" || (alias[0] >= '0' && alias[0] <= '9') {
		alias = "p" + alias
	}
	if !usedAliases.Contains(alias) {
		return alias
	}
	for i := len(tokens) - 2; i >= 0; i-- {
		if tokens[i] == "" {
			continue
		}
		alias = tokens[i][:1] + alias
		if !usedAliases.Contains(alias) {
			return alias
		}
	}
	for counter := 0; ; counter++ {
		candidate := alias + strconv.Itoa(counter)
		if !usedAliases.Contains(candidate) {
			return candidate
		}
	}
}
