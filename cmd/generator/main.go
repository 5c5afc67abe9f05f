// Command generator writes the type descriptors of a module for the simpledic container.
//
// It is meant to be run with go:generate from the file declaring the registry struct:
//
//	//go:generate go run github.com/a-peyrard/simpledic/cmd/generator
//	type Registry struct {
//		simpledic.EmptyRegistry
//	}
//
// Every function of the module annotated with @component, and every interface annotated with
// @interface, is described in the generated <file>_gen.go. Parameters followed by a
// `// @inject optional=true` comment are flagged optional.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/a-peyrard/simpledic/slices"
	"github.com/rs/zerolog"
)

func findModuleRoot(dir string) string {
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break // reached root
		}
		dir = parent
	}
	return "."
}

func outputPathFor(targetFilePath string, dryRun bool) string {
	outputPath := filepath.Join(
		filepath.Dir(targetFilePath),
		strings.TrimSuffix(filepath.Base(targetFilePath), ".go")+"_gen.go",
	)
	if dryRun {
		outputPath = filepath.Join(os.TempDir(), filepath.Base(outputPath))
	}
	return outputPath
}

func run(logger *zerolog.Logger, targetFilePath string, dryRun bool) (string, error) {
	startScan := time.Now()

	// scan the whole module, not only the package triggering the generation
	result, err := scanModule(logger, findModuleRoot(filepath.Dir(targetFilePath)), targetFilePath)
	if err != nil {
		return "", err
	}
	if result.Registry == nil {
		return "", fmt.Errorf(
			"no registry struct found in %s, make sure you have a struct like this:\ntype Registry struct {\n    simpledic.EmptyRegistry\n}",
			targetFilePath,
		)
	}

	logger.Info().Msgf("👨‍🔧 Registry found: %+v", *result.Registry)
	logger.Info().Msgf("🎯 %d interfaces found in the module", len(result.Interfaces))
	logger.Debug().Msgf("Interfaces:\n%s", strings.Join(slices.Map(result.Interfaces, InterfaceDefinition.String), "\n----\n"))
	logger.Info().Msgf("🎯 %d components found in the module", len(result.Components))
	logger.Debug().Msgf("Components:\n%s", strings.Join(slices.Map(result.Components, ComponentDefinition.String), "\n----\n"))
	logger.Info().Msgf("🕵️‍♂️ Scanning completed in %s", time.Since(startScan))

	code, err := generateCode(result)
	if err != nil {
		return "", err
	}
	outputPath := outputPathFor(targetFilePath, dryRun)
	if err := os.WriteFile(outputPath, code, 0o644); err != nil {
		return "", fmt.Errorf("failed to write %s:\n\t%w", outputPath, err)
	}
	return outputPath, nil
}

func main() {
	dryRun := os.Getenv("DRY_RUN") == "true"

	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.DateTime}).
		Level(zerolog.DebugLevel).
		With().
		Timestamp().
		Logger()

	// capture the target file, where the generator is invoked
	targetFile := os.Getenv("GOFILE")
	if targetFile == "" {
		logger.Error().Msg("GOFILE is not set, the generator must be run with go:generate")
		os.Exit(1)
	}
	currentDir, _ := os.Getwd()
	targetFilePath := filepath.Join(currentDir, targetFile)

	outputPath, err := run(&logger, targetFilePath, dryRun)
	if err != nil {
		logger.Error().Err(err).Str("package", os.Getenv("GOPACKAGE")).Msg("Failed to generate code")
		os.Exit(1)
	}
	logger.Info().Msgf("✅ Code generated successfully in %s", outputPath)
}
