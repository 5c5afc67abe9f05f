package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/a-peyrard/simpledic/slices"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fixtureDir = "testdata/app"

func Test_scanModule(t *testing.T) {
	t.Run("it should find the registry, the components and the interfaces of the module", func(t *testing.T) {
		// GIVEN
		logger := zerolog.Nop()

		// WHEN
		result, err := scanModule(&logger, fixtureDir, filepath.Join(fixtureDir, "registry.go"))

		// THEN
		require.NoError(t, err)
		require.NotNil(t, result.Registry)
		assert.Equal(t, RegistryDefinition{PackageName: "app", ImportPath: "example.com/app", StructName: "Registry"}, *result.Registry)

		components := slices.Map(result.Components, func(c ComponentDefinition) string { return c.FnName })
		assert.ElementsMatch(t, []string{"NewApp", "NewPoliteGreeter", "NewSystem"}, components)
		interfaces := slices.Map(result.Interfaces, func(i InterfaceDefinition) string { return i.TypeName })
		assert.ElementsMatch(t, []string{"Named", "Greeter", "Clock"}, interfaces)
	})

	t.Run("it should read the annotation of the components", func(t *testing.T) {
		// GIVEN
		logger := zerolog.Nop()

		// WHEN
		result, err := scanModule(&logger, fixtureDir, filepath.Join(fixtureDir, "registry.go"))

		// THEN
		require.NoError(t, err)
		greeter := findComponent(t, result, "NewPoliteGreeter")
		assert.Equal(t, "example.com/app/greeter", greeter.ImportPath)
		assert.Equal(t, "NewPoliteGreeter builds a greeter\nsaying hello politely.", greeter.Description)
		assert.Equal(t, []string{"app.Greeter", "app.Named"}, greeter.Implements)
		assert.Equal(t, []ParamDefinition{{Name: "clock"}, {Name: "prefix", Optional: true}}, greeter.Params)

		system := findComponent(t, result, "NewSystem")
		assert.Equal(t, "clock.system", system.ID)
		assert.Empty(t, system.Params)
	})

	t.Run("it should not find a registry outside of the target file", func(t *testing.T) {
		// GIVEN
		logger := zerolog.Nop()

		// WHEN
		result, err := scanModule(&logger, fixtureDir, filepath.Join(fixtureDir, "greeter", "greeter.go"))

		// THEN
		require.NoError(t, err)
		assert.Nil(t, result.Registry)
	})
}

func Test_run(t *testing.T) {
	t.Run("it should generate the registry descriptors next to the target file", func(t *testing.T) {
		// GIVEN
		logger := zerolog.Nop()
		projectDir := t.TempDir()
		require.NoError(t, copyDir(fixtureDir, projectDir))

		// WHEN
		outputPath, err := run(&logger, filepath.Join(projectDir, "registry.go"), false)

		// THEN
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(projectDir, "registry_gen.go"), outputPath)
		code, err := os.ReadFile(outputPath)
		require.NoError(t, err)
		generated := string(code)
		assert.Contains(t, generated, "func (Registry) Describe(reg *simpledic.Registry) error {")
		assert.Contains(t, generated, "simpledic.DescribeInterface[Named](reg, simpledic.WithID(\"app.Named\")),")
		assert.Contains(t, generated, "simpledic.DescribeInterface[clock.Clock](reg),")
		assert.Contains(t, generated, "simpledic.DescribeConstructor(reg, NewApp, simpledic.ParamNames(\"greeter\")),")
		assert.Contains(t, generated, "simpledic.DescribeConstructor(reg, clock.NewSystem, simpledic.WithID(\"clock.system\")),")
		assert.Contains(t, generated,
			"simpledic.DescribeConstructor(reg, greeter.NewPoliteGreeter, simpledic.ParamNames(\"clock\", \"prefix\"), simpledic.OptionalParams(1), simpledic.Implements(\"app.Greeter\", \"app.Named\")),")
		assert.NotContains(t, generated, "NotAComponent")
	})

	t.Run("it should fail without registry", func(t *testing.T) {
		// GIVEN
		logger := zerolog.Nop()
		projectDir := t.TempDir()
		require.NoError(t, copyDir(fixtureDir, projectDir))

		// WHEN
		_, err := run(&logger, filepath.Join(projectDir, "clock", "clock.go"), false)

		// THEN
		assert.ErrorContains(t, err, "no registry struct found")
	})
}

func Test_outputPathFor(t *testing.T) {
	t.Run("it should write next to the target file", func(t *testing.T) {
		assert.Equal(t, filepath.Join("a", "b", "registry_gen.go"), outputPathFor(filepath.Join("a", "b", "registry.go"), false))
	})

	t.Run("it should write in the temp dir on dry run", func(t *testing.T) {
		assert.Equal(t, filepath.Join(os.TempDir(), "registry_gen.go"), outputPathFor(filepath.Join("a", "b", "registry.go"), true))
	})
}

func findComponent(t *testing.T, result *ScanResult, fnName string) ComponentDefinition {
	t.Helper()
	for _, c := range result.Components {
		if c.FnName == fnName {
			return c
		}
	}
	require.FailNow(t, "component not found", fnName)
	return ComponentDefinition{}
}

func copyDir(src, dst string) error {
	return filepath.Walk(src, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if strings.HasSuffix(path, "_gen.go") {
			return nil
		}

		relPath, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		dstPath := filepath.Join(dst, relPath)

		if info.IsDir() {
			return os.MkdirAll(dstPath, info.Mode())
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		return os.WriteFile(dstPath, data, info.Mode())
	})
}
