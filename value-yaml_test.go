package errpath

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func mustYAML(t *testing.T, text string) YAMLSource {
	t.Helper()

	source, err := NewYAMLSource([]byte(text))
	require.NoError(t, err)
	return source
}

func TestYAMLStruct(t *testing.T) {
	type Dependency struct {
		Version string `yaml:"version"`
	}

	type Package struct {
		Name         string                `yaml:"name"`
		Dependencies map[string]Dependency `yaml:"dependencies"`
	}

	source := mustYAML(t, `
name: demo
dependencies:
  serde:
    version: "1.0"
`)

	dec := NewDecoder().WithTag("yaml")

	pkg, err := UnmarshalNewWith[Package](dec, source)
	require.NoError(t, err)
	require.Equal(t, Package{
		Name: "demo",
		Dependencies: map[string]Dependency{
			"serde": {Version: "1.0"},
		},
	}, pkg)
}

func TestYAMLDeepErrorPath(t *testing.T) {
	type Dependency struct {
		Version string `yaml:"version"`
	}

	type Package struct {
		Dependencies map[string]Dependency `yaml:"dependencies"`
	}

	source := mustYAML(t, `
dependencies:
  serde:
    version: 1
`)

	dec := NewDecoder().WithTag("yaml")

	_, err := UnmarshalNewWith[Package](dec, source)

	var pathErr *Error
	require.ErrorAs(t, err, &pathErr)
	require.Equal(t, "dependencies.serde.version", pathErr.Path().String())
}

func TestYAMLSequenceErrorPath(t *testing.T) {
	type Container struct {
		Items []int64 `yaml:"items"`
	}

	source := mustYAML(t, `
items:
  - 1
  - 2
  - oops
`)

	dec := NewDecoder().WithTag("yaml")

	_, err := UnmarshalNewWith[Container](dec, source)

	var pathErr *Error
	require.ErrorAs(t, err, &pathErr)
	require.Equal(t, "items[2]", pathErr.Path().String())
}

func TestYAMLIntegerKeys(t *testing.T) {
	// unquoted integer keys arrive as integers, not strings
	value, err := UnmarshalNew[map[int64]bool](mustYAML(t, `
1: true
2: false
`))
	require.NoError(t, err)
	require.Equal(t, map[int64]bool{1: true, 2: false}, value)
}

func TestYAMLIntegerKeyErrorIsUnknown(t *testing.T) {
	_, err := UnmarshalNew[map[int64]bool](mustYAML(t, `
1: true
2: nope
`))

	var pathErr *Error
	require.ErrorAs(t, err, &pathErr)
	require.Equal(t, "?", pathErr.Path().String())
	require.True(t, pathErr.Path().OnlyUnknown())
}

func TestYAMLNullPointer(t *testing.T) {
	type Container struct {
		Value *string `yaml:"value"`
	}

	dec := NewDecoder().WithTag("yaml")

	container, err := UnmarshalNewWith[Container](dec, mustYAML(t, `value: null`))
	require.NoError(t, err)
	require.Nil(t, container.Value)

	container, err = UnmarshalNewWith[Container](dec, mustYAML(t, `value: x`))
	require.NoError(t, err)
	require.NotNil(t, container.Value)
	require.Equal(t, "x", *container.Value)
}

func TestYAMLAlias(t *testing.T) {
	type Config struct {
		First  string `yaml:"first"`
		Second string `yaml:"second"`
	}

	dec := NewDecoder().WithTag("yaml")

	config, err := UnmarshalNewWith[Config](dec, mustYAML(t, `
first: &shared hello
second: *shared
`))
	require.NoError(t, err)
	require.Equal(t, Config{First: "hello", Second: "hello"}, config)
}

func TestYAMLScalars(t *testing.T) {
	type Values struct {
		B bool    `yaml:"b"`
		I int32   `yaml:"i"`
		F float64 `yaml:"f"`
		S string  `yaml:"s"`
	}

	dec := NewDecoder().WithTag("yaml")

	values, err := UnmarshalNewWith[Values](dec, mustYAML(t, `
b: true
i: -12
f: 2.5
s: hello
`))
	require.NoError(t, err)
	require.Equal(t, Values{B: true, I: -12, F: 2.5, S: "hello"}, values)
}

func TestYAMLEnum(t *testing.T) {
	dec := NewDecoder().WithTag("yaml")

	shape, err := UnmarshalNewWith[Shape](dec, mustYAML(t, `point`))
	require.NoError(t, err)
	require.Equal(t, Shape{Kind: "point"}, shape)

	shape, err = UnmarshalNewWith[Shape](dec, mustYAML(t, `circle: 2.5`))
	require.NoError(t, err)
	require.Equal(t, Shape{Kind: "circle", Radius: 2.5}, shape)

	shape, err = UnmarshalNewWith[Shape](dec, mustYAML(t, `
rect:
  w: 3
  h: 4
`))
	require.NoError(t, err)
	require.Equal(t, Shape{Kind: "rect", Width: 3, Height: 4}, shape)
}

func TestYAMLEnumStructVariantErrorPath(t *testing.T) {
	dec := NewDecoder().WithTag("yaml")

	_, err := UnmarshalNewWith[Shape](dec, mustYAML(t, `
rect:
  w: 1
  h: x
`))

	var pathErr *Error
	require.ErrorAs(t, err, &pathErr)
	require.Equal(t, "rect.h", pathErr.Path().String())
}

func TestYAMLEnumTupleVariantErrorPath(t *testing.T) {
	dec := NewDecoder().WithTag("yaml")

	_, err := UnmarshalNewWith[Shape](dec, mustYAML(t, `line: [1.5, x]`))

	var pathErr *Error
	require.ErrorAs(t, err, &pathErr)
	require.Equal(t, "line[1]", pathErr.Path().String())
}
