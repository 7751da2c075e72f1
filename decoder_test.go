package errpath

import (
	"fmt"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func mustJSON(t *testing.T, text string) JSONSource {
	t.Helper()

	source, err := NewJSONSource([]byte(text))
	require.NoError(t, err)
	return source
}

// Tags decodes from a comma separated string via encoding.TextUnmarshaler
type Tags []string

func (t *Tags) UnmarshalText(text []byte) error {
	*t = strings.Split(string(text), ",")
	return nil
}

func TestUnmarshalStruct(t *testing.T) {
	type Address struct {
		City    string
		ZipCode int32 `json:"zip"`
	}

	//goland:noinspection ALL
	type Student struct {
		Name       string
		AgeInYears int64  `json:"age"`
		SkipThis   string `json:"-"`
		Tags       Tags
		Address    *Address
		Height     float32
		Accepted   bool

		// not exported, must not be set
		note string
	}

	source := mustJSON(t, `{
		"Name": "Albert",
		"age": 21,
		"Height": 1.76,
		"Tags": "foo,bar",
		"Accepted": true,
		"Address": {"City": "Zürich", "zip": 8015},
		"SkipThis": "FOOBAR"
	}`)

	stud, err := UnmarshalNew[Student](source)
	require.NoError(t, err)
	require.Equal(t, Student{
		Name:       "Albert",
		AgeInYears: 21,
		Tags:       Tags{"foo", "bar"},
		Height:     1.76,
		Accepted:   true,
		Address: &Address{
			City:    "Zürich",
			ZipCode: 8015,
		},
	}, stud)
}

func TestUnmarshalNestedMapErrorPath(t *testing.T) {
	type Dependency struct {
		Version string `json:"version"`
	}

	type Package struct {
		Name         string                `json:"name"`
		Dependencies map[string]Dependency `json:"dependencies"`
	}

	source := mustJSON(t, `{"name": "demo", "dependencies": {"serde": {"version": 1}}}`)

	_, err := UnmarshalNew[Package](source)

	var pathErr *Error
	require.ErrorAs(t, err, &pathErr)
	require.Equal(t, "dependencies.serde.version", pathErr.Path().String())

	var typeErr *InvalidTypeError
	require.ErrorAs(t, err, &typeErr)
	require.Equal(t, "integer 1", typeErr.Got)
	require.Equal(t, "a string", typeErr.Want)

	require.Equal(t, "dependencies.serde.version: invalid type: integer 1, expected a string", err.Error())
}

func TestUnmarshalSliceErrorPath(t *testing.T) {
	type Container struct {
		Items []int64 `json:"items"`
	}

	source := mustJSON(t, `{"items": [1, 2, "x"]}`)

	_, err := UnmarshalNew[Container](source)

	var pathErr *Error
	require.ErrorAs(t, err, &pathErr)
	require.Equal(t, "items[2]", pathErr.Path().String())
}

func TestUnmarshalTopLevelSliceErrorPath(t *testing.T) {
	source := mustJSON(t, `[1, "x", 3]`)

	_, err := UnmarshalNew[[]int8](source)

	var pathErr *Error
	require.ErrorAs(t, err, &pathErr)
	require.Equal(t, "[1]", pathErr.Path().String())
}

func TestUnmarshalNonStringKeyErrorPath(t *testing.T) {
	source := mustJSON(t, `{"1": true, "2": "nope"}`)

	_, err := UnmarshalNew[map[int64]bool](source)

	var pathErr *Error
	require.ErrorAs(t, err, &pathErr)
	require.Equal(t, "?", pathErr.Path().String())
	require.True(t, pathErr.Path().OnlyUnknown())
}

func TestUnmarshalIntRange(t *testing.T) {
	type Container struct {
		N int8 `json:"n"`
	}

	source := mustJSON(t, `{"n": 300}`)

	_, err := UnmarshalNew[Container](source)
	require.ErrorIs(t, err, strconv.ErrRange)

	var pathErr *Error
	require.ErrorAs(t, err, &pathErr)
	require.Equal(t, "n", pathErr.Path().String())
}

func TestUnmarshalUintRejectsNegative(t *testing.T) {
	source := mustJSON(t, `{"n": -1}`)

	type Container struct {
		N uint16 `json:"n"`
	}

	_, err := UnmarshalNew[Container](source)
	require.ErrorIs(t, err, strconv.ErrRange)
}

func TestUnmarshalPointer(t *testing.T) {
	type Container struct {
		Value *string `json:"value"`
	}

	first, err := UnmarshalNew[Container](mustJSON(t, `{"value": "x"}`))
	require.NoError(t, err)
	require.NotNil(t, first.Value)
	require.Equal(t, "x", *first.Value)

	second, err := UnmarshalNew[Container](mustJSON(t, `{"value": null}`))
	require.NoError(t, err)
	require.Nil(t, second.Value)
}

func TestUnmarshalAny(t *testing.T) {
	source := mustJSON(t, `{"a": [1, 2.5, "x", null, true]}`)

	value, err := UnmarshalNew[any](source)
	require.NoError(t, err)
	require.Equal(t, map[string]any{
		"a": []any{int64(1), 2.5, "x", nil, true},
	}, value)
}

func TestUnmarshalArray(t *testing.T) {
	values, err := UnmarshalNew[[4]int32](mustJSON(t, `[1, 2, 3, 4, 5, 6]`))
	require.NoError(t, err)
	require.Equal(t, [4]int32{1, 2, 3, 4}, values)

	// short input fills a prefix
	values, err = UnmarshalNew[[4]int32](mustJSON(t, `[1, 2]`))
	require.NoError(t, err)
	require.Equal(t, [4]int32{1, 2, 0, 0}, values)
}

func TestUnmarshalByteSlice(t *testing.T) {
	value, err := UnmarshalNew[[]byte](mustJSON(t, `"hello"`))
	require.NoError(t, err)
	require.Equal(t, []byte("hello"), value)
}

func TestRequireValuesMissingFieldPath(t *testing.T) {
	type Variant struct {
		Type  string `json:"type"`
		Model string `json:"model"`
	}

	type Config struct {
		Variants map[string]Variant `json:"variants"`
	}

	source := mustJSON(t, `{"variants": {"my_variant": {"model": "m-one"}}}`)

	dec := NewDecoder().RequireValues()
	_, err := UnmarshalNewWith[Config](dec, source)

	var missing *MissingFieldError
	require.ErrorAs(t, err, &missing)
	require.Equal(t, "type", missing.Field)

	// the path points at the missing field among its siblings
	var pathErr *Error
	require.ErrorAs(t, err, &pathErr)
	require.Equal(t, "variants.my_variant.type", pathErr.Path().String())
}

func TestRequireValuesSatisfied(t *testing.T) {
	type Variant struct {
		Type string `json:"type"`
	}

	dec := NewDecoder().RequireValues()

	value, err := UnmarshalNewWith[Variant](dec, mustJSON(t, `{"type": "circle"}`))
	require.NoError(t, err)
	require.Equal(t, Variant{Type: "circle"}, value)
}

func TestNaming_JsonTagExplicit(t *testing.T) {
	type Struct struct {
		A string
		B string `json:"A"`
	}

	value, err := UnmarshalNew[Struct](mustJSON(t, `{"A": "first"}`))
	require.NoError(t, err)
	require.Equal(t, Struct{B: "first"}, value)
}

func TestNaming_Embedded(t *testing.T) {
	type Base struct {
		Id   int64
		Name string
	}

	type Extended struct {
		Base
		Name string
	}

	value, err := UnmarshalNew[Extended](mustJSON(t, `{"Id": 3, "Name": "outer"}`))
	require.NoError(t, err)
	require.Equal(t, Extended{Base: Base{Id: 3}, Name: "outer"}, value)
}

func TestDecoderIsReusable(t *testing.T) {
	dec := NewDecoder()

	for idx := range 3 {
		value, err := UnmarshalNewWith[int64](dec, mustJSON(t, strconv.Itoa(idx)))
		require.NoError(t, err)
		require.Equal(t, int64(idx), value)
	}
}

func TestUnmarshalRecursiveType(t *testing.T) {
	type Node struct {
		Value int64 `json:"value"`
		Next  *Node `json:"next"`
	}

	source := mustJSON(t, `{"value": 1, "next": {"value": 2, "next": null}}`)

	node, err := UnmarshalNew[Node](source)
	require.NoError(t, err)
	require.Equal(t, Node{Value: 1, Next: &Node{Value: 2}}, node)
}

// Shape decodes from a tagged variant value, either a plain variant name
// or a single member object with the payload.
type Shape struct {
	Kind   string
	Radius float64

	// rect payload
	Width  int64
	Height int64

	// line payload
	From float64
	To   float64
}

func (s *Shape) UnmarshalEnum(variant string, access VariantAccess) error {
	switch variant {
	case "point":
		s.Kind = "point"
		return access.UnitVariant()

	case "circle":
		s.Kind = "circle"
		_, err := access.NewtypeVariant(NewSeed(&s.Radius))
		return err

	case "rect":
		s.Kind = "rect"
		visitor := rectVisitor{VisitorBase: VisitorBase{Expect: "a rect payload"}, shape: s}
		_, err := access.StructVariant([]string{"w", "h"}, visitor)
		return err

	case "line":
		s.Kind = "line"
		visitor := lineVisitor{VisitorBase: VisitorBase{Expect: "a line payload"}, shape: s}
		_, err := access.TupleVariant(2, visitor)
		return err

	default:
		return fmt.Errorf("unknown variant %q", variant)
	}
}

// rectVisitor decodes the struct shaped payload of the rect variant.
type rectVisitor struct {
	VisitorBase
	shape *Shape
}

func (v rectVisitor) VisitMap(m MapAccess) (any, error) {
	for {
		var key string
		_, ok, err := m.NextKey(NewSeed(&key))
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, nil
		}

		switch key {
		case "w":
			if _, err := m.NextValue(NewSeed(&v.shape.Width)); err != nil {
				return nil, err
			}

		case "h":
			if _, err := m.NextValue(NewSeed(&v.shape.Height)); err != nil {
				return nil, err
			}

		default:
			if _, err := m.NextValue(ignoredSeed{}); err != nil {
				return nil, err
			}
		}
	}
}

// lineVisitor decodes the tuple shaped payload of the line variant.
type lineVisitor struct {
	VisitorBase
	shape *Shape
}

func (v lineVisitor) VisitSeq(seq SeqAccess) (any, error) {
	if _, _, err := seq.NextElement(NewSeed(&v.shape.From)); err != nil {
		return nil, err
	}

	if _, _, err := seq.NextElement(NewSeed(&v.shape.To)); err != nil {
		return nil, err
	}

	return nil, nil
}

func TestUnmarshalEnumUnitVariant(t *testing.T) {
	shape, err := UnmarshalNew[Shape](mustJSON(t, `"point"`))
	require.NoError(t, err)
	require.Equal(t, Shape{Kind: "point"}, shape)
}

func TestUnmarshalEnumNewtypeVariant(t *testing.T) {
	shape, err := UnmarshalNew[Shape](mustJSON(t, `{"circle": 3.5}`))
	require.NoError(t, err)
	require.Equal(t, Shape{Kind: "circle", Radius: 3.5}, shape)
}

func TestUnmarshalEnumStructVariant(t *testing.T) {
	shape, err := UnmarshalNew[Shape](mustJSON(t, `{"rect": {"w": 3, "h": 4}}`))
	require.NoError(t, err)
	require.Equal(t, Shape{Kind: "rect", Width: 3, Height: 4}, shape)
}

func TestUnmarshalEnumStructVariantErrorPath(t *testing.T) {
	_, err := UnmarshalNew[Shape](mustJSON(t, `{"rect": {"w": 1, "h": "x"}}`))

	// the failing member sits under the variant name
	var pathErr *Error
	require.ErrorAs(t, err, &pathErr)
	require.Equal(t, "rect.h", pathErr.Path().String())
}

func TestUnmarshalEnumTupleVariant(t *testing.T) {
	shape, err := UnmarshalNew[Shape](mustJSON(t, `{"line": [1.5, 2.5]}`))
	require.NoError(t, err)
	require.Equal(t, Shape{Kind: "line", From: 1.5, To: 2.5}, shape)
}

func TestUnmarshalEnumTupleVariantErrorPath(t *testing.T) {
	_, err := UnmarshalNew[Shape](mustJSON(t, `{"line": [1.5, "x"]}`))

	var pathErr *Error
	require.ErrorAs(t, err, &pathErr)
	require.Equal(t, "line[1]", pathErr.Path().String())
}

func TestUnmarshalEnumPayloadErrorPath(t *testing.T) {
	_, err := UnmarshalNew[Shape](mustJSON(t, `{"circle": "big"}`))

	var pathErr *Error
	require.ErrorAs(t, err, &pathErr)
	require.Equal(t, "circle", pathErr.Path().String())
}

func TestUnmarshalEnumNestedErrorPath(t *testing.T) {
	type Drawing struct {
		Shape Shape `json:"shape"`
	}

	_, err := UnmarshalNew[Drawing](mustJSON(t, `{"shape": {"circle": "big"}}`))

	var pathErr *Error
	require.ErrorAs(t, err, &pathErr)
	require.Equal(t, "shape.circle", pathErr.Path().String())
}

func TestUnmarshalNotSupported(t *testing.T) {
	_, err := UnmarshalNew[chan int](mustJSON(t, `1`))

	var notSupported NotSupportedError
	require.ErrorAs(t, err, &notSupported)
}
