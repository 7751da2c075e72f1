package errpath

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestJSONObjectKeepsMemberOrder(t *testing.T) {
	source := mustJSON(t, `{"z": 1, "a": 2, "m": 3}`)

	object := source.value.(*jsonObject)

	var keys []string
	for _, member := range object.members {
		keys = append(keys, member.key)
	}

	require.Equal(t, []string{"z", "a", "m"}, keys)
}

func TestJSONNumberDispatch(t *testing.T) {
	decodeAny := func(text string) any {
		val, err := mustJSON(t, text).DecodeAny(valueVisitor{VisitorBase{Expect: "any value"}})
		require.NoError(t, err)
		return val
	}

	require.Equal(t, int64(1), decodeAny(`1`))
	require.Equal(t, int64(-3), decodeAny(`-3`))
	require.Equal(t, 2.5, decodeAny(`2.5`))

	// does not fit into int64, falls over to the unsigned callback
	require.Equal(t, uint64(math.MaxUint64), decodeAny(`18446744073709551615`))
}

func TestJSONTrailingData(t *testing.T) {
	_, err := NewJSONSource([]byte(`1 2`))
	require.Error(t, err)
}

func TestJSONInvalidDocument(t *testing.T) {
	_, err := NewJSONSource([]byte(`{"a":`))
	require.Error(t, err)
}

func TestJSONOption(t *testing.T) {
	val, err := mustJSON(t, `null`).DecodeOption(ignoredVisitor{})
	require.NoError(t, err)
	require.Nil(t, val)

	rec := optionRecorder{}
	val, err = mustJSON(t, `5`).DecodeOption(rec)
	require.NoError(t, err)
	require.Equal(t, int64(5), val)
}

type optionRecorder struct {
	VisitorBase
}

func (optionRecorder) VisitNil() (any, error) {
	return nil, nil
}

func (optionRecorder) VisitSome(de Deserializer) (any, error) {
	return de.DecodeAny(valueVisitor{VisitorBase{Expect: "any value"}})
}

func TestJSONEnumForms(t *testing.T) {
	// a plain string is a variant without payload
	shape, err := UnmarshalNew[Shape](mustJSON(t, `"point"`))
	require.NoError(t, err)
	require.Equal(t, Shape{Kind: "point"}, shape)

	// a single member object carries the payload
	shape, err = UnmarshalNew[Shape](mustJSON(t, `{"circle": 1.5}`))
	require.NoError(t, err)
	require.Equal(t, Shape{Kind: "circle", Radius: 1.5}, shape)

	// more than one member is ambiguous
	_, err = UnmarshalNew[Shape](mustJSON(t, `{"circle": 1.5, "point": null}`))
	require.Error(t, err)
}

func TestJSONKeyCoercion(t *testing.T) {
	value, err := UnmarshalNew[map[int64]string](mustJSON(t, `{"1": "one", "2": "two"}`))
	require.NoError(t, err)
	require.Equal(t, map[int64]string{1: "one", 2: "two"}, value)

	// a key that is no integer fails on the key, not the value
	_, err = UnmarshalNew[map[int64]string](mustJSON(t, `{"x": "ex"}`))

	var typeErr *InvalidTypeError
	require.ErrorAs(t, err, &typeErr)
	require.Equal(t, `string "x"`, typeErr.Got)
}

func TestJSONIgnoredAny(t *testing.T) {
	// unknown struct members are dropped without error
	type Small struct {
		A int64 `json:"a"`
	}

	value, err := UnmarshalNew[Small](mustJSON(t, `{"junk": {"deep": [1, 2]}, "a": 7}`))
	require.NoError(t, err)
	require.Equal(t, Small{A: 7}, value)
}
