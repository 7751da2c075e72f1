package errpath

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/goccy/go-json"
)

// jsonMember is one member of a JSON object, in input order.
type jsonMember struct {
	key   string
	value any
}

type jsonObject struct {
	members []jsonMember
}

// JSONSource is a [Deserializer] over a parsed JSON document. The document
// is parsed eagerly by [NewJSONSource]; object member order is preserved
// and numbers stay textual until a visitor asks for them.
//
// JSON is self describing, so scalar decode kinds dispatch on the actual
// value and let the visitor reject shapes it does not expect.
type JSONSource struct {
	value any
}

var _ Deserializer = JSONSource{}

func NewJSONSource(data []byte) (JSONSource, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	value, err := parseJSONValue(dec)
	if err != nil {
		return JSONSource{}, err
	}

	// the document must contain exactly one value
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return JSONSource{}, errors.New("trailing data after JSON value")
	}

	return JSONSource{value: value}, nil
}

func parseJSONValue(dec *json.Decoder) (any, error) {
	token, err := dec.Token()
	if err != nil {
		return nil, err
	}

	return parseJSONToken(dec, token)
}

func parseJSONToken(dec *json.Decoder, token json.Token) (any, error) {
	delim, ok := token.(json.Delim)
	if !ok {
		// nil, bool, string or json.Number
		return token, nil
	}

	switch delim {
	case '{':
		return parseJSONObject(dec)

	case '[':
		return parseJSONArray(dec)

	default:
		return nil, fmt.Errorf("unexpected token %q", delim.String())
	}
}

func parseJSONObject(dec *json.Decoder) (*jsonObject, error) {
	object := &jsonObject{}

	for {
		token, err := dec.Token()
		if err != nil {
			return nil, err
		}

		if delim, ok := token.(json.Delim); ok && delim == '}' {
			return object, nil
		}

		key, ok := token.(string)
		if !ok {
			return nil, fmt.Errorf("unexpected object key %v", token)
		}

		value, err := parseJSONValue(dec)
		if err != nil {
			return nil, err
		}

		object.members = append(object.members, jsonMember{key: key, value: value})
	}
}

func parseJSONArray(dec *json.Decoder) ([]any, error) {
	values := []any{}

	for {
		token, err := dec.Token()
		if err != nil {
			return nil, err
		}

		if delim, ok := token.(json.Delim); ok && delim == ']' {
			return values, nil
		}

		value, err := parseJSONToken(dec, token)
		if err != nil {
			return nil, err
		}

		values = append(values, value)
	}
}

func (s JSONSource) DecodeAny(v Visitor) (any, error) {
	switch value := s.value.(type) {
	case nil:
		return v.VisitNil()

	case bool:
		return v.VisitBool(value)

	case string:
		return v.VisitString(value)

	case json.Number:
		return visitJSONNumber(v, value)

	case []any:
		return v.VisitSeq(&jsonSeqAccess{values: value})

	case *jsonObject:
		return v.VisitMap(&jsonMapAccess{members: value.members})

	default:
		return nil, fmt.Errorf("unexpected JSON value of type %T", value)
	}
}

// visitJSONNumber picks the narrowest callback the textual number fits
// into, in the order signed integer, unsigned integer, float.
func visitJSONNumber(v Visitor, number json.Number) (any, error) {
	text := number.String()

	if value, err := strconv.ParseInt(text, 10, 64); err == nil {
		return v.VisitInt(value)
	}

	if value, err := strconv.ParseUint(text, 10, 64); err == nil {
		return v.VisitUint(value)
	}

	value, err := number.Float64()
	if err != nil {
		return nil, fmt.Errorf("parse number %q: %w", text, err)
	}

	return v.VisitFloat(value)
}

func (s JSONSource) DecodeBool(v Visitor) (any, error)    { return s.DecodeAny(v) }
func (s JSONSource) DecodeInt8(v Visitor) (any, error)    { return s.DecodeAny(v) }
func (s JSONSource) DecodeInt16(v Visitor) (any, error)   { return s.DecodeAny(v) }
func (s JSONSource) DecodeInt32(v Visitor) (any, error)   { return s.DecodeAny(v) }
func (s JSONSource) DecodeInt64(v Visitor) (any, error)   { return s.DecodeAny(v) }
func (s JSONSource) DecodeInt(v Visitor) (any, error)     { return s.DecodeAny(v) }
func (s JSONSource) DecodeUint8(v Visitor) (any, error)   { return s.DecodeAny(v) }
func (s JSONSource) DecodeUint16(v Visitor) (any, error)  { return s.DecodeAny(v) }
func (s JSONSource) DecodeUint32(v Visitor) (any, error)  { return s.DecodeAny(v) }
func (s JSONSource) DecodeUint64(v Visitor) (any, error)  { return s.DecodeAny(v) }
func (s JSONSource) DecodeUint(v Visitor) (any, error)    { return s.DecodeAny(v) }
func (s JSONSource) DecodeFloat32(v Visitor) (any, error) { return s.DecodeAny(v) }
func (s JSONSource) DecodeFloat64(v Visitor) (any, error) { return s.DecodeAny(v) }
func (s JSONSource) DecodeString(v Visitor) (any, error)  { return s.DecodeAny(v) }
func (s JSONSource) DecodeBytes(v Visitor) (any, error)   { return s.DecodeAny(v) }
func (s JSONSource) DecodeUnit(v Visitor) (any, error)    { return s.DecodeAny(v) }

func (s JSONSource) DecodeUnitStruct(name string, v Visitor) (any, error) {
	return s.DecodeAny(v)
}

func (s JSONSource) DecodeNewtypeStruct(name string, v Visitor) (any, error) {
	return v.VisitNewtypeStruct(s)
}

func (s JSONSource) DecodeOption(v Visitor) (any, error) {
	if s.value == nil {
		return v.VisitNil()
	}

	return v.VisitSome(s)
}

func (s JSONSource) DecodeSeq(v Visitor) (any, error) { return s.DecodeAny(v) }

func (s JSONSource) DecodeTuple(n int, v Visitor) (any, error) {
	return s.DecodeAny(v)
}

func (s JSONSource) DecodeTupleStruct(name string, n int, v Visitor) (any, error) {
	return s.DecodeAny(v)
}

func (s JSONSource) DecodeMap(v Visitor) (any, error) { return s.DecodeAny(v) }

func (s JSONSource) DecodeStruct(name string, fields []string, v Visitor) (any, error) {
	return s.DecodeAny(v)
}

// DecodeEnum decodes a plain string as a variant without payload and an
// object with a single member as a variant with payload.
func (s JSONSource) DecodeEnum(name string, variants []string, v Visitor) (any, error) {
	switch value := s.value.(type) {
	case string:
		return v.VisitEnum(jsonEnumAccess{variant: value})

	case *jsonObject:
		if len(value.members) != 1 {
			return nil, fmt.Errorf("expected an object with a single member, got %d members", len(value.members))
		}

		member := value.members[0]
		return v.VisitEnum(jsonEnumAccess{variant: member.key, payload: member.value, hasPayload: true})

	default:
		return s.DecodeAny(v)
	}
}

func (s JSONSource) DecodeIdentifier(v Visitor) (any, error) { return s.DecodeAny(v) }

func (s JSONSource) DecodeIgnoredAny(v Visitor) (any, error) {
	// the value tree is already parsed, nothing to drain
	return v.VisitNil()
}

type jsonSeqAccess struct {
	values []any
}

func (a *jsonSeqAccess) NextElement(seed Seed) (any, bool, error) {
	if len(a.values) == 0 {
		return nil, false, nil
	}

	value := a.values[0]
	a.values = a.values[1:]

	val, err := seed.DecodeValue(JSONSource{value: value})
	return val, true, err
}

func (a *jsonSeqAccess) SizeHint() (int, bool) {
	return len(a.values), true
}

type jsonMapAccess struct {
	members []jsonMember
	pending any
}

func (a *jsonMapAccess) NextKey(seed Seed) (any, bool, error) {
	if len(a.members) == 0 {
		return nil, false, nil
	}

	member := a.members[0]
	a.members = a.members[1:]
	a.pending = member.value

	val, err := seed.DecodeValue(jsonKey(member.key))
	return val, true, err
}

func (a *jsonMapAccess) NextValue(seed Seed) (any, error) {
	return seed.DecodeValue(JSONSource{value: a.pending})
}

func (a *jsonMapAccess) SizeHint() (int, bool) {
	return len(a.members), true
}

type jsonEnumAccess struct {
	variant    string
	payload    any
	hasPayload bool
}

func (a jsonEnumAccess) Variant(seed Seed) (any, VariantAccess, error) {
	val, err := seed.DecodeValue(JSONSource{value: a.variant})
	if err != nil {
		return nil, nil, err
	}

	return val, jsonVariantAccess{payload: a.payload, hasPayload: a.hasPayload}, nil
}

type jsonVariantAccess struct {
	payload    any
	hasPayload bool
}

func (a jsonVariantAccess) UnitVariant() error {
	if a.hasPayload {
		return errors.New("unexpected variant payload")
	}

	return nil
}

func (a jsonVariantAccess) NewtypeVariant(seed Seed) (any, error) {
	if !a.hasPayload {
		return nil, errors.New("missing variant payload")
	}

	return seed.DecodeValue(JSONSource{value: a.payload})
}

func (a jsonVariantAccess) TupleVariant(n int, v Visitor) (any, error) {
	if !a.hasPayload {
		return nil, errors.New("missing variant payload")
	}

	return JSONSource{value: a.payload}.DecodeTuple(n, v)
}

func (a jsonVariantAccess) StructVariant(fields []string, v Visitor) (any, error) {
	if !a.hasPayload {
		return nil, errors.New("missing variant payload")
	}

	return JSONSource{value: a.payload}.DecodeStruct("", fields, v)
}

// jsonKey decodes an object key. JSON keys are always strings on the wire,
// so the numeric and boolean decode kinds coerce from the text.
type jsonKey string

var _ Deserializer = jsonKey("")

func (k jsonKey) DecodeAny(v Visitor) (any, error) {
	return v.VisitString(string(k))
}

func (k jsonKey) DecodeBool(v Visitor) (any, error) {
	value, err := strconv.ParseBool(string(k))
	if err != nil {
		return nil, &InvalidTypeError{Got: describeString(string(k)), Want: v.Expecting()}
	}

	return v.VisitBool(value)
}

func (k jsonKey) decodeInt(v Visitor) (any, error) {
	value, err := strconv.ParseInt(string(k), 10, 64)
	if err != nil {
		return nil, &InvalidTypeError{Got: describeString(string(k)), Want: v.Expecting()}
	}

	return v.VisitInt(value)
}

func (k jsonKey) decodeUint(v Visitor) (any, error) {
	value, err := strconv.ParseUint(string(k), 10, 64)
	if err != nil {
		return nil, &InvalidTypeError{Got: describeString(string(k)), Want: v.Expecting()}
	}

	return v.VisitUint(value)
}

func (k jsonKey) decodeFloat(v Visitor) (any, error) {
	value, err := strconv.ParseFloat(string(k), 64)
	if err != nil {
		return nil, &InvalidTypeError{Got: describeString(string(k)), Want: v.Expecting()}
	}

	return v.VisitFloat(value)
}

func (k jsonKey) DecodeInt8(v Visitor) (any, error)    { return k.decodeInt(v) }
func (k jsonKey) DecodeInt16(v Visitor) (any, error)   { return k.decodeInt(v) }
func (k jsonKey) DecodeInt32(v Visitor) (any, error)   { return k.decodeInt(v) }
func (k jsonKey) DecodeInt64(v Visitor) (any, error)   { return k.decodeInt(v) }
func (k jsonKey) DecodeInt(v Visitor) (any, error)     { return k.decodeInt(v) }
func (k jsonKey) DecodeUint8(v Visitor) (any, error)   { return k.decodeUint(v) }
func (k jsonKey) DecodeUint16(v Visitor) (any, error)  { return k.decodeUint(v) }
func (k jsonKey) DecodeUint32(v Visitor) (any, error)  { return k.decodeUint(v) }
func (k jsonKey) DecodeUint64(v Visitor) (any, error)  { return k.decodeUint(v) }
func (k jsonKey) DecodeUint(v Visitor) (any, error)    { return k.decodeUint(v) }
func (k jsonKey) DecodeFloat32(v Visitor) (any, error) { return k.decodeFloat(v) }
func (k jsonKey) DecodeFloat64(v Visitor) (any, error) { return k.decodeFloat(v) }

func (k jsonKey) DecodeString(v Visitor) (any, error) { return v.VisitString(string(k)) }
func (k jsonKey) DecodeBytes(v Visitor) (any, error)  { return v.VisitString(string(k)) }

func (k jsonKey) DecodeOption(v Visitor) (any, error) { return v.VisitSome(k) }
func (k jsonKey) DecodeUnit(v Visitor) (any, error)   { return k.DecodeAny(v) }

func (k jsonKey) DecodeUnitStruct(name string, v Visitor) (any, error) {
	return k.DecodeAny(v)
}

func (k jsonKey) DecodeNewtypeStruct(name string, v Visitor) (any, error) {
	return v.VisitNewtypeStruct(k)
}

func (k jsonKey) DecodeSeq(v Visitor) (any, error) { return k.DecodeAny(v) }

func (k jsonKey) DecodeTuple(n int, v Visitor) (any, error) {
	return k.DecodeAny(v)
}

func (k jsonKey) DecodeTupleStruct(name string, n int, v Visitor) (any, error) {
	return k.DecodeAny(v)
}

func (k jsonKey) DecodeMap(v Visitor) (any, error) { return k.DecodeAny(v) }

func (k jsonKey) DecodeStruct(name string, fields []string, v Visitor) (any, error) {
	return k.DecodeAny(v)
}

func (k jsonKey) DecodeEnum(name string, variants []string, v Visitor) (any, error) {
	return v.VisitEnum(jsonEnumAccess{variant: string(k)})
}

func (k jsonKey) DecodeIdentifier(v Visitor) (any, error) { return v.VisitString(string(k)) }

func (k jsonKey) DecodeIgnoredAny(v Visitor) (any, error) { return v.VisitNil() }
