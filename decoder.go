package errpath

import (
	"encoding"
	"fmt"
	"reflect"
	"strconv"
	"sync"

	"golang.org/x/exp/constraints"
)

// Unmarshal decodes source into the value pointed to by target using the
// default [Decoder]. On failure the returned error is an [*Error] carrying
// the path of the value that could not be decoded.
func Unmarshal(source Deserializer, target any) error {
	return dec.Unmarshal(source, target)
}

func UnmarshalNew[T any](source Deserializer) (T, error) {
	return UnmarshalNewWith[T](&dec, source)
}

func UnmarshalNewWith[T any](dec *Decoder, source Deserializer) (T, error) {
	var target T
	err := dec.Unmarshal(source, &target)
	return target, err
}

// EnumUnmarshaler is implemented by targets that decode themselves from a
// tagged variant value. UnmarshalEnum receives the variant name and the
// access for the variant's payload; it must call exactly one of the access
// methods.
type EnumUnmarshaler interface {
	UnmarshalEnum(variant string, access VariantAccess) error
}

// A setter fills target with a value decoded from de
type setter func(de Deserializer, target reflect.Value) error

// A set of types that are currently in construction
type typeSet map[reflect.Type]struct{}

var tyTextUnmarshaler = reflect.TypeFor[encoding.TextUnmarshaler]()
var tyEnumUnmarshaler = reflect.TypeFor[EnumUnmarshaler]()
var tyByteSlice = reflect.TypeFor[[]byte]()
var tyAny = reflect.TypeFor[any]()

// The default Decoder instance.
var dec Decoder

// Decoder can be used to customize unmarshalling. This type is typesafe.
type Decoder struct {
	// the struct tag that is used
	structTag string

	// Cache for setters, indexed by reflect.Type
	setterCache sync.Map

	// Require values for all struct fields. Set to true to fail with a
	// MissingFieldError if a field has no value in the input.
	requireValues bool
}

func NewDecoder() *Decoder {
	return &Decoder{
		structTag: "json",
	}
}

func (d *Decoder) WithTag(structTag string) *Decoder {
	if d.structTag == structTag {
		return d
	}

	return &Decoder{
		structTag:     structTag,
		requireValues: d.requireValues,
	}
}

func (d *Decoder) RequireValues() *Decoder {
	if d.requireValues {
		return d
	}

	return &Decoder{
		structTag:     d.structTag,
		requireValues: true,
	}
}

func (d *Decoder) Unmarshal(source Deserializer, target any) error {
	targetValue := reflect.ValueOf(target).Elem()

	// build the setter for the targets type
	setter, err := d.setterOf(typeSet{}, targetValue.Type())
	if err != nil {
		return err
	}

	track := NewTrack()
	if err := setter(NewDeserializer(source, track), targetValue); err != nil {
		return &Error{path: track.Path(), err: err}
	}

	return nil
}

// Seed returns a [Seed] that decodes into the value pointed to by target.
// It lets [EnumUnmarshaler] implementations and custom visitors reuse the
// Decoder for nested values, e.g. for a variant payload.
func (d *Decoder) Seed(target any) Seed {
	return decoderSeed{dec: d, target: target}
}

// NewSeed returns a [Seed] bound to the default [Decoder]. See
// [Decoder.Seed].
func NewSeed(target any) Seed {
	return dec.Seed(target)
}

type decoderSeed struct {
	dec    *Decoder
	target any
}

func (s decoderSeed) DecodeValue(de Deserializer) (any, error) {
	targetValue := reflect.ValueOf(s.target).Elem()

	set, err := s.dec.setterOf(typeSet{}, targetValue.Type())
	if err != nil {
		return nil, err
	}

	return nil, set(de, targetValue)
}

func (d *Decoder) setterOf(inConstruction typeSet, ty reflect.Type) (setter, error) {
	if cached, ok := d.setterCache.Load(ty); ok {
		return cached.(setter), nil
	}

	if _, ok := inConstruction[ty]; ok {
		// detected a cycle. return a setter that does a cache lookup when executed.
		// we assume that the actual setter will be in the cache once this setter is executed.
		lazySetter := func(de Deserializer, target reflect.Value) error {
			cached, _ := d.setterCache.Load(ty)
			return cached.(setter)(de, target)
		}

		return lazySetter, nil
	}

	inConstruction[ty] = struct{}{}

	setter, err := d.makeSetterOf(inConstruction, ty)
	if err != nil {
		return nil, err
	}

	d.setterCache.Store(ty, setter)

	return setter, nil
}

func (d *Decoder) makeSetterOf(inConstruction typeSet, ty reflect.Type) (setter, error) {
	if reflect.PointerTo(ty).Implements(tyEnumUnmarshaler) {
		return setEnumUnmarshaler, nil
	}

	if reflect.PointerTo(ty).Implements(tyTextUnmarshaler) {
		return setTextUnmarshaler, nil
	}

	switch ty.Kind() {
	case reflect.Bool:
		return setBool, nil

	case reflect.Int:
		switch strconv.IntSize {
		case 32:
			return makeSetInt[int32](Deserializer.DecodeInt), nil
		case 64:
			return makeSetInt[int64](Deserializer.DecodeInt), nil
		default:
			panic("int must be 4 or 8 byte")
		}

	case reflect.Int8:
		return makeSetInt[int8](Deserializer.DecodeInt8), nil

	case reflect.Int16:
		return makeSetInt[int16](Deserializer.DecodeInt16), nil

	case reflect.Int32:
		return makeSetInt[int32](Deserializer.DecodeInt32), nil

	case reflect.Int64:
		return makeSetInt[int64](Deserializer.DecodeInt64), nil

	case reflect.Uint:
		switch strconv.IntSize {
		case 32:
			return makeSetUint[uint32](Deserializer.DecodeUint), nil
		case 64:
			return makeSetUint[uint64](Deserializer.DecodeUint), nil
		default:
			panic("uint must be 4 or 8 byte")
		}

	case reflect.Uint8:
		return makeSetUint[uint8](Deserializer.DecodeUint8), nil

	case reflect.Uint16:
		return makeSetUint[uint16](Deserializer.DecodeUint16), nil

	case reflect.Uint32:
		return makeSetUint[uint32](Deserializer.DecodeUint32), nil

	case reflect.Uint64:
		return makeSetUint[uint64](Deserializer.DecodeUint64), nil

	case reflect.Float32:
		return makeSetFloat(Deserializer.DecodeFloat32), nil

	case reflect.Float64:
		return makeSetFloat(Deserializer.DecodeFloat64), nil

	case reflect.String:
		return setString, nil

	case reflect.Pointer:
		return d.makeSetPointer(inConstruction, ty)

	case reflect.Struct:
		return d.makeSetStruct(inConstruction, ty)

	case reflect.Slice:
		if ty == tyByteSlice {
			return setBytes, nil
		}

		return d.makeSetSlice(inConstruction, ty)

	case reflect.Array:
		return d.makeSetArray(inConstruction, ty)

	case reflect.Map:
		return d.makeSetMap(inConstruction, ty)

	case reflect.Interface:
		if ty == tyAny {
			return setAny, nil
		}

		return nil, NotSupportedError{Type: ty}

	default:
		return nil, NotSupportedError{Type: ty}
	}
}

func (d *Decoder) makeSetStruct(inConstruction typeSet, ty reflect.Type) (setter, error) {
	structTag := d.structTag
	if structTag == "" {
		structTag = "json"
	}

	fields := fieldsToSerialize(ty, structTag)

	var names []string
	var setters []setter

	byName := map[string]int{}

	for idx, field := range fields {
		set, err := d.setterOf(inConstruction, field.Type)
		if err != nil {
			return nil, fmt.Errorf("setter for field %q: %w", field.Name, err)
		}

		names = append(names, field.Name)
		setters = append(setters, set)
		byName[field.Name] = idx
	}

	name := ty.Name()
	required := d.requireValues

	setter := func(de Deserializer, target reflect.Value) error {
		visitor := structVisitor{
			VisitorBase: VisitorBase{Expect: "a map"},
			fields:      fields,
			byName:      byName,
			setters:     setters,
			required:    required,
			target:      target,
		}

		_, err := de.DecodeStruct(name, names, visitor)
		return err
	}

	return setter, nil
}

func (d *Decoder) makeSetMap(inConstruction typeSet, ty reflect.Type) (setter, error) {
	keySetter, err := d.setterOf(inConstruction, ty.Key())
	if err != nil {
		return nil, fmt.Errorf("setter for key type %q: %w", ty, err)
	}

	valueSetter, err := d.setterOf(inConstruction, ty.Elem())
	if err != nil {
		return nil, fmt.Errorf("setter for value type %q: %w", ty, err)
	}

	visitor := mapVisitor{
		VisitorBase: VisitorBase{Expect: "a map"},
		ty:          ty,
		setKey:      keySetter,
		setValue:    valueSetter,
	}

	setter := func(de Deserializer, target reflect.Value) error {
		val, err := de.DecodeMap(visitor)
		if err != nil {
			return err
		}

		target.Set(val.(reflect.Value))
		return nil
	}

	return setter, nil
}

func (d *Decoder) makeSetSlice(inConstruction typeSet, ty reflect.Type) (setter, error) {
	elementSetter, err := d.setterOf(inConstruction, ty.Elem())
	if err != nil {
		return nil, fmt.Errorf("setter for element type %q: %w", ty, err)
	}

	visitor := sliceVisitor{
		VisitorBase: VisitorBase{Expect: "a sequence"},
		ty:          ty,
		set:         elementSetter,
	}

	setter := func(de Deserializer, target reflect.Value) error {
		val, err := de.DecodeSeq(visitor)
		if err != nil {
			return err
		}

		target.Set(val.(reflect.Value))
		return nil
	}

	return setter, nil
}

func (d *Decoder) makeSetArray(inConstruction typeSet, ty reflect.Type) (setter, error) {
	elementSetter, err := d.setterOf(inConstruction, ty.Elem())
	if err != nil {
		return nil, fmt.Errorf("setter for element type %q: %w", ty, err)
	}

	// number of elements in the array
	elementCount := ty.Len()

	setter := func(de Deserializer, target reflect.Value) error {
		visitor := arrayVisitor{
			VisitorBase: VisitorBase{Expect: "a sequence"},
			set:         elementSetter,
			target:      target,
		}

		_, err := de.DecodeTuple(elementCount, visitor)
		return err
	}

	return setter, nil
}

func (d *Decoder) makeSetPointer(inConstruction typeSet, ty reflect.Type) (setter, error) {
	pointeeType := ty.Elem()

	pointeeSetter, err := d.setterOf(inConstruction, pointeeType)
	if err != nil {
		return nil, err
	}

	visitor := optionVisitor{
		VisitorBase: VisitorBase{Expect: "an optional value"},
		pointee:     pointeeType,
		set:         pointeeSetter,
	}

	setter := func(de Deserializer, target reflect.Value) error {
		val, err := de.DecodeOption(visitor)
		if err != nil {
			return err
		}

		if val == nil {
			target.SetZero()
			return nil
		}

		target.Set(val.(reflect.Value))
		return nil
	}

	return setter, err
}

func setBool(de Deserializer, target reflect.Value) error {
	val, err := de.DecodeBool(boolVisitor{VisitorBase{Expect: "a boolean value"}})
	if err != nil {
		return err
	}

	target.SetBool(val.(bool))
	return nil
}

func makeSetInt[T constraints.Signed](decode func(Deserializer, Visitor) (any, error)) setter {
	bits := reflect.TypeFor[T]().Bits()

	visitor := intVisitor{
		VisitorBase: VisitorBase{Expect: fmt.Sprintf("a %d bit signed integer", bits)},
		bits:        bits,
	}

	return func(de Deserializer, target reflect.Value) error {
		val, err := decode(de, visitor)
		if err != nil {
			return err
		}

		target.SetInt(val.(int64))
		return nil
	}
}

func makeSetUint[T constraints.Unsigned](decode func(Deserializer, Visitor) (any, error)) setter {
	bits := reflect.TypeFor[T]().Bits()

	visitor := uintVisitor{
		VisitorBase: VisitorBase{Expect: fmt.Sprintf("a %d bit unsigned integer", bits)},
		bits:        bits,
	}

	return func(de Deserializer, target reflect.Value) error {
		val, err := decode(de, visitor)
		if err != nil {
			return err
		}

		target.SetUint(val.(uint64))
		return nil
	}
}

func makeSetFloat(decode func(Deserializer, Visitor) (any, error)) setter {
	visitor := floatVisitor{VisitorBase{Expect: "a floating point number"}}

	return func(de Deserializer, target reflect.Value) error {
		val, err := decode(de, visitor)
		if err != nil {
			return err
		}

		target.SetFloat(val.(float64))
		return nil
	}
}

func setString(de Deserializer, target reflect.Value) error {
	val, err := de.DecodeString(stringVisitor{VisitorBase{Expect: "a string"}})
	if err != nil {
		return err
	}

	target.SetString(val.(string))
	return nil
}

func setBytes(de Deserializer, target reflect.Value) error {
	val, err := de.DecodeBytes(bytesVisitor{VisitorBase{Expect: "a byte string"}})
	if err != nil {
		return err
	}

	target.SetBytes(val.([]byte))
	return nil
}

func setAny(de Deserializer, target reflect.Value) error {
	val, err := de.DecodeAny(valueVisitor{VisitorBase{Expect: "any value"}})
	if err != nil {
		return err
	}

	if val == nil {
		target.SetZero()
		return nil
	}

	target.Set(reflect.ValueOf(val))
	return nil
}

func setTextUnmarshaler(de Deserializer, target reflect.Value) error {
	val, err := de.DecodeString(stringVisitor{VisitorBase{Expect: "a string"}})
	if err != nil {
		return err
	}

	m := target.Addr().Interface().(encoding.TextUnmarshaler)
	return m.UnmarshalText([]byte(val.(string)))
}

func setEnumUnmarshaler(de Deserializer, target reflect.Value) error {
	m := target.Addr().Interface().(EnumUnmarshaler)

	visitor := enumVisitor{
		VisitorBase: VisitorBase{Expect: "an enum value"},
		target:      m,
	}

	_, err := de.DecodeEnum(target.Type().Name(), nil, visitor)
	return err
}
