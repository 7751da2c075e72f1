package errpath

import (
	"fmt"
	"reflect"
	"strconv"
)

type boolVisitor struct{ VisitorBase }

func (boolVisitor) VisitBool(v bool) (any, error) {
	return v, nil
}

// intVisitor decodes a signed integer of the given width. Values always
// narrow to int64 here; the range check enforces the actual target width.
type intVisitor struct {
	VisitorBase
	bits int
}

func (v intVisitor) VisitInt(value int64) (any, error) {
	if v.bits < 64 {
		limit := int64(1) << (v.bits - 1)
		if value < -limit || value >= limit {
			return nil, fmt.Errorf("invalid value %d: %w", value, strconv.ErrRange)
		}
	}

	return value, nil
}

func (v intVisitor) VisitUint(value uint64) (any, error) {
	limit := uint64(1) << (v.bits - 1)
	if value >= limit {
		return nil, fmt.Errorf("invalid value %d: %w", value, strconv.ErrRange)
	}

	return int64(value), nil
}

type uintVisitor struct {
	VisitorBase
	bits int
}

func (v uintVisitor) VisitUint(value uint64) (any, error) {
	if v.bits < 64 {
		limit := uint64(1) << v.bits
		if value >= limit {
			return nil, fmt.Errorf("invalid value %d: %w", value, strconv.ErrRange)
		}
	}

	return value, nil
}

func (v uintVisitor) VisitInt(value int64) (any, error) {
	if value < 0 {
		return nil, fmt.Errorf("invalid value %d: %w", value, strconv.ErrRange)
	}

	return v.VisitUint(uint64(value))
}

type floatVisitor struct{ VisitorBase }

func (floatVisitor) VisitFloat(v float64) (any, error) {
	return v, nil
}

func (floatVisitor) VisitInt(v int64) (any, error) {
	return float64(v), nil
}

func (floatVisitor) VisitUint(v uint64) (any, error) {
	return float64(v), nil
}

type stringVisitor struct{ VisitorBase }

func (stringVisitor) VisitString(v string) (any, error) {
	return v, nil
}

type bytesVisitor struct{ VisitorBase }

func (bytesVisitor) VisitBytes(v []byte) (any, error) {
	return v, nil
}

func (bytesVisitor) VisitString(v string) (any, error) {
	return []byte(v), nil
}

// optionVisitor maps an absent value to nil and a present one to a
// reflect.Value holding a freshly allocated pointer.
type optionVisitor struct {
	VisitorBase
	pointee reflect.Type
	set     setter
}

func (optionVisitor) VisitNil() (any, error) {
	return nil, nil
}

func (v optionVisitor) VisitSome(de Deserializer) (any, error) {
	ptr := reflect.New(v.pointee)
	if err := v.set(de, ptr.Elem()); err != nil {
		return nil, err
	}

	return ptr, nil
}

type sliceVisitor struct {
	VisitorBase
	ty  reflect.Type
	set setter
}

func (v sliceVisitor) VisitSeq(seq SeqAccess) (any, error) {
	capacity, _ := seq.SizeHint()
	slice := reflect.MakeSlice(v.ty, 0, capacity)

	for {
		element := reflect.New(v.ty.Elem()).Elem()

		_, ok, err := seq.NextElement(setterSeed{set: v.set, target: element})
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}

		slice = reflect.Append(slice, element)
	}

	return slice, nil
}

type arrayVisitor struct {
	VisitorBase
	set    setter
	target reflect.Value
}

func (v arrayVisitor) VisitSeq(seq SeqAccess) (any, error) {
	for idx := 0; idx < v.target.Len(); idx++ {
		_, ok, err := seq.NextElement(setterSeed{set: v.set, target: v.target.Index(idx)})
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, nil
		}
	}

	// drain elements beyond the array length
	for {
		_, ok, err := seq.NextElement(ignoredSeed{})
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, nil
		}
	}
}

type mapVisitor struct {
	VisitorBase
	ty       reflect.Type
	setKey   setter
	setValue setter
}

func (v mapVisitor) VisitMap(m MapAccess) (any, error) {
	result := reflect.MakeMap(v.ty)

	for {
		key := reflect.New(v.ty.Key()).Elem()

		_, ok, err := m.NextKey(setterSeed{set: v.setKey, target: key})
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}

		value := reflect.New(v.ty.Elem()).Elem()
		if _, err := m.NextValue(setterSeed{set: v.setValue, target: value}); err != nil {
			return nil, err
		}

		result.SetMapIndex(key, value)
	}

	return result, nil
}

type structVisitor struct {
	VisitorBase
	fields   []field
	byName   map[string]int
	setters  []setter
	required bool
	target   reflect.Value
}

func (v structVisitor) VisitMap(m MapAccess) (any, error) {
	seen := make([]bool, len(v.fields))

	for {
		key, ok, err := m.NextKey(identifierSeed{})
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}

		idx, known := v.byName[key.(string)]
		if !known {
			if _, err := m.NextValue(ignoredSeed{}); err != nil {
				return nil, err
			}

			continue
		}

		seen[idx] = true

		fieldValue := v.target.FieldByIndex(v.fields[idx].Index)
		if _, err := m.NextValue(setterSeed{set: v.setters[idx], target: fieldValue}); err != nil {
			return nil, err
		}
	}

	if v.required {
		for idx, field := range v.fields {
			if !seen[idx] {
				return nil, &MissingFieldError{Field: field.Name}
			}
		}
	}

	return nil, nil
}

// enumVisitor feeds a tagged variant value to an [EnumUnmarshaler] target.
type enumVisitor struct {
	VisitorBase
	target EnumUnmarshaler
}

func (v enumVisitor) VisitEnum(e EnumAccess) (any, error) {
	name, access, err := e.Variant(identifierSeed{})
	if err != nil {
		return nil, err
	}

	return nil, v.target.UnmarshalEnum(name.(string), access)
}

// valueVisitor builds a dynamically typed representation: bool, int64,
// uint64, float64, string, []byte, nil, []any or map[string]any.
type valueVisitor struct{ VisitorBase }

func (valueVisitor) VisitBool(v bool) (any, error)     { return v, nil }
func (valueVisitor) VisitInt(v int64) (any, error)     { return v, nil }
func (valueVisitor) VisitUint(v uint64) (any, error)   { return v, nil }
func (valueVisitor) VisitFloat(v float64) (any, error) { return v, nil }
func (valueVisitor) VisitString(v string) (any, error) { return v, nil }
func (valueVisitor) VisitBytes(v []byte) (any, error)  { return v, nil }
func (valueVisitor) VisitNil() (any, error)            { return nil, nil }

func (v valueVisitor) VisitSome(de Deserializer) (any, error) {
	return de.DecodeAny(v)
}

func (v valueVisitor) VisitNewtypeStruct(de Deserializer) (any, error) {
	return de.DecodeAny(v)
}

func (v valueVisitor) VisitSeq(seq SeqAccess) (any, error) {
	values := []any{}

	for {
		val, ok, err := seq.NextElement(anySeed{})
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}

		values = append(values, val)
	}

	return values, nil
}

func (v valueVisitor) VisitMap(m MapAccess) (any, error) {
	values := map[string]any{}

	for {
		key, ok, err := m.NextKey(anySeed{})
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}

		val, err := m.NextValue(anySeed{})
		if err != nil {
			return nil, err
		}

		name, ok := key.(string)
		if !ok {
			name = fmt.Sprint(key)
		}

		values[name] = val
	}

	return values, nil
}

// ignoredVisitor accepts any value and throws it away. Composites are
// drained so the backend stays positioned correctly.
type ignoredVisitor struct{}

func (ignoredVisitor) Expecting() string { return "any value" }

func (ignoredVisitor) VisitBool(bool) (any, error)     { return nil, nil }
func (ignoredVisitor) VisitInt(int64) (any, error)     { return nil, nil }
func (ignoredVisitor) VisitUint(uint64) (any, error)   { return nil, nil }
func (ignoredVisitor) VisitFloat(float64) (any, error) { return nil, nil }
func (ignoredVisitor) VisitString(string) (any, error) { return nil, nil }
func (ignoredVisitor) VisitBytes([]byte) (any, error)  { return nil, nil }
func (ignoredVisitor) VisitNil() (any, error)          { return nil, nil }

func (v ignoredVisitor) VisitSome(de Deserializer) (any, error) {
	return de.DecodeIgnoredAny(v)
}

func (v ignoredVisitor) VisitNewtypeStruct(de Deserializer) (any, error) {
	return de.DecodeIgnoredAny(v)
}

func (v ignoredVisitor) VisitSeq(seq SeqAccess) (any, error) {
	for {
		_, ok, err := seq.NextElement(ignoredSeed{})
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, nil
		}
	}
}

func (v ignoredVisitor) VisitMap(m MapAccess) (any, error) {
	for {
		_, ok, err := m.NextKey(ignoredSeed{})
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, nil
		}

		if _, err := m.NextValue(ignoredSeed{}); err != nil {
			return nil, err
		}
	}
}

func (v ignoredVisitor) VisitEnum(e EnumAccess) (any, error) {
	_, access, err := e.Variant(ignoredSeed{})
	if err != nil {
		return nil, err
	}

	return nil, access.UnitVariant()
}

// setterSeed runs a prepared setter against a reflect.Value target. The
// decoded value travels through the target, not the return value.
type setterSeed struct {
	set    setter
	target reflect.Value
}

func (s setterSeed) DecodeValue(de Deserializer) (any, error) {
	return nil, s.set(de, s.target)
}

type anySeed struct{}

func (anySeed) DecodeValue(de Deserializer) (any, error) {
	return de.DecodeAny(valueVisitor{VisitorBase{Expect: "any value"}})
}

type ignoredSeed struct{}

func (ignoredSeed) DecodeValue(de Deserializer) (any, error) {
	return de.DecodeIgnoredAny(ignoredVisitor{})
}

// identifierSeed decodes a field name or variant name as a string.
type identifierSeed struct{}

func (identifierSeed) DecodeValue(de Deserializer) (any, error) {
	return de.DecodeIdentifier(stringVisitor{VisitorBase{Expect: "an identifier"}})
}
