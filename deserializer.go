package errpath

// Deserializer is the abstract interface to a visitor driven decoding
// backend. A backend walks its serialized input and, once it has classified
// the shape of the next value, hands the value to the matching callback of
// the supplied [Visitor].
//
// There is one method per decode kind. Self describing backends (such as
// the bundled [JSONSource] and [YAMLSource]) are free to ignore the
// requested kind and dispatch on the actual value; the visitor then rejects
// shapes it does not expect. Backends for non self describing formats use
// the requested kind to know what to parse next.
//
// The decorator returned by [NewDeserializer] implements this interface as
// well, so it is substitutable anywhere a plain backend is expected.
type Deserializer interface {
	// DecodeAny asks the backend to classify the next value itself.
	DecodeAny(v Visitor) (any, error)

	DecodeBool(v Visitor) (any, error)

	DecodeInt8(v Visitor) (any, error)
	DecodeInt16(v Visitor) (any, error)
	DecodeInt32(v Visitor) (any, error)
	DecodeInt64(v Visitor) (any, error)
	DecodeInt(v Visitor) (any, error)

	DecodeUint8(v Visitor) (any, error)
	DecodeUint16(v Visitor) (any, error)
	DecodeUint32(v Visitor) (any, error)
	DecodeUint64(v Visitor) (any, error)
	DecodeUint(v Visitor) (any, error)

	DecodeFloat32(v Visitor) (any, error)
	DecodeFloat64(v Visitor) (any, error)

	DecodeString(v Visitor) (any, error)
	DecodeBytes(v Visitor) (any, error)

	// DecodeOption decodes an optional value. An absent value is reported
	// via [Visitor.VisitNil], a present one via [Visitor.VisitSome].
	DecodeOption(v Visitor) (any, error)

	// DecodeUnit decodes a value that carries no information.
	DecodeUnit(v Visitor) (any, error)
	DecodeUnitStruct(name string, v Visitor) (any, error)

	// DecodeNewtypeStruct decodes a named single value wrapper. The wrapper
	// is transparent for error localization.
	DecodeNewtypeStruct(name string, v Visitor) (any, error)

	DecodeSeq(v Visitor) (any, error)
	DecodeTuple(n int, v Visitor) (any, error)
	DecodeTupleStruct(name string, n int, v Visitor) (any, error)

	DecodeMap(v Visitor) (any, error)

	// DecodeStruct decodes a record with a known set of field names. The
	// value is still delivered through [Visitor.VisitMap].
	DecodeStruct(name string, fields []string, v Visitor) (any, error)

	// DecodeEnum decodes a tagged variant value. The value is delivered
	// through [Visitor.VisitEnum].
	DecodeEnum(name string, variants []string, v Visitor) (any, error)

	// DecodeIdentifier decodes a field name or variant name.
	DecodeIdentifier(v Visitor) (any, error)

	// DecodeIgnoredAny consumes and discards the next value.
	DecodeIgnoredAny(v Visitor) (any, error)
}

// Visitor receives the decoded value once the [Deserializer] has classified
// its shape. Scalar callbacks carry the value directly; composite callbacks
// hand over a nested Deserializer or an access object to iterate with.
//
// Implementations usually embed a [VisitorBase] and override only the
// callbacks they expect; everything else then fails with an
// [InvalidTypeError].
type Visitor interface {
	// Expecting names the value this visitor expects, e.g. "a string".
	// It is used to build error messages.
	Expecting() string

	VisitBool(v bool) (any, error)
	VisitInt(v int64) (any, error)
	VisitUint(v uint64) (any, error)
	VisitFloat(v float64) (any, error)
	VisitString(v string) (any, error)
	VisitBytes(v []byte) (any, error)

	// VisitNil reports an absent or null value.
	VisitNil() (any, error)

	// VisitSome reports a present optional value. The nested value has not
	// been decoded yet; decode it through de.
	VisitSome(de Deserializer) (any, error)

	// VisitNewtypeStruct reports a single value wrapper.
	VisitNewtypeStruct(de Deserializer) (any, error)

	VisitSeq(seq SeqAccess) (any, error)
	VisitMap(m MapAccess) (any, error)
	VisitEnum(e EnumAccess) (any, error)
}

// Seed is a parameterized decode step: "decode the next value, with some
// context already fixed". Seeds are used for sequence elements, map keys
// and values, and enum variant payloads.
type Seed interface {
	DecodeValue(de Deserializer) (any, error)
}

// SeqAccess iterates the elements of a sequence during [Visitor.VisitSeq].
type SeqAccess interface {
	// NextElement decodes the next element with seed. It reports ok=false
	// when the sequence is exhausted; in that case the seed was not called.
	NextElement(seed Seed) (any, bool, error)

	// SizeHint returns the number of remaining elements, if known.
	SizeHint() (int, bool)
}

// MapAccess iterates the entries of a map during [Visitor.VisitMap]. Keys
// and values are decoded in alternation; every NextKey reporting ok=true
// must be followed by exactly one NextValue.
type MapAccess interface {
	NextKey(seed Seed) (any, bool, error)
	NextValue(seed Seed) (any, error)

	// SizeHint returns the number of remaining entries, if known.
	SizeHint() (int, bool)
}

// EnumAccess decodes a tagged variant value during [Visitor.VisitEnum].
type EnumAccess interface {
	// Variant decodes the variant tag with seed and returns the access for
	// the variant's payload.
	Variant(seed Seed) (any, VariantAccess, error)
}

// VariantAccess decodes the payload of one enum variant. Exactly one of the
// methods must be called, matching the variant's shape.
type VariantAccess interface {
	UnitVariant() error
	NewtypeVariant(seed Seed) (any, error)
	TupleVariant(n int, v Visitor) (any, error)
	StructVariant(fields []string, v Visitor) (any, error)
}

// DeserializerBase is a [Deserializer] base to embed into custom backends.
// Every decode kind fails with [ErrNotSupported]; override the kinds your
// backend can deliver.
type DeserializerBase struct{}

var _ Deserializer = DeserializerBase{}

func (DeserializerBase) DecodeAny(Visitor) (any, error)     { return nil, ErrNotSupported }
func (DeserializerBase) DecodeBool(Visitor) (any, error)    { return nil, ErrNotSupported }
func (DeserializerBase) DecodeInt8(Visitor) (any, error)    { return nil, ErrNotSupported }
func (DeserializerBase) DecodeInt16(Visitor) (any, error)   { return nil, ErrNotSupported }
func (DeserializerBase) DecodeInt32(Visitor) (any, error)   { return nil, ErrNotSupported }
func (DeserializerBase) DecodeInt64(Visitor) (any, error)   { return nil, ErrNotSupported }
func (DeserializerBase) DecodeInt(Visitor) (any, error)     { return nil, ErrNotSupported }
func (DeserializerBase) DecodeUint8(Visitor) (any, error)   { return nil, ErrNotSupported }
func (DeserializerBase) DecodeUint16(Visitor) (any, error)  { return nil, ErrNotSupported }
func (DeserializerBase) DecodeUint32(Visitor) (any, error)  { return nil, ErrNotSupported }
func (DeserializerBase) DecodeUint64(Visitor) (any, error)  { return nil, ErrNotSupported }
func (DeserializerBase) DecodeUint(Visitor) (any, error)    { return nil, ErrNotSupported }
func (DeserializerBase) DecodeFloat32(Visitor) (any, error) { return nil, ErrNotSupported }
func (DeserializerBase) DecodeFloat64(Visitor) (any, error) { return nil, ErrNotSupported }
func (DeserializerBase) DecodeString(Visitor) (any, error)  { return nil, ErrNotSupported }
func (DeserializerBase) DecodeBytes(Visitor) (any, error)   { return nil, ErrNotSupported }
func (DeserializerBase) DecodeOption(Visitor) (any, error)  { return nil, ErrNotSupported }
func (DeserializerBase) DecodeUnit(Visitor) (any, error)    { return nil, ErrNotSupported }

func (DeserializerBase) DecodeUnitStruct(string, Visitor) (any, error) {
	return nil, ErrNotSupported
}

func (DeserializerBase) DecodeNewtypeStruct(string, Visitor) (any, error) {
	return nil, ErrNotSupported
}

func (DeserializerBase) DecodeSeq(Visitor) (any, error) { return nil, ErrNotSupported }

func (DeserializerBase) DecodeTuple(int, Visitor) (any, error) {
	return nil, ErrNotSupported
}

func (DeserializerBase) DecodeTupleStruct(string, int, Visitor) (any, error) {
	return nil, ErrNotSupported
}

func (DeserializerBase) DecodeMap(Visitor) (any, error) { return nil, ErrNotSupported }

func (DeserializerBase) DecodeStruct(string, []string, Visitor) (any, error) {
	return nil, ErrNotSupported
}

func (DeserializerBase) DecodeEnum(string, []string, Visitor) (any, error) {
	return nil, ErrNotSupported
}

func (DeserializerBase) DecodeIdentifier(Visitor) (any, error) {
	return nil, ErrNotSupported
}

func (DeserializerBase) DecodeIgnoredAny(Visitor) (any, error) {
	return nil, ErrNotSupported
}

// VisitorBase is a [Visitor] that rejects every value with an
// [InvalidTypeError] mentioning Expect. It is useful as an embedded base
// for your own visitor implementations: override only the callbacks your
// target shape accepts.
type VisitorBase struct {
	Expect string
}

var _ Visitor = VisitorBase{}

func (b VisitorBase) Expecting() string {
	if b.Expect == "" {
		return "a value"
	}

	return b.Expect
}

func (b VisitorBase) reject(got string) (any, error) {
	return nil, &InvalidTypeError{Got: got, Want: b.Expecting()}
}

func (b VisitorBase) VisitBool(v bool) (any, error) {
	return b.reject(describeBool(v))
}

func (b VisitorBase) VisitInt(v int64) (any, error) {
	return b.reject(describeInt(v))
}

func (b VisitorBase) VisitUint(v uint64) (any, error) {
	return b.reject(describeUint(v))
}

func (b VisitorBase) VisitFloat(v float64) (any, error) {
	return b.reject(describeFloat(v))
}

func (b VisitorBase) VisitString(v string) (any, error) {
	return b.reject(describeString(v))
}

func (b VisitorBase) VisitBytes(v []byte) (any, error) {
	return b.reject("a byte string")
}

func (b VisitorBase) VisitNil() (any, error) {
	return b.reject("a null value")
}

func (b VisitorBase) VisitSome(de Deserializer) (any, error) {
	return b.reject("an optional value")
}

func (b VisitorBase) VisitNewtypeStruct(de Deserializer) (any, error) {
	return b.reject("a newtype value")
}

func (b VisitorBase) VisitSeq(seq SeqAccess) (any, error) {
	return b.reject("a sequence")
}

func (b VisitorBase) VisitMap(m MapAccess) (any, error) {
	return b.reject("a map")
}

func (b VisitorBase) VisitEnum(e EnumAccess) (any, error) {
	return b.reject("an enum value")
}
