package errpath

// keySlot holds a map key or variant name captured as it is decoded. A set
// value is consumed by take, so one slot serves all entries of a map in
// turn.
type keySlot struct {
	value string
	ok    bool
}

func (s *keySlot) set(v string) {
	s.value = v
	s.ok = true
}

func (s *keySlot) take() (string, bool) {
	value, ok := s.value, s.ok
	s.value, s.ok = "", false
	return value, ok
}

// captureSeed decodes its delegate while siphoning off the string the key
// decode produces. Keys that never visit a string leave the slot empty.
type captureSeed struct {
	delegate Seed
	slot     *keySlot
}

func (c captureSeed) DecodeValue(de Deserializer) (any, error) {
	return c.delegate.DecodeValue(captureDeserializer{de: de, slot: c.slot})
}

// captureDeserializer forwards every decode kind with a visitor that
// records string values into the slot.
type captureDeserializer struct {
	de   Deserializer
	slot *keySlot
}

var _ Deserializer = captureDeserializer{}

func (c captureDeserializer) DecodeAny(v Visitor) (any, error) {
	return c.de.DecodeAny(captureVisitor{delegate: v, slot: c.slot})
}

func (c captureDeserializer) DecodeBool(v Visitor) (any, error) {
	return c.de.DecodeBool(captureVisitor{delegate: v, slot: c.slot})
}

func (c captureDeserializer) DecodeInt8(v Visitor) (any, error) {
	return c.de.DecodeInt8(captureVisitor{delegate: v, slot: c.slot})
}

func (c captureDeserializer) DecodeInt16(v Visitor) (any, error) {
	return c.de.DecodeInt16(captureVisitor{delegate: v, slot: c.slot})
}

func (c captureDeserializer) DecodeInt32(v Visitor) (any, error) {
	return c.de.DecodeInt32(captureVisitor{delegate: v, slot: c.slot})
}

func (c captureDeserializer) DecodeInt64(v Visitor) (any, error) {
	return c.de.DecodeInt64(captureVisitor{delegate: v, slot: c.slot})
}

func (c captureDeserializer) DecodeInt(v Visitor) (any, error) {
	return c.de.DecodeInt(captureVisitor{delegate: v, slot: c.slot})
}

func (c captureDeserializer) DecodeUint8(v Visitor) (any, error) {
	return c.de.DecodeUint8(captureVisitor{delegate: v, slot: c.slot})
}

func (c captureDeserializer) DecodeUint16(v Visitor) (any, error) {
	return c.de.DecodeUint16(captureVisitor{delegate: v, slot: c.slot})
}

func (c captureDeserializer) DecodeUint32(v Visitor) (any, error) {
	return c.de.DecodeUint32(captureVisitor{delegate: v, slot: c.slot})
}

func (c captureDeserializer) DecodeUint64(v Visitor) (any, error) {
	return c.de.DecodeUint64(captureVisitor{delegate: v, slot: c.slot})
}

func (c captureDeserializer) DecodeUint(v Visitor) (any, error) {
	return c.de.DecodeUint(captureVisitor{delegate: v, slot: c.slot})
}

func (c captureDeserializer) DecodeFloat32(v Visitor) (any, error) {
	return c.de.DecodeFloat32(captureVisitor{delegate: v, slot: c.slot})
}

func (c captureDeserializer) DecodeFloat64(v Visitor) (any, error) {
	return c.de.DecodeFloat64(captureVisitor{delegate: v, slot: c.slot})
}

func (c captureDeserializer) DecodeString(v Visitor) (any, error) {
	return c.de.DecodeString(captureVisitor{delegate: v, slot: c.slot})
}

func (c captureDeserializer) DecodeBytes(v Visitor) (any, error) {
	return c.de.DecodeBytes(captureVisitor{delegate: v, slot: c.slot})
}

func (c captureDeserializer) DecodeOption(v Visitor) (any, error) {
	return c.de.DecodeOption(captureVisitor{delegate: v, slot: c.slot})
}

func (c captureDeserializer) DecodeUnit(v Visitor) (any, error) {
	return c.de.DecodeUnit(captureVisitor{delegate: v, slot: c.slot})
}

func (c captureDeserializer) DecodeUnitStruct(name string, v Visitor) (any, error) {
	return c.de.DecodeUnitStruct(name, captureVisitor{delegate: v, slot: c.slot})
}

func (c captureDeserializer) DecodeNewtypeStruct(name string, v Visitor) (any, error) {
	return c.de.DecodeNewtypeStruct(name, captureVisitor{delegate: v, slot: c.slot})
}

func (c captureDeserializer) DecodeSeq(v Visitor) (any, error) {
	return c.de.DecodeSeq(captureVisitor{delegate: v, slot: c.slot})
}

func (c captureDeserializer) DecodeTuple(n int, v Visitor) (any, error) {
	return c.de.DecodeTuple(n, captureVisitor{delegate: v, slot: c.slot})
}

func (c captureDeserializer) DecodeTupleStruct(name string, n int, v Visitor) (any, error) {
	return c.de.DecodeTupleStruct(name, n, captureVisitor{delegate: v, slot: c.slot})
}

func (c captureDeserializer) DecodeMap(v Visitor) (any, error) {
	return c.de.DecodeMap(captureVisitor{delegate: v, slot: c.slot})
}

func (c captureDeserializer) DecodeStruct(name string, fields []string, v Visitor) (any, error) {
	return c.de.DecodeStruct(name, fields, captureVisitor{delegate: v, slot: c.slot})
}

func (c captureDeserializer) DecodeEnum(name string, variants []string, v Visitor) (any, error) {
	return c.de.DecodeEnum(name, variants, captureVisitor{delegate: v, slot: c.slot})
}

func (c captureDeserializer) DecodeIdentifier(v Visitor) (any, error) {
	return c.de.DecodeIdentifier(captureVisitor{delegate: v, slot: c.slot})
}

func (c captureDeserializer) DecodeIgnoredAny(v Visitor) (any, error) {
	return c.de.DecodeIgnoredAny(captureVisitor{delegate: v, slot: c.slot})
}

// captureVisitor forwards all callbacks verbatim and additionally records
// string values. Composite callbacks forward without re-wrapping; only the
// key itself is of interest, not values nested inside it.
type captureVisitor struct {
	delegate Visitor
	slot     *keySlot
}

var _ Visitor = captureVisitor{}

func (c captureVisitor) Expecting() string {
	return c.delegate.Expecting()
}

func (c captureVisitor) VisitBool(v bool) (any, error) {
	return c.delegate.VisitBool(v)
}

func (c captureVisitor) VisitInt(v int64) (any, error) {
	return c.delegate.VisitInt(v)
}

func (c captureVisitor) VisitUint(v uint64) (any, error) {
	return c.delegate.VisitUint(v)
}

func (c captureVisitor) VisitFloat(v float64) (any, error) {
	return c.delegate.VisitFloat(v)
}

func (c captureVisitor) VisitString(v string) (any, error) {
	c.slot.set(v)
	return c.delegate.VisitString(v)
}

func (c captureVisitor) VisitBytes(v []byte) (any, error) {
	return c.delegate.VisitBytes(v)
}

func (c captureVisitor) VisitNil() (any, error) {
	return c.delegate.VisitNil()
}

func (c captureVisitor) VisitSome(de Deserializer) (any, error) {
	return c.delegate.VisitSome(de)
}

func (c captureVisitor) VisitNewtypeStruct(de Deserializer) (any, error) {
	return c.delegate.VisitNewtypeStruct(de)
}

func (c captureVisitor) VisitSeq(seq SeqAccess) (any, error) {
	return c.delegate.VisitSeq(seq)
}

func (c captureVisitor) VisitMap(m MapAccess) (any, error) {
	return c.delegate.VisitMap(m)
}

func (c captureVisitor) VisitEnum(e EnumAccess) (any, error) {
	return c.delegate.VisitEnum(e)
}
