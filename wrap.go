package errpath

// NewDeserializer decorates de so that the location of the first decode
// failure is recorded in track. The decorator is transparent on the success
// path: it forwards every decode kind unchanged and substitutes the
// caller's visitor with one that extends the ancestry as decoding recurses
// into composite values.
func NewDeserializer(de Deserializer, track *Track) Deserializer {
	return tracked{de: de, track: track}
}

// tracked forwards every decode kind to the backend with a wrapped visitor
// and records the current chain when the backend fails.
type tracked struct {
	de    Deserializer
	chain *chain
	track *Track
}

var _ Deserializer = tracked{}

func (d tracked) DecodeAny(v Visitor) (any, error) {
	val, err := d.de.DecodeAny(wrap{delegate: v, chain: d.chain, track: d.track})
	return val, d.track.trigger(d.chain, err)
}

func (d tracked) DecodeBool(v Visitor) (any, error) {
	val, err := d.de.DecodeBool(wrap{delegate: v, chain: d.chain, track: d.track})
	return val, d.track.trigger(d.chain, err)
}

func (d tracked) DecodeInt8(v Visitor) (any, error) {
	val, err := d.de.DecodeInt8(wrap{delegate: v, chain: d.chain, track: d.track})
	return val, d.track.trigger(d.chain, err)
}

func (d tracked) DecodeInt16(v Visitor) (any, error) {
	val, err := d.de.DecodeInt16(wrap{delegate: v, chain: d.chain, track: d.track})
	return val, d.track.trigger(d.chain, err)
}

func (d tracked) DecodeInt32(v Visitor) (any, error) {
	val, err := d.de.DecodeInt32(wrap{delegate: v, chain: d.chain, track: d.track})
	return val, d.track.trigger(d.chain, err)
}

func (d tracked) DecodeInt64(v Visitor) (any, error) {
	val, err := d.de.DecodeInt64(wrap{delegate: v, chain: d.chain, track: d.track})
	return val, d.track.trigger(d.chain, err)
}

func (d tracked) DecodeInt(v Visitor) (any, error) {
	val, err := d.de.DecodeInt(wrap{delegate: v, chain: d.chain, track: d.track})
	return val, d.track.trigger(d.chain, err)
}

func (d tracked) DecodeUint8(v Visitor) (any, error) {
	val, err := d.de.DecodeUint8(wrap{delegate: v, chain: d.chain, track: d.track})
	return val, d.track.trigger(d.chain, err)
}

func (d tracked) DecodeUint16(v Visitor) (any, error) {
	val, err := d.de.DecodeUint16(wrap{delegate: v, chain: d.chain, track: d.track})
	return val, d.track.trigger(d.chain, err)
}

func (d tracked) DecodeUint32(v Visitor) (any, error) {
	val, err := d.de.DecodeUint32(wrap{delegate: v, chain: d.chain, track: d.track})
	return val, d.track.trigger(d.chain, err)
}

func (d tracked) DecodeUint64(v Visitor) (any, error) {
	val, err := d.de.DecodeUint64(wrap{delegate: v, chain: d.chain, track: d.track})
	return val, d.track.trigger(d.chain, err)
}

func (d tracked) DecodeUint(v Visitor) (any, error) {
	val, err := d.de.DecodeUint(wrap{delegate: v, chain: d.chain, track: d.track})
	return val, d.track.trigger(d.chain, err)
}

func (d tracked) DecodeFloat32(v Visitor) (any, error) {
	val, err := d.de.DecodeFloat32(wrap{delegate: v, chain: d.chain, track: d.track})
	return val, d.track.trigger(d.chain, err)
}

func (d tracked) DecodeFloat64(v Visitor) (any, error) {
	val, err := d.de.DecodeFloat64(wrap{delegate: v, chain: d.chain, track: d.track})
	return val, d.track.trigger(d.chain, err)
}

func (d tracked) DecodeString(v Visitor) (any, error) {
	val, err := d.de.DecodeString(wrap{delegate: v, chain: d.chain, track: d.track})
	return val, d.track.trigger(d.chain, err)
}

func (d tracked) DecodeBytes(v Visitor) (any, error) {
	val, err := d.de.DecodeBytes(wrap{delegate: v, chain: d.chain, track: d.track})
	return val, d.track.trigger(d.chain, err)
}

func (d tracked) DecodeOption(v Visitor) (any, error) {
	val, err := d.de.DecodeOption(wrap{delegate: v, chain: d.chain, track: d.track})
	return val, d.track.trigger(d.chain, err)
}

func (d tracked) DecodeUnit(v Visitor) (any, error) {
	val, err := d.de.DecodeUnit(wrap{delegate: v, chain: d.chain, track: d.track})
	return val, d.track.trigger(d.chain, err)
}

func (d tracked) DecodeUnitStruct(name string, v Visitor) (any, error) {
	val, err := d.de.DecodeUnitStruct(name, wrap{delegate: v, chain: d.chain, track: d.track})
	return val, d.track.trigger(d.chain, err)
}

func (d tracked) DecodeNewtypeStruct(name string, v Visitor) (any, error) {
	val, err := d.de.DecodeNewtypeStruct(name, wrap{delegate: v, chain: d.chain, track: d.track})
	return val, d.track.trigger(d.chain, err)
}

func (d tracked) DecodeSeq(v Visitor) (any, error) {
	val, err := d.de.DecodeSeq(wrap{delegate: v, chain: d.chain, track: d.track})
	return val, d.track.trigger(d.chain, err)
}

func (d tracked) DecodeTuple(n int, v Visitor) (any, error) {
	val, err := d.de.DecodeTuple(n, wrap{delegate: v, chain: d.chain, track: d.track})
	return val, d.track.trigger(d.chain, err)
}

func (d tracked) DecodeTupleStruct(name string, n int, v Visitor) (any, error) {
	val, err := d.de.DecodeTupleStruct(name, n, wrap{delegate: v, chain: d.chain, track: d.track})
	return val, d.track.trigger(d.chain, err)
}

func (d tracked) DecodeMap(v Visitor) (any, error) {
	val, err := d.de.DecodeMap(wrap{delegate: v, chain: d.chain, track: d.track})
	return val, d.track.trigger(d.chain, err)
}

func (d tracked) DecodeStruct(name string, fields []string, v Visitor) (any, error) {
	val, err := d.de.DecodeStruct(name, fields, wrap{delegate: v, chain: d.chain, track: d.track})
	return val, d.track.trigger(d.chain, err)
}

func (d tracked) DecodeEnum(name string, variants []string, v Visitor) (any, error) {
	val, err := d.de.DecodeEnum(name, variants, wrap{delegate: v, chain: d.chain, track: d.track})
	return val, d.track.trigger(d.chain, err)
}

func (d tracked) DecodeIdentifier(v Visitor) (any, error) {
	val, err := d.de.DecodeIdentifier(wrap{delegate: v, chain: d.chain, track: d.track})
	return val, d.track.trigger(d.chain, err)
}

func (d tracked) DecodeIgnoredAny(v Visitor) (any, error) {
	val, err := d.de.DecodeIgnoredAny(wrap{delegate: v, chain: d.chain, track: d.track})
	return val, d.track.trigger(d.chain, err)
}

// wrap forwards visitor callbacks and keeps the ancestry alive across them.
// Scalar callbacks are leaves and forward verbatim; composite callbacks
// re-wrap the nested deserializer or access object with an extended chain.
//
// Failures trigger with the current chain, not the extended one: when the
// nested call was instrumented, its own deeper trigger already won and this
// one is a no-op; when it was not, the current chain is still the best
// location available.
type wrap struct {
	delegate Visitor
	chain    *chain
	track    *Track
}

var _ Visitor = wrap{}

func (w wrap) Expecting() string {
	return w.delegate.Expecting()
}

func (w wrap) VisitBool(v bool) (any, error) {
	val, err := w.delegate.VisitBool(v)
	return val, w.track.trigger(w.chain, err)
}

func (w wrap) VisitInt(v int64) (any, error) {
	val, err := w.delegate.VisitInt(v)
	return val, w.track.trigger(w.chain, err)
}

func (w wrap) VisitUint(v uint64) (any, error) {
	val, err := w.delegate.VisitUint(v)
	return val, w.track.trigger(w.chain, err)
}

func (w wrap) VisitFloat(v float64) (any, error) {
	val, err := w.delegate.VisitFloat(v)
	return val, w.track.trigger(w.chain, err)
}

func (w wrap) VisitString(v string) (any, error) {
	val, err := w.delegate.VisitString(v)
	return val, w.track.trigger(w.chain, err)
}

func (w wrap) VisitBytes(v []byte) (any, error) {
	val, err := w.delegate.VisitBytes(v)
	return val, w.track.trigger(w.chain, err)
}

func (w wrap) VisitNil() (any, error) {
	val, err := w.delegate.VisitNil()
	return val, w.track.trigger(w.chain, err)
}

func (w wrap) VisitSome(de Deserializer) (any, error) {
	nested := &chain{parent: w.chain, kind: chainOption}
	val, err := w.delegate.VisitSome(tracked{de: de, chain: nested, track: w.track})
	return val, w.track.trigger(w.chain, err)
}

func (w wrap) VisitNewtypeStruct(de Deserializer) (any, error) {
	nested := &chain{parent: w.chain, kind: chainNewtypeStruct}
	val, err := w.delegate.VisitNewtypeStruct(tracked{de: de, chain: nested, track: w.track})
	return val, w.track.trigger(w.chain, err)
}

func (w wrap) VisitSeq(seq SeqAccess) (any, error) {
	val, err := w.delegate.VisitSeq(&seqAccess{delegate: seq, chain: w.chain, track: w.track})
	return val, w.track.trigger(w.chain, err)
}

func (w wrap) VisitMap(m MapAccess) (any, error) {
	val, err := w.delegate.VisitMap(&mapAccess{delegate: m, chain: w.chain, track: w.track})
	return val, w.track.trigger(w.chain, err)
}

func (w wrap) VisitEnum(e EnumAccess) (any, error) {
	val, err := w.delegate.VisitEnum(enumAccess{delegate: e, chain: w.chain, track: w.track})
	return val, w.track.trigger(w.chain, err)
}
