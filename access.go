package errpath

// trackedSeed runs its delegate seed against an instrumented deserializer
// whose chain is fixed up front. Containers use it to pin the element or
// entry the delegate is about to decode.
type trackedSeed struct {
	seed  Seed
	chain *chain
	track *Track
}

func (s trackedSeed) DecodeValue(de Deserializer) (any, error) {
	val, err := s.seed.DecodeValue(tracked{de: de, chain: s.chain, track: s.track})
	return val, s.track.trigger(s.chain, err)
}

// seqAccess counts elements as they are handed out. The counter advances
// before the delegate runs so that a failure inside element i reports i,
// not i-1, and a short sequence reports the position it ended at.
type seqAccess struct {
	delegate SeqAccess
	chain    *chain
	index    int
	track    *Track
}

func (a *seqAccess) NextElement(seed Seed) (any, bool, error) {
	element := &chain{parent: a.chain, kind: chainSeq, index: a.index}
	a.index++

	val, ok, err := a.delegate.NextElement(trackedSeed{seed: seed, chain: element, track: a.track})
	return val, ok, a.track.trigger(a.chain, err)
}

func (a *seqAccess) SizeHint() (int, bool) {
	return a.delegate.SizeHint()
}

// mapAccess tracks entries keyed by whatever string the key decode produced.
// Keys pass through a capturing seed; if the key never visited a string, the
// following value is tracked under an unknown segment.
type mapAccess struct {
	delegate MapAccess
	chain    *chain
	key      keySlot
	track    *Track
}

func (a *mapAccess) entry() *chain {
	if key, ok := a.key.take(); ok {
		return &chain{parent: a.chain, kind: chainMap, key: key}
	}

	return &chain{parent: a.chain, kind: chainUnknownKey}
}

func (a *mapAccess) NextKey(seed Seed) (any, bool, error) {
	val, ok, err := a.delegate.NextKey(captureSeed{delegate: seed, slot: &a.key})
	if err != nil {
		return val, ok, a.track.trigger(a.entry(), err)
	}

	return val, ok, nil
}

func (a *mapAccess) NextValue(seed Seed) (any, error) {
	entry := a.entry()
	val, err := a.delegate.NextValue(trackedSeed{seed: seed, chain: entry, track: a.track})
	return val, a.track.trigger(a.chain, err)
}

func (a *mapAccess) SizeHint() (int, bool) {
	return a.delegate.SizeHint()
}

// enumAccess captures the variant name as it is decoded and pins the
// variant's content under it.
type enumAccess struct {
	delegate EnumAccess
	chain    *chain
	track    *Track
}

func (a enumAccess) Variant(seed Seed) (any, VariantAccess, error) {
	var slot keySlot

	val, access, err := a.delegate.Variant(captureSeed{delegate: seed, slot: &slot})
	if err != nil {
		return val, access, a.track.trigger(a.chain, err)
	}

	variant := &chain{parent: a.chain, kind: chainUnknownKey}
	if name, ok := slot.take(); ok {
		variant = &chain{parent: a.chain, kind: chainEnum, key: name}
	}

	return val, wrapVariant{delegate: access, chain: variant, track: a.track}, nil
}

type wrapVariant struct {
	delegate VariantAccess
	chain    *chain
	track    *Track
}

func (v wrapVariant) UnitVariant() error {
	return v.track.trigger(v.chain, v.delegate.UnitVariant())
}

func (v wrapVariant) NewtypeVariant(seed Seed) (any, error) {
	nested := &chain{parent: v.chain, kind: chainNewtypeVariant}
	val, err := v.delegate.NewtypeVariant(trackedSeed{seed: seed, chain: nested, track: v.track})
	return val, v.track.trigger(v.chain, err)
}

func (v wrapVariant) TupleVariant(n int, visitor Visitor) (any, error) {
	val, err := v.delegate.TupleVariant(n, wrap{delegate: visitor, chain: v.chain, track: v.track})
	return val, v.track.trigger(v.chain, err)
}

func (v wrapVariant) StructVariant(fields []string, visitor Visitor) (any, error) {
	val, err := v.delegate.StructVariant(fields, wrap{delegate: visitor, chain: v.chain, track: v.track})
	return val, v.track.trigger(v.chain, err)
}
