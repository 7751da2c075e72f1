package errpath

import "errors"

type chainKind int

const (
	chainSeq chainKind = iota
	chainMap
	chainStruct
	chainEnum
	chainOption
	chainNewtypeStruct
	chainNewtypeVariant
	chainUnknownKey
)

// chain is one link of the ancestry built while decoding. Each nested
// decode call creates its own link on the stack and points at its caller's
// link; the root of the ancestry is the nil chain. Links never outlive the
// decode call that created them, only [chain.path] materializes an owned
// representation.
type chain struct {
	parent *chain
	kind   chainKind

	// index of a chainSeq link
	index int

	// key of a chainMap, chainStruct or chainEnum link
	key string
}

// path walks the parent links and materializes the ancestry as a Path in
// root to leaf order. Option and newtype links are transparent and
// contribute no segment.
func (c *chain) path() Path {
	var segments []Segment

	for node := c; node != nil; node = node.parent {
		switch node.kind {
		case chainSeq:
			segments = append(segments, Segment{kind: SegmentSeq, index: node.index})

		case chainMap, chainStruct, chainEnum:
			segments = append(segments, Segment{kind: SegmentKey, key: node.key})

		case chainUnknownKey:
			segments = append(segments, Segment{kind: SegmentUnknown})

		case chainOption, chainNewtypeStruct, chainNewtypeVariant:
			// transparent
		}
	}

	// collected leaf first, bring into root to leaf order
	for i, j := 0, len(segments)-1; i < j; i, j = i+1, j-1 {
		segments[i], segments[j] = segments[j], segments[i]
	}

	return Path{segments: segments}
}

// Track records the path of the first decode failure. Create one Track per
// top level decode with [NewTrack], hand it to [NewDeserializer], and read
// [Track.Path] once decoding has reported an error.
type Track struct {
	path *Path
}

func NewTrack() *Track {
	return &Track{}
}

// Path returns the recorded path. It is only meaningful once decoding has
// reported an error; before that it returns an empty Path, which is
// indistinguishable from a failure at the root.
func (t *Track) Path() Path {
	if t.path == nil {
		return Path{}
	}

	return *t.path
}

// trigger records the location of err and hands err back unchanged, so it
// composes inline at every propagation point. Only the first trigger
// records; the deepest decorator frame observes the error first, so later
// triggers during unwind are no-ops. A nil err passes through untouched.
func (t *Track) trigger(c *chain, err error) error {
	if err == nil || t.path != nil {
		return err
	}

	leaf := c

	// A missing struct field fails in the frame of the surrounding map.
	// The error names the field, so the path can still point at the
	// field's own position.
	var missing *MissingFieldError
	if errors.As(err, &missing) {
		leaf = &chain{parent: c, kind: chainStruct, key: missing.Field}
	}

	path := leaf.path()
	t.path = &path

	return err
}
