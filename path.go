package errpath

import (
	"iter"
	"strconv"
	"strings"
)

// SegmentKind classifies a [Segment].
type SegmentKind int

const (
	// SegmentSeq is a zero based sequence index.
	SegmentSeq SegmentKind = iota

	// SegmentKey is a map key, a struct field name or an enum variant name.
	SegmentKey

	// SegmentUnknown marks a position whose key could not be captured as
	// text, e.g. a non string map key.
	SegmentUnknown
)

// Segment is a single element of a [Path]. A Segment is immutable once
// constructed.
type Segment struct {
	kind  SegmentKind
	index int
	key   string
}

func (s Segment) Kind() SegmentKind { return s.kind }

// Index returns the sequence index of a [SegmentSeq] segment.
func (s Segment) Index() int { return s.index }

// Key returns the key text of a [SegmentKey] segment.
func (s Segment) Key() string { return s.key }

func (s Segment) String() string {
	switch s.kind {
	case SegmentSeq:
		return "[" + strconv.Itoa(s.index) + "]"
	case SegmentKey:
		return s.key
	default:
		return "?"
	}
}

// Path is the location of a value within the decoded structure, in root to
// leaf order, like `dependencies.serde.version`. Use [Path.String] for a
// text rendering or [Path.Segments] to walk the individual segments.
type Path struct {
	segments []Segment
}

// Segments iterates the segments of the path in root to leaf order.
func (p Path) Segments() iter.Seq[Segment] {
	return func(yield func(Segment) bool) {
		for _, segment := range p.segments {
			if !yield(segment) {
				return
			}
		}
	}
}

// OnlyUnknown reports whether every segment of the path is a
// [SegmentUnknown]. A path that is all unknown carries no usable location
// information.
func (p Path) OnlyUnknown() bool {
	for _, segment := range p.segments {
		if segment.kind != SegmentUnknown {
			return false
		}
	}

	return true
}

// String renders the path with segments separated by periods. Sequence
// indices render as a bracketed suffix attached directly to their
// predecessor, unknown segments render as a question mark. The empty path
// renders as a single period.
func (p Path) String() string {
	if len(p.segments) == 0 {
		return "."
	}

	var text strings.Builder
	for idx, segment := range p.segments {
		if idx > 0 && segment.kind != SegmentSeq {
			text.WriteByte('.')
		}

		text.WriteString(segment.String())
	}

	return text.String()
}
