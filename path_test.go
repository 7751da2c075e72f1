package errpath

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPathString(t *testing.T) {
	require.Equal(t, ".", Path{}.String())

	path := Path{segments: []Segment{
		{kind: SegmentKey, key: "dependencies"},
		{kind: SegmentKey, key: "serde"},
		{kind: SegmentKey, key: "version"},
	}}
	require.Equal(t, "dependencies.serde.version", path.String())

	path = Path{segments: []Segment{
		{kind: SegmentKey, key: "items"},
		{kind: SegmentSeq, index: 2},
		{kind: SegmentKey, key: "name"},
	}}
	require.Equal(t, "items[2].name", path.String())
}

func TestPathString_LeadingIndex(t *testing.T) {
	path := Path{segments: []Segment{
		{kind: SegmentSeq, index: 1},
		{kind: SegmentKey, key: "x"},
	}}
	require.Equal(t, "[1].x", path.String())
}

func TestPathString_Unknown(t *testing.T) {
	path := Path{segments: []Segment{
		{kind: SegmentKey, key: "values"},
		{kind: SegmentUnknown},
	}}
	require.Equal(t, "values.?", path.String())
}

func TestPathOnlyUnknown(t *testing.T) {
	require.True(t, Path{}.OnlyUnknown())

	path := Path{segments: []Segment{{kind: SegmentUnknown}, {kind: SegmentUnknown}}}
	require.True(t, path.OnlyUnknown())

	path = Path{segments: []Segment{{kind: SegmentUnknown}, {kind: SegmentKey, key: "a"}}}
	require.False(t, path.OnlyUnknown())
}

func TestPathSegments(t *testing.T) {
	path := Path{segments: []Segment{
		{kind: SegmentKey, key: "a"},
		{kind: SegmentSeq, index: 3},
	}}

	var collected []Segment
	for segment := range path.Segments() {
		collected = append(collected, segment)
	}

	require.Len(t, collected, 2)
	require.Equal(t, SegmentKey, collected[0].Kind())
	require.Equal(t, "a", collected[0].Key())
	require.Equal(t, SegmentSeq, collected[1].Kind())
	require.Equal(t, 3, collected[1].Index())
}
