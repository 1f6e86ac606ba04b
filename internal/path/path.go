package path

import (
	"slices"
	"strconv"
	"strings"
)

// SegmentKind distinguishes object member access from array element access.
type SegmentKind uint8

const (
	FieldSegment SegmentKind = iota
	IndexSegment
)

// Segment is one step of a Path.
type Segment struct {
	Kind  SegmentKind
	Name  string // member name for FieldSegment
	Index int    // element index for IndexSegment
}

// Field returns a member access segment.
func Field(name string) Segment {
	return Segment{Kind: FieldSegment, Name: name}
}

// Index returns an element access segment.
func Index(i int) Segment {
	return Segment{Kind: IndexSegment, Index: i}
}

// Path addresses one location in a tree. The empty Path is the root.
type Path []Segment

// Append returns a new path with seg added. The receiver is never aliased.
func (p Path) Append(seg Segment) Path {
	out := make(Path, len(p), len(p)+1)
	copy(out, p)
	return append(out, seg)
}

// Field returns p extended with a member access.
func (p Path) Field(name string) Path {
	return p.Append(Field(name))
}

// Index returns p extended with an element access.
func (p Path) Index(i int) Path {
	return p.Append(Index(i))
}

// IsRoot reports whether p addresses the root value.
func (p Path) IsRoot() bool {
	return len(p) == 0
}

func (p Path) Equal(other Path) bool {
	return slices.Equal(p, other)
}

func (p Path) String() string {
	return Format(p)
}

// Format renders p: fields are joined with '.', indices are written as
// "[i]" with no separator. The root path renders as "".
func Format(p Path) string {
	var b strings.Builder
	for i, seg := range p {
		switch seg.Kind {
		case FieldSegment:
			if i > 0 {
				b.WriteByte('.')
			}
			b.WriteString(seg.Name)
		case IndexSegment:
			b.WriteByte('[')
			b.WriteString(strconv.Itoa(seg.Index))
			b.WriteByte(']')
		}
	}
	return b.String()
}
