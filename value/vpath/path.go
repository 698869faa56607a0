package vpath

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
)

// Path is an immutable sequence of segments from the root. It is stored as a
// list linked from the last segment back to the first, so Append shares the
// receiver and costs O(1). The nil *Path is the root.
type Path struct {
	parent *Path
	seg    Segment
	n      int
}

// Append returns p extended by seg. p is unchanged.
func (p *Path) Append(seg Segment) *Path {
	return &Path{parent: p, seg: seg, n: p.Len() + 1}
}

// AppendKey is Append(KeySegment(k)).
func (p *Path) AppendKey(k Key) *Path {
	return p.Append(KeySegment(k))
}

func (p *Path) Len() int {
	if p == nil {
		return 0
	}
	return p.n
}

// Parent returns p without its last segment.
func (p *Path) Parent() *Path {
	if p == nil {
		return nil
	}
	return p.parent
}

// Last returns the final segment of p.
func (p *Path) Last() (Segment, bool) {
	if p == nil {
		return Segment{}, false
	}
	return p.seg, true
}

// Segments returns the segments of p in root to leaf order.
func (p *Path) Segments() []Segment {
	res := make([]Segment, p.Len())
	for x := p; x != nil; x = x.parent {
		res[x.n-1] = x.seg
	}
	return res
}

// Args returns the segments of p followed by extra, the argument list of a
// positional setter call.
func (p *Path) Args(extra ...any) []any {
	n := p.Len()
	res := make([]any, n, n+len(extra))
	for x := p; x != nil; x = x.parent {
		res[x.n-1] = x.seg
	}
	return append(res, extra...)
}

// String returns the path in kinded path syntax, for example
// "a.b[0]", "list[*].done" or "m{\"k\"}".
func (p *Path) String() string {
	buf := bytes.NewBuffer(nil)
	for _, seg := range p.Segments() {
		str := seg.String()
		if seg.Kind == KeyKind && (seg.Key.Field != nil) && buf.Len() > 0 {
			buf.WriteByte('.')
		}
		buf.WriteString(str)
	}
	return buf.String()
}

// FromKeys builds a path of plain key segments.
func FromKeys(keys ...any) (*Path, error) {
	var p *Path
	for _, k := range keys {
		seg, err := SegmentOf(k)
		if err != nil {
			return nil, err
		}
		p = p.Append(seg)
	}
	return p, nil
}

// Parse parses a kinded path string.
//
// Syntax:
//   - "a.b" → fields a then b
//   - "\"a b\".c" → quoted field
//   - "a[0]" → field a then index 0
//   - "a[*]" → field a then every element
//   - "" → root path (returns nil)
func Parse(s string) (*Path, error) {
	var p *Path
	i := 0
	for i < len(s) {
		switch c := s[i]; {
		case c == '.':
			if i == 0 || i == len(s)-1 || s[i+1] == '.' {
				return nil, fmt.Errorf("%w: unexpected '.' at %d in %q", ErrParse, i, s)
			}
			i++
		case c == '[':
			j := strings.IndexByte(s[i:], ']')
			if j == -1 {
				return nil, fmt.Errorf("%w: unterminated '[' in %q", ErrParse, s)
			}
			inner := s[i+1 : i+j]
			if inner == "*" {
				p = p.Append(All())
			} else {
				idx, err := strconv.Atoi(inner)
				if err != nil {
					return nil, fmt.Errorf("%w: bad index %q in %q", ErrParse, inner, s)
				}
				p = p.AppendKey(Index(idx))
			}
			i += j + 1
		case c == '"':
			field, rest, err := unquotePrefix(s[i:])
			if err != nil {
				return nil, fmt.Errorf("%w: %w in %q", ErrParse, err, s)
			}
			p = p.AppendKey(Field(field))
			i = len(s) - len(rest)
		default:
			j := strings.IndexAny(s[i:], ".[")
			if j == -1 {
				j = len(s) - i
			}
			p = p.AppendKey(Field(s[i : i+j]))
			i += j
		}
	}
	return p, nil
}

func unquotePrefix(s string) (string, string, error) {
	for j := 1; j < len(s); j++ {
		switch s[j] {
		case '\\':
			j++
		case '"':
			field, err := strconv.Unquote(s[:j+1])
			if err != nil {
				return "", "", err
			}
			return field, s[j+1:], nil
		}
	}
	return "", "", fmt.Errorf("unterminated quote")
}
