package fluent

import (
	"fmt"

	"github.com/JorrenH/solid-fluent-store/value"
	"github.com/JorrenH/solid-fluent-store/value/vpath"
)

type streamOp int

const (
	opAll streamOp = iota
	opFilter
	opIn
	opRange
	opBatch
)

var streamOps = map[string]streamOp{
	"$all":    opAll,
	"$filter": opFilter,
	"$in":     opIn,
	"$range":  opRange,
	"$batch":  opBatch,
}

func (op streamOp) String() string {
	for name, o := range streamOps {
		if o == op {
			return name
		}
	}
	return fmt.Sprintf("streamOp(%d)", int(op))
}

// Stream is a path operator obtained from Prop by one of the names $all,
// $filter, $in, $range or $batch.
type Stream struct {
	w  *Writer
	op streamOp
}

func (s *Stream) Name() string {
	return s.op.String()
}

// Invoke applies the operator. For the selecting operators the first
// argument (none for $all) is the selector and the result is the scoped
// *Writer; a further argument is written through that writer at once and the
// result is nil. $batch takes a func(*Writer) error and returns nil.
func (s *Stream) Invoke(args ...any) (any, error) {
	if s.op == opBatch {
		if len(args) != 1 {
			return nil, fmt.Errorf("%w: $batch takes one body, got %d arguments", ErrBadArgument, len(args))
		}
		body, ok := args[0].(func(*Writer) error)
		if !ok {
			return nil, fmt.Errorf("%w: $batch body %T", ErrBadArgument, args[0])
		}
		return nil, s.w.Batch(body)
	}
	nsel := 1
	if s.op == opAll {
		nsel = 0
	}
	if len(args) < nsel {
		return nil, fmt.Errorf("%w: %s needs a selector", ErrBadArgument, s.op)
	}
	seg, err := s.segment(args[:nsel])
	if err != nil {
		return nil, err
	}
	scoped := s.w.extend(seg)
	rest := args[nsel:]
	if len(rest) == 0 {
		return scoped, nil
	}
	return nil, scoped.Call(rest...)
}

func (s *Stream) segment(sel []any) (vpath.Segment, error) {
	switch s.op {
	case opAll:
		return vpath.All(), nil
	case opFilter:
		return filterSegment(sel[0])
	case opIn:
		return inSegment(sel[0])
	case opRange:
		switch r := sel[0].(type) {
		case vpath.Range:
			return vpath.RangeSegment(r), nil
		case *vpath.Range:
			if r != nil {
				return vpath.RangeSegment(*r), nil
			}
		}
		return vpath.Segment{}, fmt.Errorf("%w: $range selector %T", ErrBadArgument, sel[0])
	}
	return vpath.Segment{}, fmt.Errorf("%w: %s", ErrBadArgument, s.op)
}

func filterSegment(sel any) (vpath.Segment, error) {
	switch p := sel.(type) {
	case vpath.Predicate:
		if p != nil {
			return vpath.PredicateSegment(p), nil
		}
	case func(*value.Node, vpath.Key) bool:
		if p != nil {
			return vpath.PredicateSegment(p), nil
		}
	case func(*value.Node) bool:
		if p != nil {
			return vpath.PredicateSegment(func(v *value.Node, _ vpath.Key) bool { return p(v) }), nil
		}
	case string:
		pred, err := Where(p)
		if err != nil {
			return vpath.Segment{}, err
		}
		return vpath.PredicateSegment(pred), nil
	}
	return vpath.Segment{}, fmt.Errorf("%w: $filter selector %T", ErrBadArgument, sel)
}

func inSegment(sel any) (vpath.Segment, error) {
	switch sel.(type) {
	case vpath.Keys, []vpath.Key, []any, []string, []int:
		seg, err := vpath.SegmentOf(sel)
		if err != nil {
			return vpath.Segment{}, fmt.Errorf("%w: %w", ErrBadArgument, err)
		}
		return seg, nil
	}
	return vpath.Segment{}, fmt.Errorf("%w: $in selector %T is not a key list", ErrBadArgument, sel)
}

// All scopes the writer to every element of the array at its path.
func (w *Writer) All() *Writer {
	return w.extend(vpath.All())
}

// Filter scopes the writer to the array elements pred accepts.
func (w *Writer) Filter(pred vpath.Predicate) *Writer {
	if pred == nil {
		return w.failed(fmt.Errorf("%w: nil predicate", ErrBadArgument))
	}
	return w.extend(vpath.PredicateSegment(pred))
}

// In scopes the writer to the listed keys.
func (w *Writer) In(keys ...any) *Writer {
	seg, err := vpath.SegmentOf(keys)
	if err != nil {
		return w.failed(err)
	}
	return w.extend(seg)
}

// Range scopes the writer to the array indices r selects.
func (w *Writer) Range(r vpath.Range) *Writer {
	return w.extend(vpath.RangeSegment(r))
}

// Batch runs body with a writer at w's path inside the host's batch, so
// observers see the writes made by body as one change. body's error is
// returned; writes made before it stay applied.
func (w *Writer) Batch(body func(*Writer) error) error {
	if w.err != nil {
		return w.err
	}
	scoped := &Writer{h: w.h, path: w.path}
	if w.h.batch == nil {
		return body(scoped)
	}
	var err error
	w.h.batch.Batch(func() {
		err = body(scoped)
	})
	return err
}
