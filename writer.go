package fluent

import (
	"slices"

	"github.com/JorrenH/solid-fluent-store/debug"
	"github.com/JorrenH/solid-fluent-store/store"
	"github.com/JorrenH/solid-fluent-store/value"
	"github.com/JorrenH/solid-fluent-store/value/vpath"
)

// Reader gives a writer read access to the live document.
type Reader interface {
	Root() store.View
}

// Batcher groups writes so observers are notified once.
type Batcher interface {
	Batch(fn func())
}

type host struct {
	snap  Reader
	set   store.Setter
	batch Batcher
}

// Writer accumulates a path into a document and turns invocation into one
// call of the host setter with that path. Extending a writer returns a new
// writer and never changes the receiver, so writers can be saved and reused.
type Writer struct {
	h    *host
	path *vpath.Path
	err  error
}

// Member is what property access on a writer yields: a further *Writer, a
// *Method bound to a mutating container operation, or a *Stream operator.
type Member interface {
	Invoke(args ...any) (any, error)
}

// New returns the root writer over snap and set. b may be nil, in which
// case Batch runs its body without grouping.
func New(snap Reader, set store.Setter, b Batcher) *Writer {
	return &Writer{h: &host{snap: snap, set: set, batch: b}}
}

// CreateStore creates a store holding initial and returns its snapshot with
// the root writer.
func CreateStore(initial any, opts ...store.Option) (store.Snapshot, *Writer, error) {
	s, err := store.New(initial, opts...)
	if err != nil {
		return store.Snapshot{}, nil, err
	}
	return s.Snapshot(), New(s.Snapshot(), s.Set, s), nil
}

func (w *Writer) extend(seg vpath.Segment) *Writer {
	return &Writer{h: w.h, path: w.path.Append(seg), err: w.err}
}

func (w *Writer) failed(err error) *Writer {
	return &Writer{h: w.h, path: w.path, err: err}
}

// Prop is property access by name. When the value at the writer's path is a
// sequence, set or map and name is one of its mutating methods (see
// Classify) the bound *Method is returned. The stream operator names $all,
// $filter, $in, $range and $batch return a *Stream. Any other name extends
// the path.
func (w *Writer) Prop(name string) Member {
	if _, methods := w.Classify(); slices.Contains(methods, name) {
		return &Method{w: w, name: name}
	}
	if op, ok := streamOps[name]; ok {
		return &Stream{w: w, op: op}
	}
	return w.At(name)
}

// At extends the path by one segment without interception. key is anything
// vpath.SegmentOf accepts; an invalid key is reported when the writer is
// invoked.
func (w *Writer) At(key any) *Writer {
	seg, err := vpath.SegmentOf(key)
	if err != nil {
		return w.failed(err)
	}
	return w.extend(seg)
}

func (w *Writer) Index(i int) *Writer {
	return w.extend(vpath.KeySegment(vpath.Index(i)))
}

// Path extends the writer by a path string such as "a.b[0]".
func (w *Writer) Path(kp string) *Writer {
	p, err := vpath.Parse(kp)
	if err != nil {
		return w.failed(err)
	}
	res := w
	for _, seg := range p.Segments() {
		res = res.extend(seg)
	}
	return res
}

// Call forwards the accumulated path followed by args to the host setter.
func (w *Writer) Call(args ...any) error {
	if w.err != nil {
		return w.err
	}
	if debug.Write() {
		debug.Logf("write %s (%d args)\n", w.path, len(args))
	}
	return w.h.set(w.path.Args(args...)...)
}

// Set writes a literal value at the path.
func (w *Writer) Set(v any) error {
	return w.Call(v)
}

// Update writes the result of fn applied to the previous value.
func (w *Writer) Update(fn store.Updater) error {
	return w.Call(fn)
}

func (w *Writer) Invoke(args ...any) (any, error) {
	return nil, w.Call(args...)
}

// Location returns the accumulated path.
func (w *Writer) Location() *vpath.Path {
	return w.path
}

// Err returns the error recorded while building the path, if any.
func (w *Writer) Err() error {
	return w.err
}

// Classify reports the current type of the value at the writer's path.
func (w *Writer) Classify() (TargetType, []string) {
	return Classify(store.Unwrap(w.h.snap.Root()), w.path)
}

func (w *Writer) String() string {
	return w.path.String()
}

// Unwrap returns the plain node beneath a snapshot or view.
func Unwrap(v store.Wrapped) *value.Node {
	return store.Unwrap(v)
}
