package main

import (
	"fmt"
	"math"
	"slices"

	fluent "github.com/JorrenH/solid-fluent-store"
	"github.com/JorrenH/solid-fluent-store/value"
	"github.com/JorrenH/solid-fluent-store/value/vpath"

	"github.com/goccy/go-yaml"
)

// A script is a YAML list of steps. Each step names a path relative to the
// enclosing writer, at most one selector and exactly one action:
//
//	- path: scores
//	  all: true
//	  update: "v * 2"
//	- path: counts
//	  in: [a, c]
//	  set: 4
//	- path: list
//	  range: {from: 1, by: 2}
//	  set: 6
//	- path: list
//	  call: push
//	  args: [7, 8]
//	- batch:
//	    - {path: a, set: 1}
//	    - {path: b, delete: true}
type step struct {
	path string

	// selector; sel is the $-operator name and selArg its argument
	sel    string
	selArg any

	action string
	val    any
	args   []any
	batch  []*step
}

var (
	selectorFields = []string{"all", "filter", "in", "range"}
	actionFields   = []string{"set", "update", "delete", "call", "batch"}
	stepFields     = append(append([]string{"path", "args"}, selectorFields...), actionFields...)
)

func parseScript(d []byte) ([]*step, error) {
	var raw []map[string]any
	if err := yaml.Unmarshal(d, &raw); err != nil {
		return nil, fmt.Errorf("error decoding script: %w", err)
	}
	return parseSteps(raw, "")
}

func parseSteps(raw []map[string]any, at string) ([]*step, error) {
	res := make([]*step, len(raw))
	for i, m := range raw {
		where := fmt.Sprintf("%sstep %d", at, i)
		s, err := parseStep(m, where)
		if err != nil {
			return nil, err
		}
		res[i] = s
	}
	return res, nil
}

func parseStep(m map[string]any, where string) (*step, error) {
	for k := range m {
		if !slices.Contains(stepFields, k) {
			return nil, fmt.Errorf("%s: unknown field %q", where, k)
		}
	}
	s := &step{}
	if p, ok := m["path"]; ok {
		ps, ok := p.(string)
		if !ok {
			return nil, fmt.Errorf("%s: path must be a string, got %T", where, p)
		}
		s.path = ps
	}
	for _, f := range selectorFields {
		v, ok := m[f]
		if !ok {
			continue
		}
		if s.sel != "" {
			return nil, fmt.Errorf("%s: more than one selector", where)
		}
		s.sel = "$" + f
		sa, err := selectorArg(f, v)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", where, err)
		}
		s.selArg = sa
	}
	for _, f := range actionFields {
		v, ok := m[f]
		if !ok {
			continue
		}
		if s.action != "" {
			return nil, fmt.Errorf("%s: more than one of %v", where, actionFields)
		}
		s.action = f
		s.val = v
	}
	switch s.action {
	case "":
		return nil, fmt.Errorf("%s: no action, need one of %v", where, actionFields)
	case "update":
		if _, ok := s.val.(string); !ok {
			return nil, fmt.Errorf("%s: update must be an expression string, got %T", where, s.val)
		}
	case "call":
		if _, ok := s.val.(string); !ok {
			return nil, fmt.Errorf("%s: call must name a method, got %T", where, s.val)
		}
		if a, ok := m["args"]; ok {
			as, ok := a.([]any)
			if !ok {
				return nil, fmt.Errorf("%s: args must be a list, got %T", where, a)
			}
			s.args = as
		}
	case "batch":
		if s.sel != "" {
			return nil, fmt.Errorf("%s: batch takes no selector", where)
		}
		subs, err := batchSteps(s.val, where)
		if err != nil {
			return nil, err
		}
		s.batch = subs
	}
	if _, ok := m["args"]; ok && s.action != "call" {
		return nil, fmt.Errorf("%s: args without call", where)
	}
	return s, nil
}

func batchSteps(v any, where string) ([]*step, error) {
	list, ok := v.([]any)
	if !ok {
		return nil, fmt.Errorf("%s: batch must be a list of steps, got %T", where, v)
	}
	raw := make([]map[string]any, len(list))
	for i, elt := range list {
		m, ok := elt.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%s: batch step %d is %T, not a mapping", where, i, elt)
		}
		raw[i] = m
	}
	return parseSteps(raw, where+": ")
}

func selectorArg(field string, v any) (any, error) {
	switch field {
	case "all":
		if b, ok := v.(bool); !ok || !b {
			return nil, fmt.Errorf("all must be true")
		}
		return nil, nil
	case "filter":
		src, ok := v.(string)
		if !ok {
			return nil, fmt.Errorf("filter must be an expression string, got %T", v)
		}
		return src, nil
	case "in":
		keys, ok := v.([]any)
		if !ok {
			return nil, fmt.Errorf("in must be a list of keys, got %T", v)
		}
		return keys, nil
	case "range":
		m, ok := v.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("range must be a mapping with from, to, by; got %T", v)
		}
		var r vpath.Range
		for k, bound := range m {
			i, err := toInt(bound)
			if err != nil {
				return nil, fmt.Errorf("range %s: %w", k, err)
			}
			switch k {
			case "from":
				r.From = &i
			case "to":
				r.To = &i
			case "by":
				r.By = &i
			default:
				return nil, fmt.Errorf("range: unknown bound %q", k)
			}
		}
		return r, nil
	}
	return nil, fmt.Errorf("unknown selector %q", field)
}

func toInt(v any) (int, error) {
	switch x := v.(type) {
	case int:
		return x, nil
	case int64:
		return int(x), nil
	case uint64:
		if x > math.MaxInt {
			return 0, fmt.Errorf("%d out of range", x)
		}
		return int(x), nil
	case float64:
		if x != math.Trunc(x) {
			return 0, fmt.Errorf("%v is not an integer", x)
		}
		return int(x), nil
	}
	return 0, fmt.Errorf("%v (%T) is not an integer", v, v)
}

// run executes s through w.
func (s *step) run(w *fluent.Writer) error {
	cur := w
	if s.path != "" {
		cur = cur.Path(s.path)
	}
	if s.action == "batch" {
		return cur.Batch(func(bw *fluent.Writer) error {
			for _, sub := range s.batch {
				if err := sub.run(bw); err != nil {
					return err
				}
			}
			return nil
		})
	}
	if s.sel != "" {
		var sargs []any
		if s.sel != "$all" {
			sargs = []any{s.selArg}
		}
		res, err := cur.Prop(s.sel).Invoke(sargs...)
		if err != nil {
			return err
		}
		cur = res.(*fluent.Writer)
	}
	switch s.action {
	case "set":
		if s.val == nil {
			return cur.Set(value.Null())
		}
		return cur.Set(s.val)
	case "delete":
		return cur.Set(nil)
	case "update":
		up, err := fluent.Compute(s.val.(string))
		if err != nil {
			return err
		}
		return cur.Update(up)
	case "call":
		name := s.val.(string)
		m, ok := cur.Prop(name).(*fluent.Method)
		if !ok {
			tt, methods := cur.Classify()
			return fmt.Errorf("%s at %s: %s is not one of its methods %v", tt, cur, name, methods)
		}
		_, err := m.Invoke(s.args...)
		return err
	}
	return fmt.Errorf("unknown action %q", s.action)
}

func runScript(w *fluent.Writer, steps []*step) error {
	for i, s := range steps {
		if err := s.run(w); err != nil {
			return fmt.Errorf("step %d: %w", i, err)
		}
	}
	return nil
}
