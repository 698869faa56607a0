package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/JorrenH/solid-fluent-store/value"

	"github.com/fatih/color"
	diffpatch "github.com/sergi/go-diff/diffmatchpatch"
)

type diffLine struct {
	op   diffpatch.Operation
	text string
}

// lineDiff diffs the encodings of a and b line by line.
func (cfg *MainConfig) lineDiff(a, b *value.Node) ([]diffLine, error) {
	da, err := cfg.encodeDoc(a)
	if err != nil {
		return nil, err
	}
	db, err := cfg.encodeDoc(b)
	if err != nil {
		return nil, err
	}
	dmp := diffpatch.New()
	ra, rb, lines := dmp.DiffLinesToRunes(string(da), string(db))
	diffs := dmp.DiffCharsToLines(dmp.DiffMainRunes(ra, rb, false), lines)
	var res []diffLine
	for _, d := range diffs {
		for _, ln := range strings.SplitAfter(d.Text, "\n") {
			if ln == "" {
				continue
			}
			res = append(res, diffLine{op: d.Type, text: strings.TrimSuffix(ln, "\n")})
		}
	}
	return res, nil
}

func diffDocs(cfg *MainConfig, w io.Writer, a, b *value.Node) error {
	lines, err := cfg.lineDiff(a, b)
	if err != nil {
		return err
	}
	add, del := fmt.Sprintf, fmt.Sprintf
	if cfg.colors(w) {
		add = color.New(color.FgGreen).SprintfFunc()
		del = color.New(color.FgRed).SprintfFunc()
	}
	for _, ln := range lines {
		var s string
		switch ln.op {
		case diffpatch.DiffInsert:
			s = add("+ %s", ln.text)
		case diffpatch.DiffDelete:
			s = del("- %s", ln.text)
		default:
			s = "  " + ln.text
		}
		if _, err := fmt.Fprintln(w, s); err != nil {
			return err
		}
	}
	return nil
}
