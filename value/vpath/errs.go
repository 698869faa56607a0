package vpath

import "errors"

var (
	ErrParse      = errors.New("path parse error")
	ErrBadSegment = errors.New("bad path segment")
)
