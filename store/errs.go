package store

import (
	"errors"

	"github.com/JorrenH/solid-fluent-store/value/vpath"
)

var (
	ErrNoValue      = errors.New("setter called without a value")
	ErrNotContainer = errors.New("not a container")
	ErrBadSegment   = vpath.ErrBadSegment
)
