package fluent

import (
	"errors"

	"github.com/JorrenH/solid-fluent-store/store"
)

var (
	ErrNotContainer = store.ErrNotContainer
	ErrBadArgument  = errors.New("bad argument")
)
