package value

import "errors"

var (
	ErrConvert = errors.New("value conversion error")
)
