package debug

import (
	"os"
	"strconv"
)

type debug struct {
	Write    bool
	Classify bool
	Dispatch bool
	Store    bool
	Batch    bool
}

var d *debug

func init() {
	d = &debug{}
	d.Write = boolEnv("FLUENT_DEBUG_WRITE")
	d.Classify = boolEnv("FLUENT_DEBUG_CLASSIFY")
	d.Dispatch = boolEnv("FLUENT_DEBUG_DISPATCH")
	d.Store = boolEnv("FLUENT_DEBUG_STORE")
	d.Batch = boolEnv("FLUENT_DEBUG_BATCH")
}

func boolEnv(v string) bool {
	x := os.Getenv(v)
	if x == "" {
		return false
	}
	b, _ := strconv.ParseBool(x)
	return b
}

func Write() bool {
	return d.Write
}
func Classify() bool {
	return d.Classify
}
func Dispatch() bool {
	return d.Dispatch
}
func Store() bool {
	return d.Store
}
func Batch() bool {
	return d.Batch
}
