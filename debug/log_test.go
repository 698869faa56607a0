package debug

import (
	"bytes"
	"strings"
	"testing"

	"github.com/JorrenH/solid-fluent-store/value"
)

func TestLogf(t *testing.T) {
	var buf bytes.Buffer
	save := out
	out = &buf
	defer func() { out = save }()

	n := value.FromSlice([]*value.Node{value.FromInt(1), value.FromString("a")})
	Logf("set %s at %s (%d)\n", n, "l", 2)
	got := buf.String()
	if !strings.HasSuffix(got, "set [1,\"a\"] at l (2)\n") {
		t.Errorf("got %q", got)
	}
	if !strings.Contains(got, "[fluent] ") {
		t.Errorf("missing prefix: %q", got)
	}
}
