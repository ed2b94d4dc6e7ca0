package diag

import (
	"strings"
	"testing"
)

func TestTake(t *testing.T) {
	snap, err := Take()
	if err != nil {
		t.Fatalf("Take failed: %v", err)
	}
	if snap.PID <= 0 {
		t.Errorf("pid = %d", snap.PID)
	}
	s := snap.String()
	for _, want := range []string{"pid", "up", "rss", "cpu"} {
		if !strings.Contains(s, want) {
			t.Errorf("String() = %q, missing %q", s, want)
		}
	}
}
