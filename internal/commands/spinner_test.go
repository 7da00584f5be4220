package commands

import (
	"bytes"
	"strings"
	"testing"
	"time"
)

func TestSpinnerLifecycle_StopWithSuccess(t *testing.T) {
	var buf bytes.Buffer
	s := newSpinner(&buf, "Cooking")
	s.start()
	// Let it spin briefly
	time.Sleep(200 * time.Millisecond)
	s.stopWithSuccess("done")

	out := buf.String()
	if !strings.Contains(out, "Cooking") {
		t.Errorf("spinner never drew its message: %q", out)
	}
	if !strings.Contains(out, "done") {
		t.Errorf("success message missing: %q", out)
	}
}

func TestSpinnerLifecycle_StopWithError(t *testing.T) {
	var buf bytes.Buffer
	s := newSpinner(&buf, "Cooking")
	s.start()
	time.Sleep(30 * time.Millisecond)
	// Should stop cleanly on error (no panic)
	s.stopWithError()
	// A second stop must not close the channel twice
	s.stopOnce()
}
