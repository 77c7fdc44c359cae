package logger

import (
	"bytes"
	"os"
	"strings"
	"testing"
)

func capture(t *testing.T, verbosity int, fn func()) string {
	t.Helper()
	var buf bytes.Buffer
	SetOutput(&buf)
	SetVerbosity(verbosity)
	t.Cleanup(func() {
		SetOutput(os.Stderr)
		SetVerbosity(int(Info))
	})
	fn()
	return buf.String()
}

func TestVerbosityFiltersLevels(t *testing.T) {
	out := capture(t, int(Error), func() {
		Errorf("broke: %d", 42)
		Infof("progress")
		Debugf("detail")
		Tracef("noise")
	})

	if !strings.Contains(out, "[ERROR] broke: 42") {
		t.Fatalf("error line missing from output: %q", out)
	}
	for _, prefix := range []string{"[INFO]", "[DEBUG]", "[TRACE]"} {
		if strings.Contains(out, prefix) {
			t.Fatalf("%s logged at Error verbosity: %q", prefix, out)
		}
	}
}

func TestTraceVerbosityLogsEverything(t *testing.T) {
	out := capture(t, int(Trace), func() {
		Errorf("e")
		Infof("i")
		Debugf("d")
		Tracef("t")
	})

	for _, prefix := range []string{"[ERROR]", "[INFO]", "[DEBUG]", "[TRACE]"} {
		if !strings.Contains(out, prefix) {
			t.Fatalf("%s missing at Trace verbosity: %q", prefix, out)
		}
	}
}

// Messages must be attributed to the call site, not to this package's
// internals.
func TestCallSiteAttribution(t *testing.T) {
	out := capture(t, int(Info), func() {
		Infof("where am i")
	})

	if !strings.Contains(out, "logger_test.go") {
		t.Fatalf("expected call site logger_test.go in output: %q", out)
	}
}
