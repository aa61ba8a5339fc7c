package log

import (
	"bytes"
	"strings"
	"testing"
)

func TestNewLogger(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		verbose   bool
		wantDebug bool
	}{
		{name: "quiet logger drops debug records", verbose: false, wantDebug: false},
		{name: "verbose logger keeps debug records", verbose: true, wantDebug: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var buf bytes.Buffer
			logger := NewLogger(&buf, tt.verbose)
			logger.Debug("page rendered", "page", 1)
			logger.Warn("slide clipped", "items", 2)

			out := buf.String()
			if got := strings.Contains(out, "page rendered"); got != tt.wantDebug {
				t.Errorf("debug record present = %v, want %v\n%s", got, tt.wantDebug, out)
			}
			if !strings.Contains(out, "slide clipped") || !strings.Contains(out, "items=2") {
				t.Errorf("expected warning with attributes, got %q", out)
			}
		})
	}
}
