package logging

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
)

func TestNewLoggerSingleton(t *testing.T) {
	a := NewLogger("test-singleton")
	b := NewLogger("test-singleton")
	if a != b {
		t.Error("NewLogger should return the same entry per component")
	}
}

func TestTextFormatter(t *testing.T) {
	f := &TextFormatter{Config: FormatConfig{DisableTimestamp: true}}

	logger := logrus.New()
	entry := logger.WithField("component", "explorer").WithField("path", "notes/todo.md")
	entry.Level = logrus.InfoLevel
	entry.Time = time.Now()
	entry.Message = "applied icon"

	out, err := f.Format(entry)
	if err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	line := string(out)
	for _, want := range []string{"[INFO]", "[explorer]", "applied icon", "path=notes/todo.md"} {
		if !strings.Contains(line, want) {
			t.Errorf("formatted line %q missing %q", line, want)
		}
	}
}

func TestTextFormatterWarnShortened(t *testing.T) {
	f := &TextFormatter{Config: FormatConfig{DisableTimestamp: true, DisableComponent: true}}

	logger := logrus.New()
	var buf bytes.Buffer
	logger.SetOutput(&buf)
	logger.SetFormatter(f)
	logger.Warn("slow host")

	if !strings.Contains(buf.String(), "[WARN]") {
		t.Errorf("expected [WARN] in %q", buf.String())
	}
}
