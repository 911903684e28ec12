package logger

import (
	"bytes"
	"strings"
	"testing"
)

func TestNew_InfoLevelSuppressesDebug(t *testing.T) {
	var buf bytes.Buffer
	log := New(WithOutput(&buf))

	log.Debug("hidden")
	log.Info("visible", "key", "value")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("debug message leaked at info level: %q", out)
	}
	if !strings.Contains(out, "visible") || !strings.Contains(out, "key=value") {
		t.Errorf("info message missing from output: %q", out)
	}
}

func TestNew_WithDebug(t *testing.T) {
	var buf bytes.Buffer
	log := New(WithOutput(&buf), WithDebug())

	log.Debug("now visible")

	if !strings.Contains(buf.String(), "now visible") {
		t.Errorf("debug message missing at debug level: %q", buf.String())
	}
}

func TestNew_JSONFormat(t *testing.T) {
	var buf bytes.Buffer
	log := New(WithOutput(&buf), WithFormat(FormatJSON))

	log.Info("structured")

	if !strings.Contains(buf.String(), `"msg":"structured"`) {
		t.Errorf("expected JSON output, got %q", buf.String())
	}
}

func TestWith_AddsFields(t *testing.T) {
	var buf bytes.Buffer
	log := New(WithOutput(&buf)).With("component", "store")

	log.Info("hello")

	if !strings.Contains(buf.String(), "component=store") {
		t.Errorf("expected bound field in output: %q", buf.String())
	}
}

func TestNop_Discards(t *testing.T) {
	log := Nop()
	log.Debug("a")
	log.Info("b")
	log.Warn("c")
	log.Error("d")
}
