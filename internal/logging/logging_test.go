package logging

import (
	"bytes"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
)

func TestLevelParsing(t *testing.T) {
	tests := []struct {
		level string
		want  logrus.Level
	}{
		{"debug", logrus.DebugLevel},
		{"info", logrus.InfoLevel},
		{"warn", logrus.WarnLevel},
		{"error", logrus.ErrorLevel},
		{"bogus", logrus.InfoLevel},
		{"", logrus.InfoLevel},
	}
	for _, tt := range tests {
		if got := New(tt.level, "text").GetLevel(); got != tt.want {
			t.Errorf("New(%q) level = %v, want %v", tt.level, got, tt.want)
		}
	}
}

func TestJSONFormat(t *testing.T) {
	log := New("info", "json")
	var buf bytes.Buffer
	log.SetOutput(&buf)
	log.Info("hello")
	if !strings.Contains(buf.String(), `"msg":"hello"`) {
		t.Errorf("output not JSON: %s", buf.String())
	}
}

func TestWithComponent(t *testing.T) {
	log := New("info", "json")
	var buf bytes.Buffer
	log.SetOutput(&buf)
	WithComponent(log, "store").Info("saved")
	if !strings.Contains(buf.String(), `"component":"store"`) {
		t.Errorf("missing component field: %s", buf.String())
	}
}
