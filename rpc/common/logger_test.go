package common

import (
	"bytes"
	"github.com/lni/dragonboat/v4/logger"
	"strings"
	"testing"
)

// TestInitLoggersRepeated tests that later calls switch output and level of existing loggers
func TestInitLoggersRepeated(t *testing.T) {
	var first, second bytes.Buffer
	if err := InitLoggers("warn", &first); err != nil {
		t.Fatalf("InitLoggers() returned error: %v", err)
	}
	if err := InitLoggers("debug", &second); err != nil {
		t.Fatalf("second InitLoggers() returned error: %v", err)
	}
	defer InitLoggers("info", &bytes.Buffer{})

	logger.GetLogger(LoggerFileStore).Debugf("after switch")

	if strings.Contains(first.String(), "after switch") {
		t.Errorf("old output still receives logs: %q", first.String())
	}
	if !strings.Contains(second.String(), "DEBUG | filestore  | after switch") {
		t.Errorf("unexpected log output: %q", second.String())
	}
}
