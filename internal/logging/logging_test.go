package logging

import (
	"bytes"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestInitAndLoggingToFile(t *testing.T) {
	tempDir := t.TempDir()
	logPath := filepath.Join(tempDir, "nested", "zoolaunch.log")

	if err := Init(logPath); err != nil {
		t.Fatalf("Init error: %v", err)
	}
	t.Cleanup(func() {
		_ = Close()
	})

	LogEvent("hello %s", "world")
	LogLaunch("bare-metal", "inceptionv3", []string{"bash", "start.sh"})
	_ = Close()

	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	content := string(data)
	if !strings.Contains(content, "hello world") {
		t.Fatalf("expected LogEvent content, got: %s", content)
	}
	if !strings.Contains(content, "[BARE-METAL] model=inceptionv3 argv=bash start.sh") {
		t.Fatalf("expected LogLaunch content, got: %s", content)
	}
}

func TestInitWithoutFileLogsToStdout(t *testing.T) {
	if err := Init(""); err != nil {
		t.Fatalf("Init error: %v", err)
	}
	t.Cleanup(func() {
		log.SetOutput(os.Stderr)
	})

	var buf bytes.Buffer
	log.SetOutput(&buf)
	LogEvent("stdout %s", "only")
	if !strings.Contains(buf.String(), "stdout only") {
		t.Fatalf("expected buffered log output, got: %s", buf.String())
	}
}

func TestBuildLaunchMessageDefaults(t *testing.T) {
	msg := buildLaunchMessage(" container ", " ", nil)
	if !strings.Contains(msg, "[CONTAINER]") {
		t.Fatalf("expected uppercased kind, got: %s", msg)
	}
	if !strings.Contains(msg, "model=unknown") {
		t.Fatalf("expected default model, got: %s", msg)
	}
	if !strings.Contains(msg, `argv=""`) {
		t.Fatalf("expected empty argv marker, got: %s", msg)
	}
}
