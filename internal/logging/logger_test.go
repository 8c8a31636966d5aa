package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestHelpersAreNoOpsBeforeInit(t *testing.T) {
	Logger = nil
	Info("ignored", "k", "v")
	Debug("ignored")
	Warn("ignored")
	Error("ignored")
	Close()
}

func TestInitWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "tracker.log")
	if err := Init(path, log.InfoLevel); err != nil {
		t.Fatalf("Init: %v", err)
	}
	Info("status saved", "channel", "twitter")
	Debug("hidden at info level")
	Close()
	Logger = nil

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	out := string(data)
	for _, want := range []string{"post-share-tracker started", "status saved", "channel=twitter", "shutting down"} {
		if !strings.Contains(out, want) {
			t.Errorf("log missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "hidden at info level") {
		t.Error("debug line written at info level")
	}
}

func TestSetOutput(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf, log.DebugLevel)
	defer func() { Logger = nil }()

	Warn("skipped post", "path", "/posts/bad.md")
	if !strings.Contains(buf.String(), "skipped post") || !strings.Contains(buf.String(), "/posts/bad.md") {
		t.Errorf("unexpected output: %q", buf.String())
	}
}
