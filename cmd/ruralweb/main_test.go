package main

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Two-Pixel-Technologies/rural-research-web/internal/config"
)

func TestCommandsRegistered(t *testing.T) {
	want := []string{"check", "watch", "snapshot", "init", "version"}
	for _, name := range want {
		found := false
		for _, c := range rootCmd.Commands() {
			if c.Name() == name {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("command %q not registered", name)
		}
	}
}

func TestRunInit(t *testing.T) {
	logger = zap.NewNop()
	cfgPath = filepath.Join(t.TempDir(), "ruralweb.yaml")

	output := captureOutput(t, func() {
		if err := runInit(&cobra.Command{}, nil); err != nil {
			t.Fatalf("runInit returned error: %v", err)
		}
	})
	if !strings.Contains(output, "Wrote") {
		t.Fatalf("expected write notice, got: %s", output)
	}

	loaded, err := config.Load(cfgPath)
	if err != nil {
		t.Fatalf("load written config: %v", err)
	}
	if loaded.Selectors.NavMenu != config.DefaultConfig().Selectors.NavMenu {
		t.Errorf("written config lost defaults: %+v", loaded.Selectors)
	}

	// refuses to clobber
	if err := runInit(&cobra.Command{}, nil); err == nil {
		t.Fatal("expected error for existing config")
	}
}

func TestVersionOutput(t *testing.T) {
	logger = zap.NewNop()
	cfg = config.DefaultConfig()

	output := captureOutput(t, func() {
		versionCmd.Run(&cobra.Command{}, nil)
	})
	if !strings.Contains(output, cfg.Name) || !strings.Contains(output, cfg.Version) {
		t.Fatalf("expected name and version, got: %s", output)
	}
}

func captureOutput(t *testing.T, fn func()) string {
	t.Helper()

	origOut := os.Stdout
	origErr := os.Stderr
	rOut, wOut, _ := os.Pipe()
	rErr, wErr, _ := os.Pipe()
	os.Stdout = wOut
	os.Stderr = wErr

	done := make(chan string)
	go func() {
		var buf bytes.Buffer
		_, _ = io.Copy(&buf, rOut)
		_, _ = io.Copy(&buf, rErr)
		done <- buf.String()
	}()

	fn()

	_ = wOut.Close()
	_ = wErr.Close()
	os.Stdout = origOut
	os.Stderr = origErr
	return <-done
}
