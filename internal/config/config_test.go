package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chefgo.yaml")
	data := "log_level: debug\nseed: 42\ninputs: [1, 2, 3]\n"
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	opts, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %s", err)
	}
	if opts.LogLevel != "debug" {
		t.Errorf("log level = %q, want debug", opts.LogLevel)
	}
	if opts.Seed != 42 {
		t.Errorf("seed = %d, want 42", opts.Seed)
	}
	if len(opts.Inputs) != 3 || opts.Inputs[0] != 1 || opts.Inputs[2] != 3 {
		t.Errorf("inputs = %v, want [1 2 3]", opts.Inputs)
	}
}

func TestLoadDefaultsLogLevel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chefgo.yaml")
	if err := os.WriteFile(path, []byte("seed: 7\n"), 0644); err != nil {
		t.Fatal(err)
	}
	opts, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %s", err)
	}
	if opts.LogLevel != "info" {
		t.Errorf("log level = %q, want info", opts.LogLevel)
	}
}

func TestLoadRejectsBadYaml(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chefgo.yaml")
	if err := os.WriteFile(path, []byte(":\t not yaml ["), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected an error for malformed yaml")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("expected an error for a missing file")
	}
}
