package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/viper"

	"github.com/tanyabudhrani/Task-Management-System/internal/criteria"
	"github.com/tanyabudhrani/Task-Management-System/internal/logger"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.StatePath != filepath.Join(".tms", "state.json") {
		t.Errorf("StatePath = %q, want .tms/state.json", cfg.StatePath)
	}
	if cfg.Fold != "corrected" {
		t.Errorf("Fold = %q, want corrected", cfg.Fold)
	}
	if cfg.Log.Level != "warn" {
		t.Errorf("Log.Level = %q, want warn", cfg.Log.Level)
	}
	if cfg.Log.JSON {
		t.Error("Log.JSON should be false by default")
	}
	if errs := cfg.Validate(); len(errs) != 0 {
		t.Errorf("default config should be valid, got %v", errs)
	}
}

func TestLoad_Defaults(t *testing.T) {
	v := viper.New()
	SetDefaults(v)

	cfg, err := Load(v)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.FoldMode() != criteria.FoldCorrected {
		t.Errorf("FoldMode = %v, want corrected", cfg.FoldMode())
	}
}

func TestLoad_Overrides(t *testing.T) {
	v := viper.New()
	SetDefaults(v)
	v.Set("fold", "literal")
	v.Set("log.level", "debug")
	v.Set("state_path", "custom.json")

	cfg, err := Load(v)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.FoldMode() != criteria.FoldLiteral {
		t.Errorf("FoldMode = %v, want literal", cfg.FoldMode())
	}
	if cfg.StatePath != "custom.json" {
		t.Errorf("StatePath = %q", cfg.StatePath)
	}
	lc := cfg.LoggerConfig(os.Stderr)
	if lc.Level != logger.DebugLevel {
		t.Errorf("logger level = %q, want debug", lc.Level)
	}
}

func TestLoad_Invalid(t *testing.T) {
	v := viper.New()
	SetDefaults(v)
	v.Set("fold", "sideways")
	v.Set("log.level", "loud")
	v.Set("state_path", " ")

	_, err := Load(v)
	if err == nil {
		t.Fatal("expected validation error")
	}
	verrs, ok := err.(ValidationErrors)
	if !ok {
		t.Fatalf("expected ValidationErrors, got %T", err)
	}
	if len(verrs) != 3 {
		t.Errorf("expected 3 errors, got %d: %v", len(verrs), verrs)
	}
	if !strings.Contains(err.Error(), "3 validation errors") {
		t.Errorf("unexpected message: %s", err.Error())
	}
}

func TestNew_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tms.yaml")
	body := "fold: literal\nlog:\n  level: info\n  json: true\n"
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}

	v, err := New(path)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	cfg, err := Load(v)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Fold != "literal" || cfg.Log.Level != "info" || !cfg.Log.JSON {
		t.Errorf("unexpected config: %+v", cfg)
	}
	if cfg.StatePath != Default().StatePath {
		t.Errorf("expected default state path, got %q", cfg.StatePath)
	}
}

func TestNew_MissingExplicitFile(t *testing.T) {
	if _, err := New(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("expected error for missing explicit config file")
	}
}

func TestNew_Env(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("TMS_FOLD", "literal")
	t.Setenv("TMS_LOG_LEVEL", "error")

	v, err := New("")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	cfg, err := Load(v)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Fold != "literal" {
		t.Errorf("Fold = %q, want literal from env", cfg.Fold)
	}
	if cfg.Log.Level != "error" {
		t.Errorf("Log.Level = %q, want error from env", cfg.Log.Level)
	}
}

func TestConfigDir_XDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	if got := ConfigDir(); got != filepath.Join("/tmp/xdg", "tms") {
		t.Errorf("ConfigDir = %q", got)
	}
}
