package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultsAreComplete(t *testing.T) {
	cfg := Defaults()
	if cfg.Server.Name == "" {
		t.Errorf("expected a default server name")
	}
	if cfg.Scheduler.TickRate <= 0 {
		t.Errorf("expected a positive default tick rate")
	}
	sum := cfg.Roles.HomebodyWeight + cfg.Roles.PlazaShopWeight + cfg.Roles.InnGoerWeight + cfg.Roles.WandererWeight
	if sum < 0.99 || sum > 1.01 {
		t.Errorf("expected default role weights to sum to ~1.0, got %f", sum)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "townsim.toml")
	doc := `
[server]
name = "riverside"
town_id = 7
seed = 99

[scheduler]
tick_rate = "250ms"
active_cap = 40
`
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Name != "riverside" || cfg.Server.TownID != 7 || cfg.Server.Seed != 99 {
		t.Errorf("expected overridden server fields, got %+v", cfg.Server)
	}
	if cfg.Scheduler.TickRate != 250*time.Millisecond || cfg.Scheduler.ActiveCap != 40 {
		t.Errorf("expected overridden scheduler fields, got %+v", cfg.Scheduler)
	}
	// Fields absent from the file should retain their Defaults() value.
	if cfg.Logging.Level != "info" {
		t.Errorf("expected unset logging level to keep its default, got %q", cfg.Logging.Level)
	}
	if cfg.Server.StartTime == 0 {
		t.Errorf("expected Load to stamp StartTime")
	}
}

func TestLoadMissingFileReturnsNotExist(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	if err == nil {
		t.Fatalf("expected an error for a missing config file")
	}
	if !os.IsNotExist(errUnwrap(err)) {
		t.Errorf("expected the error to wrap os.ErrNotExist, got %v", err)
	}
}

// errUnwrap pulls the *PathError out of Load's fmt.Errorf wrapping, since
// os.IsNotExist does not itself unwrap %w chains.
func errUnwrap(err error) error {
	type unwrapper interface{ Unwrap() error }
	if u, ok := err.(unwrapper); ok {
		return u.Unwrap()
	}
	return err
}

func TestLoadRejectsMalformedTOML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.toml")
	if err := os.WriteFile(path, []byte("not = [valid"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Errorf("expected malformed TOML to produce an error")
	}
}
