package config

import (
	"path/filepath"
	"testing"
)

func TestLoadSaveRoundtrip(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Network.Regions = 12
	cfg.Network.ProxyIDs = []int{2, 5}
	cfg.Synchronize = 4.0

	path := filepath.Join(t.TempDir(), "cosim.yaml")
	if err := Save(path, cfg); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if loaded.Network.Regions != 12 {
		t.Errorf("expected 12 regions, got %d", loaded.Network.Regions)
	}
	if len(loaded.Network.ProxyIDs) != 2 || loaded.Network.ProxyIDs[1] != 5 {
		t.Errorf("proxy ids lost in roundtrip: %v", loaded.Network.ProxyIDs)
	}
	if loaded.Synchronize != 4.0 {
		t.Errorf("expected sync 4.0, got %f", loaded.Synchronize)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load("/nonexistent/cosim.yaml"); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"one region", func(c *Config) { c.Network.Regions = 1 }},
		{"zero dt", func(c *Config) { c.Dt = 0 }},
		{"sync below dt", func(c *Config) { c.Synchronize = c.Dt / 2 }},
		{"negative duration", func(c *Config) { c.Duration = -1 }},
		{"proxy out of range", func(c *Config) { c.Network.ProxyIDs = []int{99} }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}

	if err := DefaultConfig().Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestPresets(t *testing.T) {
	if GetPreset("no_such_preset") != nil {
		t.Error("expected nil for unknown preset")
	}
	if len(ListPresets()) == 0 {
		t.Fatal("expected at least one preset")
	}
	for _, name := range ListPresets() {
		cfg := GetPreset(name)
		if cfg == nil {
			t.Fatalf("preset %s not retrievable", name)
		}
		if err := cfg.Validate(); err != nil {
			t.Errorf("preset %s invalid: %v", name, err)
		}
	}
}
