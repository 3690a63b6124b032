package config

import "testing"

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()
	if cfg.HTTPAddr == "" || cfg.DatabaseURL == "" {
		t.Fatalf("defaults missing: %+v", cfg)
	}
	if cfg.Development() {
		t.Fatalf("default env must not be development")
	}
}

func TestLoad_DevFlag(t *testing.T) {
	t.Setenv("APP_ENV", "development")
	if !Load().Development() {
		t.Fatalf("APP_ENV=development should enable dev mode")
	}
}

func TestSplitCSV(t *testing.T) {
	got := splitCSV("a:9092, b:9092 ,,c:9092")
	if len(got) != 3 || got[0] != "a:9092" || got[1] != "b:9092" || got[2] != "c:9092" {
		t.Fatalf("splitCSV = %v", got)
	}
}
