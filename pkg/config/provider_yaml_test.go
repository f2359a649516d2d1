package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfigFile(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(contents), 0644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}
	return path
}

func TestYAMLProviderLoadConfig(t *testing.T) {
	path := writeConfigFile(t, `
database:
  connection_string: "host=localhost user=hidromet dbname=hidromet sslmode=disable"
http:
  listen_addr: "127.0.0.1"
  port: 9090
management:
  port: 9091
  auth_token: "f0e7f5a2-test-token"
`)

	provider := NewYAMLProvider(path)
	cfg, err := provider.LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}

	if cfg.Database.ConnectionString == "" {
		t.Error("expected database connection string to be set")
	}
	if cfg.HTTP.ListenAddr != "127.0.0.1" {
		t.Errorf("expected HTTP listen addr 127.0.0.1, got %q", cfg.HTTP.ListenAddr)
	}
	if cfg.HTTP.Port != 9090 {
		t.Errorf("expected HTTP port 9090, got %d", cfg.HTTP.Port)
	}
	if cfg.Management.AuthToken != "f0e7f5a2-test-token" {
		t.Errorf("expected management auth token to be loaded, got %q", cfg.Management.AuthToken)
	}
}

func TestYAMLProviderRequiresConnectionString(t *testing.T) {
	path := writeConfigFile(t, `
http:
  port: 9090
`)

	provider := NewYAMLProvider(path)
	if _, err := provider.LoadConfig(); err == nil {
		t.Error("expected error for config without database.connection_string")
	}
}

func TestYAMLProviderIsReadOnly(t *testing.T) {
	provider := NewYAMLProvider("unused.yaml")
	if !provider.IsReadOnly() {
		t.Error("expected YAML provider to report read-only")
	}
	if err := provider.SaveManagementToken("some-token"); err == nil {
		t.Error("expected SaveManagementToken to fail for YAML provider")
	}
}

func TestYAMLProviderMissingFile(t *testing.T) {
	provider := NewYAMLProvider(filepath.Join(t.TempDir(), "nope.yaml"))
	if _, err := provider.LoadConfig(); err == nil {
		t.Error("expected error for missing config file")
	}
}
