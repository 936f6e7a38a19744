package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	for _, k := range []string{"RAPIDAPI_KEY", "PORT", "CODEPROXY_JUDGE0_API_KEY", "CODEPROXY_SERVER_PORT", "CODEPROXY_LOG_LEVEL", "CODEPROXY_STORAGE_DB_PATH"} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
	return home
}

func TestLoadDefaults(t *testing.T) {
	home := isolate(t)

	cfg, err := Load(Options{EnvFile: filepath.Join(home, "missing.env")})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Server.Port != 3001 {
		t.Errorf("port = %d, want 3001", cfg.Server.Port)
	}
	if cfg.Judge0.APIKey != "" {
		t.Errorf("api key = %q, want empty", cfg.Judge0.APIKey)
	}
	if cfg.Judge0.BaseURL != "https://judge0-ce.p.rapidapi.com" {
		t.Errorf("base url = %q", cfg.Judge0.BaseURL)
	}
	if cfg.Judge0.Timeout != 0 {
		t.Errorf("timeout = %v, want 0", cfg.Judge0.Timeout)
	}
	if cfg.Storage.DBPath != "" || cfg.HistoryEnabled() {
		t.Errorf("history should be off by default, db path = %q", cfg.Storage.DBPath)
	}
	if cfg.Server.MaxBodyBytes != 100*1024 {
		t.Errorf("max body bytes = %d, want 102400", cfg.Server.MaxBodyBytes)
	}
}

func TestLoadLegacyEnvNames(t *testing.T) {
	home := isolate(t)
	t.Setenv("RAPIDAPI_KEY", "from-env")
	t.Setenv("PORT", "9090")

	cfg, err := Load(Options{EnvFile: filepath.Join(home, "missing.env")})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Judge0.APIKey != "from-env" {
		t.Errorf("api key = %q, want from-env", cfg.Judge0.APIKey)
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("port = %d, want 9090", cfg.Server.Port)
	}
	if got := cfg.Judge0Client(); got.APIKey != "from-env" || got.Host != "judge0-ce.p.rapidapi.com" {
		t.Errorf("Judge0Client() = %+v", got)
	}
}

func TestLoadEnvFile(t *testing.T) {
	home := isolate(t)
	envFile := filepath.Join(home, ".env")
	if err := os.WriteFile(envFile, []byte("RAPIDAPI_KEY=dotenv-key\nPORT=4000\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		os.Unsetenv("RAPIDAPI_KEY")
		os.Unsetenv("PORT")
	})

	cfg, err := Load(Options{EnvFile: envFile})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Judge0.APIKey != "dotenv-key" {
		t.Errorf("api key = %q, want dotenv-key", cfg.Judge0.APIKey)
	}
	if cfg.Server.Port != 4000 {
		t.Errorf("port = %d, want 4000", cfg.Server.Port)
	}
}

func TestLoadConfigFile(t *testing.T) {
	home := isolate(t)
	t.Setenv("MY_JUDGE_KEY", "expanded")

	path := filepath.Join(home, "codeproxy.yaml")
	data := []byte(`
server:
  port: 8081
  static_dir: ./public
  max_body_bytes: 2048
judge0:
  base_url: http://localhost:2358
  api_key: ${MY_JUDGE_KEY}
  timeout: 15s
storage:
  db_path: /var/lib/codeproxy/history.db
log:
  level: debug
  format: json
`)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(Options{ConfigFile: path, EnvFile: filepath.Join(home, "missing.env")})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Server.Port != 8081 || cfg.Server.StaticDir != "./public" || cfg.Server.MaxBodyBytes != 2048 {
		t.Errorf("server = %+v", cfg.Server)
	}
	if cfg.Judge0.BaseURL != "http://localhost:2358" {
		t.Errorf("base url = %q", cfg.Judge0.BaseURL)
	}
	if cfg.Judge0.APIKey != "expanded" {
		t.Errorf("api key = %q, want expanded", cfg.Judge0.APIKey)
	}
	if cfg.Judge0.Timeout != 15*time.Second {
		t.Errorf("timeout = %v, want 15s", cfg.Judge0.Timeout)
	}
	if !cfg.HistoryEnabled() || cfg.Storage.DBPath != "/var/lib/codeproxy/history.db" {
		t.Errorf("history should be enabled by an explicit db_path, got %q", cfg.Storage.DBPath)
	}
	if cfg.Log.Level != "debug" || cfg.Log.Format != "json" {
		t.Errorf("log = %+v", cfg.Log)
	}
}

func TestLoadMissingExplicitConfig(t *testing.T) {
	home := isolate(t)
	_, err := Load(Options{ConfigFile: filepath.Join(home, "nope.yaml"), EnvFile: filepath.Join(home, "missing.env")})
	if err == nil {
		t.Fatal("expected error for missing explicit config file")
	}
}

func TestLoadHistoryFromEnv(t *testing.T) {
	home := isolate(t)
	t.Setenv("CODEPROXY_STORAGE_DB_PATH", filepath.Join(home, "history.db"))

	cfg, err := Load(Options{EnvFile: filepath.Join(home, "missing.env")})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !cfg.HistoryEnabled() {
		t.Error("CODEPROXY_STORAGE_DB_PATH should enable history")
	}
}
