package config

import (
	"strings"
	"testing"
	"time"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()

	t.Setenv("SERVER_PORT", "8080")
	t.Setenv("SERVER_HOST", "0.0.0.0")
	t.Setenv("SERVER_BASE_URL", "https://book.example.com")
	t.Setenv("SERVER_READ_TIMEOUT", "5s")
	t.Setenv("SERVER_WRITE_TIMEOUT", "10s")
	t.Setenv("SERVER_IDLE_TIMEOUT", "60s")
	t.Setenv("SERVER_SHUTDOWN_TIMEOUT", "15s")

	t.Setenv("DB_HOST", "localhost")
	t.Setenv("DB_PORT", "5432")
	t.Setenv("DB_USER", "resolver")
	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("DB_NAME", "publinks")
	t.Setenv("DB_SSLMODE", "disable")
	t.Setenv("DB_MAX_CONNS", "10")
	t.Setenv("DB_MIN_CONNS", "2")

	t.Setenv("APP_ENV", "test")
	t.Setenv("LOG_LEVEL", "debug")
}

func TestLoad(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Server.Port != "8080" {
		t.Errorf("Server.Port = %q, want 8080", cfg.Server.Port)
	}
	if cfg.Server.ReadTimeout != 5*time.Second {
		t.Errorf("Server.ReadTimeout = %v, want 5s", cfg.Server.ReadTimeout)
	}
	if cfg.Database.Name != "publinks" {
		t.Errorf("Database.Name = %q, want publinks", cfg.Database.Name)
	}
	if cfg.App.Environment != "test" {
		t.Errorf("App.Environment = %q, want test", cfg.App.Environment)
	}
}

func TestLoad_CacheDefaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Cache.LinkCapacity != 500 {
		t.Errorf("Cache.LinkCapacity = %d, want default 500", cfg.Cache.LinkCapacity)
	}
	if cfg.Cache.LinkTTL != 5*time.Minute {
		t.Errorf("Cache.LinkTTL = %v, want default 5m", cfg.Cache.LinkTTL)
	}
	if cfg.Cache.DisplayCapacity != 500 {
		t.Errorf("Cache.DisplayCapacity = %d, want default 500", cfg.Cache.DisplayCapacity)
	}
	if cfg.Redirects.RulesFile != "" {
		t.Errorf("Redirects.RulesFile = %q, want empty by default", cfg.Redirects.RulesFile)
	}
	if !cfg.Observability.MetricsEnabled {
		t.Error("Observability.MetricsEnabled = false, want default true")
	}
	if cfg.Observability.ServiceName != "linkresolver" {
		t.Errorf("Observability.ServiceName = %q, want linkresolver", cfg.Observability.ServiceName)
	}
}

func TestLoad_CacheOverrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("CACHE_LINK_CAPACITY", "1000")
	t.Setenv("CACHE_LINK_TTL", "30s")
	t.Setenv("CACHE_DISPLAY_TTL", "2m")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Cache.LinkCapacity != 1000 {
		t.Errorf("Cache.LinkCapacity = %d, want 1000", cfg.Cache.LinkCapacity)
	}
	if cfg.Cache.LinkTTL != 30*time.Second {
		t.Errorf("Cache.LinkTTL = %v, want 30s", cfg.Cache.LinkTTL)
	}
	if cfg.Cache.DisplayTTL != 2*time.Minute {
		t.Errorf("Cache.DisplayTTL = %v, want 2m", cfg.Cache.DisplayTTL)
	}
}

func TestLoad_InvalidCache(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("CACHE_LINK_CAPACITY", "0")

	if _, err := Load(); err == nil {
		t.Fatal("Load() accepted a zero link cache capacity")
	}
}

func TestLoad_MissingRequired(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("DB_HOST", "")

	if _, err := Load(); err == nil {
		t.Fatal("Load() accepted an empty DB_HOST")
	}
}

func TestLoad_InvalidEnvironment(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("APP_ENV", "qa")

	_, err := Load()
	if err == nil {
		t.Fatal("Load() accepted an unknown environment")
	}
	if !strings.Contains(err.Error(), "invalid App config") {
		t.Errorf("error = %v, want App config failure", err)
	}
}

func TestLoad_MinConnsAboveMax(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("DB_MIN_CONNS", "20")
	t.Setenv("DB_MAX_CONNS", "5")

	if _, err := Load(); err == nil {
		t.Fatal("Load() accepted min connections above max")
	}
}

func TestDatabaseConfig_ConnectionString(t *testing.T) {
	cfg := DatabaseConfig{
		Host:     "db.internal",
		Port:     "5432",
		User:     "resolver",
		Password: "secret",
		Name:     "publinks",
		SSLMode:  "require",
	}

	want := "host=db.internal port=5432 user=resolver password=secret dbname=publinks sslmode=require"
	if got := cfg.ConnectionString(); got != want {
		t.Errorf("ConnectionString() = %q, want %q", got, want)
	}
}
