package config

import "testing"

func TestLoadDevDefaults(t *testing.T) {
	t.Setenv("ENV", DevEnv)
	t.Setenv("JWT_SECRET", "")
	t.Setenv("DB_DRIVER", "")
	t.Setenv("DB_URL", "")
	t.Setenv("ADDRESS_LISTEN", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Address != ":8080" {
		t.Errorf("Address = %q, want the dev default", cfg.Address)
	}
	if cfg.JWTSecret != "unsecure" {
		t.Errorf("JWTSecret = %q, want the dev default", cfg.JWTSecret)
	}
	if cfg.DBDriver != "sqlite" || cfg.DBURL == "" {
		t.Errorf("database config = %q %q, want sqlite with a default url", cfg.DBDriver, cfg.DBURL)
	}
	if cfg.AdminUsername != "admin" || cfg.AdminPassword == "" {
		t.Errorf("admin bootstrap = %q/%q, want dev defaults", cfg.AdminUsername, cfg.AdminPassword)
	}
}

func TestLoadProductionNeedsSecret(t *testing.T) {
	t.Setenv("ENV", ProEnv)
	t.Setenv("JWT_SECRET", "")

	if _, err := Load(); err == nil {
		t.Error("production load without JWT_SECRET should fail")
	}
}

func TestLoadRejectsUnknownDriver(t *testing.T) {
	t.Setenv("ENV", DevEnv)
	t.Setenv("DB_DRIVER", "oracle")

	if _, err := Load(); err == nil {
		t.Error("unknown DB_DRIVER should fail")
	}
}

func TestLoadPostgresNeedsURL(t *testing.T) {
	t.Setenv("ENV", DevEnv)
	t.Setenv("DB_DRIVER", "postgres")
	t.Setenv("DB_URL", "")

	if _, err := Load(); err == nil {
		t.Error("postgres without DB_URL should fail")
	}
}
