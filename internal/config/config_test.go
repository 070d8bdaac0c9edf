// AngelaMos | 2026
// config_test.go

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaultsAndEnv(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://atlas@localhost/atlas")
	t.Setenv("REDIS_URL", "redis://localhost:6379/0")
	t.Setenv("JOB_CATEGORIES", "Domestic, Ag ,Irrigation")
	t.Setenv("DEFAULT_RADIUS_KM", "25")

	c, err := load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if c.Atlas.DefaultRadiusKm != 25 {
		t.Fatalf("default radius = %v, want 25", c.Atlas.DefaultRadiusKm)
	}
	want := []string{"Domestic", "Ag", "Irrigation"}
	if len(c.Atlas.JobCategories) != len(want) {
		t.Fatalf("job categories = %v, want %v", c.Atlas.JobCategories, want)
	}
	for i := range want {
		if c.Atlas.JobCategories[i] != want[i] {
			t.Fatalf("job categories = %v, want %v", c.Atlas.JobCategories, want)
		}
	}
	if c.Server.ShutdownTimeout != 15*time.Second {
		t.Fatalf("shutdown timeout = %v", c.Server.ShutdownTimeout)
	}
	if got := c.Server.Address(); got != "0.0.0.0:8080" {
		t.Fatalf("address = %q", got)
	}
}

func TestLoadFileOverrides(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://atlas@localhost/atlas")
	t.Setenv("REDIS_URL", "redis://localhost:6379/0")

	path := filepath.Join(t.TempDir(), "config.yaml")
	body := "server:\n  port: 9090\natlas:\n  seed: true\n"
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	c, err := load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if c.Server.Port != 9090 {
		t.Fatalf("port = %d, want 9090", c.Server.Port)
	}
	if !c.Atlas.Seed {
		t.Fatalf("expected seed enabled from file")
	}
}

func TestLoadRequiresDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("REDIS_URL", "redis://localhost:6379/0")

	if _, err := load(""); err == nil {
		t.Fatalf("expected error without DATABASE_URL")
	}
}

func TestLoadRejectsCommaInCategory(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://atlas@localhost/atlas")
	t.Setenv("REDIS_URL", "redis://localhost:6379/0")

	path := filepath.Join(t.TempDir(), "config.yaml")
	body := "atlas:\n  job_categories:\n    - Domestic\n    - \"Ag, Irrigation\"\n"
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	if _, err := load(path); err == nil {
		t.Fatalf("expected error for category containing a comma")
	}
}

func TestLoadKeepsYAMLCategoryList(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://atlas@localhost/atlas")
	t.Setenv("REDIS_URL", "redis://localhost:6379/0")

	path := filepath.Join(t.TempDir(), "config.yaml")
	body := "atlas:\n  job_categories: [Domestic, Solar]\n"
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	c, err := load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(c.Atlas.JobCategories) != 2 || c.Atlas.JobCategories[1] != "Solar" {
		t.Fatalf("job categories = %v", c.Atlas.JobCategories)
	}
}

func TestLoadKeepsFirstError(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://atlas@localhost/atlas")
	t.Setenv("REDIS_URL", "redis://localhost:6379/0")

	missing := filepath.Join(t.TempDir(), "absent.yaml")

	if c, err := Load(missing); err == nil || c != nil {
		t.Fatalf("first Load = %v, %v; want error", c, err)
	}
	if c, err := Load(""); err == nil || c != nil {
		t.Fatalf("second Load = %v, %v; want the first error again", c, err)
	}
}
