package migrate_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rentkart/rentkart-backend/pkg/migrate"
)

func TestSettingsMigrationSeedsSingleton(t *testing.T) {
	matches, err := filepath.Glob(filepath.Join("migrations", "*_create_settings_table.sql"))
	if err != nil {
		t.Fatalf("glob migrations: %v", err)
	}
	if len(matches) == 0 {
		t.Fatalf("no settings migration file found")
	}

	data, err := os.ReadFile(matches[0])
	if err != nil {
		t.Fatalf("read migration file: %v", err)
	}
	content := string(data)

	checks := []string{
		"CREATE TABLE IF NOT EXISTS settings",
		"CHECK (id = 1)",
		"VALUES (1, 10, 5, 500)",
		"ON CONFLICT (id) DO NOTHING",
		"DROP TABLE IF EXISTS settings",
	}

	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}

func TestMigrationsDirValidates(t *testing.T) {
	if err := migrate.ValidateDir("migrations"); err != nil {
		t.Fatalf("migrations dir failed validation: %v", err)
	}
}
