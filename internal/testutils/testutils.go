package testutils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/joho/godotenv"
	"github.com/nfrund/writerfolio/internal/config"
)

// ConfigForTests loads the .env.test file, points the API at backend and
// returns a validated config. Staging files go to a per-test directory.
func ConfigForTests(t *testing.T, backend *FakeBackend) *config.Config {
	t.Helper()

	// 1. Find project root by looking for go.mod to reliably locate .env.test
	path, _ := os.Getwd()
	for {
		if _, err := os.Stat(filepath.Join(path, "go.mod")); err == nil {
			break
		}
		if path == filepath.Dir(path) {
			t.Fatalf("could not find project root with go.mod")
		}
		path = filepath.Dir(path)
	}

	// 2. Set the test environment for this test only.
	env, err := godotenv.Read(filepath.Join(path, ".env.test"))
	if err != nil {
		t.Fatalf("failed to load .env.test file: %v", err)
	}
	for key, value := range env {
		t.Setenv(key, value)
	}
	t.Setenv("WRITERFOLIO_API_BASE_URL", backend.URL())
	t.Setenv("WRITERFOLIO_UPLOAD_STAGING_DIR", t.TempDir())

	// 3. Build the config the way the server does, minus the YAML file.
	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("invalid test config: %v", err)
	}
	return cfg
}
