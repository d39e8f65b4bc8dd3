package app

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"

	"github.com/agentstation/starlist/pkg/constants"
)

// isolate keeps the user's home config and environment out of a test.
func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	for _, key := range []string{"GITHUB_TOKEN", "GH_TOKEN", "GEMINI_API_KEY", "GOOGLE_API_KEY", "DRY_RUN", "STARLIST_DRY_RUN", "CATALOG", "LOG_LEVEL"} {
		t.Setenv(key, "")
	}
}

// TestLoadConfig verifies basic config loading.
func TestLoadConfig(t *testing.T) {
	isolate(t)

	config, err := loadConfig(viper.New(), "")
	if err != nil {
		t.Fatalf("loadConfig() failed: %v", err)
	}

	if config.LogFormat == "" {
		t.Error("LogFormat not set to default")
	}
	if config.GeminiModel != constants.DefaultGeminiModel {
		t.Errorf("GeminiModel = %s, want %s", config.GeminiModel, constants.DefaultGeminiModel)
	}
	if config.CatalogPath != "catalog.yaml" {
		t.Errorf("CatalogPath = %s, want catalog.yaml", config.CatalogPath)
	}
	if len(config.Sources) != 5 {
		t.Errorf("Sources = %v, want all five origins", config.Sources)
	}
	if config.ShowcaseRepo != constants.DefaultShowcaseRepo {
		t.Errorf("ShowcaseRepo = %s, want %s", config.ShowcaseRepo, constants.DefaultShowcaseRepo)
	}
}

// TestConfig_EnvironmentVariables verifies environment variable loading.
func TestConfig_EnvironmentVariables(t *testing.T) {
	isolate(t)
	t.Setenv("GITHUB_TOKEN", "ghp_test")
	t.Setenv("GOOGLE_API_KEY", "google-key")
	t.Setenv("DRY_RUN", "true")
	t.Setenv("TARGET", "README.md")

	config, err := loadConfig(viper.New(), "")
	if err != nil {
		t.Fatalf("loadConfig() failed: %v", err)
	}

	if config.GitHubToken != "ghp_test" {
		t.Errorf("GitHubToken = %q, want ghp_test", config.GitHubToken)
	}
	if config.GeminiAPIKey != "google-key" {
		t.Errorf("GeminiAPIKey = %q, want the GOOGLE_API_KEY value", config.GeminiAPIKey)
	}
	if !config.DryRun {
		t.Error("DRY_RUN environment variable not loaded")
	}
	if config.TargetPath != "README.md" {
		t.Errorf("TargetPath = %q, want README.md", config.TargetPath)
	}
}

// TestConfig_GeminiKeyPrecedence verifies GEMINI_API_KEY wins over GOOGLE_API_KEY.
func TestConfig_GeminiKeyPrecedence(t *testing.T) {
	isolate(t)
	t.Setenv("GEMINI_API_KEY", "gemini-key")
	t.Setenv("GOOGLE_API_KEY", "google-key")

	config, err := loadConfig(viper.New(), "")
	if err != nil {
		t.Fatalf("loadConfig() failed: %v", err)
	}
	if config.GeminiAPIKey != "gemini-key" {
		t.Errorf("GeminiAPIKey = %q, want gemini-key", config.GeminiAPIKey)
	}
}

// TestConfig_File verifies values read from an explicit config file.
func TestConfig_File(t *testing.T) {
	isolate(t)

	path := filepath.Join(t.TempDir(), "starlist.yaml")
	content := `catalog: data/catalog.yaml
feeds:
  - https://example.com/feed.xml
  - https://example.com/atom.xml
strict_classification: true
showcase_tag: docs
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	config, err := loadConfigFile(path)
	if err != nil {
		t.Fatalf("loadConfigFile() failed: %v", err)
	}

	if config.CatalogPath != "data/catalog.yaml" {
		t.Errorf("CatalogPath = %q, want data/catalog.yaml", config.CatalogPath)
	}
	if len(config.Feeds) != 2 {
		t.Errorf("Feeds = %v, want two feeds", config.Feeds)
	}
	if !config.StrictClassification {
		t.Error("strict_classification not loaded")
	}
	if config.ShowcaseTag != "docs" {
		t.Errorf("ShowcaseTag = %q, want docs", config.ShowcaseTag)
	}
	if config.ConfigFile != path {
		t.Errorf("ConfigFile = %q, want %q", config.ConfigFile, path)
	}
}

// TestConfig_MissingFile verifies an explicit config file must exist.
func TestConfig_MissingFile(t *testing.T) {
	isolate(t)

	if _, err := loadConfigFile(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected an error for a missing config file")
	}
}

// TestConfig_UpdateFromFlags verifies flags override loaded values.
func TestConfig_UpdateFromFlags(t *testing.T) {
	config := &Config{Format: "table", LogLevel: "info"}

	config.UpdateFromFlags(true, false, true, "json", "")

	if !config.Verbose || config.Quiet || !config.NoColor {
		t.Errorf("flags not applied: %+v", config)
	}
	if config.Format != "json" {
		t.Errorf("Format = %q, want json", config.Format)
	}
	if config.LogLevel != "info" {
		t.Errorf("LogLevel = %q, an empty flag must keep the loaded value", config.LogLevel)
	}
}
