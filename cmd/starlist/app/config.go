package app

import (
	"errors"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/agentstation/starlist/pkg/constants"
)

// Config holds the application configuration loaded from various sources
// including config files, environment variables, and .env files.
type Config struct {
	// Global flags
	Verbose bool
	Quiet   bool
	NoColor bool
	Format  string

	// Config file
	ConfigFile string

	// Credentials
	GitHubToken  string
	GeminiAPIKey string
	GeminiModel  string

	// Run
	DryRun               bool
	CatalogPath          string
	TargetPath           string
	AdditionsPath        string
	Sources              []string
	StrictClassification bool

	// Origins
	GitHubAPIURL  string
	RegistryURL   string
	RegistryQuery string
	ShowcaseRepo  string
	ShowcaseDir   string
	ShowcaseTag   string
	Feeds         []string
	FeedFilter    string
	Pages         []string

	// Logging configuration
	LogLevel  string
	LogFormat string
	LogOutput string
}

// LoadConfig loads configuration from all sources in order of precedence:
// 1. Command-line flags (handled by cobra)
// 2. Environment variables
// 3. .env files
// 4. Config file (~/.starlist.yaml or ./.starlist.yaml)
// 5. Defaults
func LoadConfig() (*Config, error) {
	return loadConfig(viper.New(), os.Getenv("STARLIST_CONFIG"))
}

// loadConfigFile loads configuration with an explicit config file.
func loadConfigFile(path string) (*Config, error) {
	return loadConfig(viper.New(), path)
}

func loadConfig(v *viper.Viper, configFile string) (*Config, error) {
	// Load .env files first (before Viper env binding)
	loadEnvFiles()

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	setDefaults(v)
	bindAliases(v)

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
		v.AddConfigPath(".")
		v.SetConfigType("yaml")
		v.SetConfigName(".starlist")
	}

	// Read config file (a missing default file is fine)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, err
		}
	}

	return &Config{
		Verbose: v.GetBool("verbose"),
		Quiet:   v.GetBool("quiet"),
		NoColor: v.GetBool("no_color"),
		Format:  v.GetString("format"),

		ConfigFile: v.ConfigFileUsed(),

		GitHubToken:  v.GetString("github_token"),
		GeminiAPIKey: v.GetString("gemini_api_key"),
		GeminiModel:  v.GetString("gemini_model"),

		DryRun:               v.GetBool("dry_run"),
		CatalogPath:          v.GetString("catalog"),
		TargetPath:           v.GetString("target"),
		AdditionsPath:        v.GetString("additions"),
		Sources:              v.GetStringSlice("sources"),
		StrictClassification: v.GetBool("strict_classification"),

		GitHubAPIURL:  v.GetString("github_api_url"),
		RegistryURL:   v.GetString("registry_url"),
		RegistryQuery: v.GetString("registry_query"),
		ShowcaseRepo:  v.GetString("showcase_repo"),
		ShowcaseDir:   v.GetString("showcase_dir"),
		ShowcaseTag:   v.GetString("showcase_tag"),
		Feeds:         v.GetStringSlice("feeds"),
		FeedFilter:    v.GetString("feed_filter"),
		Pages:         v.GetStringSlice("pages"),

		LogLevel:  v.GetString("log_level"),
		LogFormat: v.GetString("log_format"),
		LogOutput: v.GetString("log_output"),
	}, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("gemini_model", constants.DefaultGeminiModel)
	v.SetDefault("catalog", "catalog.yaml")
	v.SetDefault("sources", []string{"registry", "showcase", "feed", "page", "local"})
	v.SetDefault("github_api_url", constants.GitHubAPIURL)
	v.SetDefault("registry_url", constants.NPMRegistryURL)
	v.SetDefault("registry_query", constants.DefaultRegistryQuery)
	v.SetDefault("showcase_repo", constants.DefaultShowcaseRepo)
	v.SetDefault("showcase_dir", constants.DefaultShowcaseDir)
	v.SetDefault("showcase_tag", constants.DefaultShowcaseTag)
	v.SetDefault("feed_filter", "starlight")
	v.SetDefault("log_level", "")
	v.SetDefault("log_format", "auto")
	v.SetDefault("log_output", "stderr")
}

// bindAliases maps the conventional environment variable names onto keys.
func bindAliases(v *viper.Viper) {
	_ = v.BindEnv("github_token", "GITHUB_TOKEN", "GH_TOKEN")
	_ = v.BindEnv("gemini_api_key", "GEMINI_API_KEY", "GOOGLE_API_KEY")
	_ = v.BindEnv("dry_run", "DRY_RUN", "STARLIST_DRY_RUN")
}

// loadEnvFiles loads environment variables from .env files.
// .env.local overrides .env.
func loadEnvFiles() {
	for _, envFile := range []string{".env.local", ".env"} {
		_ = godotenv.Load(envFile)
	}
}

// UpdateFromFlags updates config values from parsed command flags.
// This should be called after cobra parses flags to ensure flag
// values take precedence over config file and env vars.
func (c *Config) UpdateFromFlags(verbose, quiet, noColor bool, format, logLevel string) {
	c.Verbose = c.Verbose || verbose
	c.Quiet = c.Quiet || quiet
	c.NoColor = c.NoColor || noColor
	if format != "" {
		c.Format = format
	}
	if logLevel != "" {
		c.LogLevel = logLevel
	}
}
