// Package constants provides shared constants used throughout the starlist codebase.
// This includes timeouts, file permissions, endpoints and the sentinel markers
// the renderer looks for in the target document.
package constants

import "time"

// Timeout constants define various timeout durations used in the application
const (
	// DefaultHTTPTimeout is the transport default for API calls (hosting provider,
	// registry, content listing). Hosting-provider checks rely on it alone.
	DefaultHTTPTimeout = 30 * time.Second

	// ProbeTimeout bounds each generic link probe (HEAD, then the GET fallback).
	ProbeTimeout = 6 * time.Second

	// CategorizeTimeout bounds the single categorization request of a run.
	CategorizeTimeout = 2 * time.Minute

	// RunTimeout is the timeout for a whole update run
	RunTimeout = 10 * time.Minute

	// ShutdownTimeout is the grace period given to the CLI on error
	ShutdownTimeout = 5 * time.Second
)

// File permission constants define standard Unix file permissions
const (
	// DirPermissions is the default permission for created directories (rwxr-xr-x)
	DirPermissions = 0755

	// FilePermissions is the default permission for created files (rw-r--r--)
	FilePermissions = 0644
)

// Limit constants
const (
	// RegistrySearchSize is the page size requested from the package registry search
	RegistrySearchSize = 250

	// MaxResponseBytes caps how much of an API response body is read
	MaxResponseBytes = 10 << 20
)

// Endpoint defaults
const (
	// GitHubAPIURL is the base URL of the GitHub REST API
	GitHubAPIURL = "https://api.github.com"

	// NPMRegistryURL is the base URL of the npm registry
	NPMRegistryURL = "https://registry.npmjs.org"

	// DefaultRegistryQuery selects Starlight add-ons in the registry search
	DefaultRegistryQuery = "keywords:starlight-plugin"

	// DefaultShowcaseRepo holds the showcase listing
	DefaultShowcaseRepo = "withastro/astro.build"

	// DefaultShowcaseDir is the directory listed in DefaultShowcaseRepo
	DefaultShowcaseDir = "src/content/showcase"

	// DefaultShowcaseTag selects showcase files built with Starlight
	DefaultShowcaseTag = "starlight"

	// DefaultGeminiModel is the model used for categorization
	DefaultGeminiModel = "gemini-2.0-flash"
)

// Sentinel markers delimit the generated block in the rendering target
const (
	StartMarker = "<!-- starlist:start -->"
	EndMarker   = "<!-- starlist:end -->"
)

// UserAgent is sent with every outbound request
const UserAgent = "starlist (+https://github.com/agentstation/starlist)"
