package entities

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	logger "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// Settings is the top-level configuration for updaterisk. Every section
// is optional; analysis falls back to the documented defaults.
type Settings struct {
	GitHub   GitHubSettings   `yaml:"github"`
	Registry RegistrySettings `yaml:"registry"`
	Scraper  ScraperSettings  `yaml:"scraper"`
	Server   ServerSettings   `yaml:"server"`
}

// GitHubSettings holds credentials for manifest retrieval.
type GitHubSettings struct {
	Token string `yaml:"token"` // Inline, ${ENV_VAR}, or file path
}

// RegistrySettings configures the package-registry client.
type RegistrySettings struct {
	BaseURL string `yaml:"base_url"`
}

// ScraperSettings configures the release-page fetcher.
type ScraperSettings struct {
	NavigationTimeoutSecs int `yaml:"navigation_timeout_secs"`
	RequestsPerMinute     int `yaml:"requests_per_minute"`
}

// ServerSettings configures the HTTP front end.
type ServerSettings struct {
	Port            int `yaml:"port"`
	CacheTTLMinutes int `yaml:"cache_ttl_minutes"`
}

const (
	DefaultNavigationTimeoutSecs = 60
	DefaultRequestsPerMinute     = 20
	DefaultServerPort            = 3001
	DefaultCacheTTLMinutes       = 15
)

// envVarPattern matches ${VAR_NAME} placeholders.
var envVarPattern = regexp.MustCompile(`\$\{([^}]+)}`)

// DefaultSettings returns a usable configuration without any config file.
func DefaultSettings() *Settings {
	settings := &Settings{}
	settings.applyDefaults()
	return settings
}

// NewSettings reads and parses a configuration file, expanding environment
// variables and resolving token file paths.
func NewSettings(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %q: %w", path, err)
	}

	var settings Settings
	if unmarshalErr := yaml.Unmarshal(data, &settings); unmarshalErr != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", unmarshalErr)
	}

	settings.GitHub.Token = resolveToken(settings.GitHub.Token)
	settings.applyDefaults()

	if validateErr := settings.validate(); validateErr != nil {
		return nil, validateErr
	}

	return &settings, nil
}

// FindConfigFile searches for a configuration file in standard locations.
// Returns the path to the first file found or an error if none is found.
func FindConfigFile() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = ""
	}

	locations := []string{
		".",
		".config",
		"configs",
	}
	if homeDir != "" {
		locations = append(
			locations,
			homeDir,
			filepath.Join(homeDir, ".config"),
		)
	}

	patterns := []string{
		".updaterisk.yaml",
		".updaterisk.yml",
		"updaterisk.yaml",
		"updaterisk.yml",
	}

	for _, loc := range locations {
		for _, pat := range patterns {
			p := filepath.Join(loc, pat)
			if _, statErr := os.Stat(p); statErr == nil {
				return p, nil
			}
		}
	}

	return "", errors.New("config file not found in default locations")
}

func (s *Settings) applyDefaults() {
	if s.GitHub.Token == "" {
		if t := os.Getenv("GITHUB_TOKEN"); t != "" {
			s.GitHub.Token = t
		} else {
			s.GitHub.Token = os.Getenv("GH_TOKEN")
		}
	}
	if s.Scraper.NavigationTimeoutSecs <= 0 {
		s.Scraper.NavigationTimeoutSecs = DefaultNavigationTimeoutSecs
	}
	if s.Scraper.RequestsPerMinute <= 0 {
		s.Scraper.RequestsPerMinute = DefaultRequestsPerMinute
	}
	if s.Server.Port <= 0 {
		s.Server.Port = DefaultServerPort
	}
	if s.Server.CacheTTLMinutes <= 0 {
		s.Server.CacheTTLMinutes = DefaultCacheTTLMinutes
	}
}

func (s *Settings) validate() error {
	if s.Server.Port > 65535 {
		return fmt.Errorf("server.port %d is out of range", s.Server.Port)
	}
	if s.Registry.BaseURL != "" && !strings.HasPrefix(s.Registry.BaseURL, "http") {
		return fmt.Errorf("registry.base_url %q must be an HTTP(S) URL", s.Registry.BaseURL)
	}
	return nil
}

// resolveToken expands environment variable references (${VAR}) and, if the
// resulting string is a path to an existing file, reads the token from the file.
func resolveToken(raw string) string {
	if raw == "" {
		return raw
	}

	// Expand ${ENV_VAR} references
	resolved := envVarPattern.ReplaceAllStringFunc(raw, func(match string) string {
		varName := envVarPattern.FindStringSubmatch(match)[1]
		if val := os.Getenv(varName); val != "" {
			return val
		}
		logger.Warnf("Environment variable %q is not set", varName)
		return ""
	})

	// If the resolved value is a path to an existing file, read the token from it
	if _, statErr := os.Stat(resolved); statErr == nil {
		data, readErr := os.ReadFile(resolved)
		if readErr != nil {
			logger.Warnf("Failed to read token file %q: %v", resolved, readErr)
			return resolved
		}
		logger.Infof("Read token from file %q", resolved)
		return strings.TrimSpace(string(data))
	}

	return resolved
}
