// Package config assembles the run configuration from built-in defaults, the
// environment (optionally via a .env file) and an optional YAML target list.
package config

import (
	"fmt"
	"log"
	"os"
	"slices"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/naka-gawa/project-pulse/internal/domain"
)

// API backends for repository stats.
const (
	APIREST    = "rest"
	APIGraphQL = "graphql"
)

// Config holds everything a report run needs.
type Config struct {
	GitHubToken      string
	StackExchangeKey string

	Projects []domain.RepoIdentifier
	SDKs     []domain.LanguageGroup
	Tags     []string
}

// fileConfig mirrors the YAML layout. Lists left out keep their defaults.
type fileConfig struct {
	Projects []string `yaml:"projects"`
	SDKs     []struct {
		Language string   `yaml:"language"`
		Repos    []string `yaml:"repos"`
	} `yaml:"sdks"`
	Tags []string `yaml:"tags"`
}

// Default returns the built-in target lists with no credentials.
func Default() *Config {
	sdks := make([]domain.LanguageGroup, len(defaultSDKs))
	for i, g := range defaultSDKs {
		sdks[i] = domain.LanguageGroup{Language: g.Language, Repos: slices.Clone(g.Repos)}
	}
	return &Config{
		Projects: slices.Clone(defaultProjects),
		SDKs:     sdks,
		Tags:     slices.Clone(defaultTags),
	}
}

// Load reads credentials from the environment, loading .env first when present,
// and overlays the target lists from the YAML file at path when path is set.
func Load(path string, logger *log.Logger) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		logger.Println(".env file not found, using system environment variables")
	}

	cfg := Default()
	cfg.GitHubToken = os.Getenv("GITHUB_TOKEN")
	cfg.StackExchangeKey = os.Getenv("STACKEXCHANGE_KEY")

	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := cfg.apply(data); err != nil {
		return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) apply(data []byte) error {
	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("failed to parse yaml: %w", err)
	}

	if fc.Projects != nil {
		projects, err := parseRepos(fc.Projects)
		if err != nil {
			return fmt.Errorf("projects: %w", err)
		}
		c.Projects = projects
	}
	if fc.SDKs != nil {
		groups := make([]domain.LanguageGroup, 0, len(fc.SDKs))
		for _, g := range fc.SDKs {
			if g.Language == "" {
				return fmt.Errorf("sdks: language is required")
			}
			repos, err := parseRepos(g.Repos)
			if err != nil {
				return fmt.Errorf("sdks[%s]: %w", g.Language, err)
			}
			groups = append(groups, domain.LanguageGroup{Language: g.Language, Repos: repos})
		}
		c.SDKs = groups
	}
	if fc.Tags != nil {
		c.Tags = fc.Tags
	}
	return nil
}

func parseRepos(names []string) ([]domain.RepoIdentifier, error) {
	repos := make([]domain.RepoIdentifier, 0, len(names))
	for _, n := range names {
		repo, err := domain.ParseRepoIdentifier(n)
		if err != nil {
			return nil, err
		}
		repos = append(repos, repo)
	}
	return repos, nil
}
