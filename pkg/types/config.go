// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings used by stages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "powo-agent/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// PowoConfig holds settings for the Kew Gardens POWO API.
type PowoConfig struct {
	HTTPConfig `yaml:",inline"`

	// SearchBaseURL is the POWO search endpoint
	// (default "https://powo.science.kew.org/api/2/search").
	SearchBaseURL string `json:"search_base_url" yaml:"search_base_url"`

	// TaxonBaseURL is the POWO taxon detail endpoint
	// (default "https://powo.science.kew.org/api/2/taxon").
	TaxonBaseURL string `json:"taxon_base_url" yaml:"taxon_base_url"`

	// PerPage is the search page size (default 500). The agent reads a
	// single page; it never walks the cursor past page one.
	PerPage int `json:"per_page" yaml:"per_page"`
}

// AIConfig holds settings for the model that extracts queries from free text.
type AIConfig struct {
	// Model is the model identifier (e.g. "claude-sonnet-4-5-20250929").
	Model string `json:"model" yaml:"model"`

	// APIKey is the authentication key for the model API.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	// MaxRetries is the number of extraction attempts before giving up
	// (default 3). Schema-invalid model output counts as a failed attempt.
	MaxRetries int `json:"max_retries" yaml:"max_retries"`
}

// AgentConfig groups all settings for a single agent instance. Supplied
// at construction time; the agent never reads the environment itself.
type AgentConfig struct {
	Powo       PowoConfig `json:"powo" yaml:"powo"`
	Extraction AIConfig   `json:"extraction" yaml:"extraction"`
}

// Default endpoint and sizing values applied by WithDefaults.
const (
	DefaultSearchBaseURL = "https://powo.science.kew.org/api/2/search"
	DefaultTaxonBaseURL  = "https://powo.science.kew.org/api/2/taxon"
	DefaultPerPage       = 500
	DefaultMaxRetries    = 3
)

// WithDefaults returns a copy of the config with zero-valued fields
// replaced by package defaults.
func (c AgentConfig) WithDefaults() AgentConfig {
	if c.Powo.SearchBaseURL == "" {
		c.Powo.SearchBaseURL = DefaultSearchBaseURL
	}
	if c.Powo.TaxonBaseURL == "" {
		c.Powo.TaxonBaseURL = DefaultTaxonBaseURL
	}
	if c.Powo.PerPage <= 0 {
		c.Powo.PerPage = DefaultPerPage
	}
	if c.Powo.UserAgent == "" {
		c.Powo.UserAgent = "powo-agent/0.1"
	}
	if c.Extraction.MaxRetries <= 0 {
		c.Extraction.MaxRetries = DefaultMaxRetries
	}
	return c
}
