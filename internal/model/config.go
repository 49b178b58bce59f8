package model

import "time"

// Config is the complete draftgate configuration.
// Values are layered: defaults, config file, DRAFTGATE_* env vars, CLI flags.
type Config struct {
	Classifier  ClassifierConfig  `yaml:"classifier" mapstructure:"classifier"`
	Preflight   PreflightConfig   `yaml:"preflight" mapstructure:"preflight"`
	Features    []string          `yaml:"features" mapstructure:"features"`
	Log         LogConfig         `yaml:"log" mapstructure:"log"`
	LLM         LLMConfig         `yaml:"llm" mapstructure:"llm"`
	Assets      AssetsConfig      `yaml:"assets" mapstructure:"assets"`
	Concurrency ConcurrencyConfig `yaml:"concurrency" mapstructure:"concurrency"`
}

// ClassifierConfig holds the domain lists used by the source classifier.
// Government and academic suffixes are fixed rules and cannot be configured.
type ClassifierConfig struct {
	NewsDomains         []string `yaml:"news_domains" mapstructure:"news_domains"`
	PressReleaseDomains []string `yaml:"press_release_domains" mapstructure:"press_release_domains"`
	ReferenceDomains    []string `yaml:"reference_domains" mapstructure:"reference_domains"` // Encyclopedias and social media
	BlogDomains         []string `yaml:"blog_domains" mapstructure:"blog_domains"`
}

// Header detection modes
const (
	HeaderModeStructural = "structural" // Heading command applied at least once
	HeaderModeLoose      = "loose"      // Structural, or headline-like line breaks in plain text
)

// PreflightConfig holds the thresholds and word lists used by the evaluator
type PreflightConfig struct {
	LeadMinChars    int      `yaml:"lead_min_chars" mapstructure:"lead_min_chars"`
	HeaderMode      string   `yaml:"header_mode" mapstructure:"header_mode"`
	NotabilityMin   int      `yaml:"notability_min" mapstructure:"notability_min"`
	CopyvioMaxRatio float64  `yaml:"copyvio_max_ratio" mapstructure:"copyvio_max_ratio"`
	PromoTerms      []string `yaml:"promo_terms" mapstructure:"promo_terms"`
	KnownTitles     []string `yaml:"known_titles" mapstructure:"known_titles"`
}

// LogConfig configures structured logging
type LogConfig struct {
	Level       string `yaml:"level" mapstructure:"level"`
	Development bool   `yaml:"development" mapstructure:"development"`
}

// LLMConfig configures the optional reviewer note
type LLMConfig struct {
	Provider       string `yaml:"provider" mapstructure:"provider"` // "openai", "ollama", or "" (disabled)
	Model          string `yaml:"model" mapstructure:"model"`
	APIKey         string `yaml:"-" mapstructure:"api_key"`
	BaseURL        string `yaml:"base_url,omitempty" mapstructure:"base_url"`
	Timeout        int    `yaml:"timeout" mapstructure:"timeout"` // seconds
	MaxTokens      int    `yaml:"max_tokens" mapstructure:"max_tokens"`
	StrictEvidence bool   `yaml:"strict_evidence" mapstructure:"strict_evidence"`
}

// AssetsConfig configures the icon loader
type AssetsConfig struct {
	Enabled           bool          `yaml:"enabled" mapstructure:"enabled"`
	APIURL            string        `yaml:"api_url" mapstructure:"api_url"`
	UserAgent         string        `yaml:"user_agent" mapstructure:"user_agent"`
	Timeout           time.Duration `yaml:"timeout" mapstructure:"timeout"`
	RequestsPerSecond float64       `yaml:"requests_per_second" mapstructure:"requests_per_second"`
	BurstSize         int           `yaml:"burst_size" mapstructure:"burst_size"`
	CacheTTL          time.Duration `yaml:"cache_ttl" mapstructure:"cache_ttl"`
	RespectRobots     bool          `yaml:"respect_robots" mapstructure:"respect_robots"`
	HTTPProxy         string        `yaml:"http_proxy,omitempty" mapstructure:"http_proxy"`
	HTTPSProxy        string        `yaml:"https_proxy,omitempty" mapstructure:"https_proxy"`
	NoProxy           string        `yaml:"no_proxy,omitempty" mapstructure:"no_proxy"`
}

// ConcurrencyConfig configures batch evaluation
type ConcurrencyConfig struct {
	Workers int `yaml:"workers" mapstructure:"workers"`
}

// DefaultConfig returns the built-in configuration
func DefaultConfig() *Config {
	return &Config{
		Classifier: ClassifierConfig{
			NewsDomains: []string{
				"nytimes.com", "washingtonpost.com", "wsj.com", "bbc.co.uk", "bbc.com",
				"theguardian.com", "reuters.com", "apnews.com", "npr.org", "latimes.com",
				"economist.com", "ft.com", "bloomberg.com", "cnn.com", "nature.com",
				"science.org", "newscientist.com", "theatlantic.com", "newyorker.com",
				"time.com", "aljazeera.com", "cbc.ca", "abc.net.au", "lemonde.fr",
				"spiegel.de",
			},
			PressReleaseDomains: []string{
				"prnewswire.com", "businesswire.com", "globenewswire.com", "einpresswire.com",
				"accesswire.com", "prweb.com", "newswire.com", "openpr.com",
			},
			ReferenceDomains: []string{
				"wikipedia.org", "wikimedia.org", "wikidata.org", "fandom.com",
				"britannica.com", "facebook.com", "twitter.com", "x.com",
				"instagram.com", "linkedin.com", "tiktok.com", "youtube.com",
				"reddit.com", "pinterest.com",
			},
			BlogDomains: []string{
				"medium.com", "substack.com", "blogspot.com", "wordpress.com",
				"tumblr.com", "ghost.io", "blogger.com", "wixsite.com",
			},
		},
		Preflight: PreflightConfig{
			LeadMinChars:    120,
			HeaderMode:      HeaderModeStructural,
			NotabilityMin:   2,
			CopyvioMaxRatio: 0.2,
			PromoTerms: []string{
				"leading", "pioneer", "pioneering", "revolutionary", "award-winning",
				"world-class", "world-renowned", "renowned", "visionary", "cutting-edge",
				"groundbreaking", "innovative", "legendary", "iconic", "best-in-class",
				"unparalleled", "state-of-the-art", "premier", "prestigious", "trailblazing",
			},
			KnownTitles: []string{
				"Katherine Bouman", "Ada Lovelace", "Andrew Ng", "Tim Berners-Lee",
				"Fei-Fei Li", "Geoffrey Hinton", "Yoshua Bengio", "Leslie Lamport",
				"Barbara Liskov", "Donna Strickland", "Laksa", "Borscht",
			},
		},
		Features: []string{
			FeatureSourceInput, FeatureTitleField, FeatureDestinationSelector,
			FeatureChecklist, FeaturePublishButton,
		},
		Log: LogConfig{
			Level: "info",
		},
		LLM: LLMConfig{
			Provider:       "", // Disabled by default
			Model:          "gpt-4o-mini",
			Timeout:        30,
			MaxTokens:      600,
			StrictEvidence: true,
		},
		Assets: AssetsConfig{
			Enabled:           false,
			APIURL:            "https://www.mediawiki.org/w/api.php",
			UserAgent:         "draftgate/0.1 (+https://github.com/ppiankov/draftgate)",
			Timeout:           10 * time.Second,
			RequestsPerSecond: 2,
			BurstSize:         2,
			CacheTTL:          time.Hour,
			RespectRobots:     true,
		},
		Concurrency: ConcurrencyConfig{
			Workers: 4,
		},
	}
}

// Recognized UI affordances. A session only enables the behaviour whose
// affordance is listed in Config.Features.
const (
	FeatureSourceInput         = "source_input"
	FeatureTitleField          = "title_field"
	FeatureDestinationSelector = "destination_selector"
	FeatureChecklist           = "checklist"
	FeaturePublishButton       = "publish_button"
	FeatureIcons               = "icons"
)

// KnownFeatures lists every recognized affordance name
var KnownFeatures = []string{
	FeatureSourceInput,
	FeatureTitleField,
	FeatureDestinationSelector,
	FeatureChecklist,
	FeaturePublishButton,
	FeatureIcons,
}
