package cli

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ppiankov/draftgate/internal/model"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Comments attached to the top-level sections of a generated config file
var sectionComments = map[string]string{
	"classifier":  "Domain lists for the source classifier. Subdomains match their parent.\n.gov and .edu/.ac.xx suffixes are built in.",
	"preflight":   "Checklist thresholds. header_mode is \"structural\" or \"loose\";\nlead_min_chars is 120 by default (80 for the shorter variant).",
	"features":    "Enabled editor affordances: source_input, title_field,\ndestination_selector, checklist, publish_button, icons.",
	"log":         "Structured logging (zap). level: debug, info, warn, error.",
	"llm":         "Optional advisory reviewer note. provider: openai, ollama or empty.\nThe API key is read from OPENAI_API_KEY or DRAFTGATE_LLM_API_KEY.",
	"assets":      "Codex icon loader (MediaWiki API). Failures are ignored.",
	"concurrency": "Worker count for the batch command.",
}

var forceInit bool

// configCmd represents the config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage draftgate configuration",
	Long: `Manage draftgate configuration files and settings.

Configuration hierarchy (highest to lowest priority):
1. CLI flags
2. Environment variables (DRAFTGATE_*, OPENAI_API_KEY, OLLAMA_BASE_URL)
3. Config file (~/.draftgate/config.yaml)
4. Defaults`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective configuration",
	Long:  `Display the defaults overlaid with the config file and environment. API keys are never printed.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		if configFile := viper.ConfigFileUsed(); configFile != "" {
			fmt.Fprintf(os.Stderr, "Configuration file: %s\n", configFile)
		} else {
			fmt.Fprintf(os.Stderr, "No configuration file found (using defaults)\n")
		}
		if cfg.LLM.APIKey != "" {
			fmt.Fprintf(os.Stderr, "LLM API key: set\n")
		}
		fmt.Fprintln(os.Stderr)

		data, err := renderConfig(cfg)
		if err != nil {
			return err
		}
		_, err = os.Stdout.Write(data)
		return err
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default configuration file",
	Long:  `Create ~/.draftgate/config.yaml (or the --config path) with every option set to its default.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		path := cfgFile
		if path == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return fmt.Errorf("error finding home directory: %w", err)
			}
			path = filepath.Join(home, ".draftgate", "config.yaml")
		}

		if _, err := os.Stat(path); err == nil && !forceInit {
			return fmt.Errorf("config file already exists: %s (use --force to overwrite)", path)
		}

		data, err := renderConfig(model.DefaultConfig())
		if err != nil {
			return err
		}

		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return fmt.Errorf("error creating config directory: %w", err)
		}
		if err := os.WriteFile(path, data, 0644); err != nil {
			return fmt.Errorf("error writing config: %w", err)
		}

		fmt.Printf("✓ Created default configuration: %s\n", path)
		fmt.Printf("\nTo view the effective configuration:\n")
		fmt.Printf("  draftgate config show\n\n")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configInitCmd)

	configInitCmd.Flags().BoolVar(&forceInit, "force", false, "overwrite an existing file")
}

// renderConfig encodes cfg as YAML with a comment above each section
func renderConfig(cfg *model.Config) ([]byte, error) {
	var doc yaml.Node
	if err := doc.Encode(cfg); err != nil {
		return nil, fmt.Errorf("error marshaling config: %w", err)
	}

	// doc is a mapping node: keys at even indices, values at odd
	for i := 0; i+1 < len(doc.Content); i += 2 {
		if comment, ok := sectionComments[doc.Content[i].Value]; ok {
			doc.Content[i].HeadComment = comment
		}
	}
	doc.HeadComment = "draftgate configuration\nhttps://github.com/ppiankov/draftgate"

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(&doc); err != nil {
		return nil, fmt.Errorf("error marshaling config: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("error marshaling config: %w", err)
	}
	return buf.Bytes(), nil
}
