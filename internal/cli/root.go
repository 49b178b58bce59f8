package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ppiankov/draftgate/internal/logging"
	"github.com/ppiankov/draftgate/internal/model"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Version is set at build time with -ldflags
var Version = "v0.1.0"

var (
	cfgFile string
	verbose bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "draftgate",
	Short: "draftgate - preflight checks for new encyclopedia drafts",
	Long: `draftgate evaluates a draft article the way a new-page reviewer would
before it is published.

It classifies the sources added to a draft, checks notability, lead,
structure, inline citations, copied text, promotional language and title
clashes, and decides whether the draft may go to mainspace.

It does not judge whether anything in the draft is true.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("draftgate %s\n", Version)
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $HOME/.draftgate/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))

	rootCmd.AddCommand(versionCmd)
}

// initConfig reads in config file and ENV variables
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error finding home directory: %v\n", err)
			return
		}

		viper.AddConfigPath(filepath.Join(home, ".draftgate"))
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	// DRAFTGATE_LLM_PROVIDER overrides llm.provider, and so on
	viper.SetEnvPrefix("DRAFTGATE")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	_ = viper.BindEnv("llm.provider")
	_ = viper.BindEnv("llm.model")
	_ = viper.BindEnv("llm.base_url", "DRAFTGATE_LLM_BASE_URL", "OLLAMA_BASE_URL")
	_ = viper.BindEnv("llm.api_key", "DRAFTGATE_LLM_API_KEY", "OPENAI_API_KEY")
	_ = viper.BindEnv("log.level")
	_ = viper.BindEnv("assets.enabled")
	_ = viper.BindEnv("assets.https_proxy", "DRAFTGATE_ASSETS_HTTPS_PROXY", "HTTPS_PROXY")
	_ = viper.BindEnv("assets.http_proxy", "DRAFTGATE_ASSETS_HTTP_PROXY", "HTTP_PROXY")
	_ = viper.BindEnv("assets.no_proxy", "DRAFTGATE_ASSETS_NO_PROXY", "NO_PROXY")
	_ = viper.BindEnv("concurrency.workers")

	if err := viper.ReadInConfig(); err == nil && verbose {
		fmt.Fprintf(os.Stderr, "Using config file: %s\n", viper.ConfigFileUsed())
	}
}

// loadConfig layers the config file and environment over the defaults
func loadConfig() (*model.Config, error) {
	cfg := model.DefaultConfig()
	if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	return cfg, nil
}

// newLogger builds the structured logger; --verbose forces debug level
func newLogger(cfg *model.Config) (logging.Logger, error) {
	level := cfg.Log.Level
	if verbose {
		level = "debug"
	}
	return logging.New(logging.Config{
		Level:       level,
		Development: cfg.Log.Development || verbose,
	})
}

// setup loads configuration and the logger shared by every command
func setup() (*model.Config, logging.Logger, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}
	logger, err := newLogger(cfg)
	if err != nil {
		return nil, nil, err
	}
	return cfg, logger, nil
}
