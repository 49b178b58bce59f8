package cli

import (
	"fmt"
	"os"

	"github.com/ppiankov/draftgate/internal/classify"
	"github.com/spf13/cobra"
)

// classifyCmd represents the classify command
var classifyCmd = &cobra.Command{
	Use:   "classify <url>...",
	Short: "Classify source URLs by reliability and independence",
	Long: `Classify prints the verdict the source classifier gives each URL:
its kind (primary or secondary), whether it is independent of the subject,
its reliability tier and the rule that matched.

Example:
  draftgate classify https://www.bbc.co.uk/news/x nasa.gov/mission medium.com/@me/post`,
	Args: cobra.MinimumNArgs(1),
	RunE: runClassify,
}

func init() {
	rootCmd.AddCommand(classifyCmd)
}

func runClassify(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	c := classify.New(&cfg.Classifier)

	fmt.Printf("%-32s %-10s %-12s %-6s %s\n", "DOMAIN", "KIND", "INDEPENDENT", "TIER", "RULE")
	failed := 0
	for _, raw := range args {
		parsed, err := classify.ParseURL(raw)
		if err != nil {
			fmt.Fprintf(os.Stderr, "✗ %s: %v\n", raw, err)
			failed++
			continue
		}

		host := classify.NormalizeHost(parsed.Hostname())
		v := c.ClassifyHost(host)
		fmt.Printf("%-32s %-10s %-12t %-6s %s\n", host, v.Kind, v.Independent, v.Tier, v.Rule)
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d URLs could not be parsed", failed, len(args))
	}
	return nil
}
