package cli

import (
	"context"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/ppiankov/draftgate/internal/assets"
	"github.com/spf13/cobra"
)

var (
	iconsLang    string
	iconsDir     string
	iconsTimeout time.Duration
)

// iconsCmd represents the icons command
var iconsCmd = &cobra.Command{
	Use:   "icons <name>...",
	Short: "Fetch Codex icon paths from the MediaWiki API",
	Long: `Icons fetches icon paths the editor uses next to checklist lines.
Failures are never fatal: the command prints whatever it could obtain.

Example:
  draftgate icons cdxIconCheck cdxIconAlert
  draftgate icons cdxIconNext --lang he --dir rtl`,
	Args: cobra.MinimumNArgs(1),
	RunE: runIcons,
}

func init() {
	rootCmd.AddCommand(iconsCmd)

	iconsCmd.Flags().StringVar(&iconsLang, "lang", "en", "interface language used to pick language-specific variants")
	iconsCmd.Flags().StringVar(&iconsDir, "dir", "ltr", "text direction (ltr, rtl)")
	iconsCmd.Flags().DurationVar(&iconsTimeout, "timeout", 30*time.Second, "overall timeout")
}

func runIcons(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), iconsTimeout)
	defer cancel()

	cfg, logger, err := setup()
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	loader := assets.NewLoader(cfg.Assets, logger)
	if verbose {
		if u, err := loader.RequestURL(args); err == nil {
			fmt.Fprintf(os.Stderr, "Request: %s\n", u)
		}
	}

	icons := loader.Load(ctx, args)

	names := make([]string, 0, len(icons))
	for name := range icons {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		fmt.Printf("%s\t%s\n", name, icons[name].Resolve(iconsLang, iconsDir))
	}
	fmt.Fprintf(os.Stderr, "✓ %d of %d icons loaded\n", len(icons), len(args))
	return nil
}
