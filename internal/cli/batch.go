package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ppiankov/draftgate/internal/worker"
	"github.com/spf13/cobra"
)

var (
	concurrency  int
	listFile     string
	outputDir    string
	batchTimeout time.Duration
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch [script.yaml]...",
	Short: "Evaluate many session scripts in parallel",
	Long: `Batch replays session scripts concurrently, each in its own workspace,
and reports pass or fail per script. A script passes when it meets its own
"expect" block, or, without one, when its publish button ends up enabled.

Example:
  draftgate batch sessions/*.yaml
  draftgate batch --file sessions.txt --concurrency 8 --output-dir ./reports`,
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().IntVar(&concurrency, "concurrency", 0, "number of concurrent workers (default: concurrency.workers)")
	batchCmd.Flags().StringVar(&listFile, "file", "", "file listing script paths, one per line")
	batchCmd.Flags().StringVar(&outputDir, "output-dir", "", "write one JSON report per script to this directory")
	batchCmd.Flags().DurationVar(&batchTimeout, "timeout", 10*time.Minute, "total timeout for batch processing")
}

func runBatch(cmd *cobra.Command, args []string) error {
	if len(args) == 0 && listFile == "" {
		return fmt.Errorf("no scripts given: pass script paths or --file")
	}

	ctx, cancel := context.WithTimeout(context.Background(), batchTimeout)
	defer cancel()

	cfg, logger, err := setup()
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	if concurrency > 0 {
		cfg.Concurrency.Workers = concurrency
	}

	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "  draftgate Batch Evaluation\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "  Workers:      %d\n", cfg.Concurrency.Workers)
	fmt.Fprintf(os.Stderr, "  Timeout:      %v\n", batchTimeout)
	fmt.Fprintf(os.Stderr, "\n")

	if outputDir != "" {
		if err := os.MkdirAll(outputDir, 0755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
	}

	runner := &worker.ScriptRunner{Config: cfg, Logger: logger}
	processor := worker.NewBatchProcessor(runner, cfg.Concurrency.Workers, logger)

	results := processor.ProcessScripts(ctx, args)
	if listFile != "" {
		listed, err := processor.ProcessFile(ctx, listFile)
		if err != nil {
			return fmt.Errorf("process file: %w", err)
		}
		results = append(results, listed...)
	}

	passed, failed, errored := 0, 0, 0
	for _, result := range results {
		if result.Error != nil {
			errored++
			fmt.Fprintf(os.Stderr, "✗ %s: %v\n", result.Path, result.Error)
			continue
		}

		if result.Passed() {
			passed++
			fmt.Fprintf(os.Stderr, "✓ %s\n", result.Path)
		} else {
			failed++
			fmt.Fprintf(os.Stderr, "✗ %s: %s\n", result.Path, strings.Join(result.Result.Failures(), "; "))
		}

		if outputDir != "" {
			jsonPath := filepath.Join(outputDir, reportName(result.Path))
			if err := writeJSON(jsonPath, checkOutput{Result: result.Result}); err != nil {
				fmt.Fprintf(os.Stderr, "✗ %s: %v\n", result.Path, err)
			}
		}
	}

	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "  Total:     %d scripts\n", len(results))
	fmt.Fprintf(os.Stderr, "  Passed:    %d\n", passed)
	fmt.Fprintf(os.Stderr, "  Failed:    %d\n", failed)
	fmt.Fprintf(os.Stderr, "  Errors:    %d\n", errored)
	fmt.Fprintf(os.Stderr, "\n")

	if failed+errored > 0 {
		return fmt.Errorf("%d of %d scripts did not pass", failed+errored, len(results))
	}
	return nil
}

// reportName derives a JSON file name from a script path
func reportName(path string) string {
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	name = strings.Map(func(r rune) rune {
		switch r {
		case ' ', ':', '*', '?', '"', '<', '>', '|', '\\':
			return '_'
		}
		return r
	}, name)
	if len(name) > 100 {
		name = name[:100]
	}
	return name + ".json"
}
