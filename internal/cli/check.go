package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/ppiankov/draftgate/internal/gate"
	"github.com/ppiankov/draftgate/internal/llm"
	"github.com/ppiankov/draftgate/internal/model"
	"github.com/ppiankov/draftgate/internal/script"
	"github.com/spf13/cobra"
)

var (
	outJSON     string
	outMD       string
	requireFlag string
	timeout     time.Duration
	llmEnabled  bool
	llmProvider string
	llmModel    string
)

// checkCmd represents the check command
var checkCmd = &cobra.Command{
	Use:   "check <script.yaml>",
	Short: "Replay an editing session and print the preflight checklist",
	Long: `Check replays a recorded editing session (sources added, text typed,
statements inserted, headings, title and destination) and prints the
resulting preflight checklist and publish decision.

Example:
  draftgate check session.yaml
  draftgate check session.yaml --json report.json
  draftgate check session.yaml --require mainspace
  draftgate check session.yaml --llm --llm-provider ollama --llm-model llama3.1`,
	Args: cobra.ExactArgs(1),
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)

	checkCmd.Flags().StringVar(&outJSON, "json", "", "write the report as JSON to this path")
	checkCmd.Flags().StringVar(&outMD, "md", "", "write the reviewer note as Markdown to this path (with --llm)")
	checkCmd.Flags().StringVar(&requireFlag, "require", "", "exit non-zero unless publishing to this destination (draft, mainspace) is allowed")
	checkCmd.Flags().DurationVar(&timeout, "timeout", time.Minute, "overall timeout")

	checkCmd.Flags().BoolVar(&llmEnabled, "llm", false, "add an advisory reviewer note")
	checkCmd.Flags().StringVar(&llmProvider, "llm-provider", "", "LLM provider (openai, ollama); defaults to llm.provider or openai")
	checkCmd.Flags().StringVar(&llmModel, "llm-model", "", "LLM model name")
}

func runCheck(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	cfg, logger, err := setup()
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	var requiredDest model.Destination
	if requireFlag != "" {
		if requiredDest, err = gate.ParseDestination(requireFlag); err != nil {
			return err
		}
	}

	s, err := script.Load(args[0])
	if err != nil {
		return err
	}

	res, err := script.Run(ctx, s, cfg, logger)
	if err != nil {
		return fmt.Errorf("replay failed: %w", err)
	}

	renderChecklist(os.Stdout, res)
	if verbose {
		for _, skipped := range res.Skipped {
			fmt.Fprintf(os.Stderr, "Skipped: %s\n", skipped)
		}
	}

	out := checkOutput{Result: res}
	if llmEnabled {
		note, err := reviewerNote(ctx, cfg, res)
		if err != nil {
			return err
		}
		out.Review = note
		if md := llm.RenderMarkdown(note); md != "" {
			fmt.Println(md)
			if outMD != "" {
				if err := os.WriteFile(outMD, []byte(md), 0644); err != nil {
					return fmt.Errorf("write %s: %w", outMD, err)
				}
			}
		}
	}

	if outJSON != "" {
		if err := writeJSON(outJSON, out); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "✓ Report written to %s\n", outJSON)
	}

	if requiredDest != "" {
		decision, err := gate.Decide(res.Report.Result, requiredDest)
		if err != nil {
			return err
		}
		if !decision.Enabled {
			return fmt.Errorf("%s is not allowed: %s", strings.ToLower(decision.Label), strings.Join(decision.Blockers, ", "))
		}
	}

	return nil
}

// reviewerNote builds the advisory note for a replayed session
func reviewerNote(ctx context.Context, cfg *model.Config, res *script.Result) (*model.ReviewNote, error) {
	if llmProvider != "" {
		cfg.LLM.Provider = llmProvider
	}
	if cfg.LLM.Provider == "" {
		cfg.LLM.Provider = "openai"
	}
	if llmModel != "" {
		cfg.LLM.Model = llmModel
	}
	cfg.LLM.StrictEvidence = true // Always enforce

	if strings.EqualFold(cfg.LLM.Provider, "openai") && cfg.LLM.APIKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY environment variable not set")
	}

	reviewer, err := llm.NewReviewer(llm.ConfigFromModel(cfg.LLM, cfg.Assets))
	if err != nil {
		return nil, fmt.Errorf("create reviewer: %w", err)
	}
	return reviewer.Review(ctx, res.Title, res.Report, res.Sources)
}
