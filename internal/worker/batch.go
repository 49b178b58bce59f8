package worker

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ppiankov/draftgate/internal/logging"
	"github.com/ppiankov/draftgate/internal/model"
	"github.com/ppiankov/draftgate/internal/script"
)

// Runner evaluates one session script
type Runner interface {
	RunScript(ctx context.Context, path string) (*script.Result, error)
}

// ScriptRunner loads a script file and replays it in a private workspace
type ScriptRunner struct {
	Config *model.Config
	Logger logging.Logger
}

// RunScript implements Runner
func (r *ScriptRunner) RunScript(ctx context.Context, path string) (*script.Result, error) {
	s, err := script.Load(path)
	if err != nil {
		return nil, err
	}
	return script.Run(ctx, s, r.Config, r.Logger)
}

// ScriptJob evaluates one script
type ScriptJob struct {
	Path   string
	Runner Runner
}

// Execute runs the job
func (j *ScriptJob) Execute(ctx context.Context) Result {
	result, err := j.Runner.RunScript(ctx, j.Path)
	return &ScriptResult{
		Path:   j.Path,
		Result: result,
		Error:  err,
	}
}

// ScriptResult is the outcome of one script in a batch
type ScriptResult struct {
	Path   string
	Result *script.Result
	Error  error
}

// GetError returns the error that stopped the script, if any
func (r *ScriptResult) GetError() error {
	return r.Error
}

// Passed reports whether the script ran and met its expectation
func (r *ScriptResult) Passed() bool {
	return r.Error == nil && r.Result != nil && r.Result.Passed()
}

// BatchProcessor evaluates many scripts concurrently
type BatchProcessor struct {
	runner      Runner
	concurrency int
	logger      logging.Logger
}

// NewBatchProcessor creates a batch processor
func NewBatchProcessor(runner Runner, concurrency int, logger logging.Logger) *BatchProcessor {
	return &BatchProcessor{
		runner:      runner,
		concurrency: concurrency,
		logger:      logging.OrNop(logger),
	}
}

// ProcessScripts evaluates scripts and returns results in input order
func (b *BatchProcessor) ProcessScripts(ctx context.Context, paths []string) []*ScriptResult {
	if len(paths) == 0 {
		return []*ScriptResult{}
	}

	pool := NewPoolWithContext(ctx, b.concurrency)
	pool.Start()

	for _, path := range paths {
		pool.Submit(&ScriptJob{
			Path:   path,
			Runner: b.runner,
		})
	}

	results := pool.Wait()

	scriptResults := make([]*ScriptResult, len(results))
	passed := 0
	for i, result := range results {
		scriptResults[i] = result.(*ScriptResult)
		if scriptResults[i].Passed() {
			passed++
		}
	}

	b.logger.Info("Batch finished",
		logging.Int("scripts", len(paths)),
		logging.Int("passed", passed),
		logging.Int("workers", b.concurrency),
	)

	return scriptResults
}

// ProcessFile reads script paths from a list file and evaluates them.
// Relative paths are resolved against the list file's directory.
func (b *BatchProcessor) ProcessFile(ctx context.Context, listPath string) ([]*ScriptResult, error) {
	paths, err := ReadPathsFromFile(listPath)
	if err != nil {
		return nil, fmt.Errorf("read script list: %w", err)
	}

	base := filepath.Dir(listPath)
	for i, p := range paths {
		if !filepath.IsAbs(p) {
			paths[i] = filepath.Join(base, p)
		}
	}

	return b.ProcessScripts(ctx, paths), nil
}

// ReadPathsFromFile reads one path per line, skipping blanks, comments and duplicates
func ReadPathsFromFile(filePath string) ([]string, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var paths []string
	seen := make(map[string]bool)

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if !seen[line] {
			seen[line] = true
			paths = append(paths, line)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan file: %w", err)
	}

	return paths, nil
}
