package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/spf13/cobra"

	"github.com/ppiankov/veriwiki/internal/model"
	"github.com/ppiankov/veriwiki/internal/worker"
)

var (
	concurrency  int
	outputDir    string
	batchTimeout time.Duration
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <file>",
	Short: "Verify multiple topics from a file in parallel",
	Long: `Batch verifies multiple topics concurrently:
- Read topics from an input file (one per line, # comments allowed)
- Run the verification pipeline for each topic in parallel
- Write an individual JSON result per topic

Example:
  veriwiki batch topics.txt
  veriwiki batch topics.txt --concurrency 4 --output-dir ./results
  veriwiki batch topics.txt --timeout 10m`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().IntVar(&concurrency, "concurrency", runtime.NumCPU(), "number of concurrent workers")
	batchCmd.Flags().StringVar(&outputDir, "output-dir", "./veriwiki-results", "output directory for results")
	batchCmd.Flags().DurationVar(&batchTimeout, "timeout", 10*time.Minute, "total timeout for batch processing")
	batchCmd.Flags().StringVar(&llmProvider, "provider", "", "reasoning provider (gateway, openai, anthropic)")
	batchCmd.Flags().StringVar(&llmModel, "model", "", "reasoning model name")
	batchCmd.Flags().StringVar(&httpProxy, "http-proxy", "", "HTTP proxy URL (overrides HTTP_PROXY env var)")
	batchCmd.Flags().StringVar(&httpsProxy, "https-proxy", "", "HTTPS proxy URL (overrides HTTPS_PROXY env var)")
}

func runBatch(cmd *cobra.Command, args []string) error {
	file := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), batchTimeout)
	defer cancel()

	logger := newLogger()

	cfg := model.DefaultConfig()
	applyProviderOverrides(cfg, llmProvider, llmModel)
	cfg.HTTP.HTTPProxy = httpProxy
	cfg.HTTP.HTTPSProxy = httpsProxy

	p, err := buildPipeline(cfg, logger)
	if err != nil {
		return fmt.Errorf("build pipeline: %w", err)
	}

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	processor := worker.NewBatchProcessor(p, concurrency)

	results, err := processor.ProcessFile(ctx, file)
	if err != nil {
		return fmt.Errorf("process file: %w", err)
	}

	logger.Info("batch loaded", "topics", len(results), "workers", concurrency)

	successCount := 0
	failureCount := 0

	for _, result := range results {
		if result.Error != nil {
			failureCount++
			fmt.Fprintf(os.Stderr, "✗ %s: %v\n", result.Topic, result.Error)
			continue
		}

		outPath := filepath.Join(outputDir, topicFilename(result.Topic)+".json")
		if err := writeResult(result.Result, outPath); err != nil {
			failureCount++
			fmt.Fprintf(os.Stderr, "✗ %s: %v\n", result.Topic, err)
			continue
		}

		successCount++
		if result.Result.Verified != nil {
			fmt.Fprintf(os.Stderr, "✓ %s (score: %d/5)\n", result.Topic, result.Result.Verified.Score)
		} else {
			fmt.Fprintf(os.Stderr, "✓ %s (no article found)\n", result.Topic)
		}
	}

	fmt.Fprintf(os.Stderr, "\nTotal: %d  Success: %d  Failures: %d  Output: %s\n",
		len(results), successCount, failureCount, outputDir)

	return nil
}

// topicFilename turns a topic into a safe output file name.
func topicFilename(topic string) string {
	replacer := strings.NewReplacer(
		"/", "_",
		"\\", "_",
		":", "_",
		"*", "_",
		"?", "_",
		"\"", "_",
		"<", "_",
		">", "_",
		"|", "_",
		" ", "-",
	)
	s := replacer.Replace(topic)
	if utf8.RuneCountInString(s) > 100 {
		s = string([]rune(s)[:100])
	}
	return s
}
