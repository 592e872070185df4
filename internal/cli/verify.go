package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/ppiankov/veriwiki/internal/model"
	"github.com/ppiankov/veriwiki/internal/pipeline"
	"github.com/ppiankov/veriwiki/internal/validate"
)

var (
	verifyTimeout time.Duration
	verifyOut     string
)

// verifyCmd represents the verify command
var verifyCmd = &cobra.Command{
	Use:   "verify <topic>",
	Short: "Verify a single Wikipedia topic and print the result as JSON",
	Long: `Verify runs the full pipeline for one topic:
- Find the matching Wikipedia article
- Extract key factual claims from its summary
- Score the summary's credibility (1-5) with the reasoning provider
- Rewrite the summary when it scores below the credibility threshold

Example:
  veriwiki verify "Albert Einstein"
  veriwiki verify "Photosynthesis" --provider openai --model gpt-4o-mini
  veriwiki verify "Laksa" --out laksa.json`,
	Args: cobra.ExactArgs(1),
	RunE: runVerify,
}

func init() {
	rootCmd.AddCommand(verifyCmd)

	verifyCmd.Flags().DurationVar(&verifyTimeout, "timeout", 2*time.Minute, "overall verification timeout")
	verifyCmd.Flags().StringVar(&verifyOut, "out", "", "output JSON path (default stdout)")
	verifyCmd.Flags().StringVar(&llmProvider, "provider", "", "reasoning provider (gateway, openai, anthropic)")
	verifyCmd.Flags().StringVar(&llmModel, "model", "", "reasoning model name")
	verifyCmd.Flags().StringVar(&httpProxy, "http-proxy", "", "HTTP proxy URL (overrides HTTP_PROXY env var)")
	verifyCmd.Flags().StringVar(&httpsProxy, "https-proxy", "", "HTTPS proxy URL (overrides HTTPS_PROXY env var)")
}

func runVerify(cmd *cobra.Command, args []string) error {
	searchTerm, err := validate.SearchTerm(args[0])
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), verifyTimeout)
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

	if verbose {
		fmt.Fprintf(os.Stderr, "Verifying: %s\n", searchTerm)
	}

	result, err := p.Verify(ctx, searchTerm)
	if err != nil {
		return fmt.Errorf("verify failed: %w", err)
	}

	return writeResult(result, verifyOut)
}

// writeResult encodes the set branch of the pipeline result as indented JSON.
func writeResult(result *pipeline.Result, path string) error {
	var payload any
	if result.Verified != nil {
		payload = result.Verified
	} else {
		payload = result.NotFound
	}

	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return fmt.Errorf("encode result: %w", err)
	}
	data = append(data, '\n')

	if path == "" {
		_, err = os.Stdout.Write(data)
		return err
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write result: %w", err)
	}
	return nil
}
