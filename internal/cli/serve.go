package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/ppiankov/veriwiki/internal/limiter"
	"github.com/ppiankov/veriwiki/internal/model"
	"github.com/ppiankov/veriwiki/internal/server"
)

var (
	addr            string
	llmProvider     string
	llmModel        string
	httpProxy       string
	httpsProxy      string
	rateLimitMax    int
	rateLimitWindow time.Duration
	noRobots        bool
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the verification HTTP service",
	Long: `Serve exposes the verification pipeline over HTTP:

  POST /api/v1/verify   {"searchTerm": "Albert Einstein"}
  GET  /healthz

Each client IP is limited to a fixed number of requests per window.
The reasoning provider credential is read from the environment
(AI_GATEWAY_API_KEY, OPENAI_API_KEY or ANTHROPIC_API_KEY).

Example:
  veriwiki serve
  veriwiki serve --addr :9090 --provider openai --model gpt-4o-mini
  veriwiki serve --rate-limit-max 30 --rate-limit-window 1m`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&addr, "addr", "", "listen address (default :8080)")
	serveCmd.Flags().StringVar(&llmProvider, "provider", "", "reasoning provider (gateway, openai, anthropic)")
	serveCmd.Flags().StringVar(&llmModel, "model", "", "reasoning model name")
	serveCmd.Flags().StringVar(&httpProxy, "http-proxy", "", "HTTP proxy URL (overrides HTTP_PROXY env var)")
	serveCmd.Flags().StringVar(&httpsProxy, "https-proxy", "", "HTTPS proxy URL (overrides HTTPS_PROXY env var)")
	serveCmd.Flags().IntVar(&rateLimitMax, "rate-limit-max", 0, "max requests per client per window (default 10)")
	serveCmd.Flags().DurationVar(&rateLimitWindow, "rate-limit-window", 0, "rate limit window (default 1m)")
	serveCmd.Flags().BoolVar(&noRobots, "no-robots", false, "skip robots.txt checks on Wikipedia fetches")
}

func runServe(cmd *cobra.Command, args []string) error {
	logger := newLogger()

	cfg := model.DefaultConfig()
	applyProviderOverrides(cfg, llmProvider, llmModel)
	cfg.HTTP.HTTPProxy = httpProxy
	cfg.HTTP.HTTPSProxy = httpsProxy
	if addr != "" {
		cfg.Server.Addr = addr
	}
	if rateLimitMax > 0 {
		cfg.RateLimit.MaxRequests = rateLimitMax
	}
	if rateLimitWindow > 0 {
		cfg.RateLimit.Window = rateLimitWindow
	}
	if noRobots {
		cfg.Wikipedia.CheckRobots = false
	}

	p, err := buildPipeline(cfg, logger)
	if err != nil {
		return fmt.Errorf("build pipeline: %w", err)
	}

	clientLimiter := limiter.New(cfg.RateLimit.MaxRequests, cfg.RateLimit.Window)
	handler := server.NewHandler(p, clientLimiter, logger)
	srv := server.New(cfg.Server, handler, logger)

	logger.Info("starting verification service",
		"addr", cfg.Server.Addr,
		"provider", cfg.LLM.Provider,
		"model", cfg.LLM.Model,
		"rate_limit_max", cfg.RateLimit.MaxRequests,
		"rate_limit_window", cfg.RateLimit.Window,
	)

	return srv.Run()
}
