package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ppiankov/veriwiki/internal/limiter"
	"github.com/ppiankov/veriwiki/internal/llm"
	"github.com/ppiankov/veriwiki/internal/pipeline"
	"github.com/ppiankov/veriwiki/internal/validate"
)

// User-facing error messages, keyed by failure category
const (
	msgTooManyRequests  = "Too many requests. Please try again later."
	msgUpstreamLimited  = "Rate limit exceeded. Please try again later."
	msgCreditsExhausted = "AI credits depleted. Please add more credits."
	msgUnknownError     = "Unknown error occurred"
)

// Verifier runs one verification request end to end
type Verifier interface {
	Verify(ctx context.Context, searchTerm string) (*pipeline.Result, error)
}

// Handler holds the HTTP request handlers
type Handler struct {
	verifier Verifier
	limiter  *limiter.Limiter
	logger   *slog.Logger
}

// NewHandler creates a handler
func NewHandler(verifier Verifier, l *limiter.Limiter, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}

	return &Handler{
		verifier: verifier,
		limiter:  l,
		logger:   logger,
	}
}

type verifyRequest struct {
	SearchTerm string `json:"searchTerm"`
}

// Verify handles POST /api/v1/verify. The rate-limit gate runs before any
// validation or external call.
func (h *Handler) Verify(c *gin.Context) {
	clientIP := c.ClientIP()
	if !h.limiter.Allow(clientIP) {
		h.logger.Warn("rate limited client", "client_ip", clientIP)
		c.JSON(http.StatusTooManyRequests, gin.H{"error": msgTooManyRequests})
		return
	}

	var req verifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"found": false,
			"error": validate.ErrSearchTermRequired.Error(),
		})
		return
	}

	term, err := validate.SearchTerm(req.SearchTerm)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"found": false, "error": err.Error()})
		return
	}

	result, err := h.verifier.Verify(c.Request.Context(), term)
	if err != nil {
		h.renderError(c, term, err)
		return
	}

	if result.NotFound != nil {
		c.JSON(http.StatusOK, result.NotFound)
		return
	}
	c.JSON(http.StatusOK, result.Verified)
}

// renderError maps pipeline failures to HTTP status codes. Error kinds are
// distinguished by status, not body shape.
func (h *Handler) renderError(c *gin.Context, term string, err error) {
	switch {
	case errors.Is(err, llm.ErrRateLimited):
		c.JSON(http.StatusTooManyRequests, gin.H{"error": msgUpstreamLimited})
	case errors.Is(err, llm.ErrQuotaExhausted):
		c.JSON(http.StatusPaymentRequired, gin.H{"error": msgCreditsExhausted})
	default:
		h.logger.Error("verification failed", "term", term, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": msgUnknownError})
	}
}

// Health handles GET /healthz
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
