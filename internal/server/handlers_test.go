package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ppiankov/veriwiki/internal/limiter"
	"github.com/ppiankov/veriwiki/internal/llm"
	"github.com/ppiankov/veriwiki/internal/model"
	"github.com/ppiankov/veriwiki/internal/pipeline"
)

// fakeVerifier returns a canned pipeline result or error
type fakeVerifier struct {
	result *pipeline.Result
	err    error
	terms  []string
}

func (f *fakeVerifier) Verify(_ context.Context, term string) (*pipeline.Result, error) {
	f.terms = append(f.terms, term)
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

func newTestEngine(verifier Verifier, l *limiter.Limiter) *gin.Engine {
	gin.SetMode(gin.TestMode)
	if l == nil {
		l = limiter.New(1000, time.Minute)
	}

	engine := gin.New()
	engine.Use(CORS())
	registerRoutes(engine, NewHandler(verifier, l, nil))
	return engine
}

func postVerify(engine *gin.Engine, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/verify", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func TestVerifyHandler_Success(t *testing.T) {
	verified := &model.VerificationResult{
		Found:       true,
		Score:       5,
		Title:       "Albert Einstein",
		Content:     "<p>Albert Einstein was a theoretical physicist.</p>",
		IsOriginal:  true,
		Attribution: "Content sourced from Wikipedia, licensed under Creative Commons Attribution-ShareAlike 4.0",
		Sources: []model.Source{
			{URL: "https://en.wikipedia.org/wiki/Albert_Einstein", Title: "Wikipedia"},
		},
	}
	verifier := &fakeVerifier{result: &pipeline.Result{Verified: verified}}
	engine := newTestEngine(verifier, nil)

	w := postVerify(engine, `{"searchTerm": "Albert Einstein"}`)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); !strings.Contains(ct, "application/json") {
		t.Errorf("Content-Type = %q", ct)
	}
	if w.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Error("missing permissive CORS header")
	}

	var got model.VerificationResult
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !got.Found || !got.IsOriginal || got.Score != 5 {
		t.Errorf("unexpected body: %+v", got)
	}
	if len(verifier.terms) != 1 || verifier.terms[0] != "Albert Einstein" {
		t.Errorf("verifier called with %v", verifier.terms)
	}
}

func TestVerifyHandler_NotFound(t *testing.T) {
	verifier := &fakeVerifier{result: &pipeline.Result{NotFound: &model.NotFoundResult{
		Found:   false,
		Message: `No Wikipedia article found for "asdkjqwelkj"`,
	}}}
	engine := newTestEngine(verifier, nil)

	w := postVerify(engine, `{"searchTerm": "asdkjqwelkj"}`)

	// A missing article is a valid empty result, not an error
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var got model.NotFoundResult
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if got.Found {
		t.Error("found must be false")
	}
	if got.Message != `No Wikipedia article found for "asdkjqwelkj"` {
		t.Errorf("message = %q", got.Message)
	}
}

func TestVerifyHandler_Validation(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"missing field", `{}`},
		{"empty term", `{"searchTerm": ""}`},
		{"whitespace term", `{"searchTerm": "   "}`},
		{"not json", `searchTerm=x`},
		{"too long", fmt.Sprintf(`{"searchTerm": %q}`, strings.Repeat("a", 201))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verifier := &fakeVerifier{}
			engine := newTestEngine(verifier, nil)

			w := postVerify(engine, tt.body)

			if w.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400", w.Code)
			}
			var body struct {
				Found bool   `json:"found"`
				Error string `json:"error"`
			}
			if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
				t.Fatalf("decode response: %v", err)
			}
			if body.Found {
				t.Error("validation failures must report found=false")
			}
			if body.Error == "" {
				t.Error("validation failures must carry a message")
			}
			if len(verifier.terms) != 0 {
				t.Error("pipeline must not run on invalid input")
			}
		})
	}
}

func TestVerifyHandler_ClientRateLimit(t *testing.T) {
	verifier := &fakeVerifier{result: &pipeline.Result{NotFound: &model.NotFoundResult{}}}
	engine := newTestEngine(verifier, limiter.New(10, time.Minute))

	var last *httptest.ResponseRecorder
	for i := 0; i < 11; i++ {
		last = postVerify(engine, `{"searchTerm": "anything"}`)
	}

	if last.Code != http.StatusTooManyRequests {
		t.Fatalf("11th request status = %d, want 429", last.Code)
	}
	var body struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(last.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body.Error != "Too many requests. Please try again later." {
		t.Errorf("error = %q", body.Error)
	}
	if len(verifier.terms) != 10 {
		t.Errorf("pipeline ran %d times, want 10", len(verifier.terms))
	}
}

func TestVerifyHandler_UpstreamErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{"upstream rate limit", fmt.Errorf("score claims: %w", llm.ErrRateLimited), http.StatusTooManyRequests, "Rate limit exceeded. Please try again later."},
		{"credits exhausted", fmt.Errorf("score claims: %w", llm.ErrQuotaExhausted), http.StatusPaymentRequired, "AI credits depleted. Please add more credits."},
		{"unclassified", errors.New("wikipedia timed out"), http.StatusInternalServerError, "Unknown error occurred"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine := newTestEngine(&fakeVerifier{err: tt.err}, nil)

			w := postVerify(engine, `{"searchTerm": "anything"}`)

			if w.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", w.Code, tt.wantStatus)
			}
			var body struct {
				Error string `json:"error"`
			}
			if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
				t.Fatalf("decode response: %v", err)
			}
			if body.Error != tt.wantMsg {
				t.Errorf("error = %q, want %q", body.Error, tt.wantMsg)
			}
		})
	}
}

func TestPreflight(t *testing.T) {
	engine := newTestEngine(&fakeVerifier{}, nil)

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/verify", nil)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("preflight status = %d, want 200", w.Code)
	}
	if w.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Error("preflight missing Access-Control-Allow-Origin")
	}
	if w.Body.Len() != 0 {
		t.Errorf("preflight body should be empty, got %q", w.Body.String())
	}
}

func TestHealth(t *testing.T) {
	engine := newTestEngine(&fakeVerifier{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("health status = %d, want 200", w.Code)
	}
}
