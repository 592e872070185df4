package worker

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/ppiankov/veriwiki/internal/pipeline"
)

// Verifier runs the verification pipeline for a single search term.
type Verifier interface {
	Verify(ctx context.Context, searchTerm string) (*pipeline.Result, error)
}

// VerifyJob verifies one topic.
type VerifyJob struct {
	Topic    string
	Verifier Verifier
}

// Execute runs the verification and wraps the outcome.
func (j *VerifyJob) Execute(ctx context.Context) Result {
	result, err := j.Verifier.Verify(ctx, j.Topic)
	return &VerifyResult{
		Topic:  j.Topic,
		Result: result,
		Error:  err,
	}
}

// VerifyResult pairs a topic with its pipeline outcome.
type VerifyResult struct {
	Topic  string
	Result *pipeline.Result
	Error  error
}

// GetError returns the error from the verification, if any.
func (r *VerifyResult) GetError() error {
	return r.Error
}

// BatchProcessor verifies multiple topics concurrently.
type BatchProcessor struct {
	verifier    Verifier
	concurrency int
}

// NewBatchProcessor creates a batch processor with the given concurrency.
func NewBatchProcessor(verifier Verifier, concurrency int) *BatchProcessor {
	return &BatchProcessor{
		verifier:    verifier,
		concurrency: concurrency,
	}
}

// ProcessTopics verifies the given topics concurrently.
func (b *BatchProcessor) ProcessTopics(ctx context.Context, topics []string) []*VerifyResult {
	if len(topics) == 0 {
		return []*VerifyResult{}
	}

	pool := NewPool(b.concurrency)
	pool.Start()

	for _, topic := range topics {
		pool.Submit(&VerifyJob{
			Topic:    topic,
			Verifier: b.verifier,
		})
	}

	results := pool.Wait()

	verifyResults := make([]*VerifyResult, len(results))
	for i, result := range results {
		verifyResults[i] = result.(*VerifyResult)
	}

	return verifyResults
}

// ProcessFile reads topics from a file and verifies them concurrently.
func (b *BatchProcessor) ProcessFile(ctx context.Context, filePath string) ([]*VerifyResult, error) {
	topics, err := ReadTopicsFromFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("read topics: %w", err)
	}

	return b.ProcessTopics(ctx, topics), nil
}

// ReadTopicsFromFile reads topics from a file, one per line.
// Empty lines and lines starting with # are skipped; duplicates are dropped.
func ReadTopicsFromFile(filePath string) ([]string, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var topics []string
	seen := make(map[string]bool)

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if !seen[line] {
			seen[line] = true
			topics = append(topics, line)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan file: %w", err)
	}

	return topics, nil
}
