package worker

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/ppiankov/veriwiki/internal/model"
	"github.com/ppiankov/veriwiki/internal/pipeline"
)

// MockVerifier implements Verifier
type MockVerifier struct {
	ShouldError bool
}

func (m *MockVerifier) Verify(ctx context.Context, searchTerm string) (*pipeline.Result, error) {
	time.Sleep(10 * time.Millisecond) // Simulate work
	if m.ShouldError {
		return nil, errors.New("verify error")
	}
	return &pipeline.Result{
		Verified: &model.VerificationResult{
			Found: true,
			Score: 5,
			Title: searchTerm,
		},
	}, nil
}

func TestBatchProcessor_ProcessTopics(t *testing.T) {
	verifier := &MockVerifier{}
	processor := NewBatchProcessor(verifier, 2)

	topics := []string{"Albert Einstein", "Photosynthesis", "Laksa"}
	ctx := context.Background()

	results := processor.ProcessTopics(ctx, topics)

	if len(results) != 3 {
		t.Errorf("expected 3 results, got %d", len(results))
	}

	successCount := 0
	for _, res := range results {
		if res.Error == nil {
			successCount++
			if res.Result == nil || res.Result.Verified == nil {
				t.Error("expected verified result for successful verification")
			}
		} else {
			t.Errorf("unexpected error for %s: %v", res.Topic, res.Error)
		}
	}

	if successCount != 3 {
		t.Errorf("expected 3 successes, got %d", successCount)
	}
}

func TestBatchProcessor_ProcessTopics_Error(t *testing.T) {
	verifier := &MockVerifier{ShouldError: true}
	processor := NewBatchProcessor(verifier, 2)

	results := processor.ProcessTopics(context.Background(), []string{"Albert Einstein"})

	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}

	if results[0].Error == nil {
		t.Error("expected error, got nil")
	}
	if results[0].Result != nil {
		t.Error("expected nil result on error")
	}
}

func TestBatchProcessor_ProcessTopics_Empty(t *testing.T) {
	verifier := &MockVerifier{}
	processor := NewBatchProcessor(verifier, 2)

	results := processor.ProcessTopics(context.Background(), []string{})
	if len(results) != 0 {
		t.Errorf("expected 0 results, got %d", len(results))
	}
}

func TestReadTopicsFromFile(t *testing.T) {
	content := `Albert Einstein
# comment
Photosynthesis

Laksa   `

	tmpfile, err := os.CreateTemp("", "topics")
	if err != nil {
		t.Fatal(err)
	}
	defer func() {
		_ = os.Remove(tmpfile.Name())
	}()

	if _, err := tmpfile.Write([]byte(content)); err != nil {
		t.Fatal(err)
	}
	if err := tmpfile.Close(); err != nil {
		t.Fatal(err)
	}

	topics, err := ReadTopicsFromFile(tmpfile.Name())
	if err != nil {
		t.Fatalf("ReadTopicsFromFile failed: %v", err)
	}

	expected := []string{"Albert Einstein", "Photosynthesis", "Laksa"}
	if len(topics) != len(expected) {
		t.Fatalf("expected %d topics, got %d", len(expected), len(topics))
	}

	for i, topic := range topics {
		if topic != expected[i] {
			t.Errorf("expected topic %s at index %d, got %s", expected[i], i, topic)
		}
	}
}

func TestReadTopicsFromFile_NonExistent(t *testing.T) {
	_, err := ReadTopicsFromFile("non_existent_file.txt")
	if err == nil {
		t.Error("expected error for non-existent file, got nil")
	}
}

func TestReadTopicsFromFile_Deduplication(t *testing.T) {
	content := `Albert Einstein
Albert Einstein`

	tmpfile, err := os.CreateTemp("", "topics_dedup")
	if err != nil {
		t.Fatal(err)
	}
	defer func() {
		_ = os.Remove(tmpfile.Name())
	}()

	if _, err := tmpfile.Write([]byte(content)); err != nil {
		t.Fatal(err)
	}
	if err := tmpfile.Close(); err != nil {
		t.Fatal(err)
	}

	topics, err := ReadTopicsFromFile(tmpfile.Name())
	if err != nil {
		t.Fatalf("ReadTopicsFromFile failed: %v", err)
	}

	if len(topics) != 1 {
		t.Errorf("expected 1 topic after deduplication, got %d", len(topics))
	}
}

func TestVerifyResult_GetError(t *testing.T) {
	r1 := &VerifyResult{Topic: "Albert Einstein", Error: nil}
	if r1.GetError() != nil {
		t.Errorf("expected nil error, got %v", r1.GetError())
	}

	expected := errors.New("verify failed")
	r2 := &VerifyResult{Topic: "Albert Einstein", Error: expected}
	if r2.GetError() != expected {
		t.Errorf("expected %v, got %v", expected, r2.GetError())
	}
}

func TestBatchProcessor_ProcessFile(t *testing.T) {
	content := "Albert Einstein\nPhotosynthesis\n# comment\n\nLaksa\n"

	tmpfile, err := os.CreateTemp("", "batch_topics")
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = os.Remove(tmpfile.Name()) }()

	if _, err := tmpfile.Write([]byte(content)); err != nil {
		t.Fatal(err)
	}
	if err := tmpfile.Close(); err != nil {
		t.Fatal(err)
	}

	verifier := &MockVerifier{}
	processor := NewBatchProcessor(verifier, 2)

	results, err := processor.ProcessFile(context.Background(), tmpfile.Name())
	if err != nil {
		t.Fatalf("ProcessFile failed: %v", err)
	}

	if len(results) != 3 {
		t.Errorf("expected 3 results, got %d", len(results))
	}
}

func TestBatchProcessor_ProcessFile_NonExistent(t *testing.T) {
	verifier := &MockVerifier{}
	processor := NewBatchProcessor(verifier, 2)

	_, err := processor.ProcessFile(context.Background(), "no_such_file.txt")
	if err == nil {
		t.Error("expected error for non-existent file, got nil")
	}
}
