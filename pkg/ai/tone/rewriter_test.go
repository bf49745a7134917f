package tone

import (
	"context"
	"errors"
	"testing"

	"xlai-be/internal/pkg/apperror"
	"xlai-be/pkg/llm"
)

type stubProvider struct {
	response string
	err      error
	calls    int
}

func (s *stubProvider) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	s.calls++
	return s.response, s.err
}

func (s *stubProvider) Generate(ctx context.Context, prompt string, options ...llm.Option) (string, error) {
	s.calls++
	return s.response, s.err
}

func TestNormalizeTone(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"calm", "calm"},
		{"professional", "professional"},
		{"lowkey", "lowkey"},
		{"sarcastic", "calm"},
		{"", "calm"},
		{"CALM", "calm"},
	}

	for _, tt := range tests {
		if got := NormalizeTone(tt.in); got != tt.want {
			t.Errorf("NormalizeTone(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestRephrase(t *testing.T) {
	provider := &stubProvider{response: "Could we revisit this tomorrow?"}
	r := NewRewriter(provider)

	got, err := r.Rephrase(context.Background(), "we NEED to talk about this NOW", "calm")
	if err != nil {
		t.Fatalf("Rephrase() error = %v", err)
	}
	if got != "Could we revisit this tomorrow?" {
		t.Errorf("Rephrase() = %q", got)
	}
}

func TestRephraseTrimsWhitespace(t *testing.T) {
	provider := &stubProvider{response: "  Let's take a breath first. \n"}
	r := NewRewriter(provider)

	got, err := r.Rephrase(context.Background(), "whatever", "lowkey")
	if err != nil {
		t.Fatalf("Rephrase() error = %v", err)
	}
	if got != "Let's take a breath first." {
		t.Errorf("Rephrase() = %q", got)
	}
}

func TestRephraseUpstreamFailure(t *testing.T) {
	provider := &stubProvider{err: errors.New("timeout")}
	r := NewRewriter(provider)

	_, err := r.Rephrase(context.Background(), "hello", "professional")
	if err == nil {
		t.Fatal("expected error, got nil")
	}

	appErr, ok := apperror.From(err)
	if !ok {
		t.Fatalf("error is not an AppError: %v", err)
	}
	if appErr.Code != apperror.CodeUpstream {
		t.Errorf("error code = %s, want %s", appErr.Code, apperror.CodeUpstream)
	}
}

func TestRephraseEmptyResponse(t *testing.T) {
	provider := &stubProvider{response: "   "}
	r := NewRewriter(provider)

	_, err := r.Rephrase(context.Background(), "hello", "calm")
	if err == nil {
		t.Fatal("expected error for empty suggestion, got nil")
	}
}

func TestRephraseCachesRepeatCalls(t *testing.T) {
	provider := &stubProvider{response: "Cached rewrite."}
	r := NewRewriter(provider)

	for i := 0; i < 3; i++ {
		if _, err := r.Rephrase(context.Background(), "same draft", "calm"); err != nil {
			t.Fatalf("Rephrase() error = %v", err)
		}
	}

	if provider.calls != 1 {
		t.Errorf("provider called %d times, want 1", provider.calls)
	}

	// Different tone is a different cache entry.
	if _, err := r.Rephrase(context.Background(), "same draft", "professional"); err != nil {
		t.Fatalf("Rephrase() error = %v", err)
	}
	if provider.calls != 2 {
		t.Errorf("provider called %d times, want 2", provider.calls)
	}
}
