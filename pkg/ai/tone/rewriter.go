package tone

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"

	"xlai-be/internal/pkg/apperror"
	"xlai-be/pkg/llm"

	gocache "github.com/patrickmn/go-cache"
)

// Supported rewrite tones. Unrecognized values fall back to calm.
const (
	ToneCalm         = "calm"
	ToneProfessional = "professional"
	ToneLowkey       = "lowkey"
)

var toneInstructions = map[string]string{
	ToneCalm: "Rewrite the user's message so it sounds calm, warm, and de-escalating. " +
		"Preserve the original meaning and intent; do not introduce new emotional content or new facts. " +
		"Keep similar length to the original. Return ONLY the rewritten message text, nothing else.",
	ToneProfessional: "Rewrite the user's message so it sounds professional, clear, and respectful. " +
		"Preserve the original meaning and intent; do not introduce new emotional content or new facts. " +
		"Keep similar length to the original. Return ONLY the rewritten message text, nothing else.",
	ToneLowkey: "Rewrite the user's message so it sounds low-key, casual, and relaxed. " +
		"Preserve the original meaning and intent; do not introduce new emotional content or new facts. " +
		"Keep similar length to the original. Return ONLY the rewritten message text, nothing else.",
}

// Rewriter produces tone-adjusted rewrites of draft messages.
type Rewriter struct {
	llmProvider llm.LLMProvider
	cache       *gocache.Cache
}

func NewRewriter(llmProvider llm.LLMProvider) *Rewriter {
	return &Rewriter{
		llmProvider: llmProvider,
		cache:       gocache.New(5*time.Minute, 10*time.Minute),
	}
}

// NormalizeTone coerces unknown tones to the calm default.
func NormalizeTone(tone string) string {
	if _, ok := toneInstructions[tone]; ok {
		return tone
	}
	return ToneCalm
}

// Rephrase returns a single rewritten version of text in the requested tone.
// Identical (text, tone) pairs within the cache window reuse the previous
// rewrite instead of hitting the model again.
func (r *Rewriter) Rephrase(ctx context.Context, text, tone string) (string, error) {
	effectiveTone := NormalizeTone(tone)

	key := cacheKey(text, effectiveTone)
	if cached, found := r.cache.Get(key); found {
		return cached.(string), nil
	}

	history := []llm.Message{
		{Role: "system", Content: toneInstructions[effectiveTone]},
		{Role: "user", Content: text},
	}

	raw, err := r.llmProvider.Chat(ctx, history, llm.WithTemperature(0.4), llm.WithMaxTokens(220))
	if err != nil {
		return "", apperror.Upstream("XL AI could not rephrase that message right now. Please try again.", err)
	}

	suggestion := strings.TrimSpace(raw)
	if suggestion == "" {
		return "", apperror.Upstream("XL AI could not rephrase that message right now. Please try again.", nil)
	}

	r.cache.Set(key, suggestion, gocache.DefaultExpiration)
	return suggestion, nil
}

func cacheKey(text, tone string) string {
	sum := sha256.Sum256([]byte(tone + "|" + text))
	return hex.EncodeToString(sum[:])
}
