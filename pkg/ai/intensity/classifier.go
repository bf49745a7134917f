package intensity

import (
	"context"
	"encoding/json"
	"log"
	"strings"

	"xlai-be/pkg/llm"
)

// Result is the outcome of a single intensity analysis.
type Result struct {
	Intensity      float64 `json:"intensity"`
	Label          string  `json:"label"`
	PrimaryEmotion string  `json:"primaryEmotion"`
	Suggestion     string  `json:"suggestion"`
}

const systemPrompt = `You are XL AI, an emotionally intelligent communication assistant focused on producing a single, clean rewrite of the user's message.

Your tasks:
1) Estimate the emotional intensity of the user's message from 0.0 (very calm) to 1.0 (very intense).
2) Provide a short label: "low", "medium", or "high".
3) Name the single dominant emotion in the message (e.g. "anger", "frustration", "neutral") in the "primaryEmotion" field.
4) Produce ONE rewritten version of the user's message and place it in the "suggestion" field. The "suggestion" value MUST contain ONLY the rewritten message text and NOTHING ELSE (no advice, no coaching, no explanations, no extra sentences).

Constraints for the rewrite in "suggestion":
- Preserve the original meaning and intent; do not introduce new emotional content or new facts.
- Keep similar length to the original unless a small edit improves clarity.
- Match the requested tone (calm / professional / low-key) as indicated by the user prompt.
- Do NOT mention you are an AI or a coach. Do not add preambles or follow-up questions.

Return ONLY a JSON object with exactly this shape and no other commentary:
{
  "intensity": number,
  "label": "low" | "medium" | "high",
  "primaryEmotion": string,
  "suggestion": string
}`

// Classifier scores the emotional charge of a draft message.
type Classifier struct {
	llmProvider llm.LLMProvider
}

func NewClassifier(llmProvider llm.LLMProvider) *Classifier {
	return &Classifier{llmProvider: llmProvider}
}

// Analyze never returns an error: an unreachable or misbehaving model must
// not block the user from sending a message, so upstream failures fall back
// to a calm default and parse failures to a neutral midpoint.
func (c *Classifier) Analyze(ctx context.Context, text, tone, emotion string) Result {
	userPrompt := buildUserPrompt(text, tone, emotion)

	history := []llm.Message{
		{Role: "system", Content: systemPrompt},
		{Role: "user", Content: userPrompt},
	}

	raw, err := c.llmProvider.Chat(ctx, history, llm.WithTemperature(0.4), llm.WithMaxTokens(220))
	if err != nil {
		log.Printf("[WARN] Intensity analysis failed, failing open: %v", err)
		return Result{Intensity: 0, Label: "low"}
	}

	var parsed Result
	if err := json.Unmarshal([]byte(extractJSON(raw)), &parsed); err != nil {
		log.Printf("[WARN] Could not parse intensity JSON, falling back. Raw: %s", raw)
		return Result{Intensity: 0.5, Label: "medium"}
	}

	if parsed.Intensity < 0 {
		parsed.Intensity = 0
	}
	if parsed.Intensity > 1 {
		parsed.Intensity = 1
	}
	if parsed.Label == "" {
		parsed.Label = LabelFromScore(parsed.Intensity)
	}

	return parsed
}

// LabelFromScore maps a score in [0,1] onto the coarse label buckets.
func LabelFromScore(score float64) string {
	switch {
	case score < 0.4:
		return "low"
	case score < 0.7:
		return "medium"
	default:
		return "high"
	}
}

func buildUserPrompt(text, tone, emotion string) string {
	if tone == "" {
		tone = "calm"
	}
	if emotion == "" {
		emotion = "none"
	}
	var b strings.Builder
	b.WriteString("Tone preference: " + tone + "\n")
	b.WriteString("User emotion chip: " + emotion + "\n\n")
	b.WriteString("Message:\n\"" + text + "\"")
	return b.String()
}

func extractJSON(response string) string {
	startIdx := strings.Index(response, "{")
	endIdx := strings.LastIndex(response, "}")

	if startIdx == -1 || endIdx == -1 || endIdx <= startIdx {
		return response
	}

	return response[startIdx : endIdx+1]
}
