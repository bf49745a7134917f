package service

import (
	"context"
	"encoding/json"
	"log"

	"xlai-be/internal/dto"
	"xlai-be/pkg/ai/intensity"
	"xlai-be/pkg/ai/pause"
	"xlai-be/pkg/ai/tone"
	"xlai-be/pkg/envelope"
)

type IAiService interface {
	Rephrase(ctx context.Context, req *dto.RephraseRequest) (*dto.RephraseResponse, error)
	AnalyzeIntensity(ctx context.Context, req *dto.AnalyzeIntensityRequest) (*dto.AnalyzeIntensityResponse, error)
}

// SuggestionLoggedMessage is the payload published after a successful
// rephrase so the consumer can opportunistically record the suggestion.
type SuggestionLoggedMessage struct {
	ConversationId string `json:"conversation_id"`
	UserId         string `json:"user_id"`
	OriginalText   string `json:"original_text"`
	Suggestion     string `json:"suggestion"`
	Tone           string `json:"tone"`
}

type aiService struct {
	rewriter         *tone.Rewriter
	classifier       *intensity.Classifier
	publisherService IPublisherService
}

func NewAiService(
	rewriter *tone.Rewriter,
	classifier *intensity.Classifier,
	publisherService IPublisherService,
) IAiService {
	return &aiService{
		rewriter:         rewriter,
		classifier:       classifier,
		publisherService: publisherService,
	}
}

func (s *aiService) Rephrase(ctx context.Context, req *dto.RephraseRequest) (*dto.RephraseResponse, error) {
	suggestion, err := s.rewriter.Rephrase(ctx, req.Text, req.Tone)
	if err != nil {
		return nil, err
	}

	// Log the suggestion opportunistically; it must never block the reply.
	if s.publisherService != nil {
		payload, err := json.Marshal(SuggestionLoggedMessage{
			ConversationId: req.ConversationId,
			UserId:         req.UserId,
			OriginalText:   req.Text,
			Suggestion:     suggestion,
			Tone:           tone.NormalizeTone(req.Tone),
		})
		if err == nil {
			if err := s.publisherService.Publish(context.WithoutCancel(ctx), payload); err != nil {
				log.Printf("[WARN] Failed to publish suggestion log: %v", err)
			}
		}
	}

	return &dto.RephraseResponse{Suggestion: suggestion}, nil
}

func (s *aiService) AnalyzeIntensity(ctx context.Context, req *dto.AnalyzeIntensityRequest) (*dto.AnalyzeIntensityResponse, error) {
	result := s.classifier.Analyze(ctx, req.Text, req.Tone, req.Emotion)
	decision := pause.Evaluate(result.Intensity, req.CoachMode)

	return &dto.AnalyzeIntensityResponse{
		Intensity: dto.IntensityPayload{
			Intensity:      result.Intensity,
			Label:          result.Label,
			PrimaryEmotion: result.PrimaryEmotion,
		},
		Suggestion: result.Suggestion,
		Pause: dto.PausePayload{
			Required:         decision.Required,
			Threshold:        decision.Threshold,
			CountdownSeconds: decision.CountdownSeconds,
		},
	}, nil
}

// sealForStorage wraps plaintext in the demo envelope before persistence.
// Exposed at package level so the message service shares the same path.
func sealForStorage(plaintext string) string {
	sealed, err := envelope.Seal(plaintext)
	if err != nil {
		// Fail open: prototype storage prefers availability over secrecy.
		log.Printf("[WARN] Envelope seal failed, storing plaintext: %v", err)
		return plaintext
	}
	return sealed
}
