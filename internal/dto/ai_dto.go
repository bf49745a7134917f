package dto

type RephraseRequest struct {
	Text string `json:"text" validate:"required"`
	Tone string `json:"tone"`
	// Optional context so accepted suggestions can be traced back later.
	ConversationId string `json:"conversationId"`
	UserId         string `json:"userId"`
}

type RephraseResponse struct {
	Suggestion string `json:"suggestion"`
}

type AnalyzeIntensityRequest struct {
	Text    string `json:"text" validate:"required"`
	Tone    string `json:"tone"`
	Emotion string `json:"emotion"`
	// CoachMode selects the pause threshold: "soft" (default) or "high".
	CoachMode string `json:"coachMode"`
}

type IntensityPayload struct {
	Intensity      float64 `json:"intensity"`
	Label          string  `json:"label"`
	PrimaryEmotion string  `json:"primaryEmotion,omitempty"`
}

type PausePayload struct {
	Required         bool    `json:"required"`
	Threshold        float64 `json:"threshold"`
	CountdownSeconds int     `json:"countdownSeconds"`
}

type AnalyzeIntensityResponse struct {
	Intensity  IntensityPayload `json:"intensity"`
	Suggestion string           `json:"suggestion"`
	Pause      PausePayload     `json:"pause"`
}
