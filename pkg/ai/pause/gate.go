package pause

// Coach modes determine how aggressively the pause gate fires.
const (
	ModeSoft = "soft"
	ModeHigh = "high"
)

const (
	softThreshold = 0.85
	highThreshold = 0.70

	// CountdownSeconds is how long "send anyway" stays disabled once the
	// gate fires.
	CountdownSeconds = 15
)

// Decision tells the client whether to route a draft into the pause flow.
type Decision struct {
	Required         bool    `json:"required"`
	Threshold        float64 `json:"threshold"`
	CountdownSeconds int     `json:"countdownSeconds"`
}

// Evaluate applies the coach-mode threshold to an intensity score.
// Unknown modes behave as soft.
func Evaluate(score float64, mode string) Decision {
	threshold := softThreshold
	if mode == ModeHigh {
		threshold = highThreshold
	}

	return Decision{
		Required:         score > threshold,
		Threshold:        threshold,
		CountdownSeconds: CountdownSeconds,
	}
}
