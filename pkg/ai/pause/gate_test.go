package pause

import "testing"

func TestEvaluate(t *testing.T) {
	tests := []struct {
		name          string
		score         float64
		mode          string
		wantRequired  bool
		wantThreshold float64
	}{
		{
			name:          "calm message under soft mode",
			score:         0.3,
			mode:          ModeSoft,
			wantRequired:  false,
			wantThreshold: 0.85,
		},
		{
			name:          "intense message under soft mode",
			score:         0.9,
			mode:          ModeSoft,
			wantRequired:  true,
			wantThreshold: 0.85,
		},
		{
			name:          "exactly at soft threshold does not fire",
			score:         0.85,
			mode:          ModeSoft,
			wantRequired:  false,
			wantThreshold: 0.85,
		},
		{
			name:          "medium message under high mode fires",
			score:         0.75,
			mode:          ModeHigh,
			wantRequired:  true,
			wantThreshold: 0.70,
		},
		{
			name:          "medium message under soft mode does not fire",
			score:         0.75,
			mode:          ModeSoft,
			wantRequired:  false,
			wantThreshold: 0.85,
		},
		{
			name:          "unknown mode behaves as soft",
			score:         0.75,
			mode:          "aggressive",
			wantRequired:  false,
			wantThreshold: 0.85,
		},
		{
			name:          "empty mode behaves as soft",
			score:         0.9,
			mode:          "",
			wantRequired:  true,
			wantThreshold: 0.85,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Evaluate(tt.score, tt.mode)

			if got.Required != tt.wantRequired {
				t.Errorf("Required = %v, want %v", got.Required, tt.wantRequired)
			}
			if got.Threshold != tt.wantThreshold {
				t.Errorf("Threshold = %v, want %v", got.Threshold, tt.wantThreshold)
			}
			if got.CountdownSeconds != CountdownSeconds {
				t.Errorf("CountdownSeconds = %d, want %d", got.CountdownSeconds, CountdownSeconds)
			}
		})
	}
}
