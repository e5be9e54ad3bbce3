package presentation

import "time"

// Pacing holds the display delays of the detection screen. None of them
// affect correctness.
type Pacing struct {
	// ScanStep is how long each project type is highlighted while the
	// analysis is in flight.
	ScanStep time.Duration
	// DetectionSettle is how long the detected type stays on screen before
	// the dashboard opens.
	DetectionSettle time.Duration
}

var DefaultPacing = Pacing{
	ScanStep:        400 * time.Millisecond,
	DetectionSettle: 1500 * time.Millisecond,
}
