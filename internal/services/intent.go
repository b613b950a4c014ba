package services

import "strings"

// Detector classifies a single chat message as a booking request or not.
// It is a pure function of the message text with no conversation memory, so
// a multi-turn booking conversation triggers once per message that matches.
// Kept as an interface so the keyword heuristic can be swapped for a real
// classifier without touching the lifecycle logic.
type Detector interface {
	IsBookingIntent(message string) bool
}

// KeywordDetector matches a fixed keyword set against the lowercased text.
type KeywordDetector struct {
	keywords []string
}

func NewKeywordDetector() *KeywordDetector {
	return &KeywordDetector{
		keywords: []string{
			"book",
			"appointment",
			"schedule",
			"reserve",
			"set an appointment",
		},
	}
}

func (d *KeywordDetector) IsBookingIntent(message string) bool {
	lower := strings.ToLower(message)
	for _, kw := range d.keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}
