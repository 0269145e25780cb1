// Package speech provides text-to-speech and speech-to-text wrappers:
// Piper for synthesis, oto for playback, Whisper for voice input.
package speech

import "time"

// Audio parameters for Piper's default medium-quality voices. The
// player is initialized to match; pick a voice with the same rate.
const (
	SampleRate   = 22050
	ChannelCount = 1
)

// Priority levels for speech requests. Higher value = speaks first.
type Priority int

const (
	PriorityLow      Priority = iota // idle chatter, hints
	PriorityNormal                   // step instructions, estimates
	PriorityHigh                     // validation results, corrections
	PriorityCritical                 // safety warnings
)

// Request is a queued item waiting to be spoken.
type Request struct {
	Text     string
	Priority Priority
	QueuedAt time.Time
}
