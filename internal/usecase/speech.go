package usecase

import "context"

// Speaker synthesizes and plays one line of speech. A failing Speak must
// never abort a session: callers log the error and continue silently.
type Speaker interface {
	// Speak blocks until playback finishes or ctx is cancelled. lang is a
	// BCP 47 tag such as "zh-CN", "id-ID" or "en-US".
	Speak(ctx context.Context, text, lang string) error
}

// Recognizer captures a single utterance and returns its transcript. An
// error (no speech, engine failure, timeout) feeds the session's bounded
// retry-then-skip policy.
type Recognizer interface {
	Recognize(ctx context.Context, lang string) (string, error)
}
