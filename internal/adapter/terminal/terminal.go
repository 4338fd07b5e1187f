// Package terminal adapts the session's speech ports to stdin/stdout so the
// app stays usable without a microphone or speakers.
package terminal

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/eslsoft/chindospeak/internal/entity"
	"github.com/eslsoft/chindospeak/internal/usecase"
)

// Recognizer reads typed answers line by line in place of speech input.
type Recognizer struct {
	reader *bufio.Reader
	out    io.Writer
}

// NewRecognizer reads answers from in and writes the prompt marker to out.
func NewRecognizer(in io.Reader, out io.Writer) *Recognizer {
	return &Recognizer{reader: bufio.NewReader(in), out: out}
}

// Recognize blocks for one line of input. An empty line or closed stream is
// reported as a failed recognition so the retry logic applies.
func (r *Recognizer) Recognize(ctx context.Context, lang string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	fmt.Fprint(r.out, "> ")
	line, err := r.reader.ReadString('\n')
	if err != nil && line == "" {
		return "", entity.ErrSpeechUnavailable
	}
	line = strings.TrimSpace(line)
	if line == "" {
		return "", entity.ErrSpeechUnavailable
	}
	return line, nil
}

// EchoSpeaker prints prompts instead of playing audio.
type EchoSpeaker struct {
	out io.Writer
}

// NewEchoSpeaker creates a speaker writing to out.
func NewEchoSpeaker(out io.Writer) *EchoSpeaker {
	return &EchoSpeaker{out: out}
}

func (s *EchoSpeaker) Speak(ctx context.Context, text, lang string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	fmt.Fprintf(s.out, "tts> %s\n", text)
	return nil
}

var (
	_ usecase.Recognizer = (*Recognizer)(nil)
	_ usecase.Speaker    = (*EchoSpeaker)(nil)
)
