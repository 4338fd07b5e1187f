package audio

import (
	"context"
	"crypto/sha1"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/eslsoft/chindospeak/internal/usecase"
)

const ttsRequestTimeout = 10 * time.Second

// GoogleSpeaker speaks prompts through the free Google Translate TTS
// endpoint and a local audio player. Fetched clips are cached on disk so a
// word is downloaded once per language.
type GoogleSpeaker struct {
	cacheDir string
	player   string
	client   *http.Client
	logger   *logrus.Logger
}

// NewGoogleSpeaker creates a speaker caching MP3 clips under cacheDir and
// playing them with the named player binary (mpv, afplay, ...).
func NewGoogleSpeaker(cacheDir, player string, logger *logrus.Logger) (*GoogleSpeaker, error) {
	if err := os.MkdirAll(cacheDir, 0o755); err != nil {
		return nil, fmt.Errorf("create audio cache: %w", err)
	}
	return &GoogleSpeaker{
		cacheDir: cacheDir,
		player:   player,
		client:   &http.Client{Timeout: ttsRequestTimeout},
		logger:   logger,
	}, nil
}

// Speak synthesizes text in the given BCP 47 language tag and blocks until
// playback finishes or ctx is cancelled.
func (s *GoogleSpeaker) Speak(ctx context.Context, text, lang string) error {
	path, err := s.fetch(ctx, text, lang)
	if err != nil {
		return err
	}
	cmd := exec.CommandContext(ctx, s.player, path)
	cmd.Stdout = io.Discard
	cmd.Stderr = io.Discard
	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("play audio: %w", err)
	}
	return nil
}

func (s *GoogleSpeaker) fetch(ctx context.Context, text, lang string) (string, error) {
	name := fmt.Sprintf("%x.mp3", sha1.Sum([]byte(lang+"|"+text)))
	path := filepath.Join(s.cacheDir, name)
	if _, err := os.Stat(path); err == nil {
		return path, nil
	}

	params := url.Values{}
	params.Set("ie", "UTF-8")
	params.Set("q", text)
	params.Set("tl", lang)
	params.Set("client", "tw-ob")
	params.Set("textlen", fmt.Sprintf("%d", len(text)))
	fullURL := "https://translate.google.com/translate_tts?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return "", fmt.Errorf("create tts request: %w", err)
	}
	// Google rejects requests without a browser user agent.
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36")

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch tts audio: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("fetch tts audio: status %d", resp.StatusCode)
	}

	tmp, err := os.CreateTemp(s.cacheDir, "tts-*.mp3")
	if err != nil {
		return "", fmt.Errorf("create audio file: %w", err)
	}
	if _, err := io.Copy(tmp, resp.Body); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", fmt.Errorf("write audio file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("write audio file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("cache audio file: %w", err)
	}
	s.logger.WithFields(logrus.Fields{"lang": lang, "file": name}).Debug("cached tts clip")
	return path, nil
}

var _ usecase.Speaker = (*GoogleSpeaker)(nil)
