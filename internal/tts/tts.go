// Package tts synthesizes speech for the spoken-quote section via the
// ElevenLabs API, cached on disk by content hash.
package tts

import (
	"bytes"
	"context"
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/jungh5/shcard-ceo-bot/internal/logger"
)

const defaultBaseURL = "https://api.elevenlabs.io"

// modelID is the multilingual ElevenLabs model; the spoken text is Korean.
const modelID = "eleven_multilingual_v2"

// SynthesisError reports a failed synthesis request. The caller shows a
// warning and keeps the textual answer; playback is skipped.
type SynthesisError struct {
	StatusCode int    // HTTP status when the API answered non-2xx, 0 otherwise
	Body       string // Response body for non-2xx answers
	Err        error  // Transport or filesystem error
}

func (e *SynthesisError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("speech synthesis failed: %v", e.Err)
	}
	return fmt.Sprintf("speech synthesis failed: status %d: %s", e.StatusCode, e.Body)
}

func (e *SynthesisError) Unwrap() error {
	return e.Err
}

// VoiceSettings are the fixed voice-quality parameters sent with every
// request.
type VoiceSettings struct {
	Stability       float64 `json:"stability"`
	SimilarityBoost float64 `json:"similarity_boost"`
	Style           float64 `json:"style,omitempty"`
	UseSpeakerBoost bool    `json:"use_speaker_boost,omitempty"`
}

// synthesisRequest is the ElevenLabs text-to-speech request body.
type synthesisRequest struct {
	Text          string        `json:"text"`
	ModelID       string        `json:"model_id"`
	VoiceSettings VoiceSettings `json:"voice_settings"`
}

// Config holds synthesizer configuration.
type Config struct {
	APIKey     string
	VoiceID    string
	CacheDir   string
	BaseURL    string
	HTTPClient *http.Client
}

// Synthesizer turns text into cached audio artifacts. Synthesis happens at
// most once per distinct text; repeated requests are served from the cache.
type Synthesizer struct {
	config *Config
}

// NewSynthesizer creates a Synthesizer, filling in defaults for the cache
// directory, base URL and HTTP client.
func NewSynthesizer(config *Config) *Synthesizer {
	if config.HTTPClient == nil {
		config.HTTPClient = &http.Client{Timeout: 60 * time.Second}
	}
	if config.CacheDir == "" {
		config.CacheDir = "audio"
	}
	if config.BaseURL == "" {
		config.BaseURL = defaultBaseURL
	}
	return &Synthesizer{config: config}
}

// CachePath returns the artifact path for a given text.
func (s *Synthesizer) CachePath(text string) string {
	sum := md5.Sum([]byte(text))
	return filepath.Join(s.config.CacheDir, fmt.Sprintf("output_%s.mp3", hex.EncodeToString(sum[:])))
}

// Synthesize returns the audio bytes for text, from cache when an artifact
// for the same text already exists, otherwise from the voice API.
func (s *Synthesizer) Synthesize(ctx context.Context, text string) ([]byte, error) {
	cachePath := s.CachePath(text)
	if audio, err := os.ReadFile(cachePath); err == nil {
		logger.Debug("audio cache hit", "path", cachePath)
		return audio, nil
	}

	if s.config.APIKey == "" {
		return nil, &SynthesisError{Err: fmt.Errorf("ElevenLabs API key is required")}
	}
	if s.config.VoiceID == "" {
		return nil, &SynthesisError{Err: fmt.Errorf("ElevenLabs voice ID is required")}
	}

	audio, err := s.request(ctx, text)
	if err != nil {
		return nil, err
	}

	if err := s.store(cachePath, audio); err != nil {
		return nil, &SynthesisError{Err: err}
	}
	return audio, nil
}

// request calls the ElevenLabs text-to-speech endpoint.
func (s *Synthesizer) request(ctx context.Context, text string) ([]byte, error) {
	requestData := synthesisRequest{
		Text:    text,
		ModelID: modelID,
		VoiceSettings: VoiceSettings{
			Stability:       0.75,
			SimilarityBoost: 0.9,
			Style:           0.2,
			UseSpeakerBoost: true,
		},
	}

	jsonData, err := json.Marshal(requestData)
	if err != nil {
		return nil, &SynthesisError{Err: fmt.Errorf("failed to marshal request: %w", err)}
	}

	url := fmt.Sprintf("%s/v1/text-to-speech/%s", s.config.BaseURL, s.config.VoiceID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(jsonData))
	if err != nil {
		return nil, &SynthesisError{Err: fmt.Errorf("failed to create request: %w", err)}
	}
	req.Header.Set("Accept", "audio/mpeg")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("xi-api-key", s.config.APIKey)

	resp, err := s.config.HTTPClient.Do(req)
	if err != nil {
		return nil, &SynthesisError{Err: fmt.Errorf("failed to call voice API: %w", err)}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, &SynthesisError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	audio, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &SynthesisError{Err: fmt.Errorf("failed to read audio stream: %w", err)}
	}
	return audio, nil
}

// store writes the artifact through a temp file and an atomic rename, so a
// reader never observes a partially written artifact.
func (s *Synthesizer) store(path string, audio []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create cache directory: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".tts-*")
	if err != nil {
		return fmt.Errorf("failed to create temp artifact: %w", err)
	}
	if _, err := tmp.Write(audio); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("failed to write audio artifact: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("failed to close audio artifact: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("failed to finalize audio artifact: %w", err)
	}
	return nil
}
