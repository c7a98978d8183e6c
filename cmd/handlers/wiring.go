package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/jungh5/shcard-ceo-bot/internal/analyze"
	"github.com/jungh5/shcard-ceo-bot/internal/config"
	"github.com/jungh5/shcard-ceo-bot/internal/core"
	"github.com/jungh5/shcard-ceo-bot/internal/fetch"
	"github.com/jungh5/shcard-ceo-bot/internal/keywords"
	"github.com/jungh5/shcard-ceo-bot/internal/llm"
	"github.com/jungh5/shcard-ceo-bot/internal/news"
	"github.com/jungh5/shcard-ceo-bot/internal/pipeline"
	"github.com/jungh5/shcard-ceo-bot/internal/tts"
)

// buildPipeline assembles the question pipeline from the loaded configuration.
// The returned pipeline is shared by the chat and ask commands.
func buildPipeline(cfg *config.Config) (*pipeline.Pipeline, error) {
	completer, err := llm.NewClient(cfg.AI.Gemini.Model)
	if err != nil {
		return nil, fmt.Errorf("failed to create LLM client: %w", err)
	}

	provider, err := news.NewProvider(news.ProviderType(cfg.News.Provider), map[string]string{
		"client_id":     cfg.News.Naver.ClientID,
		"client_secret": cfg.News.Naver.ClientSecret,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create news provider: %w", err)
	}

	fetcher := fetch.NewFetcher(
		fetch.WithUserAgent(cfg.Fetch.UserAgent),
		fetch.WithHTTPClient(&http.Client{Timeout: parseTimeout(cfg.Fetch.Timeout, 10*time.Second)}),
	)
	searcher := news.NewProgressiveSearcher(provider, fetcher, cfg.News.Display)

	var synthesizer pipeline.SpeechSynthesizer
	if cfg.TTS.Enabled {
		synthesizer = tts.NewSynthesizer(&tts.Config{
			APIKey:     cfg.TTS.ElevenLabs.APIKey,
			VoiceID:    cfg.TTS.ElevenLabs.VoiceID,
			CacheDir:   cfg.TTS.CacheDir,
			HTTPClient: &http.Client{Timeout: parseTimeout(cfg.TTS.Timeout, 60*time.Second)},
		})
	}

	return pipeline.New(
		keywords.NewExtractor(completer),
		searcher,
		analyze.NewAnalyzer(completer),
		synthesizer,
	), nil
}

// newSession creates a chat session seeded with the configured TTS settings.
func newSession(cfg *config.Config) *core.Session {
	session := core.NewSession()
	session.TTSEnabled = cfg.TTS.Enabled
	if cfg.TTS.Speed > 0 {
		session.TTSSpeed = cfg.TTS.Speed
	}
	return session
}

func parseTimeout(value string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(value)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}
