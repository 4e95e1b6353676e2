package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Default values applied when the environment leaves a knob unset.
const (
	DefaultHistoryPath     = "conversation_log.json"
	DefaultMaxHistoryTurns = 10
	DefaultSilenceTimeout  = 3 * time.Second
	DefaultMaxUtterance    = 60 * time.Second
	DefaultRequestTimeout  = 30 * time.Second
)

// LLMProvider selects which chat backend drives the assistant.
type LLMProvider string

const (
	ProviderGroq   LLMProvider = "groq"
	ProviderGemini LLMProvider = "gemini"
)

// STTProvider selects which transcription backend is used.
type STTProvider string

const (
	STTGroqWhisper STTProvider = "groq"
	STTGoogle      STTProvider = "google"
)

// VADEngine selects the voice-activity detector. The energy detector is a
// fallback for systems where the WebRTC detector misbehaves with the
// capture hardware.
type VADEngine string

const (
	VADWebRTC VADEngine = "webrtc"
	VADEnergy VADEngine = "energy"
)

// Config carries everything the assistant needs at startup.
type Config struct {
	// API credentials. A missing key disables the provider that needs it.
	GroqAPIKey       string
	GeminiAPIKey     string
	ElevenLabsAPIKey string
	NewsAPIKey       string

	// Zoom server-to-server OAuth credentials for meeting creation.
	ZoomAccountID    string
	ZoomClientID     string
	ZoomClientSecret string

	// Provider selection.
	LLMProvider LLMProvider
	STTProvider STTProvider
	VADEngine   VADEngine

	// Conversation persistence.
	HistoryPath     string
	MaxHistoryTurns int

	// Endpointing.
	SilenceTimeout time.Duration
	MaxUtterance   time.Duration

	// Per-call timeout for remote LLM/STT/TTS requests.
	RequestTimeout time.Duration
}

// Load reads configuration from the environment, first merging a .env file
// if one exists. Absence of the .env file is not an error.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		GroqAPIKey:       os.Getenv("GROQ_API_KEY"),
		GeminiAPIKey:     os.Getenv("GEMINI_API_KEY"),
		ElevenLabsAPIKey: os.Getenv("ELEVEN_LABS_API_KEY"),
		NewsAPIKey:       os.Getenv("NEWS_API_KEY"),
		ZoomAccountID:    os.Getenv("ZOOM_ACCOUNT_ID"),
		ZoomClientID:     os.Getenv("ZOOM_CLIENT_ID"),
		ZoomClientSecret: os.Getenv("ZOOM_CLIENT_SECRET"),
		LLMProvider:      LLMProvider(getEnv("AERO_LLM_PROVIDER", string(ProviderGroq))),
		STTProvider:      STTProvider(getEnv("AERO_STT_PROVIDER", string(STTGroqWhisper))),
		VADEngine:        VADEngine(getEnv("AERO_VAD_ENGINE", string(VADWebRTC))),
		HistoryPath:      getEnv("AERO_HISTORY_PATH", DefaultHistoryPath),
		MaxHistoryTurns:  getEnvInt("AERO_MAX_HISTORY_TURNS", DefaultMaxHistoryTurns),
		SilenceTimeout:   getEnvDuration("AERO_SILENCE_TIMEOUT", DefaultSilenceTimeout),
		MaxUtterance:     getEnvDuration("AERO_MAX_UTTERANCE", DefaultMaxUtterance),
		RequestTimeout:   getEnvDuration("AERO_REQUEST_TIMEOUT", DefaultRequestTimeout),
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks cross-field consistency.
func (c Config) Validate() error {
	switch c.LLMProvider {
	case ProviderGroq, ProviderGemini:
	default:
		return fmt.Errorf("config: unknown LLM provider %q", c.LLMProvider)
	}
	switch c.STTProvider {
	case STTGroqWhisper, STTGoogle:
	default:
		return fmt.Errorf("config: unknown STT provider %q", c.STTProvider)
	}
	switch c.VADEngine {
	case VADWebRTC, VADEnergy:
	default:
		return fmt.Errorf("config: unknown VAD engine %q", c.VADEngine)
	}
	if c.MaxHistoryTurns < 0 {
		return fmt.Errorf("config: max history turns must not be negative, got %d", c.MaxHistoryTurns)
	}
	if c.SilenceTimeout <= 0 {
		return fmt.Errorf("config: silence timeout must be positive, got %s", c.SilenceTimeout)
	}
	if c.MaxUtterance <= c.SilenceTimeout {
		return fmt.Errorf("config: max utterance %s must exceed silence timeout %s", c.MaxUtterance, c.SilenceTimeout)
	}
	return nil
}

// HasZoomCredentials reports whether all three Zoom OAuth values are set.
func (c Config) HasZoomCredentials() bool {
	return c.ZoomAccountID != "" && c.ZoomClientID != "" && c.ZoomClientSecret != ""
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return parsed
}
