package main

import (
	"context"
	"errors"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/gordonklaus/portaudio"
	"go.uber.org/zap"

	"github.com/aeroassist/aero/adapters/history"
	"github.com/aeroassist/aero/adapters/llm"
	"github.com/aeroassist/aero/adapters/stt"
	"github.com/aeroassist/aero/adapters/tts"
	"github.com/aeroassist/aero/domain/repositories"
	"github.com/aeroassist/aero/internal/audio"
	"github.com/aeroassist/aero/internal/audio/vad"
	"github.com/aeroassist/aero/internal/config"
	"github.com/aeroassist/aero/internal/handlers"
	"github.com/aeroassist/aero/usecase"
)

func main() {
	// Initialize logger
	logger, _ := zap.NewProduction()
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Invalid configuration", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := portaudio.Initialize(); err != nil {
		logger.Fatal("Could not initialize audio subsystem", zap.Error(err))
	}
	defer portaudio.Terminate()

	if err := run(ctx, cfg, logger); err != nil && !errors.Is(err, context.Canceled) {
		logger.Fatal("Session ended with error", zap.Error(err))
	}
	logger.Info("Assistant exited")
}

func run(ctx context.Context, cfg config.Config, logger *zap.Logger) error {
	model, err := buildLanguageModel(ctx, cfg, logger)
	if err != nil {
		return err
	}
	transcriber, err := buildTranscriber(ctx, cfg, logger)
	if err != nil {
		return err
	}
	speaker := buildSpeaker(cfg, logger)

	var engine vad.Engine = &vad.WebRTCEngine{Mode: 0}
	if cfg.VADEngine == config.VADEnergy {
		engine = &vad.EnergyEngine{}
	}

	endpointer := audio.NewEndpointer(
		audio.OpenCaptureDevice,
		engine,
		logger,
		audio.WithSilenceTimeout(cfg.SilenceTimeout),
		audio.WithMaxUtterance(cfg.MaxUtterance),
	)

	listener := usecase.NewListener(endpointer, transcriber, logger)
	exitGate := usecase.NewExitGate(model, logger)
	router := usecase.NewIntentRouter(model, logger)
	store := history.NewFileStore(cfg.HistoryPath, logger)

	service := usecase.NewDialogService(
		listener, exitGate, router, speaker, store, cfg.MaxHistoryTurns, logger)

	registerHandlers(ctx, service, listener, exitGate, speaker, model, cfg, logger)

	return service.Run(ctx)
}

func buildLanguageModel(ctx context.Context, cfg config.Config, logger *zap.Logger) (repositories.LanguageModel, error) {
	switch {
	case cfg.LLMProvider == config.ProviderGemini && cfg.GeminiAPIKey != "":
		return llm.NewGemini(ctx, llm.GeminiConfig{APIKey: cfg.GeminiAPIKey, Timeout: cfg.RequestTimeout}, logger)
	case cfg.LLMProvider == config.ProviderGroq && cfg.GroqAPIKey != "":
		return llm.NewGroq(llm.GroqConfig{APIKey: cfg.GroqAPIKey, Timeout: cfg.RequestTimeout}, logger)
	default:
		logger.Warn("No language model credentials, using canned responses")
		return llm.NewMock(logger), nil
	}
}

func buildTranscriber(ctx context.Context, cfg config.Config, logger *zap.Logger) (repositories.Transcriber, error) {
	switch {
	case cfg.STTProvider == config.STTGoogle:
		return stt.NewGoogleTranscriber(ctx, cfg.RequestTimeout, logger)
	case cfg.GroqAPIKey != "":
		return stt.NewGroqTranscriber(stt.GroqConfig{APIKey: cfg.GroqAPIKey, Timeout: cfg.RequestTimeout}, logger)
	default:
		logger.Warn("No transcription credentials, using canned transcripts")
		return stt.NewMockTranscriber(logger), nil
	}
}

func buildSpeaker(cfg config.Config, logger *zap.Logger) repositories.Speaker {
	if cfg.ElevenLabsAPIKey == "" {
		logger.Warn("No speech synthesis credentials, responses will be logged instead")
		return tts.NewConsoleSpeaker(logger)
	}
	synthesizer, err := tts.NewElevenLabs(tts.ElevenLabsConfig{APIKey: cfg.ElevenLabsAPIKey}, logger)
	if err != nil {
		logger.Warn("Speech synthesis unavailable", zap.Error(err))
		return tts.NewConsoleSpeaker(logger)
	}
	return tts.NewVoiceSpeaker(synthesizer, audio.NewPlayer(), audio.SampleRate, logger)
}

func registerHandlers(
	ctx context.Context,
	service *usecase.DialogService,
	listener *usecase.Listener,
	exitGate *usecase.ExitGate,
	speaker repositories.Speaker,
	model repositories.LanguageModel,
	cfg config.Config,
	logger *zap.Logger,
) {
	runner := handlers.ExecRunner{}
	outDir := filepath.Dir(cfg.HistoryPath)

	service.Register(handlers.NewGeneral(model, service, logger))
	service.Register(handlers.NewTherapy(model, listener, exitGate, speaker, logger))
	service.Register(handlers.NewNotepad(model, runner, "", logger))
	service.Register(handlers.NewBrightness(runner, logger))
	service.Register(handlers.NewVolume(runner, logger))
	service.Register(handlers.NewCloseApps(runner, logger))
	service.Register(handlers.NewCalendar(model, runner, "", logger))
	service.Register(handlers.NewFileRetrieval(runner, nil, logger))
	service.Register(handlers.NewMessaging(model, logger))

	if cfg.NewsAPIKey != "" {
		service.Register(handlers.NewNews(cfg.NewsAPIKey, "", model, logger))
	} else {
		logger.Warn("No news credentials, news requests fall back to general handler")
	}

	if cfg.HasZoomCredentials() {
		service.Register(handlers.NewMeeting(handlers.ZoomConfig{
			AccountID:    cfg.ZoomAccountID,
			ClientID:     cfg.ZoomClientID,
			ClientSecret: cfg.ZoomClientSecret,
		}, logger))
	} else {
		logger.Warn("No zoom credentials, meeting requests fall back to general handler")
	}

	if vision, ok := model.(repositories.VisionModel); ok {
		service.Register(handlers.NewVisualize(vision, runner, outDir, logger))
	} else {
		logger.Warn("Language model has no vision support, visualize requests fall back to general handler")
	}
}
