package app

import (
	"context"
	"encoding/json"
	"fmt"

	"finguard/internal/artifact"
	"finguard/internal/assistant"
	"finguard/internal/disease"
	"finguard/internal/gateway/config"
	"finguard/internal/gateway/handler"
	"finguard/internal/gateway/server"
	"finguard/internal/llm"
	"finguard/internal/notify"
	"finguard/internal/pond"
	"finguard/internal/sms"
	"finguard/internal/speech"
	"finguard/internal/weather"
)

type App struct {
	server *server.Server
}

func New() (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	ctx := context.Background()

	// Dependencies
	gen, vision, err := buildLLM(ctx, cfg.LLM)
	if err != nil {
		return nil, err
	}

	ponds := pond.NewStore()
	drafter := notify.NewDrafter(gen)

	var sender sms.Sender
	if cfg.SMS.APIKey != "" {
		httsms, err := sms.NewHttSmsSender(cfg.SMS.APIKey, cfg.SMS.URL)
		if err != nil {
			return nil, fmt.Errorf("failed to build sms sender: %w", err)
		}
		sender = httsms
	} else {
		sender = sms.NoGatewaySender{}
	}
	broadcaster, err := sms.NewBroadcaster(sender, cfg.SMS.Recipients, cfg.SMS.CountryCode)
	if err != nil {
		return nil, fmt.Errorf("failed to build broadcaster: %w", err)
	}

	weatherSvc, err := weather.NewService(weather.NewOpenMeteo(""), weather.NewNominatim(""))
	if err != nil {
		return nil, fmt.Errorf("failed to build weather service: %w", err)
	}

	var artifacts artifact.Store
	if cfg.Artifact.Enabled {
		artifacts, err = artifact.NewS3Store(artifact.S3Config{
			Endpoint:  cfg.Artifact.Endpoint,
			Region:    cfg.Artifact.Region,
			AccessKey: cfg.Artifact.AccessKey,
			SecretKey: cfg.Artifact.SecretKey,
			Bucket:    cfg.Artifact.Bucket,
			UseSSL:    cfg.Artifact.UseSSL,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to build artifact store: %w", err)
		}
	} else {
		artifacts = artifact.NewMemoryStore()
	}

	detector, err := disease.NewDetector(vision, artifacts)
	if err != nil {
		return nil, fmt.Errorf("failed to build detector: %w", err)
	}

	var tts speech.Synthesizer
	if cfg.TTS.Enabled {
		eleven, err := speech.NewElevenLabs(speech.ElevenLabsConfig{
			APIKey:  cfg.TTS.APIKey,
			VoiceID: cfg.TTS.VoiceID,
			ModelID: cfg.TTS.ModelID,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to build tts: %w", err)
		}
		tts = eleven
	}

	session, err := assistant.NewSession(assistant.Config{
		Generator: gen,
		TTS:       tts,
		Ponds:     ponds,
		Artifacts: artifacts,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build assistant: %w", err)
	}

	// Routing & Server
	mux := server.NewMux(
		handler.NewPondHandler(ponds),
		handler.NewNotifyHandler(drafter, broadcaster, ponds),
		handler.NewDiseaseHandler(detector),
		handler.NewWeatherHandler(weatherSvc),
		handler.NewMarketHandler(),
		handler.NewAssistantHandler(session),
	)
	srv := server.New(cfg.Port, mux)

	return &App{
		server: srv,
	}, nil
}

// buildLLM selects the text backend and always pairs it with a Gemini
// vision client: groq has no vision path, and fake stays fully offline.
func buildLLM(ctx context.Context, cfg config.LLMConfig) (llm.TextGenerator, llm.VisionAnalyzer, error) {
	switch cfg.Provider {
	case "fake":
		f := &llm.Fake{
			Reply: "FinGuard AI is running in offline mode.",
			JSON:  json.RawMessage(`{"diseaseId":"none","confidence":0,"treatmentPlan":"n/a","recommendations":[]}`),
		}
		return f, f, nil
	case "groq":
		groq, err := llm.NewGroqClient(cfg.GroqKey, cfg.GroqModel)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to build groq client: %w", err)
		}
		vision, err := llm.NewGeminiClient(ctx, cfg.GeminiKey, cfg.VisionModel)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to build vision client: %w", err)
		}
		return groq, vision, nil
	default:
		gem, err := llm.NewGeminiClient(ctx, cfg.GeminiKey, cfg.TextModel)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to build gemini client: %w", err)
		}
		if cfg.VisionModel == cfg.TextModel {
			return gem, gem, nil
		}
		vision, err := llm.NewGeminiClient(ctx, cfg.GeminiKey, cfg.VisionModel)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to build vision client: %w", err)
		}
		return gem, vision, nil
	}
}

func (a *App) Start() error {
	return a.server.Start()
}

func (a *App) Shutdown(ctx context.Context) error {
	return a.server.Shutdown(ctx)
}
