package config

import (
	"flag"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Port     string
	Env      string
	LLM      LLMConfig
	TTS      TTSConfig
	SMS      SMSConfig
	Artifact ArtifactConfig
}

type LLMConfig struct {
	// Provider selects the text backend: gemini, groq, or fake.
	Provider    string
	GeminiKey   string
	GroqKey     string
	TextModel   string
	VisionModel string
	GroqModel   string
}

type TTSConfig struct {
	Enabled bool
	APIKey  string
	VoiceID string
	ModelID string
}

type SMSConfig struct {
	APIKey      string
	URL         string
	Recipients  []string
	CountryCode string
}

type ArtifactConfig struct {
	Enabled   bool
	Endpoint  string
	Region    string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	port := flag.String("port", ":8081", "server port")
	flag.Parse()

	if envPort := os.Getenv("PORT"); envPort != "" {
		if strings.HasPrefix(envPort, ":") {
			*port = envPort
		} else {
			*port = ":" + envPort
		}
	}

	env := strings.TrimSpace(os.Getenv("APP_ENV"))
	if env == "" {
		env = "local"
	}

	return &Config{
		Port:     *port,
		Env:      env,
		LLM:      loadLLMConfig(),
		TTS:      loadTTSConfig(),
		SMS:      loadSMSConfig(),
		Artifact: loadArtifactConfig(),
	}, nil
}

func loadLLMConfig() LLMConfig {
	provider := strings.ToLower(strings.TrimSpace(os.Getenv("LLM_PROVIDER")))
	if provider == "" {
		provider = "gemini"
	}
	return LLMConfig{
		Provider:    provider,
		GeminiKey:   firstNonEmpty(strings.TrimSpace(os.Getenv("GEMINI_API_KEY")), strings.TrimSpace(os.Getenv("API_KEY"))),
		GroqKey:     strings.TrimSpace(os.Getenv("GROQ_API_KEY")),
		TextModel:   firstNonEmpty(strings.TrimSpace(os.Getenv("LLM_TEXT_MODEL")), "gemini-3-flash-preview"),
		VisionModel: firstNonEmpty(strings.TrimSpace(os.Getenv("LLM_VISION_MODEL")), "gemini-3-flash-preview"),
		GroqModel:   firstNonEmpty(strings.TrimSpace(os.Getenv("GROQ_MODEL")), "llama-3.3-70b-versatile"),
	}
}

func loadTTSConfig() TTSConfig {
	key := strings.TrimSpace(os.Getenv("ELEVENLABS_API_KEY"))
	return TTSConfig{
		Enabled: key != "",
		APIKey:  key,
		VoiceID: firstNonEmpty(strings.TrimSpace(os.Getenv("ELEVENLABS_VOICE_ID")), "Z1mjfzamgmGKi9c390rc"),
		ModelID: firstNonEmpty(strings.TrimSpace(os.Getenv("ELEVENLABS_MODEL_ID")), "eleven_multilingual_v2"),
	}
}

func loadSMSConfig() SMSConfig {
	recipients := splitList(os.Getenv("SMS_RECIPIENTS"))
	if len(recipients) == 0 {
		// Predefined stakeholder list; not editable through the API.
		recipients = []string{"+919876543210", "+919988776655"}
	}
	return SMSConfig{
		APIKey:      strings.TrimSpace(os.Getenv("HTTSMS_API_KEY")),
		URL:         strings.TrimSpace(os.Getenv("HTTSMS_URL")),
		Recipients:  recipients,
		CountryCode: firstNonEmpty(strings.TrimSpace(os.Getenv("SMS_COUNTRY_CODE")), "91"),
	}
}

func loadArtifactConfig() ArtifactConfig {
	endpoint := strings.TrimSpace(os.Getenv("ARTIFACT_S3_ENDPOINT"))
	return ArtifactConfig{
		Enabled:   endpoint != "",
		Endpoint:  endpoint,
		Region:    firstNonEmpty(strings.TrimSpace(os.Getenv("ARTIFACT_S3_REGION")), "us-east-1"),
		AccessKey: firstNonEmpty(strings.TrimSpace(os.Getenv("ARTIFACT_S3_ACCESS_KEY")), strings.TrimSpace(os.Getenv("MINIO_ROOT_USER"))),
		SecretKey: firstNonEmpty(strings.TrimSpace(os.Getenv("ARTIFACT_S3_SECRET_KEY")), strings.TrimSpace(os.Getenv("MINIO_ROOT_PASSWORD"))),
		Bucket:    firstNonEmpty(strings.TrimSpace(os.Getenv("ARTIFACT_S3_BUCKET")), "finguard-artifacts"),
		UseSSL:    resolveArtifactUseSSL(),
	}
}

func resolveArtifactUseSSL() bool {
	raw := strings.TrimSpace(os.Getenv("ARTIFACT_S3_USE_SSL"))
	if raw == "" {
		return false
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false
	}
	return v
}

func splitList(raw string) []string {
	out := make([]string, 0, 4)
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
