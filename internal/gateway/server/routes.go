package server

import (
	"net/http"

	"finguard/internal/gateway/handler"
	"finguard/internal/gateway/middleware"
)

func NewMux(
	pondHandler *handler.PondHandler,
	notifyHandler *handler.NotifyHandler,
	diseaseHandler *handler.DiseaseHandler,
	weatherHandler *handler.WeatherHandler,
	marketHandler *handler.MarketHandler,
	assistantHandler *handler.AssistantHandler,
) http.Handler {
	mux := http.NewServeMux()

	// Pond
	mux.HandleFunc("/api/pond", pondHandler.HandleGet)
	mux.HandleFunc("/api/pond/metrics", pondHandler.HandleMetrics)
	mux.HandleFunc("/api/pond/health", pondHandler.HandleHealth)
	mux.HandleFunc("/api/pond/crisis", pondHandler.HandleCrisis)
	mux.HandleFunc("/api/pond/reset", pondHandler.HandleReset)

	// Notifications
	mux.HandleFunc("/api/notify/draft", notifyHandler.HandleDraft)
	mux.HandleFunc("/api/notify/broadcast", notifyHandler.HandleBroadcast)

	// Disease detection
	mux.HandleFunc("/api/disease/detect", diseaseHandler.HandleDetect)

	// Weather
	mux.HandleFunc("/api/weather", weatherHandler.HandleReport)

	// Marketplace
	mux.HandleFunc("/api/market/items", marketHandler.HandleItems)
	mux.HandleFunc("/api/market/cold-storage", marketHandler.HandleColdStorages)

	// Assistant
	mux.HandleFunc("/api/assistant/ask", assistantHandler.HandleAsk)
	mux.HandleFunc("/api/assistant/transcript", assistantHandler.HandleTranscript)
	mux.HandleFunc("/ws/assistant", assistantHandler.HandleWS)

	// Middleware
	return middleware.CORS(mux)
}
