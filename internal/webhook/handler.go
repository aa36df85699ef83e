package webhook

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/vk4tech/passbot/internal/config"
)

// Handler exposes the webhook over HTTP: the platform's GET verification
// handshake and the POST message deliveries.
type Handler struct {
	cfg        *config.Config
	dispatcher *Dispatcher
}

// NewHandler creates a Handler.
func NewHandler(cfg *config.Config, dispatcher *Dispatcher) *Handler {
	return &Handler{cfg: cfg, dispatcher: dispatcher}
}

// RegisterRoutes mounts the webhook endpoint on the given router.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/api/whatsapp/webhook", h.handleVerify)
	r.Post("/api/whatsapp/webhook", h.handleReceive)
}

// handleVerify answers the platform's subscription handshake. With no
// verify token configured any subscribe attempt is echoed, which keeps
// local setups working before credentials exist.
func (h *Handler) handleVerify(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	mode := query.Get("hub.mode")
	token := query.Get("hub.verify_token")
	challenge := query.Get("hub.challenge")

	if mode == "subscribe" && challenge != "" {
		if h.cfg.Gateway.VerifyToken != "" && token != h.cfg.Gateway.VerifyToken {
			writeError(w, http.StatusForbidden, "Verification failed")
			return
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(challenge))
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Webhook is running"})
}

// handleReceive decodes and dispatches one webhook delivery. Missing
// gateway credentials are the only fatal condition: they fail the whole
// batch before any message is looked at, because no reply could be sent
// anyway.
func (h *Handler) handleReceive(w http.ResponseWriter, r *http.Request) {
	if !h.cfg.GatewayConfigured() {
		writeError(w, http.StatusInternalServerError, "gateway base URL, API key, or phone number ID is not configured")
		return
	}

	var payload Payload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}

	summary := h.dispatcher.ProcessPayload(r.Context(), &payload)
	writeJSON(w, http.StatusOK, summary)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"message": message})
}
