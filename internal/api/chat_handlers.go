package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/example/marketplace/internal/chat"
)

// ChatHandlers serves the AI chat widget endpoint.
type ChatHandlers struct {
	gateway *chat.Gateway
}

func NewChatHandlers(gateway *chat.Gateway) *ChatHandlers {
	return &ChatHandlers{gateway: gateway}
}

// ChatRequest is the chat widget's request body.
type ChatRequest struct {
	Message             string         `json:"message"`
	ConversationHistory []chat.Message `json:"conversationHistory"`
}

// ChatResponse is the chat widget's success payload.
type ChatResponse struct {
	Response  string    `json:"response"`
	Timestamp time.Time `json:"timestamp"`
}

func (h *ChatHandlers) Chat(w http.ResponseWriter, r *http.Request) {
	var req ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondChatError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	reply, err := h.gateway.Chat(r.Context(), req.Message, req.ConversationHistory)
	if err != nil {
		if errors.Is(err, chat.ErrEmptyMessage) {
			respondChatError(w, http.StatusBadRequest, "Message is required and must be a non-empty string")
			return
		}
		respondChatError(w, http.StatusInternalServerError, "Failed to get response from AI")
		return
	}

	respondJSON(w, http.StatusOK, ChatResponse{
		Response:  reply,
		Timestamp: time.Now(),
	})
}

// respondChatError writes the chat endpoint's {"error": ...} shape.
func respondChatError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}
