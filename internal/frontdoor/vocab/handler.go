// Package vocab is the client-facing HTTP surface: login, identity lookup,
// and the streaming sentence-generation relay.
package vocab

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/lixumin/vocabvid-gateway/internal/auth"
	"github.com/lixumin/vocabvid-gateway/internal/domain"
	"github.com/lixumin/vocabvid-gateway/internal/server"
)

type Handler struct {
	authenticator *auth.Authenticator
	generator     domain.Generator
}

func NewHandler(authenticator *auth.Authenticator, generator domain.Generator) *Handler {
	return &Handler{
		authenticator: authenticator,
		generator:     generator,
	}
}

// tokenResponse is the login payload.
type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// generateRequest is the body of /gen-sentence.
type generateRequest struct {
	Words []string `json:"words"`
}

// codedResponse reproduces the legacy 200-with-embedded-error-code contract
// for validation failures. Existing clients depend on it, so it is kept even
// though a 4xx would be more conventional.
type codedResponse struct {
	Code    int            `json:"code"`
	Message string         `json:"message"`
	Data    map[string]any `json:"data"`
}

// HandleToken exchanges form-encoded credentials for a bearer token.
func (h *Handler) HandleToken(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		server.WriteJSONError(w, http.StatusBadRequest, "invalid form body")
		return
	}

	username := r.PostFormValue("username")
	password := r.PostFormValue("password")

	token, err := h.authenticator.Login(r.Context(), username, password)
	if err != nil {
		server.AddError(r.Context(), err)
		if errors.Is(err, auth.ErrInvalidCredentials) {
			server.Unauthorized(w, "incorrect username or password")
			return
		}
		server.WriteJSONError(w, http.StatusInternalServerError, "login failed")
		return
	}

	server.AddLogField(r.Context(), "username", username)
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(tokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
	})
}

// HandleMe returns the authenticated user's record.
func (h *Handler) HandleMe(w http.ResponseWriter, r *http.Request) {
	user := server.GetUser(r.Context())
	if user == nil {
		server.Unauthorized(w, "invalid authentication credentials")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(user)
}

// HandleGenerate validates the word list, joins it into a prompt, and relays
// the upstream generation stream to the client fragment by fragment.
func (h *Handler) HandleGenerate(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		server.WriteJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	if len(req.Words) == 0 {
		// Legacy contract: HTTP 200 with an embedded error code, and the
		// generator is never invoked.
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(codedResponse{
			Code:    1,
			Message: "invalid parameters",
			Data:    map[string]any{},
		})
		return
	}

	// Word order is significant: it shapes the generated sentence.
	prompt := strings.Join(req.Words, " ")
	if user := server.GetUser(r.Context()); user != nil {
		server.AddLogField(r.Context(), "username", user.Username)
	}
	server.AddLogField(r.Context(), "words", prompt)

	events, err := h.generator.Stream(r.Context(), prompt, systemInstruction)
	if err != nil {
		server.AddError(r.Context(), err)
		server.WriteJSONError(w, http.StatusBadGateway, "generation failed")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	flusher, ok := w.(http.Flusher)
	if !ok {
		server.WriteJSONError(w, http.StatusInternalServerError, "streaming not supported")
		return
	}

	for event := range events {
		if event.Err != nil {
			// Mid-stream upstream failure: stop relaying and let the client
			// detect truncation via connection closure. No error frame is
			// appended, matching the original contract.
			server.AddError(r.Context(), event.Err)
			return
		}
		if _, err := w.Write([]byte(event.Text)); err != nil {
			// Client went away; context cancellation stops the upstream read.
			server.AddError(r.Context(), err)
			return
		}
		flusher.Flush()
	}
}
