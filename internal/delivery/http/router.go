package http

import (
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	_ "confsite/docs"
	"confsite/internal/delivery/http/controllers"
)

// Authenticator wraps a handler so it only runs for requests carrying a valid bearer token.
type Authenticator func(http.HandlerFunc) http.HandlerFunc

// NewRouter initializes the HTTP router with all application routes
func NewRouter(proposals *controllers.ProposalController, speakers *controllers.SpeakerController, auth Authenticator, metricsHandler http.Handler) *http.ServeMux {
	mux := http.NewServeMux()

	// Forms
	mux.HandleFunc("GET /forms/{variant}", proposals.GetForm)

	// Proposals
	mux.HandleFunc("GET /proposals/me", auth(proposals.ListMyProposals))
	mux.HandleFunc("POST /proposals/{variant}", auth(proposals.SubmitProposal))
	mux.HandleFunc("GET /proposals/{proposalID}", auth(proposals.GetProposal))
	mux.HandleFunc("PUT /proposals/{proposalID}", auth(proposals.UpdateProposal))

	// Speakers
	mux.HandleFunc("GET /proposals/{proposalID}/speakers", auth(speakers.ViewSpeakers))
	mux.HandleFunc("POST /proposals/{proposalID}/speakers", auth(speakers.InviteSpeaker))
	mux.HandleFunc("GET /speakers/me", auth(speakers.GetMyProfile))
	mux.HandleFunc("POST /speakers/me", auth(speakers.CreateProfile))

	// Ops
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	if metricsHandler != nil {
		mux.Handle("GET /metrics", metricsHandler)
	}

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}
