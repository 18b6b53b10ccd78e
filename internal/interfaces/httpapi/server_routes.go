package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerSportRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/sports/{sport}/games", handler.ListGamesToday)
	mux.HandleFunc("GET /v1/sports/{sport}/pick", handler.GetPickToday)
	mux.HandleFunc("GET /v1/sports/{sport}/teams/{teamID}", handler.GetTeamDetail)
	mux.HandleFunc("GET /v1/sports/{sport}/players/{playerID}", handler.GetPlayerDetail)
	mux.HandleFunc("GET /v1/sports/{sport}/challenge", handler.GetChallengeToday)
	mux.HandleFunc("POST /v1/sports/{sport}/challenge/votes", handler.SubmitChallengeVote)
}

func registerProfileRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/profile/stats", handler.GetProfileStats)
	mux.HandleFunc("GET /v1/profile/settings", handler.GetProfileSettings)
	mux.HandleFunc("PUT /v1/profile/settings", handler.SaveProfileSettings)
}

func registerInternalRoutes(mux *http.ServeMux, handler *Handler, internalJobToken string) {
	mux.Handle("POST /v1/internal/warm", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RunWarm)))
}
