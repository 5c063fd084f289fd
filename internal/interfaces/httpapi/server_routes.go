package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerPredictionRoutes(mux *http.ServeMux, handler *Handler) {
	mux.Handle("GET /v1/groups", ResolveUser(http.HandlerFunc(handler.ListGroups)))
	mux.Handle("GET /v1/groups/{groupID}/board", ResolveUser(http.HandlerFunc(handler.GetGroupBoard)))
	mux.Handle("POST /v1/groups/{groupID}/order/edit", ResolveUser(http.HandlerFunc(handler.BeginGroupOrderEdit)))
	mux.Handle("DELETE /v1/groups/{groupID}/order/edit", ResolveUser(http.HandlerFunc(handler.CancelGroupOrderEdit)))
	mux.Handle("POST /v1/groups/{groupID}/order/move", ResolveUser(http.HandlerFunc(handler.MoveGroupOrderTeam)))
	mux.Handle("PUT /v1/groups/{groupID}/order", ResolveUser(http.HandlerFunc(handler.ProposeGroupOrder)))
	mux.Handle("POST /v1/groups/{groupID}/order/commit", ResolveUser(http.HandlerFunc(handler.CommitGroupOrder)))

	mux.Handle("GET /v1/third-place/reconciliation", ResolveUser(http.HandlerFunc(handler.GetThirdPlaceReconciliation)))
	mux.Handle("POST /v1/third-place/toggle", ResolveUser(http.HandlerFunc(handler.ToggleThirdPlaceTeam)))
	mux.Handle("DELETE /v1/third-place/edit", ResolveUser(http.HandlerFunc(handler.CancelThirdPlaceEdit)))
	mux.Handle("POST /v1/third-place/commit", ResolveUser(http.HandlerFunc(handler.CommitThirdPlace)))

	mux.Handle("GET /v1/matches", ResolveUser(http.HandlerFunc(handler.ListMatches)))
	mux.Handle("PUT /v1/matches/{matchID}/score", ResolveUser(http.HandlerFunc(handler.SetDraftScore)))
	mux.Handle("DELETE /v1/matches/{matchID}/score", ResolveUser(http.HandlerFunc(handler.CancelDraftScore)))
	mux.Handle("POST /v1/matches/{matchID}/commit", ResolveUser(http.HandlerFunc(handler.CommitMatchScore)))
	mux.Handle("POST /v1/matches/commit", ResolveUser(http.HandlerFunc(handler.CommitAllMatchScores)))

	mux.Handle("GET /v1/overview", ResolveUser(http.HandlerFunc(handler.GetOverview)))
}

func registerInternalJobRoutes(mux *http.ServeMux, handler *Handler, internalJobToken string) {
	mux.Handle("POST /v1/internal/jobs/sync-points", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RunPointsSyncJob)))
}
