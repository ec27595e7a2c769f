package handler

import (
	"net/http"

	"github.com/freeeve/diplomacy-plus/internal/auth"
	"github.com/freeeve/diplomacy-plus/internal/middleware"
	"github.com/freeeve/diplomacy-plus/internal/service"
)

// NewRouter wires every route for one session and wraps them in the global
// middleware chain.
func NewRouter(svc *service.SessionService, jwtMgr *auth.JWTManager, hub *Hub) http.Handler {
	authHandler := NewAuthHandler(jwtMgr, svc)
	sessionHandler := NewSessionHandler(svc)
	wsHandler := NewWSHandler(hub, jwtMgr, svc.ID())

	mux := http.NewServeMux()
	authMw := auth.Middleware(jwtMgr)

	// Health
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	// Auth (public)
	mux.HandleFunc("POST /auth/join", authHandler.Join)
	mux.HandleFunc("POST /auth/refresh", authHandler.RefreshToken)

	// Protected API routes
	api := http.NewServeMux()
	api.HandleFunc("POST /moves", sessionHandler.SubmitMove)
	api.HandleFunc("GET /moves/recent", sessionHandler.RecentMoves)
	api.HandleFunc("GET /board", sessionHandler.GetBoard)
	api.HandleFunc("GET /resources", sessionHandler.GetResources)
	api.HandleFunc("GET /units", sessionHandler.GetUnits)
	api.HandleFunc("GET /session", sessionHandler.GetSession)

	mux.Handle("/api/v1/", http.StripPrefix("/api/v1", authMw(api)))

	// WebSocket (auth via query param, not middleware)
	mux.HandleFunc("GET /api/v1/ws", wsHandler.ServeWS)

	return middleware.Chain(mux, middleware.Recover, middleware.Logger, middleware.CORS("*"), middleware.JSON)
}
