package http

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/go-chi/chi/v5"

	"github.com/Sadok2512/NoteAI-1/internal/middleware"
)

// NewRouter constructs and returns the HTTP handler serving the voice
// note API. It applies request logging globally and bearer-token
// authentication to everything except the auth endpoints.
//
// Routes:
//
//	POST /auth/register                       → AuthHandler.Register
//	POST /auth/login                          → AuthHandler.Login
//	POST /auth/google                         → AuthHandler.Google
//	POST /upload-audio                        → NoteHandler.Upload
//	POST /transcribe/{ownerID}/{storedAs}     → NoteHandler.Transcribe
//	POST /summary/{ownerID}/{storedAs}        → NoteHandler.Summarize
//	GET  /history/{ownerID}                   → NoteHandler.History
//	GET  /note-details/{ownerID}/{storedAs}   → NoteHandler.Details
//	GET  /audio/{ownerID}/{storedAs}          → NoteHandler.Audio
//	GET  /download/{ownerID}/{storedAs}       → NoteHandler.Download
//	POST /ask-note                            → NoteHandler.Ask
//
// {ownerID} path segments are kept for contract compatibility; every
// handler resolves the owner from the verified token and rejects a
// mismatching segment with 403.
func NewRouter(
	authHandler *AuthHandler,
	noteHandler *NoteHandler,
	jwtSecret []byte,
	logger *zap.Logger,
) http.Handler {
	r := chi.NewRouter()

	// Log each request and its metadata
	r.Use(middleware.WithRequestLogging(logger))

	// Public endpoints
	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", authHandler.Register)
		r.Post("/login", authHandler.Login)
		r.Post("/google", authHandler.Google)
	})

	// Protected group: requires a valid bearer token
	r.Group(func(r chi.Router) {
		r.Use(middleware.JWTAuth(jwtSecret))

		r.Post("/upload-audio", noteHandler.Upload)
		r.Post("/transcribe/{ownerID}/{storedAs}", noteHandler.Transcribe)
		r.Post("/summary/{ownerID}/{storedAs}", noteHandler.Summarize)
		r.Get("/history/{ownerID}", noteHandler.History)
		r.Get("/note-details/{ownerID}/{storedAs}", noteHandler.Details)
		r.Get("/audio/{ownerID}/{storedAs}", noteHandler.Audio)
		r.Get("/download/{ownerID}/{storedAs}", noteHandler.Download)
		r.Post("/ask-note", noteHandler.Ask)
	})

	return r
}
