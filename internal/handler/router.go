package handler

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/FlamingoLogic/chat-markdown-app/internal/auth"
	libSvc "github.com/FlamingoLogic/chat-markdown-app/internal/domain/services/library"
	"github.com/FlamingoLogic/chat-markdown-app/internal/middleware"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"
)

// RouterDeps are the services the HTTP API is built from
type RouterDeps struct {
	Tree        libSvc.TreeManager
	Uploads     libSvc.UploadService
	Passwords   *auth.PasswordAuthenticator
	Sessions    *auth.SessionManager
	Verifier    auth.TokenVerifier // sessions plus any remote verifier
	Backend     string
	CORSOrigins string
	Logger      *slog.Logger
}

// NewRouter builds the HTTP API.
// Order: CORS → request id → logging → recovery → auth → routes
func NewRouter(deps RouterDeps) http.Handler {
	logger := deps.Logger

	healthHandler := NewHealthHandler(deps.Tree, deps.Backend)
	authHandler := NewAuthHandler(deps.Passwords, deps.Sessions, logger)
	categoryHandler := NewCategoryHandler(deps.Tree, logger)
	browseHandler := NewBrowseHandler(deps.Tree, logger)
	folderHandler := NewFolderHandler(deps.Tree, logger)
	docHandler := NewDocumentHandler(deps.Tree, logger)
	uploadHandler := NewUploadHandler(deps.Uploads, logger)

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLogger(logger))
	r.Use(middleware.Recovery(logger))

	// Public
	r.Get("/health", healthHandler.Health)
	r.Post("/api/login", authHandler.Login)

	r.Group(func(r chi.Router) {
		r.Use(middleware.Authenticate(deps.Verifier, logger))

		r.Get("/api/session", authHandler.Session)

		r.Get("/api/categories", categoryHandler.ListCategories)
		r.Get("/api/categories/{id}/documents", categoryHandler.ListCategoryDocuments)

		r.Get("/api/browse", browseHandler.Browse)
		r.Get("/api/tree", browseHandler.GetTree)

		r.Get("/api/folders/{id}", folderHandler.GetFolder)
		r.Get("/api/folders/{id}/children", folderHandler.ListChildren)
		r.Get("/api/folders/{id}/breadcrumb", folderHandler.Breadcrumb)

		r.Get("/api/documents/search", docHandler.SearchDocuments) // Must come before {id} route
		r.Get("/api/documents/{id}", docHandler.GetDocument)

		r.Get("/api/uploads/types", uploadHandler.SupportedTypes)

		// Manager mode
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireManager)

			r.Post("/api/folders", folderHandler.CreateFolder)
			r.Patch("/api/folders/{id}", folderHandler.UpdateFolder)
			r.Delete("/api/folders/{id}", folderHandler.DeleteFolder)

			r.Post("/api/documents", docHandler.CreateDocument)
			r.Patch("/api/documents/{id}", docHandler.UpdateDocument)
			r.Post("/api/documents/{id}/move", docHandler.MoveDocument)
			r.Delete("/api/documents/{id}", docHandler.DeleteDocument)

			r.Post("/api/uploads", uploadHandler.Upload)
		})
	})

	// CORS - Must be outermost to handle OPTIONS pre-flight requests
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   splitOrigins(deps.CORSOrigins),
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Origin", "Content-Type", "Accept", "Authorization"},
		AllowCredentials: true,
	})
	return corsHandler.Handler(r)
}

func splitOrigins(s string) []string {
	var out []string
	for _, o := range strings.Split(s, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}
