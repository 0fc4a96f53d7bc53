package web

import (
	"io"
	"net/http"
	"path"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/kozaktomas/slide-sheets/internal/web/handlers"
	"github.com/kozaktomas/slide-sheets/internal/web/static"
)

func (s *Server) setupRoutes() {
	sheetsHandler := handlers.NewSheetsHandler(s.config, s.renders, s.decoder)

	// Health check
	s.router.Get("/api/v1/health", handlers.HealthCheck)

	s.router.Route("/api/v1", func(r chi.Router) {
		r.Get("/defaults", sheetsHandler.Defaults)
		r.Post("/plan", sheetsHandler.Plan)

		r.Post("/renders", sheetsHandler.Render)
		r.Get("/renders/{id}", sheetsHandler.Get)
		r.Get("/renders/{id}/pdf", sheetsHandler.PDF)
		r.Delete("/renders/{id}", sheetsHandler.Delete)
	})

	// Upload form
	s.router.Get("/*", s.serveStatic)
}

var contentTypes = map[string]string{
	".html": "text/html; charset=utf-8",
	".css":  "text/css; charset=utf-8",
	".js":   "application/javascript; charset=utf-8",
	".svg":  "image/svg+xml",
	".ico":  "image/x-icon",
}

// serveStatic serves the embedded upload form. Unknown paths get index.html.
func (s *Server) serveStatic(w http.ResponseWriter, r *http.Request) {
	fs := static.GetFileSystem()
	name := r.URL.Path
	if name == "/" {
		name = "/index.html"
	}

	f, err := fs.Open(name)
	if err != nil {
		if strings.HasPrefix(name, "/api/") {
			http.NotFound(w, r)
			return
		}
		name = "/index.html"
		if f, err = fs.Open(name); err != nil {
			http.NotFound(w, r)
			return
		}
	}
	defer f.Close()

	stat, err := f.Stat()
	if err != nil || stat.IsDir() {
		http.NotFound(w, r)
		return
	}

	contentType, ok := contentTypes[path.Ext(name)]
	if !ok {
		contentType = "application/octet-stream"
	}
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(http.StatusOK)
	io.Copy(w, f)
}
