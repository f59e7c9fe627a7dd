package v1

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/unifly-app/unifly/application/service"
	"github.com/unifly-app/unifly/infrastructure/api/middleware"
	"github.com/unifly-app/unifly/infrastructure/api/v1/dto"
)

// SearchRouter serves semantic search over searchable entities.
type SearchRouter struct {
	catalog *service.Catalog
	logger  *slog.Logger
}

// NewSearchRouter creates a SearchRouter.
func NewSearchRouter(catalog *service.Catalog, logger *slog.Logger) *SearchRouter {
	if logger == nil {
		logger = slog.Default()
	}
	return &SearchRouter{catalog: catalog, logger: logger}
}

// Routes returns the chi router for search endpoints.
func (s *SearchRouter) Routes() chi.Router {
	router := chi.NewRouter()
	router.Post("/{entity}", s.Search)
	return router
}

// Search handles POST /api/v1/search/{entity}.
func (s *SearchRouter) Search(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	entity := chi.URLParam(r, "entity")

	var body dto.SearchRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		middleware.WriteError(w, r, middleware.NewAPIError(http.StatusBadRequest, "malformed search body", err), s.logger)
		return
	}
	if body.Query == "" {
		middleware.WriteError(w, r, middleware.NewAPIError(http.StatusBadRequest, "query is required", nil), s.logger)
		return
	}

	hits, err := s.catalog.Search(ctx, entity, body.Query, body.Limit)
	if err != nil {
		middleware.WriteError(w, r, err, s.logger)
		return
	}

	middleware.WriteJSON(w, http.StatusOK, searchResponse(hits))
}
