package v1

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/unifly-app/unifly/application/service"
	"github.com/unifly-app/unifly/domain/document"
	"github.com/unifly-app/unifly/infrastructure/api/middleware"
)

// EntityRouter serves the CRUD endpoints of one catalog entity. The same
// handler set is mounted once per entity under /api/v1/{entity}.
type EntityRouter struct {
	catalog *service.Catalog
	entity  string
	logger  *slog.Logger
}

// NewEntityRouter creates an EntityRouter for the named entity.
func NewEntityRouter(catalog *service.Catalog, entity string, logger *slog.Logger) *EntityRouter {
	if logger == nil {
		logger = slog.Default()
	}
	return &EntityRouter{catalog: catalog, entity: entity, logger: logger}
}

// Routes returns the chi router for the entity's endpoints.
func (e *EntityRouter) Routes() chi.Router {
	router := chi.NewRouter()

	router.Post("/filter", e.Filter)
	router.Post("/count", e.Count)
	router.Post("/", e.Create)
	router.Put("/", e.Update)
	router.Delete("/", e.Delete)
	router.Get("/{id}", e.Get)

	return router
}

func decodeFilter(r *http.Request) (document.Filter, error) {
	filter := document.Filter{}
	if r.Body == nil || r.ContentLength == 0 {
		return filter, nil
	}
	if err := json.NewDecoder(r.Body).Decode(&filter); err != nil {
		return nil, middleware.NewAPIError(http.StatusBadRequest, "malformed filter body", err)
	}
	return filter, nil
}

// Filter handles POST /api/v1/{entity}/filter. The body is a filter map;
// skip and limit come from query parameters. Responds with the matching
// records as a JSON array.
func (e *EntityRouter) Filter(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	filter, err := decodeFilter(r)
	if err != nil {
		middleware.WriteError(w, r, err, e.logger)
		return
	}

	records, err := e.catalog.Filter(ctx, e.entity, filter, ParsePage(r))
	if err != nil {
		middleware.WriteError(w, r, err, e.logger)
		return
	}

	middleware.WriteJSON(w, http.StatusOK, records)
}

// Get handles GET /api/v1/{entity}/{id}. Responds with the record, or null
// when no record carries the id.
func (e *EntityRouter) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		middleware.WriteError(w, r, middleware.NewAPIError(http.StatusBadRequest, "id must be an integer", err), e.logger)
		return
	}

	record, err := e.catalog.Get(ctx, e.entity, id)
	if err != nil {
		middleware.WriteError(w, r, err, e.logger)
		return
	}

	middleware.WriteJSON(w, http.StatusOK, record)
}

// Create handles POST /api/v1/{entity}. The body is the record to insert.
func (e *EntityRouter) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var record document.Record
	if err := json.NewDecoder(r.Body).Decode(&record); err != nil {
		middleware.WriteError(w, r, middleware.NewAPIError(http.StatusBadRequest, "malformed record body", err), e.logger)
		return
	}

	result, err := e.catalog.Create(ctx, e.entity, record)
	if err != nil {
		middleware.WriteError(w, r, err, e.logger)
		return
	}

	middleware.WriteJSON(w, http.StatusOK, insertResponse(result))
}

// Update handles PUT /api/v1/{entity}. The body carries the filter map and
// the fields to set.
func (e *EntityRouter) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var body struct {
		Filters document.Filter `json:"filters"`
		Data    document.Record `json:"data"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		middleware.WriteError(w, r, middleware.NewAPIError(http.StatusBadRequest, "malformed update body", err), e.logger)
		return
	}
	if body.Filters == nil {
		body.Filters = document.Filter{}
	}

	result, err := e.catalog.Update(ctx, e.entity, body.Filters, body.Data)
	if err != nil {
		middleware.WriteError(w, r, err, e.logger)
		return
	}

	middleware.WriteJSON(w, http.StatusOK, updateResponse(result))
}

// Delete handles DELETE /api/v1/{entity}. The body is the filter map.
func (e *EntityRouter) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	filter, err := decodeFilter(r)
	if err != nil {
		middleware.WriteError(w, r, err, e.logger)
		return
	}

	result, err := e.catalog.Delete(ctx, e.entity, filter)
	if err != nil {
		middleware.WriteError(w, r, err, e.logger)
		return
	}

	middleware.WriteJSON(w, http.StatusOK, deleteResponse(result))
}

// Count handles POST /api/v1/{entity}/count. The body is the filter map.
func (e *EntityRouter) Count(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	filter, err := decodeFilter(r)
	if err != nil {
		middleware.WriteError(w, r, err, e.logger)
		return
	}

	count, err := e.catalog.Count(ctx, e.entity, filter)
	if err != nil {
		middleware.WriteError(w, r, err, e.logger)
		return
	}

	middleware.WriteJSON(w, http.StatusOK, countResponse(count))
}
