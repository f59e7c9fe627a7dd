package v1

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/unifly-app/unifly/application/service"
	"github.com/unifly-app/unifly/domain/account"
	"github.com/unifly-app/unifly/infrastructure/api/middleware"
	"github.com/unifly-app/unifly/infrastructure/api/v1/dto"
)

// AccountsRouter serves user account endpoints.
type AccountsRouter struct {
	accounts *service.Accounts
	logger   *slog.Logger
}

// NewAccountsRouter creates an AccountsRouter.
func NewAccountsRouter(accounts *service.Accounts, logger *slog.Logger) *AccountsRouter {
	if logger == nil {
		logger = slog.Default()
	}
	return &AccountsRouter{accounts: accounts, logger: logger}
}

// Routes returns the chi router for account endpoints.
func (a *AccountsRouter) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", a.List)
	router.Post("/", a.Save)
	router.Get("/{user_id}", a.Get)
	router.Delete("/{user_id}", a.Delete)

	return router
}

func parseUserID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "user_id"), 10, 64)
	if err != nil {
		return 0, middleware.NewAPIError(http.StatusBadRequest, "user_id must be an integer", err)
	}
	return id, nil
}

// List handles GET /api/v1/accounts with optional role, status, limit and
// offset query parameters.
func (a *AccountsRouter) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	query := r.URL.Query()

	limit, _ := strconv.Atoi(query.Get("limit"))
	offset, _ := strconv.Atoi(query.Get("offset"))

	users, err := a.accounts.List(ctx, query.Get("role"), query.Get("status"), limit, offset)
	if err != nil {
		middleware.WriteError(w, r, err, a.logger)
		return
	}

	middleware.WriteJSON(w, http.StatusOK, accountListResponse(users))
}

// Save handles POST /api/v1/accounts, upserting the account keyed on
// user_id.
func (a *AccountsRouter) Save(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var body dto.AccountRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		middleware.WriteError(w, r, middleware.NewAPIError(http.StatusBadRequest, "malformed account body", err), a.logger)
		return
	}

	user := account.NewUser(body.UserID, body.Email, body.Name, account.Role(body.Role), account.Status(body.Status))
	saved, err := a.accounts.Save(ctx, user)
	if err != nil {
		middleware.WriteError(w, r, err, a.logger)
		return
	}

	middleware.WriteJSON(w, http.StatusCreated, accountResponse(saved))
}

// Get handles GET /api/v1/accounts/{user_id}.
func (a *AccountsRouter) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, err := parseUserID(r)
	if err != nil {
		middleware.WriteError(w, r, err, a.logger)
		return
	}

	user, err := a.accounts.Get(ctx, userID)
	if err != nil {
		middleware.WriteError(w, r, err, a.logger)
		return
	}

	middleware.WriteJSON(w, http.StatusOK, accountResponse(user))
}

// Delete handles DELETE /api/v1/accounts/{user_id}.
func (a *AccountsRouter) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, err := parseUserID(r)
	if err != nil {
		middleware.WriteError(w, r, err, a.logger)
		return
	}

	if err := a.accounts.Delete(ctx, userID); err != nil {
		middleware.WriteError(w, r, err, a.logger)
		return
	}

	middleware.WriteJSON(w, http.StatusOK, map[string]bool{"success": true})
}
