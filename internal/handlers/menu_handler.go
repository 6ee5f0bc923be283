package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/Lixing-Zhang/menu-board/internal/menu"
	"github.com/Lixing-Zhang/menu-board/internal/repository"
	"github.com/Lixing-Zhang/menu-board/internal/service"
	"github.com/go-chi/chi/v5"
)

// MenuHandler handles menu-related HTTP requests
type MenuHandler struct {
	service *service.MenuService
	logger  *slog.Logger
}

// NewMenuHandler creates a new menu handler
func NewMenuHandler(service *service.MenuService, logger *slog.Logger) *MenuHandler {
	return &MenuHandler{
		service: service,
		logger:  logger,
	}
}

// Routes returns the menu API router, to be mounted at /api/menu.
// reloadGuard wraps the reload endpoint.
func (h *MenuHandler) Routes(reloadGuard func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ListMenu)
	r.Get("/categories", h.ListCategories)
	r.Get("/item", h.GetItem)
	r.Get("/item/{itemId}", h.GetItem)

	r.With(reloadGuard).Post("/reload", h.ReloadMenu)
	return r
}

// unavailableResponse is returned while no menu has ever loaded. The
// category list still carries "All" so clients keep their filter controls.
type unavailableResponse struct {
	Error      string   `json:"error"`
	Categories []string `json:"categories"`
}

// ListMenu handles GET /api/menu?category=&q=
// Search composes with the category: both must match.
func (h *MenuHandler) ListMenu(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	filter := menu.FilterState{
		Category: r.URL.Query().Get("category"),
		Query:    r.URL.Query().Get("q"),
	}

	result, err := h.service.Browse(ctx, filter)
	if err != nil {
		if errors.Is(err, repository.ErrMenuNotLoaded) {
			h.logger.Warn("menu requested before a successful load")
			WriteJSON(w, http.StatusServiceUnavailable, unavailableResponse{
				Error:      "Menu is unavailable",
				Categories: h.service.Categories(ctx),
			}, h.logger)
			return
		}

		h.logger.Error("failed to browse menu", "error", err)
		WriteError(w, http.StatusInternalServerError, "Internal server error", h.logger)
		return
	}

	WriteJSON(w, http.StatusOK, result, h.logger)
}

// ListCategories handles GET /api/menu/categories
func (h *MenuHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, h.service.Categories(r.Context()), h.logger)
}

// GetItem handles GET /api/menu/item?id= and GET /api/menu/item/{itemId}
// - 200: item found
// - 400: no item selected
// - 404: item not found
// - 503: menu not loaded
func (h *MenuHandler) GetItem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	itemID := chi.URLParam(r, "itemId")
	if itemID == "" {
		itemID = r.URL.Query().Get("id")
	}

	item, err := h.service.GetItem(ctx, itemID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNoItemSelected):
			h.logger.Warn("item lookup without an id")
			WriteError(w, http.StatusBadRequest, "No item selected", h.logger)
		case errors.Is(err, repository.ErrItemNotFound):
			h.logger.Info("menu item not found", "itemId", itemID)
			WriteError(w, http.StatusNotFound, "Item not found", h.logger)
		case errors.Is(err, repository.ErrMenuNotLoaded):
			h.logger.Warn("item requested before a successful load", "itemId", itemID)
			WriteError(w, http.StatusServiceUnavailable, "Menu is unavailable", h.logger)
		default:
			h.logger.Error("failed to get menu item", "itemId", itemID, "error", err)
			WriteError(w, http.StatusInternalServerError, "Internal server error", h.logger)
		}
		return
	}

	WriteJSON(w, http.StatusOK, item, h.logger)
}

// reloadFailure reports why a reload did not replace the menu
type reloadFailure struct {
	Error string `json:"error"`
	Kind  string `json:"kind,omitempty"`
}

// ReloadMenu handles POST /api/menu/reload
// The previous menu stays in place when the reload fails.
func (h *MenuHandler) ReloadMenu(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.Reload(r.Context())
	if err != nil {
		kind := menu.KindOf(err)
		if kind == "" {
			h.logger.Error("menu reload aborted", "error", err)
			WriteError(w, http.StatusInternalServerError, "Reload aborted", h.logger)
			return
		}

		WriteJSON(w, http.StatusBadGateway, reloadFailure{
			Error: err.Error(),
			Kind:  string(kind),
		}, h.logger)
		return
	}

	h.logger.Info("menu reloaded on request", "revision", result.Revision, "items", result.Items)
	WriteJSON(w, http.StatusOK, result, h.logger)
}
