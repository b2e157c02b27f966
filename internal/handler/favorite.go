package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mqlstam/vinylplatz2025/internal/service"
)

// FavoriteHandler handles favorites HTTP requests. All routes require
// authentication; the user always operates on their own favorites.
type FavoriteHandler struct {
	favorites *service.FavoriteService
}

// NewFavoriteHandler creates a new FavoriteHandler.
func NewFavoriteHandler(favorites *service.FavoriteService) *FavoriteHandler {
	return &FavoriteHandler{favorites: favorites}
}

// HandleList returns the user's favorited vinyls, newest favorite first.
// GET /api/favorites
func (h *FavoriteHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Unauthorized.")
		return
	}

	vinyls, err := h.favorites.List(r.Context(), user.ID)
	if err != nil {
		writeDomainError(w, err, "list favorites")
		return
	}
	writeJSON(w, http.StatusOK, toVinylDTOs(vinyls))
}

// HandleStatus reports whether the user has favorited the vinyl.
// GET /api/favorites/{vinylId}/status
func (h *FavoriteHandler) HandleStatus(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Unauthorized.")
		return
	}

	favorited, err := h.favorites.IsFavorited(r.Context(), user.ID, chi.URLParam(r, "vinylId"))
	if err != nil {
		writeDomainError(w, err, "check favorite status")
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"isFavorite": favorited})
}

// HandleAdd favorites a vinyl. Favoriting an already-favorited vinyl is a
// no-op that still succeeds.
// POST /api/favorites/{vinylId}
func (h *FavoriteHandler) HandleAdd(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Unauthorized.")
		return
	}

	if _, err := h.favorites.Add(r.Context(), user.ID, chi.URLParam(r, "vinylId")); err != nil {
		writeDomainError(w, err, "add favorite")
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"isFavorite": true})
}

// HandleRemove unfavorites a vinyl. Removing an absent favorite still
// succeeds.
// DELETE /api/favorites/{vinylId}
func (h *FavoriteHandler) HandleRemove(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Unauthorized.")
		return
	}

	if _, err := h.favorites.Remove(r.Context(), user.ID, chi.URLParam(r, "vinylId")); err != nil {
		writeDomainError(w, err, "remove favorite")
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"isFavorite": false})
}
