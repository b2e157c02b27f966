package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mqlstam/vinylplatz2025/internal/service"
)

// GenreHandler handles genre HTTP requests. Reads are public; mutations are
// admin-only and gated by middleware.
type GenreHandler struct {
	genres *service.GenreService
}

// NewGenreHandler creates a new GenreHandler.
func NewGenreHandler(genres *service.GenreService) *GenreHandler {
	return &GenreHandler{genres: genres}
}

// HandleList returns all genres, optionally filtered by a case-insensitive
// substring search on the name.
// GET /api/genres?search=
func (h *GenreHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	genres, err := h.genres.List(r.Context(), r.URL.Query().Get("search"))
	if err != nil {
		writeDomainError(w, err, "list genres")
		return
	}
	writeJSON(w, http.StatusOK, toGenreDTOs(genres))
}

// HandleGet returns a single genre.
// GET /api/genres/{id}
func (h *GenreHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	genre, err := h.genres.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, err, "get genre")
		return
	}
	writeJSON(w, http.StatusOK, toGenreDTO(genre))
}

// HandleCreate adds a new genre.
// POST /api/genres
// Request: {"name":"...","description":"..."}
func (h *GenreHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	}
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	genre, err := h.genres.Create(r.Context(), req.Name, req.Description)
	if err != nil {
		writeDomainError(w, err, "create genre")
		return
	}
	writeJSON(w, http.StatusCreated, toGenreDTO(genre))
}

// HandleUpdate renames and/or re-describes a genre.
// PATCH /api/genres/{id}
func (h *GenreHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name        *string `json:"name"`
		Description *string `json:"description"`
	}
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	genre, err := h.genres.Update(r.Context(), chi.URLParam(r, "id"), req.Name, req.Description)
	if err != nil {
		writeDomainError(w, err, "update genre")
		return
	}
	writeJSON(w, http.StatusOK, toGenreDTO(genre))
}

// HandleDelete removes a genre. Listings referencing it keep existing with
// their genre cleared.
// DELETE /api/genres/{id}
func (h *GenreHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.genres.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeDomainError(w, err, "delete genre")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
