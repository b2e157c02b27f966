package handler

import (
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/mqlstam/vinylplatz2025/internal/domain"
	"github.com/mqlstam/vinylplatz2025/internal/service"
)

// VinylHandler handles vinyl listing HTTP requests.
type VinylHandler struct {
	vinyls *service.VinylService
}

// NewVinylHandler creates a new VinylHandler.
func NewVinylHandler(vinyls *service.VinylService) *VinylHandler {
	return &VinylHandler{vinyls: vinyls}
}

// HandleList returns one page of listings matching the query filters.
// GET /api/vinyls?title=&artist=&genreId=&sellerId=&condition=&minPrice=&maxPrice=
//
//	&releaseYear=&minReleaseYear=&maxReleaseYear=&page=&limit=&sortBy=&sortOrder=
func (h *VinylHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	filter, err := parseVinylFilter(r.URL.Query())
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	page, err := h.vinyls.List(r.Context(), filter)
	if err != nil {
		writeDomainError(w, err, "list vinyls")
		return
	}
	writeJSON(w, http.StatusOK, toVinylPageDTO(page))
}

// HandleGet returns a single listing with seller and genre populated.
// GET /api/vinyls/{id}
func (h *VinylHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	vinyl, err := h.vinyls.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, err, "get vinyl")
		return
	}
	writeJSON(w, http.StatusOK, toVinylDTO(vinyl))
}

// HandleListMine returns the authenticated user's own listings.
// GET /api/vinyls/seller/me
func (h *VinylHandler) HandleListMine(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Unauthorized.")
		return
	}

	vinyls, err := h.vinyls.ListBySeller(r.Context(), user.ID)
	if err != nil {
		writeDomainError(w, err, "list own vinyls")
		return
	}
	writeJSON(w, http.StatusOK, toVinylDTOs(vinyls))
}

type vinylRequest struct {
	Title         string  `json:"title"`
	Artist        string  `json:"artist"`
	ReleaseYear   *int    `json:"releaseYear"`
	Condition     string  `json:"condition"`
	Price         string  `json:"price"`
	Description   string  `json:"description"`
	CoverImageURL string  `json:"coverImageUrl"`
	GenreID       *string `json:"genreId"`
}

// HandleCreate creates a listing owned by the authenticated user.
// POST /api/vinyls
func (h *VinylHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Unauthorized.")
		return
	}

	var req vinylRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	price, err := decimal.NewFromString(req.Price)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid price.")
		return
	}

	vinyl := &domain.Vinyl{
		Title:         req.Title,
		Artist:        req.Artist,
		ReleaseYear:   req.ReleaseYear,
		Condition:     domain.Condition(req.Condition),
		Price:         price,
		Description:   req.Description,
		CoverImageURL: req.CoverImageURL,
		SellerID:      user.ID,
		GenreID:       req.GenreID,
	}
	if err := h.vinyls.Create(r.Context(), vinyl); err != nil {
		writeDomainError(w, err, "create vinyl")
		return
	}

	created, err := h.vinyls.Get(r.Context(), vinyl.ID)
	if err != nil {
		writeDomainError(w, err, "get created vinyl")
		return
	}
	writeJSON(w, http.StatusCreated, toVinylDTO(created))
}

// HandleUpdate applies a partial update to a listing the authenticated user
// owns.
// PATCH /api/vinyls/{id}
func (h *VinylHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Unauthorized.")
		return
	}

	var req struct {
		Title         *string `json:"title"`
		Artist        *string `json:"artist"`
		ReleaseYear   *int    `json:"releaseYear"`
		Condition     *string `json:"condition"`
		Price         *string `json:"price"`
		Description   *string `json:"description"`
		CoverImageURL *string `json:"coverImageUrl"`
		GenreID       *string `json:"genreId"`
	}
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	patch := domain.VinylPatch{
		Title:         req.Title,
		Artist:        req.Artist,
		ReleaseYear:   req.ReleaseYear,
		Description:   req.Description,
		CoverImageURL: req.CoverImageURL,
		GenreID:       req.GenreID,
	}
	if req.Condition != nil {
		cond := domain.Condition(*req.Condition)
		patch.Condition = &cond
	}
	if req.Price != nil {
		price, err := decimal.NewFromString(*req.Price)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid price.")
			return
		}
		patch.Price = &price
	}

	vinyl, err := h.vinyls.Update(r.Context(), chi.URLParam(r, "id"), user.ID, patch)
	if err != nil {
		writeDomainError(w, err, "update vinyl")
		return
	}
	writeJSON(w, http.StatusOK, toVinylDTO(vinyl))
}

// HandleDelete removes a listing the authenticated user owns.
// DELETE /api/vinyls/{id}
func (h *VinylHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Unauthorized.")
		return
	}

	if err := h.vinyls.Delete(r.Context(), chi.URLParam(r, "id"), user.ID); err != nil {
		writeDomainError(w, err, "delete vinyl")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func parseVinylFilter(q url.Values) (domain.VinylFilter, error) {
	filter := domain.VinylFilter{
		Title:     q.Get("title"),
		Artist:    q.Get("artist"),
		GenreID:   q.Get("genreId"),
		SellerID:  q.Get("sellerId"),
		Condition: domain.Condition(q.Get("condition")),
		SortBy:    q.Get("sortBy"),
		SortOrder: q.Get("sortOrder"),
	}

	var err error
	if filter.MinPrice, err = parseDecimalParam(q, "minPrice"); err != nil {
		return filter, err
	}
	if filter.MaxPrice, err = parseDecimalParam(q, "maxPrice"); err != nil {
		return filter, err
	}
	if filter.ReleaseYear, err = parseIntParam(q, "releaseYear"); err != nil {
		return filter, err
	}
	if filter.MinReleaseYear, err = parseIntParam(q, "minReleaseYear"); err != nil {
		return filter, err
	}
	if filter.MaxReleaseYear, err = parseIntParam(q, "maxReleaseYear"); err != nil {
		return filter, err
	}

	if page, err := parseIntParam(q, "page"); err != nil {
		return filter, err
	} else if page != nil {
		filter.Page = *page
	}
	if limit, err := parseIntParam(q, "limit"); err != nil {
		return filter, err
	} else if limit != nil {
		filter.Limit = *limit
	}

	return filter, nil
}

func parseIntParam(q url.Values, name string) (*int, error) {
	raw := q.Get(name)
	if raw == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return nil, &paramError{name}
	}
	return &n, nil
}

func parseDecimalParam(q url.Values, name string) (*decimal.Decimal, error) {
	raw := q.Get(name)
	if raw == "" {
		return nil, nil
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return nil, &paramError{name}
	}
	return &d, nil
}

type paramError struct {
	name string
}

func (e *paramError) Error() string {
	return "Invalid value for query parameter " + strconv.Quote(e.name) + "."
}
