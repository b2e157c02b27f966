package handler

import (
	"time"

	"github.com/mqlstam/vinylplatz2025/internal/domain"
)

// UserDTO is the JSON representation of a user. The password hash is never
// serialized.
type UserDTO struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	Email            string `json:"email"`
	ProfileImage     string `json:"profileImage,omitempty"`
	Address          string `json:"address,omitempty"`
	Role             string `json:"role"`
	RegistrationDate string `json:"registrationDate"`
}

func toUserDTO(u *domain.User) UserDTO {
	return UserDTO{
		ID:               u.ID,
		Name:             u.Name,
		Email:            u.Email,
		ProfileImage:     u.ProfileImage,
		Address:          u.Address,
		Role:             string(u.Role),
		RegistrationDate: u.RegistrationDate.Format(time.RFC3339),
	}
}

// GenreDTO is the JSON representation of a genre.
type GenreDTO struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

func toGenreDTO(g *domain.Genre) GenreDTO {
	return GenreDTO{ID: g.ID, Name: g.Name, Description: g.Description}
}

func toGenreDTOs(genres []domain.Genre) []GenreDTO {
	dtos := make([]GenreDTO, len(genres))
	for i := range genres {
		dtos[i] = toGenreDTO(&genres[i])
	}
	return dtos
}

// VinylDTO is the JSON representation of a vinyl listing. The price is a
// decimal string with two fraction digits.
type VinylDTO struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Artist        string    `json:"artist"`
	ReleaseYear   *int      `json:"releaseYear"`
	Condition     string    `json:"condition"`
	Price         string    `json:"price"`
	Description   string    `json:"description,omitempty"`
	CoverImageURL string    `json:"coverImageUrl,omitempty"`
	SellerID      string    `json:"sellerId"`
	GenreID       *string   `json:"genreId"`
	Seller        *UserDTO  `json:"seller,omitempty"`
	Genre         *GenreDTO `json:"genre,omitempty"`
	CreatedAt     string    `json:"createdAt"`
	UpdatedAt     string    `json:"updatedAt"`
}

func toVinylDTO(v *domain.Vinyl) VinylDTO {
	dto := VinylDTO{
		ID:            v.ID,
		Title:         v.Title,
		Artist:        v.Artist,
		ReleaseYear:   v.ReleaseYear,
		Condition:     string(v.Condition),
		Price:         v.Price.StringFixed(2),
		Description:   v.Description,
		CoverImageURL: v.CoverImageURL,
		SellerID:      v.SellerID,
		GenreID:       v.GenreID,
		CreatedAt:     v.CreatedAt.Format(time.RFC3339),
		UpdatedAt:     v.UpdatedAt.Format(time.RFC3339),
	}
	if v.Seller != nil {
		seller := toUserDTO(v.Seller)
		dto.Seller = &seller
	}
	if v.Genre != nil {
		genre := toGenreDTO(v.Genre)
		dto.Genre = &genre
	}
	return dto
}

func toVinylDTOs(vinyls []domain.Vinyl) []VinylDTO {
	dtos := make([]VinylDTO, len(vinyls))
	for i := range vinyls {
		dtos[i] = toVinylDTO(&vinyls[i])
	}
	return dtos
}

// VinylPageDTO is one page of vinyl listings.
type VinylPageDTO struct {
	Items      []VinylDTO `json:"items"`
	Total      int64      `json:"total"`
	Page       int        `json:"page"`
	Limit      int        `json:"limit"`
	TotalPages int        `json:"totalPages"`
}

func toVinylPageDTO(p *domain.VinylPage) VinylPageDTO {
	return VinylPageDTO{
		Items:      toVinylDTOs(p.Items),
		Total:      p.Total,
		Page:       p.Page,
		Limit:      p.Limit,
		TotalPages: p.TotalPages,
	}
}

// OrderDTO is the JSON representation of an order. The price is the amount
// snapshotted at purchase time, not the listing's current price.
type OrderDTO struct {
	ID        string    `json:"id"`
	Price     string    `json:"price"`
	Status    string    `json:"status"`
	OrderDate string    `json:"orderDate"`
	BuyerID   string    `json:"buyerId"`
	SellerID  string    `json:"sellerId"`
	VinylID   string    `json:"vinylId"`
	Buyer     *UserDTO  `json:"buyer,omitempty"`
	Seller    *UserDTO  `json:"seller,omitempty"`
	Vinyl     *VinylDTO `json:"vinyl,omitempty"`
}

func toOrderDTO(o *domain.Order) OrderDTO {
	dto := OrderDTO{
		ID:        o.ID,
		Price:     o.Price.StringFixed(2),
		Status:    string(o.Status),
		OrderDate: o.OrderDate.Format(time.RFC3339),
		BuyerID:   o.BuyerID,
		SellerID:  o.SellerID,
		VinylID:   o.VinylID,
	}
	if o.Buyer != nil {
		buyer := toUserDTO(o.Buyer)
		dto.Buyer = &buyer
	}
	if o.Seller != nil {
		seller := toUserDTO(o.Seller)
		dto.Seller = &seller
	}
	if o.Vinyl != nil {
		vinyl := toVinylDTO(o.Vinyl)
		dto.Vinyl = &vinyl
	}
	return dto
}

func toOrderDTOs(orders []domain.Order) []OrderDTO {
	dtos := make([]OrderDTO, len(orders))
	for i := range orders {
		dtos[i] = toOrderDTO(&orders[i])
	}
	return dtos
}
