package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Condition grades a vinyl record, ordered from best to worst.
type Condition string

const (
	ConditionMint         Condition = "Mint"
	ConditionNearMint     Condition = "Near Mint"
	ConditionExcellent    Condition = "Excellent"
	ConditionVeryGoodPlus Condition = "Very Good Plus"
	ConditionVeryGood     Condition = "Very Good"
	ConditionGood         Condition = "Good"
	ConditionFair         Condition = "Fair"
	ConditionPoor         Condition = "Poor"
)

// Conditions lists all grades from best to worst. The index of a grade in
// this slice is its quality rank, used for condition sorting.
var Conditions = []Condition{
	ConditionMint,
	ConditionNearMint,
	ConditionExcellent,
	ConditionVeryGoodPlus,
	ConditionVeryGood,
	ConditionGood,
	ConditionFair,
	ConditionPoor,
}

// Valid reports whether c is a known condition grade.
func (c Condition) Valid() bool {
	for _, known := range Conditions {
		if c == known {
			return true
		}
	}
	return false
}

// Vinyl is a sale listing, owned exclusively by its seller for mutation.
type Vinyl struct {
	ID            string
	Title         string
	Artist        string
	ReleaseYear   *int
	Condition     Condition
	Price         decimal.Decimal
	Description   string
	CoverImageURL string
	SellerID      string
	GenreID       *string
	CreatedAt     time.Time
	UpdatedAt     time.Time

	// Populated references, loaded on reads.
	Seller *User
	Genre  *Genre
}

// VinylPatch is a partial listing update. Nil fields are left unchanged.
// GenreID distinguishes "not provided" (nil) from "clear the genre"
// (pointer to empty string).
type VinylPatch struct {
	Title         *string
	Artist        *string
	ReleaseYear   *int
	Condition     *Condition
	Price         *decimal.Decimal
	Description   *string
	CoverImageURL *string
	GenreID       *string
}

// VinylFilter is the validated query shape for listing vinyls. Zero values
// mean "no constraint". Exact ReleaseYear takes precedence over the
// min/max range when both are supplied.
type VinylFilter struct {
	Title          string
	Artist         string
	GenreID        string
	SellerID       string
	Condition      Condition
	MinPrice       *decimal.Decimal
	MaxPrice       *decimal.Decimal
	ReleaseYear    *int
	MinReleaseYear *int
	MaxReleaseYear *int

	Page      int
	Limit     int
	SortBy    string
	SortOrder string
}

// VinylPage is one page of listing results.
type VinylPage struct {
	Items      []Vinyl
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// VinylRepository defines persistence operations for vinyl listings.
type VinylRepository interface {
	Create(ctx context.Context, vinyl *Vinyl) error
	// GetByID returns the vinyl with seller and genre populated.
	GetByID(ctx context.Context, id string) (*Vinyl, error)
	List(ctx context.Context, filter VinylFilter) (*VinylPage, error)
	ListBySeller(ctx context.Context, sellerID string) ([]Vinyl, error)
	Update(ctx context.Context, vinyl *Vinyl) error
	Delete(ctx context.Context, id string) error
}
