package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/mqlstam/vinylplatz2025/internal/domain"
)

// SeedService fills an empty database with demo accounts, genres,
// listings, orders, and favorites so the API is explorable immediately.
type SeedService struct {
	users      domain.UserRepository
	genres     domain.GenreRepository
	vinyls     domain.VinylRepository
	orders     domain.OrderRepository
	favorites  domain.FavoriteRepository
	bcryptCost int
}

// NewSeedService creates a new SeedService.
func NewSeedService(
	users domain.UserRepository,
	genres domain.GenreRepository,
	vinyls domain.VinylRepository,
	orders domain.OrderRepository,
	favorites domain.FavoriteRepository,
	bcryptCost int,
) *SeedService {
	return &SeedService{
		users:      users,
		genres:     genres,
		vinyls:     vinyls,
		orders:     orders,
		favorites:  favorites,
		bcryptCost: bcryptCost,
	}
}

// Run seeds the database. It is idempotent: if any user already exists the
// database is assumed to be seeded and nothing is written.
func (s *SeedService) Run(ctx context.Context) error {
	count, err := s.users.Count(ctx)
	if err != nil {
		return fmt.Errorf("count users: %w", err)
	}
	if count > 0 {
		slog.Info("database already seeded, skipping", "users", count)
		return nil
	}

	slog.Info("seeding database")

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), s.bcryptCost)
	if err != nil {
		return fmt.Errorf("hash seed password: %w", err)
	}

	type seedUser struct {
		name, email, address string
		role                 domain.Role
	}
	userData := []seedUser{
		{"Alice Wonderland", "alice@example.com", "123 Rabbit Hole, Wonderland", domain.RoleAdmin},
		{"Bob The Builder", "bob@example.com", "456 Construction Ave, Builderville", domain.RoleUser},
		{"Charlie Chaplin", "charlie@example.com", "789 Silent Film St, Hollywood", domain.RoleUser},
		{"Diana Prince", "diana@example.com", "1 Paradise Island, Themyscira", domain.RoleUser},
		{"Ethan Hunt", "ethan@example.com", "IMF Headquarters, Langley", domain.RoleUser},
	}
	users := make([]*domain.User, 0, len(userData))
	for _, u := range userData {
		user := &domain.User{
			Name:         u.name,
			Email:        u.email,
			PasswordHash: string(hash),
			Address:      u.address,
			Role:         u.role,
		}
		if err := s.users.Create(ctx, user); err != nil {
			return fmt.Errorf("seed user %s: %w", u.email, err)
		}
		users = append(users, user)
	}

	genreData := []domain.Genre{
		{Name: "Rock", Description: "Genre originating from rock and roll."},
		{Name: "Jazz", Description: "Music genre that originated in the African-American communities."},
		{Name: "Pop", Description: "Popular music genre."},
		{Name: "Electronic", Description: "Music primarily featuring electronic instruments."},
		{Name: "Hip Hop", Description: "Music genre developed in the United States by inner-city African Americans."},
		{Name: "Blues", Description: "Music genre originated by African Americans in the Deep South."},
		{Name: "Classical", Description: "Art music produced or rooted in the traditions of Western culture."},
	}
	genres := make(map[string]string, len(genreData))
	for i := range genreData {
		g := genreData[i]
		if err := s.genres.Create(ctx, &g); err != nil {
			return fmt.Errorf("seed genre %s: %w", g.Name, err)
		}
		genres[g.Name] = g.ID
	}

	year := func(y int) *int { return &y }
	genreID := func(name string) *string {
		id := genres[name]
		return &id
	}

	vinylData := []domain.Vinyl{
		{Title: "Led Zeppelin IV", Artist: "Led Zeppelin", ReleaseYear: year(1971), Condition: domain.ConditionVeryGoodPlus, Price: decimal.NewFromFloat(55.00), SellerID: users[0].ID, GenreID: genreID("Rock"), Description: "Classic hard rock, includes Stairway to Heaven."},
		{Title: "The Wall", Artist: "Pink Floyd", ReleaseYear: year(1979), Condition: domain.ConditionExcellent, Price: decimal.NewFromFloat(70.00), SellerID: users[0].ID, GenreID: genreID("Rock"), Description: "Iconic concept album. Gatefold sleeve."},
		{Title: "Harvest", Artist: "Neil Young", ReleaseYear: year(1972), Condition: domain.ConditionVeryGood, Price: decimal.NewFromFloat(48.00), SellerID: users[0].ID, GenreID: genreID("Rock"), Description: "Features Heart of Gold."},
		{Title: "Kind of Blue", Artist: "Miles Davis", ReleaseYear: year(1959), Condition: domain.ConditionGood, Price: decimal.NewFromFloat(40.00), SellerID: users[1].ID, GenreID: genreID("Jazz"), Description: "Essential modal jazz album."},
		{Title: "A Love Supreme", Artist: "John Coltrane", ReleaseYear: year(1965), Condition: domain.ConditionVeryGood, Price: decimal.NewFromFloat(60.00), SellerID: users[1].ID, GenreID: genreID("Jazz"), Description: "Spiritual jazz masterpiece."},
		{Title: "Thriller", Artist: "Michael Jackson", ReleaseYear: year(1982), Condition: domain.ConditionNearMint, Price: decimal.NewFromFloat(50.00), SellerID: users[2].ID, GenreID: genreID("Pop"), Description: "Best-selling album worldwide."},
		{Title: "Random Access Memories", Artist: "Daft Punk", ReleaseYear: year(2013), Condition: domain.ConditionMint, Price: decimal.NewFromFloat(45.00), SellerID: users[2].ID, GenreID: genreID("Electronic"), Description: "Grammy winner, sealed copy."},
		{Title: "Ready to Die", Artist: "The Notorious B.I.G.", ReleaseYear: year(1994), Condition: domain.ConditionVeryGoodPlus, Price: decimal.NewFromFloat(75.00), SellerID: users[3].ID, GenreID: genreID("Hip Hop"), Description: "East Coast hip hop classic."},
		{Title: "Moanin'", Artist: "Art Blakey & The Jazz Messengers", ReleaseYear: year(1959), Condition: domain.ConditionVeryGood, Price: decimal.NewFromFloat(50.00), SellerID: users[3].ID, GenreID: genreID("Jazz"), Description: "Hard bop standard."},
		{Title: "Texas Flood", Artist: "Stevie Ray Vaughan", ReleaseYear: year(1983), Condition: domain.ConditionExcellent, Price: decimal.NewFromFloat(65.00), SellerID: users[4].ID, GenreID: genreID("Blues"), Description: "Debut album, defining blues rock sound."},
		{Title: "The Four Seasons", Artist: "Antonio Vivaldi", ReleaseYear: year(1725), Condition: domain.ConditionGood, Price: decimal.NewFromFloat(30.00), SellerID: users[4].ID, GenreID: genreID("Classical"), Description: "Baroque masterpiece performed by The Academy of Ancient Music."},
	}
	vinyls := make([]*domain.Vinyl, 0, len(vinylData))
	for i := range vinylData {
		v := vinylData[i]
		if err := s.vinyls.Create(ctx, &v); err != nil {
			return fmt.Errorf("seed vinyl %s: %w", v.Title, err)
		}
		vinyls = append(vinyls, &v)
	}

	orderData := []struct {
		buyer, seller int
		vinyl         int
		status        domain.OrderStatus
	}{
		{1, 0, 0, domain.OrderCompleted},
		{2, 1, 3, domain.OrderShipped},
		{0, 3, 7, domain.OrderPaid},
		{4, 2, 5, domain.OrderPending},
		{3, 4, 9, domain.OrderCancelled},
	}
	for _, o := range orderData {
		order := &domain.Order{
			Price:    vinyls[o.vinyl].Price,
			Status:   o.status,
			BuyerID:  users[o.buyer].ID,
			SellerID: users[o.seller].ID,
			VinylID:  vinyls[o.vinyl].ID,
		}
		if err := s.orders.Create(ctx, order); err != nil {
			return fmt.Errorf("seed order: %w", err)
		}
	}

	favoriteData := []struct{ user, vinyl int }{
		{0, 3}, {0, 7},
		{1, 0},
		{2, 9},
		{3, 5},
		{4, 1}, {4, 4},
	}
	for _, f := range favoriteData {
		if err := s.favorites.Add(ctx, users[f.user].ID, vinyls[f.vinyl].ID); err != nil {
			return fmt.Errorf("seed favorite: %w", err)
		}
	}

	slog.Info("database seeding completed",
		"users", len(users), "genres", len(genreData), "vinyls", len(vinyls))
	return nil
}
