package service_test

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mqlstam/vinylplatz2025/internal/domain"
	"github.com/mqlstam/vinylplatz2025/internal/repository/sqlite"
	"github.com/mqlstam/vinylplatz2025/internal/service"
)

const testJWTSecret = "test-secret-key-for-unit-tests-0123456789"

func openTestDB(t *testing.T) *sqlite.DB {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	db, err := sqlite.New(dbPath)
	if err != nil {
		t.Fatalf("New DB: %v", err)
	}
	if err := db.Migrate(context.Background()); err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func newTestAuthService(t *testing.T) (*service.AuthService, *sqlite.DB) {
	t.Helper()
	db := openTestDB(t)
	// Use cost 4 for fast tests.
	auth := service.NewAuthService(db.Users(), testJWTSecret, 4)
	return auth, db
}

func strptr(s string) *string { return &s }

func TestAuthService_Register_Success(t *testing.T) {
	auth, _ := newTestAuthService(t)
	ctx := context.Background()

	user, token, err := auth.Register(ctx, "New User", "new@example.com", "password123")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	if user.ID == "" {
		t.Fatal("expected user ID to be set")
	}
	if user.Email != "new@example.com" {
		t.Fatalf("expected email new@example.com, got %s", user.Email)
	}
	if user.Role != domain.RoleUser {
		t.Fatalf("expected role user, got %s", user.Role)
	}
	if user.PasswordHash == "password123" {
		t.Fatal("password was stored in plaintext")
	}
	if token == "" {
		t.Fatal("expected a signed token")
	}
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	auth, _ := newTestAuthService(t)
	ctx := context.Background()

	if _, _, err := auth.Register(ctx, "User 1", "dup@example.com", "password123"); err != nil {
		t.Fatalf("first register: %v", err)
	}

	_, _, err := auth.Register(ctx, "User 2", "dup@example.com", "password456")
	if !errors.Is(err, domain.ErrDuplicateEmail) {
		t.Fatalf("expected ErrDuplicateEmail, got %v", err)
	}
}

func TestAuthService_Register_Invalid(t *testing.T) {
	auth, _ := newTestAuthService(t)
	ctx := context.Background()

	tests := []struct {
		name     string
		userName string
		email    string
		password string
	}{
		{"empty name", "", "a@b.com", "password123"},
		{"empty email", "Name", "", "password123"},
		{"empty password", "Name", "a@b.com", ""},
		{"malformed email", "Name", "not-an-email", "password123"},
		{"short password", "Name", "a@b.com", "short"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := auth.Register(ctx, tc.userName, tc.email, tc.password)
			if !errors.Is(err, domain.ErrInvalidInput) {
				t.Fatalf("expected ErrInvalidInput, got %v", err)
			}
		})
	}
}

func TestAuthService_Login_Success(t *testing.T) {
	auth, _ := newTestAuthService(t)
	ctx := context.Background()

	if _, _, err := auth.Register(ctx, "Login User", "login@example.com", "password123"); err != nil {
		t.Fatalf("Register: %v", err)
	}

	user, token, err := auth.Login(ctx, "login@example.com", "password123")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if user.Email != "login@example.com" {
		t.Fatalf("expected email login@example.com, got %s", user.Email)
	}

	claims, err := auth.ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}
	if claims.UserID != user.ID {
		t.Fatalf("expected subject %s, got %s", user.ID, claims.UserID)
	}
	if claims.Email != user.Email {
		t.Fatalf("expected email claim %s, got %s", user.Email, claims.Email)
	}
	if claims.Role != domain.RoleUser {
		t.Fatalf("expected role claim user, got %s", claims.Role)
	}
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	auth, _ := newTestAuthService(t)
	ctx := context.Background()

	if _, _, err := auth.Register(ctx, "User", "wrong@example.com", "password123"); err != nil {
		t.Fatalf("Register: %v", err)
	}

	_, _, err := auth.Login(ctx, "wrong@example.com", "incorrect999")
	if !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestAuthService_Login_UnknownEmail(t *testing.T) {
	auth, _ := newTestAuthService(t)

	_, _, err := auth.Login(context.Background(), "nobody@example.com", "password123")
	if !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestAuthService_ValidateToken_Tampered(t *testing.T) {
	auth, _ := newTestAuthService(t)
	ctx := context.Background()

	_, token, err := auth.Register(ctx, "User", "tamper@example.com", "password123")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	// Corrupt the signature segment.
	parts := strings.Split(token, ".")
	parts[2] = "AAAA" + parts[2][4:]
	tampered := strings.Join(parts, ".")

	if _, err := auth.ValidateToken(tampered); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized for tampered token, got %v", err)
	}
}

func TestAuthService_ValidateToken_WrongSecret(t *testing.T) {
	auth, db := newTestAuthService(t)
	ctx := context.Background()

	_, token, err := auth.Register(ctx, "User", "secret@example.com", "password123")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	other := service.NewAuthService(db.Users(), "a-completely-different-32-char-secret!!", 4)
	if _, err := other.ValidateToken(token); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized for wrong secret, got %v", err)
	}
}

func TestAuthService_ValidateToken_Garbage(t *testing.T) {
	auth, _ := newTestAuthService(t)

	if _, err := auth.ValidateToken("not.a.token"); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestAuthService_UpdateProfile(t *testing.T) {
	auth, _ := newTestAuthService(t)
	ctx := context.Background()

	user, _, err := auth.Register(ctx, "Original", "profile@example.com", "password123")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	updated, err := auth.UpdateProfile(ctx, user.ID, domain.UserPatch{
		Name:    strptr("Renamed"),
		Address: strptr("New Address 1"),
	})
	if err != nil {
		t.Fatalf("UpdateProfile: %v", err)
	}
	if updated.Name != "Renamed" || updated.Address != "New Address 1" {
		t.Fatalf("patch not applied: %+v", updated)
	}
	// Unspecified fields are untouched.
	if updated.Email != "profile@example.com" {
		t.Fatalf("email unexpectedly changed to %s", updated.Email)
	}
}

func TestAuthService_UpdateProfile_EmailConflict(t *testing.T) {
	auth, _ := newTestAuthService(t)
	ctx := context.Background()

	if _, _, err := auth.Register(ctx, "Holder", "taken@example.com", "password123"); err != nil {
		t.Fatalf("Register: %v", err)
	}
	user, _, err := auth.Register(ctx, "Mover", "mover@example.com", "password123")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	_, err = auth.UpdateProfile(ctx, user.ID, domain.UserPatch{Email: strptr("taken@example.com")})
	if !errors.Is(err, domain.ErrDuplicateEmail) {
		t.Fatalf("expected ErrDuplicateEmail, got %v", err)
	}

	// Re-submitting the current email is not a conflict.
	if _, err := auth.UpdateProfile(ctx, user.ID, domain.UserPatch{Email: strptr("mover@example.com")}); err != nil {
		t.Fatalf("expected own email to be accepted, got %v", err)
	}
}

func TestAuthService_UpdateProfile_PasswordChange(t *testing.T) {
	auth, _ := newTestAuthService(t)
	ctx := context.Background()

	user, _, err := auth.Register(ctx, "User", "pw@example.com", "password123")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	if _, err := auth.UpdateProfile(ctx, user.ID, domain.UserPatch{Password: strptr("newpassword456")}); err != nil {
		t.Fatalf("UpdateProfile: %v", err)
	}

	if _, _, err := auth.Login(ctx, "pw@example.com", "password123"); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected old password rejected, got %v", err)
	}
	if _, _, err := auth.Login(ctx, "pw@example.com", "newpassword456"); err != nil {
		t.Fatalf("expected new password accepted, got %v", err)
	}
}
