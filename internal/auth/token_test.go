package auth

import (
	"regexp"
	"testing"
	"time"

	"github.com/Taylor-S-Smith/jwt-pizza-service/internal/domain"
)

var jwtShape = regexp.MustCompile(`^[A-Za-z0-9\-_]*\.[A-Za-z0-9\-_]*\.[A-Za-z0-9\-_]*$`)

func testUser() *domain.User {
	return &domain.User{
		ID:    "user-123",
		Name:  "pizza diner",
		Email: "diner@test.com",
		Roles: []domain.UserRole{{Role: domain.RoleDiner}},
	}
}

func TestGenerateAndParse_Success(t *testing.T) {
	t.Parallel()

	tm := NewTokenManager("super-secret", 60)
	user := testUser()

	tok, err := tm.GenerateToken(user)
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}
	if !jwtShape.MatchString(tok) {
		t.Fatalf("token %q is not three base64url segments", tok)
	}

	claims, err := tm.ParseToken(tok)
	if err != nil {
		t.Fatalf("ParseToken error: %v", err)
	}
	if claims.Subject != user.ID {
		t.Fatalf("subject mismatch: got %q want %q", claims.Subject, user.ID)
	}
	if claims.ID == "" {
		t.Fatal("expected non-empty jti")
	}
	if len(claims.Roles) != 1 || claims.Roles[0].Role != domain.RoleDiner {
		t.Fatalf("unexpected roles: %+v", claims.Roles)
	}
}

func TestParseToken_WrongSecret(t *testing.T) {
	t.Parallel()

	tok, err := NewTokenManager("right-secret", 60).GenerateToken(testUser())
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}

	if _, err := NewTokenManager("wrong-secret", 60).ParseToken(tok); err == nil {
		t.Fatal("expected error for wrong secret, got nil")
	}
}

func TestParseToken_Expired(t *testing.T) {
	t.Parallel()

	tm := &TokenManager{secret: []byte("secret"), ttl: -time.Second}
	tok, err := tm.GenerateToken(testUser())
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}

	if _, err := tm.ParseToken(tok); err == nil {
		t.Fatal("expected error for expired token, got nil")
	}
}

func TestGenerateReceipt_RoundTrip(t *testing.T) {
	t.Parallel()

	tm := NewTokenManager("secret", 60)
	order := &domain.Order{
		ID:          "order-1",
		DinerID:     "user-123",
		FranchiseID: "franchise-1",
		StoreID:     "store-1",
		Date:        time.Now(),
		Items: []domain.OrderItem{
			{MenuID: "menu-1", Description: "Veggie", Price: 0.05},
			{MenuID: "menu-2", Description: "Pepperoni", Price: 0.1},
		},
	}

	receipt, err := tm.GenerateReceipt(order)
	if err != nil {
		t.Fatalf("GenerateReceipt error: %v", err)
	}
	if !jwtShape.MatchString(receipt) {
		t.Fatalf("receipt %q is not three base64url segments", receipt)
	}

	claims, err := tm.ParseReceipt(receipt)
	if err != nil {
		t.Fatalf("ParseReceipt error: %v", err)
	}
	if claims.OrderID != order.ID || claims.DinerID != order.DinerID {
		t.Fatalf("claims mismatch: %+v", claims)
	}
	if claims.Total != order.Total() {
		t.Fatalf("total mismatch: got %v want %v", claims.Total, order.Total())
	}
}
