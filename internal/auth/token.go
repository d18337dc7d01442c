package auth

import (
	"errors"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/Taylor-S-Smith/jwt-pizza-service/internal/domain"
)

// TokenManager handles issuing and validating JWT tokens.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenManager builds a new manager.
func NewTokenManager(secret string, ttlMinutes int) *TokenManager {
	if ttlMinutes <= 0 {
		ttlMinutes = 60
	}
	return &TokenManager{secret: []byte(secret), ttl: time.Duration(ttlMinutes) * time.Minute}
}

// RoleClaim mirrors the wire shape of a role grant.
type RoleClaim struct {
	Role     domain.Role `json:"role"`
	ObjectID string      `json:"objectId,omitempty"`
}

// Claims describes the auth token payload. ID (jti) is the revocation key
// for logout.
type Claims struct {
	Name  string      `json:"name"`
	Email string      `json:"email"`
	Roles []RoleClaim `json:"roles"`
	jwt.RegisteredClaims
}

// GenerateToken builds and signs a JWT for the user.
func (tm *TokenManager) GenerateToken(user *domain.User) (string, error) {
	roles := make([]RoleClaim, 0, len(user.Roles))
	for _, r := range user.Roles {
		roles = append(roles, RoleClaim{Role: r.Role, ObjectID: r.ObjectID})
	}

	now := time.Now()
	claims := &Claims{
		Name:  user.Name,
		Email: user.Email,
		Roles: roles,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			ID:        uuid.NewString(),
			ExpiresAt: jwt.NewNumericDate(now.Add(tm.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(tm.secret)
}

// ParseToken validates and returns claims.
func (tm *TokenManager) ParseToken(tokenStr string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return tm.secret, nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, errors.New("invalid token claims")
	}
	return claims, nil
}

// ReceiptClaims describes the signed order receipt payload.
type ReceiptClaims struct {
	OrderID     string  `json:"orderId"`
	DinerID     string  `json:"dinerId"`
	FranchiseID string  `json:"franchiseId"`
	StoreID     string  `json:"storeId"`
	Total       float64 `json:"total"`
	jwt.RegisteredClaims
}

// GenerateReceipt signs a verifiable receipt for a placed order.
func (tm *TokenManager) GenerateReceipt(order *domain.Order) (string, error) {
	claims := &ReceiptClaims{
		OrderID:     order.ID,
		DinerID:     order.DinerID,
		FranchiseID: order.FranchiseID,
		StoreID:     order.StoreID,
		Total:       order.Total(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:  order.DinerID,
			IssuedAt: jwt.NewNumericDate(order.Date),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(tm.secret)
}

// ParseReceipt validates a receipt and returns its claims.
func (tm *TokenManager) ParseReceipt(tokenStr string) (*ReceiptClaims, error) {
	parsed, err := jwt.ParseWithClaims(tokenStr, &ReceiptClaims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return tm.secret, nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := parsed.Claims.(*ReceiptClaims)
	if !ok || !parsed.Valid {
		return nil, errors.New("invalid receipt claims")
	}
	return claims, nil
}
