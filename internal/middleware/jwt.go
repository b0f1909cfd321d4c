// internal/middleware/jwt.go
package middleware

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	// Token expiration time - 24 hours
	tokenExpiration = 24 * time.Hour

	tokenIssuer = "greenpatch-api"
)

// Claims carries the display name the session acts as. Display names are not
// unique; the token only binds a request to the name chosen at sign-in.
type Claims struct {
	Name string `json:"name"`
	jwt.RegisteredClaims
}

// UnprotectedRoutes defines routes that don't require a session
var UnprotectedRoutes = map[string]bool{
	"/health":      true,
	"/session":     true,
	"/plants":      true,
	"/marketplace": true,
	"/metrics":     true,
}

// TokenIssuer signs and validates session tokens with a shared secret.
type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenIssuer(secret string) *TokenIssuer {
	return &TokenIssuer{secret: []byte(secret), ttl: tokenExpiration, now: time.Now}
}

// GenerateToken creates a new JWT token for the given display name
func (ti *TokenIssuer) GenerateToken(name string) (string, error) {
	now := ti.now()
	claims := &Claims{
		Name: name,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			ExpiresAt: jwt.NewNumericDate(now.Add(ti.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    tokenIssuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(ti.secret)
}

// ValidateToken validates the provided JWT token
func (ti *TokenIssuer) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(
		tokenString,
		&Claims{},
		func(token *jwt.Token) (interface{}, error) {
			// Verify signing method
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return ti.secret, nil
		},
		jwt.WithIssuer(tokenIssuer),
		jwt.WithTimeFunc(ti.now),
	)
	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}
	return nil, errors.New("invalid token")
}

// tokenFromRequest reads a bearer token, falling back to the "token" query
// parameter used by websocket clients.
func tokenFromRequest(r *http.Request) (string, error) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		if token := r.URL.Query().Get("token"); token != "" {
			return token, nil
		}
		return "", errors.New("Authorization header required")
	}
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return "", errors.New("Invalid authorization format")
	}
	return strings.TrimPrefix(authHeader, "Bearer "), nil
}

// AuthMiddleware validates the session token and stores the display name in
// the request context. Unprotected routes and token-less GET requests pass
// through anonymously.
func (ti *TokenIssuer) AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if UnprotectedRoutes[r.URL.Path] || r.Method == http.MethodOptions {
			next.ServeHTTP(w, r)
			return
		}

		tokenString, err := tokenFromRequest(r)
		if err != nil {
			if r.Method == http.MethodGet && r.URL.Path != "/ws" {
				next.ServeHTTP(w, r)
				return
			}
			http.Error(w, err.Error(), http.StatusUnauthorized)
			return
		}

		claims, err := ti.ValidateToken(tokenString)
		if err != nil {
			log.Printf("JWT Error: %v", err)
			http.Error(w, "Invalid token", http.StatusUnauthorized)
			return
		}

		next.ServeHTTP(w, r.WithContext(SetNameInContext(r.Context(), claims.Name)))
	})
}

// Define a custom context key type to avoid collisions
type contextKey string

// NameKey is the key used to store the display name in the context
const NameKey contextKey = "display_name"

// SetNameInContext saves the display name in the request context
func SetNameInContext(ctx context.Context, name string) context.Context {
	return context.WithValue(ctx, NameKey, name)
}

// GetNameFromContext retrieves the display name from the context. ok is
// false for anonymous requests.
func GetNameFromContext(ctx context.Context) (string, bool) {
	name, ok := ctx.Value(NameKey).(string)
	return name, ok
}
