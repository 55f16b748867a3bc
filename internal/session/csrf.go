package session

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// FormField is the form field every state-changing request must carry.
const FormField = "csrf_token"

var ErrInvalidCSRFToken = errors.New("invalid csrf token")

type csrfClaims struct {
	Nonce string `json:"nonce"`
	jwt.RegisteredClaims
}

type csrfSigner struct {
	key []byte
	ttl time.Duration
}

func (s csrfSigner) sign(nonce string) (string, error) {
	now := time.Now()
	claims := csrfClaims{
		Nonce: nonce,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.key)
}

func (s csrfSigner) parse(tokenString string) (*csrfClaims, error) {
	claims := &csrfClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return s.key, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		return nil, err
	}
	return claims, nil
}

// CSRFToken returns a signed token tied to the current session. The session
// nonce is created on first use and replaced when a new login starts.
func (a *Authority) CSRFToken(ctx context.Context) (string, error) {
	nonce := a.manager.GetString(ctx, nonceKey)
	if nonce == "" {
		nonce = uuid.NewString()
		a.manager.Put(ctx, nonceKey, nonce)
	}

	token, err := a.csrf.sign(nonce)
	if err != nil {
		return "", fmt.Errorf("error signing csrf token: %w", err)
	}
	return token, nil
}

// CheckCSRF validates a token against the nonce held by the current session.
func (a *Authority) CheckCSRF(ctx context.Context, token string) error {
	if token == "" {
		return ErrInvalidCSRFToken
	}

	nonce := a.manager.GetString(ctx, nonceKey)
	if nonce == "" {
		return ErrInvalidCSRFToken
	}

	claims, err := a.csrf.parse(token)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidCSRFToken, err)
	}

	if claims.Nonce != nonce {
		return ErrInvalidCSRFToken
	}
	return nil
}

// VerifyCSRF rejects POST requests without a valid token with 403. It must
// run inside LoadAndSave.
func (a *Authority) VerifyCSRF(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			next.ServeHTTP(w, r)
			return
		}

		if err := a.CheckCSRF(r.Context(), r.PostFormValue(FormField)); err != nil {
			log.Printf("csrf check failed for %s %s: %v", r.Method, r.URL.Path, err)
			http.Error(w, http.StatusText(http.StatusForbidden), http.StatusForbidden)
			return
		}

		next.ServeHTTP(w, r)
	})
}
