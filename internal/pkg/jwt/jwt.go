package jwt

import (
	"errors"
	"time"

	"github.com/dayflow-hr/hrms-backend-go/internal/domain/auth"
	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

const (
	TokenTypeAccess = "access"
	TokenTypeSSE    = "sse"

	sseTokenTTL = 5 * time.Minute
)

var ErrWrongTokenType = errors.New("token type not accepted here")

// Claims are the custom claims carried by every token this service issues.
type Claims struct {
	SessionID  string
	UserID     string
	EmployeeID string
	Role       string
	Type       string
}

type Service interface {
	// GenerateAccessToken signs a token bound to s that expires with it.
	GenerateAccessToken(s auth.Session) (token string, expiresAt int64, err error)
	GenerateSSEToken(s auth.Session) (token string, expiresIn int, err error)
	ValidateSSEToken(tokenString string) (Claims, error)
	JWTAuth() *jwtauth.JWTAuth
}

type JWTService struct {
	tokenAuth *jwtauth.JWTAuth
	now       func() time.Time
}

func NewJWTService(secretKey string) Service {
	return &JWTService{
		tokenAuth: jwtauth.New("HS256", []byte(secretKey), nil, jwt.WithAcceptableSkew(30*time.Second)),
		now:       time.Now,
	}
}

func (j *JWTService) JWTAuth() *jwtauth.JWTAuth {
	return j.tokenAuth
}

func (j *JWTService) GenerateAccessToken(s auth.Session) (token string, expiresAt int64, err error) {
	expiresAt = s.ExpiresAt.Unix()
	_, tokenString, err := j.tokenAuth.Encode(map[string]interface{}{
		"sid":         s.ID,
		"user_id":     s.UserID,
		"employee_id": s.EmployeeID,
		"email":       s.Email,
		"role":        string(s.Role),
		"type":        TokenTypeAccess,
		"iat":         s.IssuedAt.Unix(),
		"exp":         expiresAt,
	})
	return tokenString, expiresAt, err
}

// GenerateSSEToken generates a short-lived token for EventSource clients,
// which cannot send an Authorization header.
func (j *JWTService) GenerateSSEToken(s auth.Session) (token string, expiresIn int, err error) {
	expiresAt := j.now().Add(sseTokenTTL)
	if !s.ExpiresAt.IsZero() && s.ExpiresAt.Before(expiresAt) {
		expiresAt = s.ExpiresAt
	}

	_, tokenString, err := j.tokenAuth.Encode(map[string]interface{}{
		"sid":     s.ID,
		"user_id": s.UserID,
		"type":    TokenTypeSSE,
		"exp":     expiresAt.Unix(),
	})
	if err != nil {
		return "", 0, err
	}
	return tokenString, int(expiresAt.Sub(j.now()).Seconds()), nil
}

// ValidateSSEToken validates an SSE token and returns its claims
func (j *JWTService) ValidateSSEToken(tokenString string) (Claims, error) {
	token, err := jwtauth.VerifyToken(j.tokenAuth, tokenString)
	if err != nil {
		return Claims{}, err
	}

	claims := ClaimsFromMap(token.PrivateClaims())
	if claims.Type != TokenTypeSSE {
		return Claims{}, ErrWrongTokenType
	}
	if claims.SessionID == "" {
		return Claims{}, jwt.ErrInvalidJWT()
	}
	return claims, nil
}

// ClaimsFromMap reads the custom claims out of a decoded claim set.
func ClaimsFromMap(m map[string]interface{}) Claims {
	str := func(key string) string {
		v, _ := m[key].(string)
		return v
	}
	return Claims{
		SessionID:  str("sid"),
		UserID:     str("user_id"),
		EmployeeID: str("employee_id"),
		Role:       str("role"),
		Type:       str("type"),
	}
}
