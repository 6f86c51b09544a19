package middleware

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	apperrors "canvaspilot.io/canvaspilot/internal/pkg/errors"
)

// JWTClaims carries the authenticated account through a token. AccountID is
// the numeric primary key; Handle is the login handle shown in audit
// columns.
type JWTClaims struct {
	AccountID int64    `json:"account_id"`
	Handle    string   `json:"handle"`
	Roles     []string `json:"roles"`
	jwt.RegisteredClaims
}

// JWTConfig holds JWT signing configuration.
type JWTConfig struct {
	SigningKey []byte
	Issuer     string
	ExpiresIn  time.Duration
}

// GenerateToken creates a signed JWT for the given account.
func GenerateToken(cfg JWTConfig, accountID int64, handle string, roles []string) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(cfg.ExpiresIn)

	claims := JWTClaims{
		AccountID: accountID,
		Handle:    handle,
		Roles:     roles,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    cfg.Issuer,
			Subject:   handle,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(cfg.SigningKey)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}
	return tokenString, expiresAt, nil
}

// ParseToken validates a raw token string and returns its claims. Shared by
// the HTTP middleware and the websocket dispatcher, which authenticates
// each inbound frame.
func ParseToken(signingKey []byte, tokenString string) (*JWTClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return signingKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, apperrors.Unauthorized(apperrors.CodeTokenExpired, "token expired", "")
		}
		return nil, apperrors.Unauthorized(apperrors.CodeTokenInvalid, "invalid token", "")
	}

	claims, ok := token.Claims.(*JWTClaims)
	if !ok || !token.Valid {
		return nil, apperrors.Unauthorized(apperrors.CodeTokenInvalid, "invalid token claims", "")
	}
	return claims, nil
}

// BearerToken extracts the token from an Authorization header value.
func BearerToken(header string) (string, error) {
	if header == "" {
		return "", apperrors.Unauthorized(apperrors.CodeUnauthorized, "missing authorization header", "")
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", apperrors.Unauthorized(apperrors.CodeUnauthorized, "invalid authorization header format", "")
	}
	return parts[1], nil
}

// JWTAuth returns a Gin middleware that validates Bearer tokens and
// populates the request context with the caller identity.
func JWTAuth(signingKey []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, err := BearerToken(c.GetHeader("Authorization"))
		if err != nil {
			abortWithAppError(c, err)
			return
		}

		claims, err := ParseToken(signingKey, tokenString)
		if err != nil {
			abortWithAppError(c, err)
			return
		}

		c.Set(string(ctxKeyAccountID), claims.AccountID)
		c.Set(string(ctxKeyHandle), claims.Handle)
		c.Set(string(ctxKeyRoles), claims.Roles)
		c.Request = c.Request.WithContext(
			SetUserContext(c.Request.Context(), claims.AccountID, claims.Handle, claims.Roles),
		)

		c.Next()
	}
}

func abortWithAppError(c *gin.Context, err error) {
	appErr, ok := apperrors.IsAppError(err)
	if !ok {
		appErr = apperrors.ErrInternal(err, "authentication")
	}
	c.AbortWithStatusJSON(appErr.HTTPStatus, appErr)
}
