package middleware

import (
	"net/http"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

// AuthConfig carries the validation parameters for incoming access tokens.
type AuthConfig struct {
	Secret     string
	Issuer     string
	Audience   string
	CookieName string
}

// Auth validates the access-token cookie and injects the subject into the
// request context as "user_id". Signature, issuer, audience, and expiry are
// all checked; every failure produces the same generic 401 so callers learn
// nothing about why a token was rejected.
func Auth(cfg AuthConfig) echo.MiddlewareFunc {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(cfg.Issuer),
		jwt.WithAudience(cfg.Audience),
		jwt.WithExpirationRequired(),
	)

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie(cfg.CookieName)
			if err != nil || cookie.Value == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			claims := &jwt.RegisteredClaims{}
			tkn, err := parser.ParseWithClaims(cookie.Value, claims, func(token *jwt.Token) (interface{}, error) {
				return []byte(cfg.Secret), nil
			})
			if err != nil || !tkn.Valid || claims.Subject == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			c.Set(userIDKey, claims.Subject)
			return next(c)
		}
	}
}
