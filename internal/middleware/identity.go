// Package middleware contains the HTTP middleware of the kiosk facade.
package middleware

import (
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

const usernameKey = "username"

// Identity resolves the current user from an optional Bearer token
// issued by the external Auth service. Tokens are verified with the
// Auth service's HMAC secret; the username claim (falling back to the
// standard sub claim) is stored in the request context. Booking never
// requires a login, so a missing or invalid token does not reject the
// request: the session simply runs as "guest" and its receipts land
// in the guest ledger.
func Identity(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			auth := c.Request().Header.Get("Authorization")
			if !strings.HasPrefix(auth, "Bearer ") {
				return next(c)
			}
			raw := strings.TrimPrefix(auth, "Bearer ")

			tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
				// Reject any signing method other than HMAC.
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, echo.ErrUnauthorized
				}
				return []byte(secret), nil
			})
			if err != nil || !tok.Valid {
				c.Logger().Debugf("identity: invalid token ignored: %v", err)
				return next(c)
			}
			if claims, ok := tok.Claims.(jwt.MapClaims); ok {
				if v, ok := claims["username"].(string); ok && v != "" {
					c.Set(usernameKey, v)
				} else if v, ok := claims["sub"].(string); ok && v != "" {
					c.Set(usernameKey, v)
				}
			}
			return next(c)
		}
	}
}

// Username returns the authenticated username, or "guest" when the
// request carried no usable identity.
func Username(c echo.Context) string {
	if v, ok := c.Get(usernameKey).(string); ok && v != "" {
		return v
	}
	return "guest"
}

// BearerToken returns the raw bearer token from the request, or ""
// when none was sent. The Booking API client forwards it upstream.
func BearerToken(c echo.Context) string {
	auth := c.Request().Header.Get("Authorization")
	if strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimPrefix(auth, "Bearer ")
	}
	return ""
}
