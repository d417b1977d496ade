package middlewares

import (
	"fmt"
	"strings"

	"github.com/Wassim-dev-wq/Qypym-back-sub001/internal/domain/common/errorz"
	"github.com/Wassim-dev-wq/Qypym-back-sub001/pkg/authority"
	mapset "github.com/deckarep/golang-set/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const (
	contextKeyUserID      = "user_id"
	contextKeyEmail       = "user_email"
	contextKeyRoles       = "user_roles"
	contextKeyCorrelation = "correlation_id"

	// Trusted identity headers injected at the edge. Downstream code may
	// trust them only because this middleware strips client-supplied values
	// on every request.
	HeaderUserID        = "X-User-Id"
	HeaderUserEmail     = "X-User-Email"
	HeaderCorrelationID = "X-Correlation-Id"
)

// JWTAuth validates the Bearer token and stores the caller's subject, email
// and authority set in the request context. Routes without this middleware
// are public.
func JWTAuth(secret []byte, clientID string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get("Authorization")
			if header == "" {
				return errorz.ErrUnauthorized
			}

			parts := strings.SplitN(header, " ", 2)
			if len(parts) != 2 || parts[0] != "Bearer" {
				return errorz.ErrUnauthorized
			}

			token, err := jwt.Parse(parts[1], func(t *jwt.Token) (any, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
				}
				return secret, nil
			})
			if err != nil || !token.Valid {
				return errorz.ErrUnauthorized
			}

			claims, ok := token.Claims.(jwt.MapClaims)
			if !ok {
				return errorz.ErrUnauthorized
			}
			subject, _ := claims["sub"].(string)
			if subject == "" {
				return errorz.ErrUnauthorized
			}
			email, _ := claims["email"].(string)

			c.Set(contextKeyUserID, subject)
			c.Set(contextKeyEmail, email)
			c.Set(contextKeyRoles, authority.Roles(claims, clientID))
			return next(c)
		}
	}
}

// IdentityHeaders is the header-injection edge filter. Inbound identity
// headers are always stripped; when an authenticated principal is present
// the validated subject and email are injected for downstream trust. Public
// routes pass through with the headers removed and nothing injected.
func IdentityHeaders() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			req.Header.Del(HeaderUserID)
			req.Header.Del(HeaderUserEmail)

			if userID, ok := c.Get(contextKeyUserID).(string); ok && userID != "" {
				req.Header.Set(HeaderUserID, userID)
				if email, ok := c.Get(contextKeyEmail).(string); ok {
					req.Header.Set(HeaderUserEmail, email)
				}
			}
			return next(c)
		}
	}
}

// Correlation assigns or propagates the request's correlation id for tracing
// through the event pipeline.
func Correlation() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id := c.Request().Header.Get(HeaderCorrelationID)
			if id == "" {
				id = uuid.New().String()
			}
			c.Set(contextKeyCorrelation, id)
			c.Response().Header().Set(HeaderCorrelationID, id)
			return next(c)
		}
	}
}

// RequireRole rejects callers whose authority set lacks the role.
func RequireRole(role string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			roles, ok := c.Get(contextKeyRoles).(mapset.Set[string])
			if !ok || !roles.Contains(role) {
				return errorz.ErrForbidden
			}
			return next(c)
		}
	}
}

// UserID extracts the authenticated subject id from the context.
func UserID(c echo.Context) (string, bool) {
	id, ok := c.Get(contextKeyUserID).(string)
	return id, ok && id != ""
}

// Email extracts the authenticated caller's email from the context.
func Email(c echo.Context) (string, bool) {
	email, ok := c.Get(contextKeyEmail).(string)
	return email, ok
}

// CorrelationID extracts the request's correlation id from the context.
func CorrelationID(c echo.Context) string {
	id, _ := c.Get(contextKeyCorrelation).(string)
	return id
}
