package middlewares

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSecret = []byte("test-secret")

func signToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(testSecret)
	require.NoError(t, err)
	return token
}

func runRequest(t *testing.T, req *http.Request, chain ...echo.MiddlewareFunc) (echo.Context, *httptest.ResponseRecorder, error) {
	t.Helper()
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := func(echo.Context) error { return nil }
	for i := len(chain) - 1; i >= 0; i-- {
		handler = chain[i](handler)
	}
	return c, rec, handler(c)
}

func TestIdentityHeadersStripsSpoofedValues(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/matches", nil)
	req.Header.Set(HeaderUserID, "spoofed-admin")
	req.Header.Set(HeaderUserEmail, "spoof@evil.test")

	c, _, err := runRequest(t, req, IdentityHeaders())
	require.NoError(t, err)

	assert.Empty(t, c.Request().Header.Get(HeaderUserID))
	assert.Empty(t, c.Request().Header.Get(HeaderUserEmail))
}

func TestIdentityHeadersInjectsValidatedPrincipal(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, jwt.MapClaims{
		"sub":   "u1",
		"email": "a@b.com",
	}))
	req.Header.Set(HeaderUserID, "spoofed-admin")

	c, _, err := runRequest(t, req, JWTAuth(testSecret, "qypym-backend"), IdentityHeaders())
	require.NoError(t, err)

	assert.Equal(t, "u1", c.Request().Header.Get(HeaderUserID))
	assert.Equal(t, "a@b.com", c.Request().Header.Get(HeaderUserEmail))
}

func TestJWTAuthRejectsMissingAndMangledTokens(t *testing.T) {
	for name, header := range map[string]string{
		"no header":     "",
		"not bearer":    "Basic dXNlcg==",
		"garbage token": "Bearer not.a.jwt",
	} {
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}

		_, _, err := runRequest(t, req, JWTAuth(testSecret, "qypym-backend"))
		assert.Error(t, err, name)
	}
}

func TestJWTAuthRejectsTokenWithoutSubject(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, jwt.MapClaims{"email": "a@b.com"}))

	_, _, err := runRequest(t, req, JWTAuth(testSecret, "qypym-backend"))
	assert.Error(t, err)
}

func TestCorrelationAssignsAndPropagates(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/matches", nil)
	c, rec, err := runRequest(t, req, Correlation())
	require.NoError(t, err)
	generated := CorrelationID(c)
	assert.NotEmpty(t, generated)
	assert.Equal(t, generated, rec.Header().Get(HeaderCorrelationID))

	req = httptest.NewRequest(http.MethodGet, "/matches", nil)
	req.Header.Set(HeaderCorrelationID, "corr-1")
	c, rec, err = runRequest(t, req, Correlation())
	require.NoError(t, err)
	assert.Equal(t, "corr-1", CorrelationID(c))
	assert.Equal(t, "corr-1", rec.Header().Get(HeaderCorrelationID))
}

func TestRequireRole(t *testing.T) {
	req := httptest.NewRequest(http.MethodDelete, "/admin/users/u2", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, jwt.MapClaims{
		"sub": "u1",
		"realm_access": map[string]interface{}{
			"roles": []interface{}{"admin"},
		},
	}))

	_, _, err := runRequest(t, req, JWTAuth(testSecret, "qypym-backend"), RequireRole("ROLE_ADMIN"))
	assert.NoError(t, err)

	_, _, err = runRequest(t, req, JWTAuth(testSecret, "qypym-backend"), RequireRole("ROLE_OWNER"))
	assert.Error(t, err)
}
