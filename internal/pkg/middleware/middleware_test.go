package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	jwtpkg "github.com/piresc/dispatch/internal/pkg/jwt"
	"github.com/piresc/dispatch/internal/pkg/logger"
	"github.com/piresc/dispatch/internal/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var testJWT = models.JWTConfig{Secret: "middleware-secret", Expiration: 5, Issuer: "test"}

func newEcho(mw ...echo.MiddlewareFunc) *echo.Echo {
	e := echo.New()
	handler := func(c echo.Context) error {
		actor, ok := ActorFrom(c)
		if !ok {
			return c.NoContent(http.StatusTeapot)
		}
		return c.JSON(http.StatusOK, actor)
	}
	e.GET("/", handler, mw...)
	return e
}

func TestJWTAuthMiddleware(t *testing.T) {
	token, _, err := jwtpkg.GenerateToken("rider-1", models.RoleRider, testJWT)
	require.NoError(t, err)

	tests := []struct {
		name       string
		header     string
		wantStatus int
		wantBody   string
	}{
		{name: "valid token", header: "Bearer " + token, wantStatus: http.StatusOK, wantBody: `"user_id":"rider-1"`},
		{name: "missing header", header: "", wantStatus: http.StatusUnauthorized, wantBody: "Authorization header is required"},
		{name: "bad format", header: "Basic abc", wantStatus: http.StatusUnauthorized, wantBody: "Invalid authorization format"},
		{name: "bad token", header: "Bearer nope", wantStatus: http.StatusUnauthorized, wantBody: "Invalid token"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Arrange
			e := newEcho(JWTAuthMiddleware(testJWT))
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set(echo.HeaderAuthorization, tt.header)
			}
			rec := httptest.NewRecorder()

			// Act
			e.ServeHTTP(rec, req)

			// Assert
			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.wantBody)
		})
	}
}

func TestRequireRole(t *testing.T) {
	riderToken, _, _ := jwtpkg.GenerateToken("rider-1", models.RoleRider, testJWT)
	adminToken, _, _ := jwtpkg.GenerateToken("ops-1", models.RoleAdmin, testJWT)
	e := newEcho(JWTAuthMiddleware(testJWT), RequireRole(models.RoleAdmin))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+riderToken)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+adminToken)
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireRole_WithoutAuth(t *testing.T) {
	e := newEcho(RequireRole(models.RoleAdmin))
	rec := httptest.NewRecorder()

	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestPanicRecoveryWithZapMiddleware(t *testing.T) {
	// Arrange
	var logBuffer bytes.Buffer
	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
		zapcore.AddSync(&logBuffer),
		zapcore.DebugLevel,
	)
	zl := &logger.ZapLogger{Logger: zap.New(core)}

	e := echo.New()
	e.Use(PanicRecoveryWithZapMiddleware(zl))
	e.GET("/panic", func(c echo.Context) error { panic("dispatch exploded") })
	req := httptest.NewRequest(http.MethodGet, "/panic", nil)
	req.Header.Set(echo.HeaderXRequestID, "req-42")
	rec := httptest.NewRecorder()

	// Act
	e.ServeHTTP(rec, req)

	// Assert
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "req-42")
	logs := logBuffer.String()
	assert.Contains(t, logs, "Panic recovered during request processing")
	assert.Contains(t, logs, "dispatch exploded")
	assert.Contains(t, logs, "stack_trace")
}

func TestPanicRecoveryWithZapMiddleware_RequiresLogger(t *testing.T) {
	assert.Panics(t, func() { PanicRecoveryWithZapMiddleware(nil) })
}
