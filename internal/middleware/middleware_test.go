package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"progress_tracker/internal/domain"
	"progress_tracker/internal/utils"
)

const secret = "test-secret"

func init() {
	gin.SetMode(gin.TestMode)
}

func protected() *gin.Engine {
	r := gin.New()
	r.Use(JWTAuthMiddleware(secret))
	r.GET("/protected", func(c *gin.Context) {
		id, _ := UserID(c)
		c.String(http.StatusOK, id)
	})
	return r
}

func do(r http.Handler, header string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestJWTAuth_MissingToken(t *testing.T) {
	rec := do(protected(), "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"error":"Missing token"}`, rec.Body.String())
}

func TestJWTAuth_NotBearer(t *testing.T) {
	tok, err := utils.GenerateJWT("user-1", "a@example.com", secret, time.Hour)
	require.NoError(t, err)

	rec := do(protected(), tok)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJWTAuth_InvalidToken(t *testing.T) {
	rec := do(protected(), "Bearer garbage")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"error":"Invalid token"}`, rec.Body.String())
}

func TestJWTAuth_ValidToken(t *testing.T) {
	tok, err := utils.GenerateJWT("user-1", "a@example.com", secret, time.Hour)
	require.NoError(t, err)

	rec := do(protected(), "Bearer "+tok)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "user-1", rec.Body.String())
}

type fakeUsers map[string]domain.User

func (f fakeUsers) FindByID(_ context.Context, id string) (*domain.User, error) {
	u, ok := f[id]
	if !ok {
		return nil, assert.AnError
	}
	return &u, nil
}

func TestAdminOnly(t *testing.T) {
	users := fakeUsers{
		"admin-1": {ID: "admin-1", Role: domain.RoleAdmin},
		"user-1":  {ID: "user-1", Role: domain.RoleUser},
	}
	r := gin.New()
	r.Use(JWTAuthMiddleware(secret), AdminOnlyMiddleware(users))
	r.GET("/protected", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	tests := []struct {
		name   string
		userID string
		want   int
	}{
		{"admin", "admin-1", http.StatusNoContent},
		{"regular user", "user-1", http.StatusForbidden},
		{"unknown user", "ghost", http.StatusForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tok, err := utils.GenerateJWT(tt.userID, "x@example.com", secret, time.Hour)
			require.NoError(t, err)
			assert.Equal(t, tt.want, do(r, "Bearer "+tok).Code)
		})
	}
}

func TestCORS_Preflight(t *testing.T) {
	r := gin.New()
	r.Use(CORSMiddleware("http://localhost:5173"))
	r.PUT("/api/progress", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodOptions, "/api/progress", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", http.MethodPut)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "http://localhost:5173", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", rec.Header().Get("Access-Control-Allow-Credentials"))
}
