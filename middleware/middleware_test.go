package middleware

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"houses-api/apperr"
	"houses-api/entities"
	"houses-api/logger"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeAuth map[string]*entities.User

func (f fakeAuth) Authenticate(_ context.Context, token string) (*entities.User, error) {
	if u, ok := f[token]; ok {
		return u, nil
	}
	return nil, apperr.Unauthorized("Not authorized to access this route")
}

func newRouter() *gin.Engine {
	am := NewAuthMiddleware(logger.Nop(), fakeAuth{
		"pub":  {ID: "u1", Role: entities.RolePublisher},
		"user": {ID: "u2", Role: entities.RoleUser},
	})
	r := gin.New()
	r.POST("/houses", am.Protect(), am.Authorize(entities.RolePublisher, entities.RoleAdmin), func(c *gin.Context) {
		actor, _ := ActorFrom(c)
		c.JSON(http.StatusOK, gin.H{"actor": actor.ID})
	})
	return r
}

func serve(r http.Handler, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/houses", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestProtectAndAuthorize(t *testing.T) {
	r := newRouter()

	rec := serve(r, "pub")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"actor":"u1"}`, rec.Body.String())

	rec = serve(r, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Not authorized to access this route", body["error"])

	rec = serve(r, "bogus")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = serve(r, "user")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "User role user is not authorized to access this route")
}

func TestExtractToken(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	c.Request.Header.Set("Authorization", "bearer abc")
	assert.Equal(t, "abc", extractToken(c))

	c.Request.Header.Set("Authorization", "Basic abc")
	assert.Equal(t, "", extractToken(c))
}

func TestCORSAllowsConfiguredOrigin(t *testing.T) {
	r := gin.New()
	r.Use(CORS([]string{"https://houses.example.com"}))
	r.GET("/api/v1/houses", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/houses", nil)
	req.Header.Set("Origin", "https://houses.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "https://houses.example.com", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestMetricsExposesRequestCounts(t *testing.T) {
	m := NewMetrics()
	r := gin.New()
	r.Use(m.Middleware())
	r.GET("/api/v1/houses", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/metrics", gin.WrapH(m.Handler()))

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/v1/houses", nil))

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	out, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(out), `houses_http_requests_total{method="GET",route="/api/v1/houses",status="200"} 1`))
}
