package handler_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"festago/backend/internal/api/handler"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func eventRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	events := r.Group("/events", handler.ServiceAuth())
	events.POST("/review", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return r
}

// TestServiceAuthGuardsEventRoutes: the scoring-event routes only trust the
// actor ids in their bodies behind the service credential, so an end-user
// client cannot pump review or booking events about itself.
func TestServiceAuthGuardsEventRoutes(t *testing.T) {
	t.Setenv("SERVICE_TOKEN", "svc-secret")
	r := eventRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/events/review", nil)
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/events/review", nil)
	req.Header.Set("X-Service-Token", "wrong")
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/events/review", nil)
	req.Header.Set("X-Service-Token", "svc-secret")
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

// TestServiceAuthDeniesWhenUnconfigured: with no SERVICE_TOKEN set, nothing
// gets through — the gate fails closed.
func TestServiceAuthDeniesWhenUnconfigured(t *testing.T) {
	t.Setenv("SERVICE_TOKEN", "")
	r := eventRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/events/review", nil)
	req.Header.Set("X-Service-Token", "")
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

// TestTokenMintingRequiresServiceCredential: a caller-chosen actor_id needs
// the service credential; anonymous callers only ever get a token for a
// fresh id, so no client can assume another actor's identity.
func TestTokenMintingRequiresServiceCredential(t *testing.T) {
	t.Setenv("SERVICE_TOKEN", "svc-secret")
	gin.SetMode(gin.TestMode)
	h := handler.NewHandler(nil, nil, nil, nil, nil)
	r := gin.New()
	r.GET("/token", h.GetActorToken)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/token?actor_id=victim", nil)
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/token?actor_id=real-user-1", nil)
	req.Header.Set("X-Service-Token", "svc-secret")
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "real-user-1", resp["actor_id"])
	assert.NotEmpty(t, resp["token"])

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/token", nil)
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp["actor_id"])
	assert.NotEqual(t, "victim", resp["actor_id"])
}
