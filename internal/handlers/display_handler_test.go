package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jukevox/backend/internal/middleware"
	"github.com/jukevox/backend/internal/models"
	"github.com/jukevox/backend/internal/services"
	"github.com/jukevox/backend/internal/store"
	"github.com/jukevox/backend/pkg/jwt"
)

type displayEnv struct {
	router   *gin.Engine
	sessions *services.SessionService
	queues   *services.QueueService
	auth     *services.AuthService
}

func newDisplayEnv(t *testing.T) *displayEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := testConfig()
	kv := store.NewMemoryKV()
	sessions := services.NewSessionService(kv, cfg)
	queues := services.NewQueueService(kv)
	auth := services.NewAuthService(nil, cfg)

	handler := NewDisplayHandler(sessions, queues)

	r := gin.New()
	r.GET("/api/v1/display", middleware.DisplayAuth(auth), handler.GetState)

	return &displayEnv{router: r, sessions: sessions, queues: queues, auth: auth}
}

func (e *displayEnv) get(t *testing.T, token string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/display", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func TestDisplayStateEndpoint(t *testing.T) {
	env := newDisplayEnv(t)
	ctx := context.Background()

	session, err := env.sessions.CreateSession(ctx, services.CreateSessionInput{VenueName: "The Cellar"})
	require.NoError(t, err)
	_, err = env.queues.AddRequest(ctx, session.ID, services.AddRequestInput{
		TrackID: "t:a", Track: models.Track{ID: "t:a", Title: "Song"}, RequesterID: "patron-1",
	})
	require.NoError(t, err)

	token, err := env.auth.IssueDisplayToken(session.ID)
	require.NoError(t, err)

	w := env.get(t, token)
	require.Equal(t, http.StatusOK, w.Code)

	var res struct {
		Session models.Session      `json:"session"`
		Queue   []models.QueueEntry `json:"queue"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.Equal(t, session.ID, res.Session.ID)
	require.Len(t, res.Queue, 1)
	assert.Equal(t, "t:a", res.Queue[0].TrackID)
}

func TestDisplayStateRequiresToken(t *testing.T) {
	env := newDisplayEnv(t)

	w := env.get(t, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestDisplayStateRejectsAccessToken(t *testing.T) {
	env := newDisplayEnv(t)

	// An admin bearer token is not a display token
	accessToken, err := jwt.GenerateToken("user-1", jwt.AccessToken, testConfig().JWTSecret, time.Minute)
	require.NoError(t, err)

	w := env.get(t, accessToken)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestDisplayStateDeadSession(t *testing.T) {
	env := newDisplayEnv(t)

	token, err := env.auth.IssueDisplayToken("gone")
	require.NoError(t, err)

	w := env.get(t, token)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
