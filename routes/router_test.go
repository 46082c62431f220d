package routes

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/elvis-tamrakar/productivity-buddy/config"
	"github.com/elvis-tamrakar/productivity-buddy/models"
)

func init() {
	config.SetForTesting(config.AppConfig{
		JWTSecret:          "test-secret",
		JWTExpiryHours:     24,
		RateLimitPerMinute: 1000,
		AllowedOrigins:     []string{"*"},
		GinMode:            "test",
		RedisHost:          "127.0.0.1",
		RedisPort:          1,
	})
}

func newTestServer(t *testing.T) *gin.Engine {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(
		&models.User{}, &models.Goal{}, &models.Checkpoint{}, &models.BuddyRequest{},
	))
	return SetupRouter(db)
}

type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func doJSON(t *testing.T, r *gin.Engine, method, path, token string, body interface{}) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var env envelope
	if len(w.Body.Bytes()) > 0 {
		_ = json.Unmarshal(w.Body.Bytes(), &env)
	}
	return w, env
}

func registerAndLogin(t *testing.T, r *gin.Engine, email, username string) (int64, string) {
	t.Helper()
	w, env := doJSON(t, r, http.MethodPost, "/api/v1/users/register", "", gin.H{
		"email": email, "username": username, "password": "secret123",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var reg struct {
		User models.User `json:"user"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &reg))

	w, env = doJSON(t, r, http.MethodPost, "/api/v1/users/login", "", gin.H{
		"email": email, "password": "secret123",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var login struct {
		Token string      `json:"token"`
		User  models.User `json:"user"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &login))
	require.NotEmpty(t, login.Token)
	return reg.User.ID, login.Token
}

func TestHealth(t *testing.T) {
	r := newTestServer(t)
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	r := newTestServer(t)
	w, _ := doJSON(t, r, http.MethodGet, "/api/v1/users/1", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	w, _ = doJSON(t, r, http.MethodGet, "/api/v1/buddies/pending", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRegisterLoginMe(t *testing.T) {
	r := newTestServer(t)
	id, token := registerAndLogin(t, r, "alice@example.com", "alice")

	w, env := doJSON(t, r, http.MethodGet, "/api/v1/users/me", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var me struct {
		User models.User `json:"user"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &me))
	assert.Equal(t, id, me.User.ID)
	assert.Equal(t, "alice@example.com", me.User.Email)

	// Password hash never leaves the API.
	assert.NotContains(t, w.Body.String(), "password")

	w, _ = doJSON(t, r, http.MethodPost, "/api/v1/users/login", "", gin.H{
		"email": "alice@example.com", "password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLogoutRevokesToken(t *testing.T) {
	r := newTestServer(t)
	_, token := registerAndLogin(t, r, "alice@example.com", "alice")

	w, _ := doJSON(t, r, http.MethodPost, "/api/v1/users/logout", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w, _ = doJSON(t, r, http.MethodGet, "/api/v1/users/me", token, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Logging back in, even within the same second, must hand out a
	// fresh token that is not caught by the earlier revocation.
	w, env := doJSON(t, r, http.MethodPost, "/api/v1/users/login", "", gin.H{
		"email": "alice@example.com", "password": "secret123",
	})
	require.Equal(t, http.StatusOK, w.Code)
	var login struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &login))
	require.NotEqual(t, token, login.Token)

	w, _ = doJSON(t, r, http.MethodGet, "/api/v1/users/me", login.Token, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestGoalCheckpointFlow(t *testing.T) {
	r := newTestServer(t)
	id, token := registerAndLogin(t, r, "alice@example.com", "alice")

	w, env := doJSON(t, r, http.MethodPost, fmt.Sprintf("/api/v1/goals/user/%d", id), token, gin.H{
		"title": "ship the feature", "start_date": "2026-01-01", "end_date": "2026-12-31",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var created struct {
		Goal models.Goal `json:"goal"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &created))
	goalID := created.Goal.ID
	assert.Equal(t, models.GoalStatusActive, created.Goal.Status)
	assert.Zero(t, created.Goal.Progress)

	var cpIDs []int64
	for _, title := range []string{"write the code", "write the tests"} {
		w, env = doJSON(t, r, http.MethodPost, fmt.Sprintf("/api/v1/goals/%d/checkpoints", goalID), token, gin.H{
			"title": title, "due_date": "2026-06-30",
		})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		var added struct {
			Checkpoint models.Checkpoint `json:"checkpoint"`
		}
		require.NoError(t, json.Unmarshal(env.Data, &added))
		cpIDs = append(cpIDs, added.Checkpoint.ID)
	}

	fetchProgress := func() int {
		w, env = doJSON(t, r, http.MethodGet, fmt.Sprintf("/api/v1/goals/%d", goalID), token, nil)
		require.Equal(t, http.StatusOK, w.Code)
		var got struct {
			Goal models.Goal `json:"goal"`
		}
		require.NoError(t, json.Unmarshal(env.Data, &got))
		return got.Goal.Progress
	}

	assert.Equal(t, 0, fetchProgress())

	w, _ = doJSON(t, r, http.MethodPost, fmt.Sprintf("/api/v1/checkpoints/%d/complete", cpIDs[0]), token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 50, fetchProgress())

	w, _ = doJSON(t, r, http.MethodPost, fmt.Sprintf("/api/v1/checkpoints/%d/complete", cpIDs[1]), token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 100, fetchProgress())

	w, _ = doJSON(t, r, http.MethodDelete, fmt.Sprintf("/api/v1/checkpoints/%d", cpIDs[1]), token, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, 100, fetchProgress())

	w, _ = doJSON(t, r, http.MethodDelete, fmt.Sprintf("/api/v1/goals/%d", goalID), token, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	w, _ = doJSON(t, r, http.MethodGet, fmt.Sprintf("/api/v1/goals/%d", goalID), token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGoalOwnershipEnforced(t *testing.T) {
	r := newTestServer(t)
	aliceID, aliceToken := registerAndLogin(t, r, "alice@example.com", "alice")
	_, bobToken := registerAndLogin(t, r, "bob@example.com", "bob")

	w, env := doJSON(t, r, http.MethodPost, fmt.Sprintf("/api/v1/goals/user/%d", aliceID), aliceToken, gin.H{
		"title": "private goal",
	})
	require.Equal(t, http.StatusOK, w.Code)
	var created struct {
		Goal models.Goal `json:"goal"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &created))

	// Bob cannot create goals for alice or touch her goal.
	w, _ = doJSON(t, r, http.MethodPost, fmt.Sprintf("/api/v1/goals/user/%d", aliceID), bobToken, gin.H{
		"title": "intruder",
	})
	assert.Equal(t, http.StatusForbidden, w.Code)

	// Reads are open to any authenticated user, writes are owner-only.
	w, _ = doJSON(t, r, http.MethodGet, fmt.Sprintf("/api/v1/goals/%d", created.Goal.ID), bobToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w, _ = doJSON(t, r, http.MethodPut, fmt.Sprintf("/api/v1/goals/%d", created.Goal.ID), bobToken, gin.H{"title": "hijack"})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w, _ = doJSON(t, r, http.MethodDelete, fmt.Sprintf("/api/v1/goals/%d", created.Goal.ID), bobToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestBuddyFlow(t *testing.T) {
	r := newTestServer(t)
	_, aliceToken := registerAndLogin(t, r, "alice@example.com", "alice")
	bobID, bobToken := registerAndLogin(t, r, "bob@example.com", "bob")

	w, env := doJSON(t, r, http.MethodPost, "/api/v1/buddies", aliceToken, gin.H{
		"receiver_id": bobID,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var sent struct {
		Request models.BuddyRequest `json:"request"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &sent))
	assert.Equal(t, models.BuddyStatusPending, sent.Request.Status)

	// Duplicate and self requests are rejected.
	w, _ = doJSON(t, r, http.MethodPost, "/api/v1/buddies", aliceToken, gin.H{"receiver_id": bobID})
	assert.Equal(t, http.StatusConflict, w.Code)
	w, _ = doJSON(t, r, http.MethodPost, "/api/v1/buddies", bobToken, gin.H{"receiver_id": bobID})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, env = doJSON(t, r, http.MethodGet, "/api/v1/buddies/pending", bobToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var listed struct {
		Requests []models.BuddyRequest `json:"requests"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &listed))
	require.Len(t, listed.Requests, 1)

	// The sender cannot resolve their own request.
	w, _ = doJSON(t, r, http.MethodPost, fmt.Sprintf("/api/v1/buddies/%d/accept", sent.Request.ID), aliceToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w, _ = doJSON(t, r, http.MethodPost, fmt.Sprintf("/api/v1/buddies/%d/accept", sent.Request.ID), bobToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	// Resolving twice conflicts.
	w, _ = doJSON(t, r, http.MethodPost, fmt.Sprintf("/api/v1/buddies/%d/reject", sent.Request.ID), bobToken, nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	for _, token := range []string{aliceToken, bobToken} {
		w, env = doJSON(t, r, http.MethodGet, "/api/v1/buddies/accepted", token, nil)
		require.Equal(t, http.StatusOK, w.Code)
		require.NoError(t, json.Unmarshal(env.Data, &listed))
		assert.Len(t, listed.Requests, 1)
	}

	w, env = doJSON(t, r, http.MethodGet, "/api/v1/buddies/sent", aliceToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(env.Data, &listed))
	require.Len(t, listed.Requests, 1)
	assert.Equal(t, models.BuddyStatusAccepted, listed.Requests[0].Status)
}

func TestUserUpdateAndDelete(t *testing.T) {
	r := newTestServer(t)
	aliceID, aliceToken := registerAndLogin(t, r, "alice@example.com", "alice")
	_, bobToken := registerAndLogin(t, r, "bob@example.com", "bob")

	w, env := doJSON(t, r, http.MethodPut, fmt.Sprintf("/api/v1/users/%d", aliceID), aliceToken, gin.H{
		"username": "alice2",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var updated struct {
		User models.User `json:"user"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &updated))
	assert.Equal(t, "alice2", updated.User.Username)

	// Another account cannot modify or delete alice.
	w, _ = doJSON(t, r, http.MethodPut, fmt.Sprintf("/api/v1/users/%d", aliceID), bobToken, gin.H{"username": "mallory"})
	assert.Equal(t, http.StatusForbidden, w.Code)
	w, _ = doJSON(t, r, http.MethodDelete, fmt.Sprintf("/api/v1/users/%d", aliceID), bobToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w, _ = doJSON(t, r, http.MethodDelete, fmt.Sprintf("/api/v1/users/%d", aliceID), aliceToken, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w, _ = doJSON(t, r, http.MethodPost, "/api/v1/users/login", "", gin.H{
		"email": "alice@example.com", "password": "secret123",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
