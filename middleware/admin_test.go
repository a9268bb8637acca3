package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/talemaro/wheel-backend/config"
	"github.com/talemaro/wheel-backend/services"
)

const testAdminToken = "gate-test-token"

func newGatedRouter(t *testing.T) (*gin.Engine, *services.SessionService) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, config.Migrate(db))

	sessions := services.NewSessionService(db, testAdminToken, time.Hour)

	r := gin.New()
	r.POST("/protected", AdminOnly(sessions), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return r, sessions
}

func perform(r *gin.Engine, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/protected", nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAdminOnlyRejectsMissingCredentials(t *testing.T) {
	r, _ := newGatedRouter(t)

	w := perform(r, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAdminOnlyAcceptsStaticToken(t *testing.T) {
	r, _ := newGatedRouter(t)

	w := perform(r, map[string]string{HeaderAdminToken: testAdminToken})
	assert.Equal(t, http.StatusOK, w.Code)

	w = perform(r, map[string]string{HeaderAdminToken: "forged"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAdminOnlyAcceptsAndExtendsSession(t *testing.T) {
	r, sessions := newGatedRouter(t)

	session, err := sessions.Issue(testAdminToken)
	require.NoError(t, err)

	w := perform(r, map[string]string{HeaderAdminSession: session.ID})
	assert.Equal(t, http.StatusOK, w.Code)

	// Passing the gate counts as use: the expiry moved forward.
	touched, err := sessions.Touch(session.ID)
	require.NoError(t, err)
	assert.True(t, !touched.ExpiresAt.Before(session.ExpiresAt))
}

func TestAdminOnlyRejectsRevokedSession(t *testing.T) {
	r, sessions := newGatedRouter(t)

	session, err := sessions.Issue(testAdminToken)
	require.NoError(t, err)
	require.NoError(t, sessions.Revoke(session.ID))

	w := perform(r, map[string]string{HeaderAdminSession: session.ID})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
