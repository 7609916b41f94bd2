package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"islands/internal/db/dbtest"
	"islands/internal/domain"
	"islands/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadUser(t *testing.T) {
	gdb := dbtest.Open(t)
	user := &domain.User{FirstName: "Jane", LastName: "Doe", Email: "jane@example.com", Password: "x"}
	require.NoError(t, gdb.Create(user).Error)

	s := newSession()
	r := gin.New()
	r.GET("/me", s.RequireAuth(), LoadUser(gdb, s), func(c *gin.Context) {
		u := User(c)
		if u == nil {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.String(http.StatusOK, u.Email)
	})

	request := func(id uint) *httptest.ResponseRecorder {
		token, err := utils.GenerateSessionToken(id, testSecret, time.Hour)
		require.NoError(t, err)
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.AddCookie(&http.Cookie{Name: "islands", Value: token})
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		return rec
	}

	t.Run("existing user", func(t *testing.T) {
		rec := request(user.ID)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "jane@example.com", rec.Body.String())
	})

	t.Run("deleted user", func(t *testing.T) {
		rec := request(user.ID + 100)
		assert.Equal(t, http.StatusFound, rec.Code)
		assert.Equal(t, "/", rec.Header().Get("Location"))
		ck := sessionCookie(t, rec, "islands")
		require.NotNil(t, ck)
		assert.Empty(t, ck.Value)
	})
}

func TestUser_MissingFromContext(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	assert.Nil(t, User(c))
	_, ok := UserID(c)
	assert.False(t, ok)
}
