package api

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"islands/internal/config"
	"islands/internal/db/dbtest"
	"islands/internal/domain"
	"islands/internal/middleware"
	"islands/internal/service"
	"islands/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const testSecret = "test-secret-long-enough-for-hs256"

func init() {
	gin.SetMode(gin.TestMode)
}

type testServer struct {
	router    *gin.Engine
	db        *gorm.DB
	publicDir string
	session   *middleware.Session
}

func newTestServer(t *testing.T, rdb *redis.Client) *testServer {
	t.Helper()
	gdb := dbtest.Open(t)
	cfg := &config.Config{CookieName: "islands", CookiePassword: testSecret, PublicDir: t.TempDir(), GoogleAPIKey: "maps-key"}
	session := &middleware.Session{CookieName: cfg.CookieName, Secret: cfg.CookiePassword, TTL: utils.SessionTTL}
	r, err := NewRouter(Deps{Config: cfg, DB: gdb, Redis: rdb, Session: session})
	require.NoError(t, err)
	return &testServer{router: r, db: gdb, publicDir: cfg.PublicDir, session: session}
}

// login stores a user and returns a valid session cookie for it
func (s *testServer) login(t *testing.T) (*domain.User, *http.Cookie) {
	t.Helper()
	accounts := service.NewAccounts(s.db).WithHashCost(bcrypt.MinCost)
	user, err := accounts.Signup(context.Background(), service.AccountInput{
		FirstName: "jane", LastName: "doe", Email: "jane@example.com", Password: "secret",
	})
	require.NoError(t, err)
	token, err := utils.GenerateSessionToken(user.ID, testSecret, time.Hour)
	require.NoError(t, err)
	return user, &http.Cookie{Name: "islands", Value: token}
}

func (s *testServer) do(req *http.Request, cookie *http.Cookie) *httptest.ResponseRecorder {
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func (s *testServer) get(path string, cookie *http.Cookie) *httptest.ResponseRecorder {
	return s.do(httptest.NewRequest(http.MethodGet, path, nil), cookie)
}

func (s *testServer) postForm(path string, form url.Values, cookie *http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return s.do(req, cookie)
}

type upload struct {
	name string
	data []byte
}

func (s *testServer) postMultipart(t *testing.T, path string, fields map[string]string, file *upload, cookie *http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	if file != nil {
		fw, err := w.CreateFormFile("file", file.name)
		require.NoError(t, err)
		_, err = fw.Write(file.data)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	req := httptest.NewRequest(http.MethodPost, path, &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return s.do(req, cookie)
}

func cookieNamed(rec *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == name {
			return ck
		}
	}
	return nil
}
