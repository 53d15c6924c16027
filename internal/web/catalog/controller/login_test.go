package controller

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	gconfig "github.com/Laisky/go-config/v2"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/video-club/video-club-api/library/jwt"
	"github.com/video-club/video-club-api/library/log"
)

func setupLoginTest(t *testing.T) *Controller {
	t.Helper()
	gin.SetMode(gin.TestMode)

	require.NoError(t, jwt.Initialize([]byte("test-secret")))
	gconfig.Shared.Set("settings.admin.username", "admin")
	gconfig.Shared.Set("settings.admin.password", "hunter2")
	gconfig.Shared.Set("debug", true)

	return New(log.Logger, nil)
}

func performLogin(t *testing.T, ctl *Controller, body string) *httptest.ResponseRecorder {
	t.Helper()

	w := httptest.NewRecorder()
	ctx, _ := gin.CreateTestContext(w)
	ctx.Request = httptest.NewRequest(http.MethodPost, "/admin/api/login",
		strings.NewReader(body))
	ctx.Request.Header.Set("Content-Type", "application/json")

	ctl.Login(ctx)
	return w
}

func sessionCookieOf(t *testing.T, w *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()

	for _, cookie := range w.Result().Cookies() {
		if cookie.Name == sessionCookie {
			return cookie
		}
	}

	return nil
}

func TestLogin(t *testing.T) {
	ctl := setupLoginTest(t)

	w := performLogin(t, ctl, `{"username":"admin","password":"hunter2"}`)
	require.Equal(t, http.StatusOK, w.Code)

	cookie := sessionCookieOf(t, w)
	require.NotNil(t, cookie)
	require.NotEmpty(t, cookie.Value)
	require.Equal(t, adminPath, cookie.Path)
	require.True(t, cookie.HttpOnly)
	require.Equal(t, int(jwt.SessionTTL.Seconds()), cookie.MaxAge)

	claims, err := jwt.Verify(cookie.Value)
	require.NoError(t, err)
	require.Equal(t, "admin", claims.Username)
}

func TestLoginInvalidCredentials(t *testing.T) {
	ctl := setupLoginTest(t)

	cases := []string{
		`{"username":"admin","password":"wrong"}`,
		`{"username":"someone","password":"hunter2"}`,
		`{"username":"","password":""}`,
	}
	for _, body := range cases {
		w := performLogin(t, ctl, body)
		require.Equal(t, http.StatusUnauthorized, w.Code, body)
		require.Nil(t, sessionCookieOf(t, w), body)
	}
}

func TestLoginMalformedBody(t *testing.T) {
	ctl := setupLoginTest(t)

	w := performLogin(t, ctl, `not json`)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSessionCheck(t *testing.T) {
	ctl := setupLoginTest(t)

	token, err := jwt.Sign("admin")
	require.NoError(t, err)

	t.Run("with session", func(t *testing.T) {
		w := httptest.NewRecorder()
		ctx, _ := gin.CreateTestContext(w)
		ctx.Request = httptest.NewRequest(http.MethodGet, "/admin/api/login", nil)
		ctx.Request.AddCookie(&http.Cookie{Name: sessionCookie, Value: token})

		ctl.SessionCheck(ctx)
		require.Equal(t, http.StatusOK, w.Code)
		require.Contains(t, w.Body.String(), `"authenticated":true`)
		require.Contains(t, w.Body.String(), `"username":"admin"`)
	})

	t.Run("without session", func(t *testing.T) {
		w := httptest.NewRecorder()
		ctx, _ := gin.CreateTestContext(w)
		ctx.Request = httptest.NewRequest(http.MethodGet, "/admin/api/login", nil)

		ctl.SessionCheck(ctx)
		require.Equal(t, http.StatusUnauthorized, w.Code)
		require.Contains(t, w.Body.String(), `"authenticated":false`)
	})

	t.Run("garbage token", func(t *testing.T) {
		w := httptest.NewRecorder()
		ctx, _ := gin.CreateTestContext(w)
		ctx.Request = httptest.NewRequest(http.MethodGet, "/admin/api/login", nil)
		ctx.Request.AddCookie(&http.Cookie{Name: sessionCookie, Value: "garbage"})

		ctl.SessionCheck(ctx)
		require.Equal(t, http.StatusUnauthorized, w.Code)
		require.Contains(t, w.Body.String(), `"authenticated":false`)
	})
}

func TestAuthRequired(t *testing.T) {
	ctl := setupLoginTest(t)

	router := gin.New()
	router.GET("/admin/api/persons", ctl.AuthRequired, func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"ok": true})
	})

	t.Run("no cookie", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin/api/persons", nil))
		require.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("bad token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/admin/api/persons", nil)
		req.AddCookie(&http.Cookie{Name: sessionCookie, Value: "nope"})

		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		require.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("valid session", func(t *testing.T) {
		token, err := jwt.Sign("admin")
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/admin/api/persons", nil)
		req.AddCookie(&http.Cookie{Name: sessionCookie, Value: token})

		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		require.Equal(t, http.StatusOK, w.Code)
	})
}

func TestLogout(t *testing.T) {
	ctl := setupLoginTest(t)

	w := httptest.NewRecorder()
	ctx, _ := gin.CreateTestContext(w)
	ctx.Request = httptest.NewRequest(http.MethodPost, "/admin/api/logout", nil)

	ctl.Logout(ctx)
	require.Equal(t, http.StatusOK, w.Code)

	cookie := sessionCookieOf(t, w)
	require.NotNil(t, cookie)
	require.Empty(t, cookie.Value)
	require.Negative(t, cookie.MaxAge)
}
