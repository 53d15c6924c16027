package controller

import (
	"crypto/sha256"
	"crypto/subtle"
	"net/http"

	errors "github.com/Laisky/errors/v2"
	gconfig "github.com/Laisky/go-config/v2"
	"github.com/Laisky/zap"
	"github.com/gin-gonic/gin"

	"github.com/video-club/video-club-api/internal/web/catalog/dto"
	"github.com/video-club/video-club-api/internal/web/catalog/model"
	"github.com/video-club/video-club-api/library/jwt"
)

const (
	sessionCookie = "admin_session"
	// adminPath scopes the session cookie to the admin surface only.
	adminPath = "/admin"
)

// credentialsMatch compares the submitted credentials against the
// configured ones in constant time. Hashing first keeps the comparison
// length-independent.
func credentialsMatch(cfg *dto.LoginCfg) bool {
	wantUser := gconfig.Shared.GetString("settings.admin.username")
	wantPwd := gconfig.Shared.GetString("settings.admin.password")
	if wantUser == "" || wantPwd == "" {
		return false
	}

	gotUser := sha256.Sum256([]byte(cfg.Username))
	gotPwd := sha256.Sum256([]byte(cfg.Password))
	expectedUser := sha256.Sum256([]byte(wantUser))
	expectedPwd := sha256.Sum256([]byte(wantPwd))

	userOK := subtle.ConstantTimeCompare(gotUser[:], expectedUser[:])
	pwdOK := subtle.ConstantTimeCompare(gotPwd[:], expectedPwd[:])
	return userOK&pwdOK == 1
}

// Login handles POST /admin/api/login: validates the configured admin
// credentials and sets the session cookie.
func (c *Controller) Login(ctx *gin.Context) {
	cfg := new(dto.LoginCfg)
	if err := bindJSON(ctx, cfg); err != nil {
		c.abortErr(ctx, err)
		return
	}

	if !credentialsMatch(cfg) {
		c.logger.Info("login rejected", zap.String("username", cfg.Username))
		c.abortErr(ctx, errors.WithStack(model.ErrInvalidCredentials))
		return
	}

	token, err := jwt.Sign(cfg.Username)
	if err != nil {
		c.abortErr(ctx, errors.Wrap(err, "sign session token"))
		return
	}

	secure := !gconfig.Shared.GetBool("debug")
	ctx.SetCookie(sessionCookie, token,
		int(jwt.SessionTTL.Seconds()), adminPath, "", secure, true)

	c.logger.Info("admin logged in", zap.String("username", cfg.Username))
	ctx.JSON(http.StatusOK, gin.H{"success": true})
}

// SessionCheck handles GET /admin/api/login: reports whether the
// request carries a live session.
func (c *Controller) SessionCheck(ctx *gin.Context) {
	token, err := ctx.Cookie(sessionCookie)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"authenticated": false})
		return
	}

	claims, err := jwt.Verify(token)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"authenticated": false})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"authenticated": true,
		"username":      claims.Username,
	})
}

// Logout handles POST /admin/api/logout: drops the session cookie.
func (c *Controller) Logout(ctx *gin.Context) {
	secure := !gconfig.Shared.GetBool("debug")
	ctx.SetCookie(sessionCookie, "", -1, adminPath, "", secure, true)
	ctx.JSON(http.StatusOK, gin.H{"success": true})
}

// AuthRequired guards the admin api: requests without a valid session
// cookie are answered 401. Redirecting belongs to the frontend.
func (c *Controller) AuthRequired(ctx *gin.Context) {
	token, err := ctx.Cookie(sessionCookie)
	if err != nil {
		ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	if _, err = jwt.Verify(token); err != nil {
		ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	ctx.Next()
}
