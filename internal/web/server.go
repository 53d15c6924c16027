// Package web gin server
package web

import (
	"net/http"
	"net/url"
	"strings"

	ginMw "github.com/Laisky/gin-middlewares/v7"
	gconfig "github.com/Laisky/go-config/v2"
	"github.com/Laisky/zap"
	"github.com/gin-gonic/gin"

	"github.com/video-club/video-club-api/internal/web/catalog/controller"
	"github.com/video-club/video-club-api/library/log"
)

var server = gin.New()

// RunServer mounts the catalog routes and blocks serving http.
func RunServer(addr string, ctl *controller.Controller) {
	server.Use(
		gin.Recovery(),
		ginMw.NewLoggerMiddleware(
			ginMw.WithLoggerMwColored(),
			ginMw.WithLevel(log.Logger.Level().String()),
			ginMw.WithLogger(log.Logger.Named("gin")),
		),
		allowCORS,
	)
	if !gconfig.Shared.GetBool("debug") {
		gin.SetMode(gin.ReleaseMode)
	}

	if err := ginMw.EnableMetric(server); err != nil {
		log.Logger.Panic("enable metric server", zap.Error(err))
	}

	server.Any("/health", func(ctx *gin.Context) {
		ctx.String(http.StatusOK, "hello, world")
	})

	api := server.Group("/api")
	{
		api.GET("/persons", ctl.ListPersons)
		api.GET("/person/:personId", ctl.GetPerson)
		api.GET("/person/:personId/movies", ctl.ListPersonMovies)
		api.GET("/movies", ctl.DumpMovies)
		api.GET("/movie/:movieId", ctl.GetMovieDetail)
		api.GET("/movie/:movieId/recommendations", ctl.MovieRecommendations)
		api.GET("/popular-movies", ctl.PopularMovies)
	}

	admin := server.Group("/admin/api")
	{
		admin.POST("/login", ctl.Login)
		admin.GET("/login", ctl.SessionCheck)
		admin.POST("/logout", ctl.Logout)

		guarded := admin.Group("", ctl.AuthRequired)
		{
			guarded.GET("/movies", ctl.AdminListMovies)
			guarded.POST("/movies", ctl.AdminCreateMovie)
			guarded.GET("/movies/search", ctl.AdminSearchMovies)
			guarded.GET("/movie/:movieId", ctl.AdminGetMovie)
			guarded.PUT("/movie/:movieId", ctl.AdminUpdateMovie)
			guarded.DELETE("/movie/:movieId", ctl.AdminDeleteMovie)

			guarded.GET("/persons", ctl.AdminListPersons)
			guarded.POST("/persons", ctl.AdminCreatePerson)
			guarded.GET("/person/:personId", ctl.AdminGetPerson)
			guarded.PUT("/person/:personId", ctl.AdminUpdatePerson)
			guarded.DELETE("/person/:personId", ctl.AdminDeletePerson)

			guarded.GET("/person/:personId/movies", ctl.AdminListPersonMovies)
			guarded.POST("/person/:personId/movies", ctl.AdminLinkMovie)
			guarded.DELETE("/person/:personId/movies", ctl.AdminUnlinkMovie)

			guarded.GET("/person/:personId/fetch-movies-from-youtube", ctl.AdminFetchMoviesFromYoutube)
			guarded.POST("/person/:personId/import-movies", ctl.AdminImportMovies)
		}
	}

	log.Logger.Info("listening on http", zap.String("addr", addr))
	log.Logger.Panic("httpServer exit", zap.Error(server.Run(addr)))
}

func allowCORS(ctx *gin.Context) {
	origin := ctx.Request.Header.Get("Origin")
	allowedOrigin := ""

	if origin != "" {
		parsedOriginURL, err := url.Parse(origin)
		if err == nil {
			host := strings.ToLower(parsedOriginURL.Hostname())
			if host == "localhost" || host == "127.0.0.1" ||
				strings.HasSuffix(host, ".video-club.app") || host == "video-club.app" {
				allowedOrigin = origin
			}
		}
	}

	if allowedOrigin != "" {
		ctx.Header("Access-Control-Allow-Origin", allowedOrigin)
		ctx.Header("Access-Control-Allow-Credentials", "true")
		ctx.Header("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS, HEAD")
		ctx.Header("Access-Control-Allow-Headers", "Content-Type, Authorization, Accept, Origin, X-Requested-With")
		ctx.Header("Access-Control-Max-Age", "86400")
		ctx.Header("Vary", "Origin")

		if ctx.Request.Method == http.MethodOptions {
			ctx.AbortWithStatus(http.StatusNoContent)
			return
		}
	} else if origin != "" && ctx.Request.Method == http.MethodOptions {
		// Preflight from a disallowed origin.
		ctx.AbortWithStatus(http.StatusForbidden)
		return
	}

	ctx.Next()
}
