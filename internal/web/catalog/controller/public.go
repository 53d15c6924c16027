package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ListPersons handles GET /api/persons.
func (c *Controller) ListPersons(ctx *gin.Context) {
	page, limit := pageQuery(ctx)

	result, err := c.svc.ListPersons(ctx.Request.Context(), page, limit)
	if err != nil {
		c.abortErr(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, result)
}

// GetPerson handles GET /api/person/:personId.
func (c *Controller) GetPerson(ctx *gin.Context) {
	person, err := c.svc.GetPerson(ctx.Request.Context(), ctx.Param("personId"))
	if err != nil {
		c.abortErr(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, person)
}

// ListPersonMovies handles GET /api/person/:personId/movies.
func (c *Controller) ListPersonMovies(ctx *gin.Context) {
	page, limit := pageQuery(ctx)

	result, err := c.svc.ListPersonMovies(ctx.Request.Context(),
		ctx.Param("personId"), localeQuery(ctx), page, limit)
	if err != nil {
		c.abortErr(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, result)
}

// DumpMovies handles GET /api/movies, the full public movie dump.
func (c *Controller) DumpMovies(ctx *gin.Context) {
	movies, err := c.svc.DumpMovies(ctx.Request.Context())
	if err != nil {
		c.abortErr(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, movies)
}

// GetMovieDetail handles GET /api/movie/:movieId.
func (c *Controller) GetMovieDetail(ctx *gin.Context) {
	detail, err := c.svc.GetMovieDetail(ctx.Request.Context(),
		ctx.Param("movieId"), localeQuery(ctx))
	if err != nil {
		c.abortErr(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, detail)
}

// MovieRecommendations handles GET /api/movie/:movieId/recommendations.
func (c *Controller) MovieRecommendations(ctx *gin.Context) {
	persons, err := c.svc.MovieRecommendations(ctx.Request.Context(), ctx.Param("movieId"))
	if err != nil {
		c.abortErr(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, persons)
}

// PopularMovies handles GET /api/popular-movies.
func (c *Controller) PopularMovies(ctx *gin.Context) {
	result, err := c.svc.PopularMovies(ctx.Request.Context(), localeQuery(ctx))
	if err != nil {
		c.abortErr(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, result)
}
