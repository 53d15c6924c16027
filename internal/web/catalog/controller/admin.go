package controller

import (
	"net/http"

	errors "github.com/Laisky/errors/v2"
	"github.com/gin-gonic/gin"

	"github.com/video-club/video-club-api/internal/web/catalog/dto"
	"github.com/video-club/video-club-api/internal/web/catalog/model"
	"github.com/video-club/video-club-api/internal/web/catalog/service"
)

// bindJSON decodes the request body, mapping malformed payloads to the
// validation error class.
func bindJSON(ctx *gin.Context, out any) error {
	if err := ctx.ShouldBindJSON(out); err != nil {
		return errors.Wrap(model.ErrValidation, "malformed request body")
	}

	return nil
}

// AdminListMovies handles GET /admin/api/movies.
func (c *Controller) AdminListMovies(ctx *gin.Context) {
	page, limit := pageQuery(ctx)

	result, err := c.svc.ListMovies(ctx.Request.Context(), &service.MovieListCfg{
		Page:   page,
		Limit:  limit,
		Search: ctx.Query("search"),
	})
	if err != nil {
		c.abortErr(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, result)
}

// AdminSearchMovies handles GET /admin/api/movies/search, the link
// picker listing: same matching as the admin list, minus the movies
// already linked to the given person.
func (c *Controller) AdminSearchMovies(ctx *gin.Context) {
	page, limit := pageQuery(ctx)

	result, err := c.svc.ListMovies(ctx.Request.Context(), &service.MovieListCfg{
		Page:            page,
		Limit:           limit,
		Search:          ctx.Query("search"),
		ExcludePersonID: ctx.Query("personId"),
	})
	if err != nil {
		c.abortErr(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, result)
}

// AdminCreateMovie handles POST /admin/api/movies.
func (c *Controller) AdminCreateMovie(ctx *gin.Context) {
	cfg := new(dto.MovieCfg)
	if err := bindJSON(ctx, cfg); err != nil {
		c.abortErr(ctx, err)
		return
	}

	movie, err := c.svc.CreateMovie(ctx.Request.Context(), cfg)
	if err != nil {
		c.abortErr(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, movie)
}

// AdminGetMovie handles GET /admin/api/movie/:movieId. Unlike the
// public detail route it returns the full document, every locale
// included, which the edit form needs.
func (c *Controller) AdminGetMovie(ctx *gin.Context) {
	movie, err := c.svc.GetMovie(ctx.Request.Context(), ctx.Param("movieId"))
	if err != nil {
		c.abortErr(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, movie)
}

// AdminUpdateMovie handles PUT /admin/api/movie/:movieId.
func (c *Controller) AdminUpdateMovie(ctx *gin.Context) {
	cfg := new(dto.MovieCfg)
	if err := bindJSON(ctx, cfg); err != nil {
		c.abortErr(ctx, err)
		return
	}

	if err := c.svc.UpdateMovie(ctx.Request.Context(), ctx.Param("movieId"), cfg); err != nil {
		c.abortErr(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"success": true})
}

// AdminDeleteMovie handles DELETE /admin/api/movie/:movieId.
func (c *Controller) AdminDeleteMovie(ctx *gin.Context) {
	if err := c.svc.DeleteMovie(ctx.Request.Context(), ctx.Param("movieId")); err != nil {
		c.abortErr(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"success": true})
}

// AdminListPersons handles GET /admin/api/persons.
func (c *Controller) AdminListPersons(ctx *gin.Context) {
	page, limit := pageQuery(ctx)

	result, err := c.svc.ListPersons(ctx.Request.Context(), page, limit)
	if err != nil {
		c.abortErr(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, result)
}

// AdminGetPerson handles GET /admin/api/person/:personId.
func (c *Controller) AdminGetPerson(ctx *gin.Context) {
	person, err := c.svc.GetPerson(ctx.Request.Context(), ctx.Param("personId"))
	if err != nil {
		c.abortErr(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, person)
}

// AdminCreatePerson handles POST /admin/api/persons.
func (c *Controller) AdminCreatePerson(ctx *gin.Context) {
	cfg := new(dto.PersonCfg)
	if err := bindJSON(ctx, cfg); err != nil {
		c.abortErr(ctx, err)
		return
	}

	person, err := c.svc.CreatePerson(ctx.Request.Context(), cfg)
	if err != nil {
		c.abortErr(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, person)
}

// AdminUpdatePerson handles PUT /admin/api/person/:personId.
func (c *Controller) AdminUpdatePerson(ctx *gin.Context) {
	cfg := new(dto.PersonCfg)
	if err := bindJSON(ctx, cfg); err != nil {
		c.abortErr(ctx, err)
		return
	}

	if err := c.svc.UpdatePerson(ctx.Request.Context(), ctx.Param("personId"), cfg); err != nil {
		c.abortErr(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"success": true})
}

// AdminDeletePerson handles DELETE /admin/api/person/:personId.
func (c *Controller) AdminDeletePerson(ctx *gin.Context) {
	if err := c.svc.DeletePerson(ctx.Request.Context(), ctx.Param("personId")); err != nil {
		c.abortErr(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"success": true})
}

// AdminListPersonMovies handles GET /admin/api/person/:personId/movies.
func (c *Controller) AdminListPersonMovies(ctx *gin.Context) {
	page, limit := pageQuery(ctx)

	result, err := c.svc.ListPersonMovies(ctx.Request.Context(),
		ctx.Param("personId"), localeQuery(ctx), page, limit)
	if err != nil {
		c.abortErr(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, result)
}

// AdminLinkMovie handles POST /admin/api/person/:personId/movies.
func (c *Controller) AdminLinkMovie(ctx *gin.Context) {
	cfg := new(dto.LinkCfg)
	if err := bindJSON(ctx, cfg); err != nil {
		c.abortErr(ctx, err)
		return
	}
	if cfg.MovieID == "" {
		c.abortErr(ctx, errors.Wrap(model.ErrValidation, "movieId is required"))
		return
	}

	link, err := c.svc.LinkMovie(ctx.Request.Context(), ctx.Param("personId"), cfg.MovieID)
	if err != nil {
		c.abortErr(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, link)
}

// AdminUnlinkMovie handles DELETE /admin/api/person/:personId/movies.
// The movie id rides in the body, mirroring the link request.
func (c *Controller) AdminUnlinkMovie(ctx *gin.Context) {
	cfg := new(dto.LinkCfg)
	if err := bindJSON(ctx, cfg); err != nil {
		c.abortErr(ctx, err)
		return
	}
	if cfg.MovieID == "" {
		c.abortErr(ctx, errors.Wrap(model.ErrValidation, "movieId is required"))
		return
	}

	if err := c.svc.UnlinkMovie(ctx.Request.Context(), ctx.Param("personId"), cfg.MovieID); err != nil {
		c.abortErr(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"success": true})
}
