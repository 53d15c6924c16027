package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/video-club/video-club-api/internal/web/catalog/dto"
)

// AdminFetchMoviesFromYoutube handles
// GET /admin/api/person/:personId/fetch-movies-from-youtube. The result
// is a review list; nothing is written until the admin confirms the
// import.
func (c *Controller) AdminFetchMoviesFromYoutube(ctx *gin.Context) {
	movies, err := c.svc.FetchMoviesForPerson(ctx.Request.Context(), ctx.Param("personId"))
	if err != nil {
		c.abortErr(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"movies": movies})
}

// AdminImportMovies handles POST /admin/api/person/:personId/import-movies.
func (c *Controller) AdminImportMovies(ctx *gin.Context) {
	var payload struct {
		Movies []*dto.MovieForImport `json:"movies"`
	}
	if err := bindJSON(ctx, &payload); err != nil {
		c.abortErr(ctx, err)
		return
	}

	summary, err := c.svc.ImportMovies(ctx.Request.Context(),
		ctx.Param("personId"), payload.Movies)
	if err != nil {
		c.abortErr(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, summary)
}
