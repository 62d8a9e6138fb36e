package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/yigit/coursehub/internal/app/models/dto"
	"github.com/yigit/coursehub/internal/middleware"
	"github.com/yigit/coursehub/internal/pkg/apperrors"
)

// undefinedParam is printed for a query parameter the client left out
const undefinedParam = "undefined"

// PostController serves the posts archive demo route
type PostController struct{}

// NewPostController creates a new PostController
func NewPostController() *PostController {
	return &PostController{}
}

// GetPostsArchive echoes the requested year, month and sort key
// @Summary Posts archive
// @Description Echoes path and query parameters
// @Tags posts
// @Produce plain
// @Param year path string true "Year"
// @Param month path string true "Month"
// @Param sortBy query string false "Sort key"
// @Success 200 {string} string "Year: 2024, Month: 05, SortBy: name"
// @Router /api/posts/{year}/{month} [get]
func (p *PostController) GetPostsArchive(ctx *gin.Context) {
	var uri dto.PostArchiveURI
	if err := ctx.ShouldBindUri(&uri); err != nil {
		middleware.HandleAPIError(ctx, apperrors.NewValidationError(err.Error()))
		return
	}

	var query dto.PostArchiveQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		middleware.HandleAPIError(ctx, apperrors.NewValidationError(err.Error()))
		return
	}

	sortBy := undefinedParam
	if len(query.SortBy) > 0 {
		sortBy = strings.Join(query.SortBy, ",")
	}

	ctx.String(http.StatusOK, "Year: %s, Month: %s, SortBy: %s", uri.Year, uri.Month, sortBy)
}
