package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/coursehub/internal/app/models/dto"
)

// HomeController serves the root greeting and the health check
type HomeController struct{}

// NewHomeController creates a new HomeController
func NewHomeController() *HomeController {
	return &HomeController{}
}

// Index returns the static greeting
// @Summary Greeting
// @Tags home
// @Produce plain
// @Success 200 {string} string "Hello World"
// @Router / [get]
func (h *HomeController) Index(ctx *gin.Context) {
	ctx.String(http.StatusOK, "Hello World")
}

// Health reports that the process is serving requests
// @Summary Health check
// @Tags home
// @Produce json
// @Success 200 {object} dto.HealthResponse
// @Router /healthz [get]
func (h *HomeController) Health(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, dto.HealthResponse{Status: "ok"})
}
