package controllers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
)

// CycleRunner is the slice of the reminder scheduler the admin surface needs.
type CycleRunner interface {
	RunCycle(ctx context.Context) error
	Running() bool
}

type AdminController struct {
	runner CycleRunner
}

func NewAdminController(runner CycleRunner) *AdminController {
	return &AdminController{runner: runner}
}

// @Summary Run deadline check now
// @Description Synchronously run one deadline-reminder cycle. Admin only.
// @Tags admin
// @Produce json
// @Success 200 {object} models.MessageResponse
// @Failure 401 {object} models.ErrorResponse
// @Failure 403 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /admin/deadline-check [post]
func (ac *AdminController) RunDeadlineCheck(c *gin.Context) {
	if err := ac.runner.RunCycle(c.Request.Context()); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Deadline check failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Deadline check completed"})
}
