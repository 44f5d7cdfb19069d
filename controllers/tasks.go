package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/prathameshp107/ClinLabOps-sub003/models"
	"github.com/prathameshp107/ClinLabOps-sub003/services/task"
)

type TaskController struct {
	svc *task.Service
}

func NewTaskController(svc *task.Service) *TaskController {
	return &TaskController{svc: svc}
}

// @Summary Create task
// @Tags tasks
// @Accept json
// @Produce json
// @Param data body models.CreateTaskRequest true "Task data"
// @Success 201 {object} models.Task
// @Failure 400 {object} models.ErrorResponse
// @Failure 401 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /tasks [post]
func (tc *TaskController) CreateTask(c *gin.Context) {
	var dto models.CreateTaskRequest
	if err := c.ShouldBindJSON(&dto); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if dto.Title == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "title is required"})
		return
	}

	u, ok := c.Get("user")
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	req := task.CreateRequest{
		Title:     dto.Title,
		Assignee:  dto.Assignee,
		CreatedBy: u.(models.User).ID,
		ProjectID: dto.ProjectID,
	}
	if dto.DueDate != nil {
		t, err := time.Parse(time.RFC3339, *dto.DueDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid due_date format. Use RFC3339 (e.g., 2026-09-04T00:00:00Z)"})
			return
		}
		req.DueDate = &t
	}

	t, err := tc.svc.Create(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	c.JSON(http.StatusCreated, t)
}

// @Summary List tasks
// @Tags tasks
// @Produce json
// @Param project_id query string false "Filter by project"
// @Success 200 {array} models.Task
// @Failure 401 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /tasks [get]
func (tc *TaskController) ListTasks(c *gin.Context) {
	list, err := tc.svc.List(c.Request.Context(), c.Query("project_id"), 50, 0)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	c.JSON(http.StatusOK, list)
}

// @Summary Get task
// @Tags tasks
// @Produce json
// @Param id path string true "Task ID"
// @Success 200 {object} models.Task
// @Failure 401 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /tasks/{id} [get]
func (tc *TaskController) GetTask(c *gin.Context) {
	t, err := tc.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, task.ErrTaskNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	c.JSON(http.StatusOK, t)
}
