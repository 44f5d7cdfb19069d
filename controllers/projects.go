package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/prathameshp107/ClinLabOps-sub003/models"
	"github.com/prathameshp107/ClinLabOps-sub003/services/project"
)

type ProjectController struct {
	svc *project.Service
}

func NewProjectController(svc *project.Service) *ProjectController {
	return &ProjectController{svc: svc}
}

// @Summary Create project
// @Tags projects
// @Accept json
// @Produce json
// @Param data body models.CreateProjectRequest true "Project data"
// @Success 201 {object} models.Project
// @Failure 400 {object} models.ErrorResponse
// @Failure 401 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /projects [post]
func (pc *ProjectController) CreateProject(c *gin.Context) {
	var dto models.CreateProjectRequest
	if err := c.ShouldBindJSON(&dto); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if dto.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name is required"})
		return
	}

	u, ok := c.Get("user")
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	req := project.CreateRequest{
		Name:        dto.Name,
		Description: dto.Description,
		CreatedBy:   u.(models.User).ID,
		TeamIDs:     dto.TeamIDs,
	}
	if dto.EndDate != nil {
		t, err := time.Parse(time.RFC3339, *dto.EndDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid end_date format. Use RFC3339 (e.g., 2026-09-30T00:00:00Z)"})
			return
		}
		req.EndDate = &t
	}

	p, err := pc.svc.Create(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	c.JSON(http.StatusCreated, p)
}

// @Summary List projects
// @Tags projects
// @Produce json
// @Success 200 {array} models.Project
// @Failure 401 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /projects [get]
func (pc *ProjectController) ListProjects(c *gin.Context) {
	list, err := pc.svc.List(c.Request.Context(), 50, 0)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	c.JSON(http.StatusOK, list)
}

// @Summary Get project
// @Tags projects
// @Produce json
// @Param id path string true "Project ID"
// @Success 200 {object} models.Project
// @Failure 401 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /projects/{id} [get]
func (pc *ProjectController) GetProject(c *gin.Context) {
	p, err := pc.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, project.ErrProjectNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Project not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	c.JSON(http.StatusOK, p)
}
