package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"credvault-backend/internal/core"
	"credvault-backend/internal/crypto"
	"credvault-backend/internal/db"
	"credvault-backend/internal/middleware"
	"credvault-backend/internal/models"
)

// ProjectHandler handles the project, team-member and credential
// endpoints.
type ProjectHandler struct {
	projectService core.ProjectService
	logger         *zap.Logger
}

// NewProjectHandler creates a new ProjectHandler.
func NewProjectHandler(ps core.ProjectService, logger *zap.Logger) *ProjectHandler {
	return &ProjectHandler{projectService: ps, logger: logger}
}

// mapProjectError maps service errors to HTTP responses. A decryption
// failure is reported distinctly from a missing document: it can mean key
// misconfiguration or data corruption and must be alertable.
func (h *ProjectHandler) mapProjectError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, core.ErrNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "Not found"})
	case errors.Is(err, crypto.ErrDecryptionFailed):
		h.logger.Error("credential decryption failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to decrypt credential"})
	case errors.Is(err, db.ErrUnavailable):
		h.logger.Warn("storage unavailable", zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: "Storage temporarily unavailable"})
	default:
		h.logger.Error("unexpected error", zap.Error(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "An unexpected internal server error occurred"})
	}
}

func ownerID(c *gin.Context) string {
	return c.GetString(middleware.OwnerIDKey)
}

// ListProjects handles GET /projects
func (h *ProjectHandler) ListProjects(c *gin.Context) {
	projects, err := h.projectService.ListProjects(c.Request.Context(), ownerID(c))
	if err != nil {
		h.mapProjectError(c, err)
		return
	}
	c.JSON(http.StatusOK, projects)
}

// GetProject handles GET /projects/:projectId
func (h *ProjectHandler) GetProject(c *gin.Context) {
	project, err := h.projectService.GetProject(c.Request.Context(), ownerID(c), c.Param("projectId"))
	if err != nil {
		h.mapProjectError(c, err)
		return
	}
	c.JSON(http.StatusOK, project)
}

// CreateProject handles POST /projects
func (h *ProjectHandler) CreateProject(c *gin.Context) {
	var req models.CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request payload", Details: err.Error()})
		return
	}
	if req.Status != "" && !req.Status.Valid() {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid project status"})
		return
	}

	project, err := h.projectService.CreateProject(c.Request.Context(), ownerID(c), req)
	if err != nil {
		h.mapProjectError(c, err)
		return
	}
	c.JSON(http.StatusCreated, project)
}

// UpdateProject handles PUT /projects/:projectId
func (h *ProjectHandler) UpdateProject(c *gin.Context) {
	var req models.UpdateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request payload", Details: err.Error()})
		return
	}
	if req.Status != nil && !req.Status.Valid() {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid project status"})
		return
	}

	project, err := h.projectService.UpdateProject(c.Request.Context(), ownerID(c), c.Param("projectId"), req)
	if err != nil {
		h.mapProjectError(c, err)
		return
	}
	c.JSON(http.StatusOK, project)
}

// DeleteProject handles DELETE /projects/:projectId
func (h *ProjectHandler) DeleteProject(c *gin.Context) {
	if err := h.projectService.DeleteProject(c.Request.Context(), ownerID(c), c.Param("projectId")); err != nil {
		h.mapProjectError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// AddUser handles POST /projects/:projectId/users
func (h *ProjectHandler) AddUser(c *gin.Context) {
	var req models.CreateProjectUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request payload", Details: err.Error()})
		return
	}

	project, err := h.projectService.AddUser(c.Request.Context(), ownerID(c), c.Param("projectId"), req)
	if err != nil {
		h.mapProjectError(c, err)
		return
	}
	c.JSON(http.StatusOK, project)
}

// UpdateUser handles PUT /projects/:projectId/users/:userId
func (h *ProjectHandler) UpdateUser(c *gin.Context) {
	var req models.UpdateProjectUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request payload", Details: err.Error()})
		return
	}

	project, err := h.projectService.UpdateUser(c.Request.Context(), ownerID(c), c.Param("projectId"), c.Param("userId"), req)
	if err != nil {
		h.mapProjectError(c, err)
		return
	}
	c.JSON(http.StatusOK, project)
}

// DeleteUser handles DELETE /projects/:projectId/users/:userId
func (h *ProjectHandler) DeleteUser(c *gin.Context) {
	project, err := h.projectService.DeleteUser(c.Request.Context(), ownerID(c), c.Param("projectId"), c.Param("userId"))
	if err != nil {
		h.mapProjectError(c, err)
		return
	}
	c.JSON(http.StatusOK, project)
}

// AddCredential handles POST /projects/:projectId/users/:userId/credentials
func (h *ProjectHandler) AddCredential(c *gin.Context) {
	var req models.CreateCredentialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request payload", Details: err.Error()})
		return
	}
	if req.Type != "" && !req.Type.Valid() {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid credential type"})
		return
	}

	project, err := h.projectService.AddCredential(c.Request.Context(), ownerID(c), c.Param("projectId"), c.Param("userId"), req)
	if err != nil {
		h.mapProjectError(c, err)
		return
	}
	c.JSON(http.StatusOK, project)
}

// UpdateCredential handles PUT /projects/:projectId/users/:userId/credentials/:credId
func (h *ProjectHandler) UpdateCredential(c *gin.Context) {
	var req models.UpdateCredentialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request payload", Details: err.Error()})
		return
	}
	if req.Type != nil && !req.Type.Valid() {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid credential type"})
		return
	}

	project, err := h.projectService.UpdateCredential(c.Request.Context(), ownerID(c), c.Param("projectId"), c.Param("userId"), c.Param("credId"), req)
	if err != nil {
		h.mapProjectError(c, err)
		return
	}
	c.JSON(http.StatusOK, project)
}

// DeleteCredential handles DELETE /projects/:projectId/users/:userId/credentials/:credId
func (h *ProjectHandler) DeleteCredential(c *gin.Context) {
	project, err := h.projectService.DeleteCredential(c.Request.Context(), ownerID(c), c.Param("projectId"), c.Param("userId"), c.Param("credId"))
	if err != nil {
		h.mapProjectError(c, err)
		return
	}
	c.JSON(http.StatusOK, project)
}

// RotateCredential handles POST /projects/:projectId/users/:userId/credentials/:credId/rotate
func (h *ProjectHandler) RotateCredential(c *gin.Context) {
	var req models.RotateCredentialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request payload", Details: err.Error()})
		return
	}

	project, err := h.projectService.RotateCredential(c.Request.Context(), ownerID(c), c.Param("projectId"), c.Param("userId"), c.Param("credId"), req.Value)
	if err != nil {
		h.mapProjectError(c, err)
		return
	}
	c.JSON(http.StatusOK, project)
}

// RevealCredential handles GET /projects/:projectId/users/:userId/credentials/:credId/reveal
func (h *ProjectHandler) RevealCredential(c *gin.Context) {
	value, err := h.projectService.RevealCredential(c.Request.Context(), ownerID(c), c.Param("projectId"), c.Param("userId"), c.Param("credId"))
	if err != nil {
		h.mapProjectError(c, err)
		return
	}
	c.JSON(http.StatusOK, RevealResponse{Value: value})
}
