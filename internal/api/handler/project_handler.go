package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/albaranes/deliverynotes-api/internal/core/ports"
)

type ProjectHandler struct {
	service ports.ProjectService
}

func NewProjectHandler(service ports.ProjectService) *ProjectHandler {
	return &ProjectHandler{service: service}
}

// Create handles POST /projects.
//
// @Summary      Create a project
// @Tags         projects
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createProjectRequest  true  "Project"
// @Success      201   {object}  dataResponse
// @Failure      404   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /projects [post]
func (h *ProjectHandler) Create(c echo.Context) error {
	ownerID, err := currentUser(c)
	if err != nil {
		return err
	}
	var req createProjectRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	project, err := h.service.Create(c.Request().Context(), ownerID, ports.CreateProjectInput{
		Name:        req.Name,
		ProjectCode: req.ProjectCode,
		Code:        req.Code,
		Address:     req.Address.toDomain(),
		ClientID:    req.ClientID,
		Begin:       req.Begin,
		End:         req.End,
		Notes:       req.Notes,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, dataResponse{Data: project})
}

// List handles GET /projects.
//
// @Summary      List projects
// @Tags         projects
// @Produce      json
// @Security     BearerAuth
// @Param        scope  query     string  false  "active (default), deleted or all"
// @Success      200    {object}  dataResponse
// @Router       /projects [get]
func (h *ProjectHandler) List(c echo.Context) error {
	ownerID, err := currentUser(c)
	if err != nil {
		return err
	}
	projects, err := h.service.List(c.Request().Context(), ownerID, scope(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dataResponse{Data: projects})
}

// Get handles GET /projects/:id.
//
// @Summary      Get a project
// @Tags         projects
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Project id"
// @Success      200  {object}  dataResponse
// @Failure      404  {object}  errorResponse
// @Router       /projects/{id} [get]
func (h *ProjectHandler) Get(c echo.Context) error {
	ownerID, err := currentUser(c)
	if err != nil {
		return err
	}
	project, err := h.service.Get(c.Request().Context(), ownerID, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dataResponse{Data: project})
}

// Update handles PUT /projects/:id.
//
// @Summary      Update a project
// @Tags         projects
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                true  "Project id"
// @Param        body  body      updateProjectRequest  true  "Fields to change"
// @Success      200   {object}  dataResponse
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /projects/{id} [put]
func (h *ProjectHandler) Update(c echo.Context) error {
	ownerID, err := currentUser(c)
	if err != nil {
		return err
	}
	var req updateProjectRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	project, err := h.service.Update(c.Request().Context(), ownerID, c.Param("id"), req.toPatch())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dataResponse{Data: project})
}

// Delete handles DELETE /projects/:id?soft=.
//
// @Summary      Delete a project
// @Tags         projects
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string  true   "Project id"
// @Param        soft  query     string  false  "false for a hard delete"
// @Success      200   {object}  messageResponse
// @Failure      404   {object}  errorResponse
// @Router       /projects/{id} [delete]
func (h *ProjectHandler) Delete(c echo.Context) error {
	ownerID, err := currentUser(c)
	if err != nil {
		return err
	}
	soft := softDelete(c)
	if err := h.service.Delete(c.Request().Context(), ownerID, c.Param("id"), soft); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: deletedMessage("project", soft)})
}

// Restore handles PATCH /projects/restore/:id.
//
// @Summary      Restore a soft-deleted project
// @Tags         projects
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Project id"
// @Success      200  {object}  messageResponse
// @Failure      404  {object}  errorResponse
// @Router       /projects/restore/{id} [patch]
func (h *ProjectHandler) Restore(c echo.Context) error {
	ownerID, err := currentUser(c)
	if err != nil {
		return err
	}
	if err := h.service.Restore(c.Request().Context(), ownerID, c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "project restored"})
}
