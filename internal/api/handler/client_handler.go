package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/albaranes/deliverynotes-api/internal/core/domain"
	"github.com/albaranes/deliverynotes-api/internal/core/ports"
)

type ClientHandler struct {
	service ports.ClientService
}

func NewClientHandler(service ports.ClientService) *ClientHandler {
	return &ClientHandler{service: service}
}

// Create handles POST /client.
//
// @Summary      Create a client
// @Tags         clients
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createClientRequest  true  "Client"
// @Success      201   {object}  dataResponse
// @Failure      409   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /client [post]
func (h *ClientHandler) Create(c echo.Context) error {
	ownerID, err := currentUser(c)
	if err != nil {
		return err
	}
	var req createClientRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	client, err := h.service.Create(c.Request().Context(), ownerID, ports.CreateClientInput{
		Name:    req.Name,
		Address: req.Address,
		Email:   req.Email,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, dataResponse{Data: client})
}

// List handles GET /client.
//
// @Summary      List clients
// @Tags         clients
// @Produce      json
// @Security     BearerAuth
// @Param        scope  query     string  false  "active (default), deleted or all"
// @Success      200    {object}  dataResponse
// @Router       /client [get]
func (h *ClientHandler) List(c echo.Context) error {
	ownerID, err := currentUser(c)
	if err != nil {
		return err
	}
	clients, err := h.service.List(c.Request().Context(), ownerID, scope(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dataResponse{Data: clients})
}

// Get handles GET /client/:id.
//
// @Summary      Get a client
// @Tags         clients
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Client id"
// @Success      200  {object}  dataResponse
// @Failure      404  {object}  errorResponse
// @Router       /client/{id} [get]
func (h *ClientHandler) Get(c echo.Context) error {
	ownerID, err := currentUser(c)
	if err != nil {
		return err
	}
	client, err := h.service.Get(c.Request().Context(), ownerID, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dataResponse{Data: client})
}

// Update handles PUT /client/:id.
//
// @Summary      Update a client
// @Tags         clients
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string               true  "Client id"
// @Param        body  body      updateClientRequest  true  "Fields to change"
// @Success      200   {object}  dataResponse
// @Failure      404   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /client/{id} [put]
func (h *ClientHandler) Update(c echo.Context) error {
	ownerID, err := currentUser(c)
	if err != nil {
		return err
	}
	var req updateClientRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	client, err := h.service.Update(c.Request().Context(), ownerID, c.Param("id"), domain.ClientUpdate{
		Name:    req.Name,
		Address: req.Address,
		Email:   req.Email,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dataResponse{Data: client})
}

// Delete handles DELETE /client/:id?soft=.
//
// @Summary      Delete a client
// @Tags         clients
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string  true   "Client id"
// @Param        soft  query     string  false  "false for a hard delete"
// @Success      200   {object}  messageResponse
// @Failure      404   {object}  errorResponse
// @Router       /client/{id} [delete]
func (h *ClientHandler) Delete(c echo.Context) error {
	ownerID, err := currentUser(c)
	if err != nil {
		return err
	}
	soft := softDelete(c)
	if err := h.service.Delete(c.Request().Context(), ownerID, c.Param("id"), soft); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: deletedMessage("client", soft)})
}

// Restore handles PATCH /client/restore/:id.
//
// @Summary      Restore a soft-deleted client
// @Tags         clients
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Client id"
// @Success      200  {object}  messageResponse
// @Failure      404  {object}  errorResponse
// @Router       /client/restore/{id} [patch]
func (h *ClientHandler) Restore(c echo.Context) error {
	ownerID, err := currentUser(c)
	if err != nil {
		return err
	}
	if err := h.service.Restore(c.Request().Context(), ownerID, c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "client restored"})
}
