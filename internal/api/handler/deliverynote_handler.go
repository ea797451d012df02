package handler

import (
	"encoding/base64"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/albaranes/deliverynotes-api/internal/core/domain"
	"github.com/albaranes/deliverynotes-api/internal/core/ports"
)

type DeliveryNoteHandler struct {
	service ports.DeliveryNoteService
}

func NewDeliveryNoteHandler(service ports.DeliveryNoteService) *DeliveryNoteHandler {
	return &DeliveryNoteHandler{service: service}
}

// Create handles POST /deliverynotes.
//
// @Summary      Create a delivery note
// @Tags         deliverynotes
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createDeliveryNoteRequest  true  "Delivery note"
// @Success      201   {object}  dataResponse
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /deliverynotes [post]
func (h *DeliveryNoteHandler) Create(c echo.Context) error {
	ownerID, err := currentUser(c)
	if err != nil {
		return err
	}
	var req createDeliveryNoteRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	in := ports.CreateDeliveryNoteInput{
		ClientID:    req.ClientID,
		ProjectID:   req.ProjectID,
		Format:      domain.NoteFormat(req.Format),
		Description: req.Description,
	}
	if req.Material != nil {
		in.Material = *req.Material
	}
	if req.Hours != nil {
		in.Hours = *req.Hours
	}

	note, err := h.service.Create(c.Request().Context(), ownerID, in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, dataResponse{Data: note})
}

// List handles GET /deliverynotes. Each note embeds its project, client and user.
//
// @Summary      List delivery notes
// @Tags         deliverynotes
// @Produce      json
// @Security     BearerAuth
// @Param        scope  query     string  false  "active (default), deleted or all"
// @Success      200    {object}  dataResponse
// @Router       /deliverynotes [get]
func (h *DeliveryNoteHandler) List(c echo.Context) error {
	ownerID, err := currentUser(c)
	if err != nil {
		return err
	}
	notes, err := h.service.List(c.Request().Context(), ownerID, scope(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dataResponse{Data: notes})
}

// Get handles GET /deliverynotes/:id. Project, client and user are embedded.
//
// @Summary      Get a delivery note
// @Tags         deliverynotes
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Delivery note id"
// @Success      200  {object}  dataResponse
// @Failure      404  {object}  errorResponse
// @Router       /deliverynotes/{id} [get]
func (h *DeliveryNoteHandler) Get(c echo.Context) error {
	ownerID, err := currentUser(c)
	if err != nil {
		return err
	}
	detail, err := h.service.Get(c.Request().Context(), ownerID, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dataResponse{Data: detail})
}

// PDF handles GET /deliverynotes/pdf/:id.
//
// @Summary      Download a delivery note as PDF
// @Tags         deliverynotes
// @Produce      application/pdf
// @Security     BearerAuth
// @Param        id   path  string  true  "Delivery note id"
// @Success      200  {file}  file
// @Failure      404  {object}  errorResponse
// @Router       /deliverynotes/pdf/{id} [get]
func (h *DeliveryNoteHandler) PDF(c echo.Context) error {
	ownerID, err := currentUser(c)
	if err != nil {
		return err
	}
	doc, err := h.service.PDF(c.Request().Context(), ownerID, c.Param("id"))
	if err != nil {
		return err
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, "attachment; filename="+doc.Filename)
	return c.Blob(http.StatusOK, "application/pdf", doc.Content)
}

// Sign handles POST /deliverynotes/sign. The signature may be sent base64
// encoded or as raw text.
//
// @Summary      Sign a delivery note
// @Tags         deliverynotes
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      signRequest  true  "Signature"
// @Success      200   {object}  signResponse
// @Failure      404   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /deliverynotes/sign [post]
func (h *DeliveryNoteHandler) Sign(c echo.Context) error {
	ownerID, err := currentUser(c)
	if err != nil {
		return err
	}
	var req signRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	res, err := h.service.Sign(c.Request().Context(), ownerID, req.DeliveryNoteID, decodeSignature(req.Signature), req.SignatureName)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, signResponse{Message: "delivery note signed", Data: res})
}

// Delete handles DELETE /deliverynotes/:id?soft=.
//
// @Summary      Delete a delivery note
// @Tags         deliverynotes
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string  true   "Delivery note id"
// @Param        soft  query     string  false  "false for a hard delete"
// @Success      200   {object}  messageResponse
// @Failure      404   {object}  errorResponse
// @Router       /deliverynotes/{id} [delete]
func (h *DeliveryNoteHandler) Delete(c echo.Context) error {
	ownerID, err := currentUser(c)
	if err != nil {
		return err
	}
	soft := softDelete(c)
	if err := h.service.Delete(c.Request().Context(), ownerID, c.Param("id"), soft); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: deletedMessage("delivery note", soft)})
}

// Restore handles PATCH /deliverynotes/restore/:id.
//
// @Summary      Restore a soft-deleted delivery note
// @Tags         deliverynotes
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Delivery note id"
// @Success      200  {object}  messageResponse
// @Failure      404  {object}  errorResponse
// @Router       /deliverynotes/restore/{id} [patch]
func (h *DeliveryNoteHandler) Restore(c echo.Context) error {
	ownerID, err := currentUser(c)
	if err != nil {
		return err
	}
	if err := h.service.Restore(c.Request().Context(), ownerID, c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "delivery note restored"})
}

func decodeSignature(s string) []byte {
	if b, err := base64.StdEncoding.DecodeString(s); err == nil && len(b) > 0 {
		return b
	}
	return []byte(s)
}
