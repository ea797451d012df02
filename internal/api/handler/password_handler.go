package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/albaranes/deliverynotes-api/internal/core/ports"
)

type PasswordHandler struct {
	service ports.PasswordService
}

func NewPasswordHandler(service ports.PasswordService) *PasswordHandler {
	return &PasswordHandler{service: service}
}

// GetToken issues a short-lived reset token.
//
// @Summary      Request a password reset token
// @Tags         password
// @Accept       json
// @Produce      json
// @Param        body  body      resetTokenRequest  true  "Account email"
// @Success      200   {object}  resetTokenResponse
// @Failure      404   {object}  errorResponse
// @Router       /password/getToken [post]
func (h *PasswordHandler) GetToken(c echo.Context) error {
	var req resetTokenRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	token, err := h.service.RequestReset(c.Request().Context(), req.Email)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, resetTokenResponse{Message: "reset token issued", ResetToken: token})
}

// ChangePassword sets a new password. Requires a reset token.
//
// @Summary      Change password
// @Tags         password
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      changePasswordRequest  true  "New password"
// @Success      200   {object}  messageResponse
// @Failure      401   {string}  string  "NOT_TOKEN or NOT_SESSION"
// @Router       /password/changePassword [put]
func (h *PasswordHandler) ChangePassword(c echo.Context) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}
	var req changePasswordRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	if err := h.service.ChangePassword(c.Request().Context(), userID, req.Password); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "password updated"})
}
