package handler

import (
	"io"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/albaranes/deliverynotes-api/internal/core/domain"
	"github.com/albaranes/deliverynotes-api/internal/core/ports"
)

const maxLogoSize = 5 << 20

type UserHandler struct {
	auth  ports.AuthService
	users ports.UserService
}

func NewUserHandler(auth ports.AuthService, users ports.UserService) *UserHandler {
	return &UserHandler{auth: auth, users: users}
}

// Register creates an unverified account and mails its verification code.
//
// @Summary      Register a new user
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Credentials"
// @Success      201   {object}  authResponse
// @Failure      409   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /users/register [post]
func (h *UserHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	res, err := h.auth.Register(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, authResponse{Token: res.Token, User: res.User})
}

// Validate checks the e-mail verification code.
//
// @Summary      Verify the account
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      validateRequest  true  "Six digit code"
// @Success      200   {object}  messageResponse
// @Failure      409   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /users/validate [put]
func (h *UserHandler) Validate(c echo.Context) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}
	var req validateRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	if err := h.auth.Validate(c.Request().Context(), userID, req.Code); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "user validated"})
}

// Login exchanges credentials for a session token.
//
// @Summary      Login
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Credentials"
// @Success      200   {object}  authResponse
// @Failure      401   {object}  errorResponse
// @Router       /users/login [post]
func (h *UserHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	res, err := h.auth.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, authResponse{Token: res.Token, User: res.User})
}

// Me returns the authenticated user.
//
// @Summary      Current user
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dataResponse
// @Router       /users [get]
func (h *UserHandler) Me(c echo.Context) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}
	user, err := h.users.Get(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dataResponse{Data: user})
}

// UpdateProfile sets name, surnames and NIF.
//
// @Summary      Update personal data
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      profileRequest  true  "Personal data"
// @Success      200   {object}  dataResponse
// @Failure      422   {object}  errorResponse
// @Router       /users/register [put]
func (h *UserHandler) UpdateProfile(c echo.Context) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}
	var req profileRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	user, err := h.users.UpdateProfile(c.Request().Context(), userID, ports.ProfileInput{
		Name:     req.Name,
		Surnames: req.Surnames,
		NIF:      req.NIF,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dataResponse{Data: user})
}

// UpdateCompany sets the company the user invoices as.
//
// @Summary      Update company data
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      companyRequest  true  "Company"
// @Success      200   {object}  dataResponse
// @Failure      409   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /users/company [put]
func (h *UserHandler) UpdateCompany(c echo.Context) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}
	var req companyRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	user, err := h.users.UpdateCompany(c.Request().Context(), userID, domain.Company{
		Name:     req.Name,
		CIF:      req.CIF,
		Street:   req.Street,
		Number:   req.Number,
		Postal:   req.Postal,
		City:     req.City,
		Province: req.Province,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dataResponse{Data: user})
}

// UpdateLogo uploads the multipart "image" field and stores its URL.
//
// @Summary      Upload logo
// @Tags         users
// @Accept       mpfd
// @Produce      json
// @Security     BearerAuth
// @Param        image  formData  file  true  "Logo image"
// @Success      200    {object}  logoResponse
// @Failure      400    {object}  errorResponse
// @Router       /users/logo [patch]
func (h *UserHandler) UpdateLogo(c echo.Context) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}

	fh, err := c.FormFile("image")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "image is required")
	}
	if fh.Size > maxLogoSize {
		return echo.NewHTTPError(http.StatusRequestEntityTooLarge, "image too large")
	}
	f, err := fh.Open()
	if err != nil {
		return err
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return err
	}

	user, err := h.users.UpdateLogo(c.Request().Context(), userID, data, fh.Filename)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, logoResponse{Message: "logo updated", URL: user.Logo})
}

// Delete removes the account; ?soft=false purges it.
//
// @Summary      Delete account
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        soft  query     string  false  "false for a hard delete"
// @Success      200   {object}  messageResponse
// @Router       /users [delete]
func (h *UserHandler) Delete(c echo.Context) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}
	soft := softDelete(c)
	if err := h.users.Delete(c.Request().Context(), userID, soft); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: deletedMessage("user", soft)})
}

// Invite creates a guest account attached to the caller's company.
//
// @Summary      Invite a guest
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      inviteRequest  true  "Guest"
// @Success      201   {object}  dataResponse
// @Failure      403   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /users/invite [post]
func (h *UserHandler) Invite(c echo.Context) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}
	var req inviteRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	guest, err := h.users.Invite(c.Request().Context(), userID, ports.InviteInput{
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
		Surnames: req.Surnames,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, dataResponse{Data: guest})
}

func deletedMessage(entity string, soft bool) string {
	if soft {
		return entity + " soft deleted"
	}
	return entity + " permanently deleted"
}
