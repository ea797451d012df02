package handler

import (
	"github.com/albaranes/deliverynotes-api/internal/core/domain"
	"github.com/albaranes/deliverynotes-api/internal/core/ports"
)

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

type dataResponse struct {
	Data any `json:"data"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// --- Users ---

type registerRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

type validateRequest struct {
	Code string `json:"code" validate:"required,len=6,numeric"`
}

type authResponse struct {
	Token string       `json:"token"`
	User  *domain.User `json:"user"`
}

type profileRequest struct {
	Name     string `json:"name"     validate:"required"`
	Surnames string `json:"surnames" validate:"required"`
	NIF      string `json:"nif"      validate:"required,nif"`
}

type companyRequest struct {
	Name     string `json:"name"     validate:"required"`
	CIF      string `json:"cif"      validate:"required,cif"`
	Street   string `json:"street"   validate:"required"`
	Number   int    `json:"number"   validate:"required,gte=1"`
	Postal   int    `json:"postal"   validate:"required,gte=1000,lte=99999"`
	City     string `json:"city"     validate:"required"`
	Province string `json:"province" validate:"required"`
}

type inviteRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Name     string `json:"name"     validate:"required"`
	Surnames string `json:"surnames" validate:"required"`
}

type logoResponse struct {
	Message string `json:"message"`
	URL     string `json:"url"`
}

// --- Password ---

type resetTokenRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type resetTokenResponse struct {
	Message    string `json:"message"`
	ResetToken string `json:"resetToken"`
}

type changePasswordRequest struct {
	Password string `json:"password" validate:"required,min=8"`
}

// --- Clients ---

type createClientRequest struct {
	Name    string `json:"name"    validate:"required"`
	Address string `json:"address" validate:"required"`
	Email   string `json:"email"   validate:"required,email"`
}

type updateClientRequest struct {
	Name    *string `json:"name"    validate:"omitempty,min=1"`
	Address *string `json:"address" validate:"omitempty,min=1"`
	Email   *string `json:"email"   validate:"omitempty,email"`
}

// --- Projects ---

type addressRequest struct {
	Street   string `json:"street"   validate:"required"`
	Number   int    `json:"number"   validate:"required,gte=1"`
	Postal   int    `json:"postal"   validate:"required,gte=1000,lte=99999"`
	City     string `json:"city"     validate:"required"`
	Province string `json:"province" validate:"required"`
}

func (a addressRequest) toDomain() domain.ProjectAddress {
	return domain.ProjectAddress{
		Street:   a.Street,
		Number:   a.Number,
		Postal:   a.Postal,
		City:     a.City,
		Province: a.Province,
	}
}

type createProjectRequest struct {
	Name        string         `json:"name"        validate:"required"`
	ProjectCode string         `json:"projectCode" validate:"required"`
	Code        string         `json:"code"        validate:"required"`
	Address     addressRequest `json:"address"     validate:"required"`
	ClientID    string         `json:"clientId"    validate:"required,mongodb"`
	Begin       string         `json:"begin"       validate:"required,ddmmyyyy"`
	End         string         `json:"end"         validate:"required,ddmmyyyy"`
	Notes       string         `json:"notes"`
}

type updateProjectRequest struct {
	Name        *string         `json:"name"        validate:"omitempty,min=1"`
	ProjectCode *string         `json:"projectCode" validate:"omitempty,min=1"`
	Code        *string         `json:"code"        validate:"omitempty,min=1"`
	Address     *addressRequest `json:"address"`
	ClientID    *string         `json:"clientId"    validate:"omitempty,mongodb"`
	Begin       *string         `json:"begin"       validate:"omitempty,ddmmyyyy"`
	End         *string         `json:"end"         validate:"omitempty,ddmmyyyy"`
	Notes       *string         `json:"notes"`
}

func (r updateProjectRequest) toPatch() domain.ProjectUpdate {
	patch := domain.ProjectUpdate{
		Name:        r.Name,
		ProjectCode: r.ProjectCode,
		Code:        r.Code,
		ClientID:    r.ClientID,
		Begin:       r.Begin,
		End:         r.End,
		Notes:       r.Notes,
	}
	if r.Address != nil {
		a := r.Address.toDomain()
		patch.Address = &a
	}
	return patch
}

// --- Delivery notes ---

type createDeliveryNoteRequest struct {
	ClientID    string   `json:"clientId"    validate:"required,mongodb"`
	ProjectID   string   `json:"projectId"   validate:"required,mongodb"`
	Format      string   `json:"format"      validate:"required,oneof=hours materials"`
	Material    *string  `json:"material"    validate:"omitempty,min=1"`
	Hours       *float64 `json:"hours"       validate:"omitempty,gte=0"`
	Description string   `json:"description" validate:"required"`
}

type signRequest struct {
	DeliveryNoteID string `json:"deliveryNoteId"       validate:"required,mongodb"`
	Signature      string `json:"signatureImageBuffer" validate:"required"`
	SignatureName  string `json:"signatureImageName"   validate:"required"`
}

type signResponse struct {
	Message string            `json:"message"`
	Data    *ports.SignResult `json:"data"`
}
