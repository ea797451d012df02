package domain

import (
	"errors"
	"time"
)

// NoteFormat says whether a delivery note records hours or materials.
type NoteFormat string

const (
	FormatHours     NoteFormat = "hours"
	FormatMaterials NoteFormat = "materials"
)

// DefaultMaterial is stored when a note does not name its material.
const DefaultMaterial = "N/A"

var (
	ErrDeliveryNoteNotFound  = errors.New("delivery note not found")
	ErrProjectClientMismatch = errors.New("project does not belong to the given client")
	ErrAlreadySigned         = errors.New("delivery note already signed")
	ErrInvalidFormat         = errors.New(`format must be "hours" or "materials"`)
)

func (f NoteFormat) Valid() bool {
	return f == FormatHours || f == FormatMaterials
}

// DeliveryNote records hours or materials delivered against a project.
type DeliveryNote struct {
	ID          string     `json:"_id" bson:"_id"`
	OwnerID     string     `json:"userId" bson:"user_id"`
	ClientID    string     `json:"clientId" bson:"client_id"`
	ProjectID   string     `json:"projectId" bson:"project_id"`
	Format      NoteFormat `json:"format" bson:"format"`
	Material    string     `json:"material" bson:"material"`
	Hours       float64    `json:"hours" bson:"hours"`
	Description string     `json:"description" bson:"description"`
	Sign        *string    `json:"sign" bson:"sign"`
	PDFURL      *string    `json:"pdfUrl" bson:"pdf_url"`
	Signed      bool       `json:"signed" bson:"signed"`
	SignedAt    *time.Time `json:"signedAt,omitempty" bson:"signed_at,omitempty"`

	SoftDelete `bson:",inline"`

	CreatedAt time.Time `json:"createdAt" bson:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updated_at"`
}

// Pending reports whether the note still waits for a signature.
func (n DeliveryNote) Pending() bool {
	return !n.Signed
}

// MarkSigned transitions an unsigned note to signed. Signing is one-shot.
func (n *DeliveryNote) MarkSigned(signatureURL, pdfURL string, now time.Time) error {
	if n.Signed {
		return ErrAlreadySigned
	}
	at := now.UTC()
	n.Signed = true
	n.Sign = &signatureURL
	n.PDFURL = &pdfURL
	n.SignedAt = &at
	n.UpdatedAt = at
	return nil
}

// DeliveryNoteDetail is a note with its relations resolved.
type DeliveryNoteDetail struct {
	*DeliveryNote
	Project *Project `json:"project"`
	Client  *Client  `json:"client"`
	User    *User    `json:"user,omitempty"`
}
