// Package pdf renders delivery notes as PDF documents.
package pdf

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/go-pdf/fpdf"

	"github.com/albaranes/deliverynotes-api/internal/core/domain"
)

const (
	fontFamily = "Helvetica"
	lineHeight = 8.0
)

// Renderer lays out one delivery note per document. Output is uncompressed
// and stamped with the note's creation time, so the same note always yields
// the same bytes.
type Renderer struct{}

func NewRenderer() *Renderer {
	return &Renderer{}
}

// Render expects project and client to be resolved by the caller.
func (r *Renderer) Render(note *domain.DeliveryNote, project *domain.Project, client *domain.Client) ([]byte, error) {
	if note == nil || project == nil || client == nil {
		return nil, fmt.Errorf("render: note, project and client are required")
	}

	doc := fpdf.New("P", "mm", "A4", "")
	doc.SetCompression(false)
	doc.SetCatalogSort(true)
	doc.SetCreationDate(note.CreatedAt)
	doc.SetModificationDate(note.CreatedAt)
	doc.SetTitle("albaran_"+note.ID, true)

	tr := doc.UnicodeTranslatorFromDescriptor("")
	doc.AddPage()

	doc.SetFont(fontFamily, "B", 16)
	doc.MultiCell(0, 10, tr("Delivery note for project: "+project.Name), "", "L", false)
	doc.Ln(4)

	doc.SetFont(fontFamily, "", 12)
	for _, line := range lines(note, client) {
		doc.MultiCell(0, lineHeight, tr(line), "", "L", false)
	}

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("render delivery note %s: %w", note.ID, err)
	}
	return buf.Bytes(), nil
}

func lines(note *domain.DeliveryNote, client *domain.Client) []string {
	out := []string{
		"Client: " + client.Name,
		"Date: " + note.CreatedAt.UTC().Format("2006-01-02"),
		"Description: " + note.Description,
	}
	if note.Format == domain.FormatHours {
		out = append(out, "Hours worked: "+strconv.FormatFloat(note.Hours, 'f', -1, 64))
	} else {
		out = append(out, "Material used: "+note.Material)
	}
	if note.Sign != nil && *note.Sign != "" {
		out = append(out, "Signature: "+*note.Sign)
	}
	return out
}
