package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/albaranes/deliverynotes-api/internal/core/domain"
	"github.com/albaranes/deliverynotes-api/internal/core/ports"
)

func TestDeliveryNoteService_Create_Defaults(t *testing.T) {
	f := newFixture()
	c := f.client(t, "u1", "acme@example.com")
	p := f.project(t, "u1", c.ID, "P-001")

	n := f.note(t, "u1", p, domain.FormatHours)
	if n.Material != domain.DefaultMaterial {
		t.Fatalf("expected default material, got %q", n.Material)
	}
	if n.Signed || n.Sign != nil || n.PDFURL != nil {
		t.Fatalf("new note must be unsigned: %+v", n)
	}
}

func TestDeliveryNoteService_Create_ProjectClientMismatch(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	c1 := f.client(t, "u1", "one@example.com")
	c2 := f.client(t, "u1", "two@example.com")
	p := f.project(t, "u1", c1.ID, "P-001")

	_, err := f.notes.Create(ctx, "u1", ports.CreateDeliveryNoteInput{
		ClientID:    c2.ID,
		ProjectID:   p.ID,
		Format:      domain.FormatMaterials,
		Material:    "Cemento",
		Description: "Entrega",
	})
	if !errors.Is(err, domain.ErrProjectClientMismatch) {
		t.Fatalf("expected ErrProjectClientMismatch, got %v", err)
	}
}

func TestDeliveryNoteService_Create_InvalidFormat(t *testing.T) {
	f := newFixture()
	c := f.client(t, "u1", "one@example.com")
	p := f.project(t, "u1", c.ID, "P-001")

	_, err := f.notes.Create(context.Background(), "u1", ports.CreateDeliveryNoteInput{
		ClientID: c.ID, ProjectID: p.ID, Format: "days", Description: "x",
	})
	if !errors.Is(err, domain.ErrInvalidFormat) {
		t.Fatalf("expected ErrInvalidFormat, got %v", err)
	}
}

func TestDeliveryNoteService_Sign(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	c := f.client(t, "u1", "acme@example.com")
	p := f.project(t, "u1", c.ID, "P-001")
	n := f.note(t, "u1", p, domain.FormatHours)

	res, err := f.notes.Sign(ctx, "u1", n.ID, []byte("png-bytes"), "firma.png")
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}
	if !strings.HasPrefix(res.SignatureURL, "https://gw.test/ipfs/") || !strings.HasPrefix(res.PDFURL, "https://gw.test/ipfs/") {
		t.Fatalf("unexpected references: %+v", res)
	}
	if got := f.uploader.calls; len(got) != 2 || got[0] != "firma.png" || got[1] != "albaran_"+n.ID+".pdf" {
		t.Fatalf("unexpected upload order: %v", got)
	}
	if len(f.renderer.rendered) != 1 || f.renderer.rendered[0].Signed {
		t.Fatalf("the unsigned note must be rendered once: %+v", f.renderer.rendered)
	}

	stored, err := f.store.DeliveryNotes.FindByID(ctx, "u1", n.ID, domain.ScopeActive)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if !stored.Signed || *stored.Sign != res.SignatureURL || *stored.PDFURL != res.PDFURL {
		t.Fatalf("note not persisted as signed: %+v", stored)
	}
}

func TestDeliveryNoteService_Sign_IsOneShot(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	c := f.client(t, "u1", "acme@example.com")
	p := f.project(t, "u1", c.ID, "P-001")
	n := f.note(t, "u1", p, domain.FormatHours)

	if _, err := f.notes.Sign(ctx, "u1", n.ID, []byte("a"), "a.png"); err != nil {
		t.Fatalf("first Sign: %v", err)
	}
	_, err := f.notes.Sign(ctx, "u1", n.ID, []byte("b"), "b.png")
	if !errors.Is(err, domain.ErrAlreadySigned) {
		t.Fatalf("expected ErrAlreadySigned, got %v", err)
	}
	var se *SignError
	if !errors.As(err, &se) || se.Step != stepGuard {
		t.Fatalf("expected guard step failure, got %v", err)
	}
	if len(f.uploader.calls) != 2 {
		t.Fatalf("rejected sign must not upload, calls: %v", f.uploader.calls)
	}
}

func TestDeliveryNoteService_Sign_PartialFailureLeavesNoteUnsigned(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	c := f.client(t, "u1", "acme@example.com")
	p := f.project(t, "u1", c.ID, "P-001")
	n := f.note(t, "u1", p, domain.FormatHours)
	f.uploader.failOn = "albaran_" + n.ID + ".pdf"

	_, err := f.notes.Sign(ctx, "u1", n.ID, []byte("png"), "firma.png")
	var se *SignError
	if !errors.As(err, &se) || se.Step != stepUploadPDF {
		t.Fatalf("expected upload_pdf failure, got %v", err)
	}

	stored, _ := f.store.DeliveryNotes.FindByID(ctx, "u1", n.ID, domain.ScopeActive)
	if stored.Signed || stored.Sign != nil || stored.PDFURL != nil {
		t.Fatalf("note must stay unsigned: %+v", stored)
	}

	// The caller retries the whole operation.
	f.uploader.failOn = ""
	if _, err := f.notes.Sign(ctx, "u1", n.ID, []byte("png"), "firma.png"); err != nil {
		t.Fatalf("retry: %v", err)
	}
}

func TestDeliveryNoteService_Sign_RenderFailure(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	c := f.client(t, "u1", "acme@example.com")
	p := f.project(t, "u1", c.ID, "P-001")
	n := f.note(t, "u1", p, domain.FormatHours)
	f.renderer.err = errors.New("font missing")

	_, err := f.notes.Sign(ctx, "u1", n.ID, []byte("png"), "firma.png")
	var se *SignError
	if !errors.As(err, &se) || se.Step != stepRender {
		t.Fatalf("expected render failure, got %v", err)
	}
}

func TestDeliveryNoteService_Sign_NotFound(t *testing.T) {
	f := newFixture()
	c := f.client(t, "u1", "acme@example.com")
	p := f.project(t, "u1", c.ID, "P-001")
	n := f.note(t, "u1", p, domain.FormatHours)

	_, err := f.notes.Sign(context.Background(), "u2", n.ID, []byte("png"), "firma.png")
	if !errors.Is(err, domain.ErrDeliveryNoteNotFound) {
		t.Fatalf("expected ErrDeliveryNoteNotFound, got %v", err)
	}
	if len(f.uploader.calls) != 0 {
		t.Fatalf("nothing must be uploaded, calls: %v", f.uploader.calls)
	}
}

func TestDeliveryNoteService_Sign_PurgedProject(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	c := f.client(t, "u1", "acme@example.com")
	p := f.project(t, "u1", c.ID, "P-001")
	n := f.note(t, "u1", p, domain.FormatHours)
	if err := f.projects.Delete(ctx, "u1", p.ID, false); err != nil {
		t.Fatalf("purge project: %v", err)
	}

	_, err := f.notes.Sign(ctx, "u1", n.ID, []byte("png"), "firma.png")
	if !errors.Is(err, domain.ErrProjectNotFound) {
		t.Fatalf("expected ErrProjectNotFound, got %v", err)
	}
	if len(f.uploader.calls) != 0 {
		t.Fatalf("nothing must be uploaded, calls: %v", f.uploader.calls)
	}
}

func TestDeliveryNoteService_PDF_SoftDeletedRelationsStillRender(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	c := f.client(t, "u1", "acme@example.com")
	p := f.project(t, "u1", c.ID, "P-001")
	n := f.note(t, "u1", p, domain.FormatMaterials)
	_ = f.projects.Delete(ctx, "u1", p.ID, true)

	doc, err := f.notes.PDF(ctx, "u1", n.ID)
	if err != nil {
		t.Fatalf("PDF: %v", err)
	}
	if doc.Filename != "albaran_"+n.ID+".pdf" {
		t.Fatalf("unexpected filename %q", doc.Filename)
	}
	if !strings.Contains(string(doc.Content), "Montaje de tabiques") {
		t.Fatalf("description missing from document")
	}
}

func TestDeliveryNoteService_DeleteSignedAllowed(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	c := f.client(t, "u1", "acme@example.com")
	p := f.project(t, "u1", c.ID, "P-001")
	n := f.note(t, "u1", p, domain.FormatHours)
	_, _ = f.notes.Sign(ctx, "u1", n.ID, []byte("png"), "firma.png")

	if err := f.notes.Delete(ctx, "u1", n.ID, true); err != nil {
		t.Fatalf("soft delete signed note: %v", err)
	}
	if _, err := f.notes.Get(ctx, "u1", n.ID); !errors.Is(err, domain.ErrDeliveryNoteNotFound) {
		t.Fatalf("expected ErrDeliveryNoteNotFound, got %v", err)
	}
	if err := f.notes.Restore(ctx, "u1", n.ID); err != nil {
		t.Fatalf("Restore: %v", err)
	}
	detail, err := f.notes.Get(ctx, "u1", n.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !detail.Signed || detail.Project == nil || detail.Client == nil {
		t.Fatalf("unexpected detail: %+v", detail)
	}
	if err := f.notes.Delete(ctx, "u1", n.ID, false); err != nil {
		t.Fatalf("hard delete: %v", err)
	}
}

func TestDeliveryNoteService_List_ResolvesRelations(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	c := f.client(t, "u1", "acme@example.com")
	kept := f.project(t, "u1", c.ID, "P-001")
	purged := f.project(t, "u1", c.ID, "P-002")
	f.note(t, "u1", kept, domain.FormatHours)
	f.note(t, "u1", purged, domain.FormatMaterials)
	if err := f.projects.Delete(ctx, "u1", purged.ID, false); err != nil {
		t.Fatalf("purge project: %v", err)
	}

	notes, err := f.notes.List(ctx, "u1", domain.ScopeActive)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(notes) != 2 {
		t.Fatalf("expected 2 notes, got %d", len(notes))
	}
	for _, n := range notes {
		if n.Client == nil || n.Client.ID != c.ID {
			t.Fatalf("client not resolved on %s: %+v", n.ID, n.Client)
		}
		switch n.ProjectID {
		case kept.ID:
			if n.Project == nil || n.Project.Name != kept.Name {
				t.Fatalf("project not resolved on %s", n.ID)
			}
		case purged.ID:
			if n.Project != nil {
				t.Fatalf("purged project must stay nil, got %+v", n.Project)
			}
		}
	}

	if other, err := f.notes.List(ctx, "u2", domain.ScopeActive); err != nil || len(other) != 0 {
		t.Fatalf("expected no notes for another owner, got %d (%v)", len(other), err)
	}
}
