package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/albaranes/deliverynotes-api/internal/api/metrics"
	"github.com/albaranes/deliverynotes-api/internal/core/domain"
	"github.com/albaranes/deliverynotes-api/internal/core/ports"
)

// Signing workflow steps, used as log field and metric label.
const (
	stepLoad            = "load"
	stepGuard           = "guard"
	stepUploadSignature = "upload_signature"
	stepRender          = "render"
	stepUploadPDF       = "upload_pdf"
	stepPersist         = "persist"
)

// SignError reports the workflow step a signature failed at. It unwraps to
// the underlying cause so sentinel checks keep working.
type SignError struct {
	Step string
	Err  error
}

func (e *SignError) Error() string { return fmt.Sprintf("sign %s: %v", e.Step, e.Err) }
func (e *SignError) Unwrap() error { return e.Err }

type DeliveryNoteService struct {
	notes    ports.DeliveryNoteRepository
	projects ports.ProjectRepository
	clients  ports.ClientRepository
	users    ports.UserRepository
	renderer ports.Renderer
	uploader ports.BlobUploader
	log      zerolog.Logger
	now      func() time.Time
}

func NewDeliveryNoteService(
	notes ports.DeliveryNoteRepository,
	projects ports.ProjectRepository,
	clients ports.ClientRepository,
	users ports.UserRepository,
	renderer ports.Renderer,
	uploader ports.BlobUploader,
	log zerolog.Logger,
) *DeliveryNoteService {
	return &DeliveryNoteService{
		notes:    notes,
		projects: projects,
		clients:  clients,
		users:    users,
		renderer: renderer,
		uploader: uploader,
		log:      log,
		now:      time.Now,
	}
}

// Create stores an unsigned note. The project must belong to the client.
func (s *DeliveryNoteService) Create(ctx context.Context, ownerID string, in ports.CreateDeliveryNoteInput) (*domain.DeliveryNote, error) {
	if !in.Format.Valid() {
		return nil, domain.ErrInvalidFormat
	}
	project, err := s.projects.FindByID(ctx, ownerID, in.ProjectID, domain.ScopeActive)
	if err != nil {
		return nil, projectErr(err)
	}
	if _, err := s.clients.FindByID(ctx, ownerID, in.ClientID, domain.ScopeActive); err != nil {
		return nil, clientErr(err)
	}
	if project.ClientID != in.ClientID {
		return nil, domain.ErrProjectClientMismatch
	}

	material := in.Material
	if material == "" {
		material = domain.DefaultMaterial
	}
	now := s.now().UTC()
	n := &domain.DeliveryNote{
		OwnerID:     ownerID,
		ClientID:    in.ClientID,
		ProjectID:   in.ProjectID,
		Format:      in.Format,
		Material:    material,
		Hours:       in.Hours,
		Description: in.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.notes.Create(ctx, n); err != nil {
		return nil, err
	}
	s.log.Info().Str("delivery_note_id", n.ID).Str("project_id", n.ProjectID).Msg("delivery note created")
	return n, nil
}

// List returns the owner's notes with project, client and user resolved.
// Relations that were purged are left nil.
func (s *DeliveryNoteService) List(ctx context.Context, ownerID string, scope domain.Scope) ([]*domain.DeliveryNoteDetail, error) {
	notes, err := s.notes.List(ctx, ownerID, scope)
	if err != nil {
		return nil, err
	}
	out := make([]*domain.DeliveryNoteDetail, 0, len(notes))
	for _, n := range notes {
		detail, err := s.resolve(ctx, ownerID, n)
		if err != nil && !errors.Is(err, domain.ErrProjectNotFound) && !errors.Is(err, domain.ErrClientNotFound) {
			return nil, err
		}
		out = append(out, detail)
	}
	return out, nil
}

// Get returns the note with whatever relations still exist.
func (s *DeliveryNoteService) Get(ctx context.Context, ownerID, id string) (*domain.DeliveryNoteDetail, error) {
	detail, err := s.load(ctx, ownerID, id)
	if err != nil && !errors.Is(err, domain.ErrProjectNotFound) && !errors.Is(err, domain.ErrClientNotFound) {
		return nil, err
	}
	return detail, nil
}

// PDF renders the note as stored.
func (s *DeliveryNoteService) PDF(ctx context.Context, ownerID, id string) (*ports.PDFDocument, error) {
	detail, err := s.load(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	content, err := s.renderer.Render(detail.DeliveryNote, detail.Project, detail.Client)
	if err != nil {
		return nil, fmt.Errorf("render delivery note: %w", err)
	}
	return &ports.PDFDocument{Filename: pdfName(id), Content: content}, nil
}

// Sign uploads the signature, renders and uploads the PDF, then marks the
// note signed. Uploads are not rolled back when a later step fails; the
// blobs stay orphaned and a retry uploads identical bytes again.
func (s *DeliveryNoteService) Sign(ctx context.Context, ownerID, id string, signature []byte, signatureName string) (res *ports.SignResult, err error) {
	start := s.now()
	log := s.log.With().Str("delivery_note_id", id).Logger()
	defer func() {
		metrics.SignDuration.Observe(time.Since(start).Seconds())
		var se *SignError
		if errors.As(err, &se) {
			metrics.SignFailuresTotal.WithLabelValues(se.Step).Inc()
			log.Error().Err(se.Err).Str("step", se.Step).Msg("signing failed")
		}
	}()

	detail, err := s.load(ctx, ownerID, id)
	if err != nil {
		return nil, &SignError{Step: stepLoad, Err: err}
	}
	if !detail.Pending() {
		return nil, &SignError{Step: stepGuard, Err: domain.ErrAlreadySigned}
	}

	sig, err := s.uploader.Upload(ctx, signature, signatureName)
	if err != nil {
		return nil, &SignError{Step: stepUploadSignature, Err: err}
	}
	log.Debug().Str("step", stepUploadSignature).Str("hash", sig.ContentHash).Msg("signature uploaded")

	content, err := s.renderer.Render(detail.DeliveryNote, detail.Project, detail.Client)
	if err != nil {
		return nil, &SignError{Step: stepRender, Err: err}
	}
	log.Debug().Str("step", stepRender).Int("bytes", len(content)).Msg("pdf rendered")

	doc, err := s.uploader.Upload(ctx, content, pdfName(id))
	if err != nil {
		return nil, &SignError{Step: stepUploadPDF, Err: err}
	}
	log.Debug().Str("step", stepUploadPDF).Str("hash", doc.ContentHash).Msg("pdf uploaded")

	if _, err := s.notes.MarkSigned(ctx, ownerID, id, sig.GatewayURL, doc.GatewayURL, s.now()); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			err = domain.ErrDeliveryNoteNotFound
		}
		return nil, &SignError{Step: stepPersist, Err: err}
	}

	metrics.SignedTotal.Inc()
	log.Info().Str("signature_url", sig.GatewayURL).Str("pdf_url", doc.GatewayURL).Msg("delivery note signed")
	return &ports.SignResult{SignatureURL: sig.GatewayURL, PDFURL: doc.GatewayURL}, nil
}

func (s *DeliveryNoteService) Delete(ctx context.Context, ownerID, id string, soft bool) error {
	return remove(ctx, s.notes, "deliverynote", ownerID, id, soft, domain.ErrDeliveryNoteNotFound)
}

func (s *DeliveryNoteService) Restore(ctx context.Context, ownerID, id string) error {
	return restore(ctx, s.notes, "deliverynote", ownerID, id)
}

// load resolves an active note and its relations. Relations are looked up in
// every lifecycle state so a soft-deleted project still renders; a purged one
// yields ErrProjectNotFound or ErrClientNotFound alongside the partial detail.
func (s *DeliveryNoteService) load(ctx context.Context, ownerID, id string) (*domain.DeliveryNoteDetail, error) {
	note, err := s.notes.FindByID(ctx, ownerID, id, domain.ScopeActive)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrDeliveryNoteNotFound
		}
		return nil, err
	}
	return s.resolve(ctx, ownerID, note)
}

// resolve attaches the note's relations, reporting a purged project or client
// alongside the partial detail.
func (s *DeliveryNoteService) resolve(ctx context.Context, ownerID string, note *domain.DeliveryNote) (*domain.DeliveryNoteDetail, error) {
	detail := &domain.DeliveryNoteDetail{DeliveryNote: note}

	if u, err := s.users.FindByID(ctx, note.OwnerID, domain.ScopeAll); err == nil {
		detail.User = u
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	var missing error
	project, err := s.projects.FindByID(ctx, ownerID, note.ProjectID, domain.ScopeAll)
	switch {
	case err == nil:
		detail.Project = project
	case errors.Is(err, domain.ErrNotFound):
		missing = domain.ErrProjectNotFound
	default:
		return nil, err
	}

	client, err := s.clients.FindByID(ctx, ownerID, note.ClientID, domain.ScopeAll)
	switch {
	case err == nil:
		detail.Client = client
	case errors.Is(err, domain.ErrNotFound):
		if missing == nil {
			missing = domain.ErrClientNotFound
		}
	default:
		return nil, err
	}

	return detail, missing
}

func pdfName(id string) string {
	return "albaran_" + id + ".pdf"
}
