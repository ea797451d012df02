package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"sync"
	"testing"

	"github.com/rs/zerolog"

	"github.com/albaranes/deliverynotes-api/internal/core/domain"
	"github.com/albaranes/deliverynotes-api/internal/core/ports"
	"github.com/albaranes/deliverynotes-api/internal/infrastructure/db/memory"
)

// ---------------------------------------------------------------------------
// Stubs
// ---------------------------------------------------------------------------

type stubUploader struct {
	calls []string
	// failOn makes the upload of the named blob fail.
	failOn string
}

func (u *stubUploader) Upload(_ context.Context, data []byte, name string) (*ports.UploadResult, error) {
	u.calls = append(u.calls, name)
	if name == u.failOn {
		return nil, errors.New("gateway unavailable")
	}
	sum := sha256.Sum256(data)
	hash := hex.EncodeToString(sum[:])
	return &ports.UploadResult{ContentHash: hash, GatewayURL: "https://gw.test/ipfs/" + hash}, nil
}

type stubRenderer struct {
	err      error
	rendered []*domain.DeliveryNote
}

func (r *stubRenderer) Render(note *domain.DeliveryNote, project *domain.Project, client *domain.Client) ([]byte, error) {
	if r.err != nil {
		return nil, r.err
	}
	if project == nil || client == nil {
		return nil, errors.New("renderer called without relations")
	}
	clone := *note
	r.rendered = append(r.rendered, &clone)
	return []byte("%PDF " + note.Description + " " + project.Name + " " + client.Name), nil
}

type stubNotifier struct {
	mu   sync.Mutex
	sent []ports.Notification
}

func (n *stubNotifier) Enqueue(msg ports.Notification) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, msg)
}

// ---------------------------------------------------------------------------
// Fixtures
// ---------------------------------------------------------------------------

type fixture struct {
	store    *memory.Store
	uploader *stubUploader
	renderer *stubRenderer
	notifier *stubNotifier

	clients  *ClientService
	projects *ProjectService
	notes    *DeliveryNoteService
}

func newFixture() *fixture {
	store := memory.NewStore()
	up := &stubUploader{}
	rd := &stubRenderer{}
	log := zerolog.Nop()
	return &fixture{
		store:    store,
		uploader: up,
		renderer: rd,
		notifier: &stubNotifier{},
		clients:  NewClientService(store.Clients, log),
		projects: NewProjectService(store.Projects, store.Clients, log),
		notes:    NewDeliveryNoteService(store.DeliveryNotes, store.Projects, store.Clients, store.Users, rd, up, log),
	}
}

func (f *fixture) client(t *testing.T, owner, email string) *domain.Client {
	t.Helper()
	c, err := f.clients.Create(context.Background(), owner, ports.CreateClientInput{Name: "ACME", Address: "Calle Mayor 1", Email: email})
	if err != nil {
		t.Fatalf("create client: %v", err)
	}
	return c
}

func projectInput(clientID, code string) ports.CreateProjectInput {
	return ports.CreateProjectInput{
		Name:        "Reforma oficina",
		ProjectCode: code,
		Code:        "INT-" + code,
		Address:     domain.ProjectAddress{Street: "Gran Via", Number: 5, Postal: 28013, City: "Madrid", Province: "Madrid"},
		ClientID:    clientID,
		Begin:       "01-02-2024",
		End:         "28-02-2024",
	}
}

func (f *fixture) project(t *testing.T, owner, clientID, code string) *domain.Project {
	t.Helper()
	p, err := f.projects.Create(context.Background(), owner, projectInput(clientID, code))
	if err != nil {
		t.Fatalf("create project: %v", err)
	}
	return p
}

func (f *fixture) note(t *testing.T, owner string, p *domain.Project, format domain.NoteFormat) *domain.DeliveryNote {
	t.Helper()
	n, err := f.notes.Create(context.Background(), owner, ports.CreateDeliveryNoteInput{
		ClientID:    p.ClientID,
		ProjectID:   p.ID,
		Format:      format,
		Hours:       7.5,
		Description: "Montaje de tabiques",
	})
	if err != nil {
		t.Fatalf("create delivery note: %v", err)
	}
	return n
}
