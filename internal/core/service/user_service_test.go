package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/albaranes/deliverynotes-api/internal/core/domain"
	"github.com/albaranes/deliverynotes-api/internal/core/ports"
	"github.com/albaranes/deliverynotes-api/internal/infrastructure/db/memory"
)

func newUserFixture(t *testing.T) (*UserService, *memory.UserRepository, *stubNotifier, *domain.User) {
	t.Helper()
	repo := memory.NewUserRepository()
	notifier := &stubNotifier{}
	auth := NewAuthService(repo, NewJWTIssuer("secret", time.Hour, time.Minute), notifier, zerolog.Nop())
	res, err := auth.Register(context.Background(), "owner@example.com", "pass1234")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	return NewUserService(repo, &stubUploader{}, notifier, zerolog.Nop()), repo, notifier, res.User
}

var testCompany = domain.Company{
	Name: "Obras SL", CIF: "B12345678", Street: "Alcala", Number: 10, Postal: 28014, City: "Madrid", Province: "Madrid",
}

func TestUserService_Profile(t *testing.T) {
	svc, _, _, owner := newUserFixture(t)

	got, err := svc.UpdateProfile(context.Background(), owner.ID, ports.ProfileInput{Name: "Ana", Surnames: "Lopez Ruiz", NIF: "12345678Z"})
	if err != nil {
		t.Fatalf("UpdateProfile: %v", err)
	}
	if got.Name != "Ana" || got.NIF != "12345678Z" {
		t.Fatalf("unexpected user: %+v", got)
	}
}

func TestUserService_Company_TaxIDUnique(t *testing.T) {
	svc, repo, _, owner := newUserFixture(t)
	ctx := context.Background()

	if _, err := svc.UpdateCompany(ctx, owner.ID, testCompany); err != nil {
		t.Fatalf("UpdateCompany: %v", err)
	}
	// Same user may resubmit its own tax id.
	if _, err := svc.UpdateCompany(ctx, owner.ID, testCompany); err != nil {
		t.Fatalf("resubmit company: %v", err)
	}

	other := &domain.User{Email: "other@example.com", Role: domain.RoleUser}
	_ = repo.Create(ctx, other)
	if _, err := svc.UpdateCompany(ctx, other.ID, testCompany); !errors.Is(err, domain.ErrTaxIDTaken) {
		t.Fatalf("expected ErrTaxIDTaken, got %v", err)
	}
}

func TestUserService_Logo(t *testing.T) {
	svc, _, _, owner := newUserFixture(t)

	got, err := svc.UpdateLogo(context.Background(), owner.ID, []byte("logo"), "logo.png")
	if err != nil {
		t.Fatalf("UpdateLogo: %v", err)
	}
	if !strings.HasPrefix(got.Logo, "https://gw.test/ipfs/") {
		t.Fatalf("unexpected logo url %q", got.Logo)
	}
}

func TestUserService_Delete(t *testing.T) {
	svc, repo, _, owner := newUserFixture(t)
	ctx := context.Background()

	if err := svc.Delete(ctx, owner.ID, true); err != nil {
		t.Fatalf("soft delete: %v", err)
	}
	if _, err := svc.Get(ctx, owner.ID); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
	if deleted, _ := repo.IsDeleted(ctx, "", owner.ID); !deleted {
		t.Fatalf("user should be soft-deleted")
	}
	if err := svc.Delete(ctx, owner.ID, false); err != nil {
		t.Fatalf("hard delete of soft-deleted user: %v", err)
	}
	if _, err := repo.FindByID(ctx, owner.ID, domain.ScopeAll); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("user must be purged, got %v", err)
	}
}

func TestUserService_Invite(t *testing.T) {
	svc, _, notifier, owner := newUserFixture(t)
	ctx := context.Background()
	in := ports.InviteInput{Email: "guest@example.com", Password: "guestpass", Name: "Luis"}

	if _, err := svc.Invite(ctx, owner.ID, in); !errors.Is(err, domain.ErrCompanyRequired) {
		t.Fatalf("expected ErrCompanyRequired, got %v", err)
	}
	_, _ = svc.UpdateCompany(ctx, owner.ID, testCompany)

	guest, err := svc.Invite(ctx, owner.ID, in)
	if err != nil {
		t.Fatalf("Invite: %v", err)
	}
	if guest.Role != domain.RoleGuest || guest.InvitedBy != owner.ID {
		t.Fatalf("unexpected guest: %+v", guest)
	}
	last := notifier.sent[len(notifier.sent)-1]
	if last.To != "guest@example.com" || !strings.Contains(last.Body, guest.VerificationCode) {
		t.Fatalf("invitation mail not queued: %+v", last)
	}

	got, err := svc.Get(ctx, guest.ID)
	if err != nil {
		t.Fatalf("Get guest: %v", err)
	}
	if got.Company == nil || got.Company.CIF != testCompany.CIF {
		t.Fatalf("guest must see the inviter's company: %+v", got.Company)
	}

	if _, err := svc.Invite(ctx, guest.ID, ports.InviteInput{Email: "x@example.com", Password: "pass1234"}); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("guests cannot invite, got %v", err)
	}
}
