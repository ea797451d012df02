package api

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/albaranes/deliverynotes-api/internal/core/domain"
	"github.com/albaranes/deliverynotes-api/internal/core/ports"
	"github.com/albaranes/deliverynotes-api/internal/core/service"
	"github.com/albaranes/deliverynotes-api/internal/infrastructure/db/memory"
	"github.com/albaranes/deliverynotes-api/internal/infrastructure/pdf"
	"github.com/albaranes/deliverynotes-api/internal/infrastructure/storage"
)

type discardNotifier struct{}

func (discardNotifier) Enqueue(ports.Notification) {}

// fakePinata answers pinFileToIPFS with a hash derived from the file bytes.
func fakePinata(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		file, _, err := r.FormFile("file")
		if err != nil {
			http.Error(w, "file missing", http.StatusBadRequest)
			return
		}
		defer file.Close()
		data, _ := io.ReadAll(file)
		_ = json.NewEncoder(w).Encode(map[string]any{"IpfsHash": "Qm" + storage.Digest(data)[:16]})
	}))
	t.Cleanup(srv.Close)
	return srv
}

type testApp struct {
	e     *echo.Echo
	store *memory.Store
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	log := zerolog.Nop()
	store := memory.NewStore()
	tokens := service.NewJWTIssuer("test-secret", time.Hour, 15*time.Minute)

	pinata := fakePinata(t)
	uploader := storage.WithTimeout(
		storage.NewPinataUploader(storage.PinataConfig{APIURL: pinata.URL, JWT: "jwt", GatewayHost: "gateway.test"}, pinata.Client()),
		5*time.Second,
	)

	reg := prometheus.NewRegistry()
	e := NewRouter(Options{
		Log:      log,
		Tokens:   tokens,
		Accounts: store.Users,
		Services: Services{
			Auth:      service.NewAuthService(store.Users, tokens, discardNotifier{}, log),
			Passwords: service.NewPasswordService(store.Users, tokens, log),
			Users:     service.NewUserService(store.Users, uploader, discardNotifier{}, log),
			Clients:   service.NewClientService(store.Clients, log),
			Projects:  service.NewProjectService(store.Projects, store.Clients, log),
			DeliveryNotes: service.NewDeliveryNoteService(
				store.DeliveryNotes, store.Projects, store.Clients, store.Users,
				pdf.NewRenderer(), uploader, log,
			),
		},
		Registerer: reg,
		Gatherer:   reg,
	})
	return &testApp{e: e, store: store}
}

func (a *testApp) do(t *testing.T, method, path, body, token string) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	a.e.ServeHTTP(rec, req)
	return rec
}

func expect(t *testing.T, rec *httptest.ResponseRecorder, code int) map[string]any {
	t.Helper()
	if rec.Code != code {
		t.Fatalf("expected %d, got %d: %s", code, rec.Code, rec.Body.String())
	}
	var resp map[string]any
	_ = json.Unmarshal(rec.Body.Bytes(), &resp)
	return resp
}

func dataID(t *testing.T, resp map[string]any) string {
	t.Helper()
	data, ok := resp["data"].(map[string]any)
	if !ok {
		t.Fatalf("missing data in %+v", resp)
	}
	id, _ := data["_id"].(string)
	if id == "" {
		t.Fatalf("missing _id in %+v", data)
	}
	return id
}

// session registers, verifies and logs in a user, returning its session token.
func (a *testApp) session(t *testing.T, email string) string {
	t.Helper()
	creds := `{"email":"` + email + `","password":"supersecret"}`

	reg := expect(t, a.do(t, http.MethodPost, "/users/register", creds, ""), http.StatusCreated)
	token, _ := reg["token"].(string)
	userID, _ := reg["user"].(map[string]any)["_id"].(string)

	user, err := a.store.Users.FindByID(context.Background(), userID, domain.ScopeActive)
	if err != nil {
		t.Fatalf("registered user not stored: %v", err)
	}
	expect(t, a.do(t, http.MethodPut, "/users/validate", `{"code":"`+user.VerificationCode+`"}`, token), http.StatusOK)

	login := expect(t, a.do(t, http.MethodPost, "/users/login", creds, ""), http.StatusOK)
	token, _ = login["token"].(string)
	if token == "" {
		t.Fatalf("login returned no token")
	}
	return token
}

func (a *testApp) client(t *testing.T, token, email string) string {
	t.Helper()
	body := `{"name":"Acme","address":"Calle Mayor 1","email":"` + email + `"}`
	return dataID(t, expect(t, a.do(t, http.MethodPost, "/client", body, token), http.StatusCreated))
}

func (a *testApp) project(t *testing.T, token, clientID, code string) string {
	t.Helper()
	body := `{"name":"Warehouse","projectCode":"` + code + `","code":"WH","clientId":"` + clientID + `",
		"address":{"street":"Gran Via","number":10,"postal":28013,"city":"Madrid","province":"Madrid"},
		"begin":"01-03-2025","end":"31-03-2025","notes":"night shifts"}`
	return dataID(t, expect(t, a.do(t, http.MethodPost, "/projects", body, token), http.StatusCreated))
}

func TestRouter_SignAndDownloadDeliveryNote(t *testing.T) {
	app := newTestApp(t)
	token := app.session(t, "ana@example.com")
	clientID := app.client(t, token, "acme@example.com")
	projectID := app.project(t, token, clientID, "P-001")

	note := `{"clientId":"` + clientID + `","projectId":"` + projectID + `","format":"hours","hours":8,"description":"Wiring the loading bay"}`
	noteID := dataID(t, expect(t, app.do(t, http.MethodPost, "/deliverynotes", note, token), http.StatusCreated))

	sig := base64.StdEncoding.EncodeToString([]byte("\x89PNG signature"))
	sign := `{"deliveryNoteId":"` + noteID + `","signatureImageBuffer":"` + sig + `","signatureImageName":"firma.png"}`
	resp := expect(t, app.do(t, http.MethodPost, "/deliverynotes/sign", sign, token), http.StatusOK)

	data, _ := resp["data"].(map[string]any)
	for _, key := range []string{"signatureUrl", "pdfUrl"} {
		url, _ := data[key].(string)
		if !strings.HasPrefix(url, "https://gateway.test/ipfs/Qm") {
			t.Fatalf("unexpected %s: %q", key, url)
		}
	}

	detail := expect(t, app.do(t, http.MethodGet, "/deliverynotes/"+noteID, "", token), http.StatusOK)
	stored, _ := detail["data"].(map[string]any)
	if stored["signed"] != true || stored["sign"] != data["signatureUrl"] || stored["pdfUrl"] != data["pdfUrl"] {
		t.Fatalf("signature not persisted: %+v", stored)
	}

	rec := app.do(t, http.MethodGet, "/deliverynotes/pdf/"+noteID, "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get(echo.HeaderContentType); ct != "application/pdf" {
		t.Fatalf("unexpected content type %q", ct)
	}
	if cd := rec.Header().Get(echo.HeaderContentDisposition); cd != "attachment; filename=albaran_"+noteID+".pdf" {
		t.Fatalf("unexpected disposition %q", cd)
	}
	if !strings.Contains(rec.Body.String(), "(Description: Wiring the loading bay)") {
		t.Fatalf("pdf does not contain the description")
	}

	list := expect(t, app.do(t, http.MethodGet, "/deliverynotes", "", token), http.StatusOK)
	items, _ := list["data"].([]any)
	if len(items) != 1 {
		t.Fatalf("expected 1 note, got %+v", list["data"])
	}
	first, _ := items[0].(map[string]any)
	project, _ := first["project"].(map[string]any)
	client, _ := first["client"].(map[string]any)
	if project["_id"] != projectID || client["_id"] != clientID {
		t.Fatalf("relations not embedded in list: %+v", first)
	}

	again := expect(t, app.do(t, http.MethodPost, "/deliverynotes/sign", sign, token), http.StatusConflict)
	if again["error"] != domain.ErrAlreadySigned.Error() {
		t.Fatalf("unexpected error: %+v", again)
	}
}

func TestRouter_ClientSoftDeleteAndRestore(t *testing.T) {
	app := newTestApp(t)
	token := app.session(t, "ana@example.com")
	clientID := app.client(t, token, "acme@example.com")

	expect(t, app.do(t, http.MethodDelete, "/client/"+clientID, "", token), http.StatusOK)
	expect(t, app.do(t, http.MethodGet, "/client/"+clientID, "", token), http.StatusNotFound)

	deleted := expect(t, app.do(t, http.MethodGet, "/client?scope=deleted", "", token), http.StatusOK)
	if list, _ := deleted["data"].([]any); len(list) != 1 {
		t.Fatalf("expected one deleted client, got %+v", deleted["data"])
	}

	expect(t, app.do(t, http.MethodPatch, "/client/restore/"+clientID, "", token), http.StatusOK)
	expect(t, app.do(t, http.MethodGet, "/client/"+clientID, "", token), http.StatusOK)

	again := expect(t, app.do(t, http.MethodPatch, "/client/restore/"+clientID, "", token), http.StatusNotFound)
	if again["error"] != "not found or not deleted" {
		t.Fatalf("unexpected error: %+v", again)
	}
}

func TestRouter_HardDeleteIsFinal(t *testing.T) {
	app := newTestApp(t)
	token := app.session(t, "ana@example.com")
	clientID := app.client(t, token, "acme@example.com")

	expect(t, app.do(t, http.MethodDelete, "/client/"+clientID+"?soft=false", "", token), http.StatusOK)
	expect(t, app.do(t, http.MethodPatch, "/client/restore/"+clientID, "", token), http.StatusNotFound)

	all := expect(t, app.do(t, http.MethodGet, "/client?scope=all", "", token), http.StatusOK)
	if list, _ := all["data"].([]any); len(list) != 0 {
		t.Fatalf("purged client still listed: %+v", all["data"])
	}
}

func TestRouter_TenantIsolation(t *testing.T) {
	app := newTestApp(t)
	ana := app.session(t, "ana@example.com")
	bob := app.session(t, "bob@example.com")
	clientID := app.client(t, ana, "acme@example.com")

	expect(t, app.do(t, http.MethodGet, "/client/"+clientID, "", bob), http.StatusNotFound)
	expect(t, app.do(t, http.MethodDelete, "/client/"+clientID, "", bob), http.StatusNotFound)
	// Email uniqueness is per owner.
	app.client(t, bob, "acme@example.com")
}

func TestRouter_ProjectRules(t *testing.T) {
	app := newTestApp(t)
	token := app.session(t, "ana@example.com")
	clientID := app.client(t, token, "acme@example.com")
	app.project(t, token, clientID, "P-001")

	dup := `{"name":"Other","projectCode":"P-001","code":"X","clientId":"` + clientID + `",
		"address":{"street":"A","number":1,"postal":28001,"city":"Madrid","province":"Madrid"},
		"begin":"01-03-2025","end":"01-03-2025"}`
	expect(t, app.do(t, http.MethodPost, "/projects", dup, token), http.StatusConflict)

	reversed := strings.Replace(strings.Replace(dup, "P-001", "P-002", 1), `"end":"01-03-2025"`, `"end":"01-02-2025"`, 1)
	expect(t, app.do(t, http.MethodPost, "/projects", reversed, token), http.StatusUnprocessableEntity)

	missingClient := strings.Replace(strings.Replace(dup, "P-001", "P-003", 1), clientID, "65f1a2b3c4d5e6f7a8b9c0d1", 1)
	expect(t, app.do(t, http.MethodPost, "/projects", missingClient, token), http.StatusNotFound)
}

func TestRouter_DeliveryNoteClientMismatch(t *testing.T) {
	app := newTestApp(t)
	token := app.session(t, "ana@example.com")
	acme := app.client(t, token, "acme@example.com")
	other := app.client(t, token, "other@example.com")
	projectID := app.project(t, token, acme, "P-001")

	note := `{"clientId":"` + other + `","projectId":"` + projectID + `","format":"materials","material":"Cable","description":"Spare cable"}`
	expect(t, app.do(t, http.MethodPost, "/deliverynotes", note, token), http.StatusUnprocessableEntity)
}

func TestRouter_ValidationErrors(t *testing.T) {
	app := newTestApp(t)
	token := app.session(t, "ana@example.com")

	resp := expect(t, app.do(t, http.MethodPost, "/client", `{"name":"Acme"}`, token), http.StatusUnprocessableEntity)
	if resp["error"] != "validation failed" {
		t.Fatalf("unexpected envelope: %+v", resp)
	}
	if fields, _ := resp["fields"].([]any); len(fields) != 2 {
		t.Fatalf("expected address and email errors, got %+v", resp["fields"])
	}
}

func TestRouter_NoToken(t *testing.T) {
	app := newTestApp(t)
	for _, r := range []struct{ method, path string }{
		{http.MethodPost, "/client"},
		{http.MethodPost, "/projects"},
		{http.MethodPost, "/deliverynotes/sign"},
		{http.MethodDelete, "/users"},
		{http.MethodPut, "/password/changePassword"},
	} {
		rec := app.do(t, r.method, r.path, `{}`, "")
		if rec.Code != http.StatusUnauthorized || rec.Body.String() != "NOT_TOKEN" {
			t.Fatalf("%s %s: expected 401 NOT_TOKEN, got %d %q", r.method, r.path, rec.Code, rec.Body.String())
		}
	}

	rec := app.do(t, http.MethodGet, "/client", "", "garbage")
	if rec.Code != http.StatusUnauthorized || rec.Body.String() != "NOT_SESSION" {
		t.Fatalf("expected 401 NOT_SESSION, got %d %q", rec.Code, rec.Body.String())
	}
}

func TestRouter_PasswordReset(t *testing.T) {
	app := newTestApp(t)
	session := app.session(t, "ana@example.com")

	// A session token cannot change the password.
	expect(t, app.do(t, http.MethodPut, "/password/changePassword", `{"password":"newsecret1"}`, session), http.StatusUnauthorized)

	resp := expect(t, app.do(t, http.MethodPost, "/password/getToken", `{"email":"ana@example.com"}`, ""), http.StatusOK)
	reset, _ := resp["resetToken"].(string)
	expect(t, app.do(t, http.MethodPut, "/password/changePassword", `{"password":"newsecret1"}`, reset), http.StatusOK)

	expect(t, app.do(t, http.MethodPost, "/users/login", `{"email":"ana@example.com","password":"supersecret"}`, ""), http.StatusUnauthorized)
	expect(t, app.do(t, http.MethodPost, "/users/login", `{"email":"ana@example.com","password":"newsecret1"}`, ""), http.StatusOK)
}

func TestRouter_DeletedUserLosesSession(t *testing.T) {
	app := newTestApp(t)
	token := app.session(t, "ana@example.com")

	expect(t, app.do(t, http.MethodDelete, "/users", "", token), http.StatusOK)
	rec := app.do(t, http.MethodGet, "/users", "", token)
	if rec.Code != http.StatusUnauthorized || rec.Body.String() != "NOT_SESSION" {
		t.Fatalf("expected 401 NOT_SESSION, got %d %q", rec.Code, rec.Body.String())
	}
}

func TestRouter_Health(t *testing.T) {
	app := newTestApp(t)
	expect(t, app.do(t, http.MethodGet, "/health", "", ""), http.StatusOK)
	expect(t, app.do(t, http.MethodGet, "/health/ready", "", ""), http.StatusOK)
}
