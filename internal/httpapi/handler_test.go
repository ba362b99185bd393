package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gluislopez/carwash-v2-sub000/internal/auth"
	"github.com/gluislopez/carwash-v2-sub000/internal/lifecycle"
	"github.com/gluislopez/carwash-v2-sub000/internal/models"
	"github.com/gluislopez/carwash-v2-sub000/internal/reporting"
	"github.com/gluislopez/carwash-v2-sub000/internal/storage/sqlite"
)

type fixture struct {
	handler   http.Handler
	api       *Handler
	store     *sqlite.SQLiteStore
	jwt       *auth.JWTManager
	authn     *auth.PasswordAuthenticator
	serviceID string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	tempDir, err := os.MkdirTemp("", "carwash-httpapi-*")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(tempDir) })

	store, err := sqlite.New(filepath.Join(tempDir, "test.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	ctx := context.Background()
	service := &models.Service{Name: "Full Wash", Price: 40, Commission: 10}
	if err := store.CreateService(ctx, service); err != nil {
		t.Fatalf("failed to seed service: %v", err)
	}

	machine := lifecycle.NewMachine(store)
	reporter := reporting.NewReporter(store, false)
	authn := auth.NewPasswordAuthenticator(store)
	jwtManager := auth.NewJWTManager("test-secret", time.Hour)
	handler := NewHandler(store, machine, reporter, authn, jwtManager)

	return &fixture{
		handler:   handler.Routes(),
		api:       handler,
		store:     store,
		jwt:       jwtManager,
		authn:     authn,
		serviceID: service.ID,
	}
}

// register creates an employee directly and returns a bearer token.
func (f *fixture) register(t *testing.T, name, role string) (string, string) {
	t.Helper()
	employee, err := f.authn.Register(context.Background(), name, role, "password123")
	if err != nil {
		t.Fatalf("failed to register %s: %v", name, err)
	}
	token, err := f.jwt.Generate(employee)
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}
	return employee.ID, token
}

func (f *fixture) do(t *testing.T, method, path, token string, payload interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var body *bytes.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("failed to marshal payload: %v", err)
		}
		body = bytes.NewReader(raw)
	} else {
		body = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, body)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp := httptest.NewRecorder()
	f.handler.ServeHTTP(resp, req)
	return resp
}

func decodeTicket(t *testing.T, resp *httptest.ResponseRecorder) models.Ticket {
	t.Helper()
	var ticket models.Ticket
	if err := json.NewDecoder(resp.Body).Decode(&ticket); err != nil {
		t.Fatalf("failed to decode ticket: %v", err)
	}
	return ticket
}

func TestLogin(t *testing.T) {
	f := newFixture(t)
	f.register(t, "luis", models.RoleAdmin)

	resp := f.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{
		"name": "luis", "password": "password123",
	})
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}

	var login loginResponse
	if err := json.NewDecoder(resp.Body).Decode(&login); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if login.Token == "" {
		t.Error("expected a token")
	}
	if login.Employee == nil || login.Employee.Name != "luis" {
		t.Errorf("unexpected employee: %+v", login.Employee)
	}

	resp = f.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{
		"name": "luis", "password": "wrong-password",
	})
	if resp.Code != http.StatusUnauthorized {
		t.Errorf("expected status 401 for bad password, got %d", resp.Code)
	}
}

func TestRegisterBootstrap(t *testing.T) {
	f := newFixture(t)

	// First account needs no token.
	resp := f.do(t, http.MethodPost, "/api/auth/register", "", map[string]string{
		"name": "owner", "role": models.RoleAdmin, "password": "password123",
	})
	if resp.Code != http.StatusOK {
		t.Fatalf("bootstrap register: expected status 200, got %d: %s", resp.Code, resp.Body.String())
	}

	// After that, anonymous registration is rejected.
	resp = f.do(t, http.MethodPost, "/api/auth/register", "", map[string]string{
		"name": "intruder", "role": models.RoleAdmin, "password": "password123",
	})
	if resp.Code != http.StatusForbidden {
		t.Errorf("anonymous register: expected status 403, got %d", resp.Code)
	}

	// An employee token is not enough either.
	_, workerToken := f.register(t, "worker", models.RoleEmployee)
	resp = f.do(t, http.MethodPost, "/api/auth/register", workerToken, map[string]string{
		"name": "another", "password": "password123",
	})
	if resp.Code != http.StatusForbidden {
		t.Errorf("employee register: expected status 403, got %d", resp.Code)
	}

	// An admin token is.
	resp = f.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{
		"name": "owner", "password": "password123",
	})
	var login loginResponse
	if err := json.NewDecoder(resp.Body).Decode(&login); err != nil {
		t.Fatalf("failed to decode login: %v", err)
	}
	resp = f.do(t, http.MethodPost, "/api/auth/register", login.Token, map[string]string{
		"name": "staff", "password": "password123",
	})
	if resp.Code != http.StatusOK {
		t.Errorf("admin register: expected status 200, got %d: %s", resp.Code, resp.Body.String())
	}
}

func TestAuthRequired(t *testing.T) {
	f := newFixture(t)

	resp := f.do(t, http.MethodGet, "/api/tickets", "", nil)
	if resp.Code != http.StatusUnauthorized {
		t.Errorf("expected status 401 without token, got %d", resp.Code)
	}

	resp = f.do(t, http.MethodGet, "/api/tickets", "not-a-valid-token", nil)
	if resp.Code != http.StatusUnauthorized {
		t.Errorf("expected status 401 with bad token, got %d", resp.Code)
	}

	resp = f.do(t, http.MethodGet, "/healthz", "", nil)
	if resp.Code != http.StatusOK {
		t.Errorf("expected status 200 for health, got %d", resp.Code)
	}
}

func TestTicketLifecycleFlow(t *testing.T) {
	f := newFixture(t)
	employeeID, token := f.register(t, "luis", models.RoleAdmin)

	// Create
	resp := f.do(t, http.MethodPost, "/api/tickets", token, map[string]interface{}{
		"service_id": f.serviceID,
	})
	if resp.Code != http.StatusOK {
		t.Fatalf("create: expected status 200, got %d: %s", resp.Code, resp.Body.String())
	}
	ticket := decodeTicket(t, resp)
	if ticket.Status != models.StatusWaiting {
		t.Fatalf("expected waiting status, got %s", ticket.Status)
	}

	// Start
	resp = f.do(t, http.MethodPost, "/api/tickets/"+ticket.ID+"/actions/start", token, map[string]interface{}{
		"employee_ids": []string{employeeID},
	})
	if resp.Code != http.StatusOK {
		t.Fatalf("start: expected status 200, got %d: %s", resp.Code, resp.Body.String())
	}
	ticket = decodeTicket(t, resp)
	if ticket.Status != models.StatusInProgress {
		t.Fatalf("expected in_progress status, got %s", ticket.Status)
	}

	// Ready
	resp = f.do(t, http.MethodPost, "/api/tickets/"+ticket.ID+"/actions/ready", token, map[string]interface{}{
		"checklist": map[string]bool{
			"exterior_clean":   true,
			"interior_clean":   true,
			"windows_clean":    true,
			"dried_and_shined": true,
		},
	})
	if resp.Code != http.StatusOK {
		t.Fatalf("ready: expected status 200, got %d: %s", resp.Code, resp.Body.String())
	}
	var ready readyResponse
	if err := json.NewDecoder(resp.Body).Decode(&ready); err != nil {
		t.Fatalf("failed to decode ready response: %v", err)
	}
	if ready.Ticket.Status != models.StatusReady {
		t.Fatalf("expected ready status, got %s", ready.Ticket.Status)
	}

	// Pay
	resp = f.do(t, http.MethodPost, "/api/tickets/"+ticket.ID+"/actions/pay", token, map[string]interface{}{
		"payment_method": models.PaymentCash,
		"tip":            5.0,
	})
	if resp.Code != http.StatusOK {
		t.Fatalf("pay: expected status 200, got %d: %s", resp.Code, resp.Body.String())
	}
	ticket = decodeTicket(t, resp)
	if ticket.Status != models.StatusPaid {
		t.Fatalf("expected paid status, got %s", ticket.Status)
	}
	if ticket.Tip != 5 {
		t.Errorf("expected tip 5, got %v", ticket.Tip)
	}
}

func TestInvalidTransitionConflict(t *testing.T) {
	f := newFixture(t)
	_, token := f.register(t, "luis", models.RoleAdmin)

	resp := f.do(t, http.MethodPost, "/api/tickets", token, map[string]interface{}{
		"service_id": f.serviceID,
	})
	ticket := decodeTicket(t, resp)

	// Paying a waiting ticket must be rejected.
	resp = f.do(t, http.MethodPost, "/api/tickets/"+ticket.ID+"/actions/pay", token, map[string]interface{}{
		"payment_method": models.PaymentCash,
	})
	if resp.Code != http.StatusConflict {
		t.Fatalf("expected status 409, got %d", resp.Code)
	}

	var errResp errorResponse
	if err := json.NewDecoder(resp.Body).Decode(&errResp); err != nil {
		t.Fatalf("failed to decode error: %v", err)
	}
	if errResp.Error.Code != "invalid_transition" {
		t.Errorf("expected error code invalid_transition, got %s", errResp.Error.Code)
	}
}

func TestCreateTicketUnknownService(t *testing.T) {
	f := newFixture(t)
	_, token := f.register(t, "luis", models.RoleAdmin)

	resp := f.do(t, http.MethodPost, "/api/tickets", token, map[string]interface{}{
		"service_id": "no-such-service",
	})
	if resp.Code != http.StatusNotFound {
		t.Errorf("expected status 404, got %d", resp.Code)
	}
}

func TestCreateTicketUnknownField(t *testing.T) {
	f := newFixture(t)
	_, token := f.register(t, "luis", models.RoleAdmin)

	resp := f.do(t, http.MethodPost, "/api/tickets", token, map[string]interface{}{
		"service_id": f.serviceID,
		"bogus":      true,
	})
	if resp.Code != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", resp.Code)
	}
}

func TestReportRoleGating(t *testing.T) {
	f := newFixture(t)
	_, adminToken := f.register(t, "admin", models.RoleAdmin)
	_, workerToken := f.register(t, "worker", models.RoleEmployee)

	resp := f.do(t, http.MethodGet, "/api/reports/summary", adminToken, nil)
	if resp.Code != http.StatusOK {
		t.Errorf("admin summary: expected status 200, got %d", resp.Code)
	}

	resp = f.do(t, http.MethodGet, "/api/reports/summary", workerToken, nil)
	if resp.Code != http.StatusForbidden {
		t.Errorf("worker summary: expected status 403, got %d", resp.Code)
	}

	// Payroll is visible to everyone but filtered to the caller's own row.
	resp = f.do(t, http.MethodGet, "/api/reports/payroll", workerToken, nil)
	if resp.Code != http.StatusOK {
		t.Errorf("worker payroll: expected status 200, got %d", resp.Code)
	}
}

func TestSettingsRoundTrip(t *testing.T) {
	f := newFixture(t)
	_, token := f.register(t, "admin", models.RoleAdmin)

	resp := f.do(t, http.MethodPut, "/api/settings", token, map[string]interface{}{
		"daily_target": 650.0,
		"review_link":  "https://g.page/r/abc/review",
		"stripe_link":  "https://buy.stripe.com/xyz",
	})
	if resp.Code != http.StatusOK {
		t.Fatalf("put settings: expected status 200, got %d: %s", resp.Code, resp.Body.String())
	}

	resp = f.do(t, http.MethodGet, "/api/settings", token, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("get settings: expected status 200, got %d", resp.Code)
	}
	var settings models.Settings
	if err := json.NewDecoder(resp.Body).Decode(&settings); err != nil {
		t.Fatalf("failed to decode settings: %v", err)
	}
	if settings.DailyTarget != 650 {
		t.Errorf("expected daily_target 650, got %v", settings.DailyTarget)
	}
}

func TestFeedbackIsPublic(t *testing.T) {
	f := newFixture(t)
	_, token := f.register(t, "admin", models.RoleAdmin)

	resp := f.do(t, http.MethodPost, "/api/tickets", token, map[string]interface{}{
		"service_id": f.serviceID,
	})
	ticket := decodeTicket(t, resp)

	// No token: the review link is followed by the customer.
	resp = f.do(t, http.MethodPost, "/api/feedback", "", map[string]interface{}{
		"transaction_id": ticket.ID,
		"rating":         5,
		"comment":        "spotless",
	})
	if resp.Code != http.StatusOK {
		t.Errorf("feedback: expected status 200, got %d: %s", resp.Code, resp.Body.String())
	}

	resp = f.do(t, http.MethodPost, "/api/feedback", "", map[string]interface{}{
		"transaction_id": "no-such-ticket",
		"rating":         5,
	})
	if resp.Code != http.StatusNotFound {
		t.Errorf("feedback unknown ticket: expected status 404, got %d", resp.Code)
	}

	resp = f.do(t, http.MethodPost, "/api/feedback", "", map[string]interface{}{
		"transaction_id": ticket.ID,
		"rating":         9,
	})
	if resp.Code != http.StatusBadRequest {
		t.Errorf("feedback bad rating: expected status 400, got %d", resp.Code)
	}
}

func TestVehicleLookup(t *testing.T) {
	f := newFixture(t)
	_, token := f.register(t, "admin", models.RoleAdmin)

	resp := f.do(t, http.MethodPost, "/api/customers", token, map[string]interface{}{
		"name": "Maria",
	})
	if resp.Code != http.StatusOK {
		t.Fatalf("create customer: expected status 200, got %d: %s", resp.Code, resp.Body.String())
	}
	var customer models.Customer
	if err := json.NewDecoder(resp.Body).Decode(&customer); err != nil {
		t.Fatalf("failed to decode customer: %v", err)
	}

	resp = f.do(t, http.MethodPost, "/api/vehicles", token, map[string]interface{}{
		"customer_id": customer.ID,
		"plate":       "ABC-123",
		"make":        "Toyota",
	})
	if resp.Code != http.StatusOK {
		t.Fatalf("create vehicle: expected status 200, got %d: %s", resp.Code, resp.Body.String())
	}
	var vehicle models.Vehicle
	if err := json.NewDecoder(resp.Body).Decode(&vehicle); err != nil {
		t.Fatalf("failed to decode vehicle: %v", err)
	}

	resp = f.do(t, http.MethodGet, "/api/vehicles?id="+vehicle.ID, token, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("get vehicle: expected status 200, got %d: %s", resp.Code, resp.Body.String())
	}
	var fetched models.Vehicle
	if err := json.NewDecoder(resp.Body).Decode(&fetched); err != nil {
		t.Fatalf("failed to decode vehicle: %v", err)
	}
	if fetched.Plate != "ABC-123" {
		t.Errorf("expected plate ABC-123, got %s", fetched.Plate)
	}

	resp = f.do(t, http.MethodGet, "/api/vehicles", token, nil)
	if resp.Code != http.StatusBadRequest {
		t.Errorf("get without id: expected status 400, got %d", resp.Code)
	}

	resp = f.do(t, http.MethodGet, "/api/vehicles?id=no-such-vehicle", token, nil)
	if resp.Code != http.StatusNotFound {
		t.Errorf("get unknown vehicle: expected status 404, got %d", resp.Code)
	}
}

func TestTicketStatusFilter(t *testing.T) {
	f := newFixture(t)
	employeeID, token := f.register(t, "admin", models.RoleAdmin)

	resp := f.do(t, http.MethodPost, "/api/tickets", token, map[string]interface{}{
		"service_id": f.serviceID,
	})
	first := decodeTicket(t, resp)
	resp = f.do(t, http.MethodPost, "/api/tickets", token, map[string]interface{}{
		"service_id": f.serviceID,
	})
	if resp.Code != http.StatusOK {
		t.Fatalf("create: expected status 200, got %d", resp.Code)
	}

	resp = f.do(t, http.MethodPost, "/api/tickets/"+first.ID+"/actions/start", token, map[string]interface{}{
		"employee_ids": []string{employeeID},
	})
	if resp.Code != http.StatusOK {
		t.Fatalf("start: expected status 200, got %d: %s", resp.Code, resp.Body.String())
	}

	resp = f.do(t, http.MethodGet, "/api/tickets?status=in_progress", token, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("list: expected status 200, got %d: %s", resp.Code, resp.Body.String())
	}
	var tickets []models.Ticket
	if err := json.NewDecoder(resp.Body).Decode(&tickets); err != nil {
		t.Fatalf("failed to decode tickets: %v", err)
	}
	if len(tickets) != 1 || tickets[0].ID != first.ID {
		t.Errorf("expected only the started ticket, got %d tickets", len(tickets))
	}

	resp = f.do(t, http.MethodGet, "/api/tickets?status=half_washed", token, nil)
	if resp.Code != http.StatusBadRequest {
		t.Errorf("unknown status: expected status 400, got %d", resp.Code)
	}
}

func TestExpenseValidation(t *testing.T) {
	f := newFixture(t)
	employeeID, token := f.register(t, "admin", models.RoleAdmin)

	resp := f.do(t, http.MethodPost, "/api/expenses", token, map[string]interface{}{
		"category": "lunch",
		"amount":   8.0,
	})
	if resp.Code != http.StatusBadRequest {
		t.Errorf("lunch without employee: expected status 400, got %d", resp.Code)
	}

	resp = f.do(t, http.MethodPost, "/api/expenses", token, map[string]interface{}{
		"category":    "lunch",
		"amount":      8.0,
		"employee_id": employeeID,
	})
	if resp.Code != http.StatusOK {
		t.Errorf("lunch expense: expected status 200, got %d: %s", resp.Code, resp.Body.String())
	}

	resp = f.do(t, http.MethodPost, "/api/expenses", token, map[string]interface{}{
		"category": "rent",
		"amount":   100.0,
	})
	if resp.Code != http.StatusBadRequest {
		t.Errorf("unknown category: expected status 400, got %d", resp.Code)
	}
}
