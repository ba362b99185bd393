// Package httpapi exposes the ticket lifecycle, reporting, and catalog
// operations as a JSON HTTP API.
package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gluislopez/carwash-v2-sub000/internal/auth"
	"github.com/gluislopez/carwash-v2-sub000/internal/lifecycle"
	"github.com/gluislopez/carwash-v2-sub000/internal/middleware"
	"github.com/gluislopez/carwash-v2-sub000/internal/models"
	"github.com/gluislopez/carwash-v2-sub000/internal/reporting"
	"github.com/gluislopez/carwash-v2-sub000/internal/storage"
)

type Handler struct {
	store    storage.Store
	machine  *lifecycle.Machine
	reporter *reporting.Reporter
	authn    auth.Authenticator
	jwt      *auth.JWTManager
	events   *eventHub
}

func NewHandler(store storage.Store, machine *lifecycle.Machine, reporter *reporting.Reporter, authn auth.Authenticator, jwt *auth.JWTManager) *Handler {
	h := &Handler{
		store:    store,
		machine:  machine,
		reporter: reporter,
		authn:    authn,
		jwt:      jwt,
		events:   newEventHub(),
	}
	store.Subscribe(h.events.broadcast)
	return h
}

// Routes builds the full handler chain: metrics, logging, then JWT auth
// around the route mux.
func (h *Handler) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", h.handleHealth)
	mux.HandleFunc("/api/auth/login", h.handleLogin)
	mux.HandleFunc("/api/auth/register", h.handleRegister)
	mux.HandleFunc("/api/tickets", h.handleTickets)
	mux.HandleFunc("/api/tickets/", h.handleTicketByID)
	mux.HandleFunc("/api/employees", h.handleEmployees)
	mux.HandleFunc("/api/customers", h.handleCustomers)
	mux.HandleFunc("/api/vehicles", h.handleVehicles)
	mux.HandleFunc("/api/services", h.handleServices)
	mux.HandleFunc("/api/expenses", h.handleExpenses)
	mux.HandleFunc("/api/feedback", h.handleFeedback)
	mux.HandleFunc("/api/settings", h.handleSettings)
	mux.HandleFunc("/api/events", h.handleEvents)
	mux.HandleFunc("/api/reports/summary", h.handleSummary)
	mux.HandleFunc("/api/reports/payroll", h.handlePayroll)
	mux.HandleFunc("/api/reports/levels", h.handleLevels)

	chain := middleware.RequireAuth(h.jwt, isPublicEndpoint)(mux)
	chain = middleware.Logging(chain)
	chain = middleware.Metrics(chain)
	return chain
}

func isPublicEndpoint(r *http.Request) bool {
	switch r.URL.Path {
	case "/healthz", "/metrics", "/api/auth/login":
		return true
	case "/api/auth/register":
		// Open only for bootstrapping; the handler gates it by role once
		// any employee exists.
		return true
	case "/api/feedback":
		// Customers post reviews from the link sent after their wash.
		return r.Method == http.MethodPost
	default:
		return r.Method == http.MethodOptions
	}
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	w.WriteHeader(http.StatusOK)
}

type loginRequest struct {
	Name     string `json:"name"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token    string           `json:"token"`
	Employee *models.Employee `json:"employee"`
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	var req loginRequest
	if !decodeRequest(w, r, &req) {
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "name and password are required")
		return
	}

	employee, err := h.authn.Authenticate(r.Context(), req.Name, req.Password)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "invalid_credentials", "invalid name or password")
		return
	}

	token, err := h.jwt.Generate(employee)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", "failed to issue token")
		return
	}

	writeJSON(w, http.StatusOK, loginResponse{Token: token, Employee: employee})
}

type registerRequest struct {
	Name     string `json:"name"`
	Role     string `json:"role"`
	Password string `json:"password"`
}

func (h *Handler) handleRegister(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	// The first account bootstraps the installation; after that only
	// admins and managers may add staff.
	existing, err := h.store.ListEmployees(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", "internal server error")
		return
	}
	if len(existing) > 0 && !requireAggregateRole(w, r) {
		return
	}

	var req registerRequest
	if !decodeRequest(w, r, &req) {
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "name is required")
		return
	}
	if req.Role == "" {
		req.Role = models.RoleEmployee
	}

	employee, err := h.authn.Register(r.Context(), req.Name, req.Role, req.Password)
	if err != nil {
		status, code, msg := mapError(err)
		writeError(w, status, code, msg)
		return
	}

	writeJSON(w, http.StatusOK, employee)
}

type createTicketRequest struct {
	CustomerID    string         `json:"customer_id"`
	VehicleID     string         `json:"vehicle_id"`
	ServiceID     string         `json:"service_id"`
	Extras        []models.Extra `json:"extras"`
	Date          *time.Time     `json:"date"`
	RedeemLoyalty bool           `json:"redeem_loyalty"`
}

func (h *Handler) handleTickets(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		h.handleCreateTicket(w, r)
	case http.MethodGet:
		h.handleListTickets(w, r)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (h *Handler) handleCreateTicket(w http.ResponseWriter, r *http.Request) {
	var req createTicketRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	input := lifecycle.CreateInput{
		CustomerID:    strings.TrimSpace(req.CustomerID),
		VehicleID:     strings.TrimSpace(req.VehicleID),
		ServiceID:     strings.TrimSpace(req.ServiceID),
		Extras:        req.Extras,
		RedeemLoyalty: req.RedeemLoyalty,
	}
	if req.Date != nil {
		input.Date = *req.Date
	}

	ticket, err := h.machine.Create(r.Context(), input)
	if err != nil {
		status, code, msg := mapError(err)
		writeError(w, status, code, msg)
		return
	}

	middleware.TicketTransitions.WithLabelValues("create").Inc()
	writeJSON(w, http.StatusOK, ticket)
}

func (h *Handler) handleListTickets(w http.ResponseWriter, r *http.Request) {
	from, to, ok := dateWindow(w, r)
	if !ok {
		return
	}

	status := strings.TrimSpace(r.URL.Query().Get("status"))
	if status != "" && !models.ValidStatus(status) {
		writeError(w, http.StatusBadRequest, "invalid_request", "unknown status "+status)
		return
	}

	tickets, err := h.store.ListTickets(r.Context(), from, to)
	if err != nil {
		s, code, msg := mapError(err)
		writeError(w, s, code, msg)
		return
	}

	if status != "" {
		filtered := tickets[:0]
		for _, t := range tickets {
			if t.Status == status {
				filtered = append(filtered, t)
			}
		}
		tickets = filtered
	}

	writeJSON(w, http.StatusOK, tickets)
}

func (h *Handler) handleTicketByID(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/api/tickets/")
	parts := strings.Split(strings.Trim(path, "/"), "/")

	switch {
	case len(parts) == 1 && r.Method == http.MethodGet:
		h.handleGetTicket(w, r, parts[0])
	case len(parts) == 3 && parts[1] == "actions" && r.Method == http.MethodPost:
		h.handleTicketAction(w, r, parts[0], parts[2])
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

func (h *Handler) handleGetTicket(w http.ResponseWriter, r *http.Request, ticketID string) {
	ticket, err := h.store.GetTicket(r.Context(), ticketID)
	if err != nil {
		status, code, msg := mapError(err)
		writeError(w, status, code, msg)
		return
	}
	writeJSON(w, http.StatusOK, ticket)
}

type startRequest struct {
	EmployeeIDs []string `json:"employee_ids"`
}

type readyRequest struct {
	Checklist    lifecycle.Checklist `json:"checklist"`
	Attributions map[string]string   `json:"attributions"`
	FinishedAt   *time.Time          `json:"finished_at"`
}

type readyResponse struct {
	Ticket     *models.Ticket `json:"ticket"`
	ReviewLink string         `json:"review_link,omitempty"`
}

type payRequest struct {
	PaymentMethod string  `json:"payment_method"`
	Tip           float64 `json:"tip"`
}

func (h *Handler) handleTicketAction(w http.ResponseWriter, r *http.Request, ticketID, action string) {
	switch action {
	case "start":
		var req startRequest
		if !decodeRequest(w, r, &req) {
			return
		}
		ticket, err := h.machine.StartWash(r.Context(), ticketID, req.EmployeeIDs)
		h.writeActionResult(w, lifecycle.ActionStart, ticket, err)

	case "ready":
		var req readyRequest
		if !decodeRequest(w, r, &req) {
			return
		}
		ticket, reviewLink, err := h.machine.MarkReady(r.Context(), ticketID, lifecycle.ReadyInput{
			Checklist:    req.Checklist,
			Attributions: req.Attributions,
			FinishedAt:   req.FinishedAt,
		})
		if err != nil {
			status, code, msg := mapError(err)
			writeError(w, status, code, msg)
			return
		}
		middleware.TicketTransitions.WithLabelValues(lifecycle.ActionReady).Inc()
		writeJSON(w, http.StatusOK, readyResponse{Ticket: ticket, ReviewLink: reviewLink})

	case "pay":
		var req payRequest
		if !decodeRequest(w, r, &req) {
			return
		}
		ticket, err := h.machine.Settle(r.Context(), ticketID, req.PaymentMethod, req.Tip)
		h.writeActionResult(w, lifecycle.ActionPay, ticket, err)

	case "cancel":
		ticket, err := h.machine.Cancel(r.Context(), ticketID, middleware.GetEmployeeID(r.Context()))
		h.writeActionResult(w, lifecycle.ActionCancel, ticket, err)

	case "revert-washing":
		ticket, err := h.machine.RevertToWashing(r.Context(), ticketID)
		h.writeActionResult(w, lifecycle.ActionRevertToWashing, ticket, err)

	case "revert-ready":
		ticket, err := h.machine.RevertToReady(r.Context(), ticketID)
		h.writeActionResult(w, lifecycle.ActionRevertToReady, ticket, err)

	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

func (h *Handler) writeActionResult(w http.ResponseWriter, action string, ticket *models.Ticket, err error) {
	if err != nil {
		status, code, msg := mapError(err)
		writeError(w, status, code, msg)
		return
	}
	middleware.TicketTransitions.WithLabelValues(action).Inc()
	writeJSON(w, http.StatusOK, ticket)
}

func (h *Handler) handleEmployees(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	employees, err := h.store.ListEmployees(r.Context())
	if err != nil {
		status, code, msg := mapError(err)
		writeError(w, status, code, msg)
		return
	}
	writeJSON(w, http.StatusOK, employees)
}

func (h *Handler) handleCustomers(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		var customer models.Customer
		if !decodeRequest(w, r, &customer) {
			return
		}
		customer.Name = strings.TrimSpace(customer.Name)
		if customer.Name == "" {
			writeError(w, http.StatusBadRequest, "invalid_request", "name is required")
			return
		}
		if err := h.store.CreateCustomer(r.Context(), &customer); err != nil {
			status, code, msg := mapError(err)
			writeError(w, status, code, msg)
			return
		}
		writeJSON(w, http.StatusOK, customer)

	case http.MethodGet:
		id := strings.TrimSpace(r.URL.Query().Get("id"))
		if id == "" {
			writeError(w, http.StatusBadRequest, "invalid_request", "id is required")
			return
		}
		customer, err := h.store.GetCustomer(r.Context(), id)
		if err != nil {
			status, code, msg := mapError(err)
			writeError(w, status, code, msg)
			return
		}
		writeJSON(w, http.StatusOK, customer)

	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (h *Handler) handleVehicles(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		var vehicle models.Vehicle
		if !decodeRequest(w, r, &vehicle) {
			return
		}
		vehicle.Plate = strings.TrimSpace(vehicle.Plate)
		if vehicle.CustomerID == "" || vehicle.Plate == "" {
			writeError(w, http.StatusBadRequest, "invalid_request", "customer_id and plate are required")
			return
		}
		if err := h.store.CreateVehicle(r.Context(), &vehicle); err != nil {
			status, code, msg := mapError(err)
			writeError(w, status, code, msg)
			return
		}
		writeJSON(w, http.StatusOK, vehicle)

	case http.MethodGet:
		id := strings.TrimSpace(r.URL.Query().Get("id"))
		if id == "" {
			writeError(w, http.StatusBadRequest, "invalid_request", "id is required")
			return
		}
		vehicle, err := h.store.GetVehicle(r.Context(), id)
		if err != nil {
			status, code, msg := mapError(err)
			writeError(w, status, code, msg)
			return
		}
		writeJSON(w, http.StatusOK, vehicle)

	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (h *Handler) handleServices(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		if !requireAggregateRole(w, r) {
			return
		}
		var service models.Service
		if !decodeRequest(w, r, &service) {
			return
		}
		service.Name = strings.TrimSpace(service.Name)
		if service.Name == "" || service.Price < 0 || service.Commission < 0 {
			writeError(w, http.StatusBadRequest, "invalid_request", "name is required and amounts must be non-negative")
			return
		}
		if err := h.store.CreateService(r.Context(), &service); err != nil {
			status, code, msg := mapError(err)
			writeError(w, status, code, msg)
			return
		}
		writeJSON(w, http.StatusOK, service)

	case http.MethodGet:
		services, err := h.store.ListServices(r.Context())
		if err != nil {
			status, code, msg := mapError(err)
			writeError(w, status, code, msg)
			return
		}
		writeJSON(w, http.StatusOK, services)

	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (h *Handler) handleExpenses(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		var expense models.Expense
		if !decodeRequest(w, r, &expense) {
			return
		}
		if !models.ValidExpenseCategory(expense.Category) {
			writeError(w, http.StatusBadRequest, "invalid_request", "category must be lunch or product")
			return
		}
		if expense.Amount <= 0 {
			writeError(w, http.StatusBadRequest, "invalid_request", "amount must be positive")
			return
		}
		if expense.Category == models.ExpenseLunch && expense.EmployeeID == "" {
			writeError(w, http.StatusBadRequest, "invalid_request", "lunch expenses require employee_id")
			return
		}
		if err := h.store.CreateExpense(r.Context(), &expense); err != nil {
			status, code, msg := mapError(err)
			writeError(w, status, code, msg)
			return
		}
		writeJSON(w, http.StatusOK, expense)

	case http.MethodGet:
		from, to, ok := dateWindow(w, r)
		if !ok {
			return
		}
		expenses, err := h.store.ListExpenses(r.Context(), from, to)
		if err != nil {
			status, code, msg := mapError(err)
			writeError(w, status, code, msg)
			return
		}
		writeJSON(w, http.StatusOK, expenses)

	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (h *Handler) handleFeedback(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	var feedback models.Feedback
	if !decodeRequest(w, r, &feedback) {
		return
	}
	if feedback.TicketID == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "transaction_id is required")
		return
	}
	if feedback.Rating < 1 || feedback.Rating > 5 {
		writeError(w, http.StatusBadRequest, "invalid_request", "rating must be between 1 and 5")
		return
	}
	if _, err := h.store.GetTicket(r.Context(), feedback.TicketID); err != nil {
		status, code, msg := mapError(err)
		writeError(w, status, code, msg)
		return
	}
	if err := h.store.CreateFeedback(r.Context(), &feedback); err != nil {
		status, code, msg := mapError(err)
		writeError(w, status, code, msg)
		return
	}
	writeJSON(w, http.StatusOK, feedback)
}

func (h *Handler) handleSettings(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		settings, err := h.store.GetSettings(r.Context())
		if err != nil {
			status, code, msg := mapError(err)
			writeError(w, status, code, msg)
			return
		}
		writeJSON(w, http.StatusOK, settings)

	case http.MethodPut:
		if !requireAggregateRole(w, r) {
			return
		}
		var settings models.Settings
		if !decodeRequest(w, r, &settings) {
			return
		}
		if settings.DailyTarget < 0 {
			writeError(w, http.StatusBadRequest, "invalid_request", "daily_target must be non-negative")
			return
		}
		if err := h.store.UpsertSettings(r.Context(), &settings); err != nil {
			status, code, msg := mapError(err)
			writeError(w, status, code, msg)
			return
		}
		writeJSON(w, http.StatusOK, settings)

	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (h *Handler) handleSummary(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if !requireAggregateRole(w, r) {
		return
	}
	from, to, ok := dateWindow(w, r)
	if !ok {
		return
	}

	summary, err := h.reporter.Summary(r.Context(), from, to)
	if err != nil {
		status, code, msg := mapError(err)
		writeError(w, status, code, msg)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

func (h *Handler) handlePayroll(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	from, to, ok := dateWindow(w, r)
	if !ok {
		return
	}

	rows, err := h.reporter.Payroll(r.Context(), from, to)
	if err != nil {
		status, code, msg := mapError(err)
		writeError(w, status, code, msg)
		return
	}

	viewer := &models.Employee{
		ID:   middleware.GetEmployeeID(r.Context()),
		Role: middleware.GetRole(r.Context()),
	}
	writeJSON(w, http.StatusOK, reporting.VisibleRows(rows, viewer))
}

func (h *Handler) handleLevels(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	rows, err := h.reporter.LevelBoard(r.Context())
	if err != nil {
		status, code, msg := mapError(err)
		writeError(w, status, code, msg)
		return
	}
	writeJSON(w, http.StatusOK, rows)
}

// requireAggregateRole rejects the request unless the caller's role may see
// or change business-wide data.
func requireAggregateRole(w http.ResponseWriter, r *http.Request) bool {
	viewer := &models.Employee{Role: middleware.GetRole(r.Context())}
	if !viewer.CanViewAggregates() {
		writeError(w, http.StatusForbidden, "access_denied", "admin or manager role required")
		return false
	}
	return true
}

// dateWindow parses the from/to query parameters as RFC3339 timestamps.
// When absent, the window defaults to the current day.
func dateWindow(w http.ResponseWriter, r *http.Request) (time.Time, time.Time, bool) {
	now := time.Now()
	from := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	to := from.Add(24 * time.Hour)

	if raw := strings.TrimSpace(r.URL.Query().Get("from")); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request", "from must be RFC3339 timestamp")
			return time.Time{}, time.Time{}, false
		}
		from = parsed
	}
	if raw := strings.TrimSpace(r.URL.Query().Get("to")); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request", "to must be RFC3339 timestamp")
			return time.Time{}, time.Time{}, false
		}
		to = parsed
	}
	if !to.After(from) {
		writeError(w, http.StatusBadRequest, "invalid_request", "to must be after from")
		return time.Time{}, time.Time{}, false
	}
	return from, to, true
}

func decodeRequest(w http.ResponseWriter, r *http.Request, target interface{}) bool {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(target); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid JSON payload")
		return false
	}
	return true
}

func mapError(err error) (int, string, string) {
	switch {
	case errors.Is(err, lifecycle.ErrValidation):
		return http.StatusBadRequest, "invalid_request", err.Error()
	case errors.Is(err, lifecycle.ErrInvalidTransition):
		return http.StatusConflict, "invalid_transition", err.Error()
	case errors.Is(err, storage.ErrNoMembershipUses):
		return http.StatusConflict, "no_membership_uses", "no membership uses remaining"
	case errors.Is(err, storage.ErrTicketNotFound):
		return http.StatusNotFound, "ticket_not_found", "ticket not found"
	case errors.Is(err, storage.ErrEmployeeNotFound):
		return http.StatusNotFound, "employee_not_found", "employee not found"
	case errors.Is(err, storage.ErrCustomerNotFound):
		return http.StatusNotFound, "customer_not_found", "customer not found"
	case errors.Is(err, storage.ErrVehicleNotFound):
		return http.StatusNotFound, "vehicle_not_found", "vehicle not found"
	case errors.Is(err, storage.ErrServiceNotFound):
		return http.StatusNotFound, "service_not_found", "service not found"
	case errors.Is(err, auth.ErrInvalidCredentials):
		return http.StatusUnauthorized, "invalid_credentials", "invalid name or password"
	case errors.Is(err, auth.ErrWeakPassword):
		return http.StatusBadRequest, "weak_password", err.Error()
	case errors.Is(err, auth.ErrInvalidRole):
		return http.StatusBadRequest, "invalid_role", err.Error()
	case errors.Is(err, auth.ErrNameExists):
		return http.StatusConflict, "name_exists", err.Error()
	default:
		return http.StatusInternalServerError, "internal_error", "internal server error"
	}
}

type errorResponse struct {
	Error responseError `json:"error"`
}

type responseError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{
		Error: responseError{
			Code:    code,
			Message: message,
		},
	})
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(payload)
}
