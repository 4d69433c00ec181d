package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	addressrepo "solaris_crm_backend/internal/addresses/repository"
	addresssvc "solaris_crm_backend/internal/addresses/service"
	customerrepo "solaris_crm_backend/internal/customers/repository"
	"solaris_crm_backend/internal/events"
	"solaris_crm_backend/internal/leads/repository"
	"solaris_crm_backend/internal/leads/service"
	"solaris_crm_backend/internal/leads/transport"
	"solaris_crm_backend/platform/logger"
)

// In-memory collaborators so the full handler -> service path runs without a
// database.

type memLeadStore struct {
	leads map[uuid.UUID]repository.Lead
}

func (m *memLeadStore) Create(_ context.Context, params repository.CreateLeadParams) (repository.Lead, error) {
	lead := repository.Lead{
		ID:                uuid.New(),
		FirstName:         params.FirstName,
		LastName:          params.LastName,
		Email:             params.Email,
		PhoneNumber:       params.PhoneNumber,
		PropertyType:      params.PropertyType,
		IsPropertyOwner:   params.IsPropertyOwner,
		AddressID:         params.AddressID,
		MonthlyBillRange:  params.MonthlyBillRange,
		BestTimeToContact: params.BestTimeToContact,
		Notes:             params.Notes,
		Status:            params.Status,
		CreatedAt:         time.Now(),
		Street:            "1 Sunny Rd",
		City:              "Phoenix",
		State:             "AZ",
		ZipCode:           "85001",
		Country:           "USA",
	}
	m.leads[lead.ID] = lead
	return lead, nil
}

func (m *memLeadStore) GetByID(_ context.Context, id uuid.UUID) (repository.Lead, error) {
	lead, ok := m.leads[id]
	if !ok {
		return repository.Lead{}, repository.ErrNotFound
	}
	return lead, nil
}

func (m *memLeadStore) List(_ context.Context) ([]repository.Lead, error) {
	out := make([]repository.Lead, 0, len(m.leads))
	for _, lead := range m.leads {
		out = append(out, lead)
	}
	return out, nil
}

func (m *memLeadStore) Update(_ context.Context, lead repository.Lead) (int64, error) {
	if _, ok := m.leads[lead.ID]; !ok {
		return 0, nil
	}
	m.leads[lead.ID] = lead
	return 1, nil
}

func (m *memLeadStore) Delete(_ context.Context, id uuid.UUID) (bool, error) {
	if _, ok := m.leads[id]; !ok {
		return false, nil
	}
	delete(m.leads, id)
	return true, nil
}

type memAddressResolver struct{}

func (memAddressResolver) Resolve(_ context.Context, params addresssvc.ResolveParams) (addressrepo.Address, error) {
	return addressrepo.Address{ID: uuid.New(), Street: params.Street}, nil
}

type memCustomerStore struct{}

func (memCustomerStore) Create(_ context.Context, params customerrepo.CreateCustomerParams) (customerrepo.Customer, error) {
	return customerrepo.Customer{ID: uuid.New(), Status: params.Status}, nil
}

func newTestRouter(t *testing.T) (*gin.Engine, *memLeadStore) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := &memLeadStore{leads: make(map[uuid.UUID]repository.Lead)}
	log := logger.New("development")
	svc := service.New(store, memAddressResolver{}, memCustomerStore{}, events.NewInMemoryBus(log), log)
	h := New(svc)

	engine := gin.New()
	group := engine.Group("/api/v1/leads")
	h.RegisterPublicRoutes(group)
	h.RegisterRoutes(group)
	return engine, store
}

func doJSON(t *testing.T, engine *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	return rec
}

func createTestLead(t *testing.T, engine *gin.Engine) transport.LeadResponse {
	t.Helper()
	rec := doJSON(t, engine, http.MethodPost, "/api/v1/leads", transport.CreateLeadRequest{
		FirstName:         "Ava",
		LastName:          "Nguyen",
		Email:             "ava@example.com",
		PhoneNumber:       "(602) 555-0134",
		PropertyStreet:    "1 Sunny Rd",
		PropertyCity:      "Phoenix",
		PropertyState:     "AZ",
		PropertyZipCode:   "85001",
		PropertyType:      "House",
		IsPropertyOwner:   true,
		MonthlyBillRange:  "$150-$200",
		BestTimeToContact: "Morning",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d, body %s", rec.Code, rec.Body.String())
	}

	var lead transport.LeadResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &lead); err != nil {
		t.Fatalf("decode create response: %v", err)
	}
	return lead
}

func TestCreateLeadEndpoint(t *testing.T) {
	engine, _ := newTestRouter(t)
	lead := createTestLead(t, engine)

	if lead.Status != "New" {
		t.Fatalf("created lead status = %q, want New", lead.Status)
	}
	if lead.FullName != "Ava Nguyen" {
		t.Fatalf("fullName = %q", lead.FullName)
	}
}

func TestCreateLeadEndpointValidation(t *testing.T) {
	engine, _ := newTestRouter(t)

	rec := doJSON(t, engine, http.MethodPost, "/api/v1/leads", transport.CreateLeadRequest{
		FirstName: "A",
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestGetLeadEndpointNotFound(t *testing.T) {
	engine, _ := newTestRouter(t)

	rec := doJSON(t, engine, http.MethodGet, "/api/v1/leads/"+uuid.NewString(), nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}

	rec = doJSON(t, engine, http.MethodGet, "/api/v1/leads/not-a-uuid", nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400 for malformed id", rec.Code)
	}
}

func TestUpdateStatusEndpoint(t *testing.T) {
	engine, _ := newTestRouter(t)
	lead := createTestLead(t, engine)

	path := fmt.Sprintf("/api/v1/leads/%s/status", lead.ID)
	rec := doJSON(t, engine, http.MethodPatch, path, transport.UpdateLeadStatusRequest{Status: "Contacted"})
	if rec.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want 204, body %s", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, engine, http.MethodPatch, path, transport.UpdateLeadStatusRequest{Status: "Qualified"})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("bad label status = %d, want 400", rec.Code)
	}

	rec = doJSON(t, engine, http.MethodPatch, path, transport.UpdateLeadStatusRequest{Status: "Converted"})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("direct conversion status = %d, want 400", rec.Code)
	}
}

func TestDeleteLeadEndpointIsIdempotent(t *testing.T) {
	engine, _ := newTestRouter(t)
	lead := createTestLead(t, engine)

	path := "/api/v1/leads/" + lead.ID.String()
	if rec := doJSON(t, engine, http.MethodDelete, path, nil); rec.Code != http.StatusNoContent {
		t.Fatalf("delete status = %d, want 204", rec.Code)
	}
	if rec := doJSON(t, engine, http.MethodDelete, path, nil); rec.Code != http.StatusNoContent {
		t.Fatalf("second delete status = %d, want 204", rec.Code)
	}
}

func TestConvertLeadEndpoint(t *testing.T) {
	engine, _ := newTestRouter(t)
	lead := createTestLead(t, engine)

	path := fmt.Sprintf("/api/v1/leads/%s/convert", lead.ID)
	rec := doJSON(t, engine, http.MethodPost, path, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("convert status = %d, body %s", rec.Code, rec.Body.String())
	}

	var result transport.ConvertLeadResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("decode convert response: %v", err)
	}
	if result.Lead.Status != "Converted" || result.CustomerID == uuid.Nil {
		t.Fatalf("unexpected convert result: %+v", result)
	}

	// Second conversion conflicts.
	if rec := doJSON(t, engine, http.MethodPost, path, nil); rec.Code != http.StatusBadRequest {
		t.Fatalf("second convert status = %d, want 400", rec.Code)
	}

	if rec := doJSON(t, engine, http.MethodPost, "/api/v1/leads/"+uuid.NewString()+"/convert", nil); rec.Code != http.StatusNotFound {
		t.Fatalf("unknown convert status = %d, want 404", rec.Code)
	}
}

func TestListLeadsEndpoint(t *testing.T) {
	engine, _ := newTestRouter(t)

	rec := doJSON(t, engine, http.MethodGet, "/api/v1/leads", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("list status = %d", rec.Code)
	}
	var leads []transport.LeadResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &leads); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(leads) != 0 {
		t.Fatalf("empty store should list zero leads, got %d", len(leads))
	}

	createTestLead(t, engine)
	rec = doJSON(t, engine, http.MethodGet, "/api/v1/leads", nil)
	if err := json.Unmarshal(rec.Body.Bytes(), &leads); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(leads) != 1 {
		t.Fatalf("leads = %d, want 1", len(leads))
	}
}
