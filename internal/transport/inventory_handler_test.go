package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"artisan-api/internal/domain"
	"artisan-api/internal/repository"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Mock repository mirroring the real merge semantics closely enough for
// handler tests.
type mockInventoryRepository struct {
	items map[string]*domain.InventoryItem
	err   error
}

func newMockInventoryRepository() *mockInventoryRepository {
	return &mockInventoryRepository{items: make(map[string]*domain.InventoryItem)}
}

func (m *mockInventoryRepository) Create(ctx context.Context, fields domain.InventoryFields) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	id := uuid.NewString()
	sku := fields.SKU
	if sku == "" {
		sku = "SKU-" + strings.ToUpper(id[:8])
	}
	now := time.Now().UTC().Format(time.RFC3339Nano)
	m.items[id] = &domain.InventoryItem{
		ID:          id,
		Name:        fields.Name,
		Category:    fields.Category,
		Quantity:    fields.Quantity,
		Price:       fields.Price,
		Description: fields.Description,
		SKU:         sku,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	return id, nil
}

func (m *mockInventoryRepository) GetAll(ctx context.Context) ([]domain.InventoryItem, int, error) {
	if m.err != nil {
		return nil, 0, m.err
	}
	items := []domain.InventoryItem{}
	for _, item := range m.items {
		items = append(items, *item)
	}
	return items, len(items), nil
}

func (m *mockInventoryRepository) GetByID(ctx context.Context, id string) (*domain.InventoryItem, error) {
	if m.err != nil {
		return nil, m.err
	}
	item, ok := m.items[id]
	if !ok {
		return nil, repository.ErrItemNotFound
	}
	return item, nil
}

func (m *mockInventoryRepository) Update(ctx context.Context, id string, fields domain.InventoryFields) (*domain.InventoryItem, error) {
	if m.err != nil {
		return nil, m.err
	}
	item, ok := m.items[id]
	if !ok {
		return nil, repository.ErrItemNotFound
	}
	item.Name = fields.Name
	item.Category = fields.Category
	item.Quantity = fields.Quantity
	item.Price = fields.Price
	if fields.Description != "" {
		item.Description = fields.Description
	}
	if fields.SKU != "" {
		item.SKU = fields.SKU
	}
	item.UpdatedAt = time.Now().UTC().Format(time.RFC3339Nano)
	return item, nil
}

func (m *mockInventoryRepository) Delete(ctx context.Context, id string) error {
	if m.err != nil {
		return m.err
	}
	if _, ok := m.items[id]; !ok {
		return repository.ErrItemNotFound
	}
	delete(m.items, id)
	return nil
}

func newInventoryRouter(repo repository.InventoryRepository) chi.Router {
	router := chi.NewRouter()
	NewInventoryHandler(repo, zap.NewNop()).RegisterRoutes(router)
	return router
}

func doJSON(t *testing.T, router chi.Router, method, path string, payload any) *httptest.ResponseRecorder {
	t.Helper()
	var body *bytes.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("marshal payload: %v", err)
		}
		body = bytes.NewReader(data)
	} else {
		body = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func validItemPayload() map[string]any {
	return map[string]any{
		"name":     "Tile A",
		"category": "Flooring",
		"quantity": 10,
		"price":    19.99,
	}
}

func TestInventoryCreateScenario(t *testing.T) {
	repo := newMockInventoryRepository()
	router := newInventoryRouter(repo)

	w := doJSON(t, router, http.MethodPost, "/inventory", validItemPayload())
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201", w.Code)
	}

	var created CreateItemResponse
	if err := json.NewDecoder(w.Body).Decode(&created); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !created.Success || created.ID == "" {
		t.Fatalf("response = %+v, want success with id", created)
	}

	// Fetch it back: sku auto-derived, numbers stored as numbers
	w = doJSON(t, router, http.MethodGet, "/inventory/"+created.ID, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("GET status = %d, want 200", w.Code)
	}

	var fetched struct {
		Success bool           `json:"success"`
		Item    map[string]any `json:"item"`
	}
	if err := json.NewDecoder(w.Body).Decode(&fetched); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if q, ok := fetched.Item["quantity"].(float64); !ok || q != 10 {
		t.Errorf("quantity = %v (%T), want number 10", fetched.Item["quantity"], fetched.Item["quantity"])
	}
	if p, ok := fetched.Item["price"].(float64); !ok || p != 19.99 {
		t.Errorf("price = %v (%T), want number 19.99", fetched.Item["price"], fetched.Item["price"])
	}
	wantSKU := "SKU-" + strings.ToUpper(created.ID[:8])
	if fetched.Item["sku"] != wantSKU {
		t.Errorf("sku = %v, want %q", fetched.Item["sku"], wantSKU)
	}
}

func TestInventoryCreateAcceptsStringNumbers(t *testing.T) {
	repo := newMockInventoryRepository()
	router := newInventoryRouter(repo)

	w := doJSON(t, router, http.MethodPost, "/inventory", map[string]any{
		"name":     "Tile A",
		"category": "Flooring",
		"quantity": "10",
		"price":    "19.99",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201", w.Code)
	}

	for _, item := range repo.items {
		if item.Quantity != 10 || item.Price != 19.99 {
			t.Errorf("stored quantity=%v price=%v, want coerced numbers", item.Quantity, item.Price)
		}
	}
}

func TestInventoryCreateMissingFields(t *testing.T) {
	cases := map[string]map[string]any{
		"no name":       {"category": "Flooring", "quantity": 10, "price": 19.99},
		"no category":   {"name": "Tile A", "quantity": 10, "price": 19.99},
		"no quantity":   {"name": "Tile A", "category": "Flooring", "price": 19.99},
		"no price":      {"name": "Tile A", "category": "Flooring", "quantity": 10},
		"zero quantity": {"name": "Tile A", "category": "Flooring", "quantity": 0, "price": 19.99},
		"zero price":    {"name": "Tile A", "category": "Flooring", "quantity": 10, "price": 0},
	}

	for name, payload := range cases {
		t.Run(name, func(t *testing.T) {
			repo := newMockInventoryRepository()
			router := newInventoryRouter(repo)

			w := doJSON(t, router, http.MethodPost, "/inventory", payload)
			if w.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400", w.Code)
			}

			var resp map[string]any
			if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
				t.Fatalf("decode response: %v", err)
			}
			if resp["error"] != requiredItemFields {
				t.Errorf("error = %v, want %q", resp["error"], requiredItemFields)
			}
			if len(repo.items) != 0 {
				t.Error("item stored despite validation failure")
			}
		})
	}
}

func TestInventoryList(t *testing.T) {
	repo := newMockInventoryRepository()
	router := newInventoryRouter(repo)

	for i := 0; i < 2; i++ {
		doJSON(t, router, http.MethodPost, "/inventory", validItemPayload())
	}

	w := doJSON(t, router, http.MethodGet, "/inventory", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var resp ListItemsResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !resp.Success || resp.Count != 2 || len(resp.Items) != 2 {
		t.Errorf("response = %+v, want 2 items with matching count", resp)
	}
}

func TestInventoryGetByIDNotFound(t *testing.T) {
	router := newInventoryRouter(newMockInventoryRepository())

	w := doJSON(t, router, http.MethodGet, "/inventory/"+uuid.NewString(), nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}

	var resp map[string]any
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp["success"] != false || resp["error"] != "Inventory item not found." {
		t.Errorf("response = %v, want not-found envelope", resp)
	}
}

func TestInventoryUpdateUnknownID(t *testing.T) {
	router := newInventoryRouter(newMockInventoryRepository())

	w := doJSON(t, router, http.MethodPut, "/inventory/"+uuid.NewString(), validItemPayload())
	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
}

func TestInventoryUpdateSuccess(t *testing.T) {
	repo := newMockInventoryRepository()
	router := newInventoryRouter(repo)

	w := doJSON(t, router, http.MethodPost, "/inventory", validItemPayload())
	var created CreateItemResponse
	json.NewDecoder(w.Body).Decode(&created)

	payload := validItemPayload()
	payload["quantity"] = 4
	w = doJSON(t, router, http.MethodPut, "/inventory/"+created.ID, payload)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var resp UpdateItemResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !resp.Success || resp.Item == nil || resp.Item.Quantity != 4 {
		t.Errorf("response = %+v, want updated item with quantity 4", resp)
	}
}

func TestInventoryUpdateValidationBeforeLookup(t *testing.T) {
	repo := newMockInventoryRepository()
	router := newInventoryRouter(repo)

	// Invalid payload against an unknown id must 400, not 404: validation
	// runs before any storage access.
	w := doJSON(t, router, http.MethodPut, "/inventory/"+uuid.NewString(), map[string]any{
		"name": "Tile A",
	})
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestInventoryDeleteTwice(t *testing.T) {
	repo := newMockInventoryRepository()
	router := newInventoryRouter(repo)

	w := doJSON(t, router, http.MethodPost, "/inventory", validItemPayload())
	var created CreateItemResponse
	json.NewDecoder(w.Body).Decode(&created)

	w = doJSON(t, router, http.MethodDelete, "/inventory/"+created.ID, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("first delete status = %d, want 200", w.Code)
	}

	w = doJSON(t, router, http.MethodDelete, "/inventory/"+created.ID, nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("second delete status = %d, want 404", w.Code)
	}
}

func TestInventoryStorageErrorsAreGeneric(t *testing.T) {
	repo := newMockInventoryRepository()
	repo.err = errors.New("ProvisionedThroughputExceededException")
	router := newInventoryRouter(repo)

	endpoints := []struct {
		method string
		path   string
		body   any
	}{
		{http.MethodPost, "/inventory", validItemPayload()},
		{http.MethodGet, "/inventory", nil},
		{http.MethodGet, "/inventory/some-id", nil},
		{http.MethodPut, "/inventory/some-id", validItemPayload()},
		{http.MethodDelete, "/inventory/some-id", nil},
	}

	for _, e := range endpoints {
		w := doJSON(t, router, e.method, e.path, e.body)
		if w.Code != http.StatusInternalServerError {
			t.Errorf("%s %s status = %d, want 500", e.method, e.path, w.Code)
			continue
		}
		var resp map[string]any
		if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
			t.Fatalf("decode response: %v", err)
		}
		msg, _ := resp["error"].(string)
		if strings.Contains(msg, "Throughput") {
			t.Errorf("%s %s leaked storage detail: %q", e.method, e.path, msg)
		}
	}
}
