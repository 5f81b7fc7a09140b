package transport

import (
	"errors"
	"net/http"

	"artisan-api/internal/domain"
	"artisan-api/internal/middleware"
	"artisan-api/internal/repository"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// InventoryRequest is the create/update payload for an inventory item.
// Quantity and price accept both numeric and string JSON values; a zero
// value fails the required check the same way an absent field does.
type InventoryRequest struct {
	Name        string        `json:"name" validate:"required"`
	Category    string        `json:"category" validate:"required"`
	Quantity    domain.Number `json:"quantity" validate:"required"`
	Price       domain.Number `json:"price" validate:"required"`
	Description string        `json:"description"`
	SKU         string        `json:"sku"`
}

func (req *InventoryRequest) fields() domain.InventoryFields {
	return domain.InventoryFields{
		Name:        req.Name,
		Category:    req.Category,
		Quantity:    req.Quantity.Float64(),
		Price:       req.Price.Float64(),
		Description: req.Description,
		SKU:         req.SKU,
	}
}

// CreateItemResponse is returned after a successful creation.
type CreateItemResponse struct {
	Success bool   `json:"success"`
	ID      string `json:"id"`
	Message string `json:"message"`
}

// ListItemsResponse is returned by the list endpoint.
type ListItemsResponse struct {
	Success bool                   `json:"success"`
	Items   []domain.InventoryItem `json:"items"`
	Count   int                    `json:"count"`
}

// ItemResponse is returned by the get-by-id endpoint.
type ItemResponse struct {
	Success bool                  `json:"success"`
	Item    *domain.InventoryItem `json:"item"`
}

// UpdateItemResponse is returned after a successful update.
type UpdateItemResponse struct {
	Success bool                  `json:"success"`
	Message string                `json:"message"`
	Item    *domain.InventoryItem `json:"item"`
}

// MessageResponse is returned when only a confirmation message applies.
type MessageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

const requiredItemFields = "Name, category, quantity, and price are required fields."

// InventoryHandler handles HTTP requests for inventory items.
type InventoryHandler struct {
	items  repository.InventoryRepository
	logger *zap.Logger
}

// NewInventoryHandler creates a new InventoryHandler.
func NewInventoryHandler(items repository.InventoryRepository, logger *zap.Logger) *InventoryHandler {
	return &InventoryHandler{items: items, logger: logger}
}

// RegisterRoutes registers the inventory routes.
func (h *InventoryHandler) RegisterRoutes(r chi.Router) {
	r.Route("/inventory", func(r chi.Router) {
		r.Post("/", h.Create)
		r.Get("/", h.List)
		r.Get("/{id}", h.GetByID)
		r.Put("/{id}", h.Update)
		r.Delete("/{id}", h.Delete)
	})
}

// decodeItemRequest parses and validates the payload, writing the 400
// response itself when the payload is unusable.
func (h *InventoryHandler) decodeItemRequest(w http.ResponseWriter, r *http.Request) (*InventoryRequest, bool) {
	var req InventoryRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		h.logger.Debug("Inventory payload rejected", zap.Error(err))

		if middleware.IsValidationError(err) {
			middleware.RespondWithError(w, http.StatusBadRequest, requiredItemFields)
		} else {
			middleware.RespondWithError(w, http.StatusBadRequest, "Invalid request body.")
		}
		return nil, false
	}
	return &req, true
}

// Create handles POST /inventory.
func (h *InventoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodeItemRequest(w, r)
	if !ok {
		return
	}

	id, err := h.items.Create(r.Context(), req.fields())
	if err != nil {
		h.logger.Error("Failed to create inventory item", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "An error occurred while processing your request.")
		return
	}

	h.logger.Info("Inventory item created", zap.String("item_id", id))
	middleware.RespondWithJSON(w, http.StatusCreated, CreateItemResponse{
		Success: true,
		ID:      id,
		Message: "Inventory item created successfully.",
	})
}

// List handles GET /inventory.
func (h *InventoryHandler) List(w http.ResponseWriter, r *http.Request) {
	items, count, err := h.items.GetAll(r.Context())
	if err != nil {
		h.logger.Error("Failed to list inventory items", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "An error occurred while fetching inventory items.")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, ListItemsResponse{
		Success: true,
		Items:   items,
		Count:   count,
	})
}

// GetByID handles GET /inventory/{id}.
func (h *InventoryHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	item, err := h.items.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrItemNotFound) {
			middleware.RespondWithError(w, http.StatusNotFound, "Inventory item not found.")
			return
		}
		h.logger.Error("Failed to fetch inventory item", zap.String("item_id", id), zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "An error occurred while fetching the inventory item.")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, ItemResponse{
		Success: true,
		Item:    item,
	})
}

// Update handles PUT /inventory/{id}.
func (h *InventoryHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	req, ok := h.decodeItemRequest(w, r)
	if !ok {
		return
	}

	item, err := h.items.Update(r.Context(), id, req.fields())
	if err != nil {
		if errors.Is(err, repository.ErrItemNotFound) {
			middleware.RespondWithError(w, http.StatusNotFound, "Inventory item not found.")
			return
		}
		h.logger.Error("Failed to update inventory item", zap.String("item_id", id), zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "An error occurred while updating the inventory item.")
		return
	}

	h.logger.Info("Inventory item updated", zap.String("item_id", id))
	middleware.RespondWithJSON(w, http.StatusOK, UpdateItemResponse{
		Success: true,
		Message: "Inventory item updated successfully.",
		Item:    item,
	})
}

// Delete handles DELETE /inventory/{id}.
func (h *InventoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.items.Delete(r.Context(), id); err != nil {
		if errors.Is(err, repository.ErrItemNotFound) {
			middleware.RespondWithError(w, http.StatusNotFound, "Inventory item not found.")
			return
		}
		h.logger.Error("Failed to delete inventory item", zap.String("item_id", id), zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "An error occurred while deleting the inventory item.")
		return
	}

	h.logger.Info("Inventory item deleted", zap.String("item_id", id))
	middleware.RespondWithJSON(w, http.StatusOK, MessageResponse{
		Success: true,
		Message: "Inventory item deleted successfully.",
	})
}
