package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"artisan-api/internal/domain"
	"artisan-api/internal/storage"

	"github.com/google/uuid"
)

var (
	ErrItemNotFound = errors.New("inventory item not found")
)

// InventoryRepository defines data access for inventory items.
type InventoryRepository interface {
	Create(ctx context.Context, fields domain.InventoryFields) (string, error)
	GetAll(ctx context.Context) ([]domain.InventoryItem, int, error)
	GetByID(ctx context.Context, id string) (*domain.InventoryItem, error)
	Update(ctx context.Context, id string, fields domain.InventoryFields) (*domain.InventoryItem, error)
	Delete(ctx context.Context, id string) error
}

type inventoryRepository struct {
	table *storage.Table
}

// NewInventoryRepository creates an InventoryRepository backed by the given table.
func NewInventoryRepository(table *storage.Table) InventoryRepository {
	return &inventoryRepository{table: table}
}

// timestamp is the stored time format. Nanosecond precision keeps updatedAt
// strictly increasing across back-to-back updates.
func timestamp() string {
	return time.Now().UTC().Format(time.RFC3339Nano)
}

// deriveSKU builds the default SKU from the first 8 characters of the id.
func deriveSKU(id string) string {
	return "SKU-" + strings.ToUpper(id[:8])
}

// Create generates the id, timestamps, and derived SKU, then stores the item.
// Required-field presence is the handler's job; this layer only fills defaults.
func (r *inventoryRepository) Create(ctx context.Context, fields domain.InventoryFields) (string, error) {
	id := uuid.NewString()
	now := timestamp()

	sku := fields.SKU
	if sku == "" {
		sku = deriveSKU(id)
	}

	item := domain.InventoryItem{
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

	if err := r.table.Put(ctx, id, item); err != nil {
		return "", fmt.Errorf("failed to create inventory item: %w", err)
	}
	return id, nil
}

// GetAll returns every item in the table and the count, unordered.
func (r *inventoryRepository) GetAll(ctx context.Context) ([]domain.InventoryItem, int, error) {
	items := []domain.InventoryItem{}
	count, err := r.table.Scan(ctx, &items)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list inventory items: %w", err)
	}
	return items, count, nil
}

// GetByID returns the item or ErrItemNotFound; absence is a signal for the
// handler to turn into a 404, not a storage failure.
func (r *inventoryRepository) GetByID(ctx context.Context, id string) (*domain.InventoryItem, error) {
	item := &domain.InventoryItem{}
	if err := r.table.Get(ctx, id, item); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrItemNotFound
		}
		return nil, fmt.Errorf("failed to get inventory item: %w", err)
	}
	return item, nil
}

// Update overwrites the required fields, refreshes updatedAt, and leaves
// createdAt untouched. Description and SKU are omitted from the attribute
// set when empty so the merge retains the previously stored values. The
// merge itself is atomic in the store, so no separate existence check runs.
func (r *inventoryRepository) Update(ctx context.Context, id string, fields domain.InventoryFields) (*domain.InventoryItem, error) {
	attrs := map[string]any{
		"name":      fields.Name,
		"category":  fields.Category,
		"quantity":  fields.Quantity,
		"price":     fields.Price,
		"updatedAt": timestamp(),
	}
	if fields.Description != "" {
		attrs["description"] = fields.Description
	}
	if fields.SKU != "" {
		attrs["sku"] = fields.SKU
	}

	item := &domain.InventoryItem{}
	if err := r.table.Update(ctx, id, attrs, item); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrItemNotFound
		}
		return nil, fmt.Errorf("failed to update inventory item: %w", err)
	}
	return item, nil
}

// Delete removes the item. The store's single atomic delete reports absence,
// so deleting the same id twice yields ErrItemNotFound the second time.
func (r *inventoryRepository) Delete(ctx context.Context, id string) error {
	if err := r.table.Delete(ctx, id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return ErrItemNotFound
		}
		return fmt.Errorf("failed to delete inventory item: %w", err)
	}
	return nil
}
