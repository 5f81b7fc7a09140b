package repository

import (
	"context"
	"fmt"

	"artisan-api/internal/domain"
	"artisan-api/internal/storage"

	"github.com/google/uuid"
)

// ContactRepository owns persistence of contact-form submissions. The entity
// is append-only, so creation is the only operation.
type ContactRepository interface {
	Create(ctx context.Context, fields domain.ContactFields) (string, error)
}

type contactRepository struct {
	table *storage.Table
}

// NewContactRepository creates a ContactRepository backed by the given table.
func NewContactRepository(table *storage.Table) ContactRepository {
	return &contactRepository{table: table}
}

// Create generates the id and timestamp, applies field defaults, and stores
// the submission. Returns the generated id.
func (r *contactRepository) Create(ctx context.Context, fields domain.ContactFields) (string, error) {
	id := uuid.NewString()

	service := fields.Service
	if service == "" {
		service = domain.DefaultService
	}

	submission := domain.ContactSubmission{
		ID:        id,
		Name:      fields.Name,
		Email:     fields.Email,
		Phone:     fields.Phone,
		Message:   fields.Message,
		Service:   service,
		CreatedAt: timestamp(),
	}

	if err := r.table.Put(ctx, id, submission); err != nil {
		return "", fmt.Errorf("failed to create contact submission: %w", err)
	}
	return id, nil
}
