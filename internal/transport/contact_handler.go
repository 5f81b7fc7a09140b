package transport

import (
	"net/http"

	"artisan-api/internal/domain"
	"artisan-api/internal/middleware"
	"artisan-api/internal/repository"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// ContactRequest is the contact-form submission payload.
type ContactRequest struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required"`
	Phone   string `json:"phone"`
	Message string `json:"message" validate:"required"`
	Service string `json:"service"`
}

// ContactResponse is returned after a successful submission.
type ContactResponse struct {
	Success bool   `json:"success"`
	ID      string `json:"id"`
	Message string `json:"message"`
}

// ContactHandler handles HTTP requests for contact-form submissions.
type ContactHandler struct {
	contacts repository.ContactRepository
	logger   *zap.Logger
}

// NewContactHandler creates a new ContactHandler.
func NewContactHandler(contacts repository.ContactRepository, logger *zap.Logger) *ContactHandler {
	return &ContactHandler{contacts: contacts, logger: logger}
}

// RegisterRoutes registers the contact routes.
func (h *ContactHandler) RegisterRoutes(r chi.Router) {
	r.Post("/contact", h.Submit)
}

// Submit handles POST /contact.
func (h *ContactHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req ContactRequest

	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		h.logger.Debug("Contact submission rejected", zap.Error(err))

		if middleware.IsValidationError(err) {
			middleware.RespondWithError(w, http.StatusBadRequest, "Name, email, and message are required fields.")
			return
		}
		middleware.RespondWithError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	id, err := h.contacts.Create(r.Context(), domain.ContactFields{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Message: req.Message,
		Service: req.Service,
	})
	if err != nil {
		h.logger.Error("Failed to store contact submission", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "An error occurred while processing your request.")
		return
	}

	h.logger.Info("Contact form submitted", zap.String("submission_id", id))
	middleware.RespondWithJSON(w, http.StatusOK, ContactResponse{
		Success: true,
		ID:      id,
		Message: "Contact form submitted successfully.",
	})
}
