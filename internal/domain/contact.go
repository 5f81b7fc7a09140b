package domain

// DefaultService is stored when a contact submission does not name a service.
const DefaultService = "Not specified"

// ContactSubmission is a stored contact-form submission. Submissions are
// append-only: once written they are never updated or deleted.
type ContactSubmission struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Message   string `json:"message"`
	Service   string `json:"service"`
	CreatedAt string `json:"createdAt"`
}

// ContactFields carries the client-supplied fields of a submission. The
// repository fills in the id, timestamp, and defaults.
type ContactFields struct {
	Name    string
	Email   string
	Phone   string
	Message string
	Service string
}
