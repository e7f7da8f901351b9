package primary

import "context"

// AttachmentService defines the primary port for reference file operations.
type AttachmentService interface {
	// AddAttachment stores a file and returns its metadata.
	AddAttachment(ctx context.Context, req AddAttachmentRequest) (*Attachment, error)

	// ListAttachments lists attachments, newest first. An empty category lists all.
	ListAttachments(ctx context.Context, category string) ([]*Attachment, error)

	// GetAttachment retrieves an attachment with its content.
	GetAttachment(ctx context.Context, id string) (*Attachment, []byte, error)

	// RemoveAttachment deletes an attachment.
	RemoveAttachment(ctx context.Context, id string) error
}

// AddAttachmentRequest contains parameters for storing an attachment.
type AddAttachmentRequest struct {
	Name     string
	Category string
	MIME     string // sniffed from Content when empty
	Content  []byte
}

// Attachment is attachment metadata as seen by consumers.
type Attachment struct {
	ID        string
	Name      string
	Category  string
	Size      int64
	MIME      string
	CreatedAt string
}
