package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"

	"github.com/example/rpgdash/internal/core/schema"
	"github.com/example/rpgdash/internal/ports/primary"
	"github.com/example/rpgdash/internal/ports/secondary"
)

// AttachmentServiceImpl implements the AttachmentService interface.
type AttachmentServiceImpl struct {
	repo  secondary.AttachmentRepository
	now   func() time.Time
	newID func() string
}

// Ensure AttachmentServiceImpl implements the interface
var _ primary.AttachmentService = (*AttachmentServiceImpl)(nil)

// NewAttachmentService creates a new AttachmentService with injected dependencies.
func NewAttachmentService(repo secondary.AttachmentRepository) *AttachmentServiceImpl {
	return &AttachmentServiceImpl{
		repo:  repo,
		now:   time.Now,
		newID: schema.NewID,
	}
}

// AddAttachment stores a file. The MIME type is sniffed from the content
// when the request leaves it empty.
func (s *AttachmentServiceImpl) AddAttachment(ctx context.Context, req primary.AddAttachmentRequest) (*primary.Attachment, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("attachment name is required")
	}
	mime := req.MIME
	if mime == "" {
		mime = mimetype.Detect(req.Content).String()
	}

	record := &secondary.AttachmentRecord{
		ID:        s.newID(),
		Name:      name,
		Category:  strings.TrimSpace(req.Category),
		Size:      int64(len(req.Content)),
		MIME:      mime,
		CreatedAt: schema.FormatTimestamp(s.now()),
		Content:   req.Content,
	}
	if err := s.repo.Put(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to store attachment: %w", err)
	}
	return recordToAttachment(record), nil
}

// ListAttachments lists attachments, newest first.
func (s *AttachmentServiceImpl) ListAttachments(ctx context.Context, category string) ([]*primary.Attachment, error) {
	records, err := s.repo.List(ctx, strings.TrimSpace(category))
	if err != nil {
		return nil, fmt.Errorf("failed to list attachments: %w", err)
	}
	out := make([]*primary.Attachment, 0, len(records))
	for _, r := range records {
		out = append(out, recordToAttachment(r))
	}
	return out, nil
}

// GetAttachment retrieves an attachment with its content.
func (s *AttachmentServiceImpl) GetAttachment(ctx context.Context, id string) (*primary.Attachment, []byte, error) {
	record, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get attachment %s: %w", id, err)
	}
	return recordToAttachment(record), record.Content, nil
}

// RemoveAttachment deletes an attachment.
func (s *AttachmentServiceImpl) RemoveAttachment(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to remove attachment %s: %w", id, err)
	}
	return nil
}

func recordToAttachment(r *secondary.AttachmentRecord) *primary.Attachment {
	return &primary.Attachment{
		ID:        r.ID,
		Name:      r.Name,
		Category:  r.Category,
		Size:      r.Size,
		MIME:      r.MIME,
		CreatedAt: r.CreatedAt,
	}
}
