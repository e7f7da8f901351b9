package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/dustin/go-humanize"

	"github.com/example/rpgdash/internal/ports/primary"
)

// AttachmentAdapter translates reference-file CLI operations to AttachmentService calls.
type AttachmentAdapter struct {
	service primary.AttachmentService
	out     io.Writer
}

// NewAttachmentAdapter creates a new AttachmentAdapter.
func NewAttachmentAdapter(service primary.AttachmentService, out io.Writer) *AttachmentAdapter {
	return &AttachmentAdapter{
		service: service,
		out:     out,
	}
}

// Add stores the file at path under category.
func (a *AttachmentAdapter) Add(ctx context.Context, path, name, category, mime string) (*primary.Attachment, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	if name == "" {
		name = filepath.Base(path)
	}

	att, err := a.service.AddAttachment(ctx, primary.AddAttachmentRequest{
		Name:     name,
		Category: category,
		MIME:     mime,
		Content:  content,
	})
	if err != nil {
		return nil, err
	}
	fmt.Fprintf(a.out, "✓ Stored %s (%s, %s) as %s\n", att.Name, att.MIME, humanize.Bytes(uint64(att.Size)), shortID(att.ID))
	return att, nil
}

// List prints stored files, newest first.
func (a *AttachmentAdapter) List(ctx context.Context, category string) ([]*primary.Attachment, error) {
	atts, err := a.service.ListAttachments(ctx, category)
	if err != nil {
		return nil, err
	}
	if len(atts) == 0 {
		fmt.Fprintln(a.out, "No reference files stored.")
		return atts, nil
	}

	w := tabwriter.NewWriter(a.out, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tCATEGORY\tTYPE\tSIZE\tADDED")
	fmt.Fprintln(w, "--\t----\t--------\t----\t----\t-----")
	for _, att := range atts {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			att.ID,
			att.Name,
			orDash(att.Category),
			att.MIME,
			humanize.Bytes(uint64(att.Size)),
			formatWhen(att.CreatedAt),
		)
	}
	w.Flush()
	return atts, nil
}

// Save writes a stored file to dest, or to its name in dir when dest is a
// directory or empty.
func (a *AttachmentAdapter) Save(ctx context.Context, id, dest string) (string, error) {
	att, content, err := a.service.GetAttachment(ctx, id)
	if err != nil {
		return "", err
	}
	if dest == "" {
		dest = "."
	}
	if info, err := os.Stat(dest); err == nil && info.IsDir() {
		dest = filepath.Join(dest, filepath.Base(att.Name))
	}
	if err := os.WriteFile(dest, content, 0644); err != nil {
		return "", fmt.Errorf("failed to write file: %w", err)
	}
	fmt.Fprintf(a.out, "✓ Saved %s to %s\n", att.Name, dest)
	return dest, nil
}

// Remove deletes a stored file.
func (a *AttachmentAdapter) Remove(ctx context.Context, id string) error {
	if err := a.service.RemoveAttachment(ctx, id); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "✓ Removed reference file %s\n", id)
	return nil
}
