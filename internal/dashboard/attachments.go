package dashboard

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/morelia/expodesk/internal/media"
	"github.com/morelia/expodesk/pkg/log"
	"github.com/pkg/errors"
)

// Attachments larger than this are rejected outright.
const maxAttachmentSize = 32 << 20

func (h *Handler) listAttachments(ctx context.Context, entity string, id int64) []attachmentTemplateData {
	attachments, err := h.media.List(ctx, entity, strconv.FormatInt(id, 10))
	if err != nil {
		slog.ErrorContext(ctx, "could not list attachments", log.Error(errors.WithStack(err)))
		return nil
	}

	items := make([]attachmentTemplateData, 0, len(attachments))
	for _, attachment := range attachments {
		items = append(items, attachmentTemplateData{
			Key:       attachment.Key,
			Name:      attachment.Name,
			HumanSize: humanSize(attachment.Size),
			HumanTime: humanTime(attachment.UploadedAt),
		})
	}

	return items
}

func (h *Handler) serveAttachmentUpload(set recordSet) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
		if err != nil {
			http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
			return
		}

		if err := r.ParseMultipartForm(maxAttachmentSize); err != nil {
			http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
			return
		}

		file, header, err := r.FormFile("attachment")
		if err != nil {
			http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
			return
		}

		defer file.Close()

		contentType := header.Header.Get("Content-Type")
		if contentType == "" {
			contentType = "application/octet-stream"
		}

		if _, err := h.media.Upload(ctx, set.Entity, strconv.FormatInt(id, 10), header.Filename, contentType, file, header.Size); err != nil {
			slog.ErrorContext(ctx, "could not upload attachment", log.Error(errors.WithStack(err)))
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}

		http.Redirect(w, r, fmt.Sprintf("/admin/records/%s/%d/edit", set.Slug, id), http.StatusSeeOther)
	}
}

func (h *Handler) serveAttachment(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	key := r.PathValue("key")

	reader, attachment, err := h.media.Open(ctx, key)
	if err != nil {
		if errors.Is(err, media.ErrNotFound) {
			http.NotFound(w, r)
			return
		}

		slog.ErrorContext(ctx, "could not open attachment", log.Error(errors.WithStack(err)))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)

		return
	}

	defer reader.Close()

	w.Header().Set("Content-Type", attachment.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("inline; filename=%q", attachment.Name))

	if _, err := io.Copy(w, reader); err != nil {
		slog.ErrorContext(ctx, "could not stream attachment", log.Error(errors.WithStack(err)))
	}
}
