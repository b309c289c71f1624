package client

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"

	"github.com/dmitrijs2005/casekeeper/internal/client/models"
)

const (
	uploadImagesPath = "/api/v1/admin/uploads/images"
	uploadField      = "files"
)

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

// UploadImages posts all files in one multipart request. The backend
// answers with one {id, publicUrl} per file, in request order.
func (c *HTTPClient) UploadImages(ctx context.Context, files []models.ImageFile) ([]models.UploadedImage, error) {
	if len(files) == 0 {
		return nil, ErrNoFiles
	}

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	for _, f := range files {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition",
			fmt.Sprintf(`form-data; name="%s"; filename="%s"`, uploadField, quoteEscaper.Replace(f.Name)))
		h.Set("Content-Type", f.ContentType)

		part, err := mw.CreatePart(h)
		if err != nil {
			return nil, fmt.Errorf("create part %s: %w", f.Name, err)
		}
		if _, err := part.Write(f.Data); err != nil {
			return nil, fmt.Errorf("write part %s: %w", f.Name, err)
		}
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("close multipart: %w", err)
	}

	var out []models.UploadedImage
	if err := c.do(ctx, http.MethodPost, uploadImagesPath, nil, &buf, mw.FormDataContentType(), &out); err != nil {
		return nil, err
	}
	if len(out) != len(files) {
		return nil, fmt.Errorf("upload returned %d images for %d files", len(out), len(files))
	}
	return out, nil
}
