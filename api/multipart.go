package api

import (
	"bytes"
	"fmt"
	"mime/multipart"

	"github.com/user/snsclone-go/models"
)

// formField is one text part of a multipart body. A slice keeps part order stable.
type formField struct {
	name  string
	value string
}

// multipartBody encodes fields followed by an optional file part named fileField.
func multipartBody(fields []formField, fileField string, file *models.Upload) (*bytes.Buffer, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	for _, f := range fields {
		if err := w.WriteField(f.name, f.value); err != nil {
			return nil, "", fmt.Errorf("write field %s: %w", f.name, err)
		}
	}
	if file != nil {
		part, err := w.CreateFormFile(fileField, file.Filename)
		if err != nil {
			return nil, "", fmt.Errorf("create file part: %w", err)
		}
		if _, err := part.Write(file.Data); err != nil {
			return nil, "", fmt.Errorf("write file part: %w", err)
		}
	}
	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("close multipart writer: %w", err)
	}
	return &buf, w.FormDataContentType(), nil
}
