package admission

import (
	"bytes"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"

	"github.com/ishanya/ishanya/core"
)

// Résumé content types
const (
	ContentTypePDF  = "application/pdf"
	ContentTypeDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"

	ResumeField = "resumeFile"
)

var ErrResumeTooLarge = errors.New("resume too large")

type Resume struct {
	Filename    string
	ContentType string
	Content     []byte
}

// ReadResume reads an uploaded résumé of at most max bytes.
// The content type falls back to the file extension when the client sent none (or a generic one).
func ReadResume(r io.Reader, filename, contentType string, max int64) (*Resume, error) {
	content, err := io.ReadAll(io.LimitReader(r, max+1))
	if err != nil {
		return nil, errors.Wrap(err, "reading resume")
	}
	if int64(len(content)) > max {
		return nil, core.NewValidationError(ErrResumeTooLarge, core.FieldError{
			Field: ResumeField,
			Error: fmt.Sprintf("Resume must be at most %d MB", max>>20),
		})
	}

	ct := strings.ToLower(strings.TrimSpace(strings.SplitN(contentType, ";", 2)[0]))
	if ct == "" || ct == "application/octet-stream" {
		switch strings.ToLower(filepath.Ext(filename)) {
		case ".pdf":
			ct = ContentTypePDF
		case ".docx":
			ct = ContentTypeDOCX
		}
	}
	return &Resume{Filename: filepath.Base(filename), ContentType: ct, Content: content}, nil
}

func (r *Resume) attachTo(msg *core.EmailMessage) error {
	return msg.Attach(bytes.NewReader(r.Content), r.Filename, r.ContentType)
}
