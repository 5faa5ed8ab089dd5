package core

import (
	"bytes"
	"encoding/base64"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAttach(t *testing.T) {
	var msg EmailMessage
	require.NoError(t, msg.Attach(strings.NewReader("%PDF-1.4 body"), "cv.pdf"))
	require.NoError(t, msg.Attach(bytes.NewReader([]byte("PK\x03\x04")), "cv.docx", "application/vnd.openxmlformats-officedocument.wordprocessingml.document"))

	require.True(t, msg.HasAttachments())
	decoded, err := base64.StdEncoding.DecodeString(msg.Attachments[0].Content.String())
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.4 body", string(decoded))
	assert.Equal(t, "application/pdf", msg.Attachments[0].ContentType)
	assert.Equal(t, "application/vnd.openxmlformats-officedocument.wordprocessingml.document", msg.Attachments[1].ContentType)
}

func TestRender(t *testing.T) {
	conf := &Config{AppName: "Ishanya", FrontendBaseURL: "https://ishanya.test", TestMode: true}
	msg := &EmailMessage{
		TemplateName: "welcome",
		TemplateData: map[string]string{"Name": "Pat"},
	}
	require.NoError(t, msg.Render(conf))
	assert.Contains(t, msg.TextContent, "Welcome to Ishanya, Pat!")
	assert.Contains(t, msg.TextContent, "The Ishanya team")
	assert.Contains(t, msg.HTMLContent, `href="https://ishanya.test/#apply"`)

	plain := &EmailMessage{BodyStr: "plain body"}
	require.NoError(t, plain.Render(conf))
	assert.Equal(t, "plain body", plain.TextContent)
	assert.Empty(t, plain.HTMLContent)
}

func TestParseEmailTemplatesErrors(t *testing.T) {
	fsys := fstest.MapFS{
		"templates/email/_base.txt":  {Data: []byte(`{{template "content" .}}`)},
		"templates/email/broken.txt": {Data: []byte(`{{define "content"}}{{.Data.Name}{{end}}`)},
	}
	assert.Error(t, ParseEmailTemplates(fsys, true))
}
