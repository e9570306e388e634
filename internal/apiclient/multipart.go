package apiclient

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"net/textproto"
	"strings"
)

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

type FormField struct {
	Name  string
	Value string
}

// File is an upload attached to a multipart body.
type File struct {
	Field       string
	Filename    string
	ContentType string
	Content     io.Reader
}

// Multipart keeps text fields in insertion order, followed by at most one file.
type Multipart struct {
	fields []FormField
	file   *File
}

func NewMultipart() *Multipart {
	return &Multipart{}
}

func (m *Multipart) Add(name, value string) *Multipart {
	m.fields = append(m.fields, FormField{Name: name, Value: value})
	return m
}

func (m *Multipart) Attach(f File) *Multipart {
	m.file = &f
	return m
}

func (m *Multipart) Fields() []FormField {
	out := make([]FormField, len(m.fields))
	copy(out, m.fields)
	return out
}

func (m *Multipart) File() *File {
	return m.file
}

func (m *Multipart) encode() (*bytes.Buffer, string, error) {
	buf := &bytes.Buffer{}
	w := multipart.NewWriter(buf)

	for _, f := range m.fields {
		if err := w.WriteField(f.Name, f.Value); err != nil {
			return nil, "", fmt.Errorf("write field %s: %w", f.Name, err)
		}
	}

	if m.file != nil && m.file.Content != nil {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`,
			quoteEscaper.Replace(m.file.Field), quoteEscaper.Replace(m.file.Filename)))
		ct := m.file.ContentType
		if ct == "" {
			ct = "application/octet-stream"
		}
		h.Set("Content-Type", ct)

		part, err := w.CreatePart(h)
		if err != nil {
			return nil, "", fmt.Errorf("create file part: %w", err)
		}
		if _, err := io.Copy(part, m.file.Content); err != nil {
			return nil, "", fmt.Errorf("copy file %s: %w", m.file.Filename, err)
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("close multipart: %w", err)
	}
	return buf, w.FormDataContentType(), nil
}
