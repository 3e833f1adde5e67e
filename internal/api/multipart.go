package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/textproto"
	"sort"
	"strconv"
	"strings"
)

// File is an image attached to a multipart request.
type File struct {
	// FieldName is the form field the backend reads the file from.
	FieldName   string
	Filename    string
	ContentType string
	Content     io.Reader
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

// formFields flattens a JSON-encodable payload into string form fields.
func formFields(payload any) (map[string]string, error) {
	if payload == nil {
		return map[string]string{}, nil
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("payload must encode to a JSON object: %w", err)
	}
	fields := make(map[string]string, len(m))
	for k, v := range m {
		switch val := v.(type) {
		case nil:
			continue
		case string:
			fields[k] = val
		case float64:
			fields[k] = strconv.FormatFloat(val, 'f', -1, 64)
		case bool:
			fields[k] = strconv.FormatBool(val)
		default:
			b, err := json.Marshal(val)
			if err != nil {
				return nil, err
			}
			fields[k] = string(b)
		}
	}
	return fields, nil
}

// encodeMultipart writes fields (sorted, for stable requests) followed by the
// optional file part. A field with the same name as the file is skipped so the
// backend sees only the file.
func encodeMultipart(fields map[string]string, file *File) (*bytes.Buffer, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	keys := make([]string, 0, len(fields))
	for k := range fields {
		if file != nil && k == file.FieldName {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if err := w.WriteField(k, fields[k]); err != nil {
			return nil, "", err
		}
	}

	if file != nil {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`,
			quoteEscaper.Replace(file.FieldName), quoteEscaper.Replace(file.Filename)))
		ct := file.ContentType
		if ct == "" {
			ct = "application/octet-stream"
		}
		h.Set("Content-Type", ct)
		part, err := w.CreatePart(h)
		if err != nil {
			return nil, "", err
		}
		if _, err := io.Copy(part, file.Content); err != nil {
			return nil, "", fmt.Errorf("copying %s: %w", file.Filename, err)
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return &buf, w.FormDataContentType(), nil
}

func (c *Client) submitMultipart(ctx context.Context, method, path, token string, payload any, file *File) error {
	fields, err := formFields(payload)
	if err != nil {
		return fmt.Errorf("encoding %s %s form: %w", method, path, err)
	}
	body, contentType, err := encodeMultipart(fields, file)
	if err != nil {
		return fmt.Errorf("encoding %s %s form: %w", method, path, err)
	}
	return c.do(ctx, request{
		method:      method,
		path:        path,
		token:       token,
		body:        body,
		contentType: contentType,
	}, nil)
}
