package api

import (
	"context"
	"net/http"
)

// UploadField is the multipart field name the upload endpoint reads.
const UploadField = "image"

type uploadResponse struct {
	ImageURL string `json:"imageUrl"`
}

// UploadImage sends one image to /uploads/single and returns the stored
// image's URL (usually a path relative to the asset host).
func (c *Client) UploadImage(ctx context.Context, token string, file File) (string, error) {
	file.FieldName = UploadField
	body, contentType, err := encodeMultipart(nil, &file)
	if err != nil {
		return "", err
	}

	var out uploadResponse
	err = c.do(ctx, request{
		method:      http.MethodPost,
		path:        "/uploads/single",
		token:       token,
		body:        body,
		contentType: contentType,
	}, &out)
	if err != nil {
		return "", err
	}
	if out.ImageURL == "" {
		return "", &Error{Kind: KindMalformed, Op: "POST /uploads/single", Status: http.StatusOK, Message: "response has no imageUrl"}
	}
	return out.ImageURL, nil
}
