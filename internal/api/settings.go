package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/nfrund/writerfolio/internal/domain"
)

const settingsPath = "/settings"

// Settings fetches the singleton settings record.
func (c *Client) Settings(ctx context.Context) (domain.Settings, error) {
	var raw json.RawMessage
	if err := c.do(ctx, request{method: http.MethodGet, path: settingsPath}, &raw); err != nil {
		return domain.Settings{}, err
	}
	s, err := decodeSettings(raw)
	if err != nil {
		return domain.Settings{}, &Error{Kind: KindMalformed, Op: "GET " + settingsPath, Status: http.StatusOK, Err: err}
	}
	return s, nil
}

// decodeSettings accepts the documented bare object. An array is tolerated
// and its first element used, since one deployment of the backend answered
// with a one-element collection. null and [] mean "no settings yet".
func decodeSettings(raw json.RawMessage) (domain.Settings, error) {
	var s domain.Settings
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || string(trimmed) == "null" {
		return s, nil
	}
	if trimmed[0] == '[' {
		var list []domain.Settings
		if err := json.Unmarshal(trimmed, &list); err != nil {
			return s, fmt.Errorf("decoding settings list: %w", err)
		}
		if len(list) == 0 {
			return s, nil
		}
		return list[0], nil
	}
	if err := json.Unmarshal(trimmed, &s); err != nil {
		return s, fmt.Errorf("decoding settings: %w", err)
	}
	return s, nil
}

// SaveSettings upserts the settings record as JSON.
func (c *Client) SaveSettings(ctx context.Context, token string, s domain.Settings) error {
	r, err := jsonRequest(http.MethodPut, settingsPath, token, s)
	if err != nil {
		return err
	}
	return c.do(ctx, r, nil)
}

// SaveSettingsMultipart upserts the settings with the about image embedded.
func (c *Client) SaveSettingsMultipart(ctx context.Context, token string, s domain.Settings, file *File) error {
	return c.submitMultipart(ctx, http.MethodPut, settingsPath, token, s, file)
}
