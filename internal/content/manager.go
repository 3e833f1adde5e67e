// Package content performs admin mutations against the backend: it stages
// uploaded images, applies the configured upload strategy, and reports each
// successful change to the activity feed.
package content

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"mime"
	"mime/multipart"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/nfrund/writerfolio/internal/activity"
	"github.com/nfrund/writerfolio/internal/api"
	"github.com/nfrund/writerfolio/internal/config"
	"github.com/nfrund/writerfolio/internal/domain"
	"github.com/nfrund/writerfolio/internal/storage"
)

// Backend is the part of the API client the manager needs.
type Backend interface {
	UploadImage(ctx context.Context, token string, file api.File) (string, error)
	Create(ctx context.Context, token string, kind domain.Kind, payload any) error
	Update(ctx context.Context, token string, kind domain.Kind, id string, payload any) error
	Delete(ctx context.Context, token string, kind domain.Kind, id string) error
	CreateMultipart(ctx context.Context, token string, kind domain.Kind, payload any, file *api.File) error
	UpdateMultipart(ctx context.Context, token string, kind domain.Kind, id string, payload any, file *api.File) error
	SaveSettings(ctx context.Context, token string, s domain.Settings) error
	SaveSettingsMultipart(ctx context.Context, token string, s domain.Settings, file *api.File) error
	CreateAdmin(ctx context.Context, token string, creds domain.Credentials) error
}

// Options are the upload settings taken from configuration.
type Options struct {
	Strategy     string
	MaxBytes     int64
	AllowedTypes []string
	Retries      int
}

// OptionsFrom reads Options from the configuration provider.
func OptionsFrom(cfg config.Provider) Options {
	return Options{
		Strategy:     cfg.GetUploadStrategy(),
		MaxBytes:     cfg.GetUploadMaxBytes(),
		AllowedTypes: cfg.GetUploadAllowedTypes(),
		Retries:      cfg.GetUploadRetries(),
	}
}

// Staged is an uploaded file spooled into the staging store.
type Staged struct {
	Path        string
	Filename    string
	ContentType string
	Size        int64
}

// Manager owns every admin write.
type Manager struct {
	backend  Backend
	store    storage.Store
	recorder activity.Recorder
	opts     Options
	backoff  time.Duration
}

// NewManager creates a Manager. A nil recorder discards activity.
func NewManager(backend Backend, store storage.Store, recorder activity.Recorder, opts Options) *Manager {
	if recorder == nil {
		recorder = activity.Discard{}
	}
	if opts.Strategy == "" {
		opts.Strategy = config.UploadPreUpload
	}
	return &Manager{
		backend:  backend,
		store:    store,
		recorder: recorder,
		opts:     opts,
		backoff:  250 * time.Millisecond,
	}
}

// Strategy returns the configured upload strategy.
func (m *Manager) Strategy() string { return m.opts.Strategy }

// Stage checks fh against the size and type limits and copies it into the
// staging store. A nil or empty header means no file was chosen and returns
// (nil, nil).
func (m *Manager) Stage(ctx context.Context, fh *multipart.FileHeader) (*Staged, error) {
	if fh == nil || fh.Size == 0 {
		return nil, nil
	}
	if m.opts.MaxBytes > 0 && fh.Size > m.opts.MaxBytes {
		return nil, fmt.Errorf("%w: %s is %d bytes, the limit is %d", domain.ErrFileTooLarge, fh.Filename, fh.Size, m.opts.MaxBytes)
	}

	contentType := detectType(fh)
	if len(m.opts.AllowedTypes) > 0 && !slices.Contains(m.opts.AllowedTypes, contentType) {
		return nil, fmt.Errorf("%w: %s (%s)", domain.ErrUnsupportedType, fh.Filename, contentType)
	}

	src, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("opening upload %s: %w", fh.Filename, err)
	}
	defer src.Close()

	path := uuid.NewString() + strings.ToLower(filepath.Ext(fh.Filename))
	size, err := m.store.Save(ctx, path, src)
	if err != nil {
		// A failed copy can leave a partial file behind.
		if rmErr := m.store.Delete(ctx, path); rmErr != nil && !errors.Is(rmErr, fs.ErrNotExist) {
			slog.WarnContext(ctx, "Failed to remove partial upload", "path", path, "error", rmErr)
		}
		return nil, fmt.Errorf("staging upload %s: %w", fh.Filename, err)
	}
	return &Staged{
		Path:        path,
		Filename:    filepath.Base(fh.Filename),
		ContentType: contentType,
		Size:        size,
	}, nil
}

func detectType(fh *multipart.FileHeader) string {
	ct := fh.Header.Get("Content-Type")
	if ct == "" || ct == "application/octet-stream" {
		ct = mime.TypeByExtension(strings.ToLower(filepath.Ext(fh.Filename)))
	}
	if mediaType, _, err := mime.ParseMediaType(ct); err == nil {
		return mediaType
	}
	return ct
}

// Discard removes a staged file. It is safe to call with nil.
func (m *Manager) Discard(ctx context.Context, staged *Staged) {
	if staged == nil {
		return
	}
	if err := m.store.Delete(ctx, staged.Path); err != nil {
		slog.WarnContext(ctx, "Failed to remove staged upload", "path", staged.Path, "error", err)
	}
}

// Save creates rec when it has no id and updates it otherwise. With a staged
// file the configured strategy decides how the image reaches the backend;
// without one the record's image URL is sent as entered. The staged file is
// removed whatever the outcome.
func (m *Manager) Save(ctx context.Context, token string, rec domain.Record, staged *Staged) error {
	defer m.Discard(ctx, staged)

	if err := rec.Validate(); err != nil {
		return err
	}

	kind, id := rec.Kind(), rec.RecordID()
	var err error
	switch {
	case staged != nil && m.opts.Strategy == config.UploadInline:
		err = m.withStaged(ctx, staged, kind.ImageField(), func(file *api.File) error {
			if id == "" {
				return m.backend.CreateMultipart(ctx, token, kind, rec.Payload(), file)
			}
			return m.backend.UpdateMultipart(ctx, token, kind, id, rec.Payload(), file)
		})
	default:
		if staged != nil {
			url, uploadErr := m.upload(ctx, token, staged)
			if uploadErr != nil {
				return uploadErr
			}
			rec.SetImageURL(url)
		}
		if id == "" {
			err = m.backend.Create(ctx, token, kind, rec.Payload())
		} else {
			err = m.backend.Update(ctx, token, kind, id, rec.Payload())
		}
	}
	if err != nil {
		return err
	}

	action := domain.ActionUpdated
	if id == "" {
		action = domain.ActionCreated
	}
	m.recorder.Record(ctx, domain.ActivityEntry{Action: action, Kind: kind, RecordID: id, Label: rec.Label()})
	return nil
}

// Delete removes one record.
func (m *Manager) Delete(ctx context.Context, token string, kind domain.Kind, id, label string) error {
	if id == "" {
		return fmt.Errorf("delete %s: %w", kind.Singular(), domain.ErrNotFound)
	}
	if err := m.backend.Delete(ctx, token, kind, id); err != nil {
		return err
	}
	m.recorder.Record(ctx, domain.ActivityEntry{Action: domain.ActionDeleted, Kind: kind, RecordID: id, Label: label})
	return nil
}

// SaveSettings upserts the settings singleton, uploading a new about image
// first when one was staged.
func (m *Manager) SaveSettings(ctx context.Context, token string, s domain.Settings, staged *Staged) error {
	defer m.Discard(ctx, staged)

	if err := s.Validate(); err != nil {
		return err
	}

	var err error
	switch {
	case staged != nil && m.opts.Strategy == config.UploadInline:
		err = m.withStaged(ctx, staged, domain.SettingsImageField, func(file *api.File) error {
			return m.backend.SaveSettingsMultipart(ctx, token, s, file)
		})
	default:
		if staged != nil {
			url, uploadErr := m.upload(ctx, token, staged)
			if uploadErr != nil {
				return uploadErr
			}
			s.AboutImage = url
		}
		err = m.backend.SaveSettings(ctx, token, s)
	}
	if err != nil {
		return err
	}
	m.recorder.Record(ctx, domain.ActivityEntry{Action: domain.ActionSettings})
	return nil
}

// CreateAdmin registers another admin account.
func (m *Manager) CreateAdmin(ctx context.Context, token string, creds domain.Credentials) error {
	if err := creds.Validate(); err != nil {
		return err
	}
	if err := m.backend.CreateAdmin(ctx, token, creds); err != nil {
		return err
	}
	m.recorder.Record(ctx, domain.ActivityEntry{Action: domain.ActionAdminCreated, Label: creds.Username})
	return nil
}

// upload sends the staged file to the upload endpoint, retrying transient
// failures from the staged copy.
func (m *Manager) upload(ctx context.Context, token string, staged *Staged) (string, error) {
	var url string
	err := m.retry(ctx, func() error {
		return m.withStaged(ctx, staged, api.UploadField, func(file *api.File) error {
			var err error
			url, err = m.backend.UploadImage(ctx, token, *file)
			return err
		})
	})
	if err != nil {
		return "", err
	}
	m.recorder.Record(ctx, domain.ActivityEntry{Action: domain.ActionUploaded, Label: staged.Filename})
	return url, nil
}

func (m *Manager) withStaged(ctx context.Context, staged *Staged, field string, fn func(*api.File) error) error {
	rc, err := m.store.Open(ctx, staged.Path)
	if err != nil {
		return fmt.Errorf("opening staged upload %s: %w", staged.Filename, err)
	}
	defer rc.Close()
	return fn(&api.File{
		FieldName:   field,
		Filename:    staged.Filename,
		ContentType: staged.ContentType,
		Content:     rc,
	})
}

func (m *Manager) retry(ctx context.Context, fn func() error) error {
	var err error
	for attempt := 0; attempt <= m.opts.Retries; attempt++ {
		if attempt > 0 {
			slog.WarnContext(ctx, "Retrying upload", "attempt", attempt, "error", err)
			select {
			case <-ctx.Done():
				return errors.Join(err, ctx.Err())
			case <-time.After(m.backoff * time.Duration(attempt)):
			}
		}
		if err = fn(); err == nil || !api.IsRetryable(err) {
			return err
		}
	}
	return err
}
