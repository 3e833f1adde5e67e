package content

import (
	"bytes"
	"context"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"
	"testing"
	"time"

	"github.com/nfrund/writerfolio/internal/activity"
	"github.com/nfrund/writerfolio/internal/api"
	"github.com/nfrund/writerfolio/internal/config"
	"github.com/nfrund/writerfolio/internal/domain"
	"github.com/nfrund/writerfolio/internal/storage"
	"github.com/nfrund/writerfolio/internal/testutils"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct{ entries []domain.ActivityEntry }

func (r *recorder) Record(_ context.Context, e domain.ActivityEntry) { r.entries = append(r.entries, e) }

var _ activity.Recorder = (*recorder)(nil)

type fixture struct {
	backend *testutils.FakeBackend
	fs      afero.Fs
	rec     *recorder
	mgr     *Manager
}

func newFixture(t *testing.T, strategy string) *fixture {
	t.Helper()
	backend := testutils.NewFakeBackend(t)
	client, err := api.New(backend.URL(), api.WithTimeout(2*time.Second))
	require.NoError(t, err)

	fs := afero.NewMemMapFs()
	rec := &recorder{}
	mgr := NewManager(client, storage.NewAferoStore(fs), rec, Options{
		Strategy:     strategy,
		MaxBytes:     1 << 10,
		AllowedTypes: []string{"image/png", "image/svg+xml"},
		Retries:      2,
	})
	mgr.backoff = time.Millisecond
	return &fixture{backend: backend, fs: fs, rec: rec, mgr: mgr}
}

// fileHeader builds a multipart.FileHeader the way echo hands one to a handler.
func fileHeader(t *testing.T, field, name, contentType string, content []byte) *multipart.FileHeader {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", `form-data; name="`+field+`"; filename="`+name+`"`)
	h.Set("Content-Type", contentType)
	part, err := w.CreatePart(h)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	form, err := multipart.NewReader(&buf, w.Boundary()).ReadForm(1 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { form.RemoveAll() })
	return form.File[field][0]
}

func exists(t *testing.T, fs afero.Fs, staged *Staged) bool {
	t.Helper()
	ok, err := afero.Exists(fs, staged.Path)
	require.NoError(t, err)
	return ok
}

func TestSave_PreUploadThenCreateWithReturnedURL(t *testing.T) {
	f := newFixture(t, config.UploadPreUpload)
	ctx := context.Background()

	staged, err := f.mgr.Stage(ctx, fileHeader(t, "iconFile", "quill.png", "image/png", []byte("png")))
	require.NoError(t, err)
	require.NotNil(t, staged)
	assert.True(t, exists(t, f.fs, staged))

	err = f.mgr.Save(ctx, testutils.AdminToken, &domain.Service{Title: "Copywriting", Description: "Words"}, staged)
	require.NoError(t, err)

	reqs := f.backend.Requests()
	require.Len(t, reqs, 2)
	assert.Equal(t, "/uploads/single", reqs[0].Path)
	assert.Equal(t, "png", string(reqs[0].FileBytes))
	assert.Equal(t, "/services", reqs[1].Path)
	assert.Equal(t, http.MethodPost, reqs[1].Method)

	icon, _ := reqs[1].JSON()["icon"].(string)
	assert.True(t, strings.HasSuffix(icon, "-quill.png"), icon)
	assert.False(t, exists(t, f.fs, staged), "staged copy is removed")

	require.Len(t, f.rec.entries, 2)
	assert.Equal(t, domain.ActionUploaded, f.rec.entries[0].Action)
	assert.Equal(t, domain.ActionCreated, f.rec.entries[1].Action)
}

func TestSave_NoFileKeepsManualURL(t *testing.T) {
	f := newFixture(t, config.UploadPreUpload)
	ctx := context.Background()

	staged, err := f.mgr.Stage(ctx, nil)
	require.NoError(t, err)
	assert.Nil(t, staged)

	p := &domain.Project{Title: "Essay", Image: "https://cdn.example.com/essay.jpg"}
	require.NoError(t, f.mgr.Save(ctx, testutils.AdminToken, p, staged))

	assert.Empty(t, f.backend.Calls(http.MethodPost, "/uploads/single"))
	calls := f.backend.Calls(http.MethodPost, "/projects")
	require.Len(t, calls, 1)
	assert.Equal(t, "https://cdn.example.com/essay.jpg", calls[0].JSON()["image"])
}

func TestSave_InlineSendsOneMultipartRequest(t *testing.T) {
	f := newFixture(t, config.UploadInline)
	ctx := context.Background()

	staged, err := f.mgr.Stage(ctx, fileHeader(t, "photoFile", "ada.png", "image/png", []byte("face")))
	require.NoError(t, err)

	err = f.mgr.Save(ctx, testutils.AdminToken, &domain.Testimonial{Name: "Ada", Text: "Superb"}, staged)
	require.NoError(t, err)

	reqs := f.backend.Requests()
	require.Len(t, reqs, 1)
	assert.Equal(t, "/testimonials", reqs[0].Path)
	assert.Equal(t, "photo", reqs[0].FileField)
	assert.Equal(t, "face", string(reqs[0].FileBytes))
	assert.Equal(t, "Ada", reqs[0].Form["name"])
}

func TestSave_UpdateUsesPUT(t *testing.T) {
	f := newFixture(t, config.UploadPreUpload)
	ids := f.backend.Seed("services", map[string]any{"title": "Old", "description": "d"})

	err := f.mgr.Save(context.Background(), testutils.AdminToken, &domain.Service{ID: ids[0], Title: "New", Description: "d"}, nil)
	require.NoError(t, err)

	calls := f.backend.Calls(http.MethodPut, "/services/"+ids[0])
	require.Len(t, calls, 1)
	assert.Equal(t, "New", f.backend.Items("services")[0]["title"])
	assert.Equal(t, domain.ActionUpdated, f.rec.entries[0].Action)
}

func TestSave_RetriesTransientUploadFailure(t *testing.T) {
	f := newFixture(t, config.UploadPreUpload)
	ctx := context.Background()
	f.backend.FailNext(http.MethodPost, "/uploads/single", http.StatusServiceUnavailable)

	staged, err := f.mgr.Stage(ctx, fileHeader(t, "imageFile", "cover.png", "image/png", []byte("cover")))
	require.NoError(t, err)

	require.NoError(t, f.mgr.Save(ctx, testutils.AdminToken, &domain.Project{Title: "Book"}, staged))

	uploads := f.backend.Calls(http.MethodPost, "/uploads/single")
	require.Len(t, uploads, 2)
	assert.Equal(t, "cover", string(uploads[1].FileBytes), "retry re-reads the staged copy")
	assert.Len(t, f.backend.Items("projects"), 1)
}

func TestSave_FailedUploadAbortsSave(t *testing.T) {
	f := newFixture(t, config.UploadPreUpload)
	ctx := context.Background()
	f.backend.FailNext(http.MethodPost, "/uploads/single", http.StatusBadRequest)

	staged, err := f.mgr.Stage(ctx, fileHeader(t, "imageFile", "cover.png", "image/png", []byte("cover")))
	require.NoError(t, err)

	err = f.mgr.Save(ctx, testutils.AdminToken, &domain.Project{Title: "Book"}, staged)
	require.Error(t, err)
	assert.Equal(t, api.KindValidation, api.KindOf(err))
	assert.Len(t, f.backend.Calls(http.MethodPost, "/uploads/single"), 1, "validation errors are not retried")
	assert.Empty(t, f.backend.Calls(http.MethodPost, "/projects"))
	assert.Empty(t, f.backend.Items("projects"))
	assert.Empty(t, f.rec.entries)
	assert.False(t, exists(t, f.fs, staged))
}

func TestSave_InvalidRecordIsNotSent(t *testing.T) {
	f := newFixture(t, config.UploadPreUpload)
	err := f.mgr.Save(context.Background(), testutils.AdminToken, &domain.Service{Description: "no title"}, nil)
	require.Error(t, err)
	assert.Empty(t, f.backend.Requests())
}

func TestStage_Limits(t *testing.T) {
	f := newFixture(t, config.UploadPreUpload)
	ctx := context.Background()

	_, err := f.mgr.Stage(ctx, fileHeader(t, "f", "big.png", "image/png", bytes.Repeat([]byte("x"), 2<<10)))
	assert.ErrorIs(t, err, domain.ErrFileTooLarge)

	_, err = f.mgr.Stage(ctx, fileHeader(t, "f", "doc.pdf", "application/pdf", []byte("%PDF")))
	assert.ErrorIs(t, err, domain.ErrUnsupportedType)

	staged, err := f.mgr.Stage(ctx, fileHeader(t, "f", "logo.svg", "application/octet-stream", []byte("<svg/>")))
	require.NoError(t, err, "type falls back to the file extension")
	assert.Equal(t, "image/svg+xml", staged.ContentType)
	assert.Equal(t, int64(6), staged.Size)
	assert.True(t, exists(t, f.fs, staged))
}

// truncatingStore writes a few bytes of every file and then fails, like a
// disk filling up mid-copy.
type truncatingStore struct {
	*storage.AferoStore
	paths []string
}

func (s *truncatingStore) Save(ctx context.Context, path string, r io.Reader) (int64, error) {
	s.paths = append(s.paths, path)
	if _, err := s.AferoStore.Save(ctx, path, io.LimitReader(r, 3)); err != nil {
		return 0, err
	}
	return 3, errors.New("no space left on device")
}

func TestStage_FailedCopyLeavesNoFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	store := &truncatingStore{AferoStore: storage.NewAferoStore(fs)}
	mgr := NewManager(nil, store, nil, Options{AllowedTypes: []string{"image/png"}})

	staged, err := mgr.Stage(context.Background(), fileHeader(t, "f", "photo.png", "image/png", []byte("pngdata")))
	require.Error(t, err)
	assert.Nil(t, staged)
	assert.Contains(t, err.Error(), "no space left on device")

	require.Len(t, store.paths, 1)
	ok, err := afero.Exists(fs, store.paths[0])
	require.NoError(t, err)
	assert.False(t, ok, "the partial file is removed")
}

func TestDelete(t *testing.T) {
	f := newFixture(t, config.UploadPreUpload)
	ids := f.backend.Seed("testimonials", map[string]any{"name": "Bo", "text": "Nice"})

	require.NoError(t, f.mgr.Delete(context.Background(), testutils.AdminToken, domain.KindTestimonial, ids[0], "Bo"))
	assert.Len(t, f.backend.Calls(http.MethodDelete, "/testimonials/"+ids[0]), 1)
	assert.Equal(t, domain.ActionDeleted, f.rec.entries[0].Action)

	err := f.mgr.Delete(context.Background(), testutils.AdminToken, domain.KindTestimonial, "", "")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSaveSettings_UploadsAboutImage(t *testing.T) {
	f := newFixture(t, config.UploadPreUpload)
	ctx := context.Background()

	staged, err := f.mgr.Stage(ctx, fileHeader(t, "aboutImageFile", "me.png", "image/png", []byte("me")))
	require.NoError(t, err)

	require.NoError(t, f.mgr.SaveSettings(ctx, testutils.AdminToken, domain.Settings{BusinessName: "Quill"}, staged))

	about, _ := f.backend.Settings()["aboutImage"].(string)
	assert.True(t, strings.HasSuffix(about, "-me.png"), about)
	assert.Equal(t, "Quill", f.backend.Settings()["businessName"])
}

func TestCreateAdmin(t *testing.T) {
	f := newFixture(t, config.UploadPreUpload)
	ctx := context.Background()

	require.NoError(t, f.mgr.CreateAdmin(ctx, testutils.AdminToken, domain.Credentials{Username: "editor", Password: "pw"}))
	assert.Len(t, f.backend.Calls(http.MethodPost, "/admin/create"), 1)

	err := f.mgr.CreateAdmin(ctx, testutils.AdminToken, domain.Credentials{Username: "editor"})
	require.Error(t, err)
	assert.Len(t, f.backend.Calls(http.MethodPost, "/admin/create"), 1)
}
