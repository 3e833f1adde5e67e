package api_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/nfrund/writerfolio/internal/api"
	"github.com/nfrund/writerfolio/internal/domain"
	"github.com/nfrund/writerfolio/internal/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newClient(t *testing.T, backend *testutils.FakeBackend) *api.Client {
	t.Helper()
	c, err := api.New(backend.URL(), api.WithTimeout(2*time.Second))
	require.NoError(t, err)
	return c
}

func TestNew_RejectsNonHTTPBase(t *testing.T) {
	_, err := api.New("ftp://example.com/api")
	assert.Error(t, err)
}

func TestResolveAsset(t *testing.T) {
	c, err := api.New("https://content-writer-backend.onrender.com/api/")
	require.NoError(t, err)

	assert.Equal(t, "https://content-writer-backend.onrender.com", c.AssetBase())
	assert.Equal(t, "https://content-writer-backend.onrender.com/uploads/a.png", c.ResolveAsset("/uploads/a.png"))
	assert.Equal(t, "https://content-writer-backend.onrender.com/uploads/a.png", c.ResolveAsset("uploads/a.png"))
	assert.Equal(t, "https://cdn.example.com/a.png", c.ResolveAsset("https://cdn.example.com/a.png"))
	assert.Equal(t, "", c.ResolveAsset(""))
}

func TestList_ReturnsEveryRecord(t *testing.T) {
	backend := testutils.NewFakeBackend(t)
	backend.Seed("services",
		map[string]any{"title": "Copywriting", "description": "Words that sell", "price": 150},
		map[string]any{"title": "Editing", "description": "Polish", "price": "75.50"},
	)
	c := newClient(t, backend)

	services, err := c.Services(context.Background())
	require.NoError(t, err)
	require.Len(t, services, 2)
	assert.Equal(t, "Copywriting", services[0].Title)
	assert.Equal(t, domain.Price("150"), services[0].Price)
	assert.Equal(t, domain.Price("75.50"), services[1].Price)
	assert.NotEmpty(t, services[0].ID)
}

func TestList_EmptyCollectionIsNotNil(t *testing.T) {
	backend := testutils.NewFakeBackend(t)
	c := newClient(t, backend)

	projects, err := c.Projects(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, projects)
	assert.Empty(t, projects)
}

func TestDelete_SendsBearerTokenAndID(t *testing.T) {
	backend := testutils.NewFakeBackend(t)
	ids := backend.Seed("testimonials", map[string]any{"name": "Ada", "text": "Great"})
	c := newClient(t, backend)

	err := c.Delete(context.Background(), testutils.AdminToken, domain.KindTestimonial, ids[0])
	require.NoError(t, err)

	calls := backend.Calls(http.MethodDelete, "/testimonials/"+ids[0])
	require.Len(t, calls, 1)
	assert.Equal(t, "Bearer "+testutils.AdminToken, calls[0].Auth)
	assert.Empty(t, backend.Items("testimonials"))
}

func TestErrorClassification(t *testing.T) {
	backend := testutils.NewFakeBackend(t)
	ids := backend.Seed("services", map[string]any{"title": "x", "description": "y"})
	c := newClient(t, backend)
	ctx := context.Background()

	t.Run("401 is unauthorized", func(t *testing.T) {
		err := c.Delete(ctx, "stale-token", domain.KindService, ids[0])
		require.Error(t, err)
		assert.True(t, api.IsUnauthorized(err))
		assert.False(t, api.IsRetryable(err))
		assert.Contains(t, err.Error(), "DELETE /services/"+ids[0])
	})

	t.Run("404 is not found", func(t *testing.T) {
		err := c.Delete(ctx, testutils.AdminToken, domain.KindService, "missing")
		assert.True(t, api.IsNotFound(err))
	})

	t.Run("400 is validation with backend message", func(t *testing.T) {
		backend.FailNext(http.MethodPost, "/services", http.StatusBadRequest)
		err := c.Create(ctx, testutils.AdminToken, domain.KindService, map[string]string{"title": ""})
		assert.Equal(t, api.KindValidation, api.KindOf(err))
		assert.Equal(t, "Error saving service: injected failure", api.UserMessage(err, "saving service"))
	})

	t.Run("403 is forbidden, not a stale session", func(t *testing.T) {
		backend.FailNext(http.MethodPost, "/admin/create", http.StatusForbidden)
		err := c.CreateAdmin(ctx, testutils.AdminToken, domain.Credentials{Username: "ed", Password: "pw123456"})
		assert.Equal(t, api.KindForbidden, api.KindOf(err))
		assert.False(t, api.IsUnauthorized(err))
		assert.False(t, api.IsRetryable(err))
		assert.Equal(t, "Error creating admin: injected failure", api.UserMessage(err, "creating admin"))
	})

	t.Run("500 is retryable", func(t *testing.T) {
		backend.FailNext(http.MethodGet, "/services", http.StatusInternalServerError)
		_, err := c.Services(ctx)
		assert.Equal(t, api.KindServer, api.KindOf(err))
		assert.True(t, api.IsRetryable(err))
	})
}

func TestNetworkFailureIsRetryable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL + "/api"
	srv.Close()

	c, err := api.New(url)
	require.NoError(t, err)

	_, err = c.Services(context.Background())
	require.Error(t, err)
	assert.Equal(t, api.KindNetwork, api.KindOf(err))
	assert.True(t, api.IsRetryable(err))
}

func TestTimeoutBoundsHungBackend(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	c, err := api.New(srv.URL+"/api", api.WithTimeout(50*time.Millisecond))
	require.NoError(t, err)

	start := time.Now()
	_, err = c.Testimonials(context.Background())
	require.Error(t, err)
	assert.Equal(t, api.KindNetwork, api.KindOf(err))
	assert.Less(t, time.Since(start), 2*time.Second)
}

func TestMalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"not": "a list"`))
	}))
	defer srv.Close()

	c, err := api.New(srv.URL + "/api")
	require.NoError(t, err)

	_, err = c.Services(context.Background())
	assert.Equal(t, api.KindMalformed, api.KindOf(err))
}

func TestLogin(t *testing.T) {
	backend := testutils.NewFakeBackend(t)
	c := newClient(t, backend)
	ctx := context.Background()

	token, err := c.Login(ctx, domain.Credentials{Username: testutils.AdminUsername, Password: testutils.AdminPassword})
	require.NoError(t, err)
	assert.Equal(t, testutils.AdminToken, token)

	_, err = c.Login(ctx, domain.Credentials{Username: "admin", Password: "nope"})
	require.Error(t, err)
	assert.True(t, api.IsUnauthorized(err))
}

func TestUploadImage(t *testing.T) {
	backend := testutils.NewFakeBackend(t)
	c := newClient(t, backend)

	url, err := c.UploadImage(context.Background(), testutils.AdminToken, api.File{
		Filename:    "headshot.png",
		ContentType: "image/png",
		Content:     strings.NewReader("png-bytes"),
	})
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(url, "-headshot.png"), url)

	calls := backend.Calls(http.MethodPost, "/uploads/single")
	require.Len(t, calls, 1)
	assert.Equal(t, "image", calls[0].FileField)
	assert.Equal(t, "image/png", calls[0].FileType)
	assert.Equal(t, "png-bytes", string(calls[0].FileBytes))
}

func TestCreateMultipart_EmbedsFileUnderImageField(t *testing.T) {
	backend := testutils.NewFakeBackend(t)
	c := newClient(t, backend)

	svc := &domain.Service{Title: "Ghostwriting", Description: "Your voice", Price: "300"}
	err := c.CreateMultipart(context.Background(), testutils.AdminToken, domain.KindService, svc.Payload(), &api.File{
		FieldName:   "icon",
		Filename:    "quill.svg",
		ContentType: "image/svg+xml",
		Content:     strings.NewReader("<svg/>"),
	})
	require.NoError(t, err)

	calls := backend.Calls(http.MethodPost, "/services")
	require.Len(t, calls, 1)
	assert.Equal(t, "icon", calls[0].FileField)
	assert.Equal(t, "Ghostwriting", calls[0].Form["title"])
	assert.Equal(t, "300", calls[0].Form["price"])
	_, hasIconField := calls[0].Form["icon"]
	assert.False(t, hasIconField, "the file replaces the text field")

	items := backend.Items("services")
	require.Len(t, items, 1)
	assert.Equal(t, "/uploads/quill.svg", items[0]["icon"])
}

func TestSettings_AcceptsObjectAndArrayOfOne(t *testing.T) {
	backend := testutils.NewFakeBackend(t)
	backend.SetSettings(map[string]any{"businessName": "Ink & Co", "contactEmail": "hi@ink.co"})
	c := newClient(t, backend)
	ctx := context.Background()

	s, err := c.Settings(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Ink & Co", s.BusinessName)

	backend.SettingsAsArray = true
	s, err = c.Settings(ctx)
	require.NoError(t, err)
	assert.Equal(t, "hi@ink.co", s.ContactEmail)
}

func TestSaveSettings(t *testing.T) {
	backend := testutils.NewFakeBackend(t)
	c := newClient(t, backend)

	err := c.SaveSettings(context.Background(), testutils.AdminToken, domain.Settings{BusinessName: "Quill", CTAText: "Hire me"})
	require.NoError(t, err)

	calls := backend.Calls(http.MethodPut, "/settings")
	require.Len(t, calls, 1)
	assert.Equal(t, "Quill", calls[0].JSON()["businessName"])
	assert.Equal(t, "Quill", backend.Settings()["businessName"])
}

func TestSendContact(t *testing.T) {
	backend := testutils.NewFakeBackend(t)
	c := newClient(t, backend)

	err := c.SendContact(context.Background(), domain.ContactMessage{Name: "Bo", Email: "bo@example.com", Message: "Hello"})
	require.NoError(t, err)

	calls := backend.Calls(http.MethodPost, "/contact")
	require.Len(t, calls, 1)
	assert.Empty(t, calls[0].Auth)
	assert.Equal(t, "bo@example.com", calls[0].JSON()["email"])
}
