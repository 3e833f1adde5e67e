package testutils

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"sync"
	"testing"
)

// Credentials accepted by the fake backend's login endpoint.
const (
	AdminUsername = "admin"
	AdminPassword = "correct-horse-battery"
	AdminToken    = "test-admin-token"
)

// RecordedRequest is one call the fake backend received.
type RecordedRequest struct {
	Method      string
	Path        string
	Auth        string
	ContentType string
	Body        []byte
	// Multipart requests only.
	Form      map[string]string
	FileField string
	FileName  string
	FileType  string
	FileBytes []byte
}

// JSON decodes the recorded body into a map.
func (r RecordedRequest) JSON() map[string]any {
	var m map[string]any
	_ = json.Unmarshal(r.Body, &m)
	return m
}

// FakeBackend is an in-memory stand-in for the content REST API, served by
// httptest. It records every request so tests can assert on call counts,
// paths and payloads.
type FakeBackend struct {
	Server *httptest.Server

	mu          sync.Mutex
	requests    []RecordedRequest
	collections map[string][]map[string]any
	settings    map[string]any
	nextID      int
	failures    map[string][]int

	// SettingsAsArray makes GET /settings answer with a one-element array.
	SettingsAsArray bool
}

// NewFakeBackend starts a fake backend that is closed when the test ends.
func NewFakeBackend(t *testing.T) *FakeBackend {
	t.Helper()
	f := &FakeBackend{
		collections: map[string][]map[string]any{
			"services":     {},
			"projects":     {},
			"testimonials": {},
		},
		settings: map[string]any{},
		failures: map[string][]int{},
	}
	f.Server = httptest.NewServer(http.HandlerFunc(f.serve))
	t.Cleanup(f.Server.Close)
	return f
}

// URL is the API root, including the "/api" segment.
func (f *FakeBackend) URL() string { return f.Server.URL + "/api" }

// Seed adds records to a collection and returns their assigned ids.
func (f *FakeBackend) Seed(kind string, records ...map[string]any) []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	ids := make([]string, 0, len(records))
	for _, r := range records {
		rec := copyMap(r)
		if _, ok := rec["_id"]; !ok {
			f.nextID++
			rec["_id"] = fmt.Sprintf("id-%d", f.nextID)
		}
		ids = append(ids, rec["_id"].(string))
		f.collections[kind] = append(f.collections[kind], rec)
	}
	return ids
}

// SetSettings replaces the settings record.
func (f *FakeBackend) SetSettings(s map[string]any) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.settings = copyMap(s)
}

// Settings returns a copy of the stored settings.
func (f *FakeBackend) Settings() map[string]any {
	f.mu.Lock()
	defer f.mu.Unlock()
	return copyMap(f.settings)
}

// Items returns a copy of a collection.
func (f *FakeBackend) Items(kind string) []map[string]any {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]map[string]any, 0, len(f.collections[kind]))
	for _, r := range f.collections[kind] {
		out = append(out, copyMap(r))
	}
	return out
}

// FailNext makes the next matching calls answer with the given statuses, one
// per call, before normal handling resumes. path excludes the "/api" prefix.
func (f *FakeBackend) FailNext(method, path string, statuses ...int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := method + " " + path
	f.failures[key] = append(f.failures[key], statuses...)
}

// Requests returns every recorded request.
func (f *FakeBackend) Requests() []RecordedRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]RecordedRequest(nil), f.requests...)
}

// Calls returns recorded requests with the given method whose path (without
// "/api") equals path.
func (f *FakeBackend) Calls(method, path string) []RecordedRequest {
	var out []RecordedRequest
	for _, r := range f.Requests() {
		if r.Method == method && r.Path == path {
			out = append(out, r)
		}
	}
	return out
}

// Reset forgets recorded requests.
func (f *FakeBackend) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = nil
}

func (f *FakeBackend) serve(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/api")
	rec := f.record(r, path)

	f.mu.Lock()
	defer f.mu.Unlock()

	key := r.Method + " " + path
	if queued := f.failures[key]; len(queued) > 0 {
		f.failures[key] = queued[1:]
		writeJSON(w, queued[0], map[string]string{"message": "injected failure"})
		return
	}

	segments := strings.Split(strings.Trim(path, "/"), "/")
	authed := rec.Auth == "Bearer "+AdminToken

	switch {
	case path == "/admin/login" && r.Method == http.MethodPost:
		creds := rec.JSON()
		if creds["username"] == AdminUsername && creds["password"] == AdminPassword {
			writeJSON(w, http.StatusOK, map[string]string{"token": AdminToken})
			return
		}
		writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "Invalid credentials"})

	case path == "/admin/create" && r.Method == http.MethodPost:
		if !authed {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "No token"})
			return
		}
		creds := rec.JSON()
		if creds["username"] == "" || creds["password"] == "" {
			writeJSON(w, http.StatusBadRequest, map[string]string{"message": "username and password are required"})
			return
		}
		writeJSON(w, http.StatusCreated, map[string]string{"message": "Admin created"})

	case path == "/uploads/single" && r.Method == http.MethodPost:
		if !authed {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "No token"})
			return
		}
		if rec.FileField != "image" {
			writeJSON(w, http.StatusBadRequest, map[string]string{"message": "No file uploaded"})
			return
		}
		f.nextID++
		writeJSON(w, http.StatusOK, map[string]string{"imageUrl": fmt.Sprintf("/uploads/%d-%s", f.nextID, rec.FileName)})

	case path == "/contact" && r.Method == http.MethodPost:
		writeJSON(w, http.StatusOK, map[string]string{"message": "Message received"})

	case path == "/settings" && r.Method == http.MethodGet:
		if f.SettingsAsArray {
			writeJSON(w, http.StatusOK, []map[string]any{f.settings})
			return
		}
		writeJSON(w, http.StatusOK, f.settings)

	case path == "/settings" && r.Method == http.MethodPut:
		if !authed {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "No token"})
			return
		}
		body := f.payload(rec, "aboutImage")
		for k, v := range body {
			f.settings[k] = v
		}
		writeJSON(w, http.StatusOK, f.settings)

	case len(segments) >= 1 && f.isCollection(segments[0]):
		f.serveCollection(w, r.Method, segments, rec, authed)

	default:
		writeJSON(w, http.StatusNotFound, map[string]string{"message": "Not found"})
	}
}

func (f *FakeBackend) isCollection(name string) bool {
	_, ok := f.collections[name]
	return ok
}

func imageFieldFor(kind string) string {
	switch kind {
	case "services":
		return "icon"
	case "testimonials":
		return "photo"
	}
	return "image"
}

func (f *FakeBackend) serveCollection(w http.ResponseWriter, method string, segments []string, rec RecordedRequest, authed bool) {
	kind := segments[0]
	items := f.collections[kind]

	if method != http.MethodGet && !authed {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "No token"})
		return
	}

	if len(segments) == 1 {
		switch method {
		case http.MethodGet:
			writeJSON(w, http.StatusOK, items)
		case http.MethodPost:
			body := f.payload(rec, imageFieldFor(kind))
			f.nextID++
			body["_id"] = fmt.Sprintf("id-%d", f.nextID)
			f.collections[kind] = append(items, body)
			writeJSON(w, http.StatusCreated, body)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
		return
	}

	id := segments[1]
	idx := -1
	for i, item := range items {
		if item["_id"] == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		writeJSON(w, http.StatusNotFound, map[string]string{"message": "Not found"})
		return
	}

	switch method {
	case http.MethodGet:
		writeJSON(w, http.StatusOK, items[idx])
	case http.MethodPut:
		body := f.payload(rec, imageFieldFor(kind))
		for k, v := range body {
			items[idx][k] = v
		}
		items[idx]["_id"] = id
		writeJSON(w, http.StatusOK, items[idx])
	case http.MethodDelete:
		f.collections[kind] = append(items[:idx:idx], items[idx+1:]...)
		writeJSON(w, http.StatusOK, map[string]string{"message": "Deleted"})
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

// payload returns the JSON body or the multipart fields, with an embedded
// file stored under imageField as an uploads path.
func (f *FakeBackend) payload(rec RecordedRequest, imageField string) map[string]any {
	if rec.Form != nil {
		out := make(map[string]any, len(rec.Form)+1)
		for k, v := range rec.Form {
			out[k] = v
		}
		if rec.FileField != "" {
			out[imageField] = "/uploads/" + rec.FileName
		}
		return out
	}
	body := rec.JSON()
	if body == nil {
		body = map[string]any{}
	}
	delete(body, "_id")
	return body
}

func (f *FakeBackend) record(r *http.Request, path string) RecordedRequest {
	body, _ := io.ReadAll(r.Body)
	rec := RecordedRequest{
		Method:      r.Method,
		Path:        path,
		Auth:        r.Header.Get("Authorization"),
		ContentType: r.Header.Get("Content-Type"),
		Body:        body,
	}

	if strings.HasPrefix(rec.ContentType, "multipart/form-data") {
		r.Body = io.NopCloser(bytes.NewReader(body))
		if err := r.ParseMultipartForm(32 << 20); err == nil {
			rec.Form = map[string]string{}
			for k, v := range r.MultipartForm.Value {
				if len(v) > 0 {
					rec.Form[k] = v[0]
				}
			}
			fields := make([]string, 0, len(r.MultipartForm.File))
			for k := range r.MultipartForm.File {
				fields = append(fields, k)
			}
			sort.Strings(fields)
			if len(fields) > 0 {
				fh := r.MultipartForm.File[fields[0]][0]
				rec.FileField = fields[0]
				rec.FileName = fh.Filename
				rec.FileType = fh.Header.Get("Content-Type")
				if src, err := fh.Open(); err == nil {
					rec.FileBytes, _ = io.ReadAll(src)
					src.Close()
				}
			}
		}
	}

	f.mu.Lock()
	f.requests = append(f.requests, rec)
	f.mu.Unlock()
	return rec
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func copyMap(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
