package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/terraincognita07/lunara/internal/store"
)

var testNow = time.Date(2024, time.March, 25, 12, 0, 0, 0, time.UTC)

type unavailableBackend struct {
	*store.MemoryBackend
}

func (backend *unavailableBackend) Put(string, []byte) error {
	return errors.New("disk full")
}

func (backend *unavailableBackend) PutMany(map[string][]byte) error {
	return errors.New("disk full")
}

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()
	return newTestAppWithBackend(t, store.NewMemoryBackend())
}

func newTestAppWithBackend(t *testing.T, backend store.Backend) *fiber.App {
	t.Helper()
	return newConfiguredTestApp(t, backend, time.UTC, testNow)
}

func newConfiguredTestApp(t *testing.T, backend store.Backend, location *time.Location, now time.Time) *fiber.App {
	t.Helper()

	records := store.New(backend, nil)
	t.Cleanup(func() {
		_ = records.Close()
	})

	handler, err := NewHandler(records, location, nil)
	if err != nil {
		t.Fatalf("init handler: %v", err)
	}
	handler.now = func() time.Time { return now }

	app := fiber.New()
	RegisterRoutes(app, handler)
	app.Use(handler.NotFound)
	return app
}

func doJSONRequest(t *testing.T, app *fiber.App, method string, path string, body string) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = bytes.NewBufferString(body)
	}
	request := httptest.NewRequest(method, path, reader)
	if body != "" {
		request.Header.Set("Content-Type", "application/json")
	}
	response, err := app.Test(request, -1)
	if err != nil {
		t.Fatalf("%s %s failed: %v", method, path, err)
	}
	t.Cleanup(func() {
		_ = response.Body.Close()
	})
	return response
}

func mustRequest(t *testing.T, app *fiber.App, method string, path string, body string, wantStatus int) *http.Response {
	t.Helper()
	response := doJSONRequest(t, app, method, path, body)
	if response.StatusCode != wantStatus {
		t.Fatalf("%s %s: expected status %d, got %d", method, path, wantStatus, response.StatusCode)
	}
	return response
}

func readAPIError(t *testing.T, body io.Reader) string {
	t.Helper()
	payload := map[string]string{}
	if err := json.NewDecoder(body).Decode(&payload); err != nil {
		t.Fatalf("decode error payload: %v", err)
	}
	return payload["error"]
}

type mutationEnvelope[T any] struct {
	Data    T      `json:"data"`
	Warning string `json:"warning"`
}

func readMutation[T any](t *testing.T, body io.Reader) mutationEnvelope[T] {
	t.Helper()
	var envelope mutationEnvelope[T]
	if err := json.NewDecoder(body).Decode(&envelope); err != nil {
		t.Fatalf("decode mutation payload: %v", err)
	}
	return envelope
}

func readJSON[T any](t *testing.T, body io.Reader) T {
	t.Helper()
	var value T
	if err := json.NewDecoder(body).Decode(&value); err != nil {
		t.Fatalf("decode payload: %v", err)
	}
	return value
}
