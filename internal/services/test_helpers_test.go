package services

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/terraincognita07/lunara/internal/models"
	"github.com/terraincognita07/lunara/internal/store"
)

var errBackendUnavailable = errors.New("backend unavailable")

// failingBackend accepts reads and rejects every write.
type failingBackend struct {
	*store.MemoryBackend
}

func (backend *failingBackend) Put(string, []byte) error {
	return errBackendUnavailable
}

func (backend *failingBackend) PutMany(map[string][]byte) error {
	return errBackendUnavailable
}

func newTestRecords(t *testing.T) *store.Store {
	t.Helper()
	records := store.New(store.NewMemoryBackend(), nil)
	t.Cleanup(func() {
		_ = records.Close()
	})
	return records
}

func newFailingRecords(t *testing.T) *store.Store {
	t.Helper()
	return store.New(&failingBackend{MemoryBackend: store.NewMemoryBackend()}, nil)
}

func sequentialIDs(prefix string) func() string {
	next := 0
	return func() string {
		next++
		return fmt.Sprintf("%s-%d", prefix, next)
	}
}

func mustParseServiceDay(t *testing.T, raw string) time.Time {
	t.Helper()
	value, err := time.ParseInLocation("2006-01-02", raw, time.UTC)
	if err != nil {
		t.Fatalf("parse day %q: %v", raw, err)
	}
	return value
}

func mustAddPeriod(t *testing.T, service *PeriodService, input PeriodEntryInput) models.PeriodEntry {
	t.Helper()
	entry, err := service.Add(input)
	if err != nil {
		t.Fatalf("add period %s: %v", input.StartDate, err)
	}
	return entry
}

func mustAddContact(t *testing.T, service *SafetyService, input EmergencyContactInput) models.EmergencyContact {
	t.Helper()
	contact, err := service.Add(input)
	if err != nil {
		t.Fatalf("add contact %s: %v", input.Name, err)
	}
	return contact
}
