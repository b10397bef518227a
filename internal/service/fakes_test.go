package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"warranty-service/internal/domain"
	"warranty-service/internal/repository"
)

var errStoreDown = errors.New("store down")

// flakyStore wraps the in-memory store and fails selected calls.
type flakyStore struct {
	*repository.MemoryRecordStore
	failAppendAt int // 1-based append call that fails; 0 never
	failUpdateOn int // column whose update fails; 0 never
	failRead     bool
	appends      int
	updates      []int
}

func newFlakyStore() *flakyStore {
	return &flakyStore{MemoryRecordStore: repository.NewMemoryRecordStore()}
}

func (s *flakyStore) GetAllRecords(ctx context.Context) ([]domain.WarrantyRecord, error) {
	if s.failRead {
		return nil, errStoreDown
	}
	return s.MemoryRecordStore.GetAllRecords(ctx)
}

func (s *flakyStore) AppendRow(ctx context.Context, record domain.WarrantyRecord) error {
	s.appends++
	if s.appends == s.failAppendAt {
		return errStoreDown
	}
	return s.MemoryRecordStore.AppendRow(ctx, record)
}

func (s *flakyStore) UpdateCell(ctx context.Context, row, col int, value string) error {
	s.updates = append(s.updates, col)
	if col == s.failUpdateOn {
		return errStoreDown
	}
	return s.MemoryRecordStore.UpdateCell(ctx, row, col, value)
}

// batchStore supports atomic batches.
type batchStore struct {
	*repository.MemoryRecordStore
	batches int
	fail    bool
}

func (s *batchStore) AppendRows(ctx context.Context, records []domain.WarrantyRecord) error {
	s.batches++
	if s.fail {
		return errStoreDown
	}
	for _, r := range records {
		if err := s.MemoryRecordStore.AppendRow(ctx, r); err != nil {
			return err
		}
	}
	return nil
}

type recordingDispatcher struct {
	mu      sync.Mutex
	notices []domain.RegistrationNotice
}

func (d *recordingDispatcher) Dispatch(notice domain.RegistrationNotice) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.notices = append(d.notices, notice)
}

func (d *recordingDispatcher) sent() []domain.RegistrationNotice {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]domain.RegistrationNotice(nil), d.notices...)
}

type fakeSender struct {
	mu       sync.Mutex
	failures int
	calls    int
	to       []string
	body     string
}

func (s *fakeSender) SendEmail(ctx context.Context, to, subject, body string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	s.to = append(s.to, to)
	s.body = body
	if s.calls <= s.failures {
		return errors.New("smtp unavailable")
	}
	return nil
}

type fakeEmailRepository struct {
	mu   sync.Mutex
	logs []domain.EmailLog
	err  error
}

func (r *fakeEmailRepository) SaveLog(ctx context.Context, l domain.EmailLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.logs = append(r.logs, l)
	return r.err
}

type funcNotifier func(ctx context.Context, notice domain.RegistrationNotice) error

func (f funcNotifier) Notify(ctx context.Context, notice domain.RegistrationNotice) error {
	return f(ctx, notice)
}

var fixedNow = time.Date(2026, 10, 15, 9, 30, 0, 0, time.UTC)

func newTestService(store RecordStore, dispatcher Dispatcher) *warrantyService {
	s := NewWarrantyService(store, dispatcher, Catalog{
		Shops:     []string{"north", "south"},
		Products:  []string{"Mini", "Max"},
		Passcodes: map[string]string{"north": "1111", "south": "2222"},
	})
	s.now = func() time.Time { return fixedNow }
	return s
}

func cartOf(items ...domain.CartItem) domain.Cart {
	return domain.Cart{Items: items}
}
