package repository

import (
	"context"
	"fmt"
	"sync"

	"warranty-service/internal/domain"
)

// MemoryRecordStore keeps rows in process memory in store column layout. It
// appends one row at a time, like a spreadsheet, so it has no AppendRows.
type MemoryRecordStore struct {
	mu   sync.RWMutex
	rows [][]string
}

func NewMemoryRecordStore() *MemoryRecordStore {
	return &MemoryRecordStore{}
}

func (s *MemoryRecordStore) Ping(ctx context.Context) error {
	return nil
}

func (s *MemoryRecordStore) GetAllRecords(ctx context.Context) ([]domain.WarrantyRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	records := make([]domain.WarrantyRecord, 0, len(s.rows))
	for i, row := range s.rows {
		records = append(records, RowToRecord(i+domain.HeaderOffset, row))
	}
	return records, nil
}

func (s *MemoryRecordStore) AppendRow(ctx context.Context, record domain.WarrantyRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.rows = append(s.rows, RecordToRow(record))
	return nil
}

func (s *MemoryRecordStore) UpdateCell(ctx context.Context, row, col int, value string) error {
	if _, err := columnName(col); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := row - domain.HeaderOffset
	if idx < 0 || idx >= len(s.rows) {
		return fmt.Errorf("row %d: %w", row, domain.ErrRecordNotFound)
	}
	s.rows[idx][col-1] = value
	return nil
}

// Len returns the number of stored rows.
func (s *MemoryRecordStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.rows)
}
