package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"warranty-service/internal/domain"

	log "github.com/sirupsen/logrus"
)

const queryTimeout = 5 * time.Second

// PostgresRecordStore keeps warranty rows in a single table. Rows are addressed
// by their position in id order, the same way a spreadsheet addresses them.
type PostgresRecordStore struct {
	db *sql.DB
}

func NewPostgresRecordStore(db *sql.DB) *PostgresRecordStore {
	return &PostgresRecordStore{db: db}
}

func (s *PostgresRecordStore) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()
	return s.db.PingContext(ctx)
}

func selectColumns() string {
	names := make([]string, 0, domain.NumColumns)
	for col := 1; col <= domain.NumColumns; col++ {
		names = append(names, columnNames[col])
	}
	return strings.Join(names, ", ")
}

func (s *PostgresRecordStore) GetAllRecords(ctx context.Context) ([]domain.WarrantyRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	query := fmt.Sprintf(`SELECT %s FROM warranty_records ORDER BY id`, selectColumns())
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query warranty records: %w", err)
	}
	defer rows.Close()

	var records []domain.WarrantyRecord
	for rows.Next() {
		values := make([]string, domain.NumColumns)
		dest := make([]interface{}, domain.NumColumns)
		for i := range values {
			dest[i] = &values[i]
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("failed to scan warranty record: %w", err)
		}
		records = append(records, RowToRecord(len(records)+domain.HeaderOffset, values))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read warranty records: %w", err)
	}
	return records, nil
}

func insertQuery() string {
	placeholders := make([]string, domain.NumColumns)
	for i := range placeholders {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
	}
	return fmt.Sprintf(`INSERT INTO warranty_records (%s) VALUES (%s)`, selectColumns(), strings.Join(placeholders, ", "))
}

func rowArgs(record domain.WarrantyRecord) []interface{} {
	row := RecordToRow(record)
	args := make([]interface{}, len(row))
	for i, v := range row {
		args[i] = v
	}
	return args
}

func (s *PostgresRecordStore) AppendRow(ctx context.Context, record domain.WarrantyRecord) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	if _, err := s.db.ExecContext(ctx, insertQuery(), rowArgs(record)...); err != nil {
		return fmt.Errorf("failed to insert warranty record: %w", err)
	}
	return nil
}

// AppendRows inserts the batch in one transaction: all rows or none.
func (s *PostgresRecordStore) AppendRows(ctx context.Context, records []domain.WarrantyRecord) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	query := insertQuery()
	for i, record := range records {
		if _, err := tx.ExecContext(ctx, query, rowArgs(record)...); err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				log.WithError(rbErr).Error("Failed to roll back warranty batch")
			}
			return fmt.Errorf("failed to insert warranty record %d of %d: %w", i+1, len(records), err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit warranty batch: %w", err)
	}
	return nil
}

func (s *PostgresRecordStore) UpdateCell(ctx context.Context, row, col int, value string) error {
	name, err := columnName(col)
	if err != nil {
		return err
	}
	offset := row - domain.HeaderOffset
	if offset < 0 {
		return fmt.Errorf("row %d: %w", row, domain.ErrRecordNotFound)
	}

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	query := fmt.Sprintf(`UPDATE warranty_records SET %s = $1
        WHERE id = (SELECT id FROM warranty_records ORDER BY id OFFSET $2 LIMIT 1)`, name)
	res, err := s.db.ExecContext(ctx, query, value, offset)
	if err != nil {
		return fmt.Errorf("failed to update %s: %w", name, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to update %s: %w", name, err)
	}
	if n == 0 {
		return fmt.Errorf("row %d: %w", row, domain.ErrRecordNotFound)
	}
	return nil
}
