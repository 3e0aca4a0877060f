package records

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"mandatpro/internal/logger"
	"mandatpro/pkg/models"
)

// Driver names registered by the imported database drivers.
const (
	DriverSQLite   = "sqlite3"
	DriverPostgres = "pgx"
)

const (
	entryColumns = `id, amount, date, category, account, tax_code, receipt_number, description, cost_center`
	levyColumns  = `id, contact_name, period_month, status, final_levy, payment_date, created_date`
)

// SQLSource reads records from the tables income, expenses and
// mandate_levies of a SQLite or PostgreSQL database.
type SQLSource struct {
	db     *sql.DB
	driver string
	name   string
	owned  bool
	log    zerolog.Logger
}

// OpenSQLSource opens a database with driver and dsn. The connection is
// closed by Close.
func OpenSQLSource(ctx context.Context, driver, dsn string) (*SQLSource, error) {
	const op = "OpenSQLSource"

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, &SourceError{Op: op, Source: driver, Err: err}
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, &SourceError{Op: op, Source: driver, Err: err}
	}

	s := NewSQLSource(db, driver)
	s.owned = true
	return s, nil
}

// NewSQLSource wraps an open database. The caller keeps ownership of db.
func NewSQLSource(db *sql.DB, driver string) *SQLSource {
	return &SQLSource{
		db:     db,
		driver: driver,
		name:   driver,
		log:    logger.WithComponent("records-sql"),
	}
}

// Load queries all three tables. Entries are ordered by date and id,
// levies by creation date and id.
func (s *SQLSource) Load(ctx context.Context) (*models.Dataset, error) {
	const op = "Load"

	income, err := s.queryEntries(ctx, "income")
	if err != nil {
		return nil, &SourceError{Op: op, Source: s.name, Err: err}
	}
	expenses, err := s.queryEntries(ctx, "expenses")
	if err != nil {
		return nil, &SourceError{Op: op, Source: s.name, Err: err}
	}
	levies, err := s.queryLevies(ctx)
	if err != nil {
		return nil, &SourceError{Op: op, Source: s.name, Err: err}
	}

	s.log.Info().
		Str("driver", s.driver).
		Int("income", len(income)).
		Int("expenses", len(expenses)).
		Int("mandate_levies", len(levies)).
		Msg("Records loaded from database")

	return &models.Dataset{Income: income, Expenses: expenses, MandateLevies: levies}, nil
}

// Close closes the database if the source opened it.
func (s *SQLSource) Close() error {
	if !s.owned {
		return nil
	}
	return s.db.Close()
}

func (s *SQLSource) queryEntries(ctx context.Context, table string) ([]models.Entry, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s ORDER BY date, id`, entryColumns, table)

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", table, err)
	}
	defer rows.Close()

	entries := []models.Entry{}
	for rows.Next() {
		var (
			id, date, category, account, taxCode sql.NullString
			receipt, description, costCenter     sql.NullString
			amount                               decimal.NullDecimal
		)
		if err := rows.Scan(&id, &amount, &date, &category, &account, &taxCode, &receipt, &description, &costCenter); err != nil {
			return nil, fmt.Errorf("scan %s: %w", table, err)
		}
		entries = append(entries, models.Entry{
			ID:            id.String,
			Amount:        nullDecimal(amount),
			Date:          date.String,
			Category:      category.String,
			Account:       account.String,
			TaxCode:       taxCode.String,
			ReceiptNumber: receipt.String,
			Description:   description.String,
			CostCenter:    costCenter.String,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate %s: %w", table, err)
	}
	return entries, nil
}

func (s *SQLSource) queryLevies(ctx context.Context) ([]models.MandateLevy, error) {
	query := fmt.Sprintf(`SELECT %s FROM mandate_levies ORDER BY created_date, id`, levyColumns)

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query mandate_levies: %w", err)
	}
	defer rows.Close()

	levies := []models.MandateLevy{}
	for rows.Next() {
		var (
			id, contact, period, status, paid, created sql.NullString
			finalLevy                                  decimal.NullDecimal
		)
		if err := rows.Scan(&id, &contact, &period, &status, &finalLevy, &paid, &created); err != nil {
			return nil, fmt.Errorf("scan mandate_levies: %w", err)
		}
		levies = append(levies, models.MandateLevy{
			ID:          id.String,
			ContactName: contact.String,
			PeriodMonth: period.String,
			Status:      status.String,
			FinalLevy:   nullDecimal(finalLevy),
			PaymentDate: paid.String,
			CreatedDate: created.String,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate mandate_levies: %w", err)
	}
	return levies, nil
}

func nullDecimal(d decimal.NullDecimal) *decimal.Decimal {
	if !d.Valid {
		return nil
	}
	v := d.Decimal
	return &v
}
