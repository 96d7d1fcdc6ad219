// Package ledger persists budget transactions in SQLite and answers the
// summary queries behind budget turns.
package ledger

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/hualei/FinGenie/internal/models"
)

// Store wraps the transactions database.
type Store struct {
	db *sql.DB
}

// Open opens or creates the ledger database at the given path.
func Open(dbPath string) (*Store, error) {
	if strings.TrimSpace(dbPath) == "" {
		return nil, fmt.Errorf("ledger path is required")
	}

	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create ledger dir: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA busy_timeout=3000;",
		"PRAGMA synchronous=NORMAL;",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("set pragma %s: %w", p, err)
		}
	}

	if err := initSchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Store{db: db}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func initSchema(db *sql.DB) error {
	schema := `
CREATE TABLE IF NOT EXISTS transactions (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    date TEXT NOT NULL,
    type TEXT NOT NULL,
    category TEXT NOT NULL,
    amount REAL NOT NULL,
    created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_transactions_date ON transactions(date);
`
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("init ledger schema: %w", err)
	}
	return nil
}

// Record inserts a transaction. A missing date defaults to today; types
// other than income are stored as expenses.
func (s *Store) Record(ctx context.Context, entry models.TransactionEntry) (*models.Transaction, error) {
	if entry.Amount <= 0 {
		return nil, fmt.Errorf("transaction amount must be positive, got %v", entry.Amount)
	}
	if strings.TrimSpace(entry.Category) == "" {
		return nil, fmt.Errorf("transaction category is required")
	}

	txType := entry.Type
	if txType != models.TransactionIncome {
		txType = models.TransactionExpense
	}

	date := entry.Date
	if date == "" {
		date = time.Now().Format("2006-01-02")
	} else if _, err := time.Parse("2006-01-02", date); err != nil {
		return nil, fmt.Errorf("transaction date %q is not YYYY-MM-DD: %w", date, err)
	}

	res, err := s.db.ExecContext(ctx,
		"INSERT INTO transactions (date, type, category, amount) VALUES (?, ?, ?, ?)",
		date, string(txType), entry.Category, entry.Amount)
	if err != nil {
		return nil, fmt.Errorf("insert transaction: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("read transaction id: %w", err)
	}

	return &models.Transaction{
		ID:       id,
		Date:     date,
		Type:     txType,
		Category: entry.Category,
		Amount:   entry.Amount,
	}, nil
}

// List returns transactions in insertion order, newest last. A non-positive
// limit returns everything.
func (s *Store) List(ctx context.Context, limit int) ([]models.Transaction, error) {
	query := "SELECT id, date, type, category, amount FROM transactions ORDER BY id"
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()

	var out []models.Transaction
	for rows.Next() {
		var tx models.Transaction
		var txType string
		if err := rows.Scan(&tx.ID, &tx.Date, &txType, &tx.Category, &tx.Amount); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		tx.Type = models.TransactionType(txType)
		out = append(out, tx)
	}
	return out, rows.Err()
}

// Delete removes a single transaction by id.
func (s *Store) Delete(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM transactions WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete transaction %d: %w", id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("no transaction with id %d", id)
	}
	return nil
}

// Clear removes every transaction.
func (s *Store) Clear(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM transactions"); err != nil {
		return fmt.Errorf("clear transactions: %w", err)
	}
	return nil
}

// Summary aggregates income and expenses, restricted to the given YYYY-MM
// months when any are supplied.
func (s *Store) Summary(ctx context.Context, months []string) (*models.BudgetSummary, error) {
	query := "SELECT date, type, category, amount FROM transactions"
	args := []any{}
	if len(months) > 0 {
		placeholders := make([]string, len(months))
		for i, m := range months {
			if _, err := time.Parse("2006-01", m); err != nil {
				return nil, fmt.Errorf("month %q is not YYYY-MM: %w", m, err)
			}
			placeholders[i] = "?"
			args = append(args, m)
		}
		query += " WHERE substr(date, 1, 7) IN (" + strings.Join(placeholders, ", ") + ")"
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("summarize transactions: %w", err)
	}
	defer rows.Close()

	summary := &models.BudgetSummary{
		Months:     months,
		ByCategory: make(map[string]float64),
	}
	for rows.Next() {
		var date, txType, category string
		var amount float64
		if err := rows.Scan(&date, &txType, &category, &amount); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		if models.TransactionType(txType) == models.TransactionIncome {
			summary.TotalIncome += amount
		} else {
			summary.TotalExpenses += amount
			summary.ByCategory[category] += amount
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	summary.Balance = summary.TotalIncome - summary.TotalExpenses
	return summary, nil
}

// InvestmentSummary aggregates expenses whose category mentions investment.
func (s *Store) InvestmentSummary(ctx context.Context) (*models.BudgetSummary, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT category, amount FROM transactions WHERE type = ? AND lower(category) LIKE '%investment%'",
		string(models.TransactionExpense))
	if err != nil {
		return nil, fmt.Errorf("summarize investments: %w", err)
	}
	defer rows.Close()

	summary := &models.BudgetSummary{ByCategory: make(map[string]float64)}
	for rows.Next() {
		var category string
		var amount float64
		if err := rows.Scan(&category, &amount); err != nil {
			return nil, fmt.Errorf("scan investment: %w", err)
		}
		summary.TotalExpenses += amount
		summary.ByCategory[category] += amount
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	summary.Balance = -summary.TotalExpenses
	return summary, nil
}
