package ledger

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/hualei/FinGenie/internal/models"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "budget.db"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestRecordAndList(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	tx, err := store.Record(ctx, models.TransactionEntry{
		Type:     models.TransactionExpense,
		Category: "groceries",
		Amount:   45.5,
		Date:     "2026-08-01",
	})
	if err != nil {
		t.Fatalf("Record failed: %v", err)
	}
	if tx.ID != 1 {
		t.Errorf("first id = %d, want 1", tx.ID)
	}

	// Missing date defaults to today.
	tx, err = store.Record(ctx, models.TransactionEntry{
		Type:     models.TransactionIncome,
		Category: "salary",
		Amount:   3000,
	})
	if err != nil {
		t.Fatalf("Record failed: %v", err)
	}
	if tx.Date != time.Now().Format("2006-01-02") {
		t.Errorf("defaulted date = %q, want today", tx.Date)
	}

	list, err := store.List(ctx, 0)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("got %d transactions, want 2", len(list))
	}
	if list[0].Category != "groceries" || list[1].Category != "salary" {
		t.Errorf("unexpected order: %q then %q", list[0].Category, list[1].Category)
	}

	limited, err := store.List(ctx, 1)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(limited) != 1 {
		t.Errorf("limited list has %d entries, want 1", len(limited))
	}
}

func TestRecordValidation(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	tests := []struct {
		name  string
		entry models.TransactionEntry
	}{
		{"zero amount", models.TransactionEntry{Category: "x", Amount: 0}},
		{"negative amount", models.TransactionEntry{Category: "x", Amount: -5}},
		{"empty category", models.TransactionEntry{Amount: 10}},
		{"bad date", models.TransactionEntry{Category: "x", Amount: 10, Date: "08/01/2026"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := store.Record(ctx, tt.entry); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestRecordNormalizesUnknownType(t *testing.T) {
	store := openTestStore(t)
	tx, err := store.Record(context.Background(), models.TransactionEntry{
		Type:     "refund",
		Category: "misc",
		Amount:   10,
	})
	if err != nil {
		t.Fatalf("Record failed: %v", err)
	}
	if tx.Type != models.TransactionExpense {
		t.Errorf("type = %q, want expense", tx.Type)
	}
}

func TestSummary(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	entries := []models.TransactionEntry{
		{Type: models.TransactionIncome, Category: "salary", Amount: 3000, Date: "2026-07-01"},
		{Type: models.TransactionExpense, Category: "rent", Amount: 1200, Date: "2026-07-02"},
		{Type: models.TransactionExpense, Category: "groceries", Amount: 300, Date: "2026-07-15"},
		{Type: models.TransactionExpense, Category: "rent", Amount: 1200, Date: "2026-08-02"},
	}
	for _, e := range entries {
		if _, err := store.Record(ctx, e); err != nil {
			t.Fatalf("Record failed: %v", err)
		}
	}

	// Restricted to July.
	summary, err := store.Summary(ctx, []string{"2026-07"})
	if err != nil {
		t.Fatalf("Summary failed: %v", err)
	}
	if summary.TotalIncome != 3000 {
		t.Errorf("income = %v, want 3000", summary.TotalIncome)
	}
	if summary.TotalExpenses != 1500 {
		t.Errorf("expenses = %v, want 1500", summary.TotalExpenses)
	}
	if summary.Balance != 1500 {
		t.Errorf("balance = %v, want 1500", summary.Balance)
	}
	if summary.ByCategory["rent"] != 1200 || summary.ByCategory["groceries"] != 300 {
		t.Errorf("by category = %v", summary.ByCategory)
	}

	// All time.
	summary, err = store.Summary(ctx, nil)
	if err != nil {
		t.Fatalf("Summary failed: %v", err)
	}
	if summary.TotalExpenses != 2700 {
		t.Errorf("all-time expenses = %v, want 2700", summary.TotalExpenses)
	}

	if _, err := store.Summary(ctx, []string{"July"}); err == nil {
		t.Error("expected an error for a non-YYYY-MM month")
	}
}

func TestInvestmentSummary(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	for _, e := range []models.TransactionEntry{
		{Type: models.TransactionExpense, Category: "index fund investment", Amount: 500},
		{Type: models.TransactionExpense, Category: "groceries", Amount: 100},
	} {
		if _, err := store.Record(ctx, e); err != nil {
			t.Fatalf("Record failed: %v", err)
		}
	}

	summary, err := store.InvestmentSummary(ctx)
	if err != nil {
		t.Fatalf("InvestmentSummary failed: %v", err)
	}
	if summary.TotalExpenses != 500 {
		t.Errorf("investment total = %v, want 500", summary.TotalExpenses)
	}
}

func TestDeleteAndClear(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	tx, err := store.Record(ctx, models.TransactionEntry{Category: "misc", Amount: 10})
	if err != nil {
		t.Fatalf("Record failed: %v", err)
	}

	if err := store.Delete(ctx, tx.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if err := store.Delete(ctx, tx.ID); err == nil {
		t.Error("expected an error deleting a missing row")
	}

	if _, err := store.Record(ctx, models.TransactionEntry{Category: "misc", Amount: 10}); err != nil {
		t.Fatalf("Record failed: %v", err)
	}
	if err := store.Clear(ctx); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	list, err := store.List(ctx, 0)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(list) != 0 {
		t.Errorf("got %d transactions after clear, want 0", len(list))
	}
}
