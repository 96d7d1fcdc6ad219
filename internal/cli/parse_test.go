package cli

import (
	"testing"
	"time"

	"github.com/hualei/FinGenie/internal/models"
)

func TestParseTransaction(t *testing.T) {
	tests := []struct {
		utterance    string
		wantType     models.TransactionType
		wantCategory string
		wantAmount   float64
	}{
		{"I spent 45.50 on groceries", models.TransactionExpense, "groceries", 45.50},
		{"paid $1200 for rent", models.TransactionExpense, "rent", 1200},
		{"earned 3000 from salary", models.TransactionIncome, "salary", 3000},
		{"received $50", models.TransactionIncome, "income", 50},
		{"invested 200 on index funds", models.TransactionExpense, "index funds investment", 200},
	}

	for _, tt := range tests {
		t.Run(tt.utterance, func(t *testing.T) {
			entry := parseTransaction(tt.utterance)
			if entry == nil {
				t.Fatal("no transaction parsed")
			}
			if entry.Type != tt.wantType {
				t.Errorf("type = %q, want %q", entry.Type, tt.wantType)
			}
			if entry.Category != tt.wantCategory {
				t.Errorf("category = %q, want %q", entry.Category, tt.wantCategory)
			}
			if entry.Amount != tt.wantAmount {
				t.Errorf("amount = %v, want %v", entry.Amount, tt.wantAmount)
			}
		})
	}

	for _, none := range []string{"how is the weather", "pay off my debts", "spent nothing"} {
		if entry := parseTransaction(none); entry != nil {
			t.Errorf("parseTransaction(%q) = %+v, want nil", none, entry)
		}
	}
}

func TestParseMonths(t *testing.T) {
	months := parseMonths("summary for 2026-07 and 2026-08 please")
	if len(months) != 2 || months[0] != "2026-07" || months[1] != "2026-08" {
		t.Errorf("months = %v, want [2026-07 2026-08]", months)
	}

	months = parseMonths("how did I do in july")
	want := time.Date(time.Now().Year(), time.July, 1, 0, 0, 0, 0, time.UTC).Format("2006-01")
	if len(months) != 1 || months[0] != want {
		t.Errorf("months = %v, want [%s]", months, want)
	}

	if months := parseMonths("no dates here"); len(months) != 0 {
		t.Errorf("months = %v, want none", months)
	}
}

func TestParseStrategy(t *testing.T) {
	tests := []struct {
		utterance string
		want      models.Strategy
	}{
		{"use the avalanche method", models.StrategyAvalanche},
		{"I prefer the snowball approach", models.StrategySnowball},
		{"compare avalanche and snowball", models.StrategyCompare},
		{"just pay off my debts", ""},
	}
	for _, tt := range tests {
		if got := parseStrategy(tt.utterance); got != tt.want {
			t.Errorf("parseStrategy(%q) = %q, want %q", tt.utterance, got, tt.want)
		}
	}
}

func TestParseSymbol(t *testing.T) {
	tests := []struct {
		utterance string
		want      string
	}{
		{"how is apple doing", "AAPL"},
		{"price of TSLA?", "TSLA"},
		{"thoughts on Nvidia", "NVDA"},
		{"I spent 50 on groceries", ""},
		{"what should I buy", ""},
		{"HOW ARE YOU", ""},
	}
	for _, tt := range tests {
		if got := parseSymbol(tt.utterance); got != tt.want {
			t.Errorf("parseSymbol(%q) = %q, want %q", tt.utterance, got, tt.want)
		}
	}
}
