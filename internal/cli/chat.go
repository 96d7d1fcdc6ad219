package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
	"github.com/google/uuid"

	"github.com/hualei/FinGenie/config"
	"github.com/hualei/FinGenie/internal/dataflows"
	"github.com/hualei/FinGenie/internal/ledger"
	"github.com/hualei/FinGenie/internal/llm"
	"github.com/hualei/FinGenie/internal/models"
	"github.com/hualei/FinGenie/internal/route"
	"github.com/hualei/FinGenie/internal/storage"
)

// debtProfile is what the session persists between turns so a user does not
// re-enter their debts every time they ask a planning question.
type debtProfile struct {
	Debts         []models.Debt `json:"debts"`
	MonthlyBudget float64       `json:"monthly_budget"`
}

// ChatSession runs the interactive loop: read an utterance, collect any data
// the routed handler needs, hand both to the router, render the result.
type ChatSession struct {
	cfg      *config.Config
	router   *route.Router
	renderer *llm.Renderer
	news     *dataflows.NewsClient
	kv       storage.KV
	store    *ledger.Store
	redis    *storage.RedisKV

	conversationID string
	plain          bool
	last           *models.StructuredResult
}

// NewChatSession wires the router with its collaborators from the config.
func NewChatSession(ctx context.Context, cfg *config.Config, plain bool) (*ChatSession, error) {
	store, err := ledger.Open(cfg.LedgerPath)
	if err != nil {
		return nil, fmt.Errorf("open ledger: %w", err)
	}

	s := &ChatSession{
		cfg:            cfg,
		news:           dataflows.NewNewsClient(cfg.CacheEnabled),
		store:          store,
		conversationID: uuid.NewString(),
		plain:          plain,
	}

	if cfg.RedisAddr != "" {
		s.redis = storage.NewRedisKV(cfg.RedisAddr)
		s.kv = s.redis
	} else {
		s.kv = storage.NewMemoryKV()
	}

	s.router = route.New(route.Config{
		BullishThreshold:    cfg.BullishThreshold,
		BearishThreshold:    cfg.BearishThreshold,
		PayoffHorizonMonths: cfg.PayoffHorizonMonths,
	},
		route.WithQuoteProvider(s.quoteProvider(cfg)),
		route.WithLedger(store),
	)

	if !plain {
		renderer, err := llm.NewRenderer(ctx, cfg)
		if err != nil {
			fmt.Printf("language model unavailable (%v), printing structured answers\n", err)
		} else {
			s.renderer = renderer
		}
	}

	return s, nil
}

func (s *ChatSession) quoteProvider(cfg *config.Config) route.QuoteProvider {
	if cfg.QuoteProvider == "longport" {
		lp, err := dataflows.NewLongportClient(cfg)
		if err == nil {
			return lp
		}
		fmt.Printf("longport unavailable (%v), falling back to yahoo\n", err)
	}
	return dataflows.NewYahooClient(cfg.CacheEnabled)
}

// Close releases the ledger and any Redis connection.
func (s *ChatSession) Close() {
	if s.store != nil {
		_ = s.store.Close()
	}
	if s.redis != nil {
		_ = s.redis.Close()
	}
}

// Run drives the chat loop until the user exits or the context is canceled.
func (s *ChatSession) Run(ctx context.Context) error {
	printBanner()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		var utterance string
		err := survey.AskOne(&survey.Input{Message: "you:"}, &utterance)
		if err != nil {
			if errors.Is(err, terminal.InterruptErr) {
				fmt.Println("bye!")
				return nil
			}
			return err
		}

		utterance = strings.TrimSpace(utterance)
		switch strings.ToLower(utterance) {
		case "":
			continue
		case "exit", "quit", "bye":
			fmt.Println("bye!")
			return nil
		case "reset":
			s.router.Sessions().Reset(s.conversationID)
			_ = s.kv.Delete(s.profileKey())
			s.last = nil
			fmt.Println("conversation reset")
			continue
		}

		data, err := s.buildTurnData(ctx, utterance)
		if err != nil {
			if errors.Is(err, terminal.InterruptErr) {
				fmt.Println("bye!")
				return nil
			}
			fmt.Printf("could not collect input: %v\n", err)
			continue
		}

		result := s.router.HandleTurn(ctx, s.conversationID, utterance, data)
		s.last = &result
		s.printResult(ctx, result)
	}
}

// buildTurnData assembles everything the handlers may need for this turn. If
// the previous turn asked for a missing slot, the answer is collected here,
// interactively where text parsing is not enough.
func (s *ChatSession) buildTurnData(ctx context.Context, utterance string) (*models.ExternalData, error) {
	data := &models.ExternalData{
		Strategy:      parseStrategy(utterance),
		Symbol:        parseSymbol(utterance),
		Entry:         parseTransaction(utterance),
		SummaryMonths: parseMonths(utterance),
	}

	if profile := s.loadProfile(); profile != nil {
		data.Debts = profile.Debts
		data.MonthlyBudget = profile.MonthlyBudget
	}

	if s.last == nil || s.last.Kind != models.ResultClarificationNeeded {
		return data, nil
	}

	switch s.last.PendingSlot {
	case "debts":
		profile, err := promptForDebts()
		if err != nil {
			return nil, err
		}
		s.saveProfile(profile)
		data.Debts = profile.Debts
		data.MonthlyBudget = profile.MonthlyBudget

	case "metric":
		metric, err := promptForMetric()
		if err != nil {
			return nil, err
		}
		data.Metric = metric

	case "headlines":
		topic := data.Symbol
		if topic == "" {
			topic = utterance
		}
		headlines, err := s.news.FetchHeadlines(ctx, topic, 8)
		if err != nil {
			fmt.Printf("could not fetch headlines: %v\n", err)
		} else {
			data.Headlines = headlines
		}

	case "symbol":
		if data.Symbol == "" {
			if symbol, err := dataflows.ResolveSymbol(utterance); err == nil {
				data.Symbol = symbol
			}
		}
	}

	return data, nil
}

func (s *ChatSession) printResult(ctx context.Context, result models.StructuredResult) {
	structured := RenderResult(result)

	if s.renderer != nil {
		prose, err := s.renderer.Render(ctx, result)
		if err == nil {
			fmt.Println(answerStyle.Render(prose))
			return
		}
		fmt.Printf("language model error (%v), structured answer follows\n", err)
	}

	fmt.Println(structured)
}

func (s *ChatSession) profileKey() string {
	return "profile:" + s.conversationID
}

func (s *ChatSession) loadProfile() *debtProfile {
	raw, ok := s.kv.Get(s.profileKey())
	if !ok {
		return nil
	}
	var profile debtProfile
	if err := json.Unmarshal([]byte(raw), &profile); err != nil {
		return nil
	}
	return &profile
}

func (s *ChatSession) saveProfile(profile *debtProfile) {
	raw, err := json.Marshal(profile)
	if err != nil {
		return
	}
	if err := s.kv.Set(s.profileKey(), string(raw)); err != nil {
		fmt.Printf("could not persist debt profile: %v\n", err)
	}
}

// promptForDebts interactively collects the debt records and monthly budget
// the planner needs.
func promptForDebts() (*debtProfile, error) {
	fmt.Println("Let's record your debts.")

	profile := &debtProfile{}
	for i := 1; ; i++ {
		var name string
		if err := survey.AskOne(&survey.Input{Message: fmt.Sprintf("Debt %d name:", i)}, &name, survey.WithValidator(survey.Required)); err != nil {
			return nil, err
		}

		principal, err := askFloat("Current balance:")
		if err != nil {
			return nil, err
		}
		rate, err := askFloat("Annual interest rate (e.g. 0.2 for 20%):")
		if err != nil {
			return nil, err
		}
		minimum, err := askFloat("Minimum monthly payment:")
		if err != nil {
			return nil, err
		}

		profile.Debts = append(profile.Debts, models.Debt{
			ID:             strings.ToLower(strings.TrimSpace(name)),
			Principal:      principal,
			AnnualRate:     rate,
			MinimumPayment: minimum,
		})

		more := false
		if err := survey.AskOne(&survey.Confirm{Message: "Add another debt?"}, &more); err != nil {
			return nil, err
		}
		if !more {
			break
		}
	}

	budget, err := askFloat("Monthly amount available for debt payments:")
	if err != nil {
		return nil, err
	}
	profile.MonthlyBudget = budget

	return profile, nil
}

// promptForMetric interactively builds a metric request.
func promptForMetric() (*models.FinancialMetricRequest, error) {
	var choice string
	prompt := &survey.Select{
		Message: "Which metric?",
		Options: []string{"debt-to-income ratio", "inflation adjustment", "net worth"},
	}
	if err := survey.AskOne(prompt, &choice); err != nil {
		return nil, err
	}

	switch choice {
	case "debt-to-income ratio":
		debt, err := askFloat("Total monthly debt payments:")
		if err != nil {
			return nil, err
		}
		income, err := askFloat("Gross monthly income:")
		if err != nil {
			return nil, err
		}
		return &models.FinancialMetricRequest{
			Kind: models.MetricDTI,
			DTI:  &models.DTIRequest{MonthlyDebtPayments: debt, GrossMonthlyIncome: income},
		}, nil

	case "inflation adjustment":
		amount, err := askFloat("Nominal amount:")
		if err != nil {
			return nil, err
		}
		rate, err := askFloat("Annual inflation rate (e.g. 0.03 for 3%):")
		if err != nil {
			return nil, err
		}
		years, err := askFloat("Years:")
		if err != nil {
			return nil, err
		}
		return &models.FinancialMetricRequest{
			Kind:      models.MetricInflationAdjustment,
			Inflation: &models.InflationRequest{NominalAmount: amount, AnnualRate: rate, Years: years},
		}, nil

	default:
		assets, err := askEntries("Assets as name:amount pairs, comma separated:")
		if err != nil {
			return nil, err
		}
		liabilities, err := askEntries("Liabilities as name:amount pairs, comma separated:")
		if err != nil {
			return nil, err
		}
		return &models.FinancialMetricRequest{
			Kind:     models.MetricNetWorth,
			NetWorth: &models.NetWorthRequest{Assets: assets, Liabilities: liabilities},
		}, nil
	}
}

func askFloat(message string) (float64, error) {
	for {
		var raw string
		if err := survey.AskOne(&survey.Input{Message: message}, &raw, survey.WithValidator(survey.Required)); err != nil {
			return 0, err
		}
		val, err := strconv.ParseFloat(strings.TrimSpace(strings.TrimPrefix(raw, "$")), 64)
		if err == nil {
			return val, nil
		}
		fmt.Println("please enter a number")
	}
}

// askEntries parses "savings: 12000, car: 8000" into a map. An empty answer
// is a valid empty map.
func askEntries(message string) (map[string]float64, error) {
	var raw string
	if err := survey.AskOne(&survey.Input{Message: message}, &raw); err != nil {
		return nil, err
	}

	entries := make(map[string]float64)
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		name, amount, found := strings.Cut(part, ":")
		if !found {
			return nil, fmt.Errorf("%q is not a name:amount pair", part)
		}
		val, err := strconv.ParseFloat(strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(amount), "$")), 64)
		if err != nil {
			return nil, fmt.Errorf("%q is not a number", amount)
		}
		entries[strings.ToLower(strings.TrimSpace(name))] = val
	}
	return entries, nil
}
