package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"tally/internal/amqp"
	"tally/internal/core"
	"tally/internal/records"
	"tally/internal/report"
)

// ErrSaveFailed is returned when a new expense could not be persisted.
var ErrSaveFailed = errors.New("could not add expense")

// maxIDAttempts bounds how often an id is bumped when concurrent adds race
// for the same millisecond.
const maxIDAttempts = 16

// EventPublisher receives change notifications after successful writes.
type EventPublisher interface {
	PublishExpenseEvent(ctx context.Context, evt *amqp.ExpenseEvent) error
}

// NewExpense is raw, unvalidated input for an expense.
type NewExpense struct {
	Title    string
	Amount   string
	Date     string
	Category string
}

// Selection is the pair of filter selectors; empty values mean core.All.
type Selection struct {
	Category  string
	YearMonth string
}

// Overview is everything a summary screen needs in one read.
type Overview struct {
	Selection     Selection
	Records       []core.Expense
	Monthly       core.MonthlySeries
	Total         decimal.Decimal
	FilteredTotal decimal.Decimal
	YearMonths    []string
	Recent        []core.Expense
}

// ExpenseService orchestrates validation, persistence and change events.
type ExpenseService struct {
	store     *records.Store
	publisher EventPublisher
	now       func() time.Time
}

func NewExpenseService(store *records.Store, publisher EventPublisher) *ExpenseService {
	return &ExpenseService{
		store:     store,
		publisher: publisher,
		now:       time.Now,
	}
}

// Version identifies the persisted state so callers can key caches on it. It
// changes after every write, including writes by other processes sharing
// the same sqlite file.
func (s *ExpenseService) Version(ctx context.Context) (string, error) {
	return s.store.Version(ctx)
}

// Reset removes every expense, including a blob that no longer parses.
func (s *ExpenseService) Reset(ctx context.Context) error {
	return s.store.Clear(ctx)
}

// Expenses returns every stored expense in insertion order.
func (s *ExpenseService) Expenses(ctx context.Context) []core.Expense {
	return s.store.LoadAll(ctx)
}

// AddExpense validates in, assigns a timestamp id and appends the record.
func (s *ExpenseService) AddExpense(ctx context.Context, in NewExpense) (core.Expense, error) {
	e, err := parseNewExpense(in)
	if err != nil {
		return core.Expense{}, err
	}

	id := s.now().UnixMilli()
	used := make(map[string]struct{})
	for _, existing := range s.store.LoadAll(ctx) {
		used[existing.ID] = struct{}{}
	}

	for attempt := 0; attempt < maxIDAttempts; attempt++ {
		for {
			if _, taken := used[strconv.FormatInt(id, 10)]; !taken {
				break
			}
			id++
		}
		e.ID = strconv.FormatInt(id, 10)

		err = s.store.Append(ctx, e)
		if errors.Is(err, records.ErrDuplicateID) {
			used[e.ID] = struct{}{}
			continue
		}
		break
	}
	if err != nil {
		slog.ErrorContext(ctx, "Failed to save expense",
			"title", e.Title,
			"error", err)
		return core.Expense{}, fmt.Errorf("%w: %v", ErrSaveFailed, err)
	}

	slog.InfoContext(ctx, "Expense added",
		"id", e.ID,
		"category", e.Category,
		"amount", e.Amount.String())
	s.publish(ctx, amqp.ExpenseCreated, e.ID)
	return e, nil
}

// DeleteExpense removes the expense with id. Deleting an id that is not
// stored is not an error and reports false.
func (s *ExpenseService) DeleteExpense(ctx context.Context, id string) (bool, error) {
	removed, err := s.store.Delete(ctx, id)
	if err != nil {
		return false, fmt.Errorf("delete expense %s: %w", id, err)
	}
	if removed {
		slog.InfoContext(ctx, "Expense deleted", "id", id)
		s.publish(ctx, amqp.ExpenseDeleted, id)
	}
	return removed, nil
}

// Overview computes the filtered list, chart series and totals for sel.
func (s *ExpenseService) Overview(ctx context.Context, sel Selection) (Overview, error) {
	sel, err := NormalizeSelection(sel)
	if err != nil {
		return Overview{}, err
	}

	all := s.store.LoadAll(ctx)
	filtered := report.Filter(all, sel.Category, sel.YearMonth)

	return Overview{
		Selection:     sel,
		Records:       filtered,
		Monthly:       report.MonthlyTotals(filtered),
		Total:         report.Total(all),
		FilteredTotal: report.Total(filtered),
		YearMonths:    report.UniqueYearMonths(all),
		Recent:        report.Recent(all, report.RecentLimit),
	}, nil
}

// NormalizeSelection defaults empty selectors to core.All and rejects
// unknown categories and malformed year-month keys.
func NormalizeSelection(sel Selection) (Selection, error) {
	sel.Category = strings.TrimSpace(sel.Category)
	sel.YearMonth = strings.TrimSpace(sel.YearMonth)
	if sel.Category == "" {
		sel.Category = core.All
	}
	if sel.YearMonth == "" {
		sel.YearMonth = core.All
	}

	verr := &core.ValidationError{}
	if sel.Category != core.All && !core.Category(sel.Category).Valid() {
		verr.Add("category", core.ErrUnknownCategory.Error())
	}
	if sel.YearMonth != core.All {
		if _, _, err := core.ParseYearMonth(sel.YearMonth); err != nil {
			verr.Add("month", core.ErrInvalidYearMonth.Error())
		}
	}
	if err := verr.OrNil(); err != nil {
		return Selection{}, err
	}
	return sel, nil
}

func parseNewExpense(in NewExpense) (core.Expense, error) {
	verr := &core.ValidationError{}
	for field, value := range map[string]string{
		"title":    in.Title,
		"amount":   in.Amount,
		"date":     in.Date,
		"category": in.Category,
	} {
		if strings.TrimSpace(value) == "" {
			verr.Add(field, "required")
		}
	}

	amount, err := core.ParseAmount(in.Amount)
	if err != nil {
		verr.Add("amount", "amount must be a number")
	}

	e := core.Expense{
		Title:    strings.TrimSpace(in.Title),
		Amount:   amount,
		Date:     strings.TrimSpace(in.Date),
		Category: core.Category(strings.TrimSpace(in.Category)),
	}
	if d, err := core.ParseDate(e.Date); err == nil {
		e.Date = d.String()
	}
	if err := e.Validate(); err != nil {
		var fields *core.ValidationError
		if errors.As(err, &fields) {
			for field, msg := range fields.Fields {
				verr.Add(field, msg)
			}
		}
	}

	if err := verr.OrNil(); err != nil {
		return core.Expense{}, err
	}
	return e, nil
}

func (s *ExpenseService) publish(ctx context.Context, eventType amqp.EventType, id string) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishExpenseEvent(ctx, amqp.NewExpenseEvent(eventType, id)); err != nil {
		slog.WarnContext(ctx, "Failed to publish expense event",
			"type", eventType,
			"id", id,
			"error", err)
	}
}
