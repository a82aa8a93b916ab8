package core

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// All is the selector value that disables a filter.
const All = "All"

const (
	Food          Category = "Food"
	Transport     Category = "Transport"
	Entertainment Category = "Entertainment"
	Utilities     Category = "Utilities"
	Others        Category = "Others"
)

type (
	Category string

	Date struct {
		time.Time
	}

	Expense struct {
		ID       string          `json:"id"`
		Title    string          `json:"title"`
		Amount   decimal.Decimal `json:"amount"`
		Date     string          `json:"date"`
		Category Category        `json:"category"`
	}
)

var (
	ErrInvalidDate      = errors.New("invalid date")
	ErrInvalidAmount    = errors.New("invalid amount")
	ErrInvalidYearMonth = errors.New("invalid year-month")
	ErrEmptyTitle       = errors.New("empty title")
	ErrUnknownCategory  = errors.New("unknown category")
)

var categories = []Category{Food, Transport, Entertainment, Utilities, Others}

// Categories returns the closed set of expense categories in display order.
func Categories() []Category {
	return append([]Category(nil), categories...)
}

// Valid reports whether c belongs to the closed category set.
func (c Category) Valid() bool {
	for _, known := range categories {
		if c == known {
			return true
		}
	}
	return false
}

func (c Category) String() string {
	return string(c)
}

// dateLayouts are tried in order. Only the calendar date as written is kept.
var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// ParseDate parses an ISO-like date string.
func ParseDate(s string) (Date, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Date{}, ErrInvalidDate
	}
	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, s)
		if err != nil {
			continue
		}
		return NewDate(t.Year(), int(t.Month()), t.Day()), nil
	}
	return Date{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
}

// NewDate creates a new Date from year, month, day
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// Month returns the month (1-12)
func (d Date) Month() int {
	return int(d.Time.Month())
}

// YearMonth returns the year-month key of the date, e.g. "2024-1".
func (d Date) YearMonth() string {
	return YearMonth(d.Year(), d.Month())
}

// String formats the date as YYYY-MM-DD.
func (d Date) String() string {
	return d.Format("2006-01-02")
}

// YearMonth builds a year-month key. The month is 1-based and not padded.
func YearMonth(year, month int) string {
	return strconv.Itoa(year) + "-" + strconv.Itoa(month)
}

// ParseYearMonth splits a year-month key into its parts.
func ParseYearMonth(s string) (year, month int, err error) {
	y, m, ok := strings.Cut(strings.TrimSpace(s), "-")
	if !ok {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidYearMonth, s)
	}
	year, err = strconv.Atoi(y)
	if err != nil || year < 1 {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidYearMonth, s)
	}
	month, err = strconv.Atoi(m)
	if err != nil || month < 1 || month > 12 {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidYearMonth, s)
	}
	// Keys are unpadded; "2024-01" would never match a stored record.
	if YearMonth(year, month) != strings.TrimSpace(s) {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidYearMonth, s)
	}
	return year, month, nil
}

// ParsedDate parses the expense date.
func (e Expense) ParsedDate() (Date, error) {
	return ParseDate(e.Date)
}

// Validate checks the fields a record must carry when it is created.
// Amount has no sign constraint.
func (e Expense) Validate() error {
	verr := &ValidationError{}
	if strings.TrimSpace(e.Title) == "" {
		verr.Add("title", ErrEmptyTitle.Error())
	} else if len(e.Title) > 200 {
		verr.Add("title", "title too long (max 200 characters)")
	}
	if _, err := e.ParsedDate(); err != nil {
		verr.Add("date", "date must be in YYYY-MM-DD format")
	}
	if !e.Category.Valid() {
		verr.Add("category", ErrUnknownCategory.Error())
	}
	return verr.OrNil()
}

// MarshalJSON writes the amount as a JSON number rather than a quoted string.
func (e Expense) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		ID       string      `json:"id"`
		Title    string      `json:"title"`
		Amount   json.Number `json:"amount"`
		Date     string      `json:"date"`
		Category Category    `json:"category"`
	}{
		ID:       e.ID,
		Title:    e.Title,
		Amount:   json.Number(e.Amount.String()),
		Date:     e.Date,
		Category: e.Category,
	})
}

// ValidationError collects per-field input problems.
type ValidationError struct {
	Fields map[string]string
}

// Add records a problem for field. The first message per field wins.
func (v *ValidationError) Add(field, msg string) {
	if v.Fields == nil {
		v.Fields = make(map[string]string)
	}
	if _, ok := v.Fields[field]; !ok {
		v.Fields[field] = msg
	}
}

// OrNil returns v as an error if any field was recorded, nil otherwise.
func (v *ValidationError) OrNil() error {
	if v == nil || len(v.Fields) == 0 {
		return nil
	}
	return v
}

func (v *ValidationError) Error() string {
	keys := make([]string, 0, len(v.Fields))
	for k := range v.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+v.Fields[k])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}
