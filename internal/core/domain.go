package core

import (
	"errors"
	"math"
	"time"
)

// MonthsPerYear is the number of slots in a ledger. The ledger covers exactly
// one fiscal year; there is no cross-year carry.
const MonthsPerYear = 12

// NumCategories is the size of the closed expense category set.
const NumCategories = 8

type (
	// Category is one of the fixed expense categories. The set is closed:
	// categories are never added or removed at runtime.
	Category string

	// PaymentMethod is carried on transactions for record keeping only.
	// It never affects any computation.
	PaymentMethod string
)

const (
	CategoryEssentialFood Category = "Alimentação essencial"
	CategoryDiningOut     Category = "Alimentação fora de casa"
	CategoryEntertainment Category = "Entretenimento"
	CategoryStudies       Category = "Estudos"
	CategoryHousing       Category = "Moradia"
	CategoryPersonal      Category = "Pessoal"
	CategoryHealth        Category = "Saúde"
	CategoryTransport     Category = "Transporte"
)

const (
	MethodCreditCard PaymentMethod = "Cartão de Crédito"
	MethodDebitCard  PaymentMethod = "Cartão de Débito"
	MethodPix        PaymentMethod = "PIX"
	MethodCash       PaymentMethod = "Dinheiro"
	MethodBankSlip   PaymentMethod = "Boleto"
)

// categories fixes the canonical order. Expense storage, CSV rows and category
// totals all follow this order.
var categories = [NumCategories]Category{
	CategoryEssentialFood,
	CategoryDiningOut,
	CategoryEntertainment,
	CategoryStudies,
	CategoryHousing,
	CategoryPersonal,
	CategoryHealth,
	CategoryTransport,
}

var paymentMethods = [5]PaymentMethod{
	MethodCreditCard,
	MethodDebitCard,
	MethodPix,
	MethodCash,
	MethodBankSlip,
}

// monthNames maps monthIndex to its display label, 1:1 and never edited
// independently of the index.
var monthNames = [MonthsPerYear]string{
	"Janeiro", "Fevereiro", "Março", "Abril", "Maio", "Junho",
	"Julho", "Agosto", "Setembro", "Outubro", "Novembro", "Dezembro",
}

var (
	ErrOutOfRange          = errors.New("month index out of range")
	ErrInvalidCategory     = errors.New("unknown category")
	ErrInvalidDate         = errors.New("transaction date outside ledger year")
	ErrInvalidAmount       = errors.New("invalid amount")
	ErrInvalidInstallments = errors.New("installments must be at least 1")
	ErrValidation          = errors.New("invalid backup payload")
)

// Categories returns the category set in canonical order.
func Categories() []Category {
	out := make([]Category, NumCategories)
	copy(out, categories[:])
	return out
}

// PaymentMethods returns the payment method set.
func PaymentMethods() []PaymentMethod {
	out := make([]PaymentMethod, len(paymentMethods))
	copy(out, paymentMethods[:])
	return out
}

// Valid reports whether c belongs to the closed category set.
func (c Category) Valid() bool {
	_, ok := categoryIndex(c)
	return ok
}

// Valid reports whether m belongs to the closed payment method set.
func (m PaymentMethod) Valid() bool {
	for _, pm := range paymentMethods {
		if pm == m {
			return true
		}
	}
	return false
}

func categoryIndex(c Category) (int, bool) {
	for i, cat := range categories {
		if cat == c {
			return i, true
		}
	}
	return 0, false
}

// MonthName returns the display label for a month index, or "" when out of range.
func MonthName(index int) string {
	if index < 0 || index >= MonthsPerYear {
		return ""
	}
	return monthNames[index]
}

// MonthRecord is one calendar month of a single fiscal year. Expenses are a
// fixed-size table indexed by category position, so every category is always
// present with a zero default.
//
// Income intentionally accepts any float64, including negative values: direct
// edits behave like an unconstrained spreadsheet cell.
type MonthRecord struct {
	MonthIndex int
	MonthName  string
	Income     float64
	Expenses   [NumCategories]float64
}

// Expense returns the amount recorded for the given category.
func (m MonthRecord) Expense(c Category) (float64, error) {
	i, ok := categoryIndex(c)
	if !ok {
		return 0, ErrInvalidCategory
	}
	return m.Expenses[i], nil
}

// TotalExpenses sums all category cells of the month.
func (m MonthRecord) TotalExpenses() float64 {
	var total float64
	for _, v := range m.Expenses {
		total += v
	}
	return total
}

// Balance is income minus total expenses for the month.
func (m MonthRecord) Balance() float64 {
	return m.Income - m.TotalExpenses()
}

// Ledger is the root aggregate: one fiscal year, exactly twelve months ordered
// by index. Ledger is a value type and all mutators are copy-on-write: they
// return a new snapshot and never touch the receiver, so a reader holding an
// older snapshot never observes a half-applied edit.
//
// Version increases by one on every mutation and identifies a snapshot for
// cache purposes. It is not persisted in backups.
type Ledger struct {
	Year    int
	Version int64
	Months  [MonthsPerYear]MonthRecord
}

// NewLedger returns an empty ledger for the given year: all incomes and
// expenses zero, month names filled in.
func NewLedger(year int) Ledger {
	l := Ledger{Year: year}
	for i := range l.Months {
		l.Months[i] = MonthRecord{MonthIndex: i, MonthName: monthNames[i]}
	}
	return l
}

// defaultMonthlyIncome seeds the generated fallback ledger.
const defaultMonthlyIncome = 4500

// DefaultLedger is the generated state used when nothing was persisted yet.
// Deterministic so that startup, persistence and tests are reproducible.
func DefaultLedger(year int) Ledger {
	l := NewLedger(year)
	for i := range l.Months {
		l.Months[i].Income = defaultMonthlyIncome
	}
	return l
}

// Month returns the record at the given index.
func (l Ledger) Month(index int) (MonthRecord, error) {
	if index < 0 || index >= MonthsPerYear {
		return MonthRecord{}, ErrOutOfRange
	}
	return l.Months[index], nil
}

// SetIncome replaces the income of one month and returns the new snapshot.
// Any numeric value is accepted, including negative or non-finite ones; the
// only check is the index range.
func (l Ledger) SetIncome(monthIndex int, amount float64) (Ledger, error) {
	if monthIndex < 0 || monthIndex >= MonthsPerYear {
		return l, ErrOutOfRange
	}
	next := l
	next.Version++
	next.Months[monthIndex].Income = amount
	return next, nil
}

// SetExpense replaces one expense cell and returns the new snapshot. The
// category must belong to the closed set; the amount itself is unchecked,
// matching SetIncome.
func (l Ledger) SetExpense(monthIndex int, c Category, amount float64) (Ledger, error) {
	if monthIndex < 0 || monthIndex >= MonthsPerYear {
		return l, ErrOutOfRange
	}
	ci, ok := categoryIndex(c)
	if !ok {
		return l, ErrInvalidCategory
	}
	next := l
	next.Version++
	next.Months[monthIndex].Expenses[ci] = amount
	return next, nil
}

// TransactionInput is a transient request to apply a purchase to the ledger.
// It is consumed once by ApplyTransaction and leaves no trace beyond its
// effect on the expense cells.
type TransactionInput struct {
	Description  string
	Amount       float64
	Category     Category
	Date         time.Time
	Method       PaymentMethod
	Installments int
}

func (t TransactionInput) Validate() error {
	if t.Installments < 1 {
		return ErrInvalidInstallments
	}
	if !t.Category.Valid() {
		return ErrInvalidCategory
	}
	if t.Amount <= 0 || math.IsNaN(t.Amount) || math.IsInf(t.Amount, 0) {
		return ErrInvalidAmount
	}
	if t.Date.IsZero() {
		return ErrInvalidDate
	}
	return nil
}
