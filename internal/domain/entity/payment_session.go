package entity

import (
	"sort"
	"strings"
	"time"

	"github.com/restodesk/pos-api/pkg/apperror"
	"github.com/shopspring/decimal"
)

// MethodKey builds the composite key identifying one payable channel
func MethodKey(mode, currency string) string {
	return mode + "_" + currency
}

// PaymentMethodEntry is one payable channel in a reconciliation session. The
// entered amount is kept as the raw string the cashier typed; coercion to a
// number happens at read time so partial input like "12." survives while
// typing.
type PaymentMethodEntry struct {
	Key            string          `json:"key"`
	Mode           string          `json:"mode"`
	Currency       string          `json:"currency"`
	CurrencySymbol string          `json:"currency_symbol,omitempty"`
	ExchangeRate   decimal.Decimal `json:"exchange_rate"`
	EnteredAmount  string          `json:"entered_amount"`
}

// Amount returns the entered amount coerced to a decimal. Partial, empty or
// invalid input reads as zero; a negative entry also reads as zero since
// payments can never be negative.
func (e *PaymentMethodEntry) Amount() decimal.Decimal {
	raw := strings.TrimSpace(e.EnteredAmount)
	raw = strings.TrimSuffix(raw, ".")
	if raw == "" {
		return decimal.Zero
	}
	amount, err := decimal.NewFromString(raw)
	if err != nil || amount.IsNegative() {
		return decimal.Zero
	}
	return amount
}

// BaseAmount returns the entered amount converted to the base currency
func (e *PaymentMethodEntry) BaseAmount() decimal.Decimal {
	return e.Amount().Mul(e.ExchangeRate)
}

// PaymentMethodSpec describes one configured payment method as supplied by
// the merchant configuration at session-open time.
type PaymentMethodSpec struct {
	Mode           string
	Currency       string
	CurrencySymbol string
	ExchangeRate   decimal.Decimal
}

// PaymentStatus is the live due/return figure derived from the entries
type PaymentStatus struct {
	TotalPaidInBase decimal.Decimal `json:"total_paid_in_base"`
	RemainingDue    decimal.Decimal `json:"remaining_due"`
	ChangeDue       decimal.Decimal `json:"change_due"`
	IsFullyPaid     bool            `json:"is_fully_paid"`
}

// BreakdownLine is one finalized amount per payment method
type BreakdownLine struct {
	Mode     string          `json:"mode"`
	Currency string          `json:"currency"`
	Amount   decimal.Decimal `json:"amount"`
}

// PaymentBreakdown is the total-exact result of finalizing a session. The
// raw per-currency tender is carried alongside the scaled breakdown so the
// backend can record what was actually handed over.
type PaymentBreakdown struct {
	Lines     []BreakdownLine   `json:"lines"`
	Label     string            `json:"label"`
	PaidTotal decimal.Decimal   `json:"paid_total"`
	ChangeDue decimal.Decimal   `json:"change_due"`
	RawTender map[string]string `json:"raw_tender,omitempty"`
}

// PaymentSession aggregates payment method entries against a target total.
// Exchange rates are snapshotted when the session opens and deliberately not
// refreshed mid-session, so the due/return math stays stable while the
// cashier types.
type PaymentSession struct {
	TargetTotal  decimal.Decimal       `json:"target_total"`
	BaseCurrency string                `json:"base_currency"`
	Entries      []*PaymentMethodEntry `json:"entries"`
	OpenedAt     time.Time             `json:"opened_at"`
}

// OpenPaymentSession builds the initial entry set from the merchant's
// configured methods. A Cash entry in the base currency with rate 1 always
// comes first; configured methods are appended deduplicated by mode+currency;
// when no other method is configured, one Cash entry per foreign currency is
// synthesized from the default exchange-rate table.
func OpenPaymentSession(targetTotal decimal.Decimal, baseCurrency string, methods []PaymentMethodSpec, defaultRates map[string]decimal.Decimal) *PaymentSession {
	session := &PaymentSession{
		TargetTotal:  targetTotal,
		BaseCurrency: baseCurrency,
		OpenedAt:     time.Now(),
	}

	seen := map[string]bool{}
	add := func(spec PaymentMethodSpec) {
		key := MethodKey(spec.Mode, spec.Currency)
		if seen[key] {
			return
		}
		seen[key] = true
		symbol := spec.CurrencySymbol
		if symbol == "" {
			symbol = spec.Currency
		}
		session.Entries = append(session.Entries, &PaymentMethodEntry{
			Key:            key,
			Mode:           spec.Mode,
			Currency:       spec.Currency,
			CurrencySymbol: symbol,
			ExchangeRate:   spec.ExchangeRate,
		})
	}

	add(PaymentMethodSpec{Mode: "Cash", Currency: baseCurrency, ExchangeRate: decimal.NewFromInt(1)})

	for _, spec := range methods {
		if spec.Mode == "" || spec.Currency == "" || !spec.ExchangeRate.IsPositive() {
			continue
		}
		add(spec)
	}

	// Fallback: no methods configured beyond cash, synthesize cash entries
	// from the default rate table.
	if len(session.Entries) == 1 && len(defaultRates) > 0 {
		currencies := make([]string, 0, len(defaultRates))
		for currency := range defaultRates {
			currencies = append(currencies, currency)
		}
		sort.Strings(currencies)
		for _, currency := range currencies {
			if currency == baseCurrency || !defaultRates[currency].IsPositive() {
				continue
			}
			add(PaymentMethodSpec{Mode: "Cash", Currency: currency, ExchangeRate: defaultRates[currency]})
		}
	}

	return session
}

// SetAmount stores the entered amount for the given method key verbatim. No
// upper bound is enforced here; overpaying during entry is allowed and only
// resolved at finalization.
func (s *PaymentSession) SetAmount(key, raw string) error {
	for _, entry := range s.Entries {
		if entry.Key == key {
			entry.EnteredAmount = raw
			return nil
		}
	}
	return apperror.NewNotFoundError("Payment method")
}

// Entry returns the entry for the given key, or nil
func (s *PaymentSession) Entry(key string) *PaymentMethodEntry {
	for _, entry := range s.Entries {
		if entry.Key == key {
			return entry
		}
	}
	return nil
}

// Status derives the due/return figures. It recomputes from the entries on
// every call; nothing is maintained incrementally, so repeated recomputation
// cannot accumulate rounding error.
func (s *PaymentSession) Status() PaymentStatus {
	paidBase := decimal.Zero
	for _, entry := range s.Entries {
		paidBase = paidBase.Add(entry.BaseAmount())
	}

	status := PaymentStatus{
		TotalPaidInBase: paidBase,
		RemainingDue:    decimal.Zero,
		ChangeDue:       decimal.Zero,
		IsFullyPaid:     paidBase.GreaterThanOrEqual(s.TargetTotal),
	}
	if diff := s.TargetTotal.Sub(paidBase); diff.IsPositive() {
		status.RemainingDue = diff
	} else {
		status.ChangeDue = diff.Neg()
	}
	return status
}

// FinalizeBreakdown produces the total-exact payment breakdown submitted to
// the accounting backend. When the entered payments exceed the target total,
// every amount is scaled down proportionally so the breakdown reconciles to
// exactly the target; capping a single overpaid method is the degenerate case
// of the same rule. Each scaled amount is rounded to 2 decimal places.
func (s *PaymentSession) FinalizeBreakdown() (*PaymentBreakdown, error) {
	var positive []*PaymentMethodEntry
	literalTotal := decimal.Zero
	paidBase := decimal.Zero
	rawTender := map[string]string{}

	for _, entry := range s.Entries {
		amount := entry.Amount()
		if !amount.IsPositive() {
			continue
		}
		positive = append(positive, entry)
		literalTotal = literalTotal.Add(amount)
		paidBase = paidBase.Add(entry.BaseAmount())
		rawTender[entry.Key] = entry.EnteredAmount
	}

	if len(positive) == 0 {
		return nil, apperror.ErrUnpayable
	}

	scale := decimal.NewFromInt(1)
	if paidBase.GreaterThan(s.TargetTotal) && literalTotal.IsPositive() {
		scale = s.TargetTotal.Div(literalTotal)
	}

	lines := make([]BreakdownLine, 0, len(positive))
	for _, entry := range positive {
		lines = append(lines, BreakdownLine{
			Mode:     entry.Mode,
			Currency: entry.Currency,
			Amount:   entry.Amount().Mul(scale).Round(2),
		})
	}

	label := "Multi"
	if len(lines) == 1 {
		label = lines[0].Mode
	}

	paidTotal := s.TargetTotal
	if paidBase.LessThan(s.TargetTotal) {
		paidTotal = paidBase
	}

	return &PaymentBreakdown{
		Lines:     lines,
		Label:     label,
		PaidTotal: paidTotal.Round(2),
		ChangeDue: s.Status().ChangeDue.Round(2),
		RawTender: rawTender,
	}, nil
}
