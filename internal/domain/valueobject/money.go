package valueobject

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	domainagg "github.com/yungbote/cleanarch-backend/internal/domain/aggregates"
)

var currencyPattern = regexp.MustCompile(`^[A-Z]{3}$`)

// Money is a non-negative amount in a three letter currency.
type Money struct {
	amount   decimal.Decimal
	currency string
}

func NewMoney(amount decimal.Decimal, currency string) (Money, error) {
	const op = "valueobject.money"
	currency = strings.ToUpper(strings.TrimSpace(currency))
	switch {
	case amount.IsNegative():
		return Money{}, domainagg.Validation(op, "Amount cannot be negative")
	case currency == "":
		return Money{}, domainagg.Validation(op, "Currency cannot be empty")
	case !currencyPattern.MatchString(currency):
		return Money{}, domainagg.Validation(op, "Currency must be a 3-letter code")
	}
	return Money{amount: amount, currency: currency}, nil
}

// ParseMoney accepts a decimal string amount.
func ParseMoney(amount, currency string) (Money, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(amount))
	if err != nil {
		return Money{}, domainagg.NewError(domainagg.CodeValidation, "valueobject.money", "Amount must be a decimal number", err)
	}
	return NewMoney(d, currency)
}

func Zero(currency string) (Money, error) {
	return NewMoney(decimal.Zero, currency)
}

func (m Money) Amount() decimal.Decimal { return m.amount }
func (m Money) Currency() string        { return m.currency }
func (m Money) IsZero() bool            { return m.currency == "" }

func (m Money) Add(other Money) (Money, error) {
	if err := m.sameCurrency(other); err != nil {
		return Money{}, err
	}
	return Money{amount: m.amount.Add(other.amount), currency: m.currency}, nil
}

func (m Money) Subtract(other Money) (Money, error) {
	if err := m.sameCurrency(other); err != nil {
		return Money{}, err
	}
	return NewMoney(m.amount.Sub(other.amount), m.currency)
}

func (m Money) Multiply(factor decimal.Decimal) (Money, error) {
	if factor.IsNegative() {
		return Money{}, domainagg.Validation("valueobject.money", "Multiplier cannot be negative")
	}
	return Money{amount: m.amount.Mul(factor), currency: m.currency}, nil
}

func (m Money) Equal(other Money) bool {
	return m.currency == other.currency && m.amount.Equal(other.amount)
}

func (m Money) sameCurrency(other Money) error {
	if m.currency != other.currency {
		return domainagg.Validationf("valueobject.money", "Cannot combine %s with %s", m.currency, other.currency)
	}
	return nil
}

// String is the display form, rounded to cents.
func (m Money) String() string {
	if m.IsZero() {
		return ""
	}
	return fmt.Sprintf("%s %s", m.amount.StringFixed(2), m.currency)
}

func (m Money) Value() (driver.Value, error) {
	if m.IsZero() {
		return nil, nil
	}
	// full precision; String rounds
	return m.amount.String() + " " + m.currency, nil
}

func (m *Money) Scan(src any) error {
	s, ok, err := scanString(src)
	if err != nil || !ok {
		return err
	}
	amount, currency, found := strings.Cut(strings.TrimSpace(s), " ")
	if !found {
		return fmt.Errorf("valueobject: malformed money %q", s)
	}
	parsed, err := ParseMoney(amount, currency)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

type moneyJSON struct {
	Amount   decimal.Decimal `json:"amount"`
	Currency string          `json:"currency"`
}

func (m Money) MarshalJSON() ([]byte, error) {
	return json.Marshal(moneyJSON{Amount: m.amount, Currency: m.currency})
}

func (m *Money) UnmarshalJSON(b []byte) error {
	var raw moneyJSON
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	parsed, err := NewMoney(raw.Amount, raw.Currency)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
