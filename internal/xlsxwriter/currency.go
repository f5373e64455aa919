package xlsxwriter

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// separatorSample is formatted once per locale to learn its separators.
const separatorSample = 1234567.5

// CurrencyFormatter renders amounts as localized currency text: the symbol,
// locale digit grouping and exactly two fraction digits. Digits always come
// from the decimal value itself.
type CurrencyFormatter struct {
	symbol  string
	group   string
	decimal string
}

// NewCurrencyFormatter returns a formatter for the BCP 47 locale.
func NewCurrencyFormatter(symbol, locale string) (*CurrencyFormatter, error) {
	tag, err := language.Parse(locale)
	if err != nil {
		return nil, fmt.Errorf("invalid locale %q: %w", locale, err)
	}

	sample := message.NewPrinter(tag).Sprint(number.Decimal(separatorSample, number.Scale(2)))
	group, dec := separators(sample)

	return &CurrencyFormatter{
		symbol:  symbol,
		group:   group,
		decimal: dec,
	}, nil
}

// Format returns amount rounded half away from zero to cents,
// e.g. "$1,234.50".
func (c *CurrencyFormatter) Format(amount decimal.Decimal) string {
	rounded := amount.Round(2)

	sign := ""
	if rounded.IsNegative() {
		sign = "-"
		rounded = rounded.Neg()
	}

	whole, frac, _ := strings.Cut(rounded.StringFixed(2), ".")

	return sign + c.symbol + groupDigits(whole, c.group) + c.decimal + frac
}

// separators extracts the grouping and decimal separators from a formatted
// sample. The last separator between digit runs is the decimal mark; the
// first one, if there are more, is the grouping mark.
func separators(sample string) (group, dec string) {
	var seps []string
	var current strings.Builder
	inDigits := false

	for _, r := range sample {
		if unicode.IsDigit(r) {
			if !inDigits && current.Len() > 0 {
				seps = append(seps, current.String())
			}
			current.Reset()
			inDigits = true
			continue
		}
		if inDigits || current.Len() > 0 {
			current.WriteRune(r)
		}
		inDigits = false
	}

	switch len(seps) {
	case 0:
		return ",", "."
	case 1:
		return "", seps[0]
	default:
		return seps[0], seps[len(seps)-1]
	}
}

// groupDigits inserts sep between every three digits from the right.
func groupDigits(digits, sep string) string {
	if sep == "" || len(digits) <= 3 {
		return digits
	}

	var b strings.Builder
	head := len(digits) % 3
	if head > 0 {
		b.WriteString(digits[:head])
	}
	for i := head; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteString(sep)
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}
