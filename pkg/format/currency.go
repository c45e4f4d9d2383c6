// Package format renders and parses French-locale euro amounts.
package format

import (
	"errors"
	"fmt"
	"strings"

	"github.com/iwvelando/nav-landing/pkg/constants"
	"github.com/shopspring/decimal"
)

// ErrEmptyAmount is returned by ParseEuro when the input holds no digits.
var ErrEmptyAmount = errors.New("empty amount")

// Euro returns a French-formatted currency string with a space thousands
// separator, a comma decimal separator and a euro suffix (e.g., "-1 234,56 €").
func Euro(amount decimal.Decimal) string {
	return Numeric(amount) + " " + constants.CurrencySymbol
}

// Numeric returns a French-formatted amount without currency symbol (e.g., "-1 234,56").
func Numeric(amount decimal.Decimal) string {
	sign := ""
	if amount.Round(constants.DecimalPlaces).IsNegative() {
		sign = "-"
	}
	return sign + formatPositive(amount.Abs())
}

func formatPositive(value decimal.Decimal) string {
	formatted := value.StringFixed(constants.DecimalPlaces)
	parts := strings.SplitN(formatted, ".", 2)
	intPart := parts[0]
	decPart := "00"
	if len(parts) == 2 {
		decPart = parts[1]
	}

	if len(intPart) > 3 {
		var builder strings.Builder
		for i, digit := range intPart {
			if i > 0 && (len(intPart)-i)%3 == 0 {
				builder.WriteByte(' ')
			}
			builder.WriteRune(digit)
		}
		intPart = builder.String()
	}

	return intPart + "," + decPart
}

// ParseEuro converts a localized amount such as "1 234 567,89 €" into a
// decimal. Plain dotted decimals ("1234.5") are accepted too. Dots are read
// as thousands separators only in groups of three digits, either alongside a
// decimal comma ("1.234,56") or on their own ("1.234.567"). Any other mix of
// commas and dots is rejected rather than guessed.
func ParseEuro(value string) (decimal.Decimal, error) {
	cleaned := strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\u00a0', '\u202f', '\t', '\'':
			return -1
		}
		return r
	}, value)
	cleaned = strings.TrimSuffix(cleaned, constants.CurrencySymbol)
	cleaned = strings.TrimSuffix(strings.ToUpper(cleaned), "EUR")

	if cleaned == "" || cleaned == "-" || cleaned == "+" {
		return decimal.Zero, ErrEmptyAmount
	}

	sign := ""
	if cleaned[0] == '-' || cleaned[0] == '+' {
		sign, cleaned = cleaned[:1], cleaned[1:]
	}

	switch {
	case strings.Contains(cleaned, ","):
		intPart, fracPart, _ := strings.Cut(cleaned, ",")
		if strings.ContainsAny(fracPart, ",.") {
			return decimal.Zero, fmt.Errorf("unrecognized amount %q", value)
		}
		if strings.Contains(intPart, ".") {
			grouped, ok := ungroup(intPart)
			if !ok {
				return decimal.Zero, fmt.Errorf("unrecognized amount %q", value)
			}
			intPart = grouped
		}
		cleaned = intPart + "." + fracPart
	case strings.Count(cleaned, ".") > 1:
		grouped, ok := ungroup(cleaned)
		if !ok {
			return decimal.Zero, fmt.Errorf("unrecognized amount %q", value)
		}
		cleaned = grouped
	}

	amount, err := decimal.NewFromString(sign + cleaned)
	if err != nil {
		return decimal.Zero, fmt.Errorf("unrecognized amount %q", value)
	}
	return amount, nil
}

// ungroup removes dot thousands separators from an integer part. The leading
// group holds one to three digits and every following group exactly three.
func ungroup(s string) (string, bool) {
	groups := strings.Split(s, ".")
	for i, group := range groups {
		if group == "" || len(group) > 3 || (i > 0 && len(group) != 3) {
			return "", false
		}
		for _, r := range group {
			if r < '0' || r > '9' {
				return "", false
			}
		}
	}
	return strings.Join(groups, ""), true
}
