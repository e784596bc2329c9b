// Package symbol canonicalizes ticker strings to market-agnostic keys.
package symbol

import "strings"

// ExchangeSuffix is the national-exchange marker stripped during
// normalization. Reference prices may be stored under either form.
const ExchangeSuffix = ".NS"

// Normalize canonicalizes a raw ticker: strips the exchange suffix,
// trims whitespace, and uppercases. Returns "" for empty input.
// Idempotent: Normalize(Normalize(x)) == Normalize(x).
func Normalize(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return ""
	}
	s = strings.ToUpper(s)
	for strings.HasSuffix(s, ExchangeSuffix) {
		s = strings.TrimSuffix(s, ExchangeSuffix)
	}
	return strings.TrimSpace(s)
}

// WithSuffix returns the exchange-suffixed variant of a normalized
// symbol, appending the suffix only once.
func WithSuffix(sym string) string {
	if strings.HasSuffix(sym, ExchangeSuffix) {
		return sym
	}
	return sym + ExchangeSuffix
}
