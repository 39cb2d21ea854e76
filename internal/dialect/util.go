package dialect

import "strings"

// QuoteAnsi wraps an identifier in standard double quotes, escaping any
// embedded quote.
func QuoteAnsi(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
