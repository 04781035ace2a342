package models

import (
	"strings"

	"github.com/shopspring/decimal"
)

func init() {
	// Prices leave the API as JSON numbers.
	decimal.MarshalJSONWithoutQuotes = true
}

// All lists every table managed by the service, in dependency order.
func All() []any {
	return []any{
		&User{},
		&Product{},
		&CartItem{},
		&Order{},
		&OrderItem{},
		&AuditLog{},
	}
}

func joinNonEmpty(parts ...string) string {
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, " ")
}
