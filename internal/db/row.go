package db

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"
)

// Row is one result row as an ordered column -> value mapping.
type Row struct {
	cols []string
	vals []any
}

func (r Row) Columns() []string {
	return r.cols
}

func (r Row) Get(col string) (any, bool) {
	for i, c := range r.cols {
		if c == col {
			return normalize(r.vals[i]), true
		}
	}
	return nil, false
}

func (r Row) Int64(col string) int64 {
	v, _ := r.Get(col)
	switch n := v.(type) {
	case int64:
		return n
	case int32:
		return int64(n)
	case int:
		return int64(n)
	case float64:
		return int64(n)
	case string:
		i, _ := strconv.ParseInt(n, 10, 64)
		return i
	}
	return 0
}

func (r Row) String(col string) string {
	v, _ := r.Get(col)
	if v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

// Decimal returns zero for NULL, which is what SUM yields on no rows.
func (r Row) Decimal(col string) decimal.Decimal {
	v, _ := r.Get(col)
	switch n := v.(type) {
	case nil:
		return decimal.Zero
	case decimal.Decimal:
		return n
	case float64:
		return decimal.NewFromFloat(n)
	case int64:
		return decimal.NewFromInt(n)
	case string:
		d, err := decimal.NewFromString(n)
		if err != nil {
			return decimal.Zero
		}
		return d
	}

	var d decimal.Decimal
	if err := d.Scan(v); err != nil {
		return decimal.Zero
	}
	return d
}

func (r Row) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, c := range r.cols {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(c)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(normalize(r.vals[i]))
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func normalize(v any) any {
	if b, ok := v.([]byte); ok {
		return string(b)
	}
	return v
}
