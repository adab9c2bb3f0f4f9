package inventory

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

const (
	StatusAvailable = "Available"
	StatusOnHold    = "On Hold"
	StatusSold      = "Sold"
	StatusDraft     = "Draft"
)

var Statuses = []string{StatusAvailable, StatusOnHold, StatusSold, StatusDraft}

func validStatus(s string) bool {
	for _, v := range Statuses {
		if s == v {
			return true
		}
	}
	return false
}

// Validate returns every rule the item breaks, in field order id, make,
// model, year, status. A nil item is not an object.
func Validate(item *Item) []string {
	if item == nil {
		return []string{"item must be an object"}
	}

	var problems []string

	if id, ok := item.String(FieldID); !ok || id == "" {
		problems = append(problems, "id must be a non-empty string (supply id or make and model)")
	}
	for _, field := range []string{FieldMake, FieldModel} {
		if s, ok := item.String(field); !ok || strings.TrimSpace(s) == "" {
			problems = append(problems, field+" is required and must be a non-empty string")
		}
	}

	if raw, ok := item.Get(FieldYear); ok && !isNull(raw) && !numeric(raw) {
		problems = append(problems, "year must be numeric")
	}

	if item.Present(FieldStatus) {
		if s, ok := item.String(FieldStatus); !ok || !validStatus(s) {
			problems = append(problems, fmt.Sprintf("status must be one of: %s", strings.Join(Statuses, ", ")))
		}
	}

	return problems
}

func numeric(raw []byte) bool {
	text, ok := scalarText(raw)
	if !ok {
		return false
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return false
	}
	f, err := strconv.ParseFloat(text, 64)
	return err == nil && !math.IsNaN(f) && !math.IsInf(f, 0)
}
