package inventory

import (
	"regexp"
	"strings"
)

var nonAlphanumeric = regexp.MustCompile(`[^a-z0-9]+`)

// Normalize lowercases and trims s, collapses every run of characters
// outside [a-z0-9] into one hyphen and strips leading and trailing hyphens.
// Normalize(Normalize(s)) == Normalize(s).
func Normalize(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = nonAlphanumeric.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// AssignID normalizes the item's id in place, deriving it from
// make-model-year when the item has no id or a blank one. An id that is
// neither a string nor a number is left for validation to reject.
func AssignID(item *Item) {
	if raw, ok := item.Get(FieldID); ok && !isNull(raw) {
		text, ok := scalarText(raw)
		if !ok {
			return
		}
		if strings.TrimSpace(text) != "" {
			_ = item.Set(FieldID, Normalize(text))
			return
		}
	}

	id := Normalize(fieldText(item, FieldMake) + "-" + fieldText(item, FieldModel) + "-" + fieldText(item, FieldYear))
	if id == "" {
		return
	}
	_ = item.Set(FieldID, id)
	_ = item.fields.MoveToFront(FieldID)
}

func fieldText(item *Item, key string) string {
	raw, ok := item.Get(key)
	if !ok {
		return ""
	}
	text, _ := scalarText(raw)
	return text
}
