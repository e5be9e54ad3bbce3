package analysis

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

const fence = "```"

// StripFences removes Markdown code fencing the model sometimes wraps its JSON
// in (```json ... ```), wherever it appears, and trims the result.
func StripFences(raw string) string {
	s := strings.TrimPrefix(raw, "\ufeff")
	for {
		i := strings.Index(s, fence)
		if i < 0 {
			break
		}
		j := i + len(fence)
		if len(s) >= j+4 && strings.EqualFold(s[j:j+4], "json") {
			j += 4
		}
		if j < len(s) && s[j] == '\r' {
			j++
		}
		if j < len(s) && s[j] == '\n' {
			j++
		}
		s = s[:i] + s[j:]
	}
	return strings.TrimSpace(s)
}

// text accepts a JSON string, number, bool or null and keeps it as text.
// Objects collapse to their most descriptive string member.
type text string

func (t *text) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || string(b) == "null" {
		*t = ""
		return nil
	}
	switch b[0] {
	case '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*t = text(strings.TrimSpace(s))
	case '{':
		var obj map[string]json.RawMessage
		if err := json.Unmarshal(b, &obj); err != nil {
			return err
		}
		for _, key := range []string{"name", "title", "text", "description"} {
			raw, ok := obj[key]
			if !ok {
				continue
			}
			var s string
			if json.Unmarshal(raw, &s) == nil && strings.TrimSpace(s) != "" {
				*t = text(strings.TrimSpace(s))
				return nil
			}
		}
		var compact bytes.Buffer
		if err := json.Compact(&compact, b); err != nil {
			return err
		}
		*t = text(compact.String())
	case '[':
		var l textList
		if err := l.UnmarshalJSON(b); err != nil {
			return err
		}
		*t = text(strings.Join(l, ", "))
	default:
		*t = text(string(b))
	}
	return nil
}

// textList accepts an array of loosely typed items, a single scalar, or null.
// Blank items are dropped.
type textList []string

func (l *textList) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || string(b) == "null" {
		*l = nil
		return nil
	}
	if b[0] != '[' {
		var t text
		if err := t.UnmarshalJSON(b); err != nil {
			return err
		}
		if t == "" {
			*l = textList{}
		} else {
			*l = textList{string(t)}
		}
		return nil
	}

	var raw []json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	out := make(textList, 0, len(raw))
	for _, item := range raw {
		var t text
		if err := t.UnmarshalJSON(item); err != nil {
			return err
		}
		if t != "" {
			out = append(out, string(t))
		}
	}
	*l = out
	return nil
}

// decodeLenient decodes a JSON object into obj. Any other value is handed to
// scalar as text, so a list element the model sent as a bare string still
// becomes a record.
func decodeLenient(b []byte, obj any, scalar func(text)) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '{' {
		return json.Unmarshal(b, obj)
	}
	var t text
	if err := t.UnmarshalJSON(b); err != nil {
		return err
	}
	scalar(t)
	return nil
}

// hours accepts a finite positive number or numeric string; anything else is
// absent.
type hours struct {
	value *float64
}

func (h *hours) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	s := string(b)
	if strings.HasPrefix(s, `"`) {
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || v <= 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		h.value = nil
		return nil
	}
	h.value = &v
	return nil
}
