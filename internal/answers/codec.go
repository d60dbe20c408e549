// Package answers converts between the answers cell of a sheet and the
// in-memory answer map edited by the form.
//
// The cell holds a JSON object of question key to answer text. Cells written
// before the JSON format was introduced hold plain text; such content is kept
// under a single legacy key instead of being dropped.
package answers

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/dmitrijs2005/interviewkeeper/internal/models"
)

// DefaultLegacyKey receives un-parseable historical cell content.
const DefaultLegacyKey = "1-1"

// Codec decodes and encodes answer cells.
type Codec struct {
	LegacyKey string
}

// NewCodec returns a Codec using legacyKey, or DefaultLegacyKey when empty.
func NewCodec(legacyKey string) Codec {
	if legacyKey == "" {
		legacyKey = DefaultLegacyKey
	}
	return Codec{LegacyKey: legacyKey}
}

// Decode never fails: a blank cell yields an empty map, a JSON object yields
// its entries, and anything else is stored whole under the legacy key.
//
// Non-string JSON values are kept as their JSON text, null becomes "".
func (c Codec) Decode(cell string) models.Answers {
	if strings.TrimSpace(cell) == "" {
		return models.Answers{}
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal([]byte(cell), &raw); err != nil || raw == nil {
		return models.Answers{c.legacyKey(): cell}
	}

	out := make(models.Answers, len(raw))
	for k, v := range raw {
		out[k] = scalar(v)
	}
	return out
}

func scalar(v json.RawMessage) string {
	var s string
	if err := json.Unmarshal(v, &s); err == nil {
		return s
	}
	t := strings.TrimSpace(string(v))
	if t == "null" {
		return ""
	}
	return t
}

// Encode serializes a as a JSON object with sorted keys. Non-ASCII text and
// HTML-sensitive characters are written verbatim.
func (c Codec) Encode(a models.Answers) (string, error) {
	if a == nil {
		a = models.Answers{}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(map[string]string(a)); err != nil {
		return "", err
	}
	return unescapeLineSeparators(strings.TrimSuffix(buf.String(), "\n")), nil
}

// unescapeLineSeparators restores U+2028 and U+2029, which encoding/json
// always escapes. An escaped backslash is copied together with the byte after
// it, so an answer that contains the six characters \u2028 is not altered.
func unescapeLineSeparators(s string) string {
	if !strings.Contains(s, `\u202`) {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] != '\\' || i+1 >= len(s) {
			b.WriteByte(s[i])
			continue
		}
		switch esc := s[i : i+min(6, len(s)-i)]; esc {
		case `\u2028`:
			b.WriteRune('\u2028')
			i += 5
		case `\u2029`:
			b.WriteRune('\u2029')
			i += 5
		default:
			b.WriteString(s[i : i+2])
			i++
		}
	}
	return b.String()
}

func (c Codec) legacyKey() string {
	if c.LegacyKey == "" {
		return DefaultLegacyKey
	}
	return c.LegacyKey
}
