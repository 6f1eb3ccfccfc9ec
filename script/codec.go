package script

import (
	"fmt"
	"sort"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// DecodePayload parses a JSON document into the plain-data payload
// shape the bridge delivers to listeners: map[string]any, []any,
// string, float64, bool, or nil.
func DecodePayload(doc string) (any, error) {
	if !gjson.Valid(doc) {
		return nil, ErrInvalidJSON
	}
	return gjson.Parse(doc).Value(), nil
}

// EncodePayload renders a plain-data payload as a JSON document.
// The inverse of DecodePayload for the shapes the bridge produces;
// map keys are emitted in sorted order so output is deterministic.
func EncodePayload(v any) (string, error) {
	switch val := v.(type) {
	case nil:
		return "null", nil
	case map[string]any:
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		out := "{}"
		for _, k := range keys {
			raw, err := EncodePayload(val[k])
			if err != nil {
				return "", err
			}
			out, err = sjson.SetRaw(out, escapePathKey(k), raw)
			if err != nil {
				return "", fmt.Errorf("encode key %q: %w", k, err)
			}
		}
		return out, nil
	case []any:
		out := "[]"
		for i, item := range val {
			raw, err := EncodePayload(item)
			if err != nil {
				return "", err
			}
			out, err = sjson.SetRaw(out, "-1", raw)
			if err != nil {
				return "", fmt.Errorf("encode index %d: %w", i, err)
			}
		}
		return out, nil
	case error:
		return encodeScalar(val.Error())
	default:
		return encodeScalar(val)
	}
}

// encodeScalar renders a scalar by round-tripping it through sjson.
func encodeScalar(v any) (string, error) {
	doc, err := sjson.Set("{}", "v", v)
	if err != nil {
		return "", fmt.Errorf("encode scalar %v: %w", v, err)
	}
	return gjson.Get(doc, "v").Raw, nil
}

// escapePathKey escapes sjson path syntax inside a literal map key.
func escapePathKey(k string) string {
	r := strings.NewReplacer(
		".", `\.`,
		"*", `\*`,
		"?", `\?`,
		"|", `\|`,
		"#", `\#`,
		"@", `\@`,
		`\`, `\\`,
	)
	return r.Replace(k)
}
