package leasefields

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/joseph-ayodele/lease-abstractor/constants"
)

// Normalize takes raw model output and returns a map holding exactly the
// known field set with every value coerced to its declared kind. It is total
// and idempotent: missing or null keys get defaults, unparseable numbers
// coerce to zero then clamp to the field's domain minimum, unknown keys are
// dropped, and a JSON null is treated the same as an absent key. It never
// returns an error.
func Normalize(raw map[string]any) map[string]any {
	out := make(map[string]any, 2*len(Specs)+2)

	for _, fs := range Specs {
		v, ok := raw[fs.Name]
		if !ok || v == nil {
			out[fs.Name] = fs.Default
		} else {
			switch fs.Kind {
			case KindNumber:
				out[fs.Name] = clampMin(toNumber(v), fs.Min)
			case KindBool:
				out[fs.Name] = toBool(v)
			default:
				out[fs.Name] = toText(v, fs.Default)
			}
		}
		out[fs.SourceKey()] = toSource(raw[fs.SourceKey()])
	}

	// Free-form late fee descriptions collapse onto the two canonical types.
	feeType, _ := constants.CanonicalizeLateFeeType(out["late_fee_type"].(string))
	out["late_fee_type"] = string(feeType)

	out["confidence_score"] = toConfidence(raw["confidence_score"])
	if fn, ok := raw["source_filename"].(string); ok {
		out["source_filename"] = fn
	} else {
		out["source_filename"] = ""
	}
	return out
}

// Clean normalizes raw model output and decodes it into a typed Record.
func Clean(raw map[string]any) Record {
	normalized := Normalize(raw)
	b, _ := json.Marshal(normalized)
	var rec Record
	_ = json.Unmarshal(b, &rec)
	return rec
}

func clampMin(v, min float64) float64 {
	if v < min {
		return min
	}
	return v
}

// toNumber coerces model output to a float64, accepting formatted currency
// strings like "$1,500.00". Anything unparseable becomes 0.
func toNumber(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case float32:
		return float64(n)
	case int:
		return float64(n)
	case int64:
		return float64(n)
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			return 0
		}
		return f
	case string:
		s := strings.TrimSpace(n)
		s = strings.TrimSuffix(s, "%")
		s = strings.ReplaceAll(s, "$", "")
		s = strings.ReplaceAll(s, ",", "")
		s = strings.TrimSpace(s)
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0
		}
		return f
	default:
		return 0
	}
}

func toBool(v any) bool {
	switch b := v.(type) {
	case bool:
		return b
	case string:
		switch strings.ToLower(strings.TrimSpace(b)) {
		case "true", "yes", "1":
			return true
		}
		return false
	case float64:
		return b != 0
	default:
		return false
	}
}

// toText coerces model output to a string. Arrays flatten to a comma-joined
// list (the model sometimes returns utilities as a JSON array).
func toText(v any, def any) any {
	switch s := v.(type) {
	case string:
		return s
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(s)
	case []any:
		parts := make([]string, 0, len(s))
		for _, item := range s {
			if str, ok := item.(string); ok {
				parts = append(parts, str)
			}
		}
		return strings.Join(parts, ", ")
	default:
		return def
	}
}

// toSource keeps a non-empty string citation and falls back to the sentinel
// for everything else.
func toSource(v any) string {
	if s, ok := v.(string); ok && strings.TrimSpace(s) != "" {
		return s
	}
	return NotFoundSource
}

// toConfidence coerces and clamps the model's self-reported confidence into
// [0, 1], defaulting to 0.5 when it is missing or unparseable.
func toConfidence(v any) float64 {
	switch c := v.(type) {
	case nil:
		return 0.5
	case float64:
		return clamp01(c)
	case int:
		return clamp01(float64(c))
	case json.Number:
		f, err := c.Float64()
		if err != nil {
			return 0.5
		}
		return clamp01(f)
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(c), 64)
		if err != nil {
			return 0.5
		}
		return clamp01(f)
	default:
		return 0.5
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
