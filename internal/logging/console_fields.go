package logging

import (
	"log/slog"
	"slices"
	"strings"

	"github.com/dustin/go-humanize"
)

const (
	infoFieldLimit = 8
	maxErrorChars  = 200
)

// leadingKeys are shown first, in this order, when present.
var leadingKeys = []string{
	FieldEventType,
	FieldFile,
	FieldAction,
	"deleted",
	"moved",
	"skipped",
	"policy",
	FieldErrorHint,
	FieldImpact,
	"error",
}

var fieldLabels = map[string]string{
	FieldEventType: "Event",
	FieldErrorHint: "Hint",
	FieldFile:      "File",
	FieldAction:    "Action",
}

type labelled struct {
	label string
	value string
}

// curate orders fields for info-level output and reports how many were left
// out. Header fields are dropped; paths, directories and the root listing
// count as hidden. A limit of zero shows everything else.
func curate(fields []field, limit int) ([]labelled, int) {
	ordered := make([]field, 0, len(fields))
	for _, key := range leadingKeys {
		if i := slices.IndexFunc(fields, func(f field) bool { return f.key == key }); i >= 0 {
			ordered = append(ordered, fields[i])
		}
	}
	for _, f := range fields {
		if !slices.Contains(leadingKeys, f.key) {
			ordered = append(ordered, f)
		}
	}

	var shown []labelled
	hidden := 0
	for _, f := range ordered {
		switch {
		case isHeaderKey(f.key):
		case isDebugOnlyKey(f.key), limit > 0 && len(shown) >= limit:
			hidden++
		default:
			shown = append(shown, labelled{label: labelFor(f.key), value: displayValue(f.key, f.value)})
		}
	}
	return shown, hidden
}

func displayValue(key string, v slog.Value) string {
	if strings.HasSuffix(key, "_bytes") || key == "size" {
		switch v.Kind() {
		case slog.KindInt64:
			if n := v.Int64(); n >= 0 {
				return humanize.IBytes(uint64(n))
			}
		case slog.KindUint64:
			return humanize.IBytes(v.Uint64())
		}
	}
	switch v.Kind() {
	case slog.KindBool:
		if v.Bool() {
			return "yes"
		}
		return "no"
	case slog.KindString, slog.KindAny:
		s := plainValue(v)
		if key == "error" && len(s) > maxErrorChars {
			s = s[:maxErrorChars] + "…"
		}
		return quoteIfNeeded(s)
	default:
		return plainValue(v)
	}
}

func isHeaderKey(key string) bool {
	return key == FieldComponent || key == FieldRunID || key == FieldTarget
}

func isDebugOnlyKey(key string) bool {
	return strings.HasSuffix(key, "_path") || strings.HasSuffix(key, "_dir") || key == "root_files"
}

func labelFor(key string) string {
	if label, ok := fieldLabels[key]; ok {
		return label
	}
	words := strings.FieldsFunc(key, func(r rune) bool { return r == '_' || r == '-' || r == '.' })
	for i, w := range words {
		w = strings.ToLower(w)
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
