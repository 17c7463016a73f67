package main

import (
	"encoding/json"
	"io"
)

// printJSON writes v as indented JSON. HTML escaping is off so paths and
// filenames containing & or < print as typed.
func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
