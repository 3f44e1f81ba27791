package ast

import (
	"encoding/json"
	"io"
)

// EncodeJSON writes statements as an indented JSON array. Every node carries
// its "type" tag and tokens keep their line numbers.
func EncodeJSON(w io.Writer, statements []Stmt) error {
	if statements == nil {
		statements = []Stmt{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(statements)
}
