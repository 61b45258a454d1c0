package types

// Issue represents a lexical problem found in a GraphQL document.
type Issue struct {
	Kind     string // token kind name, e.g. BAD_UNICODE_ESCAPE
	Filename string
	Message  string
	Raw      string // offending source text
	Line     int    // 1-based, first character of the offending token
	Column   int    // 1-based
}
