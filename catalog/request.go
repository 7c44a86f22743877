package catalog

import "strings"

// Request is the declarative query surface the compiler consumes: a
// comma-separated attribute-definition list, a table list whose parts are
// separated by the literal "natural join", an optional boolean predicate,
// and an optional comma-separated grouping-attribute list. Empty strings
// mean "absent".
type Request struct {
	Attributes string
	Tables     string
	Predicate  string
	GroupBy    string
}

func (r Request) attributeDefinitions() []string {
	return splitList(r.Attributes, ",")
}

func (r Request) tableNames() []string {
	return splitList(r.Tables, "natural join")
}

func (r Request) groupingAttributes() []string {
	return splitList(r.GroupBy, ",")
}

// isWildcard reports whether the attribute list requests every input
// attribute unchanged: the "*" marker or no attribute list at all.
func (r Request) isWildcard() bool {
	defs := r.attributeDefinitions()
	return defs == nil || len(defs) == 1 && defs[0] == "*"
}

func splitList(s, sep string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, sep)
	out := make([]string, len(parts))
	for i, p := range parts {
		out[i] = strings.TrimSpace(p)
	}
	return out
}
