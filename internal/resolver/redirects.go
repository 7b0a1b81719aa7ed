package resolver

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strings"
)

// RedirectType is the HTTP redirect semantics of a rule.
type RedirectType string

const (
	RedirectMovedPermanently  RedirectType = "301"
	RedirectFound             RedirectType = "302"
	RedirectPermanentRedirect RedirectType = "308"
)

// Valid reports whether t is a supported redirect type.
func (t RedirectType) Valid() bool {
	switch t {
	case RedirectMovedPermanently, RedirectFound, RedirectPermanentRedirect:
		return true
	}
	return false
}

// StatusCode returns the HTTP status code for the redirect type.
func (t RedirectType) StatusCode() int {
	switch t {
	case RedirectMovedPermanently:
		return http.StatusMovedPermanently
	case RedirectPermanentRedirect:
		return http.StatusPermanentRedirect
	default:
		return http.StatusFound
	}
}

// Rule maps a legacy path to its canonical destination. Rules are static
// configuration; there is no mutation path at runtime.
type Rule struct {
	From   string       `json:"from"`
	To     string       `json:"to"`
	Type   RedirectType `json:"type"`
	Reason string       `json:"reason,omitempty"`
}

// Redirect is the destination carried by a redirect result.
type Redirect struct {
	To     string       `json:"to"`
	Type   RedirectType `json:"type"`
	Reason string       `json:"reason,omitempty"`
}

// Table is an exact-match lookup over the configured redirect rules. When
// configuration contains duplicate From paths, the first rule in order wins.
type Table struct {
	rules map[string]Rule
	count int
}

// NewTable validates the rules and builds a Table. A self-redirect or an
// unsupported type is a configuration defect and fails construction.
func NewTable(rules []Rule) (*Table, error) {
	t := &Table{rules: make(map[string]Rule, len(rules))}

	for i, r := range rules {
		if !strings.HasPrefix(r.From, "/") || !strings.HasPrefix(r.To, "/") {
			return nil, fmt.Errorf("redirect rule %d: paths must start with /: %q -> %q", i, r.From, r.To)
		}
		if r.From == r.To {
			return nil, fmt.Errorf("redirect rule %d: self-redirect %q", i, r.From)
		}
		if !r.Type.Valid() {
			return nil, fmt.Errorf("redirect rule %d: unsupported type %q", i, r.Type)
		}
		if _, exists := t.rules[r.From]; exists {
			continue // first rule in order wins
		}
		t.rules[r.From] = r
		t.count++
	}
	return t, nil
}

// Find returns the rule matching path exactly, or nil.
func (t *Table) Find(path string) *Rule {
	if r, ok := t.rules[path]; ok {
		return &r
	}
	return nil
}

// Len returns the number of effective rules.
func (t *Table) Len() int { return t.count }

// LoadRules reads redirect rules from a JSON file. An empty path yields an
// empty rule set, so deployments without legacy paths need no file.
func LoadRules(path string) ([]Rule, error) {
	if path == "" {
		return nil, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read redirect rules: %w", err)
	}

	var rules []Rule
	if err := json.Unmarshal(data, &rules); err != nil {
		return nil, fmt.Errorf("failed to parse redirect rules: %w", err)
	}
	return rules, nil
}
