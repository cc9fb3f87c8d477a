package formatter

import (
	"fmt"
	"regexp"
	"strings"
)

var identPattern = regexp.MustCompile(`^[A-Za-z_$][A-Za-z0-9_$]*$`)

// Source is a formatter written directly as a JavaScript function body. Go
// cannot evaluate it; it exists for formatters that only make sense inside the
// chart runtime.
type Source struct {
	params []string
	body   string
}

// FromSource builds a Source from a comma separated parameter list and a body.
// The list must declare exactly Arity identifiers.
func FromSource(params string, body string) (*Source, error) {
	var names []string
	for _, p := range strings.Split(params, ",") {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		if !identPattern.MatchString(p) {
			return nil, fmt.Errorf("formatter: invalid parameter name %q", p)
		}
		names = append(names, p)
	}
	if len(names) != Arity {
		return nil, fmt.Errorf("%w: declares %d parameters, want %d", ErrArity, len(names), Arity)
	}
	if strings.TrimSpace(body) == "" {
		return nil, fmt.Errorf("formatter: empty body")
	}
	return &Source{params: names, body: body}, nil
}

func (s *Source) Format(Payload, string, Callback) (string, error) {
	return "", ErrNotEvaluable
}

func (s *Source) Script() (string, error) {
	return "function (" + strings.Join(s.params, ", ") + ") {\n" + s.body + "\n}", nil
}
