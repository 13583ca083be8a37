package boruta

import (
	"regexp"
	"sort"
	"strings"
)

// clientIDPattern is the UUID shape every client_id must match (§4.1).
var clientIDPattern = regexp.MustCompile(`^[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}$`)

// paramSchema is a declarative, JSON-schema-like shape for one grant's raw
// parameter map: which properties are required, and which properties, if
// present, must match a pattern (§4.1). It is deliberately flat — no
// nested objects, no third-party JSON-schema engine — because every grant
// this core validates is a single level of string properties.
type paramSchema struct {
	required []string
	patterns map[string]*regexp.Regexp
}

var (
	authorizeSchema = paramSchema{
		required: []string{"client_id", "redirect_uri", "response_type"},
		patterns: map[string]*regexp.Regexp{"client_id": clientIDPattern},
	}
	tokenAuthorizationCodeSchema = paramSchema{
		required: []string{"client_id", "code", "redirect_uri"},
		patterns: map[string]*regexp.Regexp{"client_id": clientIDPattern},
	}
	tokenClientCredentialsSchema = paramSchema{
		required: []string{"client_id"},
		patterns: map[string]*regexp.Regexp{"client_id": clientIDPattern},
	}
	tokenPasswordSchema = paramSchema{
		required: []string{"client_id", "username", "password"},
		patterns: map[string]*regexp.Regexp{"client_id": clientIDPattern},
	}
	tokenRefreshTokenSchema = paramSchema{
		required: []string{"client_id", "refresh_token"},
		patterns: map[string]*regexp.Regexp{"client_id": clientIDPattern},
	}
	introspectSchema = paramSchema{
		required: []string{"client_id", "token"},
		patterns: map[string]*regexp.Regexp{"client_id": clientIDPattern},
	}
	revokeSchema = paramSchema{
		required: []string{"client_id", "token"},
		patterns: map[string]*regexp.Regexp{"client_id": clientIDPattern},
	}
)

// validate checks params against the schema and returns nil, or an
// invalid_request *Error whose Description enumerates every failing
// property exactly as §4.1/§8 specify: one "#/<prop> do match required
// pattern /<pattern>/." sentence per pattern mismatch, in property order,
// followed by one "Required properties a, b are missing at #." sentence
// if any required property is absent.
func (s paramSchema) validate(params map[string]string) *Error {
	var sentences []string

	patternProps := make([]string, 0, len(s.patterns))
	for prop := range s.patterns {
		patternProps = append(patternProps, prop)
	}
	sort.Strings(patternProps)

	for _, prop := range patternProps {
		value, present := params[prop]
		if !present {
			continue // absence is reported as a missing-property sentence below
		}
		if !s.patterns[prop].MatchString(value) {
			sentences = append(sentences, "#/"+prop+" do match required pattern /"+s.patterns[prop].String()+"/.")
		}
	}

	var missing []string
	for _, prop := range s.required {
		if strings.TrimSpace(params[prop]) == "" {
			missing = append(missing, prop)
		}
	}
	if len(missing) > 0 {
		sentences = append(sentences, "Required properties "+strings.Join(missing, ", ")+" are missing at #.")
	}

	if len(sentences) == 0 {
		return nil
	}
	return newError(ErrInvalidRequest, strings.Join(sentences, " "), StatusBadRequest)
}
