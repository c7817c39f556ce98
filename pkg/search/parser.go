package search

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// FieldType represents the post attribute a condition looks at
type FieldType string

const (
	FieldTitle    FieldType = "title"
	FieldContent  FieldType = "content"
	FieldStatus   FieldType = "status"
	FieldModified FieldType = "modified"
	FieldWords    FieldType = "words"
)

// Operator represents a search operator
type Operator string

const (
	OperatorEquals      Operator = "="
	OperatorContains    Operator = "contains"
	OperatorGreaterThan Operator = ">"
	OperatorLessThan    Operator = "<"
	OperatorAND         Operator = "AND"
	OperatorOR          Operator = "OR"
)

// Condition represents a single search condition
type Condition struct {
	Field    FieldType
	Operator Operator
	Value    interface{}
	Negate   bool
}

// Query represents a parsed search query
type Query struct {
	Conditions []Condition
	Logic      []Operator // Logic operators between conditions
	Raw        string     // Original query string
}

// Parser handles parsing of search queries
type Parser struct {
	fieldPattern    *regexp.Regexp
	quotedPattern   *regexp.Regexp
	modifiedPattern *regexp.Regexp
	countPattern    *regexp.Regexp
}

// NewParser creates a new search query parser
func NewParser() *Parser {
	return &Parser{
		fieldPattern:    regexp.MustCompile(`^(\w+):(.+)$`),
		quotedPattern:   regexp.MustCompile(`^"([^"]*)"$`),
		modifiedPattern: regexp.MustCompile(`^([<>])(\d+)([dwmy])$`),
		countPattern:    regexp.MustCompile(`^([<>])(\d+)$`),
	}
}

// Parse parses a search query string into a Query object
func (p *Parser) Parse(input string) (*Query, error) {
	query := &Query{
		Raw:        input,
		Conditions: []Condition{},
		Logic:      []Operator{},
	}

	tokens := p.tokenize(input)
	if err := p.parseTokens(tokens, query); err != nil {
		return nil, err
	}
	return query, nil
}

// tokenize splits the input on spaces outside quotes
func (p *Parser) tokenize(input string) []string {
	var tokens []string
	var current strings.Builder
	inQuotes := false

	for _, r := range input {
		switch {
		case r == '"':
			inQuotes = !inQuotes
			current.WriteRune(r)
		case r == ' ' && !inQuotes:
			if current.Len() > 0 {
				tokens = append(tokens, current.String())
				current.Reset()
			}
		default:
			current.WriteRune(r)
		}
	}
	if current.Len() > 0 {
		tokens = append(tokens, current.String())
	}
	return tokens
}

// parseTokens parses tokens into conditions
func (p *Parser) parseTokens(tokens []string, query *Query) error {
	negate := false
	explicit := false

	for i, token := range tokens {
		switch strings.ToUpper(token) {
		case "AND", "OR":
			if len(query.Conditions) == 0 {
				return fmt.Errorf("unexpected operator %s at beginning of query", token)
			}
			if explicit || len(query.Logic) >= len(query.Conditions) {
				return fmt.Errorf("operator %s must follow a condition", token)
			}
			query.Logic = append(query.Logic, Operator(strings.ToUpper(token)))
			explicit = true
			continue
		case "NOT":
			if i == len(tokens)-1 {
				return fmt.Errorf("NOT operator requires a condition")
			}
			negate = true
			continue
		}

		cond, err := p.parseCondition(token)
		if err != nil {
			return err
		}
		cond.Negate = negate
		negate = false

		// Adjacent conditions are joined with AND
		if len(query.Conditions) > 0 && !explicit {
			query.Logic = append(query.Logic, OperatorAND)
		}
		explicit = false
		query.Conditions = append(query.Conditions, cond)
	}

	if explicit {
		return fmt.Errorf("query ends with an operator")
	}
	return nil
}

// parseCondition parses one field:value token; anything else searches content
func (p *Parser) parseCondition(token string) (Condition, error) {
	matches := p.fieldPattern.FindStringSubmatch(token)
	if len(matches) != 3 {
		return Condition{Field: FieldContent, Operator: OperatorContains, Value: p.unquote(token)}, nil
	}

	field := strings.ToLower(matches[1])
	value := matches[2]

	switch field {
	case "title":
		return Condition{Field: FieldTitle, Operator: OperatorContains, Value: p.unquote(value)}, nil
	case "content":
		return Condition{Field: FieldContent, Operator: OperatorContains, Value: p.unquote(value)}, nil
	case "status":
		status := strings.ToLower(p.unquote(value))
		if status != "active" && status != "archived" {
			return Condition{}, fmt.Errorf("invalid status: %s (expected active or archived)", value)
		}
		return Condition{Field: FieldStatus, Operator: OperatorEquals, Value: status}, nil
	case "modified":
		duration, op, err := p.parseModifiedValue(value)
		if err != nil {
			return Condition{}, err
		}
		return Condition{Field: FieldModified, Operator: op, Value: duration}, nil
	case "words":
		m := p.countPattern.FindStringSubmatch(value)
		if len(m) != 3 {
			return Condition{}, fmt.Errorf("invalid words value format: %s (expected format: >500, <100)", value)
		}
		n, _ := strconv.Atoi(m[2])
		return Condition{Field: FieldWords, Operator: Operator(m[1]), Value: n}, nil
	}
	return Condition{}, fmt.Errorf("unknown field: %s", field)
}

// parseModifiedValue parses modified field values like ">7d" or "<30d"
func (p *Parser) parseModifiedValue(value string) (time.Duration, Operator, error) {
	matches := p.modifiedPattern.FindStringSubmatch(value)
	if len(matches) != 4 {
		return 0, "", fmt.Errorf("invalid modified value format: %s (expected format: >7d, <30d, etc.)", value)
	}

	multiplier, _ := strconv.Atoi(matches[2])
	day := 24 * time.Hour

	var duration time.Duration
	switch matches[3] {
	case "d":
		duration = time.Duration(multiplier) * day
	case "w":
		duration = time.Duration(multiplier) * 7 * day
	case "m":
		duration = time.Duration(multiplier) * 30 * day
	case "y":
		duration = time.Duration(multiplier) * 365 * day
	}

	// The value is an age, so ">7d" means modified before the cutoff
	if matches[1] == ">" {
		return duration, OperatorLessThan, nil
	}
	return duration, OperatorGreaterThan, nil
}

// unquote removes quotes from a string if present
func (p *Parser) unquote(s string) string {
	if matches := p.quotedPattern.FindStringSubmatch(s); len(matches) == 2 {
		return matches[1]
	}
	return s
}

// WantsArchived reports whether the query asks for archived posts
func (q *Query) WantsArchived() bool {
	for _, c := range q.Conditions {
		if c.Field == FieldStatus && c.Value == "archived" && !c.Negate {
			return true
		}
	}
	return false
}
