package ruleset

import (
	"fmt"
	"regexp"
	"strings"
)

// parseLegacyPHPConfig extracts a RuleSetConfig from a guardrail.php /
// guardrail.config.php file of the conventional shape:
//
//	<?php
//	return [
//	    'paths' => ['src'],
//	    'excludes' => ['vendor/*'],
//	    'rules' => [
//	        [
//	            'name' => 'payment-requires-auth',
//	            'entry' => ['class' => 'App\\Controller\\PaymentController', 'method' => 'charge'],
//	            'requires' => ['App\\Auth\\Guard::authorize'],
//	            'pairs' => [
//	                ['trigger' => 'App\\DB\\Connection::beginTransaction',
//	                 'completions' => ['App\\DB\\Connection::commit', 'App\\DB\\Connection::rollback']],
//	            ],
//	            'message' => 'Payment charge must be authorized',
//	        ],
//	    ],
//	];
//
// This is a conservative array-literal extractor, not a full PHP parse: it
// understands nested `[...]` arrays, `'key' => value` pairs,
// single/double-quoted strings, and barewords, which are kept as their
// literal text (constants are not resolved). Concatenation and heredocs are
// not understood: such input either fails to parse or yields its raw
// tokens as separate values. Callers should treat the legacy format as
// deprecated and prefer YAML.
func parseLegacyPHPConfig(source []byte) (*RuleSetConfig, error) {
	body, err := extractReturnExpression(string(source))
	if err != nil {
		return nil, err
	}

	value, _, err := parsePHPArrayLiteral(body, 0)
	if err != nil {
		return nil, err
	}

	root, ok := value.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("legacy config root must be an associative array")
	}

	cfg := &RuleSetConfig{
		Paths:    stringList(root["paths"]),
		Excludes: stringList(root["excludes"]),
	}

	rawRules, _ := root["rules"].([]any)
	for _, rr := range rawRules {
		rm, ok := rr.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("legacy config: each rule must be an associative array")
		}
		cfg.Rules = append(cfg.Rules, RuleConfig{
			Name:     stringVal(rm["name"]),
			Entry:    entryFromMap(rm["entry"]),
			Requires: stringList(rm["requires"]),
			Pairs:    pairsFromList(rm["pairs"]),
			Message:  stringVal(rm["message"]),
		})
	}

	return cfg, nil
}

var returnPattern = regexp.MustCompile(`(?s)return\s*(.*?);\s*(?:\?>)?\s*$`)

// extractReturnExpression strips the leading `<?php` tag and trailing `;`
// from a `return [...]` statement, leaving just the array-literal text.
func extractReturnExpression(source string) (string, error) {
	m := returnPattern.FindStringSubmatch(source)
	if m == nil {
		return "", fmt.Errorf("expected a single `return [...];` statement")
	}
	return strings.TrimSpace(m[1]), nil
}

func entryFromMap(v any) EntryConfig {
	m, _ := v.(map[string]any)
	return EntryConfig{Class: stringVal(m["class"]), Method: stringVal(m["method"])}
}

func pairsFromList(v any) []PairConfig {
	list, _ := v.([]any)
	pairs := make([]PairConfig, 0, len(list))
	for _, item := range list {
		m, ok := item.(map[string]any)
		if !ok {
			continue
		}
		pairs = append(pairs, PairConfig{
			Trigger:     stringVal(m["trigger"]),
			Completions: stringList(m["completions"]),
			Message:     stringVal(m["message"]),
		})
	}
	return pairs
}

func stringVal(v any) string {
	s, _ := v.(string)
	return s
}

func stringList(v any) []string {
	list, _ := v.([]any)
	out := make([]string, 0, len(list))
	for _, item := range list {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// parsePHPArrayLiteral parses a value starting at pos in s: a short-array
// literal `[...]`, a single- or double-quoted string, or a bareword
// (returned as a string). Returns the parsed value, the position just past
// it, and an error.
func parsePHPArrayLiteral(s string, pos int) (any, int, error) {
	pos = skipSpace(s, pos)
	if pos >= len(s) {
		return nil, pos, fmt.Errorf("unexpected end of input")
	}

	switch s[pos] {
	case '[':
		return parseArray(s, pos)
	case '\'', '"':
		return parseString(s, pos)
	default:
		return parseBareword(s, pos)
	}
}

func parseArray(s string, pos int) (any, int, error) {
	pos++ // consume '['
	var list []any
	assoc := make(map[string]any)
	isAssoc := false

	for {
		pos = skipSpace(s, pos)
		if pos >= len(s) {
			return nil, pos, fmt.Errorf("unterminated array literal")
		}
		if s[pos] == ']' {
			pos++
			break
		}

		keyOrVal, next, err := parsePHPArrayLiteral(s, pos)
		if err != nil {
			return nil, next, err
		}
		pos = skipSpace(s, next)

		if strings.HasPrefix(s[pos:], "=>") {
			isAssoc = true
			pos = skipSpace(s, pos+2)
			val, next2, err := parsePHPArrayLiteral(s, pos)
			if err != nil {
				return nil, next2, err
			}
			key, _ := keyOrVal.(string)
			assoc[key] = val
			pos = next2
		} else {
			list = append(list, keyOrVal)
		}

		pos = skipSpace(s, pos)
		if pos < len(s) && s[pos] == ',' {
			pos++
			continue
		}
		if pos < len(s) && s[pos] == ']' {
			pos++
			break
		}
		if pos >= len(s) {
			return nil, pos, fmt.Errorf("unterminated array literal")
		}
	}

	if isAssoc {
		return assoc, pos, nil
	}
	if list == nil {
		list = []any{}
	}
	return list, pos, nil
}

func parseString(s string, pos int) (any, int, error) {
	quote := s[pos]
	pos++
	start := pos
	for pos < len(s) {
		if s[pos] == '\\' && pos+1 < len(s) {
			pos += 2
			continue
		}
		if s[pos] == quote {
			value := strings.ReplaceAll(s[start:pos], "\\"+string(quote), string(quote))
			value = strings.ReplaceAll(value, "\\\\", "\\")
			return value, pos + 1, nil
		}
		pos++
	}
	return nil, pos, fmt.Errorf("unterminated string literal")
}

// parseBareword consumes a token up to the next delimiter and returns it
// verbatim; used for bare constants (e.g. PHP_EOL) that this extractor does
// not resolve, only passes through as their literal text.
func parseBareword(s string, pos int) (any, int, error) {
	start := pos
	for pos < len(s) && !strings.ContainsRune(",]=>", rune(s[pos])) && s[pos] != ' ' && s[pos] != '\n' && s[pos] != '\t' {
		pos++
	}
	if pos == start {
		return nil, pos, fmt.Errorf("unexpected character %q", s[pos])
	}
	return s[start:pos], pos, nil
}

func skipSpace(s string, pos int) int {
	for pos < len(s) {
		switch s[pos] {
		case ' ', '\t', '\n', '\r':
			pos++
			continue
		}
		if strings.HasPrefix(s[pos:], "//") {
			if i := strings.IndexByte(s[pos:], '\n'); i >= 0 {
				pos += i + 1
				continue
			}
			return len(s)
		}
		break
	}
	return pos
}
