package llmchat

import (
	"encoding/json"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/FACorreiaa/wanderai/internal/app/models"
)

var (
	jsonFence = regexp.MustCompile("(?i)```json\\s*")
	bareFence = regexp.MustCompile("```\\s*")
)

const maxRawInError = 200

// ParseError reports model output that did not contain a usable JSON payload.
// It matches models.ErrParse with errors.Is.
type ParseError struct {
	Raw string
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse model response: %v", e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

func (e *ParseError) Is(target error) bool { return target == models.ErrParse }

func newParseError(raw string, err error) *ParseError {
	if len(raw) > maxRawInError {
		cut := maxRawInError
		for cut > 0 && !utf8.RuneStart(raw[cut]) {
			cut--
		}
		raw = raw[:cut] + "..."
	}
	return &ParseError{Raw: raw, Err: err}
}

// ExtractJSON recovers a JSON object or array from free-form model text.
// Markdown fences are removed anywhere in the text, then the payload is cut
// from the first opening bracket to the last matching closer. Whichever of
// { or [ appears first is tried first; when that slice does not parse the
// other pair is tried.
func ExtractJSON(text string) (json.RawMessage, error) {
	return extract(text, 0)
}

// Extract recovers a JSON payload from text and decodes it into T. Slice and
// array targets look for [ ] first, struct and map targets for { }, so
// bracketed prose ahead of the payload does not win.
func Extract[T any](text string) (T, error) {
	var out T
	raw, err := extract(text, openerFor(reflect.TypeFor[T]()))
	if err != nil {
		return out, err
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return out, newParseError(text, err)
	}
	return out, nil
}

func extract(text string, prefer byte) (json.RawMessage, error) {
	cleaned := jsonFence.ReplaceAllString(text, "")
	cleaned = bareFence.ReplaceAllString(cleaned, "")
	cleaned = strings.TrimSpace(cleaned)

	var firstErr error
	for _, open := range openers(cleaned, prefer) {
		raw, err := parsePayload(sliceBetween(cleaned, open))
		if err == nil {
			return raw, nil
		}
		if firstErr == nil {
			firstErr = err
		}
	}
	if firstErr == nil {
		_, firstErr = parsePayload(cleaned)
	}
	return nil, newParseError(text, firstErr)
}

// openers lists the opening brackets present in s in the order they are
// tried: prefer first when set, otherwise by first appearance.
func openers(s string, prefer byte) []byte {
	obj := strings.IndexByte(s, '{')
	arr := strings.IndexByte(s, '[')

	var order []byte
	switch {
	case prefer == '{' || prefer == '[':
		order = []byte{prefer, other(prefer)}
	case arr == -1 || (obj != -1 && obj < arr):
		order = []byte{'{', '['}
	default:
		order = []byte{'[', '{'}
	}

	out := order[:0]
	for _, b := range order {
		if strings.IndexByte(s, b) != -1 {
			out = append(out, b)
		}
	}
	return out
}

func other(open byte) byte {
	if open == '{' {
		return '['
	}
	return '{'
}

// sliceBetween cuts s from the first open to the last matching closer. When
// the closer is missing s is returned unchanged.
func sliceBetween(s string, open byte) string {
	closer := byte('}')
	if open == '[' {
		closer = ']'
	}
	first := strings.IndexByte(s, open)
	if last := strings.LastIndexByte(s, closer); last > first {
		return s[first : last+1]
	}
	return s
}

func parsePayload(s string) (json.RawMessage, error) {
	if s == "" || (s[0] != '{' && s[0] != '[') {
		return nil, fmt.Errorf("no JSON object or array found")
	}
	var raw json.RawMessage
	if err := json.Unmarshal([]byte(s), &raw); err != nil {
		return nil, err
	}
	return raw, nil
}

func openerFor(t reflect.Type) byte {
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == nil {
		return 0
	}
	switch t.Kind() {
	case reflect.Slice, reflect.Array:
		return '['
	case reflect.Struct, reflect.Map:
		return '{'
	default:
		return 0
	}
}
