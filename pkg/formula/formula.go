// Package formula evaluates the arithmetic expressions attached to derived
// fields. A formula combines numeric literals and references to other fields
// with + - * / and parentheses. References are bare identifiers (letters,
// digits, underscore) or, for ids containing other characters, bracketed:
// `[price] * [quantity]`.
package formula

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Expr is a parsed formula ready to evaluate against a values map.
type Expr struct {
	root   node
	idents []string
}

// Parse tokenizes and parses a formula. An empty formula is an error: derived
// fields without an expression have nothing to compute.
func Parse(src string) (*Expr, error) {
	trimmed := strings.TrimSpace(src)
	if trimmed == "" {
		return nil, errors.New("formula: expression is empty")
	}

	tokens, err := tokenize(trimmed)
	if err != nil {
		return nil, err
	}

	stream := &tokenStream{tokens: tokens}
	root, err := parseSum(stream)
	if err != nil {
		return nil, err
	}
	if stream.pos < len(stream.tokens) {
		return nil, fmt.Errorf("formula: unexpected token %q", stream.tokens[stream.pos].raw)
	}

	seen := make(map[string]struct{})
	collectIdentifiers(root, seen)
	idents := make([]string, 0, len(seen))
	for ident := range seen {
		idents = append(idents, ident)
	}
	sort.Strings(idents)

	return &Expr{root: root, idents: idents}, nil
}

// Identifiers returns the sorted set of field references the formula reads.
func (e *Expr) Identifiers() []string {
	if e == nil {
		return nil
	}
	return append([]string(nil), e.idents...)
}

// Eval computes the formula over the supplied values. Missing or non-numeric
// references count as zero so partially filled forms still produce a value.
func (e *Expr) Eval(values map[string]any) (float64, error) {
	if e == nil || e.root == nil {
		return 0, errors.New("formula: expression is nil")
	}
	return e.root.eval(values)
}

// Eval parses and evaluates src in one step.
func Eval(src string, values map[string]any) (float64, error) {
	expr, err := Parse(src)
	if err != nil {
		return 0, err
	}
	return expr.Eval(values)
}

type tokenKind int

const (
	tokenNumber tokenKind = iota
	tokenIdentifier
	tokenPlus
	tokenMinus
	tokenStar
	tokenSlash
	tokenLParen
	tokenRParen
)

type token struct {
	kind tokenKind
	raw  string
}

func tokenize(input string) ([]token, error) {
	var tokens []token
	i := 0

	for i < len(input) {
		ch := input[i]
		switch {
		case ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r':
			i++
		case ch == '+':
			tokens = append(tokens, token{kind: tokenPlus, raw: "+"})
			i++
		case ch == '-':
			tokens = append(tokens, token{kind: tokenMinus, raw: "-"})
			i++
		case ch == '*':
			tokens = append(tokens, token{kind: tokenStar, raw: "*"})
			i++
		case ch == '/':
			tokens = append(tokens, token{kind: tokenSlash, raw: "/"})
			i++
		case ch == '(':
			tokens = append(tokens, token{kind: tokenLParen, raw: "("})
			i++
		case ch == ')':
			tokens = append(tokens, token{kind: tokenRParen, raw: ")"})
			i++
		case ch == '[':
			end := strings.IndexByte(input[i:], ']')
			if end < 0 {
				return nil, errors.New("formula: unterminated '[' reference")
			}
			ref := strings.TrimSpace(input[i+1 : i+end])
			if ref == "" {
				return nil, errors.New("formula: empty '[]' reference")
			}
			tokens = append(tokens, token{kind: tokenIdentifier, raw: ref})
			i += end + 1
		case ch >= '0' && ch <= '9' || ch == '.':
			start := i
			for i < len(input) && (input[i] >= '0' && input[i] <= '9' || input[i] == '.') {
				i++
			}
			raw := input[start:i]
			if _, err := strconv.ParseFloat(raw, 64); err != nil {
				return nil, fmt.Errorf("formula: invalid number %q", raw)
			}
			tokens = append(tokens, token{kind: tokenNumber, raw: raw})
		case isIdentByte(ch):
			start := i
			for i < len(input) && (isIdentByte(input[i]) || input[i] >= '0' && input[i] <= '9') {
				i++
			}
			tokens = append(tokens, token{kind: tokenIdentifier, raw: input[start:i]})
		default:
			return nil, fmt.Errorf("formula: unexpected character %q", string(ch))
		}
	}

	return tokens, nil
}

func isIdentByte(ch byte) bool {
	return ch >= 'a' && ch <= 'z' || ch >= 'A' && ch <= 'Z' || ch == '_'
}

type node interface {
	eval(values map[string]any) (float64, error)
}

type binaryNode struct {
	op          tokenKind
	left, right node
}

func (n binaryNode) eval(values map[string]any) (float64, error) {
	left, err := n.left.eval(values)
	if err != nil {
		return 0, err
	}
	right, err := n.right.eval(values)
	if err != nil {
		return 0, err
	}
	switch n.op {
	case tokenPlus:
		return left + right, nil
	case tokenMinus:
		return left - right, nil
	case tokenStar:
		return left * right, nil
	case tokenSlash:
		if right == 0 {
			return 0, errors.New("formula: division by zero")
		}
		return left / right, nil
	default:
		return 0, fmt.Errorf("formula: unsupported operator")
	}
}

type negateNode struct {
	inner node
}

func (n negateNode) eval(values map[string]any) (float64, error) {
	value, err := n.inner.eval(values)
	if err != nil {
		return 0, err
	}
	return -value, nil
}

type literalNode struct {
	value float64
}

func (n literalNode) eval(map[string]any) (float64, error) {
	return n.value, nil
}

type identifierNode struct {
	name string
}

func (n identifierNode) eval(values map[string]any) (float64, error) {
	value, ok := values[n.name]
	if !ok {
		return 0, nil
	}
	parsed, ok := coerceNumber(value)
	if !ok {
		return 0, nil
	}
	return parsed, nil
}

type tokenStream struct {
	tokens []token
	pos    int
}

func (s *tokenStream) match(kinds ...tokenKind) (token, bool) {
	if s.pos >= len(s.tokens) {
		return token{}, false
	}
	for _, kind := range kinds {
		if s.tokens[s.pos].kind == kind {
			out := s.tokens[s.pos]
			s.pos++
			return out, true
		}
	}
	return token{}, false
}

func parseSum(stream *tokenStream) (node, error) {
	left, err := parseProduct(stream)
	if err != nil {
		return nil, err
	}
	for {
		op, ok := stream.match(tokenPlus, tokenMinus)
		if !ok {
			return left, nil
		}
		right, err := parseProduct(stream)
		if err != nil {
			return nil, err
		}
		left = binaryNode{op: op.kind, left: left, right: right}
	}
}

func parseProduct(stream *tokenStream) (node, error) {
	left, err := parseUnary(stream)
	if err != nil {
		return nil, err
	}
	for {
		op, ok := stream.match(tokenStar, tokenSlash)
		if !ok {
			return left, nil
		}
		right, err := parseUnary(stream)
		if err != nil {
			return nil, err
		}
		left = binaryNode{op: op.kind, left: left, right: right}
	}
}

func parseUnary(stream *tokenStream) (node, error) {
	if _, ok := stream.match(tokenMinus); ok {
		inner, err := parseUnary(stream)
		if err != nil {
			return nil, err
		}
		return negateNode{inner: inner}, nil
	}
	if _, ok := stream.match(tokenPlus); ok {
		return parseUnary(stream)
	}
	return parsePrimary(stream)
}

func parsePrimary(stream *tokenStream) (node, error) {
	if _, ok := stream.match(tokenLParen); ok {
		inner, err := parseSum(stream)
		if err != nil {
			return nil, err
		}
		if _, ok := stream.match(tokenRParen); !ok {
			return nil, errors.New("formula: missing closing ')'")
		}
		return inner, nil
	}
	if tok, ok := stream.match(tokenNumber); ok {
		value, err := strconv.ParseFloat(tok.raw, 64)
		if err != nil {
			return nil, fmt.Errorf("formula: invalid number %q", tok.raw)
		}
		return literalNode{value: value}, nil
	}
	if tok, ok := stream.match(tokenIdentifier); ok {
		return identifierNode{name: tok.raw}, nil
	}
	if stream.pos >= len(stream.tokens) {
		return nil, errors.New("formula: unexpected end of expression")
	}
	return nil, fmt.Errorf("formula: unexpected token %q", stream.tokens[stream.pos].raw)
}

func collectIdentifiers(n node, dest map[string]struct{}) {
	switch typed := n.(type) {
	case binaryNode:
		collectIdentifiers(typed.left, dest)
		collectIdentifiers(typed.right, dest)
	case negateNode:
		collectIdentifiers(typed.inner, dest)
	case identifierNode:
		dest[typed.name] = struct{}{}
	}
}

func coerceNumber(value any) (float64, bool) {
	switch typed := value.(type) {
	case float64:
		return typed, true
	case float32:
		return float64(typed), true
	case int:
		return float64(typed), true
	case int32:
		return float64(typed), true
	case int64:
		return float64(typed), true
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(typed), 64)
		return parsed, err == nil
	default:
		return 0, false
	}
}
