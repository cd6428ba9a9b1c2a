package typetree

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// ErrParse marks signature text the default parser cannot classify.
// The Decomposer never propagates it; an unclassifiable signature
// becomes a leaf node with ParseFailed set.
var ErrParse = errors.New("typetree: unclassifiable signature")

// signatureParser is the default ShapeParser for the analyzer's textual
// signature grammar: object literals `{ a: string, b?: T }`, suffix and
// generic arrays `T[]` / `Array<T>`, unions `A | B`, parenthesized
// groups, quoted literal types, `/** doc */` member comments and
// `= value` member defaults.
type signatureParser struct{}

// NewSignatureParser returns the default textual ShapeParser.
func NewSignatureParser() ShapeParser { return signatureParser{} }

var _ ShapeParser = signatureParser{}

var primitiveNames = map[string]bool{
	"string":    true,
	"number":    true,
	"boolean":   true,
	"bigint":    true,
	"symbol":    true,
	"object":    true,
	"null":      true,
	"undefined": true,
	"void":      true,
	"any":       true,
	"unknown":   true,
	"never":     true,
}

func (signatureParser) Parse(signature string) (Shape, error) {
	s := strings.TrimSpace(signature)
	if s == "" {
		return Shape{}, fmt.Errorf("%w: empty signature", ErrParse)
	}
	if err := checkBalanced(s); err != nil {
		return Shape{}, err
	}
	return parseSignature(s)
}

func parseSignature(s string) (Shape, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Shape{}, fmt.Errorf("%w: empty signature", ErrParse)
	}

	// Unions bind loosest, so split on them first.
	if parts := splitTop(s, '|'); len(parts) > 1 {
		variants := make([]string, 0, len(parts))
		for _, p := range parts {
			p = strings.TrimSpace(p)
			if p == "" {
				return Shape{}, fmt.Errorf("%w: empty union variant in %q", ErrParse, s)
			}
			variants = append(variants, p)
		}
		return Shape{Kind: KindUnion, Variants: variants}, nil
	}

	if strings.HasSuffix(s, "[]") {
		elem := strings.TrimSpace(strings.TrimSuffix(s, "[]"))
		if elem == "" {
			return Shape{}, fmt.Errorf("%w: array without element type", ErrParse)
		}
		return Shape{Kind: KindArray, Element: elem}, nil
	}

	if strings.HasPrefix(s, "Array<") && strings.HasSuffix(s, ">") {
		elem := strings.TrimSpace(s[len("Array<") : len(s)-1])
		if elem == "" {
			return Shape{}, fmt.Errorf("%w: array without element type", ErrParse)
		}
		return Shape{Kind: KindArray, Element: elem}, nil
	}

	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") && wrapsWhole(s, '(', ')') {
		return parseSignature(s[1 : len(s)-1])
	}

	if strings.HasPrefix(s, "{") {
		if !strings.HasSuffix(s, "}") || !wrapsWhole(s, '{', '}') {
			return Shape{}, fmt.Errorf("%w: malformed object literal %q", ErrParse, s)
		}
		return parseObject(s[1 : len(s)-1])
	}

	if isLiteral(s) || primitiveNames[s] {
		return Shape{Kind: KindPrimitive}, nil
	}

	if isReference(s) {
		// A named reference. The textual parser has no symbol table to
		// chase the alias target through; the toolchain-backed parser
		// fills Shape.Target when it knows the definition.
		return Shape{Kind: KindAlias}, nil
	}

	return Shape{}, fmt.Errorf("%w: %q", ErrParse, s)
}

func parseObject(inner string) (Shape, error) {
	shape := Shape{Kind: KindObject}
	for _, raw := range splitTop(inner, ',', ';') {
		if strings.TrimSpace(raw) == "" {
			continue
		}
		m, err := parseMember(raw)
		if err != nil {
			return Shape{}, err
		}
		shape.Members = append(shape.Members, m)
	}
	return shape, nil
}

func parseMember(text string) (Member, error) {
	var m Member
	t := strings.TrimSpace(text)

	if strings.HasPrefix(t, "/**") {
		end := strings.Index(t, "*/")
		if end < 0 {
			return m, fmt.Errorf("%w: unterminated doc comment in %q", ErrParse, text)
		}
		doc := strings.Join(strings.Fields(strings.ReplaceAll(t[3:end], "*", " ")), " ")
		t = strings.TrimSpace(t[end+2:])
		if strings.Contains(doc, "@deprecated") {
			m.Deprecated = true
			doc = strings.Join(strings.Fields(strings.ReplaceAll(doc, "@deprecated", " ")), " ")
		}
		m.Description = doc
	}

	colon := indexTop(t, ':')
	if colon <= 0 {
		return m, fmt.Errorf("%w: member %q has no type annotation", ErrParse, text)
	}
	name := strings.TrimSpace(t[:colon])
	rest := strings.TrimSpace(t[colon+1:])

	if strings.HasSuffix(name, "?") {
		m.Optional = true
		name = strings.TrimSpace(strings.TrimSuffix(name, "?"))
	}
	if name == "" {
		return m, fmt.Errorf("%w: member %q has no name", ErrParse, text)
	}
	m.Name = unquote(name)

	if eq := indexDefault(rest); eq >= 0 {
		m.Default = strings.TrimSpace(rest[eq+1:])
		rest = strings.TrimSpace(rest[:eq])
	}
	if rest == "" {
		return m, fmt.Errorf("%w: member %q has an empty type annotation", ErrParse, text)
	}
	m.Signature = rest
	return m, nil
}

// splitTop splits s on any of the separator runes appearing outside
// brackets and quotes.
func splitTop(s string, seps ...rune) []string {
	isSep := func(r rune) bool {
		for _, sep := range seps {
			if r == sep {
				return true
			}
		}
		return false
	}

	var parts []string
	var depth, angle int
	var quote rune
	start := 0
	for i, r := range s {
		if quote != 0 {
			if r == quote {
				quote = 0
			}
			continue
		}
		switch r {
		case '\'', '"', '`':
			quote = r
		case '{', '[', '(':
			depth++
		case '}', ']', ')':
			depth--
		case '<':
			angle++
		case '>':
			if angle > 0 {
				angle--
			}
		default:
			if depth == 0 && angle == 0 && isSep(r) {
				parts = append(parts, s[start:i])
				start = i + 1
			}
		}
	}
	return append(parts, s[start:])
}

// indexTop returns the first occurrence of sep outside brackets and
// quotes, or -1.
func indexTop(s string, sep rune) int {
	var depth, angle int
	var quote rune
	for i, r := range s {
		if quote != 0 {
			if r == quote {
				quote = 0
			}
			continue
		}
		switch r {
		case '\'', '"', '`':
			quote = r
		case '{', '[', '(':
			depth++
		case '}', ']', ')':
			depth--
		case '<':
			angle++
		case '>':
			if angle > 0 {
				angle--
			}
		default:
			if depth == 0 && angle == 0 && r == sep {
				return i
			}
		}
	}
	return -1
}

// indexDefault finds a top-level '=' introducing a member default,
// skipping the arrow in function annotations like `() => void`.
func indexDefault(s string) int {
	bytes := []byte(s)
	var depth, angle int
	var quote byte
	for i := 0; i < len(bytes); i++ {
		c := bytes[i]
		if quote != 0 {
			if c == quote {
				quote = 0
			}
			continue
		}
		switch c {
		case '\'', '"', '`':
			quote = c
		case '{', '[', '(':
			depth++
		case '}', ']', ')':
			depth--
		case '<':
			angle++
		case '>':
			if angle > 0 {
				angle--
			}
		case '=':
			if depth == 0 && angle == 0 && (i+1 >= len(bytes) || bytes[i+1] != '>') {
				return i
			}
		}
	}
	return -1
}

// checkBalanced verifies brackets pair up and quotes terminate. Angle
// brackets are deliberately lenient: a bare '>' also appears in arrow
// annotations.
func checkBalanced(s string) error {
	var curly, square, paren int
	var quote rune
	for _, r := range s {
		if quote != 0 {
			if r == quote {
				quote = 0
			}
			continue
		}
		switch r {
		case '\'', '"', '`':
			quote = r
		case '{':
			curly++
		case '}':
			curly--
		case '[':
			square++
		case ']':
			square--
		case '(':
			paren++
		case ')':
			paren--
		}
		if curly < 0 || square < 0 || paren < 0 {
			return fmt.Errorf("%w: unbalanced brackets in %q", ErrParse, s)
		}
	}
	if quote != 0 {
		return fmt.Errorf("%w: unterminated quote in %q", ErrParse, s)
	}
	if curly != 0 || square != 0 || paren != 0 {
		return fmt.Errorf("%w: unbalanced brackets in %q", ErrParse, s)
	}
	return nil
}

// wrapsWhole reports whether the bracket at position 0 pairs with the
// bracket at the final position, i.e. the whole string is one group.
func wrapsWhole(s string, open, close rune) bool {
	depth := 0
	var quote rune
	for i, r := range s {
		if quote != 0 {
			if r == quote {
				quote = 0
			}
			continue
		}
		switch r {
		case '\'', '"', '`':
			quote = r
		case open:
			depth++
		case close:
			depth--
			if depth == 0 {
				return i == len(s)-1
			}
		}
	}
	return false
}

func isLiteral(s string) bool {
	if len(s) >= 2 {
		first := s[0]
		if (first == '\'' || first == '"' || first == '`') && s[len(s)-1] == first {
			return true
		}
	}
	if s == "true" || s == "false" {
		return true
	}
	if _, err := strconv.ParseFloat(s, 64); err == nil {
		return true
	}
	return false
}

func isReference(s string) bool {
	base := s
	if i := strings.IndexByte(s, '<'); i > 0 {
		if !strings.HasSuffix(s, ">") {
			return false
		}
		base = s[:i]
	} else if strings.ContainsAny(s, "<>") {
		return false
	}
	for i, r := range base {
		if r == '_' || r == '$' || unicode.IsLetter(r) {
			continue
		}
		if i > 0 && (r == '.' || unicode.IsDigit(r)) {
			continue
		}
		return false
	}
	return base != ""
}

func unquote(s string) string {
	if len(s) >= 2 {
		first := s[0]
		if (first == '\'' || first == '"' || first == '`') && s[len(s)-1] == first {
			return s[1 : len(s)-1]
		}
	}
	return s
}
