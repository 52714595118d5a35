// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/winpath

package winpath

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Regexp fragments emitted for wildcards and separators.
const (
	exprStar      = `[^\\/]*`
	exprQuestion  = `[^\\/]`
	exprSeparator = `[\\/]`
	exprDot       = `^\.$`
)

// tokenRE recognizes one pattern unit. Alternatives are tried in order, so a
// range wins over the escapes it contains and escapes win over literal text.
var tokenRE = regexp.MustCompile(`(?s)` +
	`(?P<range>\[(?P<neg>\^?)(?P<lo>\\.|\\u[0-9a-fA-F]{4}|.)-(?P<hi>\\.|\\u[0-9a-fA-F]{4}|.)\])` +
	`|(?P<backslash>\\\\)` +
	`|(?P<slash>/)` +
	`|(?P<star>\*)` +
	`|(?P<question>\?)` +
	`|(?P<open>\\\[)` +
	`|(?P<close>\\\])` +
	`|(?P<unicode>\\u[0-9a-fA-F]{4})` +
	`|(?P<text>[^\\/\[\]?*]+)` +
	`|(?P<char>\\u[0-9a-fA-F]{4}|[^\[\]\\]|\\.)`)

var (
	tokenGroups = tokenRE.SubexpNames()
	groupNeg    = tokenRE.SubexpIndex("neg")
	groupLo     = tokenRE.SubexpIndex("lo")
	groupHi     = tokenRE.SubexpIndex("hi")
	dotRE       = regexp.MustCompile(exprDot)
)

// RangeCheck selects how strictly character ranges are validated.
type RangeCheck uint8

const (
	// RangeCheckLenient rejects only ranges made of invalid characters alone.
	RangeCheckLenient RangeCheck = iota
	// RangeCheckStrict rejects any range that covers an invalid file name
	// character and any range bound that is not a valid escape.
	RangeCheckStrict
)

// String returns the configuration spelling of the mode.
func (c RangeCheck) String() string {
	if c == RangeCheckStrict {
		return "strict"
	}

	return "lenient"
}

// ParseRangeCheck parses "lenient" or "strict".
func ParseRangeCheck(s string) (RangeCheck, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "lenient":
		return RangeCheckLenient, nil
	case "strict":
		return RangeCheckStrict, nil
	}

	return RangeCheckLenient, fmt.Errorf("%w: range check %q", ErrInvalidArgument, s)
}

// CompileOptions controls pattern compilation.
type CompileOptions struct {
	// RangeCheck selects range validation strictness.
	RangeCheck RangeCheck `json:"range_check,omitempty" yaml:"range_check,omitempty"`
	// IgnoreCase makes the matcher case-insensitive. Expr is unaffected.
	IgnoreCase bool `json:"ignore_case,omitempty" yaml:"ignore_case,omitempty"`
}

// TokenKind tags a Token.
type TokenKind uint8

const (
	// TokenLiteral is a run of literal characters.
	TokenLiteral TokenKind = iota
	// TokenStar matches any run of non-separator characters.
	TokenStar
	// TokenQuestion matches one non-separator character.
	TokenQuestion
	// TokenEscaped is one escaped literal character.
	TokenEscaped
	// TokenRange matches one character in Low..High, or outside it when Negated.
	TokenRange
	// TokenSeparator matches either path separator.
	TokenSeparator
)

// Token is one unit of a compiled pattern.
type Token struct {
	// Kind is the token variant.
	Kind TokenKind `json:"kind"`
	// Text is the source text of the token.
	Text string `json:"text"`
	// Offset is the byte offset of Text in the pattern.
	Offset int `json:"offset"`
	// Char is the decoded character of TokenEscaped and TokenSeparator.
	Char rune `json:"char,omitempty"`
	// Low and High are the inclusive bounds of TokenRange.
	Low  rune `json:"low,omitempty"`
	High rune `json:"high,omitempty"`
	// Negated inverts TokenRange.
	Negated bool `json:"negated,omitempty"`
}

// Pattern is a compiled glob pattern.
type Pattern struct {
	re     *regexp.Regexp
	source string
	expr   string
	filter string
	tokens []Token
}

// String returns the source pattern.
func (p *Pattern) String() string {
	return p.source
}

// Expr returns the anchored regular expression the pattern compiles to.
func (p *Pattern) Expr() string {
	return p.expr
}

// Filter returns the coarse native enumeration filter.
func (p *Pattern) Filter() string {
	return p.filter
}

// Tokens returns a copy of the token sequence.
func (p *Pattern) Tokens() []Token {
	out := make([]Token, len(p.tokens))
	copy(out, p.tokens)
	return out
}

// MatchString reports whether name matches the whole pattern.
func (p *Pattern) MatchString(name string) bool {
	return p.re.MatchString(name)
}

// MustCompile is like Compile but panics on error.
func MustCompile(pattern string, opts CompileOptions) *Pattern {
	p, err := Compile(pattern, opts)
	if err != nil {
		panic(err)
	}

	return p
}

// Compile parses pattern into a matcher and a native filter.
//
// Grammar: literal text, `*`, `?`, `[lo-hi]` and `[^lo-hi]`, `\` followed by
// one character or `\uXXXX`, and `\\` or `/` as path separators. Every unit
// is validated as it is read; the first problem is returned as *PatternError.
// The empty pattern matches only ".".
func Compile(pattern string, opts CompileOptions) (*Pattern, error) {
	if pattern == "" {
		return &Pattern{re: dotRE, expr: exprDot, filter: "*"}, nil
	}

	c := compiler{src: pattern, opts: opts}
	c.expr.WriteByte('^')

	for i := 0; i < len(pattern); {
		loc := tokenRE.FindStringSubmatchIndex(pattern[i:])
		if loc == nil {
			r, _ := utf8.DecodeRuneInString(pattern[i:])
			return nil, c.fail(PatternNoMatch, r, i, "", "")
		}

		for j := range loc {
			if loc[j] >= 0 {
				loc[j] += i
			}
		}

		if loc[0] > i {
			if err := c.literal(pattern[i:loc[0]], i); err != nil {
				return nil, err
			}
		}

		if err := c.unit(loc); err != nil {
			return nil, err
		}

		i = loc[1]
	}

	c.expr.WriteByte('$')
	expr := c.expr.String()
	flags := ""
	if opts.IgnoreCase {
		flags = "(?i)"
	}

	re, err := regexp.Compile(flags + expr)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrBadPattern, pattern, err)
	}

	return &Pattern{
		re:     re,
		source: pattern,
		expr:   expr,
		filter: c.filter.String(),
		tokens: c.tokens,
	}, nil
}

// compiler holds the state of one Compile call.
type compiler struct {
	src    string
	tokens []Token
	expr   strings.Builder
	filter strings.Builder
	opts   CompileOptions
}

// unit dispatches one token match.
func (c *compiler) unit(loc []int) error {
	group := ""
	for g := 1; g < len(tokenGroups); g++ {
		if loc[2*g] >= 0 {
			group = tokenGroups[g]
			break
		}
	}

	start, end := loc[0], loc[1]
	text := c.src[start:end]

	switch group {
	case "range":
		return c.charRange(loc, text)
	case "backslash", "slash":
		sep := rune(text[len(text)-1])
		c.emit(Token{Kind: TokenSeparator, Text: text, Offset: start, Char: sep}, `\`, exprSeparator)
	case "star":
		c.tokens = append(c.tokens, Token{Kind: TokenStar, Text: text, Offset: start})
		if f := c.filter.String(); !strings.HasSuffix(f, "*") {
			c.filter.WriteByte('*')
		}
		c.expr.WriteString(exprStar)
	case "question":
		c.emit(Token{Kind: TokenQuestion, Text: text, Offset: start}, "?", exprQuestion)
	case "open", "close":
		r := rune(text[1])
		c.emit(Token{Kind: TokenEscaped, Text: text, Offset: start, Char: r}, string(r), `\`+string(r))
	case "unicode", "char":
		return c.escape(text, start, group)
	case "text":
		return c.literal(text, start)
	}

	return nil
}

// emit records a token and its two renderings.
func (c *compiler) emit(tok Token, filter, expr string) {
	c.tokens = append(c.tokens, tok)
	c.filter.WriteString(filter)
	c.expr.WriteString(expr)
}

// literal validates and emits a run of unescaped text.
func (c *compiler) literal(text string, offset int) error {
	for j, r := range text {
		if r == utf8.RuneError {
			if _, size := utf8.DecodeRuneInString(text[j:]); size == 1 {
				return c.fail(PatternInvalidFileNameChar, r, offset+j, text, "text")
			}
		}

		if isInvalidPathChar(r) || r == '\\' || r == '*' || r == '?' {
			return c.fail(PatternInvalidFileNameChar, r, offset+j, text, "text")
		}
	}

	c.emit(Token{Kind: TokenLiteral, Text: text, Offset: offset}, text, regexp.QuoteMeta(text))
	return nil
}

// escape validates and emits `\c`, `\uXXXX` or a lone character.
func (c *compiler) escape(text string, offset int, group string) error {
	r, escaped := decodeChar(text)
	if !utf8.ValidRune(r) {
		return c.fail(PatternInvalidEscape, r, offset, text, group)
	}

	status := validateSingle(r)
	if escaped {
		status = validateEscape(r, false)
	}

	if status != 0 {
		return c.fail(status, r, offset, text, group)
	}

	if !escaped {
		s := string(r)
		c.emit(Token{Kind: TokenLiteral, Text: text, Offset: offset}, s, regexp.QuoteMeta(s))
		return nil
	}

	c.emit(Token{Kind: TokenEscaped, Text: text, Offset: offset, Char: r}, string(r), exprChar(r))
	return nil
}

// charRange validates and emits `[lo-hi]`.
func (c *compiler) charRange(loc []int, text string) error {
	start := loc[0]
	negated := loc[2*groupNeg+1] > loc[2*groupNeg]

	bounds := [2]rune{}
	for i, g := range [2]int{groupLo, groupHi} {
		off := loc[2*g]
		src := c.src[off:loc[2*g+1]]
		if !utf8.ValidString(src) {
			return c.fail(PatternInvalidRange, utf8.RuneError, off, text, "range")
		}

		r, escaped := decodeChar(src)
		if !utf8.ValidRune(r) {
			return c.fail(PatternInvalidRange, r, off, src, tokenGroups[g])
		}

		status := validateSingle(r)
		if escaped {
			status = validateEscape(r, true)
		}

		if status != 0 && c.opts.RangeCheck == RangeCheckStrict {
			return c.fail(status, r, off, src, tokenGroups[g])
		}

		bounds[i] = r
	}

	lo, hi := bounds[0], bounds[1]
	if lo > hi {
		return c.fail(PatternInvalidReverseRange, hi, start, text, "range")
	}

	if bad, ok := firstInvalidInRange(lo, hi); ok {
		if invalidRangeCoverage(lo, hi) {
			return c.fail(PatternInvalidRangeCoverage, lo, start, text, "range")
		}

		if c.opts.RangeCheck == RangeCheckStrict {
			return c.fail(PatternInvalidRangeCharacter, bad, start, text, "range")
		}
	}

	var expr strings.Builder
	expr.WriteByte('[')
	if negated {
		expr.WriteByte('^')
	}

	expr.WriteString(exprClassChar(lo))
	expr.WriteByte('-')
	expr.WriteString(exprClassChar(hi))
	expr.WriteByte(']')

	c.emit(Token{
		Kind:    TokenRange,
		Text:    text,
		Offset:  start,
		Low:     lo,
		High:    hi,
		Negated: negated,
	}, "?", expr.String())

	return nil
}

func (c *compiler) fail(status PatternStatus, r rune, offset int, match, group string) *PatternError {
	return &PatternError{
		Pattern: c.src,
		Status:  status,
		Char:    r,
		Offset:  offset,
		Match:   match,
		Group:   group,
	}
}

// decodeChar decodes `\uXXXX`, `\c` (with C-style control escapes) or a
// single character, reporting whether the input was an escape.
func decodeChar(s string) (rune, bool) {
	if len(s) == 6 && s[0] == '\\' && s[1] == 'u' {
		if v, err := strconv.ParseUint(s[2:], 16, 32); err == nil {
			return rune(v), true
		}
	}

	if len(s) > 1 && s[0] == '\\' {
		r, _ := utf8.DecodeRuneInString(s[1:])
		switch r {
		case '0':
			r = 0
		case 'a':
			r = '\a'
		case 'b':
			r = '\b'
		case 't':
			r = '\t'
		case 'n':
			r = '\n'
		case 'v':
			r = '\v'
		case 'f':
			r = '\f'
		case 'r':
			r = '\r'
		}

		return r, true
	}

	r, _ := utf8.DecodeRuneInString(s)
	return r, false
}

// exprChar renders one literal character for use outside a class.
func exprChar(r rune) string {
	if r < 0x20 || r == 0x7f {
		return fmt.Sprintf(`\x{%x}`, r)
	}

	return regexp.QuoteMeta(string(r))
}

// exprClassChar renders one range bound.
func exprClassChar(r rune) string {
	if r < 0x20 || r == 0x7f {
		return fmt.Sprintf(`\x{%x}`, r)
	}

	if r < utf8.RuneSelf && !isAlnum(byte(r)) && r != ' ' {
		return `\` + string(r)
	}

	return string(r)
}

func isAlnum(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}
