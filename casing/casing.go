package casing

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Style identifies a naming style.
type Style int

const (
	// None leaves values unchanged.
	None Style = iota
	Camel
	Pascal
	Kebab
	Train
	Snake
	Ada
	Constant
	Cobol
	Dot
	Space
	Capital
	Lower
	Upper
)

type wordCase int

const (
	keepWord wordCase = iota
	lowerWord
	upperWord
	titleWord
)

type styleDef struct {
	name  string
	sep   string
	first wordCase
	rest  wordCase
}

var styleDefs = [...]styleDef{
	None:     {name: "none"},
	Camel:    {name: "camelCase", first: lowerWord, rest: titleWord},
	Pascal:   {name: "PascalCase", first: titleWord, rest: titleWord},
	Kebab:    {name: "kebab-case", sep: "-", first: lowerWord, rest: lowerWord},
	Train:    {name: "Train-Case", sep: "-", first: titleWord, rest: titleWord},
	Snake:    {name: "snake_case", sep: "_", first: lowerWord, rest: lowerWord},
	Ada:      {name: "Ada_Case", sep: "_", first: titleWord, rest: titleWord},
	Constant: {name: "CONSTANT_CASE", sep: "_", first: upperWord, rest: upperWord},
	Cobol:    {name: "COBOL-CASE", sep: "-", first: upperWord, rest: upperWord},
	Dot:      {name: "dot.notation", sep: ".", first: keepWord, rest: keepWord},
	Space:    {name: "Space case", sep: " ", first: keepWord, rest: keepWord},
	Capital:  {name: "Capital Case", sep: " ", first: titleWord, rest: titleWord},
	Lower:    {name: "lower case", sep: " ", first: lowerWord, rest: lowerWord},
	Upper:    {name: "UPPER CASE", sep: " ", first: upperWord, rest: upperWord},
}

// aliases maps normalized style names to styles.
var aliases = map[string]Style{
	"camel":          Camel,
	"lowercamel":     Camel,
	"pascal":         Pascal,
	"uppercamel":     Pascal,
	"kebab":          Kebab,
	"train":          Train,
	"capitalkebab":   Train,
	"snake":          Snake,
	"ada":            Ada,
	"constant":       Constant,
	"screamingsnake": Constant,
	"cobol":          Cobol,
	"screamingkebab": Cobol,
	"dot":            Dot,
	"dotnotation":    Dot,
	"space":          Space,
	"capital":        Capital,
	"title":          Capital,
	"lower":          Lower,
	"upper":          Upper,
}

// String returns the canonical style name.
func (s Style) String() string {
	if s < 0 || int(s) >= len(styleDefs) {
		return "none"
	}
	return styleDefs[s].name
}

// Styles returns every style except None.
func Styles() []Style {
	out := make([]Style, 0, len(styleDefs)-1)
	for s := Camel; int(s) < len(styleDefs); s++ {
		out = append(out, s)
	}
	return out
}

// ParseStyle resolves a style name such as "camelCase", "kebab-case",
// "Space case" or "upper-camel".
func ParseStyle(name string) (Style, bool) {
	key := normalizeName(name)
	if s, ok := aliases[key]; ok {
		return s, true
	}
	if trimmed, found := strings.CutSuffix(key, "case"); found {
		if s, ok := aliases[trimmed]; ok {
			return s, true
		}
	}
	return None, false
}

func normalizeName(name string) string {
	var b strings.Builder
	for _, r := range name {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(unicode.ToLower(r))
		}
	}
	return b.String()
}

// Convert rewrites value in the named style. Unknown styles and empty
// values return value unchanged.
func Convert(value, style string) string {
	s, ok := ParseStyle(style)
	if !ok {
		return value
	}
	return s.Apply(value)
}

// Apply rewrites value in style s.
func (s Style) Apply(value string) string {
	if s == None || int(s) >= len(styleDefs) || value == "" {
		return value
	}
	words := Words(value)
	if len(words) == 0 {
		return value
	}

	def := styleDefs[s]
	lower := cases.Lower(language.Und)
	upper := cases.Upper(language.Und)

	var b strings.Builder
	b.Grow(len(value) + len(words))
	for i, w := range words {
		if i > 0 {
			b.WriteString(def.sep)
		}
		wc := def.rest
		if i == 0 {
			wc = def.first
		}
		switch wc {
		case lowerWord:
			b.WriteString(lower.String(w))
		case upperWord:
			b.WriteString(upper.String(w))
		case titleWord:
			b.WriteString(title(w, lower, upper))
		default:
			b.WriteString(w)
		}
	}
	return b.String()
}

// title upper-cases the first letter of w and lower-cases the rest.
// Leading '$' and '@' are kept in front.
func title(w string, lower, upper cases.Caser) string {
	i := 0
	for i < len(w) && (w[i] == '$' || w[i] == '@') {
		i++
	}
	if i == len(w) {
		return w
	}
	_, size := utf8.DecodeRuneInString(w[i:])
	return w[:i] + upper.String(w[i:i+size]) + lower.String(w[i+size:])
}

// Words splits value into words.
func Words(value string) []string {
	runes := []rune(value)
	var words []string
	start := -1
	flush := func(end int) {
		if start >= 0 && end > start {
			words = append(words, string(runes[start:end]))
		}
		start = -1
	}

	for i, r := range runes {
		if !isWordRune(r) {
			flush(i)
			continue
		}
		if start < 0 {
			start = i
			continue
		}
		prev := runes[i-1]
		switch {
		case unicode.IsUpper(r) && (unicode.IsLower(prev) || unicode.IsDigit(prev)):
			flush(i)
			start = i
		case unicode.IsUpper(r) && unicode.IsUpper(prev) &&
			i+1 < len(runes) && unicode.IsLower(runes[i+1]):
			flush(i)
			start = i
		}
	}
	flush(len(runes))
	return words
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '$' || r == '@'
}
