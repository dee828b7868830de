// Package label renders TeX-like label strings such as "v_{i+1}^2".
//
// A label is parsed into a [Fragment]: a sequence of font runs and nested
// superscript/subscript groups. The fragment is rendered as HTML by [ToHTML]
// using the Computer Modern face names cmr10 (upright), cmmi10 (math italic)
// and cmsy10 (symbols). Labels that do not parse are shown verbatim in the
// typewriter face cmtt10, so a user always sees what they typed.
//
// # Markup
//
//	x^2        superscript of one character
//	x_{i+1}    subscript of a braced group
//	\{ \}      literal braces
//	\␣         a visible space
//
// Unescaped braces and spaces group but are not displayed.
//
// # Fonts
//
// Digits and the punctuation [ ] ( ) ; : + = are set upright. The hyphen
// becomes an en-dash from cmr10. Everything else is math italic. Comma and
// full stop live at unusual code points in cmmi10 and are remapped.
package label

import (
	"strings"

	"github.com/matzehuels/graphic/pkg/errors"
)

// Font is a Computer Modern face name.
type Font string

// Faces used by the renderer.
const (
	Roman      Font = "cmr10"
	Italic     Font = "cmmi10"
	Symbol     Font = "cmsy10"
	Typewriter Font = "cmtt10"
)

// Kind discriminates the pieces of a [Fragment].
type Kind int

const (
	// Run is a stretch of glyphs in a single font.
	Run Kind = iota
	// Sup is a superscript group.
	Sup
	// Sub is a subscript group.
	Sub
)

// Piece is one element of a parsed label.
type Piece struct {
	Kind Kind

	// Run fields.
	Font   Font
	Glyphs string // HTML text in the font's encoding (entities escaped)
	Text   string // Readable Unicode text

	// Sup and Sub fields.
	Children Fragment
}

// Fragment is a parsed label.
type Fragment []Piece

// ToHTML renders src as an HTML fragment. It never fails: labels that do not
// parse fall back to the raw text in cmtt10.
func ToHTML(src string) string {
	if src == "" {
		return ""
	}
	f, err := Parse(src)
	if err != nil {
		return Fallback(src)
	}
	return f.HTML()
}

// Fallback returns src escaped and wrapped in the typewriter face.
func Fallback(src string) string {
	return `<font face="` + string(Typewriter) + `">` + htmlEscaper.Replace(src) + `</font>`
}

var htmlEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

// Valid reports the first reason src would fall back, or nil.
func Valid(src string) error {
	_, err := Parse(src)
	return err
}

// Plain returns a readable rendering without markup. Scripts keep their
// marker and multi-character scripts are parenthesised, e.g. "v_(i+1)^2".
// Labels that do not parse are returned unchanged.
func Plain(src string) string {
	f, err := Parse(src)
	if err != nil {
		return src
	}
	var b strings.Builder
	f.writePlain(&b)
	return b.String()
}

// HTML renders the fragment.
func (f Fragment) HTML() string {
	var b strings.Builder
	f.writeHTML(&b)
	return b.String()
}

func (f Fragment) writeHTML(b *strings.Builder) {
	for _, p := range f {
		switch p.Kind {
		case Run:
			b.WriteString(`<font face="`)
			b.WriteString(string(p.Font))
			b.WriteString(`">`)
			b.WriteString(p.Glyphs)
			b.WriteString(`</font>`)
		case Sup, Sub:
			tag := "sup"
			if p.Kind == Sub {
				tag = "sub"
			}
			b.WriteString("<" + tag + ">")
			p.Children.writeHTML(b)
			b.WriteString("</" + tag + ">")
		}
	}
}

func (f Fragment) writePlain(b *strings.Builder) {
	for _, p := range f {
		switch p.Kind {
		case Run:
			b.WriteString(p.Text)
		case Sup, Sub:
			if p.Kind == Sup {
				b.WriteByte('^')
			} else {
				b.WriteByte('_')
			}
			var inner strings.Builder
			p.Children.writePlain(&inner)
			if s := inner.String(); len([]rune(s)) == 1 {
				b.WriteString(s)
			} else {
				b.WriteString("(" + s + ")")
			}
		}
	}
}

// Span is a flattened run with its script position, for renderers that
// place text themselves.
type Span struct {
	Font  Font
	Text  string
	Shift int // net baseline shift: +1 per superscript, -1 per subscript
	Depth int // script nesting level, 0 for the base line
}

// SpansOf parses src and flattens it for drawing. A label that does not
// parse becomes a single typewriter span holding src verbatim.
func SpansOf(src string) []Span {
	f, err := Parse(src)
	if err != nil {
		return []Span{{Font: Typewriter, Text: src}}
	}
	return f.Spans()
}

// Spans flattens the fragment in reading order.
func (f Fragment) Spans() []Span {
	var out []Span
	f.collect(0, 0, &out)
	return out
}

func (f Fragment) collect(shift, depth int, out *[]Span) {
	for _, p := range f {
		switch p.Kind {
		case Run:
			*out = append(*out, Span{Font: p.Font, Text: p.Text, Shift: shift, Depth: depth})
		case Sup:
			p.Children.collect(shift+1, depth+1, out)
		case Sub:
			p.Children.collect(shift-1, depth+1, out)
		}
	}
}

// Parse parses src. The error, if any, has code INVALID_LABEL.
func Parse(src string) (Fragment, error) {
	s := []rune(src)
	if err := prescan(s); err != nil {
		return nil, err
	}
	return parse(s)
}

func invalid(format string, args ...any) error {
	return errors.New(errors.ErrCodeInvalidLabel, format, args...)
}

func isMarker(r rune) bool { return r == '^' || r == '_' }

// escaped reports whether s[i] starts an escape pair \{ \} or \␣.
func escaped(s []rune, i int) bool {
	if s[i] != '\\' || i+1 >= len(s) {
		return false
	}
	switch s[i+1] {
	case '{', '}', ' ':
		return true
	}
	return false
}

func prescan(s []rune) error {
	if len(s) == 0 {
		return nil
	}
	depth := 0
	for i := 0; i < len(s); i++ {
		if escaped(s, i) {
			i++
			continue
		}
		switch s[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth < 0 {
				return invalid("unmatched '}' at position %d", i)
			}
		}
	}
	if depth != 0 {
		return invalid("%d unclosed '{'", depth)
	}
	if isMarker(s[0]) {
		return invalid("label starts with %q", s[0])
	}
	if isMarker(s[len(s)-1]) {
		return invalid("label ends with %q", s[len(s)-1])
	}
	for i := 0; i+2 < len(s); i++ {
		if isMarker(s[i]) && s[i+1] == '{' && s[i+2] == '}' {
			return invalid("empty script at position %d", i)
		}
	}
	return nil
}

// firstMarker finds the first script marker and the brace depth there.
func firstMarker(s []rune) (at, depth int) {
	for i := 0; i < len(s); i++ {
		if escaped(s, i) {
			i++
			continue
		}
		switch {
		case s[i] == '{':
			depth++
		case s[i] == '}':
			depth--
		case isMarker(s[i]):
			return i, depth
		}
	}
	return -1, 0
}

// firstOpen finds the first unescaped '{'.
func firstOpen(s []rune) int {
	for i := 0; i < len(s); i++ {
		if escaped(s, i) {
			i++
			continue
		}
		if s[i] == '{' {
			return i
		}
	}
	return -1
}

// matching returns the index of the '}' closing the '{' at open.
func matching(s []rune, open int) int {
	depth := 0
	for i := open; i < len(s); i++ {
		if escaped(s, i) {
			i++
			continue
		}
		switch s[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

func parse(s []rune) (Fragment, error) {
	if len(s) == 0 {
		return nil, nil
	}
	m, depth := firstMarker(s)
	switch {
	case m < 0:
		return fontify(s), nil
	case m == 0:
		return parseScript(s)
	case depth == 0:
		return parseAll(s[:m], s[m:])
	default:
		open := firstOpen(s)
		if open < 0 {
			return nil, invalid("unbalanced group")
		}
		end := matching(s, open)
		if end < 0 {
			return nil, invalid("unbalanced group")
		}
		return parseAll(s[:open], s[open+1:end], s[end+1:])
	}
}

// parseScript handles a substring that begins with a marker.
func parseScript(s []rune) (Fragment, error) {
	kind := Sup
	if s[0] == '_' {
		kind = Sub
	}
	if len(s) < 2 {
		return nil, invalid("dangling %q", s[0])
	}

	var body, rest []rune
	switch {
	case s[1] == '{':
		end := matching(s, 1)
		if end < 0 {
			return nil, invalid("unbalanced script group")
		}
		if end == 2 {
			return nil, invalid("empty script")
		}
		body, rest = s[2:end], s[end+1:]
	case escaped(s, 1):
		body, rest = s[1:3], s[3:]
	case isMarker(s[1]), s[1] == '}', s[1] == ' ':
		// Unescaped, these would make an invisible or stray script.
		return nil, invalid("%q cannot follow %q", s[1], s[0])
	default:
		body, rest = s[1:2], s[2:]
	}

	children, err := parse(body)
	if err != nil {
		return nil, err
	}
	tail, err := parse(rest)
	if err != nil {
		return nil, err
	}
	return join(Fragment{{Kind: kind, Children: children}}, tail), nil
}

func parseAll(parts ...[]rune) (Fragment, error) {
	var out Fragment
	for _, p := range parts {
		f, err := parse(p)
		if err != nil {
			return nil, err
		}
		out = join(out, f)
	}
	return out, nil
}

// join concatenates, merging a trailing run into a leading run of the same
// font.
func join(a, b Fragment) Fragment {
	if len(a) == 0 {
		return b
	}
	if len(b) == 0 {
		return a
	}
	last, first := a[len(a)-1], b[0]
	if last.Kind == Run && first.Kind == Run && last.Font == first.Font {
		merged := make(Fragment, 0, len(a)+len(b)-1)
		merged = append(merged, a[:len(a)-1]...)
		merged = append(merged, Piece{
			Kind:   Run,
			Font:   last.Font,
			Glyphs: last.Glyphs + first.Glyphs,
			Text:   last.Text + first.Text,
		})
		return append(merged, b[1:]...)
	}
	return append(a, b...)
}
