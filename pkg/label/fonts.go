package label

// glyph is one displayed character.
type glyph struct {
	font Font
	html string
	text string
}

// OT1 and OML slots for characters that are not where ASCII puts them.
var special = map[rune]glyph{
	'-': {Roman, "{", "–"},
	',': {Italic, ";", ","},
	'.': {Italic, ":", "."},
	'<': {Italic, "&lt;", "<"},
	'>': {Italic, "&gt;", ">"},
	'&': {Italic, "&amp;", "&"},
}

var escapes = map[rune]glyph{
	'{': {Symbol, "f", "{"},
	'}': {Symbol, "g", "}"},
	' ': {Roman, "&nbsp;", " "},
}

func glyphFor(r rune) glyph {
	if g, ok := special[r]; ok {
		return g
	}
	switch {
	case r >= '0' && r <= '9':
		return glyph{Roman, string(r), string(r)}
	case r == '[', r == ']', r == '(', r == ')', r == ';', r == ':', r == '+', r == '=':
		return glyph{Roman, string(r), string(r)}
	}
	return glyph{Italic, string(r), string(r)}
}

// fontify sets a marker-free substring, grouping consecutive glyphs of one
// font into a single run.
func fontify(s []rune) Fragment {
	var out Fragment
	for i := 0; i < len(s); i++ {
		var g glyph
		switch {
		case escaped(s, i):
			g = escapes[s[i+1]]
			i++
		case s[i] == '{', s[i] == '}', s[i] == ' ':
			continue
		default:
			g = glyphFor(s[i])
		}
		out = join(out, Fragment{{Kind: Run, Font: g.font, Glyphs: g.html, Text: g.text}})
	}
	return out
}
