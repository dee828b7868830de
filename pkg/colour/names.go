package colour

// span is an inclusive channel range.
type span struct{ lo, hi uint8 }

func exact(v uint8) span { return span{v, v} }

// near allows ±1 to absorb LaTeX's cmyk→RGB round-trip.
func near(v uint8) span {
	lo, hi := v, v
	if v > 0 {
		lo = v - 1
	}
	if v < 255 {
		hi = v + 1
	}
	return span{lo, hi}
}

func (s span) has(v uint8) bool { return v >= s.lo && v <= s.hi }

type entry struct {
	name    string
	r, g, b span
	rgb     RGB // canonical value for Parse
}

// table is consulted in order; names never overlap.
var table = []entry{
	{"black", exact(0), exact(0), exact(0), RGB{0, 0, 0}},
	{"white", exact(255), exact(255), exact(255), RGB{255, 255, 255}},
	{"red", exact(255), exact(0), exact(0), RGB{255, 0, 0}},
	{"green", exact(0), exact(255), exact(0), RGB{0, 255, 0}},
	{"blue", exact(0), exact(0), exact(255), RGB{0, 0, 255}},
	{"cyan", exact(0), exact(255), exact(255), RGB{0, 255, 255}},
	{"magenta", exact(255), exact(0), exact(255), RGB{255, 0, 255}},
	{"yellow", exact(255), exact(255), exact(0), RGB{255, 255, 0}},
	{"gray", near(127), near(127), near(127), RGB{127, 127, 127}},
	{"darkgray", near(63), near(63), near(63), RGB{63, 63, 63}},
	{"lightgray", near(191), near(191), near(191), RGB{191, 191, 191}},
	{"brown", exact(191), exact(128), near(63), RGB{191, 128, 63}},
	{"purple", exact(191), exact(0), near(63), RGB{191, 0, 63}},
	{"orange", exact(255), near(127), exact(0), RGB{255, 127, 0}},
	{"violet", near(127), exact(0), near(127), RGB{127, 0, 127}},
}

var byName = func() map[string]RGB {
	m := make(map[string]RGB, len(table))
	for _, e := range table {
		m[e.name] = e.rgb
	}
	return m
}()

// Lookup returns the TikZ colour name for the triple, if there is one.
func Lookup(r, g, b uint8) (string, bool) {
	for _, e := range table {
		if e.r.has(r) && e.g.has(g) && e.b.has(b) {
			return e.name, true
		}
	}
	return "", false
}

// Name is Lookup for an RGB value.
func (c RGB) Name() (string, bool) { return Lookup(c.R, c.G, c.B) }

// Names lists the known colour names in table order.
func Names() []string {
	out := make([]string, len(table))
	for i, e := range table {
		out[i] = e.name
	}
	return out
}
