package tikz_test

import (
	"fmt"
	"os"

	"github.com/matzehuels/graphic/pkg/generate"
	"github.com/matzehuels/graphic/pkg/render/tikz"
	"github.com/matzehuels/graphic/pkg/style"
)

func ExampleWrite() {
	g := generate.Path(2, true)
	p := style.DefaultParams()
	p.TopPrefix = "v"
	style.Apply(g, style.All, p)

	if err := tikz.Write(os.Stdout, g, tikz.Options{XDPI: 96, YDPI: 96}); err != nil {
		fmt.Println(err)
	}
	// Output:
	// \begin{tikzpicture}[x=1in, y=1in]
	// \node (v0) at (-0.9000, 0.0000) [inner sep=0, shape=circle, minimum size=0.2000in, fill=white, draw=black, line width=0.0100in, font=\fontsize{10}{1}\selectfont] {$v_{0}^{}$};
	// \node (v1) at (0.9000, 0.0000) [inner sep=0, shape=circle, minimum size=0.2000in, fill=white, draw=black, line width=0.0100in, font=\fontsize{10}{1}\selectfont] {$v_{1}^{}$};
	// \path (v0) edge[draw=black, line width=0.0100in] (v1);
	// \end{tikzpicture}
}
