package cli

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/mattn/go-isatty"

	"github.com/matzehuels/graphic/pkg/errors"
	"github.com/matzehuels/graphic/pkg/render"
)

// resolveFormats picks the output formats: the --format list if given,
// otherwise the output file's extension, otherwise TikZ.
func resolveFormats(list, output string) ([]render.Format, error) {
	names := splitList(list)
	if len(names) == 0 && output != "" && filepath.Ext(output) != "" {
		f, err := render.FormatFromPath(output)
		if err != nil {
			return nil, err
		}
		return []render.Format{f}, nil
	}
	if len(names) == 0 {
		return []render.Format{render.FormatTikZ}, nil
	}
	out := make([]render.Format, 0, len(names))
	for _, n := range names {
		f, err := render.ParseFormat(n)
		if err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, nil
}

// outputPath names the file for format f. A single format whose extension
// already matches output writes to output itself; otherwise the extension is
// replaced.
func outputPath(output string, f render.Format, single bool) string {
	ext := filepath.Ext(output)
	if single && ext != "" {
		if g, err := render.FormatFromPath(output); err == nil && g == f {
			return output
		}
	}
	base := strings.TrimSuffix(output, ext)
	if f == render.FormatNeato {
		return base + ".neato" + f.Ext()
	}
	return base + f.Ext()
}

// writeArtifacts writes each artifact to its file, or to stdout when output
// is empty. Binary formats are never written to a terminal-bound stdout.
func writeArtifacts(stdout io.Writer, artifacts map[render.Format][]byte, formats []render.Format, output string) ([]string, error) {
	if output == "" {
		if len(formats) != 1 {
			return nil, errors.New(errors.ErrCodeInvalidInput, "multiple formats need --output")
		}
		f := formats[0]
		if f.Binary() && isTerminal(stdout) {
			return nil, errors.New(errors.ErrCodeInvalidInput, "refusing to write %s to a terminal; use --output", f)
		}
		if _, err := stdout.Write(artifacts[f]); err != nil {
			return nil, errors.Wrap(errors.ErrCodeIO, err, "write stdout")
		}
		return nil, nil
	}

	var paths []string
	for _, f := range formats {
		path := outputPath(output, f, len(formats) == 1)
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return paths, errors.Wrap(errors.ErrCodeIO, err, "create %s", dir)
			}
		}
		if err := os.WriteFile(path, artifacts[f], 0o644); err != nil {
			return paths, errors.Wrap(errors.ErrCodeIO, err, "write %s", path)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// describe renders a short human summary of a format list.
func describe(formats []render.Format) string {
	names := make([]string, len(formats))
	for i, f := range formats {
		names[i] = string(f)
	}
	return strings.Join(names, ", ")
}
