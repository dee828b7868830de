package cli

import (
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/matzehuels/graphic/pkg/errors"
)

// watchDebounce coalesces the burst of events an editor save produces.
const watchDebounce = 150 * time.Millisecond

// watchCommand re-renders a saved graph every time it changes on disk.
func (c *CLI) watchCommand() *cobra.Command {
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "watch <file.grphc|file.json>",
		Short: "Re-render a saved graph whenever it changes",
		Long: `Watch renders the file once and again after every save, so a LaTeX
document that \input's the output stays current while you edit the graph.
It accepts the same flags as render. Stop with Ctrl+C.

Example:
  graphic watch drawing.grphc -o figures/drawing.tex`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runWatch(cmd, args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.formats, "format", "f", "", "comma-separated formats (default from --output extension, else tikz)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file or base path (required)")
	opts.style.register(cmd)
	_ = cmd.MarkFlagRequired("output")

	return cmd
}

func (c *CLI) runWatch(cmd *cobra.Command, input string, opts renderOpts) error {
	ctx := cmd.Context()
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	formats, err := resolveFormats(opts.formats, opts.output)
	if err != nil {
		return err
	}
	abs, err := filepath.Abs(input)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "resolve %s", input)
	}

	rebuild := func() {
		start := time.Now()
		paths, err := c.convert(cmd, abs, formats, opts, cfg)
		if err != nil {
			printError("%s", errors.UserMessage(err))
			return
		}
		printSuccess("Rendered %s %s", filepath.Base(abs), StyleDim.Render(time.Since(start).Round(time.Millisecond).String()))
		for _, p := range paths {
			printDetail("%s", p)
		}
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(errors.ErrCodeIO, err, "create watcher")
	}
	defer watcher.Close()

	// Editors often replace the file on save, so watch its directory.
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		return errors.Wrap(errors.ErrCodeIO, err, "watch %s", filepath.Dir(abs))
	}

	rebuild()
	printInfo("Watching %s", input)

	debounce := time.NewTimer(watchDebounce)
	if !debounce.Stop() {
		<-debounce.C
	}
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !relevant(event, abs) {
				continue
			}
			c.Logger.Debug("file event", "op", event.Op.String(), "path", event.Name)
			debounce.Reset(watchDebounce)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			c.Logger.Warn("watch error", "err", err)
		case <-debounce.C:
			rebuild()
		}
	}
}

// relevant reports whether event touches the watched file with a change
// that can alter its content.
func relevant(event fsnotify.Event, path string) bool {
	if filepath.Clean(event.Name) != path {
		return false
	}
	return event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename)
}
