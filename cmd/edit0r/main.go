package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"go.uber.org/zap"

	"edit0r/internal/config"
	core "edit0r/internal/core"
	"edit0r/internal/inspect"
	"edit0r/internal/logger"
	"edit0r/internal/store"
	ui "edit0r/internal/ui"
	"edit0r/internal/util"
	verinfo "edit0r/internal/version"
)

type app struct {
	cfg  *config.Config
	log  *zap.Logger
	ring *logger.Ring
	in   io.Reader
	out  io.Writer
	errw io.Writer
}

func usage(w io.Writer) {
	fmt.Fprintf(w, "edit0r - detect and validate AI provider configs\n\n")
	fmt.Fprintf(w, "Usage:\n")
	fmt.Fprintf(w, "  edit0r                          start the editor\n")
	fmt.Fprintf(w, "  edit0r tui [--draft <name>] [file]\n")
	fmt.Fprintf(w, "  edit0r detect [--explain] [--json] [--format auto|json|yaml] <file|->\n")
	fmt.Fprintf(w, "  edit0r validate [--provider <tag>] [--json] [--format auto|json|yaml] <file|->\n")
	fmt.Fprintf(w, "  edit0r providers [--json]\n")
	fmt.Fprintf(w, "  edit0r drafts list|save|show|rm ...\n")
	fmt.Fprintf(w, "  edit0r version\n")
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(2)
	}
	a := &app{cfg: cfg, ring: logger.NewRing(cfg.Log.Keep), in: os.Stdin, out: os.Stdout, errw: os.Stderr}
	os.Exit(a.run(os.Args[1:]))
}

func (a *app) run(args []string) int {
	// Default: editor when no args
	if len(args) == 0 {
		return a.tuiCmd(nil)
	}
	cmd := args[0]
	if cmd == "tui" {
		return a.tuiCmd(args[1:])
	}
	if a.log == nil {
		a.log = logger.New(a.cfg.Log.Level, logger.Format(a.cfg.Log.Format), a.errw, a.ring)
	}
	defer func() { _ = a.log.Sync() }()

	switch cmd {
	case "detect":
		return a.detectCmd(args[1:])
	case "validate":
		return a.validateCmd(args[1:])
	case "providers":
		return a.providersCmd(args[1:])
	case "drafts":
		return a.draftsCmd(args[1:])
	case "version", "--version":
		fmt.Fprintf(a.out, "%s %s\n", verinfo.Name, verinfo.Version)
		return 0
	case "-h", "--help", "help":
		usage(a.out)
		return 0
	default:
		fmt.Fprintf(a.errw, "unknown command: %s\n", cmd)
		usage(a.errw)
		return 2
	}
}

func (a *app) flags(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(a.errw)
	return fs
}

func (a *app) inspector() (*inspect.Inspector, error) {
	return inspect.New(a.cfg.CacheSize, a.log.Named(logger.ComponentInspect))
}

func (a *app) drafts() *store.Store {
	return store.New(a.cfg.DraftsDir, a.log.Named(logger.ComponentStore))
}

// readInput loads path ("-" for stdin) and normalizes it to JSON text.
func (a *app) readInput(path string, f inspect.InputFormat) (string, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(a.in)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return "", err
	}
	return inspect.Normalize(data, inspect.FormatForPath(f, path))
}

func (a *app) writeJSON(v any) int {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Fprintln(a.errw, err)
		return 1
	}
	fmt.Fprintln(a.out, string(b))
	return 0
}

func inputArg(fs *flag.FlagSet) string {
	if fs.NArg() > 0 {
		return fs.Arg(0)
	}
	return "-"
}

func (a *app) detectCmd(args []string) int {
	fs := a.flags("detect")
	explain := fs.Bool("explain", false, "print every provider score")
	asJSON := fs.Bool("json", false, "print JSON")
	format := fs.String("format", "auto", "input format: auto|json|yaml")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	f, err := inspect.ParseInputFormat(*format)
	if err != nil {
		fmt.Fprintln(a.errw, err)
		return 2
	}
	text, err := a.readInput(inputArg(fs), f)
	if err != nil {
		fmt.Fprintln(a.errw, err)
		return 1
	}
	ins, err := a.inspector()
	if err != nil {
		fmt.Fprintln(a.errw, err)
		return 1
	}
	r, err := ins.Inspect(text, "")
	if err != nil {
		fmt.Fprintln(a.errw, err)
		return 1
	}
	var scores []core.Detection
	if *explain {
		scores = ins.Explain(text)
	}

	if *asJSON {
		return a.writeJSON(struct {
			core.Detection
			Scores []core.Detection `json:"scores,omitempty"`
		}{r.Detection, scores})
	}
	d := r.Detection
	fmt.Fprintf(a.out, "%s %s %.0f%%\n", ui.Badge(d.Vendor), d.Vendor, d.Confidence*100)
	for _, ind := range d.Indicators {
		fmt.Fprintf(a.out, "  - %s\n", ind)
	}
	if *explain {
		if scores == nil {
			fmt.Fprintln(a.out, "\nScores: (input is not a JSON object)")
			return 0
		}
		fmt.Fprintln(a.out, "\nScores:")
		for _, s := range scores {
			fmt.Fprintf(a.out, "  %-12s %.2f  %s\n", s.Vendor, s.Confidence, strings.Join(s.Indicators, "; "))
		}
	}
	return 0
}

func (a *app) validateCmd(args []string) int {
	fs := a.flags("validate")
	provider := fs.String("provider", "", "validate as this provider instead of the detected one")
	asJSON := fs.Bool("json", false, "print JSON")
	format := fs.String("format", "auto", "input format: auto|json|yaml")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	f, err := inspect.ParseInputFormat(*format)
	if err != nil {
		fmt.Fprintln(a.errw, err)
		return 2
	}
	var override core.Vendor
	if *provider != "" {
		if override, err = core.ParseVendor(*provider); err != nil {
			fmt.Fprintln(a.errw, err)
			return 2
		}
	}
	text, err := a.readInput(inputArg(fs), f)
	if err != nil {
		fmt.Fprintln(a.errw, err)
		return 1
	}
	ins, err := a.inspector()
	if err != nil {
		fmt.Fprintln(a.errw, err)
		return 1
	}
	r, err := ins.Inspect(text, override)
	if err != nil {
		fmt.Fprintln(a.errw, err)
		return 1
	}
	if !r.Parsed {
		fmt.Fprintln(a.errw, "input is not valid JSON")
		return 1
	}

	if *asJSON {
		if code := a.writeJSON(struct {
			Provider core.Vendor `json:"provider"`
			core.Result
		}{r.Vendor, r.Validation}); code != 0 {
			return code
		}
	} else {
		how := "detected"
		if override != "" {
			how = "requested"
		}
		fmt.Fprintf(a.out, "%s %s (%s)\n", ui.Badge(r.Vendor), r.Vendor, how)
		for _, e := range r.Validation.Errors {
			fmt.Fprintf(a.out, "  error   %s: %s\n", e.Field, e.Message)
		}
		for _, w := range r.Validation.Warnings {
			fmt.Fprintf(a.out, "  warning %s: %s\n", w.Field, w.Message)
		}
		if r.Validation.Valid {
			fmt.Fprintf(a.out, "valid (%d warning(s))\n", len(r.Validation.Warnings))
		} else {
			fmt.Fprintf(a.out, "invalid: %d error(s), %d warning(s)\n", len(r.Validation.Errors), len(r.Validation.Warnings))
		}
	}
	if !r.Validation.Valid {
		return 1
	}
	return 0
}

func (a *app) providersCmd(args []string) int {
	fs := a.flags("providers")
	asJSON := fs.Bool("json", false, "print JSON")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	sigs := core.Supported()
	if *asJSON {
		type row struct {
			Tag         core.Vendor `json:"tag"`
			Name        string      `json:"name"`
			Description string      `json:"description"`
			Color       string      `json:"color"`
		}
		rows := make([]row, 0, len(sigs))
		for _, s := range sigs {
			rows = append(rows, row{s.Vendor, s.DisplayName, s.Description, s.Color})
		}
		return a.writeJSON(rows)
	}
	for _, s := range sigs {
		fmt.Fprintf(a.out, "%-12s %-14s %s\n", s.Vendor, s.DisplayName, s.Description)
	}
	return 0
}

func (a *app) draftsCmd(args []string) int {
	if len(args) < 1 {
		fmt.Fprintln(a.errw, "drafts subcommand required: list|save|show|rm")
		return 2
	}
	st := a.drafts()
	sub := args[0]
	switch sub {
	case "list":
		list, err := st.ListDrafts()
		if err != nil {
			fmt.Fprintln(a.errw, err)
			return 1
		}
		if len(list) == 0 {
			fmt.Fprintln(a.out, "(no drafts)")
			return 0
		}
		for _, d := range list {
			p := string(d.Provider)
			if p == "" {
				p = "auto"
			}
			fmt.Fprintf(a.out, "%s\t%s\t%s\t%s\t%s\n", d.Name, util.ShortID(d.ID), p,
				d.UpdatedAt.Local().Format(time.DateTime), util.Preview(d.Content, 40))
		}
	case "save":
		fs := a.flags("drafts save")
		force := fs.Bool("force", false, "overwrite an existing draft")
		provider := fs.String("provider", "", "provider override stored with the draft")
		format := fs.String("format", "auto", "input format: auto|json|yaml")
		if err := fs.Parse(args[1:]); err != nil {
			return 2
		}
		if fs.NArg() < 1 {
			fmt.Fprintln(a.errw, "usage: edit0r drafts save [--force] [--provider <tag>] <name> [file|-]")
			return 2
		}
		var v core.Vendor
		if *provider != "" {
			var err error
			if v, err = core.ParseVendor(*provider); err != nil {
				fmt.Fprintln(a.errw, err)
				return 2
			}
		}
		f, err := inspect.ParseInputFormat(*format)
		if err != nil {
			fmt.Fprintln(a.errw, err)
			return 2
		}
		src := "-"
		if fs.NArg() > 1 {
			src = fs.Arg(1)
		}
		text, err := a.readInput(src, f)
		if err != nil {
			fmt.Fprintln(a.errw, err)
			return 1
		}
		d, err := st.SaveDraft(fs.Arg(0), text, v, *force)
		if err != nil {
			fmt.Fprintln(a.errw, err)
			return draftExit(err)
		}
		fmt.Fprintf(a.out, "saved %s (%s)\n", d.Name, filepath.Join(st.Dir(), d.Name+".json"))
	case "show":
		if len(args) < 2 {
			fmt.Fprintln(a.errw, "usage: edit0r drafts show <name>")
			return 2
		}
		d, err := st.LoadDraft(args[1])
		if err != nil {
			fmt.Fprintln(a.errw, err)
			return draftExit(err)
		}
		fmt.Fprintln(a.out, d.Content)
	case "rm":
		if len(args) < 2 {
			fmt.Fprintln(a.errw, "usage: edit0r drafts rm <name>")
			return 2
		}
		if err := st.RemoveDraft(args[1]); err != nil {
			fmt.Fprintln(a.errw, err)
			return draftExit(err)
		}
		fmt.Fprintln(a.out, "removed")
	default:
		fmt.Fprintf(a.errw, "unknown drafts subcommand: %s\n", sub)
		return 2
	}
	return 0
}

func draftExit(err error) int {
	if errors.Is(err, store.ErrInvalidName) {
		return 2
	}
	return 1
}

func (a *app) tuiCmd(args []string) int {
	fs := a.flags("tui")
	draft := fs.String("draft", "", "open a saved draft")
	format := fs.String("format", "auto", "input format: auto|json|yaml")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	f, err := inspect.ParseInputFormat(*format)
	if err != nil {
		fmt.Fprintln(a.errw, err)
		return 2
	}

	// The editor owns the terminal, so logs go to a file.
	lf, err := openLogFile(a.cfg.Log.File)
	if err != nil {
		fmt.Fprintln(a.errw, "log file:", err)
		return 1
	}
	defer lf.Close()
	a.log = logger.New(a.cfg.Log.Level, logger.Format(a.cfg.Log.Format), lf, a.ring)
	defer func() { _ = a.log.Sync() }()

	opts := ui.Options{Log: a.log, Ring: a.ring, Debounce: a.cfg.Debounce, Drafts: a.drafts()}
	if opts.Inspector, err = a.inspector(); err != nil {
		fmt.Fprintln(a.errw, err)
		return 1
	}
	if fs.NArg() > 0 {
		if opts.Text, err = a.readInput(fs.Arg(0), f); err != nil {
			fmt.Fprintln(a.errw, err)
			return 1
		}
	}
	if *draft != "" {
		d, err := opts.Drafts.LoadDraft(*draft)
		if err != nil {
			fmt.Fprintln(a.errw, err)
			return draftExit(err)
		}
		opts.Text, opts.Draft, opts.Provider = d.Content, d.Name, d.Provider
	}
	if err := ui.Run(opts); err != nil {
		a.log.Error("editor failed", zap.Error(err))
		fmt.Fprintln(a.errw, err)
		return 1
	}
	return 0
}

func openLogFile(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, err
	}
	return os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
}
