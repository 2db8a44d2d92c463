package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"codesync/internal/config"
	"codesync/internal/engine"
	"codesync/internal/engine/opts"
	"codesync/internal/output"
	"codesync/internal/termcolor"
	"codesync/internal/util"
)

const (
	exitOK     = 0
	exitIssues = 1
	exitError  = 2
)

func main() {
	log.SetFlags(0)

	args := os.Args[1:]
	cmd := "check"
	if len(args) > 0 && !strings.HasPrefix(args[0], "-") {
		cmd = args[0]
		args = args[1:]
	}

	switch cmd {
	case "check":
		os.Exit(checkCmd(args))
	case "show":
		os.Exit(showCmd(args))
	case "list":
		os.Exit(listCmd(args))
	case "serve":
		os.Exit(serveCmd(args))
	case "help":
		usage(os.Stdout)
		os.Exit(exitOK)
	default:
		fmt.Fprintf(os.Stderr, "codesync: unknown command %q\n\n", cmd)
		usage(os.Stderr)
		os.Exit(exitError)
	}
}

func usage(w *os.File) {
	fmt.Fprint(w, `Usage: codesync [command] [flags]

Commands:
  check   scan the repository and validate annotation counts (default)
  show    print the locations of one label
  list    print all labels (or label details with --table)
  serve   run the local web UI
  help    show this help

Run 'codesync <command> -h' for command flags.
`)
}

// multiFlag collects repeated flag values (--path a --path b).
type multiFlag []string

func (m *multiFlag) String() string { return strings.Join(*m, ",") }

func (m *multiFlag) Set(v string) error {
	*m = append(*m, v)
	return nil
}

// engineFlags holds the flag values shared by check/show/list.
type engineFlags struct {
	tag        string
	repo       string
	configPath string
	paths      multiFlag
	excludes   multiFlag
	exTypical  bool
	maxBytes   int
	jobs       int
	output     string
	color      string
	noProgress bool
	forceProg  bool
}

func registerEngineFlags(fs *flag.FlagSet, ef *engineFlags) {
	fs.StringVar(&ef.tag, "tag", "", "marker keyword (default CODESYNC)")
	fs.StringVar(&ef.repo, "repo", "", "scan root (default: current dir)")
	fs.StringVar(&ef.configPath, "config", "", "config file path (overrides discovery)")
	fs.Var(&ef.paths, "path", "limit the scan to this pathspec (repeatable)")
	fs.Var(&ef.excludes, "exclude", "exclude this glob from the scan (repeatable)")
	fs.BoolVar(&ef.exTypical, "exclude-typical", false, "skip vendor/, node_modules/, minified files etc.")
	fs.IntVar(&ef.maxBytes, "max-file-bytes", 0, "skip files larger than N bytes (0=unlimited)")
	fs.IntVar(&ef.jobs, "jobs", 0, "max parallel workers (default: CPU count)")
	fs.StringVar(&ef.output, "output", "", "table|json|ndjson|csv|markdown")
	fs.StringVar(&ef.color, "color", "", "auto|always|never")
	fs.BoolVar(&ef.noProgress, "no-progress", false, "disable progress output")
	fs.BoolVar(&ef.forceProg, "progress", false, "force progress even when piped")
}

// layer converts explicitly-set flags into a config layer. Flags the
// user did not touch stay nil so lower layers keep their values.
func (ef *engineFlags) layer(fs *flag.FlagSet) config.EngineConfig {
	var layer config.EngineConfig
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "tag":
			layer.Tag = &ef.tag
		case "repo":
			layer.Repo = &ef.repo
		case "path":
			vals := []string(ef.paths)
			layer.Paths = &vals
		case "exclude":
			vals := []string(ef.excludes)
			layer.Excludes = &vals
		case "exclude-typical":
			layer.ExcludeTypical = &ef.exTypical
		case "max-file-bytes":
			layer.MaxFileBytes = &ef.maxBytes
		case "jobs":
			layer.Jobs = &ef.jobs
		case "output":
			layer.Output = &ef.output
		case "color":
			layer.Color = &ef.color
		}
	})
	return layer
}

// runSettings is everything a command needs after config resolution.
type runSettings struct {
	opts   engine.Options
	output string
	colors bool
}

// resolveSettings layers config file, environment and flags over the
// defaults. Precedence (low to high): defaults, file, env, flags.
func resolveSettings(fs *flag.FlagSet, ef *engineFlags) (runSettings, error) {
	def := opts.Defaults(".")
	base := config.EngineSettings{
		Tag:    def.Tag,
		Repo:   def.RepoDir,
		Jobs:   def.Jobs,
		Output: "table",
		Color:  "auto",
	}

	envCfg, err := config.FromEnv(os.Getenv)
	if err != nil {
		return runSettings{}, err
	}

	explicit := ef.configPath
	if explicit == "" {
		explicit = os.Getenv("CODESYNC_CONFIG")
	}
	repoHint := config.ResolveAndTrim(base.Repo, envCfg.Engine.Repo)
	if ef.repo != "" {
		repoHint = ef.repo
	}
	home, _ := os.UserHomeDir()
	path, _, err := config.Find(repoHint, explicit, os.Getenv("XDG_CONFIG_HOME"), home)
	if err != nil {
		return runSettings{}, err
	}
	var fileCfg config.Config
	if path != "" {
		fileCfg, err = config.Load(path)
		if err != nil {
			return runSettings{}, fmt.Errorf("load config %s: %w", path, err)
		}
	}

	merged := config.MergeEngine(base, fileCfg.Engine, envCfg.Engine, ef.layer(fs))

	o := merged.ToOptions()
	if err := opts.NormalizeAndValidate(&o); err != nil {
		return runSettings{}, err
	}
	o.Progress = util.ShouldShowProgress(ef.forceProg, ef.noProgress)

	format, err := opts.NormalizeOutput(merged.Output)
	if err != nil {
		return runSettings{}, err
	}

	mode, err := termcolor.ParseMode(merged.Color)
	if err != nil {
		return runSettings{}, err
	}
	if mode == termcolor.ModeAuto {
		mode = termcolor.DetectMode(os.Stdout, termcolor.EnvMap(os.Environ()))
	}

	return runSettings{
		opts:   o,
		output: format,
		colors: termcolor.Enabled(mode, os.Stdout),
	}, nil
}

func checkCmd(args []string) int {
	fs := flag.NewFlagSet("check", flag.ExitOnError)
	var ef engineFlags
	registerEngineFlags(fs, &ef)
	_ = fs.Parse(args)

	st, err := resolveSettings(fs, &ef)
	if err != nil {
		return fail(err)
	}

	res, err := engine.Run(st.opts)
	if err != nil {
		return fail(err)
	}
	for _, se := range res.Errors {
		fmt.Fprintf(os.Stderr, "warning: %s: %s (%s)\n", se.File, se.Message, se.Stage)
	}

	switch st.output {
	case "json":
		err = output.WriteJSON(os.Stdout, res)
	case "ndjson":
		err = output.WriteNDJSON(os.Stdout, res.Issues)
	case "csv":
		err = output.WriteCSV(os.Stdout, res.Issues)
	case "markdown":
		err = output.WriteMarkdownTable(os.Stdout, res.Issues)
	default:
		err = output.WriteReport(os.Stdout, res, st.colors)
	}
	if err != nil {
		return fail(err)
	}

	if !res.Clean() {
		return exitIssues
	}
	return exitOK
}

func showCmd(args []string) int {
	fs := flag.NewFlagSet("show", flag.ExitOnError)
	var ef engineFlags
	registerEngineFlags(fs, &ef)
	_ = fs.Parse(args)

	if fs.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: codesync show [flags] <label>")
		return exitError
	}
	label := fs.Arg(0)

	st, err := resolveSettings(fs, &ef)
	if err != nil {
		return fail(err)
	}

	res, err := engine.Run(st.opts)
	if err != nil {
		return fail(err)
	}

	comments, err := res.CommentsForLabel(label)
	if err != nil {
		fmt.Fprintf(os.Stderr, "codesync: no comments with label `%s`\n", label)
		return exitIssues
	}
	if err := output.WriteLocations(os.Stdout, comments); err != nil {
		return fail(err)
	}
	return exitOK
}

func listCmd(args []string) int {
	fs := flag.NewFlagSet("list", flag.ExitOnError)
	var ef engineFlags
	table := fs.Bool("table", false, "show counts and locations per label")
	registerEngineFlags(fs, &ef)
	_ = fs.Parse(args)

	st, err := resolveSettings(fs, &ef)
	if err != nil {
		return fail(err)
	}

	res, err := engine.Run(st.opts)
	if err != nil {
		return fail(err)
	}

	if *table {
		if err := output.WriteLabelTable(os.Stdout, res.Groups, st.colors); err != nil {
			return fail(err)
		}
		return exitOK
	}
	if err := output.WriteLabels(os.Stdout, res.Labels()); err != nil {
		return fail(err)
	}
	return exitOK
}

func fail(err error) int {
	fmt.Fprintf(os.Stderr, "codesync: %v\n", err)
	return exitError
}

func mustAbs(p string) string {
	abs, err := filepath.Abs(p)
	if err != nil {
		return p
	}
	return abs
}
