package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/uben0/prove/config"
	"github.com/uben0/prove/logging"
	"github.com/uben0/prove/proof"
	"github.com/uben0/prove/prop"
	"github.com/uben0/prove/render"
	"github.com/uben0/prove/rule"
	"github.com/uben0/prove/sequent"
	"github.com/uben0/prove/session"
	"github.com/uben0/prove/theme"
	"github.com/uben0/prove/tui"
	"github.com/uben0/prove/valid"
)

// defaultFile is the file sequents are read from when none is given.
const defaultFile = "sequents.txt"

// options holds the global flags and the configuration they override.
type options struct {
	configPath string
	unicode    bool
	negation   bool
	color      string
	logLevel   string
	logFile    string
	timeout    time.Duration

	cfg config.Config
}

func newRootCmd() *cobra.Command {
	var (
		o        options
		sequents []string
	)
	root := &cobra.Command{
		Use:   "prove [file]",
		Short: "Prove propositional sequents with natural deduction",
		Long: `prove lets you build natural deduction proofs of propositional sequents,
one rule at a time. Sequents are read from a file, one per line (default ` + defaultFile + `),
or given with --sequent. Type :h during a session for the list of commands.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return o.load(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.runSession(cmd, args, sequents)
		},
	}
	pf := root.PersistentFlags()
	pf.StringVar(&o.configPath, "config", "", "config file (default is $XDG_CONFIG_HOME/prove/config.yaml)")
	pf.BoolVar(&o.unicode, "unicode", false, "print formulas with unicode symbols")
	pf.BoolVar(&o.negation, "negation", true, "print P -> ! as ~P")
	pf.StringVar(&o.color, "color", "auto", "when to color the output: auto, always or never")
	pf.StringVar(&o.logLevel, "log-level", "info", "minimum level of logged records: debug, info, warn or error")
	pf.StringVar(&o.logFile, "log-file", "", "file the logs are appended to")
	pf.DurationVar(&o.timeout, "timeout", 10*time.Second, "maximum duration of a validity check")
	root.Flags().StringArrayVarP(&sequents, "sequent", "s", nil, "sequent to prove, instead of reading a file (repeatable)")

	root.AddCommand(newRenderCmd(&o), newCheckCmd(&o), newConfigCmd(&o))
	return root
}

// load reads the configuration file and applies the flags set on the command line.
func (o *options) load(cmd *cobra.Command) error {
	var err error
	if o.configPath != "" {
		o.cfg, err = config.Load(o.configPath)
	} else {
		o.cfg, err = loadDefaultConfig()
	}
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("unicode") {
		o.cfg.Style.Unicode = o.unicode
	}
	if flags.Changed("negation") {
		o.cfg.Style.Negation = o.negation
	}
	if flags.Changed("color") {
		o.cfg.Style.Highlight = o.color
	}
	if flags.Changed("log-level") {
		o.cfg.Log.Level = o.logLevel
	}
	if flags.Changed("log-file") {
		o.cfg.Log.File = o.logFile
	}
	return o.cfg.Validate()
}

func loadDefaultConfig() (config.Config, error) {
	path, err := config.DefaultPath()
	if err != nil {
		return config.Default(), nil
	}
	cfg, err := config.Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return config.Default(), nil
	}
	return cfg, err
}

func (o *options) style() prop.Style {
	return prop.Style{Unicode: o.cfg.Style.Unicode, Negation: o.cfg.Style.Negation}
}

func (o *options) theme(w io.Writer) *theme.Theme {
	mode, err := theme.ParseMode(o.cfg.Style.Highlight)
	if err != nil {
		mode = theme.Auto
	}
	return theme.For(w, mode)
}

// logger returns the logger of a command. A quiet logger only writes to the log file.
func (o *options) logger(w io.Writer, quiet bool) (*logging.Logger, error) {
	level, err := logging.ParseLevel(o.cfg.Log.Level)
	if err != nil {
		return nil, err
	}
	return logging.New(logging.Config{
		Level:  level,
		File:   o.cfg.Log.File,
		JSON:   o.cfg.Log.JSON,
		Quiet:  quiet,
		Output: w,
	})
}

func (o *options) checkContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if o.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, o.timeout)
}

func (o *options) runSession(cmd *cobra.Command, args []string, texts []string) error {
	var (
		seqs []sequent.Sequent
		err  error
	)
	switch {
	case len(texts) > 0 && len(args) > 0:
		return errors.New("a file and --sequent cannot be both given")
	case len(texts) > 0:
		for i, text := range texts {
			s, err := sequent.Parse(text)
			if err != nil {
				return fmt.Errorf("sequent #%d: %w", i+1, err)
			}
			seqs = append(seqs, s)
		}
	default:
		path := defaultFile
		if len(args) == 1 {
			path = args[0]
		}
		if seqs, err = session.LoadFile(path); err != nil {
			return err
		}
	}
	interactive := isTerminal(cmd.InOrStdin()) && isTerminal(cmd.OutOrStdout())
	logger, err := o.logger(cmd.ErrOrStderr(), interactive)
	if err != nil {
		return err
	}
	defer logger.Close()
	th := o.theme(cmd.OutOrStdout())
	sess, err := session.New(seqs, session.Options{
		Style:        o.style(),
		Emphasis:     o.cfg.Style.Emphasis,
		Painter:      th,
		Logger:       logger.Logger,
		CheckTimeout: o.timeout,
	})
	if err != nil {
		return err
	}
	if interactive {
		logger.Debug("starting interactive session", "sequents", len(seqs))
		return tui.Run(cmd.Context(), sess, tui.Config{Theme: th, CheckTimeout: o.timeout})
	}
	logger.Debug("starting line session", "sequents", len(seqs))
	return session.RunLines(cmd.Context(), sess, cmd.InOrStdin(), cmd.OutOrStdout())
}

func isTerminal(v any) bool {
	f, ok := v.(*os.File)
	return ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()))
}

func newRenderCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "render <sequent> [rule...]",
		Short: "Apply rules to a sequent and print the proof",
		Long: `render applies each rule request in order to the next goal of the proof of
the sequent, then prints the proof. Each rule request is a single argument,
such as "e 0" or "de A, B".`,
		Example: `  prove render '|- A -> A' ii h
  prove render 'P \/ Q, P -> R, Q -> R |- R' 'e 0' 'e 1' h 'e 2' h`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := o.logger(cmd.ErrOrStderr(), false)
			if err != nil {
				return err
			}
			defer logger.Close()
			p, err := proof.Parse(args[0])
			if err != nil {
				return err
			}
			var applyErr error
			for i, arg := range args[1:] {
				req, err := rule.ParseRequest(arg)
				if err == nil {
					p, err = p.ProveNext(req)
				}
				if err != nil {
					applyErr = fmt.Errorf("rule #%d %q: %w", i+1, arg, err)
					break
				}
				logger.Debug("rule applied", "request", req.String())
			}
			opts := render.Options{Style: o.style(), Painter: o.theme(cmd.OutOrStdout()), Emphasis: o.cfg.Style.Emphasis}
			fmt.Fprint(cmd.OutOrStdout(), render.String(p, opts))
			return applyErr
		},
	}
}

func newCheckCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "check <sequent>...",
		Short: "Tell whether sequents are classically valid",
		Long: `check tells whether each sequent is classically valid, giving a countermodel
when it is not. Natural deduction is intuitionistic here: a valid sequent, such
as |- A \/ ~A, may have no proof. An invalid one never has.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st := o.style()
			for _, arg := range args {
				s, err := sequent.Parse(arg)
				if err != nil {
					return fmt.Errorf("%q: %w", arg, err)
				}
				ctx, cancel := o.checkContext(cmd.Context())
				res, err := valid.Check(ctx, s)
				cancel()
				if err != nil {
					return fmt.Errorf("%s: %w", s.Format(st, false), err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", s.Format(st, false), res)
			}
			return nil
		},
	}
}

func newConfigCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the configuration in effect",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := o.cfg.YAML()
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
}
