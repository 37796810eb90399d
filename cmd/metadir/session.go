package metadir

import (
	"fmt"
	"io"
	"os"

	"github.com/arthur-debert/metadir/pkg/config"
	"github.com/arthur-debert/metadir/pkg/errors"
	"github.com/arthur-debert/metadir/pkg/filesystem"
	"github.com/arthur-debert/metadir/pkg/logging"
	"github.com/arthur-debert/metadir/pkg/paths"
	"github.com/arthur-debert/metadir/pkg/repo"
	"github.com/arthur-debert/metadir/pkg/ui"
	"github.com/arthur-debert/metadir/pkg/ui/confirmations"
	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// globalFlags are the persistent flags of the root command
type globalFlags struct {
	dir          string
	prefix       string
	recordFormat string
	output       string
	verbosity    int
	noColor      bool
}

// app is the state shared by every subcommand once flags are parsed
type app struct {
	flags    globalFlags
	settings *config.Settings
	cwd      string
}

// overrides maps the flags the user actually set onto settings keys, so
// unset flags don't shadow the settings file or the environment
func (a *app) overrides(cmd *cobra.Command) (map[string]interface{}, error) {
	o := map[string]interface{}{}
	flags := cmd.Flags()
	if flags.Changed("dir") {
		dir, err := paths.Absolutize(paths.ExpandHome(a.flags.dir), a.cwd)
		if err != nil {
			return nil, err
		}
		o["base_dir"] = dir
	}
	if flags.Changed("prefix") {
		o["prefix"] = a.flags.prefix
	}
	if flags.Changed("record-format") {
		o["format"] = a.flags.recordFormat
	}
	if flags.Changed("output") {
		o["output"] = a.flags.output
	}
	if flags.Changed("verbose") {
		o["verbosity"] = a.flags.verbosity
	}
	if flags.Changed("no-color") {
		o["no_color"] = a.flags.noColor
	}
	return o, nil
}

// setup resolves the working directory and settings, then configures logging
func (a *app) setup(cmd *cobra.Command) error {
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf(MsgErrCurrentDir, err)
	}
	if a.cwd, err = paths.Absolutize(cwd, cwd); err != nil {
		return fmt.Errorf(MsgErrCurrentDir, err)
	}

	overrides, err := a.overrides(cmd)
	if err != nil {
		return err
	}
	settings, err := config.LoadSettings(overrides)
	if err != nil {
		return err
	}
	a.settings = settings

	logging.SetupLogger(settings.Verbosity)
	log.Debug().
		Str("command", cmd.Name()).
		Str("baseDir", settings.BaseDir).
		Str("cwd", a.cwd).
		Msg("Command started")
	return nil
}

// withRepo opens the repository for the duration of fn. A repository held
// by another process is reported as an error.
func (a *app) withRepo(fn func(r *repo.Repo) error) error {
	r, err := repo.Open(filesystem.NewOS(), a.settings.RepoConfig())
	if err != nil {
		return err
	}
	if r == nil {
		return errors.Newf(errors.ErrCouldNotLock, MsgRepoBusy, a.settings.BaseDir)
	}
	defer func() {
		if err := r.Close(); err != nil {
			log.Warn().Err(err).Msg("Failed to release repository lock")
		}
	}()
	return fn(r)
}

// renderer picks the output format for cmd's output stream
func (a *app) renderer(cmd *cobra.Command) (ui.Renderer, error) {
	format, err := ui.ParseFormat(a.settings.Output)
	if err != nil {
		return nil, fmt.Errorf(MsgErrOutputFormat, err)
	}
	return newRenderer(format, a.settings.NoColor, cmd.OutOrStdout())
}

func newRenderer(format ui.Format, noColor bool, out io.Writer) (ui.Renderer, error) {
	if f, ok := out.(*os.File); ok {
		format = ui.ResolveFormat(format, noColor, f)
	} else if format == ui.FormatAuto || (noColor && format == ui.FormatTerminal) {
		format = ui.FormatText
	}
	return ui.NewRenderer(format, out)
}

// reportError renders a failed command's error in the selected output
// format. JSON errors go to stdout with the rest of the JSON output; the
// other formats write to stderr.
func (a *app) reportError(cmd *cobra.Command, err error) {
	output, noColor := a.flags.output, a.flags.noColor
	if a.settings != nil {
		output, noColor = a.settings.Output, a.settings.NoColor
	}
	format, perr := ui.ParseFormat(output)
	if perr != nil {
		format = ui.FormatAuto
	}

	out := cmd.ErrOrStderr()
	if format == ui.FormatJSON {
		out = cmd.OutOrStdout()
	}
	r, rerr := newRenderer(format, noColor, out)
	if rerr == nil {
		rerr = r.RenderError(err)
	}
	if rerr != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
	}
}

func (a *app) render(cmd *cobra.Command, result interface{}) error {
	r, err := a.renderer(cmd)
	if err != nil {
		return err
	}
	return r.RenderResult(result)
}

func (a *app) message(cmd *cobra.Command, msg string) error {
	r, err := a.renderer(cmd)
	if err != nil {
		return err
	}
	return r.RenderMessage(msg)
}

// interactive reports whether answers can be read from cmd's input. Readers
// other than files are set by callers that mean to answer.
func interactive(in io.Reader) bool {
	f, ok := in.(*os.File)
	if !ok {
		return true
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// dialog prompts on stderr so structured output on stdout stays clean
func dialog(cmd *cobra.Command) *confirmations.ConsoleDialog {
	return confirmations.NewConsoleDialog(cmd.InOrStdin(), cmd.ErrOrStderr())
}
