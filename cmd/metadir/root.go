package metadir

import (
	"fmt"
	"io"

	"github.com/arthur-debert/metadir/internal/version"
	"github.com/spf13/cobra"
)

// NewRootCmd creates and returns the root command. It does not print the
// errors its commands return; Execute does that in the selected format.
func NewRootCmd() *cobra.Command {
	return newRootCmd(&app{})
}

// Execute runs metadir with args and returns the process exit status.
// A failing command has its error rendered in the format chosen by
// --output, so JSON consumers get a JSON error document.
func Execute(args []string, in io.Reader, out, errOut io.Writer) int {
	a := &app{}
	rootCmd := newRootCmd(a)
	rootCmd.SetArgs(args)
	rootCmd.SetIn(in)
	rootCmd.SetOut(out)
	rootCmd.SetErr(errOut)

	cmd, err := rootCmd.ExecuteC()
	if err == nil {
		return 0
	}
	if cmd == nil {
		cmd = rootCmd
	}
	a.reportError(cmd, err)
	return 1
}

func newRootCmd(a *app) *cobra.Command {
	// Initialize custom template formatting functions
	initTemplateFormatting()

	rootCmd := &cobra.Command{
		Use:     "metadir",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Version: version.Version,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand: show help but report incorrect usage
			_ = cmd.Help()
			return fmt.Errorf(MsgErrNoCommand)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		DisableAutoGenTag: true,
	}

	// Global flags
	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&a.flags.dir, "dir", "d", "", MsgFlagDir)
	flags.StringVar(&a.flags.prefix, "prefix", "", MsgFlagPrefix)
	flags.StringVar(&a.flags.recordFormat, "record-format", "", MsgFlagRecordFormat)
	flags.StringVarP(&a.flags.output, "output", "o", "auto", MsgFlagOutput)
	flags.CountVarP(&a.flags.verbosity, "verbose", "v", MsgFlagVerbose)
	flags.BoolVar(&a.flags.noColor, "no-color", false, MsgFlagNoColor)

	rootCmd.AddGroup(&cobra.Group{
		ID:    "core",
		Title: "COMMANDS:",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    "shared",
		Title: "SHARED FILES:",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    "misc",
		Title: "MISC:",
	})

	rootCmd.SetUsageTemplate(MsgUsageTemplate)

	rootCmd.AddCommand(newInfoCmd(a))
	rootCmd.AddCommand(newInitCmd(a))
	rootCmd.AddCommand(newLinkCmd(a))
	rootCmd.AddCommand(newListCmd(a))
	rootCmd.AddCommand(newShowCmd(a))
	rootCmd.AddCommand(newFindCmd(a))
	rootCmd.AddCommand(newRemoveCmd(a))
	rootCmd.AddCommand(newTrashCmd(a))
	rootCmd.AddCommand(newPurgeCmd(a))
	rootCmd.AddCommand(newReadCmd(a))
	rootCmd.AddCommand(newWriteCmd(a))
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newCompletionCmd())
	rootCmd.AddCommand(newManCmd(a))

	return rootCmd
}
