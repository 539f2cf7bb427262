// Package cli builds the outparse command tree
package cli

import (
	"embed"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/arthur-debert/outparse/internal/version"
	"github.com/arthur-debert/outparse/pkg/cobrax/topics"
	"github.com/arthur-debert/outparse/pkg/config"
	"github.com/arthur-debert/outparse/pkg/logging"
	"github.com/arthur-debert/outparse/pkg/output"
)

//go:embed topics
var topicFiles embed.FS

// setupLogging is replaced in tests
var setupLogging = logging.SetupLogger

// app holds the global flags and the lazily loaded configuration shared by
// every command
type app struct {
	verbosity  int
	configPath string
	formatName string

	format output.Format
	cfg    *config.Config
}

// config loads the configuration once per invocation
func (a *app) config() (*config.Config, error) {
	if a.cfg != nil {
		return a.cfg, nil
	}
	cfg, err := config.Load(config.Options{Path: a.configPath})
	if err != nil {
		return nil, err
	}
	log.Debug().Strs("sources", cfg.Sources()).Msg("configuration loaded")
	a.cfg = cfg
	return cfg, nil
}

// resolve turns the auto format into a concrete one for w
func (a *app) resolve(w io.Writer) output.Format {
	if f, ok := w.(*os.File); ok {
		return a.format.Resolve(f)
	}
	if a.format == output.FormatAuto {
		return output.FormatText
	}
	return a.format
}

// renderer returns a renderer for the command's standard output
func (a *app) renderer(cmd *cobra.Command) *output.Renderer {
	return output.NewRenderer(cmd.OutOrStdout(), a.resolve(cmd.OutOrStdout()))
}

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	rootCmd, _ := newRootCmd()
	return rootCmd
}

func newRootCmd() (*cobra.Command, *app) {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:     "outparse",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Version: version.Version,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			setupLogging(a.verbosity)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")

			format, err := output.ParseFormat(a.formatName)
			if err != nil {
				return err
			}
			a.format = format
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = cmd.Help()
			return fmt.Errorf("no command specified")
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		DisableAutoGenTag: true,
	}

	// Global flags
	rootCmd.PersistentFlags().CountVarP(&a.verbosity, "verbose", "v", MsgFlagVerbose)
	rootCmd.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", MsgFlagConfig)
	rootCmd.PersistentFlags().StringVarP(&a.formatName, "format", "f", "auto", MsgFlagFormat)
	_ = rootCmd.RegisterFlagCompletionFunc("format", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return output.FormatNames(), cobra.ShellCompDirectiveNoFileComp
	})

	rootCmd.AddGroup(&cobra.Group{ID: "parse", Title: "PARSING:"})
	rootCmd.AddGroup(&cobra.Group{ID: "config", Title: "CONFIGURATION:"})
	rootCmd.AddGroup(&cobra.Group{ID: "misc", Title: "MISC:"})

	rootCmd.AddCommand(newParseCmd(a))
	rootCmd.AddCommand(newDescribeCmd(a))
	rootCmd.AddCommand(newActionsCmd(a))
	rootCmd.AddCommand(newFormatsCmd(a))
	rootCmd.AddCommand(newValidateCmd(a))
	rootCmd.AddCommand(newGenConfigCmd(a))
	rootCmd.AddCommand(newCompletionCmd())
	rootCmd.AddCommand(newVersionCmd())

	manager, err := topics.Load(topicFiles, "topics", topics.Options{
		Renderer: topics.MarkdownRenderer{Format: output.FormatAuto.Resolve(os.Stdout)},
	})
	if err == nil {
		topics.Install(rootCmd, manager)
	}

	return rootCmd, a
}

// Execute runs the command line and returns the process exit code. Errors
// are rendered on standard error in the selected output format.
func Execute() int {
	rootCmd, a := newRootCmd()
	return execute(rootCmd, a)
}

func execute(rootCmd *cobra.Command, a *app) int {
	err := rootCmd.Execute()
	if err == nil {
		return 0
	}

	stderr := rootCmd.ErrOrStderr()
	renderer := output.NewRenderer(stderr, a.resolve(stderr))
	if renderErr := renderer.RenderError(err); renderErr != nil {
		_, _ = fmt.Fprintf(stderr, "Error: %v\n", err)
	}
	return 1
}
