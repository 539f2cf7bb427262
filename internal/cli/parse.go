package cli

import (
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/arthur-debert/outparse/pkg/errors"
	"github.com/arthur-debert/outparse/pkg/logging"
	"github.com/arthur-debert/outparse/pkg/parser"
)

func newParseCmd(a *app) *cobra.Command {
	var noCache bool

	cmd := &cobra.Command{
		Use:               "parse ACTION [FILE|-]",
		Short:             MsgParseShort,
		Long:              MsgParseLong,
		Example:           MsgParseExample,
		GroupID:           "parse",
		Args:              cobra.RangeArgs(1, 2),
		ValidArgsFunction: a.completeActions,
		RunE: func(cmd *cobra.Command, args []string) error {
			defer logging.LogDuration(time.Now(), "parse")

			cfg, err := a.config()
			if err != nil {
				return err
			}
			def, err := cfg.Action(args[0])
			if err != nil {
				return err
			}

			source := "-"
			if len(args) == 2 {
				source = args[1]
			}
			text, err := readInput(cmd, source)
			if err != nil {
				return err
			}

			var opts []parser.Option
			if noCache {
				opts = append(opts, parser.WithRegexCache(false))
			}
			logger := logging.WithFields(map[string]interface{}{
				"action": def.Name,
				"kind":   def.Kind(),
				"source": source,
			})
			logger.Info().Int("bytes", len(text)).Msg("Parsing output")

			result, err := cfg.NewParser(opts...).Parse(text, def)
			if err != nil {
				logger.Debug().Err(err).Msg("Parse failed")
				return err
			}
			return a.renderer(cmd).Render(result)
		},
	}

	cmd.Flags().BoolVar(&noCache, "no-cache", false, MsgFlagNoCache)
	return cmd
}

// readInput reads FILE, or standard input for "-"
func readInput(cmd *cobra.Command, source string) (string, error) {
	var (
		data []byte
		err  error
	)
	if source == "-" {
		data, err = io.ReadAll(cmd.InOrStdin())
	} else {
		data, err = os.ReadFile(source)
	}
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrInvalidInput, MsgErrReadInput, source).
			WithDetail("path", source)
	}
	return string(data), nil
}

// completeActions completes the first argument with configured action names
func (a *app) completeActions(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveDefault
	}
	cfg, err := a.config()
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	return cfg.ActionNames(), cobra.ShellCompDirectiveNoFileComp
}
