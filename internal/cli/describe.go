package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arthur-debert/outparse/pkg/describe"
	"github.com/arthur-debert/outparse/pkg/errors"
	"github.com/arthur-debert/outparse/pkg/output"
)

func newDescribeCmd(a *app) *cobra.Command {
	var width int

	cmd := &cobra.Command{
		Use:               "describe ACTION",
		Short:             MsgDescribeShort,
		GroupID:           "parse",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: a.completeActions,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.config()
			if err != nil {
				return err
			}
			def, err := cfg.Action(args[0])
			if err != nil {
				return err
			}

			format := a.resolve(cmd.OutOrStdout())
			if structured(format) {
				data, err := toData(def)
				if err != nil {
					return err
				}
				return a.renderer(cmd).Render(data)
			}

			markdown := describe.Action(def, cfg.Catalog())
			_, err = fmt.Fprint(cmd.OutOrStdout(), output.RenderMarkdown(markdown, format, width))
			return err
		},
	}

	cmd.Flags().IntVar(&width, "width", 0, "Wrap text at this width (0 keeps the default)")
	return cmd
}

// toData converts a value with JSON tags into the map and slice model the
// renderers accept
func toData(v interface{}) (interface{}, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrRender, "failed to encode definition")
	}
	var data interface{}
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, errors.Wrap(err, errors.ErrRender, "failed to encode definition")
	}
	return data, nil
}
