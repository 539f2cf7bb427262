package cli

import (
	"github.com/spf13/cobra"

	"github.com/arthur-debert/outparse/pkg/output"
)

func newActionsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "actions",
		Short:   MsgActionsShort,
		GroupID: "config",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.config()
			if err != nil {
				return err
			}

			renderer := a.renderer(cmd)
			names := cfg.ActionNames()
			if len(names) == 0 && !structured(renderer.Format()) {
				return renderer.RenderMessage("Muted", MsgNoActions)
			}

			rows := make([]interface{}, 0, len(names))
			for _, name := range names {
				def := cfg.Actions[name]
				row := map[string]interface{}{
					"name":    name,
					"kind":    def.Kind(),
					"command": def.Command,
				}
				if def.RuleSet != nil {
					row["mode"] = string(def.RuleSet.Mode)
				}
				rows = append(rows, row)
			}
			return renderer.Render(rows)
		},
	}
}

func newFormatsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "formats",
		Short:   MsgFormatsShort,
		GroupID: "config",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.config()
			if err != nil {
				return err
			}

			renderer := a.renderer(cmd)
			catalog := cfg.Catalog()
			if catalog.Len() == 0 && !structured(renderer.Format()) {
				return renderer.RenderMessage("Muted", MsgNoFormats)
			}

			rows := make([]interface{}, 0, catalog.Len())
			for _, name := range catalog.Names() {
				format, _ := catalog.Lookup(name)
				headers := make([]interface{}, len(format.Headers))
				for i, h := range format.Headers {
					headers[i] = h
				}
				rows = append(rows, map[string]interface{}{
					"name":       name,
					"headers":    headers,
					"delimiter":  format.Delimiter,
					"skip_lines": float64(format.SkipLines),
				})
			}
			return renderer.Render(rows)
		},
	}
}

// structured reports whether f is meant for other programs
func structured(f output.Format) bool {
	switch f {
	case output.FormatJSON, output.FormatYAML, output.FormatTOML, output.FormatXML:
		return true
	}
	return false
}
