package cli

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/arthur-debert/outparse/pkg/config"
	"github.com/arthur-debert/outparse/pkg/errors"
	"github.com/arthur-debert/outparse/pkg/rules"
)

func newValidateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "validate [FILE]",
		Short:   MsgValidateShort,
		Long:    MsgValidateLong,
		GroupID: "config",
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				cfg *config.Config
				err error
			)
			if len(args) == 1 {
				cfg, err = config.LoadFile(args[0])
			} else {
				cfg, err = a.config()
			}
			if err != nil {
				return err
			}

			reports := cfg.Validate()
			names := make([]string, 0, len(reports))
			for name := range reports {
				names = append(names, name)
			}
			sort.Strings(names)

			failed := 0
			for _, name := range names {
				if !reports[name].OK() {
					failed++
				}
			}

			renderer := a.renderer(cmd)
			if structured(renderer.Format()) {
				if err := renderer.Render(reportData(names, reports)); err != nil {
					return err
				}
			} else {
				for _, name := range names {
					for _, line := range reportLines(name, reports[name]) {
						style := "Muted"
						if !reports[name].OK() {
							style = "Error"
						}
						if err := renderer.RenderMessage(style, line); err != nil {
							return err
						}
					}
				}
			}

			if failed > 0 {
				return errors.Newf(errors.ErrConfigValid, MsgErrInvalidCount, failed).
					WithDetail("failed", failed)
			}
			return nil
		},
	}
}

func reportLines(name string, report *rules.Report) []string {
	var lines []string
	switch {
	case !report.OK():
		lines = append(lines, fmt.Sprintf(MsgValidationFailed, name, len(report.Errors)))
	case len(report.Warnings) > 0:
		lines = append(lines, fmt.Sprintf(MsgValidationWarned, name, len(report.Warnings)))
	default:
		lines = append(lines, fmt.Sprintf(MsgValidationOK, name))
	}
	for _, err := range report.Errors {
		lines = append(lines, fmt.Sprintf(MsgValidationItem, err))
	}
	for _, warning := range report.Warnings {
		lines = append(lines, fmt.Sprintf(MsgValidationItem, warning))
	}
	return lines
}

func reportData(names []string, reports map[string]*rules.Report) map[string]interface{} {
	data := make(map[string]interface{}, len(names))
	for _, name := range names {
		report := reports[name]
		errs := make([]interface{}, len(report.Errors))
		for i, err := range report.Errors {
			errs[i] = err.Error()
		}
		warnings := make([]interface{}, len(report.Warnings))
		for i, w := range report.Warnings {
			warnings[i] = w
		}
		data[name] = map[string]interface{}{
			"ok":       report.OK(),
			"errors":   errs,
			"warnings": warnings,
		}
	}
	return data
}
