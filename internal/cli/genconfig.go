package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/spf13/cobra"

	"github.com/arthur-debert/outparse/pkg/config"
	"github.com/arthur-debert/outparse/pkg/errors"
)

func newGenConfigCmd(a *app) *cobra.Command {
	var (
		write bool
		path  string
		force bool
	)

	cmd := &cobra.Command{
		Use:     "genconfig",
		Short:   MsgGenConfigShort,
		Example: MsgGenConfigExample,
		GroupID: "config",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			content := config.GenerateConfigContent()
			if !write {
				_, err := fmt.Fprint(cmd.OutOrStdout(), content)
				return err
			}

			target, err := configTarget(path)
			if err != nil {
				return err
			}
			if _, err := os.Stat(target); err == nil && !force {
				return errors.Newf(errors.ErrAlreadyExists, MsgErrConfigExists, target).
					WithDetail("path", target)
			}
			if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
				return errors.Wrapf(err, errors.ErrConfigLoad, MsgErrWriteConfig, target)
			}
			if err := os.WriteFile(target, []byte(content), 0644); err != nil {
				return errors.Wrapf(err, errors.ErrConfigLoad, MsgErrWriteConfig, target)
			}
			return a.renderer(cmd).RenderMessage("Title", fmt.Sprintf(MsgConfigWritten, target))
		},
	}

	cmd.Flags().BoolVarP(&write, "write", "w", false, MsgFlagWrite)
	cmd.Flags().StringVar(&path, "path", "", MsgFlagPath)
	cmd.Flags().BoolVar(&force, "force", false, MsgFlagForce)
	return cmd
}

// configTarget returns path, or the default location under XDG_CONFIG_HOME
func configTarget(path string) (string, error) {
	if path != "" {
		return path, nil
	}
	target, err := xdg.ConfigFile(filepath.Join("outparse", "config.toml"))
	if err != nil {
		return "", errors.Wrap(err, errors.ErrConfigLoad, "cannot resolve the configuration directory")
	}
	return target, nil
}
