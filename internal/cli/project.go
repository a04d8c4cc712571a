package cli

import (
	"fmt"

	"github.com/agentx-labs/metaregistry/internal/config"
	"github.com/agentx-labs/metaregistry/internal/presets"
	"github.com/agentx-labs/metaregistry/internal/project"
	"github.com/spf13/cobra"
)

var projectDir string

func init() {
	projectCmd.PersistentFlags().StringVar(&projectDir, "project-dir", "", "Project directory (default: current directory)")
	projectCmd.AddCommand(projectAddPresetCmd)
	rootCmd.AddCommand(projectCmd)
}

var projectCmd = &cobra.Command{
	Use:   "project",
	Short: "Manage registry settings in the project file",
}

var projectAddPresetCmd = &cobra.Command{
	Use:   "add-preset <name>",
	Short: "Append a preset to registryPresets",
	Long: `Append a preset to registryPresets in the project file. The preset must be
loadable from the configured preset directories or the builtin presets.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]

		dir, err := resolveProjectDir(projectDir)
		if err != nil {
			return err
		}

		store := presets.NewSourceStore(presets.DefaultSources(config.PresetDirs()...)...)
		if _, err := store.Load(name); err != nil {
			return err
		}

		path, added, err := project.AddPreset(dir, name)
		if err != nil {
			return fmt.Errorf("adding preset %q: %w", name, err)
		}
		if !added {
			fmt.Fprintf(cmd.OutOrStdout(), "Preset %s already listed in %s\n", name, path)
			return nil
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Added preset %s to %s\n", name, path)
		return nil
	},
}
