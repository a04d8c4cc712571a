package cli

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/agentx-labs/metaregistry/internal/config"
	"github.com/agentx-labs/metaregistry/internal/presets"
	"github.com/spf13/cobra"
)

var (
	presetsListJSON bool
	presetsOutput   string
)

func init() {
	presetsListCmd.Flags().BoolVar(&presetsListJSON, "json", false, "Output in JSON format")
	presetsShowCmd.Flags().StringVarP(&presetsOutput, "output", "o", "", "Output format: json or yaml (default from config)")
	presetsCmd.AddCommand(presetsListCmd)
	presetsCmd.AddCommand(presetsShowCmd)
	rootCmd.AddCommand(presetsCmd)
}

var presetsCmd = &cobra.Command{
	Use:   "presets",
	Short: "Inspect registry presets",
	Long: `Registry presets are named partial registries that a project opts into with
registryPresets. They are read from the configured preset directories first,
then from the presets built into this binary.`,
}

var presetsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List available presets",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		infos, err := presets.List(presets.DefaultSources(config.PresetDirs()...))
		if err != nil {
			return err
		}

		if presetsListJSON {
			data, err := json.MarshalIndent(infos, "", "  ")
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return err
		}

		if len(infos) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No presets available.")
			return nil
		}
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
		fmt.Fprintln(w, "NAME\tSOURCE\tLOCATION")
		for _, info := range infos {
			fmt.Fprintf(w, "%s\t%s\t%s\n", info.Name, info.Source, info.Location)
		}
		return w.Flush()
	},
}

var presetsShowCmd = &cobra.Command{
	Use:   "show <name>",
	Short: "Print a preset's registry",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := outputFormat(presetsOutput)
		if err != nil {
			return err
		}

		store := presets.NewSourceStore(presets.DefaultSources(config.PresetDirs()...)...)
		r, err := store.Load(args[0])
		if err != nil {
			return err
		}
		return render(cmd.OutOrStdout(), r, format)
	},
}
