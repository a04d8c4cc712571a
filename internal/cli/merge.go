package cli

import (
	"fmt"
	"os"

	"github.com/agentx-labs/metaregistry/internal/registry"
	"github.com/spf13/cobra"
)

var mergeOutput string

var mergeCmd = &cobra.Command{
	Use:   "merge <original-file> <overrides-file>",
	Short: "Merge two registry documents",
	Long: `Merge two registry documents (JSON or YAML) category by category. Keys in the
overrides document replace the same keys in the original document.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := outputFormat(mergeOutput)
		if err != nil {
			return err
		}

		original, err := readRegistryFile(args[0])
		if err != nil {
			return err
		}
		overrides, err := readRegistryFile(args[1])
		if err != nil {
			return err
		}

		return render(cmd.OutOrStdout(), registry.Merge(original, overrides), format)
	},
}

func init() {
	mergeCmd.Flags().StringVarP(&mergeOutput, "output", "o", "", "Output format: json or yaml (default from config)")
	rootCmd.AddCommand(mergeCmd)
}

func readRegistryFile(path string) (registry.Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return registry.Registry{}, fmt.Errorf("reading registry file: %w", err)
	}
	r, err := registry.Decode(data)
	if err != nil {
		return registry.Registry{}, fmt.Errorf("%s: %w", path, err)
	}
	return r, nil
}
