package cli

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/agentx-labs/metaregistry/internal/config"
	"github.com/agentx-labs/metaregistry/internal/presets"
	"github.com/agentx-labs/metaregistry/internal/project"
	"github.com/agentx-labs/metaregistry/internal/registry"
	"github.com/agentx-labs/metaregistry/internal/variants"
	"github.com/agentx-labs/metaregistry/internal/watcher"
	"github.com/spf13/cobra"
)

var (
	effectiveProjectDir string
	effectiveOutput     string
	effectiveCategory   string
	effectiveWatch      bool
)

var effectiveCmd = &cobra.Command{
	Use:   "effective",
	Short: "Print the effective registry for a project",
	Long: `Print the baseline registry with the project's registryPresets and
registryCustomizations applied. The project file (sfdx-project.json) is looked
up from --project-dir, or the current directory, and its parents. Without a
project the baseline registry is printed unchanged.`,
	Args: cobra.NoArgs,
	RunE: runEffective,
}

func init() {
	effectiveCmd.Flags().StringVar(&effectiveProjectDir, "project-dir", "", "Project directory (default: current directory)")
	effectiveCmd.Flags().StringVarP(&effectiveOutput, "output", "o", "", "Output format: json or yaml (default from config)")
	effectiveCmd.Flags().StringVar(&effectiveCategory, "category", "", "Print only one category (types, childTypes, suffixes, strictDirectoryNames)")
	effectiveCmd.Flags().BoolVar(&effectiveWatch, "watch", false, "Recompute and print whenever the project file or presets change")
	rootCmd.AddCommand(effectiveCmd)
}

func runEffective(cmd *cobra.Command, args []string) error {
	format, err := outputFormat(effectiveOutput)
	if err != nil {
		return err
	}

	var category registry.Category
	if effectiveCategory != "" {
		if category, err = registry.ParseCategory(effectiveCategory); err != nil {
			return err
		}
	}

	dir, err := resolveProjectDir(effectiveProjectDir)
	if err != nil {
		return err
	}

	logger := newLogger(cmd)
	presetDirs := config.PresetDirs()
	b, err := variants.New(presets.DefaultSources(presetDirs...), logger)
	if err != nil {
		return err
	}

	show := func() error {
		e, err := b.Effective(dir)
		if err != nil {
			return err
		}
		if category != "" {
			return render(cmd.OutOrStdout(), e.Category(category), format)
		}
		return render(cmd.OutOrStdout(), e, format)
	}

	if !effectiveWatch {
		return show()
	}
	return watchEffective(cmd, logger, dir, presetDirs, show)
}

// resolveProjectDir returns dir, or the working directory when dir is empty.
func resolveProjectDir(dir string) (string, error) {
	if dir != "" {
		return dir, nil
	}
	wd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("resolving current directory: %w", err)
	}
	return wd, nil
}

// watchEffective prints the registry, then prints it again after every
// change until the command's context is cancelled. Preset failures while
// watching are logged rather than ending the watch.
func watchEffective(cmd *cobra.Command, logger *slog.Logger, dir string, presetDirs []string, show func() error) error {
	files, err := projectWatchFiles(dir)
	if err != nil {
		return err
	}

	w, err := watcher.New(watcher.DefaultConfig(files, presetDirs))
	if err != nil {
		return err
	}
	changes, err := w.Start()
	if err != nil {
		return err
	}
	defer w.Stop()

	if err := show(); err != nil {
		logger.Error("computing effective registry", "error", err)
	}

	ctx := cmd.Context()
	for {
		select {
		case <-ctx.Done():
			return nil
		case err := <-w.Errors():
			logger.Warn("file watcher error", "error", err)
		case <-changes:
			logger.Debug("change detected, recomputing", "dir", dir)
			if err := show(); err != nil {
				logger.Error("computing effective registry", "error", err)
			}
		}
	}
}

// projectWatchFiles lists every project file that could govern dir: each
// name in project.FileNames, in dir and each parent up to the directory of
// the current project file, or up to the root when there is none. A file
// created closer to dir than the current one takes over.
func projectWatchFiles(dir string) ([]string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", dir, err)
	}
	stop := ""
	if current, err := project.FindFile(abs); err == nil {
		stop = filepath.Dir(current)
	}

	var files []string
	for d := abs; ; {
		for _, name := range project.FileNames {
			files = append(files, filepath.Join(d, name))
		}
		parent := filepath.Dir(d)
		if d == stop || parent == d {
			return files, nil
		}
		d = parent
	}
}
