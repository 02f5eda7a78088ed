package commands

import (
	"fmt"
	"os"
	"os/exec"
	"runtime"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/aki/mknote/internal/cli/ui"
	"github.com/aki/mknote/internal/core/config"
	"github.com/aki/mknote/internal/core/events"
	"github.com/aki/mknote/internal/core/logger"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage mknote configuration",
	Long: `Manage the mknote configuration file.

The config command provides subcommands to view, validate and edit it.`,
	Example: `  # View current configuration
  mknote config show

  # Edit configuration in your editor
  mknote config edit

  # Validate configuration
  mknote config validate`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Display the current configuration",
	Long:  "Display the effective configuration as YAML, or as JSON with --format json",
	Args:  cobra.NoArgs,
	RunE:  runConfigShow,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the configuration file path",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := configPath()
		if err != nil {
			return err
		}
		ui.OutputLine("%s", path)
		return nil
	},
}

var configEditCmd = &cobra.Command{
	Use:   "edit",
	Short: "Edit configuration in your editor",
	Long:  "Launch your default editor on the configuration file. The configuration is validated after editing.",
	Example: `  # Edit configuration using $EDITOR
  mknote config edit

  # Edit with a specific editor
  EDITOR=nano mknote config edit`,
	Args: cobra.NoArgs,
	RunE: runConfigEdit,
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(configEditCmd)
	configCmd.AddCommand(configValidateCmd())
}

func loadConfig() (*config.Manager, *config.Config, error) {
	path, err := configPath()
	if err != nil {
		return nil, nil, err
	}
	mgr := config.NewManager(path, events.Discard, logger.Nop())
	cfg, err := mgr.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return mgr, cfg, nil
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	_, cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if ui.GlobalFormatter.IsJSON() {
		return ui.GlobalFormatter.Output(cfg)
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal configuration: %w", err)
	}
	ui.Output("%s", string(data))
	return nil
}

func configValidateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate configuration file",
		Long: `Validate the configuration file against the JSON schema and check that
ignore patterns, locale and log settings are usable.`,
		Example: `  # Validate the configuration
  mknote config validate

  # Validate with verbose output
  mknote config validate --verbose`,
		Args: cobra.NoArgs,
		RunE: validateConfig,
	}

	cmd.Flags().BoolP("verbose", "v", false, "Show detailed validation information")

	return cmd
}

func validateConfig(cmd *cobra.Command, args []string) error {
	verbose, _ := cmd.Flags().GetBool("verbose")

	path, err := configPath()
	if err != nil {
		return err
	}
	if err := config.ValidateFile(path); err != nil {
		ui.Error("Configuration validation failed: %v", err)
		return fmt.Errorf("invalid configuration")
	}
	ui.Success("Configuration is valid")

	if verbose {
		_, cfg, err := loadConfig()
		if err != nil {
			return err
		}
		ui.OutputLine("")
		ui.OutputLine("Configuration details:")
		ui.OutputLine("  Version: %s", cfg.Version)
		ui.OutputLine("  Location: %s", cfg.Location)
		ui.OutputLine("  Locale: %s", cfg.Locale)
		ui.OutputLine("  Log: %s (%s)", cfg.Log.Level, cfg.Log.Format)
		if len(cfg.Ignore) > 0 {
			ui.OutputLine("  Ignore patterns (%d):", len(cfg.Ignore))
			for _, p := range cfg.Ignore {
				ui.OutputLine("    %s", p)
			}
		}
		if cfg.Git.Remote != "" {
			ui.OutputLine("  Git remote: %s", cfg.Git.Remote)
		}
	}

	return nil
}

func runConfigEdit(cmd *cobra.Command, args []string) error {
	mgr, cfg, err := loadConfig()
	if err != nil {
		return err
	}
	path := mgr.GetConfigPath()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		ui.OutputLine("Configuration file not found. Creating default configuration...")
		if err := mgr.Save(cfg); err != nil {
			return fmt.Errorf("failed to create default configuration: %w", err)
		}
	}

	editor := findEditor()
	if editor == "" {
		return fmt.Errorf("no editor found. Please set the EDITOR environment variable")
	}

	ui.OutputLine("Opening configuration in %s...", editor)

	editorCmd := exec.Command(editor, path)
	editorCmd.Stdin = os.Stdin
	editorCmd.Stdout = os.Stdout
	editorCmd.Stderr = os.Stderr
	if err := editorCmd.Run(); err != nil {
		return fmt.Errorf("failed to run editor: %w", err)
	}

	ui.OutputLine("Validating configuration...")
	if err := config.ValidateFile(path); err != nil {
		ui.Error("Configuration validation failed: %v", err)
		ui.OutputLine("Please fix the errors and try again.")
		return fmt.Errorf("configuration validation failed: %w", err)
	}

	ui.Success("Configuration is valid!")
	return nil
}

// findEditor detects the editor to use in order of preference:
// 1. EDITOR environment variable
// 2. VISUAL environment variable
// 3. Common editors based on OS
func findEditor() string {
	if editor := os.Getenv("EDITOR"); editor != "" {
		return editor
	}
	if editor := os.Getenv("VISUAL"); editor != "" {
		return editor
	}

	var editors []string
	switch runtime.GOOS {
	case "darwin":
		editors = []string{"code", "subl", "mate", "vim", "nano", "vi"}
	case "windows":
		editors = []string{"notepad", "notepad++"}
	default:
		editors = []string{"vim", "nano", "vi"}
	}

	for _, editor := range editors {
		if _, err := exec.LookPath(editor); err == nil {
			return editor
		}
	}

	return ""
}
