package main

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/nao1215/hoyoauth/internal/config"
)

//go:embed templates/hoyoauth.yaml
var configTemplate []byte

// NewInitCmd creates the init command.
func NewInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a .hoyoauth account file",
		Long: `Init writes a commented .hoyoauth account file to the current directory.

Examples:
  # Create .hoyoauth in the current directory
  hoyoauth init

  # Write to another path
  hoyoauth init -o ~/.config/hoyoauth/config.yaml

  # Overwrite an existing file
  hoyoauth init -f`,
		Args: cobra.NoArgs,
		RunE: runInitCmd,
	}

	cmd.Flags().StringP("output", "o", config.DefaultConfigFile, "Output file path")
	cmd.Flags().BoolP("force", "f", false, "Overwrite an existing file")

	return cmd
}

func runInitCmd(cmd *cobra.Command, _ []string) error {
	outputPath, err := cmd.Flags().GetString("output")
	if err != nil {
		return err
	}
	force, err := cmd.Flags().GetBool("force")
	if err != nil {
		return err
	}

	if !force {
		if _, err := os.Stat(outputPath); err == nil {
			return fmt.Errorf("account file already exists: %s (use -f to overwrite)", outputPath)
		} else if !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("failed to check %s: %w", outputPath, err)
		}
	}

	if dir := filepath.Dir(outputPath); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}
	if err := os.WriteFile(outputPath, configTemplate, 0o600); err != nil {
		return fmt.Errorf("failed to write account file: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Created account file: %s\n", outputPath)
	fmt.Fprintln(out, "\nNext steps:")
	fmt.Fprintln(out, "  - add your accounts")
	fmt.Fprintln(out, "  - export each password_env variable or put it in .env")
	fmt.Fprintln(out, "  - run: hoyoauth login <name>")
	return nil
}
