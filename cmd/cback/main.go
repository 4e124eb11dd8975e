package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"cback/internal/app"
	"cback/internal/backup"
	"cback/internal/config"

	"github.com/spf13/cobra"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "cback [flags] SOURCE... DESTINATION",
	Short: "Checksum-based incremental backup tool",
	Long: `cback checksums the files under the given sources, optionally compares
them against a previous run's checksum file, collects the changed files into
a compressed archive, and writes the new checksums for the next run.

If DESTINATION names an existing directory, a uniquely-named archive is
placed inside it; otherwise DESTINATION is used as the archive path.`,
	Args: cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		sourceRoot, _ := cmd.Flags().GetString("source-root")
		oldChecksums, _ := cmd.Flags().GetString("old-checksums")
		newChecksums, _ := cmd.Flags().GetString("new-checksums")
		hashAlgo, _ := cmd.Flags().GetString("hash-algo")
		dryRun, _ := cmd.Flags().GetBool("dry-run")

		a, err := app.NewApp()
		if err != nil {
			return err
		}
		defer a.Close()

		req := app.BackupRequest{
			Sources:      args[:len(args)-1],
			Destination:  args[len(args)-1],
			SourceRoot:   sourceRoot,
			OldChecksums: oldChecksums,
			NewChecksums: newChecksums,
			HashAlgo:     hashAlgo,
			DryRun:       dryRun,
		}

		result, err := a.Backup(req)
		if err != nil {
			return err
		}

		if dryRun {
			fmt.Printf("Dry run: %d of %d file(s) would be archived\n",
				len(result.Selection), result.Discovered)
			return nil
		}
		fmt.Printf("Archived %d of %d file(s)\n", len(result.Selection), result.Discovered)
		if result.ManifestWritten != "" {
			fmt.Printf("Checksums written to %s\n", result.ManifestWritten)
		}
		return nil
	},
}

// history command
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "View backup run history",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		a, err := app.NewApp()
		if err != nil {
			return err
		}
		defer a.Close()

		runs, err := a.History(limit)
		if err != nil {
			return err
		}

		if len(runs) == 0 {
			fmt.Println("No backup runs recorded.")
			return nil
		}

		for _, r := range runs {
			duration := ""
			if r.FinishedAt.Valid {
				d := r.FinishedAt.Time.Sub(r.StartedAt)
				duration = d.Truncate(time.Millisecond).String()
			}
			fmt.Printf("#%d  %s  %-7s  %s  %d/%d file(s)  %s\n",
				r.ID,
				r.StartedAt.Format("2006-01-02 15:04:05"),
				r.Status,
				r.Destination,
				r.Selected,
				r.Discovered,
				duration,
			)
		}
		return nil
	},
}

// algos command
var algosCmd = &cobra.Command{
	Use:   "algos",
	Short: "List supported checksum algorithms",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(strings.Join(backup.HashNames(), "\n"))
	},
}

// config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		defaults, err := app.GetDefaults()
		if err != nil {
			return fmt.Errorf("failed to get defaults: %w", err)
		}

		cfg := config.NewConfig(defaults["base_dir"])
		if err := config.Init(defaults["config_path"], cfg); err != nil {
			return fmt.Errorf("failed to initialize config: %w", err)
		}

		fmt.Printf("Configuration initialized at %s\n", defaults["config_path"])
		return nil
	},
}

var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "View configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		defaults, err := app.GetDefaults()
		if err != nil {
			return fmt.Errorf("failed to get defaults: %w", err)
		}

		cfg, err := config.LoadOrDefault(defaults["config_path"], defaults["base_dir"])
		if err != nil {
			return fmt.Errorf("failed to read config: %w", err)
		}

		fmt.Printf("Configuration from %s:\n\n", defaults["config_path"])
		fmt.Printf("Hash algo: %s\n", cfg.HashAlgo)
		fmt.Printf("Log dir:   %s\n", cfg.LogDir)
		fmt.Printf("Archiver:  %s\n", cfg.Archiver.Type)
		fmt.Printf("History:   enabled=%v path=%s\n", cfg.History.Enabled, cfg.History.Path)
		return nil
	},
}

func init() {
	rootCmd.Flags().StringP("source-root", "r", "", "Root of the backup; a prefix stripped from file paths in the archive and checksum files")
	rootCmd.Flags().StringP("old-checksums", "c", "", "Checksum file from a previous run to compare against")
	rootCmd.Flags().StringP("new-checksums", "n", "", "File to write this run's checksums to")
	rootCmd.Flags().StringP("hash-algo", "x", "", "Checksum algorithm (see 'cback algos')")
	rootCmd.Flags().BoolP("dry-run", "d", false, "Print the would-be archive command instead of running it")

	historyCmd.Flags().IntP("limit", "l", 50, "Maximum number of runs to show")

	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configListCmd)

	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(algosCmd)
	rootCmd.AddCommand(configCmd)
}
