package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"residue/internal/app"
	"residue/internal/config"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// newApp reads the config and creates an App. The caller must defer app.Close().
// operation identifies the CLI command being run (e.g. "ListVolumes", "GenerateReport").
func newApp(operation string) (*app.App, error) {
	defaults, err := app.GetDefaults()
	if err != nil {
		return nil, fmt.Errorf("getting defaults: %w", err)
	}

	cfg, err := config.ReadFromFile(defaults["config_path"])
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	a, err := app.New(cfg, operation)
	if err != nil {
		return nil, fmt.Errorf("initializing app: %w", err)
	}

	return a, nil
}

// promptPassphrase reads a passphrase twice without echo and makes sure
// both entries match.
func promptPassphrase() (string, error) {
	fmt.Print("Passphrase: ")
	first, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		return "", fmt.Errorf("reading passphrase: %w", err)
	}

	fmt.Print("Confirm passphrase: ")
	second, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		return "", fmt.Errorf("reading passphrase: %w", err)
	}

	if string(first) != string(second) {
		return "", fmt.Errorf("passphrases do not match")
	}
	if len(first) == 0 {
		return "", fmt.Errorf("passphrase must not be empty")
	}

	return string(first), nil
}

var rootCmd = &cobra.Command{
	Use:   "residue",
	Short: "Read-only data-residue scanner",
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

		hostID := uuid.New().String()
		cfg := config.NewConfig(hostID, defaults["base_dir"])

		if err := config.Init(defaults["config_path"], cfg); err != nil {
			return fmt.Errorf("failed to initialize config: %w", err)
		}

		fmt.Printf("Configuration initialized at %s\n", defaults["config_path"])
		fmt.Printf("Host ID: %s\n", hostID)
		fmt.Printf("Base Dir: %s\n", defaults["base_dir"])
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

		cfg, err := config.ReadFromFile(defaults["config_path"])
		if err != nil {
			return fmt.Errorf("failed to read config: %w", err)
		}

		fmt.Printf("Configuration from %s:\n\n", defaults["config_path"])
		fmt.Printf("Host ID:     %s\n", cfg.HostID)
		fmt.Printf("Base Dir:    %s\n", cfg.BaseDir)
		fmt.Printf("Log Dir:     %s\n", cfg.LogDir)
		fmt.Printf("Reports Dir: %s\n", cfg.ReportsDir)
		fmt.Printf("Catalog:     %s\n", cfg.Catalog.Type)
		for _, v := range cfg.Vaults {
			fmt.Printf("Vault:       %s (%s)\n", v.Name, v.Type)
		}
		return nil
	},
}

var configKeysCmd = &cobra.Command{
	Use:   "keys",
	Short: "Generate the report-export key pair",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("SetupEncryption")
		if err != nil {
			return err
		}
		defer a.Close()

		passphrase, err := promptPassphrase()
		if err != nil {
			return err
		}

		if err := a.SetupEncryption(passphrase); err != nil {
			return fmt.Errorf("generating keys: %w", err)
		}

		fmt.Println("Export encryption keys generated.")
		return nil
	},
}

// volumes command
var volumesCmd = &cobra.Command{
	Use:   "volumes",
	Short: "List mounted volumes and their encryption state",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("ListVolumes")
		if err != nil {
			return err
		}
		defer a.Close()

		vols := a.ListVolumes(cmd.Context())
		if len(vols) == 0 {
			fmt.Println("No volumes found.")
			return nil
		}

		for _, v := range vols {
			enc := "unencrypted"
			if v.Encryption.Encrypted {
				enc = "encrypted (" + v.Encryption.Mechanism + ")"
			} else if v.Encryption.Mechanism == "Unknown" {
				enc = "unknown"
			}
			fmt.Printf("%-12s %-20s %8s used / %8s total (%s)  %s\n",
				v.Identifier, v.MountPath, v.UsedGB, v.TotalGB, v.UsagePercent, enc)
		}
		return nil
	},
}

// hidden command
var hiddenCmd = &cobra.Command{
	Use:   "hidden [PATH]",
	Short: "Scan for hidden files and directories",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("ScanHidden")
		if err != nil {
			return err
		}
		defer a.Close()

		root := ""
		if len(args) > 0 {
			root, err = filepath.Abs(args[0])
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}
		}

		result := a.ScanHidden(cmd.Context(), root)
		if result.Error != "" {
			return fmt.Errorf("scan failed: %s", result.Error)
		}

		for _, art := range result.Artifacts {
			kind := "f"
			if art.IsDirectory {
				kind = "d"
			}
			fmt.Printf("%s  %-15s %10d  %s\n", kind, art.Category, art.SizeBytes, art.Path)
		}

		fmt.Printf("\n%d artifact(s) shown, %d discovered under %s\n",
			len(result.Artifacts), result.TotalDiscovered, result.ScanRoot)
		return nil
	},
}

// preview command
var previewCmd = &cobra.Command{
	Use:   "preview PATH",
	Short: "Show a bounded preview of a file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("PreviewArtifact")
		if err != nil {
			return err
		}
		defer a.Close()

		absPath, err := filepath.Abs(args[0])
		if err != nil {
			return fmt.Errorf("resolving path: %w", err)
		}

		p := a.PreviewArtifact(absPath)
		if p.Error != "" {
			return fmt.Errorf("preview failed: %s", p.Error)
		}

		fmt.Println(p.Content)
		if p.IsBinary {
			fmt.Printf("\n[binary file, %d byte(s) read]\n", p.BytesRead)
		} else {
			fmt.Printf("\n[%d byte(s) read]\n", p.BytesRead)
		}
		return nil
	},
}

// browsers command
var browsersCmd = &cobra.Command{
	Use:   "browsers",
	Short: "Scan for browser profiles and their sensitive stores",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("ScanBrowserProfiles")
		if err != nil {
			return err
		}
		defer a.Close()

		result := a.ScanBrowserProfiles()
		if result.Error != "" {
			return fmt.Errorf("scan failed: %s", result.Error)
		}

		if len(result.Profiles) == 0 {
			fmt.Println("No browser profiles found.")
			return nil
		}

		for _, p := range result.Profiles {
			fmt.Printf("%s / %s (%s)\n", p.BrowserFamily, p.ProfileName, p.ProfilePath)
			for _, art := range p.Artifacts {
				fmt.Printf("    %-12s %10d  %s\n", art.SemanticType, art.SizeBytes, art.Name)
			}
		}
		fmt.Printf("\n%d profile(s) found\n", result.TotalFound)
		return nil
	},
}

// events command
var eventsCmd = &cobra.Command{
	Use:   "events",
	Short: "Mine the OS event log for privacy-relevant entries",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("ScanEventLogs")
		if err != nil {
			return err
		}
		defer a.Close()

		result := a.ScanEventLogs(cmd.Context())
		if result.Error != "" {
			return fmt.Errorf("scan failed: %s", result.Error)
		}

		for _, log := range result.Logs {
			fmt.Printf("%s (%d entries)\n", log.Channel, len(log.Entries))
			for _, e := range log.Entries {
				fmt.Printf("    %-6s %-8s %s  %s\n", e.EventID, e.PrivacyRisk, e.TimeCreated, e.Description)
			}
		}
		fmt.Printf("\n%s\n", result.ScanSummary)
		return nil
	},
}

// risk command
var riskCmd = &cobra.Command{
	Use:   "risk",
	Short: "Score the machine's data-recoverability risk",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("ComputeRisk")
		if err != nil {
			return err
		}
		defer a.Close()

		assessment := a.ComputeRisk(cmd.Context())
		if assessment.Error != "" {
			fmt.Printf("Risk: %s (%s)\n", assessment.Risk, assessment.Error)
			return nil
		}

		fmt.Printf("Risk: %s (score %d/100)\n\n", assessment.Risk, assessment.Score)
		f := assessment.Factors
		if f.SwapFile != nil {
			fmt.Printf("  swap:       present=%-5v %s\n", f.SwapFile.Present, f.SwapFile.Detail)
		}
		if f.Snapshots != nil {
			fmt.Printf("  snapshots:  present=%-5v %s\n", f.Snapshots.Present, f.Snapshots.Detail)
		}
		if f.Encryption != nil {
			fmt.Printf("  encryption: enabled=%-5v coverage=%.0f%%\n", f.Encryption.Enabled, f.Encryption.Coverage)
		}
		if f.FreeSpace != nil {
			fmt.Printf("  free space: %.1f%%\n", f.FreeSpace.Percent)
		}
		return nil
	},
}

// report command
var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Generate, verify, and export signed reports",
}

var reportGenerateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Run all probes and write a signed report",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("GenerateReport")
		if err != nil {
			return err
		}
		defer a.Close()

		result := a.GenerateReport(cmd.Context())
		if !result.Success {
			return fmt.Errorf("report generation failed: %s", result.Error)
		}

		fmt.Printf("Report ID: %s\n", result.ReportID)
		fmt.Printf("Data:      %s\n", result.DataPath)
		fmt.Printf("Document:  %s\n", result.DocumentPath)
		fmt.Printf("Signature: %s\n", result.Signature)
		return nil
	},
}

var reportVerifyCmd = &cobra.Command{
	Use:   "verify [FILE]",
	Short: "Verify a report's signature",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		reportID, _ := cmd.Flags().GetString("id")
		if reportID == "" && len(args) == 0 {
			return fmt.Errorf("either a report file or --id is required")
		}

		a, err := newApp("VerifyReport")
		if err != nil {
			return err
		}
		defer a.Close()

		if reportID != "" {
			res := a.VerifyReportByID(reportID)
			return printVerifyResult(res.Valid, res.ReportID, res.Timestamp, res.Error)
		}

		absPath, err := filepath.Abs(args[0])
		if err != nil {
			return fmt.Errorf("resolving path: %w", err)
		}
		res := a.VerifyReportFile(absPath)
		return printVerifyResult(res.Valid, res.ReportID, res.Timestamp, res.Error)
	},
}

func printVerifyResult(valid bool, reportID, timestamp, errMsg string) error {
	if !valid {
		if errMsg != "" {
			return fmt.Errorf("verification failed: %s", errMsg)
		}
		return fmt.Errorf("signature is INVALID for report %s", reportID)
	}
	fmt.Printf("Signature valid for report %s (generated %s)\n", reportID, timestamp)
	return nil
}

var reportHistoryCmd = &cobra.Command{
	Use:   "history",
	Short: "List generated reports",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		a, err := newApp("History")
		if err != nil {
			return err
		}
		defer a.Close()

		entries, err := a.History(limit)
		if err != nil {
			return err
		}

		if len(entries) == 0 {
			fmt.Println("No reports recorded.")
			return nil
		}

		for _, e := range entries {
			fmt.Printf("%s  %s  %s\n",
				e.ReportID,
				e.CreatedAt.Format("2006-01-02 15:04:05"),
				e.DataPath,
			)
		}
		return nil
	},
}

var reportExportCmd = &cobra.Command{
	Use:   "export REPORT_ID",
	Short: "Push a report to the configured vault",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("ExportReport")
		if err != nil {
			return err
		}
		defer a.Close()

		if err := a.ExportReport(args[0]); err != nil {
			return fmt.Errorf("export failed: %w", err)
		}

		fmt.Printf("Report %s exported.\n", args[0])
		return nil
	},
}

// wipe-sim command
var wipeSimCmd = &cobra.Command{
	Use:   "wipe-sim",
	Short: "Simulate a secure wipe (no data is touched)",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("SimulateWipe")
		if err != nil {
			return err
		}
		defer a.Close()

		for p := range a.SimulateWipe(cmd.Context()) {
			fmt.Printf("[%3d%%] step %d/%d  %s\n", p.ProgressPercent, p.Step, p.TotalSteps, p.Message)
			if p.Completed {
				fmt.Println(strings.Repeat("-", 40))
				fmt.Println("Simulation complete. No data was modified.")
			}
		}
		return nil
	},
}

func init() {
	// config subcommands
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configListCmd)
	configCmd.AddCommand(configKeysCmd)

	// report subcommands
	reportCmd.AddCommand(reportGenerateCmd)
	reportCmd.AddCommand(reportVerifyCmd)
	reportVerifyCmd.Flags().String("id", "", "Verify a cataloged report by its ID")
	reportCmd.AddCommand(reportHistoryCmd)
	reportHistoryCmd.Flags().IntP("limit", "n", 50, "Maximum number of reports to show")
	reportCmd.AddCommand(reportExportCmd)

	// root commands
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(volumesCmd)
	rootCmd.AddCommand(hiddenCmd)
	rootCmd.AddCommand(previewCmd)
	rootCmd.AddCommand(browsersCmd)
	rootCmd.AddCommand(eventsCmd)
	rootCmd.AddCommand(riskCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(wipeSimCmd)
}
