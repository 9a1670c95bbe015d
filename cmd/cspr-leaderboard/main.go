package main

import (
	"fmt"
	"os"

	leaderboard "github.com/casperstats/cspr-leaderboard"
	"github.com/casperstats/cspr-leaderboard/client"
	"github.com/casperstats/cspr-leaderboard/config"
	"github.com/casperstats/cspr-leaderboard/report"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// Failed keys beyond this many are summarized with a count.
const maxListedErrors = 25

func CmdLeaderboard() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "cspr-leaderboard",
		Short:        "Rank Casper accounts by total holdings (liquid + staked) and write CSV/JSON reports.",
		Args:         cobra.ExactArgs(0),
		SilenceUsage: true,
		RunE:         run,
	}
	cmd.Flags().String("api", "", "CSPR Cloud API base URL (may set CSPR_CLOUD_BASE).")
	cmd.Flags().String("api-key", "", "Secret reference for the API key (default is env:CSPR_CLOUD_KEY).")
	cmd.Flags().String("network", "", "Network label for the report and explorer links (may set CSPR_NETWORK).")
	cmd.Flags().String("input", "", "Input file with one public key per line (may set INPUT_KEYS_FILE).")
	cmd.Flags().String("csv-out", "", "CSV output path (may set CSV_OUT).")
	cmd.Flags().String("json-out", "", "JSON output path (may set JSON_OUT).")
	cmd.Flags().Int("limit", 0, "Process only the first N keys; 0 means all (may set LIMIT).")
	cmd.Flags().CountP("verbose", "v", "Set verbosity.")
	return cmd
}

func run(cmd *cobra.Command, _ []string) error {
	verbosity, _ := cmd.Flags().GetCount("verbose")
	config.ConfigureLogger(verbosity)

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	applyFlagOverrides(cmd, cfg)

	apiKey, err := cfg.ApiKey.Load()
	if err != nil {
		return fmt.Errorf("could not load api key: %w", err)
	}

	keys, err := leaderboard.ReadPublicKeys(cfg.InputKeysFile)
	if err != nil {
		return err
	}
	keys = leaderboard.Limit(keys, cfg.Limit)

	logrus.WithFields(logrus.Fields{
		"api":     cfg.ApiBase,
		"network": cfg.Network,
		"keys":    len(keys),
	}).Info("building leaderboard")

	apiClient := client.NewClient(cfg.ApiBase, apiKey, cfg.Timeout())
	runner := leaderboard.NewRunner(apiClient, cfg.Network, cfg.Interval())
	rows, errorRecords, err := runner.Run(cmd.Context(), keys)
	if err != nil {
		return err
	}

	rep := leaderboard.BuildReport(cfg.Network, rows, errorRecords)
	if err := report.WriteCSV(cfg.CsvOut, rep.Rows); err != nil {
		return err
	}
	if err := report.WriteJSON(cfg.JsonOut, &rep); err != nil {
		return err
	}

	fmt.Printf("Done. Wrote %s and %s.\n", cfg.CsvOut, cfg.JsonOut)
	printErrorSummary(rep.Errors)
	return nil
}

func applyFlagOverrides(cmd *cobra.Command, cfg *config.Config) {
	if cmd.Flags().Changed("api") {
		cfg.ApiBase, _ = cmd.Flags().GetString("api")
	}
	if cmd.Flags().Changed("api-key") {
		ref, _ := cmd.Flags().GetString("api-key")
		cfg.ApiKey = config.Secret(ref)
	}
	if cmd.Flags().Changed("network") {
		cfg.Network, _ = cmd.Flags().GetString("network")
	}
	if cmd.Flags().Changed("input") {
		cfg.InputKeysFile, _ = cmd.Flags().GetString("input")
	}
	if cmd.Flags().Changed("csv-out") {
		cfg.CsvOut, _ = cmd.Flags().GetString("csv-out")
	}
	if cmd.Flags().Changed("json-out") {
		cfg.JsonOut, _ = cmd.Flags().GetString("json-out")
	}
	if cmd.Flags().Changed("limit") {
		cfg.Limit, _ = cmd.Flags().GetInt("limit")
	}
}

func printErrorSummary(errorRecords []leaderboard.ErrorRecord) {
	if len(errorRecords) == 0 {
		return
	}
	fmt.Println("Some keys failed:")
	for i, e := range errorRecords {
		if i == maxListedErrors {
			break
		}
		fmt.Printf("- %s => %s\n", e.PublicKey, e.Error)
	}
	if len(errorRecords) > maxListedErrors {
		fmt.Printf("...and %d more.\n", len(errorRecords)-maxListedErrors)
	}
}

func main() {
	rootCmd := CmdLeaderboard()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
