package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rcliao/merchant-memory/internal/slots"
)

func init() {
	cmd := &cobra.Command{
		Use:   "saves",
		Short: "Inspect and manage save slots",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List every slot with its latest version",
		Run:   runSavesList,
	}

	history := &cobra.Command{
		Use:   "history",
		Short: "List every version of the current slot, newest first",
		Run:   runSavesHistory,
	}

	rm := &cobra.Command{
		Use:   "rm",
		Short: "Delete the latest version of the current slot",
		Long:  "Delete the latest version of the current slot, rolling it back to the previous one. Use --all to delete the whole slot.",
		Run:   runSavesRm,
	}
	rm.Flags().Bool("all", false, "Delete every version")

	stats := &cobra.Command{
		Use:   "stats",
		Short: "Show database statistics",
		Run:   runSavesStats,
	}

	cmd.AddCommand(list, history, rm, stats)
	RootCmd.AddCommand(cmd)
}

func openSlots(cmd *cobra.Command) (*slots.SQLiteStore, string, string) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		exitErr("config", err)
	}
	s, err := slots.Open(cfg.DB)
	if err != nil {
		exitErr("open store", err)
	}
	return s, cfg.DB, cfg.Slot
}

func printJSON(cmd *cobra.Command, v any) {
	b, _ := json.MarshalIndent(v, "", "  ")
	fmt.Fprintln(cmd.OutOrStdout(), string(b))
}

func runSavesList(cmd *cobra.Command, args []string) {
	s, _, _ := openSlots(cmd)
	defer s.Close()

	saves, err := s.List(cmd.Context())
	if err != nil {
		exitErr("list", err)
	}
	if saves == nil {
		saves = []slots.Save{}
	}
	printJSON(cmd, saves)
}

func runSavesHistory(cmd *cobra.Command, args []string) {
	s, _, slot := openSlots(cmd)
	defer s.Close()

	saves, err := s.Get(cmd.Context(), slots.GetParams{Slot: slot, History: true})
	if err != nil {
		exitErr("history", err)
	}
	printJSON(cmd, saves)
}

func runSavesRm(cmd *cobra.Command, args []string) {
	all, _ := cmd.Flags().GetBool("all")

	s, _, slot := openSlots(cmd)
	defer s.Close()

	if err := s.Rm(cmd.Context(), slots.RmParams{Slot: slot, AllVersions: all}); err != nil {
		exitErr("rm", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), `{"ok":true,"deleted":%q}`+"\n", slot)
}

func runSavesStats(cmd *cobra.Command, args []string) {
	s, dbPath, _ := openSlots(cmd)
	defer s.Close()

	stats, err := s.Stats(cmd.Context(), dbPath)
	if err != nil {
		exitErr("stats", err)
	}
	printJSON(cmd, stats)
}
