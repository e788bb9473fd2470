package cli

import (
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show what is remembered in the current slot",
		Run:   runStats,
	}

	RootCmd.AddCommand(cmd)
}

func runStats(cmd *cobra.Command, args []string) {
	s, err := openSession(cmd, nil)
	if err != nil {
		exitErr("open session", err)
	}
	defer s.Close()

	printJSON(cmd, map[string]any{
		"slot":     s.cfg.Slot,
		"version":  s.version,
		"memory":   s.mem.Merchants().Stats(),
		"profiles": s.mem.Profiles().ListNames(),
	})
}
