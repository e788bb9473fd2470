package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "observe",
		Short: "Record trade sessions",
		Long:  "Record one or more trade sessions from a YAML file or stdin. Each session replaces what was remembered about its merchant.",
		Run:   runObserve,
	}

	cmd.Flags().StringP("file", "f", "", "Trade file (default: stdin)")

	RootCmd.AddCommand(cmd)
}

func runObserve(cmd *cobra.Command, args []string) {
	file, _ := cmd.Flags().GetString("file")

	var in io.Reader = cmd.InOrStdin()
	if file != "" && file != "-" {
		f, err := os.Open(file)
		if err != nil {
			exitErr("open trade file", err)
		}
		defer f.Close()
		in = f
	}

	events, err := decodeTrades(in)
	if err != nil {
		exitErr("observe", err)
	}
	if len(events) == 0 {
		exitErr("observe", fmt.Errorf("no trade sessions in input"))
	}

	s, err := openSession(cmd, nil)
	if err != nil {
		exitErr("open session", err)
	}
	defer s.Close()

	for _, ev := range events {
		if err := s.mem.HandleTradeObserved(ev); err != nil {
			exitErr("observe", err)
		}
	}

	sv, err := s.commit(cmd.Context(), fmt.Sprintf("observed %d trade sessions", len(events)))
	if err != nil {
		exitErr("save", err)
	}

	b, _ := json.Marshal(map[string]any{
		"ok":        true,
		"observed":  len(events),
		"merchants": s.mem.Merchants().Len(),
		"version":   sv.Version,
	})
	fmt.Fprintln(cmd.OutOrStdout(), string(b))
}
