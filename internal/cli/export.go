package cli

import (
	"bytes"
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

func init() {
	exp := &cobra.Command{
		Use:   "export",
		Short: "Write the current slot as a save stream",
		Long:  "Write the current slot to stdout in the save stream format the host game embeds.",
		Run:   runExport,
	}

	imp := &cobra.Command{
		Use:   "import",
		Short: "Replace the current slot from a save stream",
		Long: "Read a save stream from stdin and store it as a new version of the current slot. " +
			"Streams in another format or that fail to decode leave an empty memory.",
		Run: runImport,
	}

	RootCmd.AddCommand(exp, imp)
}

func runExport(cmd *cobra.Command, args []string) {
	s, err := openSession(cmd, nil)
	if err != nil {
		exitErr("open session", err)
	}
	defer s.Close()

	if err := s.mem.Save(cmd.OutOrStdout()); err != nil {
		exitErr("export", err)
	}
}

func runImport(cmd *cobra.Command, args []string) {
	data, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		exitErr("read stdin", err)
	}

	s, err := openSession(cmd, nil)
	if err != nil {
		exitErr("open session", err)
	}
	defer s.Close()

	if err := s.mem.Restore(bytes.NewReader(data)); err != nil {
		exitErr("import", err)
	}
	sv, err := s.commit(cmd.Context(), "imported")
	if err != nil {
		exitErr("save", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), `{"ok":true,"merchants":%d,"version":%d}`+"\n", s.mem.Merchants().Len(), sv.Version)
}
