package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rcliao/merchant-memory/internal/model"
	"github.com/rcliao/merchant-memory/internal/profile"
)

func init() {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Manage item search settings",
		Long:  "Show and change the active search filter, and save or load named filters without the interactive menu.",
	}

	show := &cobra.Command{
		Use:   "show [name]",
		Short: "Show the active filter, or a saved one",
		Args:  cobra.MaximumNArgs(1),
		Run:   runProfileShow,
	}

	set := &cobra.Command{
		Use:   "set",
		Short: "Change the active filter",
		Run:   runProfileSet,
	}
	set.Flags().String("min", "", "Minimum price")
	set.Flags().String("max", "", "Maximum price, negative for no limit")
	set.Flags().String("restocking", "", "Only restocking merchants: true or false")
	set.Flags().String("categories", "", "Comma-separated categories, empty for all")

	save := &cobra.Command{
		Use:   "save [name]",
		Short: "Save the active filter under a name",
		Args:  cobra.ExactArgs(1),
		Run:   runProfileSave,
	}

	load := &cobra.Command{
		Use:   "load [name]",
		Short: "Make a saved filter active",
		Args:  cobra.ExactArgs(1),
		Run:   runProfileLoad,
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List saved filters",
		Run:   runProfileList,
	}

	rm := &cobra.Command{
		Use:   "rm [name]",
		Short: "Delete a saved filter",
		Args:  cobra.ExactArgs(1),
		Run:   runProfileRm,
	}

	cmd.AddCommand(show, set, save, load, list, rm)
	RootCmd.AddCommand(cmd)
}

func printProfile(cmd *cobra.Command, name string, p model.FilterProfile) {
	b, _ := json.MarshalIndent(map[string]any{
		"name":    name,
		"profile": p,
		"summary": profile.Describe(p),
	}, "", "  ")
	fmt.Fprintln(cmd.OutOrStdout(), string(b))
}

func runProfileShow(cmd *cobra.Command, args []string) {
	s, err := openSession(cmd, nil)
	if err != nil {
		exitErr("open session", err)
	}
	defer s.Close()

	if len(args) == 0 {
		printProfile(cmd, "", s.mem.Profiles().Active())
		return
	}
	p, err := s.mem.Profiles().Get(args[0])
	if err != nil {
		exitErr("profile show", err)
	}
	printProfile(cmd, args[0], p)
}

func runProfileSet(cmd *cobra.Command, args []string) {
	flags := cmd.Flags()
	if !flags.Changed("min") && !flags.Changed("max") && !flags.Changed("restocking") && !flags.Changed("categories") {
		exitErr("profile set", fmt.Errorf("nothing to change (use --min, --max, --restocking or --categories)"))
	}

	s, err := openSession(cmd, nil)
	if err != nil {
		exitErr("open session", err)
	}
	defer s.Close()
	profiles := s.mem.Profiles()

	if flags.Changed("min") {
		v, _ := flags.GetString("min")
		n, err := profile.ParseSpend(v)
		if err != nil {
			exitErr("profile set", err)
		}
		profiles.SetMinSpend(n)
	}
	if flags.Changed("max") {
		v, _ := flags.GetString("max")
		n, err := profile.ParseSpend(v)
		if err != nil {
			exitErr("profile set", err)
		}
		if n < 0 {
			n = model.Unbounded
		}
		profiles.SetMaxSpend(n)
	}
	if flags.Changed("restocking") {
		v, _ := flags.GetString("restocking")
		switch v {
		case "true", "yes", "1":
			profiles.SetOnlyRestocking(true)
		case "false", "no", "0":
			profiles.SetOnlyRestocking(false)
		default:
			exitErr("profile set", fmt.Errorf("invalid --restocking %q", v))
		}
	}
	if flags.Changed("categories") {
		v, _ := flags.GetString("categories")
		profiles.SetCategories(profile.ParseCategories(v))
	}

	if _, err := s.commitIfChanged(cmd.Context(), "search settings changed"); err != nil {
		exitErr("save", err)
	}
	printProfile(cmd, "", profiles.Active())
}

func runProfileSave(cmd *cobra.Command, args []string) {
	s, err := openSession(cmd, nil)
	if err != nil {
		exitErr("open session", err)
	}
	defer s.Close()

	if err := s.mem.Profiles().Save(args[0]); err != nil {
		exitErr("profile save", err)
	}
	if _, err := s.commitIfChanged(cmd.Context(), "saved settings "+args[0]); err != nil {
		exitErr("save", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), `{"ok":true,"saved":%q}`+"\n", args[0])
}

func runProfileLoad(cmd *cobra.Command, args []string) {
	s, err := openSession(cmd, nil)
	if err != nil {
		exitErr("open session", err)
	}
	defer s.Close()

	if err := s.mem.Profiles().Load(args[0]); err != nil {
		exitErr("profile load", err)
	}
	if _, err := s.commitIfChanged(cmd.Context(), "loaded settings "+args[0]); err != nil {
		exitErr("save", err)
	}
	printProfile(cmd, args[0], s.mem.Profiles().Active())
}

func runProfileList(cmd *cobra.Command, args []string) {
	s, err := openSession(cmd, nil)
	if err != nil {
		exitErr("open session", err)
	}
	defer s.Close()

	names := s.mem.Profiles().ListNames()
	if names == nil {
		names = []string{}
	}
	b, _ := json.MarshalIndent(names, "", "  ")
	fmt.Fprintln(cmd.OutOrStdout(), string(b))
}

func runProfileRm(cmd *cobra.Command, args []string) {
	s, err := openSession(cmd, nil)
	if err != nil {
		exitErr("open session", err)
	}
	defer s.Close()

	if err := s.mem.Profiles().Delete(args[0]); err != nil {
		exitErr("profile rm", err)
	}
	if _, err := s.commitIfChanged(cmd.Context(), "deleted settings "+args[0]); err != nil {
		exitErr("save", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), `{"ok":true,"deleted":%q}`+"\n", args[0])
}
