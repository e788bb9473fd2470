package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/rcliao/merchant-memory/internal/memory"
)

// abilityRegistrar turns every command the memory registers into a
// subcommand of parent.
type abilityRegistrar struct {
	parent *cobra.Command
}

var aliases = map[memory.Command][]string{
	memory.CommandRememberMerchants: {"remember"},
	memory.CommandSearchMerchants:   {"search"},
	memory.CommandConfigureSearch:   {"configure"},
}

func (r abilityRegistrar) RegisterCommand(c memory.Command, a memory.Ability) {
	use := c.String()
	if c == memory.CommandSearchMerchants {
		use += " [item]"
	}
	r.parent.AddCommand(&cobra.Command{
		Use:     use,
		Aliases: aliases[c],
		Short:   a.Name,
		Long:    a.Description,
		Run:     func(cmd *cobra.Command, args []string) { runAbility(cmd, c, args) },
	})
}

func init() {
	memory.New(memory.Config{}).Init(abilityRegistrar{parent: RootCmd})
}

func runAbility(cmd *cobra.Command, c memory.Command, args []string) {
	var ui memory.Prompter = newLinePrompter(cmd.InOrStdin(), cmd.OutOrStdout())
	if c == memory.CommandSearchMerchants && len(args) > 0 {
		ui = &presetPrompter{Prompter: ui, reply: strings.Join(args, " ")}
	}

	s, err := openSession(cmd, ui)
	if err != nil {
		exitErr("open session", err)
	}
	defer s.Close()

	if err := s.mem.HandleCommand(c); err != nil {
		exitErr(c.String(), err)
	}

	if _, err := s.commitIfChanged(cmd.Context(), "search settings changed"); err != nil {
		exitErr("save", err)
	}
}
