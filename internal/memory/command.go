package memory

import "fmt"

// Command identifies an ability the player can activate.
type Command int

const (
	CommandRememberMerchants Command = iota + 1
	CommandSearchMerchants
	CommandConfigureSearch
)

// Commands lists every command in registration order.
var Commands = []Command{CommandRememberMerchants, CommandSearchMerchants, CommandConfigureSearch}

func (c Command) String() string {
	switch c {
	case CommandRememberMerchants:
		return "remember-merchants"
	case CommandSearchMerchants:
		return "search-merchants"
	case CommandConfigureSearch:
		return "configure-search"
	default:
		return fmt.Sprintf("command(%d)", int(c))
	}
}

// Ability is how a command is presented in the host's ability list.
type Ability struct {
	Name        string
	Class       string
	Description string
}

var abilities = map[Command]Ability{
	CommandRememberMerchants: {
		Name:        "Remember Merchants",
		Class:       "Memories",
		Description: "You bring to mind the merchants and traders that you've seen in your travels.",
	},
	CommandSearchMerchants: {
		Name:        "Remember Items",
		Class:       "Memories",
		Description: "You bring to mind specific items, sold by the merchants that you've seen in your travels.",
	},
	CommandConfigureSearch: {
		Name:        "Configure Item Search",
		Class:       "Memories",
		Description: "You decide which wares are worth remembering: price range, categories, and restocking merchants.",
	},
}

// AbilityFor returns the presentation of c.
func AbilityFor(c Command) (Ability, bool) {
	a, ok := abilities[c]
	return a, ok
}

// Registrar is the host's command dispatcher.
type Registrar interface {
	RegisterCommand(c Command, a Ability)
}
