package memory

// Option is one entry of an option list, selectable by its hotkey.
type Option struct {
	Label  string
	Hotkey rune
}

// Prompter is the host's popup UI. Every Ask/Pick call returns ok == false
// when the player cancels.
type Prompter interface {
	Show(text string)
	AskString(prompt string) (string, bool)
	// AskNumber reads an integer. allowed, when non-empty, restricts the
	// characters the player may type.
	AskNumber(prompt, allowed string) (int, bool)
	PickOption(title string, options []Option) (int, bool)
}

// hotkeys assigns a..z to the first 26 options.
func hotkeys(labels []string) []Option {
	opts := make([]Option, len(labels))
	for i, l := range labels {
		opts[i] = Option{Label: l}
		if i < 26 {
			opts[i].Hotkey = rune('a' + i)
		}
	}
	return opts
}
