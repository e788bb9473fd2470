package memory

import (
	"strings"

	"github.com/rcliao/merchant-memory/internal/model"
	"github.com/rcliao/merchant-memory/internal/profile"
)

type configureStep int

const (
	stepMinSpend configureStep = iota
	stepMaxSpend
	stepRestocking
	stepCategories
	stepSaveProfile
	stepLoadProfile
	stepDone
)

var configureOptions = []Option{
	stepMinSpend:    {Label: "Set minimum price", Hotkey: 'n'},
	stepMaxSpend:    {Label: "Set maximum price", Hotkey: 'x'},
	stepRestocking:  {Label: "Toggle restocking merchants only", Hotkey: 'r'},
	stepCategories:  {Label: "Set item categories", Hotkey: 'c'},
	stepSaveProfile: {Label: "Save these settings", Hotkey: 's'},
	stepLoadProfile: {Label: "Load saved settings", Hotkey: 'l'},
	stepDone:        {Label: "Done", Hotkey: 'd'},
}

// configureSearch loops over the settings menu until the player picks Done
// or cancels.
func (m *Memory) configureSearch() error {
	for {
		title := "Item search settings\n" + profile.Describe(m.profiles.Active())
		idx, ok := m.ui.PickOption(title, configureOptions)
		if !ok || configureStep(idx) == stepDone {
			return nil
		}
		if err := m.configure(configureStep(idx)); err != nil {
			return err
		}
	}
}

func (m *Memory) configure(step configureStep) error {
	switch step {
	case stepMinSpend:
		if v, ok := m.ui.AskNumber("Minimum price?", "0123456789"); ok {
			m.profiles.SetMinSpend(v)
		}
	case stepMaxSpend:
		if v, ok := m.ui.AskNumber("Maximum price? (-1 for no limit)", "-0123456789"); ok {
			if v < 0 {
				v = model.Unbounded
			}
			m.profiles.SetMaxSpend(v)
		}
	case stepRestocking:
		m.profiles.ToggleOnlyRestocking()
	case stepCategories:
		prompt := "Item categories, comma-separated (blank for all)?"
		if known := m.knownCategories(); known != "" {
			prompt += "\nknown: " + known
		}
		if s, ok := m.ui.AskString(prompt); ok {
			m.profiles.SetCategories(profile.ParseCategories(s))
		}
	case stepSaveProfile:
		name, ok := m.ui.AskString("Save settings as?")
		if !ok || strings.TrimSpace(name) == "" {
			return nil
		}
		if err := m.profiles.Save(name); err != nil {
			return err
		}
		m.log.Debug().Str("profile", name).Msg("search profile saved")
	case stepLoadProfile:
		names := m.profiles.ListNames()
		if len(names) == 0 {
			m.ui.Show("You have no saved settings.")
			return nil
		}
		idx, ok := m.ui.PickOption("Load which settings?", hotkeys(names))
		if !ok || idx < 0 || idx >= len(names) {
			return nil
		}
		if err := m.profiles.Load(names[idx]); err != nil {
			return err
		}
		m.log.Debug().Str("profile", names[idx]).Msg("search profile loaded")
	}
	return nil
}
