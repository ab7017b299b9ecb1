package cli

import (
	"github.com/rpggio/tally/internal/settings"
)

// SettingsCmd groups preference commands.
type SettingsCmd struct {
	Show          SettingsShowCmd          `cmd:"" default:"1" help:"Show current settings."`
	Notifications SettingsNotificationsCmd `cmd:"" help:"Turn notifications on or off."`
	Theme         SettingsThemeCmd         `cmd:"" help:"Set the display theme."`
}

type SettingsShowCmd struct{}

func (c *SettingsShowCmd) Run(ctx *Context) error {
	s, err := ctx.Tracker.Settings(ctx.context())
	if err != nil {
		return err
	}
	active := s.ActiveHabitID
	if h, ok := s.Active(); ok {
		active = h.Name
	}
	if active == "" {
		active = "none"
	}
	ctx.printf("Settings:\n")
	ctx.printf("  Habits:        %d\n", len(s.Habits))
	ctx.printf("  Active habit:  %s\n", active)
	ctx.printf("  Notifications: %v\n", s.Notifications)
	ctx.printf("  Theme:         %s\n", s.Theme)
	ctx.printf("  Synced habits: %d\n", len(s.RemoteIDs))
	return nil
}

type SettingsNotificationsCmd struct {
	State string `arg:"" enum:"on,off" help:"on or off."`
}

func (c *SettingsNotificationsCmd) Run(ctx *Context) error {
	if err := ctx.Tracker.SetNotifications(ctx.context(), c.State == "on"); err != nil {
		return err
	}
	ctx.printf("Notifications %s\n", c.State)
	return nil
}

type SettingsThemeCmd struct {
	Theme string `arg:"" help:"light or dark."`
}

func (c *SettingsThemeCmd) Run(ctx *Context) error {
	if err := ctx.Tracker.SetTheme(ctx.context(), settings.Theme(c.Theme)); err != nil {
		return err
	}
	ctx.printf("Theme set to %s\n", c.Theme)
	return nil
}
