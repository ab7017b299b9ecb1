package cli

import "github.com/alecthomas/kong"

// CLI is the kong command tree.
type CLI struct {
	Version kong.VersionFlag `help:"Print version."`
	DataDir string           `help:"Directory holding settings, counts and logs." env:"TALLY_DATA_DIR" type:"path"`
	Server  string           `help:"Remote server base URL." env:"TALLY_SERVER"`
	Debug   bool             `help:"Log debug output to stderr."`

	Count    CountCmd    `cmd:"" default:"1" help:"Add one to today's count."`
	Reset    ResetCmd    `cmd:"" help:"Reset today's count."`
	Status   StatusCmd   `cmd:"" help:"Show today's status."`
	Report   ReportCmd   `cmd:"" help:"Show week or month charts."`
	Habit    HabitCmd    `cmd:"" help:"Manage habits."`
	Settings SettingsCmd `cmd:"" help:"Show or change settings."`
	Login    LoginCmd    `cmd:"" help:"Store a session token for sync."`
	Logout   LogoutCmd   `cmd:"" help:"Forget the session token."`
	Sync     SyncCmd     `cmd:"" help:"Push habits and counts to the server."`
}

// Options returns the kong options used by the tally binary.
func Options(version string) []kong.Option {
	return []kong.Option{
		kong.Name("tally"),
		kong.Description("Count a habit you want to break, one tap at a time."),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{"version": version},
	}
}
