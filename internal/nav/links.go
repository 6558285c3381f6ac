// Package nav holds the static page routes of the dashboard.
package nav

// Link is one navigation entry.
type Link struct {
	// Name is the display name.
	Name string

	// Command is the CLI command that renders the page.
	Command string

	// Description is a one-line summary for help output.
	Description string

	// Protected pages require a session.
	Protected bool

	// OnlyAuthenticated entries are shown only to logged-in users.
	OnlyAuthenticated bool
}

// Home is the page shown when no command is given.
const Home = "home"

// Links are the dashboard pages in menu order.
var Links = []Link{
	{Name: "Home", Command: Home, Description: "Summary counts and recent tasks", Protected: true, OnlyAuthenticated: true},
	{Name: "Tasks", Command: "tasks", Description: "List, create, edit and delete tasks", Protected: true, OnlyAuthenticated: true},
	{Name: "Settings", Command: "settings", Description: "View or edit your profile", Protected: true},
	{Name: "Logout", Command: "logout", Description: "End the session", OnlyAuthenticated: true},
}

// Visible returns the links to show for the given login state.
func Visible(loggedIn bool) []Link {
	var out []Link
	for _, l := range Links {
		if l.OnlyAuthenticated && !loggedIn {
			continue
		}
		out = append(out, l)
	}
	return out
}

// Find returns the link rendered by command.
func Find(command string) (Link, bool) {
	for _, l := range Links {
		if l.Command == command {
			return l, true
		}
	}
	return Link{}, false
}
