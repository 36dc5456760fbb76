package cli

// Version is printed by --version and sent in the default User-Agent.
const Version = "1.0.0"

// DefaultUserAgent identifies jsonfetch to data sources when the settings name none.
func DefaultUserAgent() string {
	return "jsonfetch/" + Version
}
