package version

// Name is the application name shown in the TUI header and CLI usage.
var Name = "edit0r"

// Version is injected at build time via:
//
//	go build -ldflags "-X edit0r/internal/version.Version=v1.2.3"
//
// Defaults to "dev" when not injected.
var Version = "dev"
