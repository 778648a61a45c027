package helios

// Version is the release version. Overridable at build time with
// -ldflags "-X github.com/helioscommand/helios.Version=...".
var Version = "0.1.0"
