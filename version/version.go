package version

// Name for this
const Name string = "oeuvres"

// Version for this
var Version = "0.3.0" //nolint:gochecknoglobals

// Revision for this, set by ldflags
var Revision = "HEAD" //nolint:gochecknoglobals
