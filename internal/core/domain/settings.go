package domain

// Settings are the optional tool defaults loaded from precache.yaml.
// Command-line flags take precedence over every field.
type Settings struct {
	// Temp is the holding area for relocated directories in live mode.
	Temp string
	// CargoHome overrides the $CARGO_HOME / ~/.cargo resolution.
	CargoHome string
	// DryRun makes reporting-only the default.
	DryRun bool
}
