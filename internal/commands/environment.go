package commands

// Environment implements `mage environment`. SPEC_FULL.md §6.1 reserves
// this subcommand for future diagnostics (toolchain paths, target triple,
// telemetry endpoint) that this repository does not yet define; it must
// exist so scripts that probe for it don't fail, but it prints nothing
// and always succeeds.
func Environment(args []string) error {
	return nil
}
