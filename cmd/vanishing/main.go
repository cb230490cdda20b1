// vanishing keeps files for as long as their size allows.
//
// Each size range in the configuration is given a retention duration; a file
// older than the retention of its range becomes eligible for deletion. This
// command loads the retention policy and prints it.
//
// Usage:
//
//	# Print the policy from <user config dir>/vanishing/config.toml
//	vanishing
//
//	# Print a specific config as YAML
//	vanishing --config ./config.toml --output yaml
//
//	# Show which range governs a 15 MB file, and whether a 3 day old one has expired
//	vanishing lookup 15MB --age 3d
//
//	# Show version information
//	vanishing version
package main

func main() {
	Execute()
}
