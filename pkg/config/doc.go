// Package config loads the vanishing retention configuration.
//
// The configuration is a TOML document, by default at
// <user config dir>/vanishing/config.toml:
//
//	limits = [
//	    [0, 9_999_999, "30days"],
//	    ["10MB", 999_999_999, "7d"],
//	    ["1GB", "max", "24h"],
//	]
//
//	[logging]
//	level = "info"
//	format = "text"
//
// Each limits entry is [lower, upper, duration]. Bounds are inclusive byte
// counts written as integers or byte-size strings (see package bytesize);
// the duration is a human-readable string (see package durations).
//
// # Loading
//
//	cfg, err := config.LoadWithEnvOverrides(path)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Policy)
//
// A missing file is not an error: Load returns the default configuration,
// whose policy keeps every file for 24 hours. Any other failure is a
// *retention.Error of kind io, parse, inverted_range, duplicate_range or
// invalid_duration. A file is accepted whole or not at all.
//
// # Configuration Precedence
//
//  1. Default values (defined in defaults.go)
//  2. Values from the TOML file
//  3. Environment variable overrides (VANISHING_LOGGING_LEVEL, VANISHING_LOGGING_FORMAT)
//  4. Validation
//
// The config file location itself is resolved by ResolvePath: an explicit
// path, then VANISHING_CONFIG, then DefaultPath.
package config
