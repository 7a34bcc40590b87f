// Package config provides configuration management for the merge tool.
//
// It utilizes Viper for loading configuration from environment variables
// and an optional .env file next to the working directory.
//
// # Configuration Structure
//
// The Config struct is the central repository for all application settings, divided into subsections:
//   - Scan: discovery threshold and group key mode
//   - Merge: chunk size, worker count, replace behavior
//   - Log: logging level and format
//
// Every field maps to an environment variable through its mapstructure
// path, upper-cased with dots replaced by underscores: scan.min_size is
// SCAN_MIN_SIZE, merge.workers is MERGE_WORKERS.
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Scan.MinSize)
package config
