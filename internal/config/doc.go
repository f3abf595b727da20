// Package config loads the optional persistd configuration file.
//
// The file is YAML and lives at $XDG_CONFIG_HOME/persistd/config.yaml (or any
// XDG config directory). All keys are optional:
//
//	runtime_dir: /run/user/1000/persistd  # where the marker and FIFOs live
//	startup_delay: 500ms                   # client wait for a new daemon
//	reply_timeout: 0s                      # daemon wait for a response reader, 0 = forever
//
// Command-line flags and environment variables take precedence over the file.
package config
