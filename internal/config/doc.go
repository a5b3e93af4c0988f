// Package config provides configuration management for opsharness.
//
// Configuration is loaded from config.yaml inside a single directory. The
// default directory is ~/.config/opsharness; the --config-path flag selects
// another one. A missing file is not an error: every setting has a default.
//
// # File Format
//
//	workload:
//	  warmup: 5s
//	  createInterval: 1s
//	  lifespan: 10s
//	  collectInterval: 30s
//	dispatcher:
//	  workers: 4
//	  requeueDelay: 5s
//	bootstrap:
//	  pollInterval: 500ms
//	  schemaTimeout: 30s
//	metrics:
//	  address: ":8080"
//
// Durations use Go duration syntax. Settings given on the command line take
// precedence over the file.
package config
