// Package config loads application configuration from environment variables
// into tagged Go structs.
//
// It wraps github.com/joho/godotenv (optional .env files) and
// github.com/caarlos0/env/v11 (struct tag parsing).
//
// # Usage
//
//	type StackConfig struct {
//	    MaxGroupMembers int `env:"MAX_GROUP_MEMBERS" envDefault:"7"`
//	}
//
//	var cfg StackConfig
//	if err := config.Load(&cfg, config.WithPrefix("TOAST_")); err != nil {
//	    return err
//	}
//
// Without WithEnvFiles the default .env in the working directory is loaded
// once per process if it exists. Values already present in the process
// environment are never overwritten by .env files.
//
// WithEnvironment replaces the process environment with a fixed map, which
// keeps tests hermetic.
package config
