// Package config loads seqinput configuration from a YAML file, a .env file
// and the environment.
//
// LoadConfig resolves config.yml and .env in the usual locations
// (./cmd/<service>/, ./config/, ./) unless explicit paths are given, then
// unmarshals the merged result with Viper:
//
//	var cfg config.AppConfig
//	if err := config.LoadConfig("seqinput", &cfg, config.WithConfigFile(path)); err != nil {
//		return err
//	}
//	cfg.ApplyDefaults()
//	if err := cfg.Validate(); err != nil {
//		return err
//	}
//
// Environment variables prefixed with SEQINPUT_ override file values. The
// rest of the name is the key path with dots or underscores replaced by
// underscores, e.g. SEQINPUT_STORAGE_S3_REGION or SEQINPUT_LOGGING_LEVEL.
package config
