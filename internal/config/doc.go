// Package config manages user-level settings stored at ~/.metaregistry/config.yaml.
// It provides functions to load, read, and write configuration keys such as
// the extra preset directories searched before the builtin presets.
package config
