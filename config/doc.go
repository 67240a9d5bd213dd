// Package config defines the spandx configuration, its built-in defaults, and
// the loading of user config files. Files are read with viper, with
// environment overrides, and route tables are decoded in declaration order.
// Partial configurations are completed from the defaults by Merge.
package config
