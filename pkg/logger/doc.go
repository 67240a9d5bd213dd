// Package logger builds the slog logger used by the spandx command. The log
// level follows the verbose and silent settings of the loaded configuration.
package logger
