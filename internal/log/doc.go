// Package log provides slog loggers that keep secrets and personal data out
// of log output.
//
// The SecureHandler wraps any slog.Handler and rewrites attributes before
// they reach it:
//   - values under keys such as cookie, authorization or token become ***REDACTED***
//   - values that look like bearer tokens, JWTs or private keys become ***REDACTED***
//   - URL passwords, as in an authenticated proxy address, become xxxxx
//   - email addresses and phone numbers inside strings and errors become
//     [email] and [phone]
//
// Verbose mode lowers the level to Debug but never disables masking.
//
//	logger := log.NewSecureLogger(os.Stderr, verbose)
//	logger.Warn("using default settings", "user", id, "error", err)
//	slog.SetDefault(logger)
package log
