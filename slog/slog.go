// Package slog provides decorators that log calls to docrag services with
// log/slog.
package slog
