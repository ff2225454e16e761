package api

import "log/slog"

func testLogger() *slog.Logger {
	return slog.Default()
}

func boolPtr(b bool) *bool {
	return &b
}
