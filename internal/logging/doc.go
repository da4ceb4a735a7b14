// Grocerec - Grocery Product Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/grocerec

/*
Package logging provides the process-wide zerolog logger.

# Quick Start

	logging.Init(logging.Config{Level: "info", Format: "json"})

	logging.Info().Str("addr", addr).Msg("Server starting")
	logging.Err(err).Msg("Catalog check failed")

Components take a zerolog.Logger by value and derive their own:

	logger := logging.WithComponent("refresh")

# Request Context

The API middleware stores a request id in the request context. Ctx returns
a logger carrying it, so every line of one request can be grouped:

	logging.Ctx(r.Context()).Warn().Err(err).Msg("Data source unavailable")

Background jobs use correlation ids the same way:

	ctx = logging.ContextWithNewCorrelationID(ctx)

# slog Bridge

SlogHandler adapts zerolog to log/slog for libraries that only accept a
*slog.Logger, such as sutureslog:

	handler := &sutureslog.Handler{Logger: logging.NewSlogLogger("supervisor")}

# Configuration

  - LOG_LEVEL: trace, debug, info, warn, error (default: info)
  - LOG_FORMAT: json, console (default: json)
  - LOG_CALLER: true/false (default: false)
*/
package logging
