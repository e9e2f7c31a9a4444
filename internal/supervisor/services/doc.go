// Cinematch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

/*
Package services provides suture.Service implementations for the interactive
recommendation session.

Each service implements the suture.Service interface:

	type Service interface {
	    Serve(ctx context.Context) error
	}

and fmt.Stringer for supervisor event logs.

# Available Services

Catalog Refresh (CatalogRefreshService):
  - Polls the catalog file's size and modification time on an interval
  - Reloads and rebuilds the engine index only when the file changed
  - Load and build failures are logged and counted; the previous index stays active

Prompt (PromptService):
  - Reads one title per line and hands it to a handler
  - Returns suture.ErrTerminateSupervisorTree at end of input
  - Stops on context cancellation even while a read is blocked

# Metrics

CatalogRefreshService records cinematch_catalog_refresh_total with the
result label set to rebuilt, unchanged or error.
*/
package services
