// Cinematch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

/*
Package supervisor provides process supervision for the interactive
recommendation session using suture v4.

# Overview

The supervisor tree separates the services of a session into two layers:

	RootSupervisor ("cinematch")
	├── IndexSupervisor ("index-layer")
	│   └── CatalogRefreshService (if REFRESH_ENABLED)
	└── SessionSupervisor ("session-layer")
	    └── PromptService

A failing catalog reload is restarted with backoff inside the index layer.
The prompt keeps answering from the last good index in the meantime.

When standard input is exhausted the prompt service returns
suture.ErrTerminateSupervisorTree, which stops the whole tree.

# Usage Example

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger("supervisor"), supervisor.DefaultTreeConfig())
	if err != nil {
	    return err
	}
	tree.AddIndexService(services.NewCatalogRefreshService(engine, refreshCfg, logger))
	tree.AddSessionService(services.NewPromptService(os.Stdin, handler, logger))

	if err := tree.Serve(ctx); err != nil && !errors.Is(err, context.Canceled) {
	    return err
	}

# Logging

Supervisor events (service start, failure, restart, backoff) are written
through sutureslog, bridged to zerolog by logging.NewSlogLogger.

# See Also

  - github.com/thejerf/suture/v4
  - internal/supervisor/services: service implementations
*/
package supervisor
