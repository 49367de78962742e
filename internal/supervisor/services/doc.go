// Shopwise - Hybrid Product Recommendation and Search
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shopwise

/*
Package services provides suture.Service wrappers for Shopwise components.

Each wrapper translates a component lifecycle into suture's context-aware
Serve pattern:

	type Service interface {
	    Serve(ctx context.Context) error
	}

# Available Services

API Server (APIService):
  - Wraps *http.Server with graceful shutdown
  - Logs the served model version and readiness on start and stop

Interaction Router (RouterService):
  - Runs the Watermill router that persists interaction events
  - Builds a new router on every restart

Trainer (TrainerService):
  - Retrains the recommendation engine on a fixed interval
  - Skips a run when another training is already in progress

# Error Handling

Return values determine supervisor behavior:

	nil         -> Service stopped cleanly, will not restart
	error       -> Service crashed, supervisor will restart
	ctx.Err()   -> Shutdown requested, normal termination

All services implement fmt.Stringer so suture logs them by name.
*/
package services
