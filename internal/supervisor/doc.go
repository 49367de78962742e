// Shopwise - Hybrid Product Recommendation and Search
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shopwise

/*
Package supervisor provides process supervision for Shopwise using suture v4.

The supervisor tree organizes long-running services into three layers so a
failure in one layer never stops the others:

	RootSupervisor ("shopwise")
	├── IngestSupervisor ("ingest-layer")
	│   └── RouterService (if events are enabled)
	├── TrainingSupervisor ("training-layer")
	│   └── TrainerService
	└── APISupervisor ("api-layer")
	    └── APIService

The API layer keeps serving the last published model snapshot while the
trainer or the interaction router restarts.

# Usage Example

	tree, err := supervisor.NewSupervisorTree(logger, supervisor.DefaultTreeConfig())
	if err != nil {
	    return err
	}
	tree.AddIngestService(services.NewRouterService(buildRouter))
	tree.AddTrainingService(services.NewTrainerService(engine, trainerCfg, logger))
	tree.AddAPIService(services.NewAPIService(server, engine, services.APIServiceConfig{Addr: ":8000"}, logger))

	if err := tree.Serve(ctx); err != nil && !errors.Is(err, context.Canceled) {
	    logging.Error().Err(err).Msg("Supervisor stopped")
	}

# Failure Handling

Each failure increments a counter that decays over FailureDecay seconds.
When the counter exceeds FailureThreshold the supervisor waits
FailureBackoff before the next restart. Defaults match suture's own.

# Debugging Shutdown Issues

Services that ignore cancellation past ShutdownTimeout are listed by
UnstoppedServiceReport.
*/
package supervisor
