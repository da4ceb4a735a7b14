// Grocerec - Grocery Product Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/grocerec

/*
Package supervisor runs the long-lived services of grocerec under a
suture v4 supervisor tree.

	grocerec
	├── data-layer
	│   └── RefreshService (when the response cache is enabled)
	└── api-layer
	    └── HTTPServerService

Crashed services are restarted with suture's backoff. Supervisor events
are written to the zerolog stream through sutureslog and the
logging.SlogHandler bridge:

	tree := supervisor.NewSupervisorTree(logging.NewSlogLogger("supervisor"), supervisor.DefaultTreeConfig())
	tree.AddDataService(services.NewRefreshService(engine, interval, logger))
	tree.AddAPIService(services.NewHTTPServerService(server, 10*time.Second))
	err := tree.Serve(ctx)

The service wrappers live in the services subpackage.
*/
package supervisor
