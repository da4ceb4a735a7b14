// Grocerec - Grocery Product Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/grocerec

/*
Package services provides suture.Service wrappers for grocerec components.

  - HTTPServerService: ListenAndServe with graceful Shutdown on cancel.
  - RefreshService: polls the engine's data fingerprint and clears the
    response cache when the source files change.

Each wrapper implements fmt.Stringer so supervisor events name it.
*/
package services
