// Package delegateaccess implements cross-organization delegated access
// inside jobdeck: one organization requests time-bounded administrative
// access to another, the target accepts via a single-use bearer token,
// and either side can revoke the active grant.
//
// Layering:
// - domain: the delegation record, status machine, sentinel errors
// - application: the workflow (request/accept/revoke/list) and workers
// - ports: stable boundaries for storage, membership, directory, email
// - adapters: HTTP, memory, postgres, token issuer, email dispatcher
// - transport: module-private DTOs for the public HTTP contract
//
// Boundary notes:
// - Keep this module self-contained under identity-access context.
// - Do not import other context adapters into domain/application.
// - Membership and directory reads cross contexts only through the
//   ports defined here, glued together in the bootstrap package.
package delegateaccess
