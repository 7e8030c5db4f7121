// Package errors provides structured errors for the campaign API.
//
// Every failure the service reports carries a Code, a human-readable
// message, an optional wrapped cause, and optional metadata. Handlers map
// codes to HTTP statuses; orchestrators and the combat engine only ever
// deal in codes.
//
// Creating errors:
//
//	errors.NotFound("encounter not found")
//	errors.InvalidArgumentf("damage amount %d must be >= 0", amount)
//	errors.Wrap(err, "failed to persist encounter")
//
// Checking errors:
//
//	if errors.IsNotFound(err) { ... }
//	status := errors.GetCode(err).HTTPStatus()
package errors
