// Package patch builds ordered JSON-patch documents for status subresource updates.
//
// A JSON-patch "replace" on a nested path fails (or is undefined) when the
// parent object does not exist yet. The Builder therefore materializes every
// ancestor of a nested field with an empty-object replace before emitting the
// field itself, and it does so at most once per ancestor:
//
//	ops := patch.New().
//		Replace(patch.Path("status", "phase"), "Created").
//		Operations()
//	// [{replace /status {}} {replace /status/phase Created}]
//
// The resulting document is sent as one request, so the store applies it
// atomically.
package patch
