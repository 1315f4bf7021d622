// Package chat provides the completion handler, the top-level entry point
// of the strom adapter.
//
// A handler binds one credential and one model for its whole lifetime.
// Construction authenticates eagerly, exactly once; a handler that exists
// is ready to use, and a failed authentication means no handler. From
// there, [Handler.CreateMessage] turns a conversation into a normalized
// event stream and [Handler.Model] reports the model descriptor selected
// at construction.
//
// The handler also runs an advisory prompt-size estimate before each
// request. The estimate warns when a conversation approaches the model's
// context window; it never blocks or alters the request.
package chat
