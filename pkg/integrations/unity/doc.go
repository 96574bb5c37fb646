// Package unity provides a client for the voicemail administration REST API
// (the /vmrest interface of a Unity Connection server).
//
// # Endpoints
//
// Two resources are used:
//
//   - GET /vmrest/handlers/callhandlers/?query=(IsPrimary%20is%200) lists
//     the call handlers that are not primary handlers of a user mailbox.
//   - GET {MenuEntriesURI} lists the keypad menu entries of one handler.
//
// # Response quirks
//
// The API returns a collection field as a JSON array when it holds several
// items, as a bare object when it holds exactly one, and omits it when empty.
// [OneOrMany] absorbs that at decode time so callers always see a slice.
// Scalar fields may arrive as strings or numbers; [Text] coerces both.
package unity
