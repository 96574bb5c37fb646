// Package export flattens call handlers and their menu entries into a row
// file while reporting progress as a stream of status events.
//
// # Algorithm
//
// [Exporter.Run] performs 1 + N requests for N call handlers:
//
//  1. List the non-primary call handlers. Failure aborts the run.
//  2. Create the row file and write the header.
//  3. For each handler, in server order, fetch its menu entries (handlers
//     without a MenuEntriesURI are skipped but still counted), write one row
//     per entry and emit a progress event "<processed>,<total>".
//  4. Close the file and emit a done event carrying the file's basename.
//
// Any failure (network, decode, file I/O) aborts the whole run and is
// returned to the caller; nothing is retried.
//
// # Events
//
// [Event.String] renders the server-sent-events framing expected by the
// browser client:
//
//	event: progress
//	data: 3,10
//
// [Exporter.Stream] runs the export on its own goroutine and delivers events
// through a channel with room for one event, so progress reaches the consumer
// as it happens. The stream always ends with exactly one terminal event, done
// or error, unless the context is cancelled first.
package export
