// Package integrations provides HTTP clients for remote administration APIs.
//
// # Overview
//
// [Client] is the shared transport used by API-specific subpackages:
//
//   - [unity]: voicemail administration API (call handlers, menu entries)
//
// # Client Pattern
//
// Subpackages wrap a [Client] and expose typed operations:
//
//	client := unity.NewClient(baseURL, integrations.Options{
//	    Username: "admin",
//	    Password: "secret",
//	})
//	list, err := client.CallHandlers(ctx)
//
// [Client] handles:
//   - Basic authentication and Accept: application/json
//   - TLS verification, on unless InsecureSkipVerify is set
//   - Mapping non-2xx responses to coded errors from pkg/errors
//   - Reporting requests to the HTTP hooks in pkg/observability
//
// Requests are not retried and carry no explicit timeout unless
// [Options].Timeout is set.
//
// [unity]: github.com/matzehuels/handlermap/pkg/integrations/unity
package integrations
