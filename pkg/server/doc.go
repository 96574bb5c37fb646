// Package server exposes the export and the diagram renderer over HTTP.
//
// # Routes
//
//	GET /                              upload-free web page driving the two steps
//	GET /run_export_sse                export as a server-sent-events stream
//	GET /download_csv/{filename}       row file as an attachment
//	GET /generate_graphs?csv_filename= render diagrams, answer with the manifest
//	GET /static/*                      generated files
//	GET /healthz                       liveness check
//
// /run_export_sse takes base_url, username and password query parameters.
// A base URL without a scheme is taken as https. The stream always ends with
// a done event naming the row file or an error event.
//
// All file access is confined to the configured output directory: names are
// validated as plain basenames and opened through an [os.Root].
package server
