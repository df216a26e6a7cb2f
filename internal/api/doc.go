// Package api exposes the chart pipeline over HTTP.
//
// # Endpoints
//
//	GET  /healthz     build information
//	POST /v1/bind     bind the roles of a JSON chart definition
//	POST /v1/layout   bind and lay out a chart; ?width=&height=&refresh=true
//
// Request bodies are chart definitions in the JSON encoding read by
// [io.ReadJSON]. Responses are [pipeline.Report] values wrapped in a small
// envelope.
//
// # Errors
//
// Failures are returned as {"error": CODE, "message": ..., "request_id": ...}
// with a status derived from the error code: 422 for chart configuration and
// geometry errors, 400 for malformed requests, 500 otherwise.
//
// Every response carries an X-Request-ID header. A request ID sent by the
// client is kept; otherwise a new one is generated.
package api
