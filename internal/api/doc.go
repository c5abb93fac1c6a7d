// Package api is the HTTP surface of the identification service. It maps
// the two façade operations onto /api/guess and /api/media-info, serves
// health and statistics endpoints, and records every identification
// request in the audit trail.
package api
