// Package api serves a unit registry over HTTP.
//
// Routes:
//
//	GET    /healthz                    liveness and unit count
//	GET    /v1/units                   list units (?dimension=length filters)
//	POST   /v1/units                   define and persist a unit
//	GET    /v1/units/{symbol}          look up by symbol, name or alias
//	DELETE /v1/units/{symbol}          remove a persisted definition
//	PUT    /v1/units/{symbol}/aliases  replace a unit's display aliases
//	GET    /v1/parse?expr=kg*m/s^2     parse a unit expression
//	POST   /v1/convert                 convert a value between units
//	GET    /v1/stats                   hook counters
//
// Errors are JSON objects {"code", "message", "request_id"} whose HTTP
// status follows the error code: unknown units are 404, duplicates 409,
// malformed input 400 and incompatible conversions 422.
//
// Every response carries an X-Request-ID header, taken from the request
// when present.
package api
