// Package api serves scans and per-user settings over HTTP.
//
// Every response body is JSON. A scan always answers with the ordered
// segments a chat front end would send, including the single error segment
// of a failed fetch.
//
//	POST /api/scan                             {"url": "...", "user_id": "..."}
//	GET  /api/settings/{userID}
//	POST /api/settings/{userID}/toggle/{field}
//	GET  /api/health
package api
