// Package model holds the request and response types exchanged over HTTP.
//
// Request types carry `param` tags for echo's binder and `validate`
// tags for the validation package; response types carry the JSON
// shape returned to clients.
package model
