// Package handler provides the HTTP boundary shared by the service routers:
// the JSON response envelope, the error taxonomy with its status mapping,
// and the auth middleware that turns a bearer token into a user ID.
package handler
