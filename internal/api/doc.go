// Package api provides the HTTP handlers and the error-to-response
// translation shared by every layer of the service.
package api
