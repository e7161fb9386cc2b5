// Package authapi holds the wire types shared between the auth service's
// HTTP handlers and its Go client. The server side uses the error and
// response types to shape responses; Client wraps the HTTP surface for
// other Go services and for end-to-end tests.
package authapi
