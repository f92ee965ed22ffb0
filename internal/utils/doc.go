// Package utils provides general-purpose helpers shared by the client and
// the development backend: id generation, session token helpers, HTTP
// response writing and the HTTP client wrapper.
package utils
