// Package session gates the admin panel behind a single shared secret.
//
// Gate is the two-state value (unauthenticated, authenticated) that a login
// attempt moves between. The secret is read from the content store on every
// attempt and compared as-is, so a password change takes effect for the next
// login without a restart.
//
// Manager turns a successful login into an HS256-signed cookie value whose jti
// is registered in memory. Sessions end on logout, on process restart, or
// when the browser discards the cookie.
package session
