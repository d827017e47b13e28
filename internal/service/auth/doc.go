// Package auth handles credentials and tokens: bcrypt password hashing,
// HS256 token signing and parsing, the signing configuration built once at
// start-up, and the AuthenticationService that turns an email and password
// into a signed token.
package auth
