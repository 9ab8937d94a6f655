// Package onsocial implements the backend for a small social-posting
// service: account registration, alias-or-email login, RSA-signed
// session tokens, and a centralized authorization guard that combines
// route classification, role checks, and per-resource ownership
// lookups before any handler runs.
//
// Identity resolution:
//   - UserProvider resolves a login identifier (alias first, email as
//     fallback) against the Users repository and verifies the bcrypt
//     password hash. It never reveals which of the two fields failed.
//
// Tokens:
//   - TokenService signs AccessClaims with the process RSA private key
//     and validates bearer tokens against the public key. Sessions are
//     stateless: there is no server-side record and no revocation list,
//     a token is valid until its embedded expiry.
//
// Authorization:
//   - RouteTable is the single source of truth mapping method + path
//     pattern to a policy tag. Guard evaluates the tag per request,
//     consulting an OwnerResolver for owner-or-admin routes.
package onsocial
