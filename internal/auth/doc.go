// Package auth authenticates API callers and builds the explicit
// authorization context handed to the directory group service.
//
// # Callers
//
// A Caller carries the identity and privilege level of the account that
// issued a request. It is passed as a parameter to every service call;
// nothing in the application reads a "current user" from global state.
//
// # API tokens
//
// Tokens have the form "<prefix>.<secret>". The prefix is stored in clear and
// used to look the token up, the secret is only stored as an Argon2id hash.
//
// # Middleware
//
// RequireCaller is a Fiber middleware that authenticates the bearer token of a
// request and stores the resulting Caller in the request locals, where
// handlers read it back with CallerFrom.
package auth
