// Package main provides the entry point of DirGroup-Admin.
// It serves a JSON API to manage directory groups: local mirrors of LDAP or
// Active Directory groups that grant their users a role and the permissions
// of a set of local groups. Every write keeps each directory group associated
// with at least one local group. The API is authenticated with bearer tokens
// issued by the token command and data is stored with gorm in MySQL,
// PostgreSQL or SQLite.
package main
