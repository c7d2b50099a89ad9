// Package pipeline runs account logins as a sequence of steps and logs
// several accounts in at once.
//
// A pipeline for one account logs in and then records the attempt. Every
// step works on the same *model.LoginReport. Login failures are recorded
// in the report rather than returned, so the audit step still runs after a
// rejected password or an unresolved challenge.
//
// BatchProcessor runs one pipeline per account under an errgroup limit.
// Each login is an independent flow; only the transport and the cookie
// store are shared.
package pipeline
