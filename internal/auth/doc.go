// Package auth drives the HoYoLAB and miHoYo login flows.
//
// Every flow follows the same loop: build and sign a request, send it,
// classify the response. On the first challenge the configured Solver is
// asked for a proof and the request is sent once more with that proof
// attached. A second challenge, a failure, or a transport error ends the
// flow. A request is therefore sent at most twice, and transport errors
// are never retried.
//
// Successful flows map the response onto a typed session result and store
// its tokens in the shared cookie store, where later requests pick them up.
package auth
