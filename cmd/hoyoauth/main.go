// Package main provides the entry point for the hoyoauth CLI.
//
// hoyoauth logs in to HoYoLAB and miyoushe accounts and prints the issued
// session cookies. Captcha, email and SMS challenges are answered on the
// terminal.
//
// Usage:
//
//	hoyoauth login main
//	hoyoauth batch
//	hoyoauth history
//
// See --help for all available options.
package main

func main() {
	Execute()
}
