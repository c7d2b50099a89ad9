// Package config holds the hoyoauth settings and loads the account file.
//
// Settings come from CLI flags on top of NewConfig defaults. Accounts come
// from a YAML file (.hoyoauth by default) that never contains passwords:
// each account names the environment variable holding its password, and
// those variables may be supplied through a .env file.
package config
