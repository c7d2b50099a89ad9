// Package credential encrypts account identifiers, passwords and mobile
// numbers before they are sent to a login endpoint.
//
// The servers expect RSA PKCS#1 v1.5 ciphertext, standard base64 encoded,
// under a region-specific public key. Encryption is randomised, so the same
// plaintext never produces the same ciphertext twice.
package credential
