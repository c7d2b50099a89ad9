// Package ds computes the "dynamic secret" request signature sent in the ds
// header.
//
// A signature has the form "t,r,h" where t is the Unix time in seconds, r a
// random nonce and h the lowercase hex MD5 digest of a salted canonical
// string. Four variants exist:
//
//   - Sign: salt=<s>&t=<t>&r=<r>, r is six alphanumeric characters
//   - SignExtended: salt=<s>&t=<t>&r=<r>&b=<body>&q=<query>, r is an integer in [100000, 200000]
//   - SignPassport: the extended string with the CN passport salt, an
//     alphanumeric r and an empty query
//   - SignGeetest: the extended string with an empty body and the fixed query is_high=false
//
// The digest is not a security primitive; it is a format the server checks.
package ds
