// Package challenge mints and checks the nonces clients sign when logging in
// with a wallet key.
//
// An Issuer hands out short-lived HS256 tokens; a Validator accepts them once.
// Guard plugs the validator in front of a selfkey verification function so
// the application callback only sees fresh, server-issued challenges.
package challenge
