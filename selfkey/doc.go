// Package selfkey authenticates "login with a signed challenge" requests.
//
// A Strategy reads the nonce, signature and public key of a request (from the
// decoded body, the query, or both with the body taking precedence), rejects
// requests that lack any of them with a 400, and otherwise asks an
// application supplied verification function for the user. The function
// reports through a one-shot DoneFunc; its result is mapped onto one of the
// Host signals Success, Fail or Error.
//
//	strategy, err := selfkey.New(selfkey.Config{
//		Verify: func(ctx context.Context, c selfkey.Credentials, done selfkey.DoneFunc) {
//			user, err := users.ByWallet(ctx, c.PublicKey)
//			if err != nil {
//				done(err, nil, nil)
//				return
//			}
//			done(nil, user, nil)
//		},
//	})
//
// Signature checking, user storage and session issuance are left to the
// verification function and the host.
package selfkey
