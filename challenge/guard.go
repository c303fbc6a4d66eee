package challenge

import (
	"context"
	"errors"

	"github.com/axent-pl/selfkey/common"
	"github.com/axent-pl/selfkey/common/logx"
	"github.com/axent-pl/selfkey/selfkey"
)

const MessageInvalidChallenge = "Invalid challenge"

// Guard validates the nonce before handing credentials to next. Requests
// with an invalid, expired or reused challenge are denied without calling
// next. A validator that cannot run (no secret, key derivation failure)
// completes with an error instead.
func Guard(v *Validator, next selfkey.VerifyFunc) selfkey.VerifyFunc {
	return func(ctx context.Context, creds selfkey.Credentials, done selfkey.DoneFunc) {
		if !check(ctx, v, creds.Nonce, done) {
			return
		}
		next(ctx, creds, done)
	}
}

// GuardWithRequest is Guard for verifiers that take the request.
func GuardWithRequest(v *Validator, next selfkey.VerifyRequestFunc) selfkey.VerifyRequestFunc {
	return func(ctx context.Context, req selfkey.Request, creds selfkey.Credentials, done selfkey.DoneFunc) {
		if !check(ctx, v, creds.Nonce, done) {
			return
		}
		next(ctx, req, creds, done)
	}
}

// check completes done and returns false unless nonce is acceptable.
func check(ctx context.Context, v *Validator, nonce string, done selfkey.DoneFunc) bool {
	_, err := v.Validate(ctx, nonce)
	if err == nil {
		return true
	}
	if errors.Is(err, common.ErrConfiguration) || errors.Is(err, common.ErrInternal) {
		logx.L().Debug("challenge validator failed", "context", ctx, "error", err)
		done(err, nil, nil)
		return false
	}
	logx.L().Debug("challenge rejected", "context", ctx, "error", err)
	done(nil, nil, selfkey.Info{Message: MessageInvalidChallenge})
	return false
}
