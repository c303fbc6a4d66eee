package challenge

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/axent-pl/selfkey/common"
	"github.com/axent-pl/selfkey/common/logx"
	jwtx "github.com/golang-jwt/jwt/v5"
)

// Claims describes an accepted challenge.
type Claims struct {
	ID        string
	Audience  []string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// Validator accepts challenges minted by an Issuer sharing the same Secret.
type Validator struct {
	Secret   []byte
	Issuer   string
	Audience string
	// Leeway for "exp" and "iat" claims
	Leeway time.Duration
	// Replay rejects challenges presented more than once. Optional.
	Replay common.ReplayChecker
	// Clock overrides time.Now.
	Clock func() time.Time
}

func (v *Validator) Validate(ctx context.Context, nonce string) (Claims, error) {
	if nonce == "" {
		logx.L().Debug("empty challenge", "context", ctx)
		return Claims{}, fmt.Errorf("%w: empty challenge", common.ErrInvalidInput)
	}
	key, err := deriveKey(v.Secret)
	if err != nil {
		logx.L().Debug("could not derive challenge key", "context", ctx, "error", err)
		return Claims{}, err
	}

	claims := &jwtx.RegisteredClaims{}
	token, err := jwtx.ParseWithClaims(nonce, claims, func(*jwtx.Token) (interface{}, error) {
		return key, nil
	}, v.parserOptions()...)
	if err != nil {
		logx.L().Debug("could not parse challenge", "context", ctx, "error", err)
		return Claims{}, fmt.Errorf("%w: %w", common.ErrInvalidCredentials, err)
	}
	if token == nil || !token.Valid {
		return Claims{}, fmt.Errorf("%w: challenge is invalid", common.ErrInvalidCredentials)
	}
	if claims.ID == "" {
		logx.L().Debug("missing `jti`", "context", ctx)
		return Claims{}, fmt.Errorf("%w: missing `jti`", common.ErrInvalidCredentials)
	}

	if v.Replay != nil && v.Replay.Seen(ctx, claims.ID, claims.ExpiresAt.Time) {
		logx.L().Debug("challenge already used", "context", ctx, "jti", claims.ID)
		return Claims{}, fmt.Errorf("%w: %w", common.ErrInvalidCredentials, ErrChallengeUsed)
	}

	out := Claims{
		ID:        claims.ID,
		Audience:  claims.Audience,
		ExpiresAt: claims.ExpiresAt.Time,
	}
	if claims.IssuedAt != nil {
		out.IssuedAt = claims.IssuedAt.Time
	}
	return out, nil
}

var ErrChallengeUsed = errors.New("challenge already used")

func (v *Validator) parserOptions() []jwtx.ParserOption {
	opts := []jwtx.ParserOption{
		jwtx.WithValidMethods([]string{jwtx.SigningMethodHS256.Alg()}),
		jwtx.WithExpirationRequired(),
		jwtx.WithIssuedAt(),
	}
	if v.Issuer != "" {
		opts = append(opts, jwtx.WithIssuer(v.Issuer))
	}
	if v.Audience != "" {
		opts = append(opts, jwtx.WithAudience(v.Audience))
	}
	if v.Leeway > 0 {
		opts = append(opts, jwtx.WithLeeway(v.Leeway))
	}
	if v.Clock != nil {
		opts = append(opts, jwtx.WithTimeFunc(v.Clock))
	}
	return opts
}
