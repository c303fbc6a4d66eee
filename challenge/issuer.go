package challenge

import (
	"context"
	"time"

	"github.com/axent-pl/selfkey/common"
	"github.com/axent-pl/selfkey/common/logx"
	jwtx "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const DefaultTTL = 5 * time.Minute

// Issuer mints single-use login challenges. A challenge is an HS256 JWT the
// client signs with its wallet key and sends back as the nonce.
type Issuer struct {
	Secret []byte
	Issuer string
	TTL    time.Duration
	// Clock overrides time.Now.
	Clock func() time.Time
}

func (iss *Issuer) Kind() common.Kind { return common.SelfKey }

// Issue returns a challenge artifact. audience binds the challenge to a
// relying party and may be empty.
func (iss *Issuer) Issue(ctx context.Context, audience string) (common.Artifact, error) {
	key, err := deriveKey(iss.Secret)
	if err != nil {
		logx.L().Debug("could not derive challenge key", "context", ctx, "error", err)
		return common.Artifact{}, err
	}

	now := time.Now()
	if iss.Clock != nil {
		now = iss.Clock()
	}
	ttl := iss.TTL
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	expiresAt := now.Add(ttl)

	claims := jwtx.RegisteredClaims{
		ID:        uuid.NewString(),
		Issuer:    iss.Issuer,
		IssuedAt:  jwtx.NewNumericDate(now),
		ExpiresAt: jwtx.NewNumericDate(expiresAt),
	}
	if audience != "" {
		claims.Audience = jwtx.ClaimStrings{audience}
	}

	signed, err := jwtx.NewWithClaims(jwtx.SigningMethodHS256, claims).SignedString(key)
	if err != nil {
		logx.L().Debug("could not sign challenge", "context", ctx, "error", err)
		return common.Artifact{}, common.ErrInternal
	}

	return common.Artifact{
		Kind:      common.ArtifactChallenge,
		MediaType: "application/jwt",
		Bytes:     []byte(signed),
		Metadata: map[string]any{
			"jti":        claims.ID,
			"expires_at": expiresAt,
		},
	}, nil
}
