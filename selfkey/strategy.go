package selfkey

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/axent-pl/selfkey/common"
	"github.com/axent-pl/selfkey/common/logx"
	"github.com/axent-pl/selfkey/mapx"
)

const DefaultName = "selfkey"

// DoneFunc completes a verification. Pass a non-nil err on failure, a nil
// user to deny, or the authenticated user. Only the first call counts.
type DoneFunc func(err error, user *common.Principal, info any)

// VerifyFunc checks credentials and reports through done, synchronously or
// from another goroutine.
type VerifyFunc func(ctx context.Context, creds Credentials, done DoneFunc)

// VerifyRequestFunc is VerifyFunc with the originating request passed first.
type VerifyRequestFunc func(ctx context.Context, req Request, creds Credentials, done DoneFunc)

type Config struct {
	Name   string
	Fields FieldNames
	// WithoutNonce drops the nonce from the required credentials.
	WithoutNonce bool
	// Sources defaults to SourceBody.
	Sources Source

	// Exactly one of Verify and VerifyWithRequest must be set.
	Verify            VerifyFunc
	VerifyWithRequest VerifyRequestFunc
}

// Strategy extracts signed-login credentials from a request and hands them
// to an application supplied verification function. It holds no per-request
// state and is safe for concurrent use.
type Strategy struct {
	name     string
	sources  Source
	required []Field
	paths    [3]mapx.Path
	invoke   VerifyRequestFunc
	log      logx.Logger
}

func New(cfg Config) (*Strategy, error) {
	if cfg.Verify == nil && cfg.VerifyWithRequest == nil {
		return nil, fmt.Errorf("%w: selfkey strategy requires a verify callback", common.ErrConfiguration)
	}
	if cfg.Verify != nil && cfg.VerifyWithRequest != nil {
		return nil, fmt.Errorf("%w: set either Verify or VerifyWithRequest, not both", common.ErrConfiguration)
	}
	if cfg.Sources == 0 {
		cfg.Sources = SourceBody
	}
	if cfg.Sources&^sourceAll != 0 {
		return nil, fmt.Errorf("%w: unknown credential source %v", common.ErrConfiguration, cfg.Sources)
	}
	if cfg.Name == "" {
		cfg.Name = DefaultName
	}

	s := &Strategy{
		name:    cfg.Name,
		sources: cfg.Sources,
		log:     logx.With("strategy", cfg.Name),
	}

	names := cfg.Fields.withDefaults()
	for _, f := range []Field{FieldNonce, FieldSignature, FieldPublicKey} {
		s.paths[f] = mapx.ParsePath(names.name(f))
	}
	if !cfg.WithoutNonce {
		s.required = append(s.required, FieldNonce)
	}
	s.required = append(s.required, FieldSignature, FieldPublicKey)

	if cfg.VerifyWithRequest != nil {
		s.invoke = cfg.VerifyWithRequest
	} else {
		verify := cfg.Verify
		s.invoke = func(ctx context.Context, _ Request, creds Credentials, done DoneFunc) {
			verify(ctx, creds, done)
		}
	}

	return s, nil
}

func (s *Strategy) Name() string { return s.name }

func (s *Strategy) Kind() common.Kind { return common.SelfKey }

// Required lists the credential fields a request must carry.
func (s *Strategy) Required() []Field {
	out := make([]Field, len(s.required))
	copy(out, s.required)
	return out
}

// Extract reads every required field, body before query, and reports the
// ones that could not be resolved. Only an unresolved lookup is missing:
// "", 0 and false are values and are handed to the verifier as such.
func (s *Strategy) Extract(req Request) (Credentials, []Field) {
	var creds Credentials
	var missing []Field
	for _, f := range s.required {
		v, ok := s.resolve(req, f)
		if !ok {
			missing = append(missing, f)
			continue
		}
		creds.set(f, v)
	}
	return creds, missing
}

func (s *Strategy) resolve(req Request, f Field) (string, bool) {
	if req == nil {
		return "", false
	}
	for _, src := range precedence {
		if s.sources&src == 0 {
			continue
		}
		if v, ok := s.paths[f].Lookup(sourceValues(req, src)); ok {
			return scalarString(v), true
		}
	}
	return "", false
}

func scalarString(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case fmt.Stringer:
		return t.String()
	}
	return fmt.Sprint(v)
}

// Authenticate runs one authentication attempt and signals host exactly once,
// unless the verifier never completes. Panics raised by the verifier or by
// the host signals do not escape it.
func (s *Strategy) Authenticate(ctx context.Context, req Request, host Host) {
	creds, missing := s.Extract(req)
	if len(missing) > 0 {
		s.log.Debug("missing credentials", "fields", missing)
		missingCredentials().Deliver(host)
		return
	}

	var fired atomic.Bool
	finish := func(o Outcome) {
		if !fired.CompareAndSwap(false, true) {
			s.log.Debug("verification already completed, ignoring", "outcome", o.Status)
			return
		}
		s.log.Debug("verification completed", "outcome", o.Status)
		defer func() {
			if r := recover(); r != nil {
				s.log.Error("host signal panicked", "outcome", o.Status, "panic", r)
			}
		}()
		o.Deliver(host)
	}

	defer func() {
		if r := recover(); r != nil {
			err := panicError(r)
			s.log.Debug("verify callback panicked", "error", err)
			finish(Errored(err))
		}
	}()

	s.invoke(ctx, req, creds, func(err error, user *common.Principal, info any) {
		finish(fromCompletion(err, user, info))
	})
}

// AuthenticateOutcome runs Authenticate and waits for its outcome or for ctx
// to end, whichever comes first.
func (s *Strategy) AuthenticateOutcome(ctx context.Context, req Request) (Outcome, error) {
	ch := make(outcomeHost, 1)
	s.Authenticate(ctx, req, ch)
	select {
	case o := <-ch:
		return o, nil
	case <-ctx.Done():
		return Outcome{}, ctx.Err()
	}
}

func panicError(r any) error {
	if err, ok := r.(error); ok {
		return err
	}
	return fmt.Errorf("%w: verify callback panicked: %v", common.ErrVerification, r)
}
