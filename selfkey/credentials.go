package selfkey

import (
	"fmt"

	"github.com/axent-pl/selfkey/common"
)

// Credentials holds the values a login request carries. Nonce is empty when
// the strategy is configured without a challenge.
type Credentials struct {
	Nonce     string
	Signature string
	PublicKey string
}

func (Credentials) Kind() common.Kind { return common.SelfKey }

var _ common.Credentials = Credentials{}

type Field int

const (
	FieldNonce Field = iota
	FieldSignature
	FieldPublicKey
)

func (f Field) String() string {
	switch f {
	case FieldNonce:
		return "nonce"
	case FieldSignature:
		return "signature"
	case FieldPublicKey:
		return "publicKey"
	}
	return fmt.Sprintf("Field(%d)", int(f))
}

// FieldNames maps each credential to the request field it is read from.
// Names may be bracketed, e.g. "login[pubKey]".
type FieldNames struct {
	Nonce     string `mapstructure:"nonce"`
	Signature string `mapstructure:"signature"`
	PublicKey string `mapstructure:"public_key"`
}

var DefaultFieldNames = FieldNames{
	Nonce:     "nonce",
	Signature: "signature",
	PublicKey: "pubKey",
}

func (n FieldNames) withDefaults() FieldNames {
	if n.Nonce == "" {
		n.Nonce = DefaultFieldNames.Nonce
	}
	if n.Signature == "" {
		n.Signature = DefaultFieldNames.Signature
	}
	if n.PublicKey == "" {
		n.PublicKey = DefaultFieldNames.PublicKey
	}
	return n
}

func (n FieldNames) name(f Field) string {
	switch f {
	case FieldNonce:
		return n.Nonce
	case FieldSignature:
		return n.Signature
	case FieldPublicKey:
		return n.PublicKey
	}
	return ""
}

func (c *Credentials) set(f Field, v string) {
	switch f {
	case FieldNonce:
		c.Nonce = v
	case FieldSignature:
		c.Signature = v
	case FieldPublicKey:
		c.PublicKey = v
	}
}
