package selfkey

import (
	"fmt"
	"strings"

	"github.com/axent-pl/selfkey/common"
	"github.com/mitchellh/mapstructure"
)

// DecodeConfig reads the declarative part of a Config from a generic map,
// e.g. one loaded from a YAML or JSON settings file:
//
//	name: selfkey
//	without_nonce: false
//	sources: [body, query]
//	fields:
//	  nonce: nonce
//	  signature: signature
//	  public_key: pubKey
//
// The verification function has to be set on the result before calling New.
func DecodeConfig(raw map[string]any) (Config, error) {
	var decoded struct {
		Name         string     `mapstructure:"name"`
		WithoutNonce bool       `mapstructure:"without_nonce"`
		Sources      []string   `mapstructure:"sources"`
		Fields       FieldNames `mapstructure:"fields"`
	}

	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		ErrorUnused:      true,
		WeaklyTypedInput: true,
		Result:           &decoded,
	})
	if err != nil {
		return Config{}, fmt.Errorf("%w: %w", common.ErrInternal, err)
	}
	if err := dec.Decode(raw); err != nil {
		return Config{}, fmt.Errorf("%w: %w", common.ErrConfiguration, err)
	}

	sources, err := ParseSources(decoded.Sources)
	if err != nil {
		return Config{}, err
	}

	return Config{
		Name:         decoded.Name,
		Fields:       decoded.Fields,
		WithoutNonce: decoded.WithoutNonce,
		Sources:      sources,
	}, nil
}

// ParseSources turns source names ("body", "query") into a Source set.
// The order of names does not matter; body always takes precedence.
func ParseSources(names []string) (Source, error) {
	var s Source
	for _, name := range names {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "body":
			s |= SourceBody
		case "query":
			s |= SourceQuery
		default:
			return 0, fmt.Errorf("%w: unknown credential source %q", common.ErrConfiguration, name)
		}
	}
	return s, nil
}
