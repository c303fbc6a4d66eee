package common

type SubjectID string

// Principal is the authenticated user a verification function hands back
// on success. A nil *Principal means the verifier denied the request.
type Principal struct {
	Subject    SubjectID
	Attributes map[string]any
}

func (p *Principal) Attribute(key string) (any, bool) {
	if p == nil || p.Attributes == nil {
		return nil, false
	}
	v, ok := p.Attributes[key]
	return v, ok
}
