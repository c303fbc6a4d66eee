package common

import "fmt"

type ArtifactKind string

const (
	ArtifactUnknown   ArtifactKind = ""
	ArtifactChallenge ArtifactKind = "challenge"
)

type Artifact struct {
	Kind      ArtifactKind
	MediaType string // e.g. "application/jwt", "text/plain"
	Bytes     []byte
	Metadata  map[string]any
}

func ArtifactWithKind(artifacts []Artifact, kind ArtifactKind) (Artifact, error) {
	for _, artifact := range artifacts {
		if artifact.Kind == kind {
			return artifact, nil
		}
	}
	return Artifact{}, fmt.Errorf("missing artifact %s", kind)
}
