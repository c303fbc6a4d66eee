package common

type Kind string

const (
	SelfKey Kind = "selfkey"
)

type Credentials interface {
	Kind() Kind
}
