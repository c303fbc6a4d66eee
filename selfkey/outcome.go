package selfkey

import (
	"fmt"
	"net/http"

	"github.com/axent-pl/selfkey/common"
)

// Host receives exactly one terminal signal per Authenticate call.
type Host interface {
	Success(user *common.Principal, info any)
	// Fail rejects the request. status is 0 when the strategy does not
	// force a code and the host should pick its own (usually 401).
	Fail(info any, status int)
	Error(err error)
}

// HostFuncs adapts plain functions to Host. Nil funcs are skipped.
type HostFuncs struct {
	OnSuccess func(user *common.Principal, info any)
	OnFail    func(info any, status int)
	OnError   func(err error)
}

func (h HostFuncs) Success(user *common.Principal, info any) {
	if h.OnSuccess != nil {
		h.OnSuccess(user, info)
	}
}

func (h HostFuncs) Fail(info any, status int) {
	if h.OnFail != nil {
		h.OnFail(info, status)
	}
}

func (h HostFuncs) Error(err error) {
	if h.OnError != nil {
		h.OnError(err)
	}
}

// Info is the diagnostic payload the strategy attaches to its own rejections.
type Info struct {
	Message string `json:"message"`
}

const MessageMissingCredentials = "Missing credentials"

type Status int

const (
	StatusAccepted Status = iota + 1
	StatusRejected
	StatusErrored
)

func (s Status) String() string {
	switch s {
	case StatusAccepted:
		return "accepted"
	case StatusRejected:
		return "rejected"
	case StatusErrored:
		return "errored"
	}
	return "unknown"
}

// Outcome is the terminal result of an authentication attempt.
// User is set only when accepted, Err only when errored.
type Outcome struct {
	Status     Status
	User       *common.Principal
	Info       any
	StatusCode int
	Err        error
}

func Accepted(user *common.Principal, info any) Outcome {
	return Outcome{Status: StatusAccepted, User: user, Info: info}
}

func Rejected(info any, statusCode int) Outcome {
	return Outcome{Status: StatusRejected, Info: info, StatusCode: statusCode}
}

func Errored(err error) Outcome {
	return Outcome{Status: StatusErrored, Err: err}
}

func missingCredentials() Outcome {
	return Rejected(Info{Message: MessageMissingCredentials}, http.StatusBadRequest)
}

// fromCompletion maps the (err, user, info) reported by a verifier.
func fromCompletion(err error, user *common.Principal, info any) Outcome {
	if err != nil {
		return Errored(err)
	}
	if user == nil {
		return Rejected(info, 0)
	}
	return Accepted(user, info)
}

// Deliver forwards o to the matching Host signal.
func (o Outcome) Deliver(h Host) {
	switch o.Status {
	case StatusAccepted:
		h.Success(o.User, o.Info)
	case StatusRejected:
		h.Fail(o.Info, o.StatusCode)
	case StatusErrored:
		h.Error(o.Err)
	}
}

func (o Outcome) String() string {
	switch o.Status {
	case StatusAccepted:
		if o.User == nil {
			return "accepted()"
		}
		return fmt.Sprintf("accepted(%s)", o.User.Subject)
	case StatusRejected:
		return fmt.Sprintf("rejected(%v, %d)", o.Info, o.StatusCode)
	case StatusErrored:
		return fmt.Sprintf("errored(%v)", o.Err)
	}
	return "unknown"
}

// outcomeHost forwards the single outcome into a buffered channel.
type outcomeHost chan Outcome

func (h outcomeHost) Success(user *common.Principal, info any) { h <- Accepted(user, info) }
func (h outcomeHost) Fail(info any, status int)                { h <- Rejected(info, status) }
func (h outcomeHost) Error(err error)                          { h <- Errored(err) }
