package domain

import (
	"errors"

	"github.com/orgair/orgair-mcp/internal/shared"
)

// ResultEnvelope is the uniform result of an invocation: a payload on
// success, an error kind and message on failure.
type ResultEnvelope struct {
	OK        bool             `json:"ok"`
	Payload   any              `json:"payload,omitempty"`
	ErrorKind shared.ErrorKind `json:"error_kind,omitempty"`
	Message   string           `json:"message,omitempty"`
	Fields    []string         `json:"fields,omitempty"`

	err *shared.Error
}

func Success(payload any) ResultEnvelope {
	return ResultEnvelope{OK: true, Payload: payload}
}

// Failure wraps err; errors that are not *shared.Error are reported as InvalidArgument.
func Failure(err error) ResultEnvelope {
	var typed *shared.Error
	if !errors.As(err, &typed) {
		typed = shared.NewError(shared.KindInvalidArgument, "%v", err)
	}
	return ResultEnvelope{
		OK:        false,
		ErrorKind: typed.Kind,
		Message:   typed.Message,
		Fields:    typed.Fields,
		err:       typed,
	}
}

// Err returns the originating error of a failed envelope, or nil.
func (e ResultEnvelope) Err() error {
	if e.OK {
		return nil
	}
	if e.err != nil {
		return e.err
	}
	return &shared.Error{Kind: e.ErrorKind, Message: e.Message, Fields: e.Fields}
}
