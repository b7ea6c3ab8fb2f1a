package transport

import (
	"encoding/json"
	"errors"

	"github.com/fastygo/cooltodo/domain"
)

// Envelope wraps every machine-readable command result.
type Envelope struct {
	Status string      `json:"status"`
	Code   string      `json:"code,omitempty"`
	Data   interface{} `json:"data,omitempty"`
	Error  interface{} `json:"error,omitempty"`
	Meta   interface{} `json:"meta,omitempty"`
}

func NewSuccess(data interface{}, meta interface{}) Envelope {
	return Envelope{
		Status: "success",
		Data:   data,
		Meta:   meta,
	}
}

func NewError(code string, err interface{}, meta interface{}) Envelope {
	return Envelope{
		Status: "error",
		Code:   code,
		Error:  err,
		Meta:   meta,
	}
}

// FromError builds an error envelope, taking the code from a domain.Error when
// present and INTERNAL otherwise.
func FromError(err error, meta interface{}) Envelope {
	code := domain.ErrCodeInternal
	var dErr *domain.Error
	if errors.As(err, &dErr) {
		code = dErr.Code
	}
	return NewError(string(code), err.Error(), meta)
}

// String returns the JSON representation (best-effort) for logging purposes.
func (e Envelope) String() string {
	out, err := json.Marshal(e)
	if err != nil {
		return "{}"
	}
	return string(out)
}
