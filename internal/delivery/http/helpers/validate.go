package helpers

import (
	"encoding/json"
	"net/http"
)

// Problem is a request validation failure: the return code to emit and
// a client-facing message.
type Problem struct {
	Code    string
	Message string
}

// Validator is implemented by request DTOs that support validation.
// Validate returns nil when the request is valid.
type Validator interface {
	Validate() *Problem
}

// DecodeAndValidate decodes the request body into dest (with
// DisallowUnknownFields) and, if dest implements Validator, runs
// Validate(). On failure it writes the error envelope and returns false;
// callers should return immediately when it does.
func DecodeAndValidate(w http.ResponseWriter, r *http.Request, dest any) bool {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dest); err != nil {
		WriteCode(w, CodeMissingFields, "malformed request body")
		return false
	}
	if v, ok := dest.(Validator); ok {
		if p := v.Validate(); p != nil {
			WriteCode(w, p.Code, p.Message)
			return false
		}
	}
	return true
}
