package fixtures

import (
	"fmt"
	"strings"
)

const maxBodySnippet = 500

// AuthenticationError means the staff login to Studio failed. StatusCode is zero if the
// request never got a response.
type AuthenticationError struct {
	StatusCode int
	Err        error
}

func (e *AuthenticationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("could not log in to use Studio REST API: %s", e.Err)
	}
	return fmt.Sprintf("could not log in to use Studio REST API. Status code: %d", e.StatusCode)
}

func (e *AuthenticationError) Unwrap() error { return e.Err }

// DecodeError means a response that should have been JSON could not be parsed.
type DecodeError struct {
	Description string
	Body        []byte
	Err         error
}

func (e *DecodeError) Error() string {
	msg := fmt.Sprintf("could not decode %s as JSON: '%s'", e.Description, snippet(e.Body))
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *DecodeError) Unwrap() error { return e.Err }

// InstallationError means a Studio call failed, either at the transport level or by
// reporting failure through its status code or response body. Step identifies which part
// of the installation was running.
type InstallationError struct {
	Step       string
	Message    string
	StatusCode int
	Err        error
}

func (e *InstallationError) Error() string {
	msg := e.Step + ": " + e.Message
	if e.StatusCode != 0 {
		msg += fmt.Sprintf(". Status was %d", e.StatusCode)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *InstallationError) Unwrap() error { return e.Err }

func snippet(b []byte) string {
	s := strings.TrimSpace(string(b))
	if len(s) <= maxBodySnippet {
		return s
	}
	return s[:maxBodySnippet] + "..."
}
