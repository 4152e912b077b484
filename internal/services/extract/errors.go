package extract

import (
	"errors"
	"fmt"
)

// Kind classifies why an extraction failed.
type Kind string

const (
	// KindNoJSONFound means the response contained no brace-delimited region.
	KindNoJSONFound Kind = "no_json_found"
	// KindMalformedJSON means a region was found but did not parse.
	KindMalformedJSON Kind = "malformed_json"
	// KindSchemaMismatch means the parsed object is missing a required key,
	// or a required key has an unusable shape (e.g. a list field that is not
	// a list).
	KindSchemaMismatch Kind = "schema_mismatch"
)

// Error is the typed failure returned by every extraction path. It never
// carries a partial result; extraction is all-or-nothing per call.
type Error struct {
	Kind       Kind
	Shape      string
	MissingKey string
	Err        error
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindNoJSONFound:
		return fmt.Sprintf("no JSON object found in %s response", e.Shape)
	case KindMalformedJSON:
		return fmt.Sprintf("malformed JSON in %s response: %v", e.Shape, e.Err)
	case KindSchemaMismatch:
		if e.Err != nil {
			return fmt.Sprintf("%s response key %q has wrong shape: %v", e.Shape, e.MissingKey, e.Err)
		}
		return fmt.Sprintf("%s response missing required key %q", e.Shape, e.MissingKey)
	default:
		return fmt.Sprintf("extraction failed for %s response", e.Shape)
	}
}

func (e *Error) Unwrap() error {
	return e.Err
}

// AsError unwraps err into an *Error if one is in the chain.
func AsError(err error) (*Error, bool) {
	var ee *Error
	if errors.As(err, &ee) {
		return ee, true
	}
	return nil, false
}

// KindOf returns the extraction failure kind, or "" when err is not an
// extraction error.
func KindOf(err error) Kind {
	if ee, ok := AsError(err); ok {
		return ee.Kind
	}
	return ""
}
