package rest

import (
	"fmt"

	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/turbomanage/httpclient"
)

// Codec converts values to and from request and response bodies.
type Codec interface {
	// ContentType is sent as the Content-Type of marshaled bodies.
	ContentType() string
	Marshal(v any) ([]byte, error)
	Unmarshal(data []byte, v any) error
}

// Provided codecs.
var (
	// JSON encodes bodies as application/json.
	JSON Codec = jsonCodec{}
	// YAML encodes bodies as application/yaml.
	YAML Codec = yamlCodec{}
)

type jsonCodec struct{}

func (jsonCodec) ContentType() string { return httpclient.ContentTypeJSON }

func (jsonCodec) Marshal(v any) ([]byte, error) {
	return json.Marshal(v) //nolint:wrapcheck // wrapped by the caller in CodecError
}

func (jsonCodec) Unmarshal(data []byte, v any) error {
	return json.Unmarshal(data, v) //nolint:wrapcheck // wrapped by the caller in CodecError
}

type yamlCodec struct{}

func (yamlCodec) ContentType() string { return "application/yaml" }

func (yamlCodec) Marshal(v any) ([]byte, error) {
	return yaml.Marshal(v) //nolint:wrapcheck // wrapped by the caller in CodecError
}

func (yamlCodec) Unmarshal(data []byte, v any) error {
	return yaml.Unmarshal(data, v) //nolint:wrapcheck // wrapped by the caller in CodecError
}

// ---------------------------------------------------------------------------
// Errors
// ---------------------------------------------------------------------------

// CodecError reports a failure to marshal a request value or unmarshal a
// response body. It is never retried.
type CodecError struct {
	// Op is "marshal" or "unmarshal".
	Op  string
	Err error
}

func (e *CodecError) Error() string {
	return fmt.Sprintf("rest: %s: %v", e.Op, e.Err)
}

func (e *CodecError) Unwrap() error { return e.Err }

type restError string

func (e restError) Error() string { return string(e) }

// ErrResultRejected is returned when a [ResultHandler] rejects a response.
var ErrResultRejected error = restError("rest: result rejected")
