package httpclient

import "net/http"

// Method is an HTTP request method. Besides the method name it decides
// whether the write phase happens and where parameters are encoded.
type Method int

// Supported methods.
const (
	MethodGet Method = iota
	MethodPost
	MethodPut
	MethodDelete
	MethodHead
)

// methodInfo is one row of the method behavior table.
type methodInfo struct {
	name string
	// hasBody means the write phase runs when the body is non-empty.
	hasBody bool
	// paramsInQuery means Params are appended to the path instead of being
	// sent as a form body.
	paramsInQuery bool
}

//nolint:gochecknoglobals // immutable lookup table
var methodTable = [...]methodInfo{
	MethodGet:    {name: http.MethodGet, paramsInQuery: true},
	MethodPost:   {name: http.MethodPost, hasBody: true},
	MethodPut:    {name: http.MethodPut, hasBody: true},
	MethodDelete: {name: http.MethodDelete, paramsInQuery: true},
	MethodHead:   {name: http.MethodHead, paramsInQuery: true},
}

func (m Method) info() methodInfo {
	if m < 0 || int(m) >= len(methodTable) {
		return methodInfo{name: "UNKNOWN"}
	}

	return methodTable[m]
}

// String returns the method name as sent on the wire.
func (m Method) String() string { return m.info().name }

// HasBody reports whether requests with this method write a body.
func (m Method) HasBody() bool { return m.info().hasBody }

// ParamsInQuery reports whether parameters are sent in the query string.
func (m Method) ParamsInQuery() bool { return m.info().paramsInQuery }
