package ethproofs

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
)

// Request is one call to the service. The set of implementations is closed:
// every endpoint has exactly one request type in this package, and the HTTP
// method, endpoint and body are derived from it without side effects.
type Request interface {
	// Method returns the HTTP method
	Method() string
	// Endpoint returns the path relative to the base URL, query string included
	Endpoint() string
	// Body returns the JSON payload, or nil for requests without one
	Body() (json.RawMessage, error)

	isRequest()
}

// Endpoint is a Request whose successful response decodes into R. It lets
// Do check the endpoint-to-response mapping at compile time.
type Endpoint[R Response] interface {
	Request
	expects(R)
}

// getRequest supplies the Method and Body of the read-only endpoints.
type getRequest struct{}

func (getRequest) Method() string                 { return http.MethodGet }
func (getRequest) Body() (json.RawMessage, error) { return nil, nil }
func (getRequest) isRequest()                     {}

// postRequest supplies the Method of the mutating endpoints; each of them
// encodes its own body.
type postRequest struct{}

func (postRequest) Method() string { return http.MethodPost }
func (postRequest) isRequest()     {}

func encodeBody(v any) (json.RawMessage, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return json.RawMessage(data), nil
}

// appendQuery adds key=value, separating from the path with '?' for the
// first parameter and '&' afterwards.
func appendQuery(endpoint, key, value string) string {
	return appendRawQuery(endpoint, key, url.QueryEscape(value))
}

// appendRawQuery is appendQuery for a value that is already escaped.
func appendRawQuery(endpoint, key, value string) string {
	sep := "?"
	if strings.Contains(endpoint, "?") {
		sep = "&"
	}
	return endpoint + sep + key + "=" + value
}
