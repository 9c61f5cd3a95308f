// Package docx describes HTTP endpoints and renders them as JSON or as
// ready-to-run curl commands.
package docx

type HTTPMethod string

const (
	GET    HTTPMethod = "GET"
	POST   HTTPMethod = "POST"
	PUT    HTTPMethod = "PUT"
	DELETE HTTPMethod = "DELETE"
)

type Authentication string

const (
	None   Authentication = "none"
	Bearer Authentication = "bearer"
)

// Header documents a request header
type Header struct {
	Name        string `json:"name"`
	Value       string `json:"value,omitempty"`
	Description string `json:"description,omitempty"`
	Required    bool   `json:"required"`
}

// Endpoint documents one route
type Endpoint struct {
	Path        string         `json:"path"`
	Method      HTTPMethod     `json:"method"`
	Summary     string         `json:"summary,omitempty"`
	Description string         `json:"description,omitempty"`
	Auth        Authentication `json:"auth"`
	Headers     []Header       `json:"headers,omitempty"`

	// RequestExample is sent verbatim by the generated curl command
	RequestExample  string `json:"requestExample,omitempty"`
	ResponseExample string `json:"responseExample,omitempty"`

	Curl string `json:"curl,omitempty"`
}

func NewEndpoint(path string, method HTTPMethod) *Endpoint {
	return &Endpoint{Path: path, Method: method, Auth: None}
}

func (e *Endpoint) WithSummary(summary string) *Endpoint {
	e.Summary = summary
	return e
}

func (e *Endpoint) WithDescription(description string) *Endpoint {
	e.Description = description
	return e
}

func (e *Endpoint) WithAuth(auth Authentication) *Endpoint {
	e.Auth = auth
	return e
}

func (e *Endpoint) WithHeader(name, value, description string, required bool) *Endpoint {
	e.Headers = append(e.Headers, Header{Name: name, Value: value, Description: description, Required: required})
	return e
}

func (e *Endpoint) WithRequestExample(body string) *Endpoint {
	e.RequestExample = body
	return e
}

func (e *Endpoint) WithResponseExample(body string) *Endpoint {
	e.ResponseExample = body
	return e
}
