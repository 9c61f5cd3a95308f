package docx

import (
	"fmt"
	"strings"
)

// GenerateCurl renders endpoint as a curl command against baseURL
func GenerateCurl(baseURL string, endpoint *Endpoint) string {
	var b strings.Builder

	fmt.Fprintf(&b, "curl -X %s %q", endpoint.Method, strings.TrimRight(baseURL, "/")+endpoint.Path)

	for _, h := range endpoint.Headers {
		value := h.Value
		if value == "" {
			value = "<VALUE>"
		}
		fmt.Fprintf(&b, " -H %q", h.Name+": "+value)
	}

	if endpoint.Auth == Bearer {
		b.WriteString(` -H "Authorization: Bearer <TOKEN>"`)
	}

	if endpoint.RequestExample != "" {
		fmt.Fprintf(&b, " --data %q", endpoint.RequestExample)
	}

	return b.String()
}
