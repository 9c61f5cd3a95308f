package docx

import (
	"github.com/gofiber/fiber/v2"
)

type RouterDoc struct {
	BasePath  string      `json:"basePath"`
	Endpoints []*Endpoint `json:"endpoints"`
}

func NewRouterDoc(basePath string) *RouterDoc {
	return &RouterDoc{BasePath: basePath, Endpoints: []*Endpoint{}}
}

func (r *RouterDoc) AddEndpoint(endpoint *Endpoint) *RouterDoc {
	r.Endpoints = append(r.Endpoints, endpoint)
	return r
}

// RegisterWithFiber serves the documentation at path. Curl examples use the
// base URL of the incoming request.
func (r *RouterDoc) RegisterWithFiber(app *fiber.App, path string) {
	app.Get(path, func(c *fiber.Ctx) error {
		baseURL := c.BaseURL() + r.BasePath

		endpoints := make([]Endpoint, len(r.Endpoints))
		for i, e := range r.Endpoints {
			endpoints[i] = *e
			endpoints[i].Curl = GenerateCurl(baseURL, e)
		}
		return c.JSON(fiber.Map{"basePath": r.BasePath, "endpoints": endpoints})
	})
}
