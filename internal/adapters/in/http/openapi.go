package http

import (
	"fmt"
	"sync"

	"labflow/api"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/swaggo/swag"
)

// openAPIDoc serves a pre-rendered JSON document to swag.
type openAPIDoc struct {
	json string
}

func (d openAPIDoc) ReadDoc() string {
	return d.json
}

var registerDocOnce sync.Once

// LoadOpenAPI parses and validates the embedded OpenAPI description.
func LoadOpenAPI() (*openapi3.T, error) {
	loader := openapi3.NewLoader()
	doc, err := loader.LoadFromData(api.OpenAPI)
	if err != nil {
		return nil, fmt.Errorf("load openapi document: %w", err)
	}

	if err = doc.Validate(loader.Context); err != nil {
		return nil, fmt.Errorf("validate openapi document: %w", err)
	}

	return doc, nil
}

// registerOpenAPI makes the document available to echo-swagger. swag keeps a
// process-wide registry, so only the first call registers.
func registerOpenAPI() error {
	doc, err := LoadOpenAPI()
	if err != nil {
		return err
	}

	rendered, err := doc.MarshalJSON()
	if err != nil {
		return fmt.Errorf("render openapi document: %w", err)
	}

	registerDocOnce.Do(func() {
		swag.Register(swag.Name, openAPIDoc{json: string(rendered)})
	})
	return nil
}
