package http

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"io"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/pkg/errs"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
	"github.com/swaggo/swag"
)

//go:embed openapi.yaml
var openapiYAML []byte

// APIDocument is the parsed OpenAPI contract. Request bodies are checked
// against its component schemas before they are mapped to commands.
type APIDocument struct {
	doc  *openapi3.T
	json string
}

// LoadAPIDocument parses and validates the embedded contract.
func LoadAPIDocument() (*APIDocument, error) {
	loader := openapi3.NewLoader()
	doc, err := loader.LoadFromData(openapiYAML)
	if err != nil {
		return nil, fmt.Errorf("load openapi document: %w", err)
	}
	if err := doc.Validate(loader.Context); err != nil {
		return nil, fmt.Errorf("validate openapi document: %w", err)
	}

	raw, err := doc.MarshalJSON()
	if err != nil {
		return nil, fmt.Errorf("encode openapi document: %w", err)
	}

	return &APIDocument{doc: doc, json: string(raw)}, nil
}

// ReadDoc serves the contract to swagger UI.
func (d *APIDocument) ReadDoc() string {
	return d.json
}

// Register publishes the document under the default swag instance, which is
// what echo-swagger reads.
func (d *APIDocument) Register() {
	if swag.GetSwagger(swag.Name) == nil {
		swag.Register(swag.Name, d)
	}
}

// bind decodes the request body, validates it against the named schema and
// unmarshals it into dst. Every failure is a validation error.
func (d *APIDocument) bind(c echo.Context, schemaName string, dst any) error {
	ref, ok := d.doc.Components.Schemas[schemaName]
	if !ok || ref.Value == nil {
		return fmt.Errorf("schema %s is not defined", schemaName)
	}

	raw, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return errs.NewValueIsInvalidErrorWithCause("body", err)
	}

	var value any
	if err := json.Unmarshal(raw, &value); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("body", err)
	}
	if err := ref.Value.VisitJSON(value); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("body", err)
	}

	if err := json.Unmarshal(raw, dst); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("body", err)
	}
	return nil
}

func parcelIDParam(c echo.Context) (kernel.ParcelID, error) {
	var id int64
	err := runtime.BindStyledParameterWithOptions("simple", "id", c.Param("id"), &id, runtime.BindStyledParameterOptions{
		ParamLocation: runtime.ParamLocationPath,
		Explode:       false,
		Required:      true,
	})
	if err != nil {
		return 0, errs.NewValueIsInvalidErrorWithCause("id", err)
	}

	return kernel.NewParcelID(id)
}
