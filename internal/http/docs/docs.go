// Package docs publica el documento OpenAPI de la API.
//
// El documento se registra en swag al importar el paquete; el router lo sirve
// en /v3/api-docs y swagger-ui lo consume desde ahí.
package docs

import (
	_ "embed"

	"github.com/swaggo/swag"
)

// InstanceName es el nombre bajo el que se registra el documento en swag.
const InstanceName = "infoeste"

//go:embed openapi.json
var openapiTemplate string

// SpecInfo completa los placeholders del documento.
var SpecInfo = &swag.Spec{
	Version:          "1.0.0",
	Title:            "infoeste marketplace API",
	InfoInstanceName: InstanceName,
	SwaggerTemplate:  openapiTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SpecInfo.InstanceName(), SpecInfo)
}

// JSON devuelve el documento ya renderizado.
func JSON() ([]byte, error) {
	doc, err := swag.ReadDoc(InstanceName)
	if err != nil {
		return nil, err
	}
	return []byte(doc), nil
}
