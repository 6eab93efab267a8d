// Package apicontract embeds the OpenAPI document of the catalog API.
package apicontract

import _ "embed"

//go:embed openapi.yml
var specBytes []byte

// GetSpecBytes returns the OpenAPI document as YAML.
func GetSpecBytes() []byte {
	return specBytes
}
