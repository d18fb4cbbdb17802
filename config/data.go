package config

import (
	"github.com/hashicorp/hcl/v2"
)

// Data contains the config data used to configure an archive source.
// It carries the source type together with the HCL body of the source block,
// which the newly instantiated source must decode into its own config type.
type Data struct {
	// the type of the source ("file_system", "aws_s3_bucket", ...)
	Type string
	Body hcl.Body
}

func NewData(sourceType string, body hcl.Body) *Data {
	return &Data{
		Type: sourceType,
		Body: body,
	}
}
