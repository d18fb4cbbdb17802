package config

import (
	"fmt"
	"log/slog"
	"reflect"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/turbot/go-kit/helpers"
	"github.com/turbot/pipe-fittings/error_helpers"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function"
)

// ParseConfigFile parses an HCL run-config file and returns the SubsetConfig
func ParseConfigFile(path string) (*SubsetConfig, error) {
	src, diags := loadFile(path)
	if diags.HasErrors() {
		return nil, error_helpers.HclDiagsToError("Failed to load config file", diags)
	}

	file, diags := hclsyntax.ParseConfig(src, path, hcl.Pos{Line: 1, Column: 1})
	if diags != nil && diags.HasErrors() {
		slog.Warn("failed to parse config file", "path", path)
		return nil, error_helpers.HclDiagsToError("Failed to parse config file", diags)
	}

	target := &SubsetConfig{}
	decodeDiags := gohcl.DecodeBody(file.Body, newEvalContext(), target)
	if decodeDiags.HasErrors() {
		return nil, error_helpers.HclDiagsToError("Failed to decode config file", decodeDiags)
	}

	if err := target.Validate(); err != nil {
		return nil, err
	}
	return target, nil
}

// ParseSourceConfig decodes the body of a source block into the config struct
// for the source type T
func ParseSourceConfig[T Config](configData *Data) (t T, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = helpers.ToError(r)
		}
	}()

	// create a new instance of the target struct
	target := instanceOf[T]()
	// verify this config is of correct type
	if id := target.Identifier(); id != configData.Type {
		return target, fmt.Errorf("invalid source type '%s': expected '%s'", configData.Type, id)
	}

	diags := gohcl.DecodeBody(configData.Body, newEvalContext(), target)
	if diags.HasErrors() {
		return target, error_helpers.HclDiagsToError(fmt.Sprintf("Failed to decode %s source config", configData.Type), diags)
	}

	if err := target.Validate(); err != nil {
		return target, fmt.Errorf("invalid %s source config: %w", configData.Type, err)
	}

	return target, nil
}

// instanceOf returns a new instance of the struct which the pointer type T
// points to
func instanceOf[T any]() T {
	var t T
	return reflect.New(reflect.TypeOf(t).Elem()).Interface().(T)
}

// newEvalContext returns an empty eval context - config files do not support
// variables or functions
func newEvalContext() *hcl.EvalContext {
	return &hcl.EvalContext{
		Variables: make(map[string]cty.Value),
		Functions: make(map[string]function.Function),
	}
}
