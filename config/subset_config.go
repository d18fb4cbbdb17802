package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2"
	"github.com/medlearn/mimic-subset/constants"
)

// SubsetConfig is the run configuration for a subset extraction.
// All attributes are optional - unset values fall back to the defaults the
// original MIMIC-III demo subset was built with.
type SubsetConfig struct {
	// required to allow partial decoding
	Remain hcl.Body `hcl:",remain" json:"-"`

	SampleSize        *int     `hcl:"sample_size,optional"`
	Seed              *int64   `hcl:"seed,optional"`
	ChunkSize         *int     `hcl:"chunk_size,optional"`
	MaxLabsPerSubject *int     `hcl:"max_labs_per_subject,optional"`
	VitalSignItemIDs  []string `hcl:"vital_sign_item_ids,optional"`

	Source *SourceBlock `hcl:"source,block"`
}

// SourceBlock is the labelled source block of a config file, e.g.
//
//	source "aws_s3_bucket" {
//	  bucket = "my-bucket"
//	  key    = "mimic-iii-clinical-database-1.4.zip"
//	}
//
// the block body is decoded by the source implementation itself
type SourceBlock struct {
	Type   string   `hcl:"type,label"`
	Remain hcl.Body `hcl:",remain"`
}

func (c *SubsetConfig) Validate() error {
	if c.SampleSize != nil && *c.SampleSize <= 0 {
		return errors.New("sample_size must be positive")
	}
	if c.ChunkSize != nil && *c.ChunkSize <= 0 {
		return errors.New("chunk_size must be positive")
	}
	if c.MaxLabsPerSubject != nil && *c.MaxLabsPerSubject <= 0 {
		return errors.New("max_labs_per_subject must be positive")
	}
	return nil
}

func (*SubsetConfig) Identifier() string {
	return "subset"
}

// GetSampleSize returns the configured sample size, falling back to the default
func (c *SubsetConfig) GetSampleSize() int {
	if c.SampleSize != nil {
		return *c.SampleSize
	}
	return constants.DefaultSampleSize
}

func (c *SubsetConfig) GetSeed() int64 {
	if c.Seed != nil {
		return *c.Seed
	}
	return constants.DefaultSeed
}

func (c *SubsetConfig) GetChunkSize() int {
	if c.ChunkSize != nil {
		return *c.ChunkSize
	}
	return constants.DefaultChunkSize
}

func (c *SubsetConfig) GetMaxLabsPerSubject() int {
	if c.MaxLabsPerSubject != nil {
		return *c.MaxLabsPerSubject
	}
	return constants.DefaultMaxLabsPerSubject
}

func (c *SubsetConfig) GetVitalSignItemIDs() []string {
	if len(c.VitalSignItemIDs) > 0 {
		return c.VitalSignItemIDs
	}
	return constants.VitalSignItemIDs
}

// SourceConfigData returns the config data for the source block, if any
func (c *SubsetConfig) SourceConfigData() (*Data, error) {
	if c.Source == nil {
		return nil, errors.New("config file does not define a source block")
	}
	if c.Source.Type == "" {
		return nil, errors.New("source block must be labelled with a source type")
	}
	return NewData(c.Source.Type, c.Source.Remain), nil
}

func loadFile(path string) ([]byte, hcl.Diagnostics) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, hcl.Diagnostics{&hcl.Diagnostic{
			Severity: hcl.DiagError,
			Summary:  "Failed to read config file",
			Detail:   fmt.Sprintf("%s: %s", path, err),
		}}
	}
	return src, nil
}
