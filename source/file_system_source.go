package source

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/mitchellh/go-homedir"

	"github.com/medlearn/mimic-subset/config"
)

const FileSystemSourceIdentifier = "file_system"

func init() {
	// register source
	Factory.RegisterSources(NewFileSystemSource)
}

// FileSystemSourceConfig is the configuration for a [FileSystemSource]
type FileSystemSourceConfig struct {
	// required to allow partial decoding
	Remain hcl.Body `hcl:",remain" json:"-"`

	Path string `hcl:"path"`
}

func (c *FileSystemSourceConfig) Validate() error {
	if c.Path == "" {
		return errors.New("path is required")
	}
	return nil
}

func (*FileSystemSourceConfig) Identifier() string {
	return FileSystemSourceIdentifier
}

// FileSystemSource is an [ArchiveSource] implementation that reads the archive
// from the local file system
type FileSystemSource struct {
	Config *FileSystemSourceConfig
}

func NewFileSystemSource() ArchiveSource {
	return &FileSystemSource{}
}

// NewFileSystemSourceFromPath returns an initialised FileSystemSource for the
// given archive path - used when the archive location is passed directly on
// the command line rather than via a config file
func NewFileSystemSourceFromPath(path string) ArchiveSource {
	return &FileSystemSource{
		Config: &FileSystemSourceConfig{Path: path},
	}
}

func (s *FileSystemSource) Init(_ context.Context, configData *config.Data) error {
	// parse the config
	c, err := config.ParseSourceConfig[*FileSystemSourceConfig](configData)
	if err != nil {
		return err
	}
	s.Config = c

	slog.Info("Initialized FileSystemSource", "path", s.Config.Path)
	return nil
}

func (s *FileSystemSource) Identifier() string {
	return FileSystemSourceIdentifier
}

func (s *FileSystemSource) Resolve(_ context.Context) (string, error) {
	path, err := homedir.Expand(s.Config.Path)
	if err != nil {
		return "", fmt.Errorf("failed to expand path %s: %w", s.Config.Path, err)
	}

	if !strings.HasSuffix(path, ".zip") {
		return "", fmt.Errorf("%s is not a zip file", path)
	}

	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("the file %s does not exist", path)
		}
		return "", fmt.Errorf("error accessing %s: %w", path, err)
	}

	return path, nil
}

func (s *FileSystemSource) Close() error {
	return nil
}
