package source

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medlearn/mimic-subset/config"
)

func configDataFromHcl(t *testing.T, sourceType, hclStr string) *config.Data {
	t.Helper()
	file, diags := hclsyntax.ParseConfig([]byte(hclStr), "test.hcl", hcl.Pos{Line: 1, Column: 1})
	require.False(t, diags.HasErrors(), "parse diags: %s", diags)
	return config.NewData(sourceType, file.Body)
}

func TestFileSystemSourceInit(t *testing.T) {
	s := NewFileSystemSource()
	err := s.Init(context.Background(), configDataFromHcl(t, FileSystemSourceIdentifier, `path = "/data/mimic.zip"`))
	require.NoError(t, err)

	fs := s.(*FileSystemSource)
	assert.Equal(t, "/data/mimic.zip", fs.Config.Path)
}

func TestFileSystemSourceInitMissingPath(t *testing.T) {
	s := NewFileSystemSource()
	err := s.Init(context.Background(), configDataFromHcl(t, FileSystemSourceIdentifier, ``))
	require.Error(t, err)
}

func TestFileSystemSourceResolve(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mimic.zip")
	require.NoError(t, os.WriteFile(path, []byte("zip bytes"), 0644))

	s := NewFileSystemSourceFromPath(path)
	resolved, err := s.Resolve(context.Background())
	require.NoError(t, err)
	assert.Equal(t, path, resolved)
}

func TestFileSystemSourceResolveErrors(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		wantErr string
	}{
		{
			name:    "missing file",
			path:    filepath.Join(os.TempDir(), "does-not-exist.zip"),
			wantErr: "does not exist",
		},
		{
			name:    "not a zip file",
			path:    filepath.Join(os.TempDir(), "mimic.tar"),
			wantErr: "is not a zip file",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewFileSystemSourceFromPath(tt.path)
			_, err := s.Resolve(context.Background())
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestFactoryGetSource(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mimic.zip")
	require.NoError(t, os.WriteFile(path, []byte("zip bytes"), 0644))

	configData := configDataFromHcl(t, FileSystemSourceIdentifier, `path = "`+path+`"`)
	s, err := Factory.GetSource(context.Background(), configData)
	require.NoError(t, err)
	defer s.Close()

	assert.Equal(t, FileSystemSourceIdentifier, s.Identifier())
}

func TestFactoryGetSourceUnknownType(t *testing.T) {
	configData := configDataFromHcl(t, "ftp_server", ``)
	_, err := Factory.GetSource(context.Background(), configData)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "source not registered")
}

func TestSourceConfigValidation(t *testing.T) {
	tests := []struct {
		name    string
		config  config.Config
		wantErr string
	}{
		{
			name:    "s3 config requires bucket",
			config:  &AwsS3BucketSourceConfig{Key: "mimic.zip"},
			wantErr: "bucket is required",
		},
		{
			name:    "s3 config requires key",
			config:  &AwsS3BucketSourceConfig{Bucket: "my-bucket"},
			wantErr: "key is required",
		},
		{
			name:   "s3 config valid",
			config: &AwsS3BucketSourceConfig{Bucket: "my-bucket", Key: "mimic.zip"},
		},
		{
			name:    "gcs config requires bucket",
			config:  &GcpStorageBucketSourceConfig{Key: "mimic.zip"},
			wantErr: "bucket is required",
		},
		{
			name:    "gcs config requires key",
			config:  &GcpStorageBucketSourceConfig{Bucket: "my-bucket"},
			wantErr: "key is required",
		},
		{
			name:   "gcs config valid",
			config: &GcpStorageBucketSourceConfig{Bucket: "my-bucket", Key: "mimic.zip"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}
