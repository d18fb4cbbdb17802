package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path"

	"cloud.google.com/go/storage"
	"github.com/hashicorp/hcl/v2"
	"google.golang.org/api/impersonate"
	"google.golang.org/api/option"

	"github.com/medlearn/mimic-subset/config"
)

const GcpStorageBucketSourceIdentifier = "gcp_storage_bucket"

func init() {
	// register source
	Factory.RegisterSources(NewGcpStorageBucketSource)
}

// GcpStorageBucketSourceConfig is the configuration for a [GcpStorageBucketSource]
type GcpStorageBucketSourceConfig struct {
	// required to allow partial decoding
	Remain hcl.Body `hcl:",remain" json:"-"`

	Bucket string `hcl:"bucket"`
	Key    string `hcl:"key"`

	Credentials  *string `hcl:"credentials,optional"`
	QuotaProject *string `hcl:"quota_project,optional"`
	Impersonate  *string `hcl:"impersonate,optional"`
}

func (c *GcpStorageBucketSourceConfig) Validate() error {
	if c.Bucket == "" {
		return errors.New("bucket is required")
	}
	if c.Key == "" {
		return errors.New("key is required")
	}
	return nil
}

func (*GcpStorageBucketSourceConfig) Identifier() string {
	return GcpStorageBucketSourceIdentifier
}

// GcpStorageBucketSource is an [ArchiveSource] implementation that downloads
// the archive from a GCP Storage bucket
type GcpStorageBucketSource struct {
	Config *GcpStorageBucketSourceConfig

	TmpDir string
	client *storage.Client
}

func NewGcpStorageBucketSource() ArchiveSource {
	return &GcpStorageBucketSource{}
}

func (s *GcpStorageBucketSource) Init(ctx context.Context, configData *config.Data) error {
	// parse the config
	c, err := config.ParseSourceConfig[*GcpStorageBucketSourceConfig](configData)
	if err != nil {
		return err
	}
	s.Config = c

	tmpDir, err := os.MkdirTemp("", fmt.Sprintf("mimic-subset-gcs-%s-", s.Config.Bucket))
	if err != nil {
		return fmt.Errorf("failed to create temp dir: %w", err)
	}
	s.TmpDir = tmpDir

	client, err := s.getClient(ctx)
	if err != nil {
		return err
	}
	s.client = client

	slog.Info("Initialized GcpStorageBucketSource", "bucket", s.Config.Bucket, "key", s.Config.Key)
	return nil
}

func (s *GcpStorageBucketSource) Identifier() string {
	return GcpStorageBucketSourceIdentifier
}

func (s *GcpStorageBucketSource) Close() error {
	_ = os.RemoveAll(s.TmpDir)
	return s.client.Close()
}

// Resolve downloads the archive object to the temp dir and returns the local path
func (s *GcpStorageBucketSource) Resolve(ctx context.Context) (string, error) {
	bucket := s.client.Bucket(s.Config.Bucket)
	obj := bucket.Object(s.Config.Key)

	reader, err := obj.NewReader(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to get object reader: %s", err.Error())
	}
	defer reader.Close()

	localFilePath := path.Join(s.TmpDir, path.Base(s.Config.Key))
	if err := os.MkdirAll(path.Dir(localFilePath), 0755); err != nil {
		return "", fmt.Errorf("failed to create directory for file, %w", err)
	}

	outFile, err := os.Create(localFilePath)
	if err != nil {
		return "", fmt.Errorf("failed to create file, %w", err)
	}
	defer outFile.Close()

	if _, err := io.Copy(outFile, reader); err != nil {
		return "", fmt.Errorf("failed to write data to file, %w", err)
	}

	slog.Info("Downloaded archive from GCP Storage", "bucket", s.Config.Bucket, "key", s.Config.Key, "path", localFilePath)
	return localFilePath, nil
}

func (s *GcpStorageBucketSource) getClient(ctx context.Context) (*storage.Client, error) {
	opts, err := s.setSessionConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed setting GCP Storage client config: %s", err.Error())
	}

	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCP Storage client: %s", err.Error())
	}

	return client, nil
}

func (s *GcpStorageBucketSource) setSessionConfig(ctx context.Context) ([]option.ClientOption, error) {
	var opts []option.ClientOption

	// Credentials
	if s.Config.Credentials != nil {
		credentials, err := pathOrContents(*s.Config.Credentials)
		if err != nil {
			return nil, fmt.Errorf("failed to read credentials file: %s", err.Error())
		}

		opts = append(opts, option.WithCredentialsJSON([]byte(credentials)))
	}

	// Quota Project
	quotaProject := os.Getenv("GOOGLE_CLOUD_QUOTA_PROJECT")

	if s.Config.QuotaProject != nil {
		quotaProject = *s.Config.QuotaProject
	}

	if quotaProject != "" {
		opts = append(opts, option.WithQuotaProject(quotaProject))
	}

	// Impersonate
	if s.Config.Impersonate != nil {
		ts, err := impersonate.CredentialsTokenSource(ctx, impersonate.CredentialsConfig{
			TargetPrincipal: *s.Config.Impersonate,
			Scopes:          []string{"https://www.googleapis.com/auth/cloud-platform"},
		})
		if err != nil {
			return opts, err
		}

		opts = append(opts, option.WithTokenSource(ts))
	}

	return opts, nil
}

// pathOrContents returns the contents of the file if the argument is a file
// path, otherwise the argument itself
func pathOrContents(in string) (string, error) {
	if len(in) == 0 {
		return "", nil
	}

	filePath := in
	if filePath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return filePath, err
		}
		filePath = home + filePath[1:]
	}

	if _, err := os.Stat(filePath); err == nil {
		contents, err := os.ReadFile(filePath)
		if err != nil {
			return string(contents), err
		}
		return string(contents), nil
	}

	return in, nil
}
