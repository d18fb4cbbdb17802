package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path"
	"path/filepath"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/hashicorp/hcl/v2"
	typehelpers "github.com/turbot/go-kit/types"

	"github.com/medlearn/mimic-subset/config"
)

const (
	AwsS3BucketSourceIdentifier = "aws_s3_bucket"
	defaultBucketRegion         = "us-east-1"
)

func init() {
	// register source
	Factory.RegisterSources(NewAwsS3BucketSource)
}

// AwsS3BucketSourceConfig is the configuration for an [AwsS3BucketSource]
type AwsS3BucketSourceConfig struct {
	// required to allow partial decoding
	Remain hcl.Body `hcl:",remain" json:"-"`

	Bucket string  `hcl:"bucket"`
	Key    string  `hcl:"key"`
	Region *string `hcl:"region,optional"`

	AccessKey    string `hcl:"access_key,optional"`
	SecretKey    string `hcl:"secret_key,optional"`
	SessionToken string `hcl:"session_token,optional"`
}

func (c *AwsS3BucketSourceConfig) Validate() error {
	if c.Bucket == "" {
		return errors.New("bucket is required")
	}
	if c.Key == "" {
		return errors.New("key is required")
	}
	return nil
}

func (*AwsS3BucketSourceConfig) Identifier() string {
	return AwsS3BucketSourceIdentifier
}

// AwsS3BucketSource is an [ArchiveSource] implementation that downloads the
// archive from an S3 bucket
type AwsS3BucketSource struct {
	Config *AwsS3BucketSourceConfig

	TmpDir string
	client *s3.Client
}

func NewAwsS3BucketSource() ArchiveSource {
	return &AwsS3BucketSource{}
}

func (s *AwsS3BucketSource) Init(ctx context.Context, configData *config.Data) error {
	slog.Info("Initializing AwsS3BucketSource")

	// parse the config
	c, err := config.ParseSourceConfig[*AwsS3BucketSourceConfig](configData)
	if err != nil {
		return err
	}
	s.Config = c

	tmpDir, err := os.MkdirTemp("", fmt.Sprintf("mimic-subset-s3-%s-", s.Config.Bucket))
	if err != nil {
		return fmt.Errorf("failed to create temp dir: %w", err)
	}
	s.TmpDir = tmpDir

	if s.Config.Region == nil {
		slog.Info("No region set, using default", "region", defaultBucketRegion)
		region := defaultBucketRegion
		s.Config.Region = &region
	}
	// initialize client
	client, err := s.getClient(ctx)
	if err != nil {
		return err
	}
	s.client = client

	slog.Info("Initialized AwsS3BucketSource", "bucket", s.Config.Bucket, "key", s.Config.Key)
	return nil
}

func (s *AwsS3BucketSource) Identifier() string {
	return AwsS3BucketSourceIdentifier
}

func (s *AwsS3BucketSource) Close() error {
	// delete the temp dir and all files
	return os.RemoveAll(s.TmpDir)
}

// Resolve downloads the archive object to the temp dir and returns the local path
func (s *AwsS3BucketSource) Resolve(ctx context.Context) (string, error) {
	// Get the object from S3
	getObjectOutput, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: &s.Config.Bucket,
		Key:    &s.Config.Key,
	})
	if err != nil {
		return "", fmt.Errorf("failed to download archive, %w", err)
	}
	defer getObjectOutput.Body.Close()

	// copy the object data to a temp file
	localFilePath := path.Join(s.TmpDir, path.Base(s.Config.Key))
	// ensure the directory exists of the file to write to
	if err := os.MkdirAll(filepath.Dir(localFilePath), 0755); err != nil {
		return "", fmt.Errorf("failed to create directory for file, %w", err)
	}

	// Create a local file to write the data to
	outFile, err := os.Create(localFilePath)
	if err != nil {
		return "", fmt.Errorf("failed to create file, %w", err)
	}
	defer outFile.Close()

	// Write the data to the local file
	if _, err := io.Copy(outFile, getObjectOutput.Body); err != nil {
		return "", fmt.Errorf("failed to write data to file, %w", err)
	}

	slog.Info("Downloaded archive from S3", "bucket", s.Config.Bucket, "key", s.Config.Key, "path", localFilePath)
	return localFilePath, nil
}

func (s *AwsS3BucketSource) getClient(ctx context.Context) (*s3.Client, error) {
	var opts []func(*awsconfig.LoadOptions) error
	// add credentials if provided
	if s.Config.AccessKey != "" && s.Config.SecretKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(s.Config.AccessKey, s.Config.SecretKey, s.Config.SessionToken)))
	}

	opts = append(opts, awsconfig.WithRegion(typehelpers.SafeString(s.Config.Region)))

	cfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("unable to load SDK config, %w", err)
	}

	return s3.NewFromConfig(cfg), nil
}
