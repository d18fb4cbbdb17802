package source

import (
	"context"

	"github.com/medlearn/mimic-subset/config"
)

// ArchiveSource is an interface providing access to the MIMIC-III archive,
// wherever it lives. Sources provided: [FileSystemSource], [AwsS3BucketSource],
// [GcpStorageBucketSource]
type ArchiveSource interface {
	Identifier() string
	// Init parses the source config
	Init(ctx context.Context, configData *config.Data) error
	// Resolve makes the archive available on the local file system and
	// returns its path (downloading it first for object-storage sources)
	Resolve(ctx context.Context) (string, error)
	Close() error
}
