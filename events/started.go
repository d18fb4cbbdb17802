package events

// Started is sent once at the beginning of a subset run
type Started struct {
	Base
	ArchivePath string
	SampleSize  int
}

func NewStartedEvent(archivePath string, sampleSize int) *Started {
	return &Started{
		ArchivePath: archivePath,
		SampleSize:  sampleSize,
	}
}
