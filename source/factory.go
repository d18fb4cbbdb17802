package source

import (
	"context"
	"fmt"

	"github.com/medlearn/mimic-subset/config"
)

// Factory is a global SourceFactory instance
var Factory = newSourceFactory()

type SourceFactory struct {
	sources map[string]func() ArchiveSource
}

func newSourceFactory() SourceFactory {
	return SourceFactory{
		sources: make(map[string]func() ArchiveSource),
	}
}

func (f *SourceFactory) RegisterSources(sourceFuncs ...func() ArchiveSource) {
	for _, ctor := range sourceFuncs {
		// create an instance of the source to get the identifier
		s := ctor()
		// register the source
		f.sources[s.Identifier()] = ctor
	}
}

// GetSource instantiates and initialises the source for the given config data
func (f *SourceFactory) GetSource(ctx context.Context, configData *config.Data) (ArchiveSource, error) {
	ctor, ok := f.sources[configData.Type]
	if !ok {
		return nil, fmt.Errorf("source not registered: %s", configData.Type)
	}

	s := ctor()
	if err := s.Init(ctx, configData); err != nil {
		return nil, fmt.Errorf("failed to initialise source %s: %w", configData.Type, err)
	}
	return s, nil
}
