package observable

import (
	"context"

	"github.com/medlearn/mimic-subset/events"
)

type Observer interface {
	Notify(ctx context.Context, event events.Event) error
}

type Observable interface {
	AddObserver(Observer) error
}
