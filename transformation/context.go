package transformation

import (
	"context"
)

// Context is given to a transformation while it runs a partition of a stage.
type Context interface {
	context.Context

	Broadcast(key string) interface{}
	PartitionID() string

	AddMetric(name string, delta int)
	SetMetric(name string, val int)
}
