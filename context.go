package carrierdelay

import (
	"github.com/ab180/carrierdelay/transformation"
)

type Context interface {
	transformation.Context
}

type partitionKeyContext struct {
	Context
	partitionKey string
}

func replacePartitionKey(old Context, key string) (new Context) {
	return &partitionKeyContext{
		Context:      old,
		partitionKey: key,
	}
}

// PartitionKey returns the key of the rows being reduced.
func (pc partitionKeyContext) PartitionKey() string {
	return pc.partitionKey
}

// PartitionKeyOf returns the key being reduced if the context is given to a Reducer.
func PartitionKeyOf(c Context) (key string, ok bool) {
	pc, ok := c.(interface{ PartitionKey() string })
	if !ok {
		return "", false
	}
	return pc.PartitionKey(), true
}
