package orm

import "github.com/gogo/protobuf/proto"

// Model is implemented by any entity that can be stored using ModelBucket.
type Model interface {
	proto.Message
	// Validate returns an error if the model is not in a valid state to be
	// persisted.
	Validate() error
}
