// Package api defines the tripsplit.v1 Connect services: message types,
// procedure names, handler constructors and clients.
//
// Messages are plain Go structs carried as JSON, so the package registers its
// own codec under the "json" name in place of Connect's protobuf JSON codec.
package api

import (
	"connectrpc.com/connect"
	"github.com/goccy/go-json"
)

// Codec marshals messages with goccy/go-json.
type Codec struct{}

var _ connect.Codec = Codec{}

// Name returns "json", so Connect serves application/json requests with it.
func (Codec) Name() string { return "json" }

func (Codec) Marshal(message any) ([]byte, error) {
	return json.Marshal(message)
}

// Unmarshal treats an empty payload as an empty message.
func (Codec) Unmarshal(data []byte, message any) error {
	if len(data) == 0 {
		return nil
	}
	return json.Unmarshal(data, message)
}

func handlerOptions(opts []connect.HandlerOption) []connect.HandlerOption {
	return append([]connect.HandlerOption{connect.WithCodec(Codec{})}, opts...)
}

func clientOptions(opts []connect.ClientOption) []connect.ClientOption {
	return append(opts, connect.WithCodec(Codec{}))
}
