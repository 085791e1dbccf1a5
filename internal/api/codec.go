package api

import (
	"encoding/json"
	"fmt"

	"google.golang.org/grpc/encoding"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"
)

// CodecName is the gRPC content subtype used by every call.
const CodecName = "structpb"

// structCodec puts messages on the wire as protobuf-encoded
// google.protobuf.Struct values. Message structs keep their json tags as
// field names, so any protobuf client can read the payload with the
// well-known Struct type.
//
// Struct numbers are doubles: integers are exact up to 2^53, which covers
// counters and millisecond timestamps.
type structCodec struct{}

func (structCodec) Marshal(v any) ([]byte, error) {
	if m, ok := v.(proto.Message); ok {
		return proto.Marshal(m)
	}
	s, err := toStruct(v)
	if err != nil {
		return nil, err
	}
	return proto.Marshal(s)
}

func (structCodec) Unmarshal(data []byte, v any) error {
	if m, ok := v.(proto.Message); ok {
		return proto.Unmarshal(data, m)
	}
	var s structpb.Struct
	if err := proto.Unmarshal(data, &s); err != nil {
		return err
	}
	return fromStruct(&s, v)
}

func (structCodec) Name() string {
	return CodecName
}

func toStruct(v any) (*structpb.Struct, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var fields map[string]any
	if err := json.Unmarshal(b, &fields); err != nil {
		return nil, fmt.Errorf("message %T is not an object: %w", v, err)
	}
	return structpb.NewStruct(fields)
}

func fromStruct(s *structpb.Struct, v any) error {
	b, err := json.Marshal(s.AsMap())
	if err != nil {
		return err
	}
	return json.Unmarshal(b, v)
}

func init() {
	encoding.RegisterCodec(structCodec{})
}
