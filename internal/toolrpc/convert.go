package toolrpc

import (
	"encoding/json"
	"fmt"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"
)

// Field names of a CallTool request.
const (
	FieldName      = "name"
	FieldArguments = "arguments"
)

// NewCallRequest builds a CallTool request from an operation name and its
// JSON-encoded arguments. Empty args send no arguments field.
func NewCallRequest(name string, args json.RawMessage) (*structpb.Struct, error) {
	req := &structpb.Struct{Fields: map[string]*structpb.Value{
		FieldName: structpb.NewStringValue(name),
	}}
	if len(args) == 0 {
		return req, nil
	}
	argStruct, err := StructFromJSON(args)
	if err != nil {
		return nil, fmt.Errorf("encode arguments: %w", err)
	}
	req.Fields[FieldArguments] = structpb.NewStructValue(argStruct)
	return req, nil
}

// ParseCallRequest splits a CallTool request into the operation name and its
// JSON-encoded arguments. A missing arguments field yields nil args.
func ParseCallRequest(req *structpb.Struct) (string, json.RawMessage, error) {
	name := req.GetFields()[FieldName].GetStringValue()
	argVal, ok := req.GetFields()[FieldArguments]
	if !ok {
		return name, nil, nil
	}
	if _, isNull := argVal.GetKind().(*structpb.Value_NullValue); isNull {
		return name, nil, nil
	}
	argStruct := argVal.GetStructValue()
	if argStruct == nil {
		return name, nil, fmt.Errorf("%s must be an object", FieldArguments)
	}
	args, err := protojson.Marshal(argStruct)
	if err != nil {
		return name, nil, fmt.Errorf("decode arguments: %w", err)
	}
	return name, args, nil
}

// StructFromJSON decodes a JSON object into a Struct.
func StructFromJSON(data []byte) (*structpb.Struct, error) {
	s := &structpb.Struct{}
	if err := protojson.Unmarshal(data, s); err != nil {
		return nil, err
	}
	return s, nil
}

// StructFromValue marshals v as JSON and decodes the result into a Struct.
// v must encode to a JSON object.
func StructFromValue(v any) (*structpb.Struct, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return StructFromJSON(data)
}

// DecodeStruct re-encodes s as JSON and unmarshals it into dst.
func DecodeStruct(s *structpb.Struct, dst any) error {
	if s == nil {
		s = &structpb.Struct{}
	}
	data, err := protojson.Marshal(s)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, dst)
}
