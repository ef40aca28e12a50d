package intake

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/alfredjeanlab/intake/internal/model"
)

// Dispatch runs the named operation with JSON-encoded arguments and returns
// its response value. Empty or null args decode to a zero request.
func (s *Service) Dispatch(ctx context.Context, name string, args json.RawMessage) (any, error) {
	switch name {
	case OpLogConsumption:
		var req LogConsumptionRequest
		if err := decodeArgs(name, args, &req); err != nil {
			return nil, err
		}
		resp, err := s.LogConsumption(ctx, &req)
		if err != nil {
			return nil, err
		}
		return resp, nil

	case OpListConsumption:
		var req QueryRequest
		if err := decodeArgs(name, args, &req); err != nil {
			return nil, err
		}
		resp, err := s.ListConsumption(ctx, &req)
		if err != nil {
			return nil, err
		}
		return resp, nil

	case OpSummarizeIntake:
		var req QueryRequest
		if err := decodeArgs(name, args, &req); err != nil {
			return nil, err
		}
		resp, err := s.SummarizeIntake(ctx, &req)
		if err != nil {
			return nil, err
		}
		return resp, nil
	}
	return nil, &UnknownOperationError{Name: name}
}

// decodeArgs unmarshals args into dst. A type mismatch inside "events" is
// reported as an invalid event, so a string amount is rejected the same way
// a missing one is.
func decodeArgs(op string, args json.RawMessage, dst any) error {
	trimmed := bytes.TrimSpace(args)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil
	}
	err := json.Unmarshal(trimmed, dst)
	if err == nil {
		return nil
	}

	var te *json.UnmarshalTypeError
	if errors.As(err, &te) && strings.HasPrefix(te.Field, "events.") {
		field := te.Field[strings.LastIndex(te.Field, ".")+1:]
		return &model.InvalidEventError{
			Index:   -1,
			Field:   field,
			Message: fmt.Sprintf("must be a %s, got %s", jsonKind(te.Type.Kind()), te.Value),
		}
	}
	return &RequestError{Op: op, Err: err}
}

// jsonKind names a Go kind the way a JSON caller would describe it.
func jsonKind(k reflect.Kind) string {
	switch k {
	case reflect.Float32, reflect.Float64, reflect.Int, reflect.Int32, reflect.Int64:
		return "number"
	case reflect.Struct, reflect.Map:
		return "object"
	case reflect.Slice, reflect.Array:
		return "array"
	}
	return k.String()
}
