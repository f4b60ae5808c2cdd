package repository

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/careercode/jobportal/ecode"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// decodeObject reads a JSON object keeping numbers exact. Top-level names
// starting with "$" are operators to the store and are rejected.
func decodeObject(data []byte) (map[string]any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var raw map[string]any
	if err := dec.Decode(&raw); err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, fmt.Errorf("expected a JSON object")
	}
	var fields map[string]string
	for k := range raw {
		if strings.HasPrefix(k, "$") {
			if fields == nil {
				fields = map[string]string{}
			}
			fields[k] = ecode.FieldIsInvalid("field name " + k)
		}
	}
	if fields != nil {
		return nil, ecode.BadRequest("field names must not start with $").WithFields(fields)
	}
	return raw, nil
}

// toBSONValue converts decoded JSON into values the BSON encoder stores natively.
func toBSONValue(v any) any {
	switch t := v.(type) {
	case json.Number:
		if i, err := t.Int64(); err == nil {
			return i
		}
		if f, err := t.Float64(); err == nil {
			return f
		}
		return t.String()
	case map[string]any:
		out := bson.M{}
		for k, item := range t {
			out[k] = toBSONValue(item)
		}
		return out
	case []any:
		out := make(bson.A, len(t))
		for i, item := range t {
			out[i] = toBSONValue(item)
		}
		return out
	default:
		return v
	}
}

// toJSONValue converts stored BSON values into plain JSON shapes.
func toJSONValue(v any) any {
	switch t := v.(type) {
	case primitive.D:
		out := make(map[string]any, len(t))
		for _, e := range t {
			out[e.Key] = toJSONValue(e.Value)
		}
		return out
	case bson.M:
		out := make(map[string]any, len(t))
		for k, item := range t {
			out[k] = toJSONValue(item)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, item := range t {
			out[k] = toJSONValue(item)
		}
		return out
	case primitive.A:
		out := make([]any, len(t))
		for i, item := range t {
			out[i] = toJSONValue(item)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, item := range t {
			out[i] = toJSONValue(item)
		}
		return out
	case primitive.ObjectID:
		return t.Hex()
	case primitive.DateTime:
		return t.Time().UTC().Format(time.RFC3339Nano)
	case primitive.Decimal128:
		return t.String()
	default:
		return v
	}
}

// takeString removes key from raw and returns it when it is a string.
func takeString(raw map[string]any, key string) (string, error) {
	v, ok := raw[key]
	if !ok || v == nil {
		delete(raw, key)
		return "", nil
	}
	delete(raw, key)
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("field %q must be a string", key)
	}
	return s, nil
}

// extras converts the remaining JSON fields for storage; nil when empty.
func extras(raw map[string]any) bson.M {
	if len(raw) == 0 {
		return nil
	}
	out := make(bson.M, len(raw))
	for k, v := range raw {
		out[k] = toBSONValue(v)
	}
	return out
}

// flatten merges extra fields under the known ones.
func flatten(extra bson.M, known map[string]any) map[string]any {
	out := make(map[string]any, len(extra)+len(known))
	for k, v := range extra {
		out[k] = toJSONValue(v)
	}
	for k, v := range known {
		out[k] = v
	}
	return out
}
