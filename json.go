package reactivity

import (
	"errors"

	jsoniter "github.com/json-iterator/go"

	"github.com/AnatoleLucet/reactivity/internal"
)

// jsonAPI keeps output byte-identical with encoding/json, so serializing a
// reactive structure equals serializing the plain one.
var jsonAPI = jsoniter.ConfigCompatibleWithStandardLibrary

// Marshal serializes v, seeing through refs and reactive proxies: every
// observable marshals as the plain value it wraps.
func Marshal(v any) ([]byte, error) {
	return jsonAPI.Marshal(v)
}

// MarshalIndent is Marshal with indentation.
func MarshalIndent(v any, prefix, indent string) ([]byte, error) {
	return jsonAPI.MarshalIndent(v, prefix, indent)
}

// Unmarshal parses data into v.
func Unmarshal(data []byte, v any) error {
	return jsonAPI.Unmarshal(data, v)
}

// Fallback wraps a serializer's not-natively-serializable hook so refs never
// reach it: a ref is answered with its deep-unref'd value without calling
// the user's fallback, and every other value is handed to the user's
// fallback unchanged. Pass the result wherever a serializer accepts a
// default callback.
func Fallback(fn func(any) (any, error)) func(any) (any, error) {
	return func(v any) (any, error) {
		if internal.IsRef(v) {
			return internal.DeepUnref(v), nil
		}
		if fn == nil {
			return nil, ErrNotSerializable
		}
		return fn(v)
	}
}

// ErrNotSerializable is returned by Fallback when no user fallback exists
// and the value is not a ref.
var ErrNotSerializable = errors.New("value is not JSON serializable")
