package utils

import (
	"bytes"
	"encoding/json"
)

// Field is one key/value pair of a Fields object.
type Field[T any] struct {
	Key   string
	Value T
}

// Fields marshals as a JSON object whose keys keep their insertion order.
type Fields[T any] []Field[T]

// Set replaces the value of an existing key in place or appends it.
func (f *Fields[T]) Set(key string, value T) {
	for i := range *f {
		if (*f)[i].Key == key {
			(*f)[i].Value = value
			return
		}
	}
	*f = append(*f, Field[T]{Key: key, Value: value})
}

func (f Fields[T]) Get(key string) (T, bool) {
	for _, kv := range f {
		if kv.Key == key {
			return kv.Value, true
		}
	}
	var zero T
	return zero, false
}

func (f Fields[T]) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, kv := range f {
		if i > 0 {
			buf.WriteByte(',')
		}

		keyBytes, err := json.Marshal(kv.Key)
		if err != nil {
			return nil, err
		}
		buf.Write(keyBytes)
		buf.WriteByte(':')

		valueBytes, err := json.Marshal(kv.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(valueBytes)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
