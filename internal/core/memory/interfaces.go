package memory

import "encoding/json"

// Object is a hierarchical string-keyed store. Scalars are strings, ints,
// bools and floats; nested values are Objects sharing the root's lock.
//
// Absent keys are never an error: TryGet* reports ok=false and Get* returns
// the zero value.
type Object interface {
	Keys() []string
	Len() int
	Has(key string) bool

	TryGetString(key string) (string, bool)
	TryGetInt(key string) (int, bool)
	TryGetBool(key string) (bool, bool)
	TryGetFloat(key string) (float64, bool)
	TryGetObject(key string) (Object, bool)

	GetString(key string) string
	GetInt(key string) int
	GetBool(key string) bool

	// GetOrCreateObject returns the nested object at key, replacing any scalar there.
	GetOrCreateObject(key string) Object

	SetString(key, value string)
	SetInt(key string, value int)
	SetBool(key string, value bool)
	SetFloat(key string, value float64)

	Delete(key string)
	Clear()

	json.Marshaler
	json.Unmarshaler
}
