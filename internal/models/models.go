package models

// Value is a generic type to represent any JSON value.
// Scalars are nil, bool, json.Number, or string; composites are Object
// and Array.
type Value interface{}

// Member is a single key-value pair within an Object.
type Member struct {
	Key   string
	Value Value
}

// Object represents a JSON object as an ordered sequence of members.
// A slice of pairs rather than a map, so that key order survives a
// parse/serialize round trip.
type Object []Member

// Array represents a JSON array, which is a slice of Values.
type Array []Value

// Get returns the value stored under key and whether it was present.
// Keys are unique within a well-formed object, so the first match wins.
func (o Object) Get(key string) (Value, bool) {
	for _, m := range o {
		if m.Key == key {
			return m.Value, true
		}
	}
	return nil, false
}
