package payload

import "encoding/json"

// Field is a request value that remembers whether its key was present in the JSON body
// and whether it carried a null. The zero value is an absent key.
type Field[T any] struct {
	set   bool
	valid bool
	value T
}

// Set returns a present, non-null field.
func Set[T any](v T) Field[T] {
	return Field[T]{set: true, valid: true, value: v}
}

// Null returns a present field holding JSON null.
func Null[T any]() Field[T] {
	return Field[T]{set: true}
}

// IsSet reports whether the key was present, null or not.
func (f Field[T]) IsSet() bool { return f.set }

// IsNull reports whether the key was present with a null value.
func (f Field[T]) IsNull() bool { return f.set && !f.valid }

// IsZero makes absent fields disappear under the `omitzero` json option.
func (f Field[T]) IsZero() bool { return !f.set }

// Value returns the carried value and whether it is non-null.
func (f Field[T]) Value() (T, bool) { return f.value, f.valid }

// Ptr returns a pointer to a copy of the value, or nil when absent or null.
func (f Field[T]) Ptr() *T {
	if !f.valid {
		return nil
	}
	v := f.value
	return &v
}

// ApplyTo overwrites *dst when the field is present with a non-null value.
func (f Field[T]) ApplyTo(dst *T) {
	if f.valid {
		*dst = f.value
	}
}

// ApplyToPtr overwrites a nullable destination when the field is present; null clears it.
func (f Field[T]) ApplyToPtr(dst **T) {
	if f.set {
		*dst = f.Ptr()
	}
}

func (f *Field[T]) UnmarshalJSON(data []byte) error {
	f.set = true
	if string(data) == "null" {
		var zero T
		f.valid, f.value = false, zero
		return nil
	}
	if err := json.Unmarshal(data, &f.value); err != nil {
		return err
	}
	f.valid = true
	return nil
}

func (f Field[T]) MarshalJSON() ([]byte, error) {
	if !f.valid {
		return []byte("null"), nil
	}
	return json.Marshal(f.value)
}
