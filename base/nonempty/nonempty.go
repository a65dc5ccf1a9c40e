package nonempty

import "errors"

// ErrEmpty is returned when constructing a String from an empty input.
var ErrEmpty = errors.New("string is empty")

// String is a string known to be non-empty.
//
// The zero value is invalid and reports IsZero; always construct one through
// New or MustNew. Whitespace-only strings are accepted, as is any non-empty
// UTF-8 content.
type String struct {
	s string
}

// New validates s and wraps it. Returns ErrEmpty for the empty string.
func New(s string) (String, error) {
	if s == "" {
		return String{}, ErrEmpty
	}

	return String{s: s}, nil
}

// MustNew is New for static inputs; it panics on an empty string.
func MustNew(s string) String {
	ns, err := New(s)
	if err != nil {
		panic("nonempty: " + err.Error())
	}

	return ns
}

// String returns the wrapped value. It implements fmt.Stringer.
func (s String) String() string {
	return s.s
}

// IsZero reports whether s is the invalid zero value.
func (s String) IsZero() bool {
	return s.s == ""
}

// MarshalText implements encoding.TextMarshaler. The zero value cannot be
// marshaled.
func (s String) MarshalText() ([]byte, error) {
	if s.IsZero() {
		return nil, ErrEmpty
	}

	return []byte(s.s), nil
}

// UnmarshalText implements encoding.TextUnmarshaler, rejecting empty input.
func (s *String) UnmarshalText(text []byte) error {
	if len(text) == 0 {
		return ErrEmpty
	}

	s.s = string(text)

	return nil
}
