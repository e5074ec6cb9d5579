package request

import (
	"bytes"
	"reflect"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
)

// Integer decodes from a JSON number or from a string holding a base-10
// integer, so 1988 and "1988" are the same value.
type Integer int64

func (n *Integer) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		return nil
	}

	raw := string(b)
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		raw = strings.TrimSpace(s)
	}

	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return &json.UnmarshalTypeError{
			Value: describeJSON(b),
			Type:  reflect.TypeOf(int64(0)),
		}
	}
	*n = Integer(v)
	return nil
}

// Int32 returns nil for a nil receiver.
func (n *Integer) Int32() *int32 {
	if n == nil {
		return nil
	}
	v := int32(*n)
	return &v
}

func describeJSON(b []byte) string {
	if len(b) == 0 {
		return "empty value"
	}
	switch b[0] {
	case '"':
		return "string " + string(b)
	case '{':
		return "object"
	case '[':
		return "array"
	case 't', 'f':
		return "bool"
	default:
		return "number " + string(b)
	}
}
