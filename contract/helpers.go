package contract

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// ToJSON marshals v or reports which object failed.
func ToJSON[T any](v T, objectType string) (string, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", errors.Wrapf(err, "marshal %s", objectType)
	}
	return string(b), nil
}

func UInt64ToString(val uint64) string {
	return strconv.FormatUint(val, 10)
}

func parseU64(s, field string) (uint64, error) {
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, errors.Wrapf(ErrInvalidArgs, "%s: %q is not an unsigned integer", field, s)
	}
	return v, nil
}

// nextField cuts the next '|' separated field off the payload.
func nextField(s *string) string {
	i := strings.IndexByte(*s, '|')
	if i < 0 {
		f := *s
		*s = ""
		return f
	}
	f := (*s)[:i]
	*s = (*s)[i+1:]
	return f
}

func boolString(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
