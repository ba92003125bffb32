package bresp

import (
	"fmt"
	"slices"

	"github.com/cockroachdb/errors"
	"github.com/samber/lo"
)

// ErrBodyType is returned by [New] when the initial body is neither a
// string-like value nor a sequence of string-like parts.
var ErrBodyType = errors.New("body must be a string-like value or a sequence of string-like parts")

// resolveBody turns the open body argument into a flat fragment list,
// exactly once at the construction boundary. String-like values become
// a single fragment, sequences become one fragment per element.
func resolveBody(body any) ([]string, error) {
	switch b := body.(type) {
	case nil:
		return nil, nil
	case string:
		return []string{b}, nil
	case []byte:
		return []string{string(b)}, nil
	case fmt.Stringer:
		return []string{b.String()}, nil
	case []string:
		return slices.Clone(b), nil
	case [][]byte:
		return lo.Map(b, func(p []byte, _ int) string { return string(p) }), nil
	case []fmt.Stringer:
		return lo.Map(b, func(s fmt.Stringer, _ int) string { return s.String() }), nil
	case []any:
		parts := make([]string, 0, len(b))
		for i, el := range b {
			part, err := resolvePart(el)
			if err != nil {
				return nil, errors.Wrapf(err, "part %d", i)
			}

			parts = append(parts, part)
		}

		return parts, nil
	default:
		return nil, errors.Wrapf(ErrBodyType, "got %T", body)
	}
}

func resolvePart(el any) (string, error) {
	switch p := el.(type) {
	case string:
		return p, nil
	case []byte:
		return string(p), nil
	case fmt.Stringer:
		return p.String(), nil
	default:
		return "", errors.Wrapf(ErrBodyType, "got %T", el)
	}
}
