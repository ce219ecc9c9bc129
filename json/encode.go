// Package json encodes the flat, string-valued objects the echo endpoints
// return. Strings are escaped HTML-safe, so '<', '>', '&', '=' and '\''
// appear as \u00XX escapes.
package json

import (
	"slices"
	"unicode/utf8"
)

const hexDigits = "0123456789abcdef"

type Member struct {
	Name  string
	Value string
}

// MarshalObject encodes members in the given order.
func MarshalObject(members []Member) []byte {
	return AppendObject(make([]byte, 0, 64), members)
}

// MarshalMap encodes m with its keys in sorted order.
func MarshalMap(m map[string]string) []byte {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	slices.Sort(keys)

	members := make([]Member, len(keys))
	for i, key := range keys {
		members[i] = Member{Name: key, Value: m[key]}
	}

	return MarshalObject(members)
}

func AppendObject(dst []byte, members []Member) []byte {
	dst = append(dst, '{')
	for i, member := range members {
		if i > 0 {
			dst = append(dst, ',')
		}
		dst = AppendString(dst, member.Name)
		dst = append(dst, ':')
		dst = AppendString(dst, member.Value)
	}
	return append(dst, '}')
}

// AppendString appends s as a quoted JSON string. Invalid UTF-8 is replaced
// by U+FFFD.
func AppendString(dst []byte, s string) []byte {
	dst = append(dst, '"')

	start := 0
	for i := 0; i < len(s); {
		b := s[i]

		if b < utf8.RuneSelf {
			if !needsEscape(b) {
				i++
				continue
			}

			dst = append(dst, s[start:i]...)
			switch b {
			case '"':
				dst = append(dst, `\"`...)
			case '\\':
				dst = append(dst, `\\`...)
			case '\b':
				dst = append(dst, `\b`...)
			case '\f':
				dst = append(dst, `\f`...)
			case '\n':
				dst = append(dst, `\n`...)
			case '\r':
				dst = append(dst, `\r`...)
			case '\t':
				dst = append(dst, `\t`...)
			default:
				dst = append(dst, '\\', 'u', '0', '0', hexDigits[b>>4], hexDigits[b&0xF])
			}
			i++
			start = i
			continue
		}

		r, size := utf8.DecodeRuneInString(s[i:])
		if r == utf8.RuneError && size == 1 {
			dst = append(dst, s[start:i]...)
			dst = append(dst, `\ufffd`...)
			i += size
			start = i
			continue
		}

		// U+2028 and U+2029 break JavaScript string literals.
		if r == '\u2028' || r == '\u2029' {
			dst = append(dst, s[start:i]...)
			dst = append(dst, '\\', 'u', '2', '0', '2', hexDigits[r&0xF])
			i += size
			start = i
			continue
		}

		i += size
	}

	dst = append(dst, s[start:]...)
	return append(dst, '"')
}

func needsEscape(b byte) bool {
	switch b {
	case '"', '\\', '<', '>', '&', '=', '\'':
		return true
	}
	return b < 0x20
}
