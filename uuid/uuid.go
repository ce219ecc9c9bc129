package uuid

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"strings"
)

var ErrInvalidFormat = errors.New("uuid: invalid format")

// UUID identifies a single connection in logs and traces.
type UUID [16]byte

func NewV4() UUID {
	var uuid UUID

	// crypto/rand.Read never returns an error since Go 1.24.
	rand.Read(uuid[:])

	uuid[6] = (uuid[6] & 0x0f) | 0x40 // Version 4
	uuid[8] = (uuid[8] & 0x3f) | 0x80 // Variant is 10

	return uuid
}

func Parse(s string) (UUID, error) {
	var uuid UUID

	s = strings.TrimPrefix(strings.ToLower(s), "urn:uuid:")
	if len(s) != 36 || s[8] != '-' || s[13] != '-' || s[18] != '-' || s[23] != '-' {
		return uuid, ErrInvalidFormat
	}

	compact := s[0:8] + s[9:13] + s[14:18] + s[19:23] + s[24:]
	if _, err := hex.Decode(uuid[:], []byte(compact)); err != nil {
		return uuid, ErrInvalidFormat
	}

	return uuid, nil
}

func (uuid UUID) Version() int {
	return int(uuid[6] >> 4)
}

func (uuid UUID) String() string {
	var buf [36]byte

	hex.Encode(buf[0:8], uuid[0:4])
	buf[8] = '-'
	hex.Encode(buf[9:13], uuid[4:6])
	buf[13] = '-'
	hex.Encode(buf[14:18], uuid[6:8])
	buf[18] = '-'
	hex.Encode(buf[19:23], uuid[8:10])
	buf[23] = '-'
	hex.Encode(buf[24:], uuid[10:])

	return string(buf[:])
}
