// Package password provides argon2id credential hashing for identity
// directory implementations. Credentials are stored only as PHC-formatted
// hash strings; the storefront core never sees or compares a plaintext
// password itself.
package password

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"golang.org/x/crypto/argon2"
)

const algorithmID = "argon2id"

// ErrMalformedHash reports a stored hash that is not a valid argon2id PHC
// string. Verification against such a hash always fails closed.
var ErrMalformedHash = errors.New("password: malformed hash")

// Params tunes the argon2id cost. Zero values are replaced by
// [DefaultParams] in [NewHasher].
type Params struct {
	MemoryKB    uint32
	Time        uint32
	Parallelism uint8
	SaltLength  uint32
	KeyLength   uint32
}

// DefaultParams trades ~50ms of hashing for interactive registration flows.
func DefaultParams() Params {
	return Params{
		MemoryKB:    64 * 1024,
		Time:        1,
		Parallelism: 2,
		SaltLength:  16,
		KeyLength:   32,
	}
}

// Hasher hashes and verifies passwords with argon2id.
type Hasher struct {
	params Params
}

// NewHasher validates the params (zero fields take defaults) and returns a
// ready Hasher.
func NewHasher(p Params) (*Hasher, error) {
	def := DefaultParams()
	if p.MemoryKB == 0 {
		p.MemoryKB = def.MemoryKB
	}
	if p.Time == 0 {
		p.Time = def.Time
	}
	if p.Parallelism == 0 {
		p.Parallelism = def.Parallelism
	}
	if p.SaltLength == 0 {
		p.SaltLength = def.SaltLength
	}
	if p.KeyLength == 0 {
		p.KeyLength = def.KeyLength
	}

	if p.MemoryKB < 8*1024 {
		return nil, errors.New("password: memory must be >= 8192 KB")
	}
	if p.SaltLength < 16 {
		return nil, errors.New("password: salt length must be >= 16")
	}
	if p.KeyLength < 16 {
		return nil, errors.New("password: key length must be >= 16")
	}

	return &Hasher{params: p}, nil
}

// Hash derives an argon2id hash with a fresh random salt and encodes it as
// a PHC string.
func (h *Hasher) Hash(password string) (string, error) {
	salt := make([]byte, h.params.SaltLength)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return "", err
	}

	key := argon2.IDKey(
		[]byte(password),
		salt,
		h.params.Time,
		h.params.MemoryKB,
		h.params.Parallelism,
		h.params.KeyLength,
	)

	return fmt.Sprintf(
		"$%s$v=%d$m=%d,t=%d,p=%d$%s$%s",
		algorithmID,
		argon2.Version,
		h.params.MemoryKB,
		h.params.Time,
		h.params.Parallelism,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key),
	), nil
}

// Verify reports whether password matches the PHC-encoded hash. The
// comparison is constant time over the derived keys.
func (h *Hasher) Verify(password, encoded string) (bool, error) {
	memory, time, parallelism, salt, key, err := parsePHC(encoded)
	if err != nil {
		return false, err
	}

	computed := argon2.IDKey(
		[]byte(password),
		salt,
		time,
		memory,
		parallelism,
		uint32(len(key)),
	)
	return subtle.ConstantTimeCompare(computed, key) == 1, nil
}

func parsePHC(encoded string) (memory, time uint32, parallelism uint8, salt, key []byte, err error) {
	parts := strings.Split(encoded, "$")
	if len(parts) != 6 || parts[0] != "" || parts[1] != algorithmID {
		return 0, 0, 0, nil, nil, ErrMalformedHash
	}

	version, convErr := strconv.Atoi(strings.TrimPrefix(parts[2], "v="))
	if !strings.HasPrefix(parts[2], "v=") || convErr != nil || version != argon2.Version {
		return 0, 0, 0, nil, nil, ErrMalformedHash
	}

	for _, field := range strings.Split(parts[3], ",") {
		k, v, ok := strings.Cut(field, "=")
		if !ok {
			return 0, 0, 0, nil, nil, ErrMalformedHash
		}
		n, convErr := strconv.ParseUint(v, 10, 32)
		if convErr != nil {
			return 0, 0, 0, nil, nil, ErrMalformedHash
		}
		switch k {
		case "m":
			memory = uint32(n)
		case "t":
			time = uint32(n)
		case "p":
			if n > 255 {
				return 0, 0, 0, nil, nil, ErrMalformedHash
			}
			parallelism = uint8(n)
		default:
			return 0, 0, 0, nil, nil, ErrMalformedHash
		}
	}
	if memory == 0 || time == 0 || parallelism == 0 {
		return 0, 0, 0, nil, nil, ErrMalformedHash
	}

	salt, err = base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil || len(salt) == 0 {
		return 0, 0, 0, nil, nil, ErrMalformedHash
	}
	key, err = base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil || len(key) == 0 {
		return 0, 0, 0, nil, nil, ErrMalformedHash
	}
	return memory, time, parallelism, salt, key, nil
}
