// Package domain provides type-safe identifiers to prevent mixing up IDs at compile time.
package domain

import (
	"encoding/hex"
	"strconv"
	"strings"

	"golang.org/x/crypto/sha3"

	dErrors "credipet/pkg/domain-errors"
)

// PrincipalLength is the byte length of an account address.
const PrincipalLength = 20

// Principal is an account address capable of initiating a call.
// The zero value is the null address and never identifies a real caller.
type Principal [PrincipalLength]byte

// BadgeID identifies a minted badge. Zero means "no badge".
type BadgeID uint64

// ZeroPrincipal is the null address.
var ZeroPrincipal Principal

// ParsePrincipal parses a 0x-prefixed, 40 hex digit address.
// All-lowercase and all-uppercase inputs are accepted as-is; mixed case
// must carry a valid EIP-55 checksum.
func ParsePrincipal(s string) (Principal, error) {
	var p Principal
	raw, ok := strings.CutPrefix(strings.TrimSpace(s), "0x")
	if !ok {
		raw, ok = strings.CutPrefix(strings.TrimSpace(s), "0X")
	}
	if !ok || len(raw) != 2*PrincipalLength {
		return p, dErrors.New(dErrors.CodeInvalidInput, "address must be 0x followed by 40 hex characters")
	}
	if _, err := hex.Decode(p[:], []byte(raw)); err != nil {
		return ZeroPrincipal, dErrors.New(dErrors.CodeInvalidInput, "address contains non-hex characters")
	}
	if isMixedCase(raw) && p.checksumHex() != raw {
		return ZeroPrincipal, dErrors.New(dErrors.CodeInvalidInput, "address checksum mismatch")
	}
	return p, nil
}

// MustParsePrincipal is ParsePrincipal for constants and tests.
func MustParsePrincipal(s string) Principal {
	p, err := ParsePrincipal(s)
	if err != nil {
		panic(err)
	}
	return p
}

// DerivePrincipal maps a label onto an address by taking the low 20 bytes
// of its keccak-256 digest. Used for service identities that never sign.
func DerivePrincipal(label string) Principal {
	h := sha3.NewLegacyKeccak256()
	_, _ = h.Write([]byte(label))
	sum := h.Sum(nil)
	var p Principal
	copy(p[:], sum[len(sum)-PrincipalLength:])
	return p
}

// PrincipalFromBytes converts a stored byte slice back into a Principal.
func PrincipalFromBytes(b []byte) (Principal, error) {
	var p Principal
	if len(b) != PrincipalLength {
		return p, dErrors.New(dErrors.CodeInvalidInput, "address must be 20 bytes")
	}
	copy(p[:], b)
	return p, nil
}

// IsZero reports whether p is the null address.
func (p Principal) IsZero() bool { return p == ZeroPrincipal }

// Bytes returns a copy of the raw address bytes.
func (p Principal) Bytes() []byte {
	b := make([]byte, PrincipalLength)
	copy(b, p[:])
	return b
}

// Hex returns the EIP-55 checksummed, 0x-prefixed form.
func (p Principal) Hex() string { return "0x" + p.checksumHex() }

func (p Principal) String() string { return p.Hex() }

// MarshalText implements encoding.TextMarshaler so principals serialize as hex in JSON.
func (p Principal) MarshalText() ([]byte, error) {
	return []byte(p.Hex()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *Principal) UnmarshalText(text []byte) error {
	parsed, err := ParsePrincipal(string(text))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

func (p Principal) checksumHex() string {
	lower := hex.EncodeToString(p[:])
	h := sha3.NewLegacyKeccak256()
	_, _ = h.Write([]byte(lower))
	digest := h.Sum(nil)

	out := []byte(lower)
	for i, c := range out {
		if c < 'a' || c > 'f' {
			continue
		}
		nibble := digest[i/2]
		if i%2 == 0 {
			nibble >>= 4
		}
		if nibble&0x0f >= 8 {
			out[i] = c - 'a' + 'A'
		}
	}
	return string(out)
}

func isMixedCase(s string) bool {
	return strings.ToLower(s) != s && strings.ToUpper(s) != s
}

// ParseBadgeID parses a positive decimal badge id.
func ParseBadgeID(s string) (BadgeID, error) {
	v, err := strconv.ParseUint(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, dErrors.New(dErrors.CodeInvalidInput, "badge id must be a positive integer")
	}
	return BadgeID(v), nil
}

func (id BadgeID) String() string { return strconv.FormatUint(uint64(id), 10) }

// IsNil reports whether id is the "no badge" value.
func (id BadgeID) IsNil() bool { return id == 0 }
