package coil

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/matzehuels/coilpos/pkg/errors"
)

// Kind distinguishes the families of named objects in a magnet system.
type Kind uint8

const (
	// KindPF is a poloidal-field coil, positioned on a track or in a region.
	KindPF Kind = iota
	// KindCS is a central-solenoid module, one segment of the stacked solenoid.
	KindCS
	// KindRegion is a positioning region bound to a PF coil of the same index.
	KindRegion
)

// String returns the key prefix for the kind ("PF", "CS" or "R").
func (k Kind) String() string {
	switch k {
	case KindPF:
		return "PF"
	case KindCS:
		return "CS"
	case KindRegion:
		return "R"
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// Key identifies a coil or region by kind and 1-based index. It replaces
// string-pattern matching of "PF_n"/"CS_n"/"R_n" names with a value that is
// validated once at the parse boundary.
type Key struct {
	Kind  Kind
	Index int
}

// String renders the canonical name, e.g. "PF_3".
func (k Key) String() string {
	return fmt.Sprintf("%s_%d", k.Kind, k.Index)
}

// ParseKey parses a canonical name of the form "PF_<n>", "CS_<n>" or
// "R_<n>" with a positive index. Any other form yields a CodeBadKey error.
func ParseKey(s string) (Key, error) {
	prefix, num, ok := strings.Cut(s, "_")
	if !ok {
		return Key{}, errors.New(errors.CodeBadKey, "key %q is not of the form <kind>_<index>", s)
	}
	var kind Kind
	switch prefix {
	case "PF":
		kind = KindPF
	case "CS":
		kind = KindCS
	case "R":
		kind = KindRegion
	default:
		return Key{}, errors.New(errors.CodeBadKey, "key %q has unknown kind %q", s, prefix)
	}
	idx, err := strconv.Atoi(num)
	if err != nil || idx < 1 {
		return Key{}, errors.New(errors.CodeBadKey, "key %q has invalid index %q", s, num)
	}
	return Key{Kind: kind, Index: idx}, nil
}

// AsRegion returns the region key with the same index ("PF_3" → "R_3").
func (k Key) AsRegion() Key {
	return Key{Kind: KindRegion, Index: k.Index}
}

// AsCoil returns the PF coil key with the same index ("R_3" → "PF_3").
func (k Key) AsCoil() Key {
	return Key{Kind: KindPF, Index: k.Index}
}
