// Package fab converts KiCad Pcbnew BOM and position exports into the
// column layout expected by the JLCPCB assembly service.
package fab

import (
	"fmt"
	"strings"
)

// Kind identifies which of the two exported tables is being processed.
type Kind int

const (
	// BOM is the bill of materials exported by the KiCad BOM plugin.
	BOM Kind = iota
	// POS is the component placement file ("-all-pos.csv").
	POS
)

// Profile holds the fixed processing rules for a Kind.
type Profile struct {
	Delimiter rune
	// Columns is the ordered set of columns kept from the input.
	Columns []string
	// Renames maps input column names to vendor column names.
	Renames map[string]string
	// FilenameTemplate formats the project name into the default input filename.
	FilenameTemplate string
}

var profiles = map[Kind]Profile{
	BOM: {
		Delimiter: ';',
		Columns:   []string{"Id", "Quantity", "Designator"},
		Renames: map[string]string{
			"Designator": "Footprint",
			"Quantity":   "Comment",
			"Id":         "Designator",
		},
		FilenameTemplate: "%s.csv",
	},
	POS: {
		Delimiter: ',',
		Columns:   []string{"Ref", "PosX", "PosY", "Side", "Rot"},
		Renames: map[string]string{
			"Ref":  "Designator",
			"PosX": "Mid X",
			"PosY": "Mid Y",
			"Side": "Layer",
			"Rot":  "Rotation",
		},
		FilenameTemplate: "%s-all-pos.csv",
	},
}

// Kinds returns all kinds in processing order.
func Kinds() []Kind {
	return []Kind{BOM, POS}
}

// ParseKind parses a kind name case-insensitively.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "bom":
		return BOM, nil
	case "pos", "position":
		return POS, nil
	default:
		return 0, fmt.Errorf("unknown file kind %q (use 'bom' or 'pos')", s)
	}
}

// String returns the label used in status messages.
func (k Kind) String() string {
	switch k {
	case BOM:
		return "BOM"
	case POS:
		return "pos"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Description returns a human-readable name for the kind.
func (k Kind) Description() string {
	switch k {
	case BOM:
		return "Bill of materials"
	case POS:
		return "Component positions"
	default:
		return k.String()
	}
}

// Profile returns the fixed processing rules for k.
func (k Kind) Profile() Profile {
	return profiles[k]
}

// OutputColumns returns the vendor column names in output order.
func (p Profile) OutputColumns() []string {
	out := make([]string, len(p.Columns))
	for i, c := range p.Columns {
		if renamed, ok := p.Renames[c]; ok {
			out[i] = renamed
		} else {
			out[i] = c
		}
	}
	return out
}

// DefaultFilename formats project into the kind's default input filename.
func (p Profile) DefaultFilename(project string) string {
	return fmt.Sprintf(p.FilenameTemplate, project)
}

// MarshalText encodes the kind by its lower-case name.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(strings.ToLower(k.String())), nil
}

// UnmarshalText decodes a kind name accepted by ParseKind.
func (k *Kind) UnmarshalText(text []byte) error {
	parsed, err := ParseKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}
