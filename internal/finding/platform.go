package finding

import (
	"strings"

	"github.com/pkg/errors"
)

// Platform is the blockchain runtime a pattern or vulnerability targets.
type Platform int

const (
	All Platform = iota
	Solana
	Near
	CosmWasm
	Substrate
)

// Platforms lists every platform, All first.
var Platforms = []Platform{All, Solana, Near, CosmWasm, Substrate}

var platformNames = map[Platform]string{
	All:       "all",
	Solana:    "solana",
	Near:      "near",
	CosmWasm:  "cosmwasm",
	Substrate: "substrate",
}

func (p Platform) String() string {
	if name, ok := platformNames[p]; ok {
		return name
	}
	return "unknown"
}

// Title is the display name used in reports and checklists.
func (p Platform) Title() string {
	switch p {
	case Solana:
		return "Solana"
	case Near:
		return "NEAR"
	case CosmWasm:
		return "CosmWasm"
	case Substrate:
		return "Substrate"
	default:
		return "All"
	}
}

// ParsePlatform maps a case-insensitive token to a Platform.
// Unknown tokens map to All, which disables platform filtering.
func ParsePlatform(s string) Platform {
	p, err := ParsePlatformStrict(s)
	if err != nil {
		return All
	}
	return p
}

// ParsePlatformStrict is ParsePlatform without the fallback to All.
func ParsePlatformStrict(s string) (Platform, error) {
	token := strings.ToLower(strings.TrimSpace(s))
	for p, name := range platformNames {
		if name == token {
			return p, nil
		}
	}
	return All, errors.Errorf("unknown platform %q (want solana|near|cosmwasm|substrate|all)", s)
}

func (p Platform) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

func (p *Platform) UnmarshalText(text []byte) error {
	parsed, err := ParsePlatformStrict(string(text))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}
