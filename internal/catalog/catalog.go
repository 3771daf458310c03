// Package catalog describes the vulnerability classes found in Rust smart
// contracts: what they are, where they occur, how to find and fix them.
package catalog

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"

	"rscanner/internal/finding"
)

type Kind int

const (
	Reentrancy Kind = iota
	Overflow
	UncheckedInputs
	OracleManipulation
	AccessControl
	DenialOfService
	IllicitFee
	FlashLoan
	LogicError
	RandomManipulation
	SignatureVerification
	AccountConfusion
	FrontRunning
	InadequateEvents
	StorageManagement
	numKinds
)

// Entry is the static description of one vulnerability class.
type Entry struct {
	Kind        Kind
	Name        string
	Description string
	// Platforms are display names, e.g. "Polkadot" or "All DeFi platforms".
	Platforms   []string
	Example     string
	Detection   []string
	Remediation []string
}

// aliases are the short names accepted on the command line, in listing order.
var aliases = []struct {
	alias   string
	kind    Kind
	summary string
}{
	{"reentrancy", Reentrancy, "Reentrancy attacks"},
	{"overflow", Overflow, "Integer overflow/underflow"},
	{"unchecked", UncheckedInputs, "Unchecked inputs"},
	{"oracle", OracleManipulation, "Oracle manipulation"},
	{"access", AccessControl, "Access control issues"},
	{"dos", DenialOfService, "Denial of service"},
	{"fee", IllicitFee, "Illicit fee collection"},
	{"flash", FlashLoan, "Flash loan attacks"},
	{"logic", LogicError, "Logic errors"},
	{"random", RandomManipulation, "Random number manipulation"},
	{"signature", SignatureVerification, "Signature verification bypass"},
	{"account", AccountConfusion, "Account confusion"},
	{"frontrun", FrontRunning, "Front-running"},
	{"events", InadequateEvents, "Inadequate event emissions"},
	{"storage", StorageManagement, "Storage management"},
}

func (k Kind) Valid() bool {
	return k >= 0 && k < numKinds
}

// Alias is the command line name of k.
func (k Kind) Alias() string {
	for _, a := range aliases {
		if a.kind == k {
			return a.alias
		}
	}
	return "unknown"
}

func (k Kind) String() string {
	if !k.Valid() {
		return "unknown"
	}
	return entries[k].Name
}

// Entry returns the catalog data of k.
func (k Kind) Entry() Entry {
	if !k.Valid() {
		return Entry{Kind: k, Name: "unknown"}
	}
	return entries[k]
}

// All returns every entry in declaration order.
func All() []Entry {
	result := make([]Entry, len(entries))
	copy(result, entries[:])
	return result
}

// ParseKind resolves a command line alias, case-insensitively.
func ParseKind(alias string) (Kind, error) {
	name := strings.ToLower(strings.TrimSpace(alias))
	for _, a := range aliases {
		if a.alias == name {
			return a.kind, nil
		}
	}
	return -1, errors.Errorf("unknown vulnerability type: %s", alias)
}

// Affects reports whether the entry applies to contracts on p. Generic
// platform labels such as "All DeFi platforms" apply everywhere.
func (e Entry) Affects(p finding.Platform) bool {
	if p == finding.All {
		return true
	}
	for _, name := range e.Platforms {
		if strings.HasPrefix(name, "All ") {
			return true
		}
		if platformOf(name) == p {
			return true
		}
	}
	return false
}

func platformOf(name string) finding.Platform {
	switch strings.ToLower(name) {
	case "polkadot", "substrate":
		return finding.Substrate
	}
	// -1 never equals a real platform
	p, err := finding.ParsePlatformStrict(name)
	if err != nil {
		return -1
	}
	return p
}

// RenderList is the text of "catalog list".
func RenderList() string {
	var b strings.Builder
	b.WriteString("Available vulnerability types:\n")
	for _, a := range aliases {
		fmt.Fprintf(&b, "  - %s: %s\n", a.alias, a.summary)
	}
	return b.String()
}

// RenderEntry prints one entry. The code example is shown only when detailed.
func RenderEntry(e Entry, detailed bool) string {
	var b strings.Builder
	fmt.Fprintf(&b, "\n%s\n%s\n", e.Name, strings.Repeat("=", len(e.Name)))
	fmt.Fprintf(&b, "\nDescription:\n%s\n", e.Description)

	b.WriteString("\nAffected Platforms:\n")
	for _, p := range e.Platforms {
		fmt.Fprintf(&b, "  - %s\n", p)
	}

	if detailed {
		fmt.Fprintf(&b, "\nExample Vulnerability:\n%s\n", e.Example)
	}

	b.WriteString("\nDetection Methods:\n")
	for _, m := range e.Detection {
		fmt.Fprintf(&b, "  - %s\n", m)
	}

	b.WriteString("\nRemediation Strategies:\n")
	for _, r := range e.Remediation {
		fmt.Fprintf(&b, "  - %s\n", r)
	}
	return b.String()
}

// RenderSummary is the numbered one-paragraph-per-entry overview.
func RenderSummary() string {
	var b strings.Builder
	for i, e := range entries {
		fmt.Fprintf(&b, "%d. %s\n", i+1, e.Name)
		fmt.Fprintf(&b, "   Description: %s\n", e.Description)
		fmt.Fprintf(&b, "   Affected platforms: %s\n\n", strings.Join(e.Platforms, ", "))
	}
	return b.String()
}
