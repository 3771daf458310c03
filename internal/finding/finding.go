package finding

import (
	"fmt"
	"strconv"

	"rscanner/internal/util"
)

// Finding is one pattern match on one line of one file.
type Finding struct {
	Vulnerability string   `json:"vulnerability"`
	File          string   `json:"file"`
	Line          int      `json:"line"`
	Code          string   `json:"code"`
	Description   string   `json:"description"`
	Severity      Severity `json:"severity"`
}

// Fingerprint is a stable keccak-256 id over name, file and line.
func (f Finding) Fingerprint() string {
	return util.Keccak256Hex(
		[]byte(f.Vulnerability),
		[]byte{0},
		[]byte(f.File),
		[]byte{0},
		[]byte(strconv.Itoa(f.Line)),
	)
}

func (f Finding) String() string {
	return fmt.Sprintf("%s (%s) %s:%d", f.Vulnerability, f.Severity, f.File, f.Line)
}
