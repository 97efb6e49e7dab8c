package buildinfo

import (
	"fmt"
	"time"
)

// Set via -ldflags "-X github.com/xelth-com/ploegwissel/internal/buildinfo.CommitHash=..."
var (
	BuildTime  string // when the binary was compiled
	CommitTime string // last git commit time
	CommitHash string // short git commit hash
)

// StartTime is recorded when the process starts
var StartTime = time.Now().UTC().Format(time.RFC3339)

// Version is the one-line form shown by --version
func Version() string {
	hash := CommitHash
	if hash == "" {
		hash = "dev"
	}
	if BuildTime == "" {
		return hash
	}
	return fmt.Sprintf("%s (built %s)", hash, BuildTime)
}
