// Package version carries build metadata stamped in with -ldflags, e.g.
// -X github.com/bnema/pokedex-cli/internal/version.Version=v1.2.3.
package version

import "fmt"

var (
	Version = "dev"
	Commit  = ""
)

// String is the one-line form printed by "pdx version".
func String() string {
	if Commit == "" {
		return fmt.Sprintf("pdx %s", Version)
	}
	return fmt.Sprintf("pdx %s (%s)", Version, Commit)
}
