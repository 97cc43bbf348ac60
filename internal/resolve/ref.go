// Package resolve derives a branch name and a short environment name from
// a Git reference and publishes them for later pipeline steps.
package resolve

import (
	"crypto/sha1" //nolint:gosec // identifier only, not a security boundary
	"encoding/hex"
	"strings"
)

// BranchPrefix is the only ref prefix that is stripped. Tags and other
// refs pass through unchanged.
const BranchPrefix = "refs/heads/"

// ShortHashLength is the number of hex characters kept from the digest.
const ShortHashLength = 6

// BranchName returns ref without the refs/heads/ prefix, or ref itself
// when the prefix is absent.
func BranchName(ref string) string {
	return strings.TrimPrefix(ref, BranchPrefix)
}

// EnvName returns the first ShortHashLength lowercase hex characters of
// the SHA-1 digest of branch.
func EnvName(branch string) string {
	sum := sha1.Sum([]byte(branch)) //nolint:gosec
	return hex.EncodeToString(sum[:])[:ShortHashLength]
}
