package store

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// Revision tokens have the form "{generation}-{suffix}". The generation is
// a monotonically increasing counter, the suffix a random tag that makes
// tokens from different writers distinguishable even at the same
// generation.

// nextRevision returns the successor token of current. An empty current
// revision yields generation 1.
func nextRevision(current string) string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	return fmt.Sprintf("%d-%s", RevisionGeneration(current)+1, suffix)
}

// RevisionGeneration extracts the numeric generation of a revision token.
// Malformed or empty tokens count as generation 0, which orders them before
// every real revision.
func RevisionGeneration(revision string) int {
	gen, _, found := strings.Cut(revision, "-")
	if !found {
		return 0
	}
	n, err := strconv.Atoi(gen)
	if err != nil || n < 0 {
		return 0
	}
	return n
}
