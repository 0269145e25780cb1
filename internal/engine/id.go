package engine

import (
	"crypto/rand"
	"fmt"
	"time"
)

// generateID creates a short random hex ID for sessions.
func generateID() string {
	b := make([]byte, 8)
	if _, err := rand.Read(b); err != nil {
		// Fallback -- timestamps stay unique within one process.
		return fmt.Sprintf("sess-%d", time.Now().UnixNano())
	}
	return fmt.Sprintf("%x", b)
}
