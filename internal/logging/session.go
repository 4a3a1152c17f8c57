package logging

import (
	"crypto/rand"
	"encoding/hex"
	"strings"
	"time"
)

// GenerateSessionID creates a unique session identifier.
// Format: YYYYMMDD_HHMMSS_xxxx (timestamp + 4 random hex chars)
func GenerateSessionID() string {
	now := time.Now()
	random := make([]byte, 2)
	_, _ = rand.Read(random)
	return now.Format("20060102_150405") + "_" + hex.EncodeToString(random)
}

// SessionFilename generates the log filename for a session ID.
func SessionFilename(sessionID string) string {
	return "session_" + sessionID + ".log"
}

// ShortSessionID returns the random suffix of a session ID, the part
// users type to pick a session.
func ShortSessionID(sessionID string) string {
	if i := strings.LastIndexByte(sessionID, '_'); i >= 0 && i+1 < len(sessionID) {
		return sessionID[i+1:]
	}
	return sessionID
}

// ParseSessionFilename extracts session info from a log filename.
func ParseSessionFilename(filename string) (sessionID string, ok bool) {
	const prefix = "session_"
	const suffix = ".log"

	if len(filename) < len(prefix)+len(suffix) {
		return "", false
	}
	if filename[:len(prefix)] != prefix {
		return "", false
	}
	if filename[len(filename)-len(suffix):] != suffix {
		return "", false
	}

	return filename[len(prefix) : len(filename)-len(suffix)], true
}
