package service

import (
	"strings"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
)

// collectionBaseFor derives the vector collection prefix for a meeting
// from its source filename. Filenames that slugify to nothing (for
// example fully non-latin names) fall back to the meeting id.
func collectionBaseFor(baseName string, meetingId uuid.UUID) string {
	s := strings.ReplaceAll(slug.Make(baseName), "-", "_")
	if s == "" {
		return "meeting_" + meetingId.String()[:8]
	}
	return s
}
