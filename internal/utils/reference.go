package utils

import "github.com/google/uuid"

// GenerateCommentRef returns a fresh globally-unique reference token for a
// comment, suitable for external linking.
func GenerateCommentRef() string {
	return uuid.NewString()
}
