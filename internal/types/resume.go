//nolint:revive // types is a standard Go package name pattern
package types

import "time"

// Resume is the parsed résumé of a user. A user has at most one; uploading replaces it.
type Resume struct {
	ID         string       `json:"_id"`
	UserID     string       `json:"userId"`
	Name       string       `json:"name"`
	Text       string       `json:"text"`
	Email      string       `json:"email"`
	Skills     []string     `json:"skills"`
	Experience []Experience `json:"experience"`
	CreatedAt  time.Time    `json:"createdAt"`
	UpdatedAt  time.Time    `json:"updatedAt"`
}

// Experience is one entry of a résumé's work history.
type Experience struct {
	Company  string `json:"company"`
	Position string `json:"position"`
	Duration string `json:"duration"`
}
