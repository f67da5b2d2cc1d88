package types

import "time"

// Metric records that a user accessed a file.
type Metric struct {
	ID        int       `json:"id" db:"id"`
	UserID    int       `json:"user_id" db:"user_id"`
	FileID    int       `json:"file_id" db:"file_id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// MetricEntry is a Metric joined with the user and file it references.
type MetricEntry struct {
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Src       string    `json:"src"`
	CreatedAt time.Time `json:"created_at"`
}
