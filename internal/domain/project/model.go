package project

import "time"

// CounterName is the identity counter that issues project IDs.
const CounterName = "projectId"

// Project is a top-level container that groups related ideas
type Project struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// ProjectSummary is a project with derived content figures for listing
type ProjectSummary struct {
	ID             int64     `json:"id"`
	Name           string    `json:"name"`
	CreatedAt      time.Time `json:"created_at"`
	ContentCount   int       `json:"content_count"`
	LastActivityAt time.Time `json:"last_activity_at"`
}
