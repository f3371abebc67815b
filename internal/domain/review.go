package domain

import "time"

// Review sort orders exposed by the App Store customer reviews feed.
// Listed in dedup priority order: when the same review id appears in
// more than one listing, the earlier source wins.
const (
	SourceMostHelpful = "mosthelpful"
	SourceMostRecent  = "mostrecent"
)

// Review is a normalized customer review. ExternalID is the natural key,
// unique per app regardless of which sort order discovered it.
type Review struct {
	ID          int64     `db:"id"`
	AppID       int64     `db:"app_id"`
	ExternalID  string    `db:"external_id"`
	Rating      int       `db:"rating"`
	Title       *string   `db:"title"`
	Content     string    `db:"content"`
	Author      *string   `db:"author"`
	Version     *string   `db:"version"`
	Country     string    `db:"country"`
	PublishedAt time.Time `db:"published_at"`
	VoteSum     int       `db:"vote_sum"`
	VoteCount   int       `db:"vote_count"`
	Source      string    `db:"source"`
	CreatedAt   time.Time `db:"created_at"`
}
