package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/jmoiron/sqlx"

	"reviewsync/internal/domain"
)

// reviewColumns is the number of bound parameters per inserted row.
const reviewColumns = 12

type ReviewStore struct {
	db        *sqlx.DB
	chunkSize int
	logger    *slog.Logger
}

func NewReviewStore(db *sqlx.DB, chunkSize int, logger *slog.Logger) *ReviewStore {
	if chunkSize <= 0 {
		chunkSize = 100
	}
	return &ReviewStore{
		db:        db,
		chunkSize: chunkSize,
		logger:    logger.With("component", "review_store"),
	}
}

// BatchInsert writes reviews in fixed-size chunks with conflict-skip
// semantics on (app_id, external_id). A chunk-level failure is counted as
// skipped and the remaining chunks continue; only context cancellation
// aborts the loop.
func (s *ReviewStore) BatchInsert(ctx context.Context, appID int64, reviews []domain.Review) (inserted, duplicates, skipped int, err error) {
	for start := 0; start < len(reviews); start += s.chunkSize {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return inserted, duplicates, skipped, ctxErr
		}

		end := start + s.chunkSize
		if end > len(reviews) {
			end = len(reviews)
		}
		chunk := reviews[start:end]

		n, insErr := s.insertChunk(ctx, appID, chunk)
		if insErr != nil {
			s.logger.Error("chunk insert failed",
				"app_id", appID,
				"chunk_start", start,
				"chunk_len", len(chunk),
				"error", insErr,
			)
			skipped += len(chunk)
			continue
		}

		inserted += n
		duplicates += len(chunk) - n
	}

	return inserted, duplicates, skipped, nil
}

func (s *ReviewStore) insertChunk(ctx context.Context, appID int64, chunk []domain.Review) (int, error) {
	var sb strings.Builder
	sb.WriteString(`INSERT INTO reviews (
		app_id, external_id, rating, title, content, author, version,
		country, published_at, vote_sum, vote_count, source
	) VALUES `)

	args := make([]interface{}, 0, len(chunk)*reviewColumns)

	for i, r := range chunk {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString("(")
		for col := 0; col < reviewColumns; col++ {
			if col > 0 {
				sb.WriteString(", ")
			}
			fmt.Fprintf(&sb, "$%d", i*reviewColumns+col+1)
		}
		sb.WriteString(")")

		args = append(args,
			appID,
			r.ExternalID,
			r.Rating,
			r.Title,
			r.Content,
			r.Author,
			r.Version,
			r.Country,
			r.PublishedAt,
			r.VoteSum,
			r.VoteCount,
			r.Source,
		)
	}

	sb.WriteString(" ON CONFLICT (app_id, external_id) DO NOTHING")

	res, err := executor(ctx, s.db).ExecContext(ctx, sb.String(), args...)
	if err != nil {
		return 0, err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}

	return int(affected), nil
}

// CountByApp reports the stored review count for one app.
func (s *ReviewStore) CountByApp(ctx context.Context, appID int64) (int, error) {
	var count int
	err := s.db.GetContext(ctx, &count,
		"SELECT COUNT(*) FROM reviews WHERE app_id = $1", appID)
	return count, err
}
