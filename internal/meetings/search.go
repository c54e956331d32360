package meetings

import (
	"context"
	"fmt"
	"sort"

	"github.com/grandplaza/concierge/internal/models"
	"github.com/grandplaza/concierge/internal/vector"
)

// Search embeds the query and ranks every stored file by cosine similarity,
// returning up to topK results in descending score order. topK <= 0 uses
// DefaultTopK. Equal scores keep insertion order.
func (s *Store) Search(ctx context.Context, query string, topK int) ([]*models.MeetingSearchResult, error) {
	if topK <= 0 {
		topK = DefaultTopK
	}

	queryEmb, err := s.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to embed query: %w", err)
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT filename, content, embedding, created_at FROM meeting_files ORDER BY created_at, filename`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []*models.MeetingSearchResult
	for rows.Next() {
		var r models.MeetingSearchResult
		var blob []byte
		if err := rows.Scan(&r.Filename, &r.Content, &blob, &r.CreatedAt); err != nil {
			return nil, err
		}
		emb, err := vector.Decode(blob)
		if err != nil {
			return nil, fmt.Errorf("corrupt embedding for %s: %w", r.Filename, err)
		}
		r.Score = vector.Cosine(queryEmb, emb)
		results = append(results, &r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	if len(results) > topK {
		results = results[:topK]
	}
	return results, nil
}

// KeywordSearch ranks stored files by bleve match score. Returns an error when
// the store was built without a keyword index.
func (s *Store) KeywordSearch(ctx context.Context, query string, topK int) ([]*models.MeetingSearchResult, error) {
	if s.keyword == nil {
		return nil, fmt.Errorf("keyword index not configured")
	}
	if topK <= 0 {
		topK = DefaultTopK
	}

	hits, err := s.keyword.Search(query, topK)
	if err != nil {
		return nil, err
	}

	var results []*models.MeetingSearchResult
	for _, hit := range hits {
		var r models.MeetingSearchResult
		err := s.db.QueryRowContext(ctx,
			`SELECT filename, content, created_at FROM meeting_files WHERE file_id = ?`,
			hit.ID).Scan(&r.Filename, &r.Content, &r.CreatedAt)
		if err != nil {
			// Index can briefly lead the table; skip hits with no backing row.
			continue
		}
		r.Score = hit.Score
		results = append(results, &r)
	}
	return results, nil
}
