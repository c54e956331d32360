package meetings

import (
	"fmt"
	"os"
	"sync"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/standard"
	"github.com/blevesearch/bleve/v2/mapping"
)

// KeywordIndex is a thin bleve wrapper for exact-term search over meeting files.
// The mutex guards the index handle: DeleteAll swaps it for a fresh one while
// readers may be indexing or searching concurrently.
type KeywordIndex struct {
	mu    sync.RWMutex
	index bleve.Index
	path  string
}

// keywordDoc is the shape indexed into bleve.
type keywordDoc struct {
	Filename string `json:"filename"`
	Content  string `json:"content"`
}

// KeywordHit is one keyword search result.
type KeywordHit struct {
	ID    string
	Score float64
}

// NewKeywordIndex creates or opens a bleve index at path.
func NewKeywordIndex(path string) (*KeywordIndex, error) {
	if _, err := os.Stat(path); err == nil {
		index, openErr := bleve.Open(path)
		if openErr != nil {
			return nil, fmt.Errorf("failed to open keyword index: %w", openErr)
		}
		return &KeywordIndex{index: index, path: path}, nil
	}

	index, err := bleve.New(path, buildMapping())
	if err != nil {
		return nil, fmt.Errorf("failed to create keyword index: %w", err)
	}
	return &KeywordIndex{index: index, path: path}, nil
}

// buildMapping uses the standard analyzer (lowercase + tokenize, no stemming)
// so literal terms from transcripts match as typed.
func buildMapping() mapping.IndexMapping {
	im := bleve.NewIndexMapping()
	docMapping := bleve.NewDocumentMapping()
	textField := bleve.NewTextFieldMapping()
	textField.Analyzer = standard.Name
	docMapping.AddFieldMappingsAt("filename", textField)
	docMapping.AddFieldMappingsAt("content", textField)
	im.DefaultMapping = docMapping
	return im
}

// Index adds or replaces a meeting file in the index.
func (k *KeywordIndex) Index(id, filename, content string) error {
	k.mu.RLock()
	defer k.mu.RUnlock()
	return k.index.Index(id, keywordDoc{Filename: filename, Content: content})
}

// Search runs a match query and returns up to limit hits by score.
func (k *KeywordIndex) Search(query string, limit int) ([]KeywordHit, error) {
	req := bleve.NewSearchRequest(bleve.NewMatchQuery(query))
	req.Size = limit
	k.mu.RLock()
	defer k.mu.RUnlock()
	res, err := k.index.Search(req)
	if err != nil {
		return nil, fmt.Errorf("keyword search failed: %w", err)
	}
	hits := make([]KeywordHit, len(res.Hits))
	for i, hit := range res.Hits {
		hits[i] = KeywordHit{ID: hit.ID, Score: hit.Score}
	}
	return hits, nil
}

// DeleteAll drops the index contents by recreating the index on disk. It
// holds the write lock for the whole swap so in-flight Index/Search calls
// never see a closed handle.
func (k *KeywordIndex) DeleteAll() error {
	k.mu.Lock()
	defer k.mu.Unlock()
	if err := k.index.Close(); err != nil {
		return err
	}
	if err := os.RemoveAll(k.path); err != nil {
		return err
	}
	index, err := bleve.New(k.path, buildMapping())
	if err != nil {
		return fmt.Errorf("failed to recreate keyword index: %w", err)
	}
	k.index = index
	return nil
}

// Close closes the underlying index.
func (k *KeywordIndex) Close() error {
	k.mu.RLock()
	defer k.mu.RUnlock()
	return k.index.Close()
}
