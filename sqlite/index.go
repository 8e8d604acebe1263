package sqlite

import (
	"context"
	"fmt"

	"github.com/fwojciec/docrag"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var (
	_ docrag.IndexBuilder = (*Builder)(nil)
	_ docrag.Index        = (*Index)(nil)
)

// Builder embeds chunks and stores them as a new collection in DB.
type Builder struct {
	DB       *DB
	Embedder docrag.Embedder

	// Concurrency bounds outstanding embedding requests.
	Concurrency int

	// BatchSize is the texts-per-request for batch-capable embedders.
	BatchSize int
}

// Build embeds every chunk and writes the entries in one transaction.
// Either all entries are stored or none are.
func (b *Builder) Build(ctx context.Context, chunks []*docrag.Chunk) (docrag.Index, error) {
	vectors, err := docrag.EmbedChunks(ctx, b.Embedder, chunks, docrag.EmbedOptions{
		Concurrency: b.Concurrency,
		BatchSize:   b.BatchSize,
	})
	if err != nil {
		return nil, fmt.Errorf("build index: %w", err)
	}

	collection := uuid.NewString()

	tx, err := b.DB.BeginTx(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO entries (collection, seq, id, source, content, site, version, kind,
			dedup_key, position, start_offset, end_offset, vector)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return nil, err
	}
	defer stmt.Close()

	for i, c := range chunks {
		if _, err := stmt.ExecContext(ctx, collection, i, uuid.NewString(), c.Source, c.Content,
			c.Metadata.Site, c.Metadata.Version, c.Metadata.Kind,
			c.DedupKey, c.Position, c.Start, c.End, encodeVector(vectors[i])); err != nil {
			return nil, fmt.Errorf("insert entry %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return &Index{
		db:         b.DB,
		embedder:   b.Embedder,
		collection: collection,
		n:          len(chunks),
	}, nil
}

// Index searches one collection of entries.
type Index struct {
	db         *DB
	embedder   docrag.Embedder
	collection string
	n          int
}

// Search returns the k entries most similar to query. Entries are loaded in
// insertion order so ties rank the same as in the in-memory index.
func (idx *Index) Search(ctx context.Context, query string, k int) ([]docrag.SearchResult, error) {
	if k <= 0 {
		return nil, docrag.Errorf(docrag.EINVALID, "k must be positive, got %d", k)
	}
	if idx.n == 0 {
		return []docrag.SearchResult{}, nil
	}

	vec, err := idx.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}

	entries, err := idx.Entries(ctx)
	if err != nil {
		return nil, err
	}
	return docrag.RankEntries(vec, entries, k), nil
}

// Len returns the number of entries in the collection.
func (idx *Index) Len() int {
	return idx.n
}

// Entries loads the collection's entries in insertion order.
func (idx *Index) Entries(ctx context.Context) ([]docrag.IndexEntry, error) {
	rows, err := idx.db.QueryContext(ctx, `
		SELECT id, source, content, site, version, kind, dedup_key, position,
			start_offset, end_offset, vector
		FROM entries
		WHERE collection = ?
		ORDER BY seq
	`, idx.collection)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make([]docrag.IndexEntry, 0, idx.n)
	for rows.Next() {
		var e docrag.IndexEntry
		var c docrag.Chunk
		var blob []byte
		if err := rows.Scan(&e.ID, &c.Source, &c.Content, &c.Metadata.Site, &c.Metadata.Version,
			&c.Metadata.Kind, &c.DedupKey, &c.Position, &c.Start, &c.End, &blob); err != nil {
			return nil, err
		}
		vec, err := decodeVector(blob)
		if err != nil {
			return nil, docrag.Errorf(docrag.EINTERNAL, "entry %s: %v", e.ID, err)
		}
		e.Chunk = &c
		e.Vector = vec
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
