package index

import (
	"context"
	"fmt"
	"time"

	"agentclone-be/pkg/embedding"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
)

// PassageEmbedding is the gorm model backing the pgvector index.
type PassageEmbedding struct {
	Id        uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Scope     string          `gorm:"type:varchar(128);not null;index"`
	Passage   string          `gorm:"type:text"`
	Embedding pgvector.Vector `gorm:"type:vector(768)"` // default dimensionality; EMBEDDING_DIMENSION validates writes
	Position  int             `gorm:"not null"`          // insertion order within the scope, for tie-breaking
	CreatedAt time.Time       `gorm:"autoCreateTime"`
}

func (PassageEmbedding) TableName() string {
	return "passage_embeddings"
}

// PgIndex stores passages in Postgres and searches with pgvector cosine
// distance. Ordering by distance then position keeps ties in insertion order.
type PgIndex struct {
	db        *gorm.DB
	scope     string
	embedder  embedding.EmbeddingProvider
	dimension int
}

func NewPgIndex(db *gorm.DB, scope string, embedder embedding.EmbeddingProvider, dimension int) *PgIndex {
	return &PgIndex{
		db:        db,
		scope:     scope,
		embedder:  embedder,
		dimension: dimension,
	}
}

// Migrate creates the passage_embeddings table. The vector extension must
// already be installed (CREATE EXTENSION vector).
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&PassageEmbedding{})
}

func (idx *PgIndex) Add(ctx context.Context, passages []string) error {
	if len(passages) == 0 {
		return nil
	}

	vectors, err := idx.embedder.Embed(ctx, passages)
	if err != nil {
		return err
	}
	if len(vectors) != len(passages) {
		return fmt.Errorf("embedder returned %d vectors for %d passages", len(vectors), len(passages))
	}
	if err := checkDimension(vectors, idx.dimension); err != nil {
		return err
	}

	var base int64
	if err := idx.db.WithContext(ctx).
		Model(&PassageEmbedding{}).
		Where("scope = ?", idx.scope).
		Count(&base).Error; err != nil {
		return err
	}

	rows := make([]*PassageEmbedding, len(passages))
	for i, p := range passages {
		rows[i] = &PassageEmbedding{
			Id:        uuid.New(),
			Scope:     idx.scope,
			Passage:   p,
			Embedding: pgvector.NewVector(vectors[i]),
			Position:  int(base) + i,
		}
	}

	// Single transaction keeps Add all-or-nothing.
	return idx.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(rows).Error
	})
}

func (idx *PgIndex) Query(ctx context.Context, text string, k int) ([]string, error) {
	count, err := idx.Count(ctx)
	if err != nil {
		return nil, err
	}
	if count == 0 {
		return []string{}, nil
	}

	vectors, err := idx.embedder.Embed(ctx, []string{text})
	if err != nil {
		return nil, err
	}

	if k <= 0 {
		return []string{}, nil
	}

	var rows []*PassageEmbedding
	err = idx.db.WithContext(ctx).
		Where("scope = ?", idx.scope).
		Order(gorm.Expr("embedding <=> ?", pgvector.NewVector(vectors[0]))).
		Order("position ASC").
		Limit(k).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make([]string, len(rows))
	for i, row := range rows {
		out[i] = row.Passage
	}
	return out, nil
}

func (idx *PgIndex) Count(ctx context.Context) (int, error) {
	var count int64
	err := idx.db.WithContext(ctx).
		Model(&PassageEmbedding{}).
		Where("scope = ?", idx.scope).
		Count(&count).Error
	return int(count), err
}
