package infra_postgres_paragraph

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
)

var ErrEmptyCorpus = errors.New("paragraph corpus is empty")

type Driver struct {
	db *sqlx.DB
}

func New(
	db *sqlx.DB,
) *Driver {
	return &Driver{db: db}
}

func (d *Driver) Random(ctx context.Context) (string, error) {
	var text string

	query := `
        SELECT text
        FROM paragraphs
        ORDER BY random()
        LIMIT 1
    `

	err := d.db.GetContext(ctx, &text, query)
	if err != nil {
		if err == sql.ErrNoRows {
			return "", ErrEmptyCorpus
		}
		return "", err
	}

	return text, nil
}

// Seed inserts the given texts, skipping ones already present.
func (d *Driver) Seed(ctx context.Context, texts []string) error {
	query := `
        INSERT INTO paragraphs (text)
        VALUES ($1)
        ON CONFLICT (text)
        DO NOTHING
    `

	for _, t := range texts {
		if _, err := d.db.ExecContext(ctx, query, t); err != nil {
			return err
		}
	}
	return nil
}
