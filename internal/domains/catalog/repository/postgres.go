package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"yamdb-backend/internal/domains/catalog/model"
)

type postgresCatalogRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresCatalogRepository(pool *pgxpool.Pool) CatalogRepository {
	return &postgresCatalogRepository{pool: pool}
}

// Categories and genres share one shape; the helpers below take the
// table name and the domain not-found error.

func (r *postgresCatalogRepository) createTerm(ctx context.Context, table string, t *model.Term) error {
	query := fmt.Sprintf(`INSERT INTO %s (name, slug) VALUES ($1, $2) RETURNING id`, table)

	if err := r.pool.QueryRow(ctx, query, t.Name, t.Slug).Scan(&t.ID); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return model.ErrSlugTaken
		}
		return fmt.Errorf("create %s: %w", table, err)
	}

	return nil
}

func (r *postgresCatalogRepository) listTerms(ctx context.Context, table, search string, page, limit int) ([]model.Term, int, error) {
	where := ""
	args := []interface{}{}
	if search != "" {
		where = ` WHERE name ILIKE $1`
		args = append(args, "%"+search+"%")
	}

	var total int
	if err := r.pool.QueryRow(ctx, fmt.Sprintf(`SELECT COUNT(*) FROM %s%s`, table, where), args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count %s: %w", table, err)
	}

	query := fmt.Sprintf(`SELECT id, name, slug FROM %s%s ORDER BY name LIMIT $%d OFFSET $%d`,
		table, where, len(args)+1, len(args)+2)
	args = append(args, limit, (page-1)*limit)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list %s: %w", table, err)
	}
	defer rows.Close()

	var terms []model.Term
	for rows.Next() {
		var t model.Term
		if err := rows.Scan(&t.ID, &t.Name, &t.Slug); err != nil {
			return nil, 0, fmt.Errorf("scan %s: %w", table, err)
		}
		terms = append(terms, t)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("list %s: %w", table, err)
	}

	return terms, total, nil
}

func (r *postgresCatalogRepository) deleteTerm(ctx context.Context, table string, slug string, notFound error) error {
	tag, err := r.pool.Exec(ctx, fmt.Sprintf(`DELETE FROM %s WHERE slug = $1`, table), slug)
	if err != nil {
		return fmt.Errorf("delete %s: %w", table, err)
	}
	if tag.RowsAffected() == 0 {
		return notFound
	}
	return nil
}

// Categories

func (r *postgresCatalogRepository) CreateCategory(ctx context.Context, t *model.Term) error {
	return r.createTerm(ctx, "categories", t)
}

func (r *postgresCatalogRepository) ListCategories(ctx context.Context, search string, page, limit int) ([]model.Term, int, error) {
	return r.listTerms(ctx, "categories", search, page, limit)
}

func (r *postgresCatalogRepository) GetCategoryBySlug(ctx context.Context, slug string) (*model.Term, error) {
	var t model.Term
	err := r.pool.QueryRow(ctx, `SELECT id, name, slug FROM categories WHERE slug = $1`, slug).
		Scan(&t.ID, &t.Name, &t.Slug)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrCategoryNotFound
		}
		return nil, fmt.Errorf("get category: %w", err)
	}
	return &t, nil
}

func (r *postgresCatalogRepository) DeleteCategory(ctx context.Context, slug string) error {
	// titles.category_id carries ON DELETE SET NULL; dependent titles
	// survive with a null category.
	return r.deleteTerm(ctx, "categories", slug, model.ErrCategoryNotFound)
}

// Genres

func (r *postgresCatalogRepository) CreateGenre(ctx context.Context, t *model.Term) error {
	return r.createTerm(ctx, "genres", t)
}

func (r *postgresCatalogRepository) ListGenres(ctx context.Context, search string, page, limit int) ([]model.Term, int, error) {
	return r.listTerms(ctx, "genres", search, page, limit)
}

func (r *postgresCatalogRepository) GetGenresBySlugs(ctx context.Context, slugs []string) ([]model.Term, error) {
	if len(slugs) == 0 {
		return nil, nil
	}

	rows, err := r.pool.Query(ctx, `SELECT id, name, slug FROM genres WHERE slug = ANY($1)`, slugs)
	if err != nil {
		return nil, fmt.Errorf("get genres by slugs: %w", err)
	}
	defer rows.Close()

	bySlug := make(map[string]model.Term, len(slugs))
	for rows.Next() {
		var t model.Term
		if err := rows.Scan(&t.ID, &t.Name, &t.Slug); err != nil {
			return nil, fmt.Errorf("scan genre: %w", err)
		}
		bySlug[t.Slug] = t
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("get genres by slugs: %w", err)
	}

	var terms []model.Term
	for _, slug := range slugs {
		if t, ok := bySlug[slug]; ok {
			terms = append(terms, t)
		}
	}
	return terms, nil
}

func (r *postgresCatalogRepository) DeleteGenre(ctx context.Context, slug string) error {
	return r.deleteTerm(ctx, "genres", slug, model.ErrGenreNotFound)
}
