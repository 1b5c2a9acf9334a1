package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	catalog "yamdb-backend/internal/domains/catalog/model"
	"yamdb-backend/internal/domains/title/model"
	"yamdb-backend/pkg/cache"
	pkgdb "yamdb-backend/pkg/database"
	"yamdb-backend/pkg/logger"
)

const titleCacheTTL = 10 * time.Minute

// titleSelect aggregates genres per row so a listing stays a single
// query. Rating is the live mean over the review thread.
const titleSelect = `
	t.id, t.name, t.year, t.description,
	(SELECT AVG(r.score) FROM reviews r WHERE r.title_id = t.id) AS rating,
	c.id, c.name, c.slug,
	COALESCE(ARRAY_AGG(g.name ORDER BY g.name) FILTER (WHERE g.id IS NOT NULL), '{}') AS genre_names,
	COALESCE(ARRAY_AGG(g.slug ORDER BY g.name) FILTER (WHERE g.id IS NOT NULL), '{}') AS genre_slugs`

type postgresTitleRepository struct {
	pool  *pgxpool.Pool
	cache cache.Cache
	sb    sq.StatementBuilderType
}

func NewPostgresTitleRepository(pool *pgxpool.Pool, c cache.Cache) TitleRepository {
	return &postgresTitleRepository{
		pool:  pool,
		cache: c,
		sb:    sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

func titleCacheKey(id uuid.UUID) string {
	return fmt.Sprintf("title:%s", id)
}

func (r *postgresTitleRepository) Create(ctx context.Context, t *model.Title, categoryID uuid.UUID, genreIDs []uuid.UUID) error {
	return pkgdb.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		query := `
			INSERT INTO titles (id, name, year, description, category_id, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, NOW(), NOW())`

		if _, err := tx.Exec(ctx, query, t.ID, t.Name, t.Year, t.Description, categoryID); err != nil {
			return fmt.Errorf("failed to create title: %w", err)
		}

		return insertGenreLinks(ctx, tx, t.ID, genreIDs)
	})
}

func (r *postgresTitleRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Title, error) {
	key := titleCacheKey(id)

	var cached model.Title
	if found, err := r.cache.Get(ctx, key, &cached); err == nil && found {
		return &cached, nil
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM titles t
		LEFT JOIN categories c ON c.id = t.category_id
		LEFT JOIN title_genres tg ON tg.title_id = t.id
		LEFT JOIN genres g ON g.id = tg.genre_id
		WHERE t.id = $1
		GROUP BY t.id, c.id`, titleSelect)

	t, err := scanTitle(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrTitleNotFound
		}
		return nil, fmt.Errorf("failed to get title: %w", err)
	}

	if err := r.cache.Set(ctx, key, t, titleCacheTTL); err != nil {
		logger.Warn("Failed to cache title", map[string]interface{}{
			"title_id": id.String(),
			"error":    err.Error(),
		})
	}

	return t, nil
}

func (r *postgresTitleRepository) List(ctx context.Context, req model.ListTitlesRequest) ([]model.Title, int, error) {
	base := r.sb.Select().
		From("titles t").
		LeftJoin("categories c ON c.id = t.category_id")

	if req.Name != "" {
		base = base.Where(sq.ILike{"t.name": "%" + req.Name + "%"})
	}
	if req.Category != "" {
		base = base.Where(sq.Eq{"c.slug": req.Category})
	}
	if req.Genre != "" {
		base = base.Where(`EXISTS (
			SELECT 1 FROM title_genres tg
			JOIN genres g ON g.id = tg.genre_id
			WHERE tg.title_id = t.id AND g.slug = ?)`, req.Genre)
	}
	if req.Year != nil {
		base = base.Where(sq.Eq{"t.year": *req.Year})
	}

	countSQL, countArgs, err := base.Column("COUNT(*)").ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build count query: %w", err)
	}

	var total int
	if err := r.pool.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count titles: %w", err)
	}

	listSQL, listArgs, err := base.
		Column(titleSelect).
		LeftJoin("title_genres tg ON tg.title_id = t.id").
		LeftJoin("genres g ON g.id = tg.genre_id").
		GroupBy("t.id", "c.id").
		OrderBy("t.name", "t.id").
		Limit(uint64(req.Limit)).
		Offset(uint64((req.Page - 1) * req.Limit)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build list query: %w", err)
	}

	rows, err := r.pool.Query(ctx, listSQL, listArgs...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list titles: %w", err)
	}
	defer rows.Close()

	titles := make([]model.Title, 0, req.Limit)
	for rows.Next() {
		t, err := scanTitle(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan title: %w", err)
		}
		titles = append(titles, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate titles: %w", err)
	}

	return titles, total, nil
}

func (r *postgresTitleRepository) Update(ctx context.Context, t *model.Title, categoryID *uuid.UUID, genreIDs []uuid.UUID) error {
	err := pkgdb.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		query := `
			UPDATE titles
			SET name = $2, year = $3, description = $4,
			    category_id = COALESCE($5, category_id),
			    updated_at = NOW()
			WHERE id = $1`

		tag, err := tx.Exec(ctx, query, t.ID, t.Name, t.Year, t.Description, categoryID)
		if err != nil {
			return fmt.Errorf("failed to update title: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return model.ErrTitleNotFound
		}

		if genreIDs != nil {
			if _, err := tx.Exec(ctx, `DELETE FROM title_genres WHERE title_id = $1`, t.ID); err != nil {
				return fmt.Errorf("failed to clear title genres: %w", err)
			}
			if err := insertGenreLinks(ctx, tx, t.ID, genreIDs); err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return err
	}

	return r.InvalidateCache(ctx, t.ID)
}

func (r *postgresTitleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM titles WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete title: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrTitleNotFound
	}
	return r.InvalidateCache(ctx, id)
}

func (r *postgresTitleRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM titles WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check title existence: %w", err)
	}
	return exists, nil
}

func (r *postgresTitleRepository) InvalidateCache(ctx context.Context, id uuid.UUID) error {
	if err := r.cache.Delete(ctx, titleCacheKey(id)); err != nil {
		logger.Warn("Failed to invalidate title cache", map[string]interface{}{
			"title_id": id.String(),
			"error":    err.Error(),
		})
	}
	return nil
}

func insertGenreLinks(ctx context.Context, tx pgx.Tx, titleID uuid.UUID, genreIDs []uuid.UUID) error {
	for _, gid := range genreIDs {
		_, err := tx.Exec(ctx, `INSERT INTO title_genres (title_id, genre_id) VALUES ($1, $2)`, titleID, gid)
		if err != nil {
			return fmt.Errorf("failed to link genre: %w", err)
		}
	}
	return nil
}

func scanTitle(row pgx.Row) (*model.Title, error) {
	var (
		t          model.Title
		rating     decimal.NullDecimal
		catID      *uuid.UUID
		catName    *string
		catSlug    *string
		genreNames []string
		genreSlugs []string
	)

	err := row.Scan(
		&t.ID, &t.Name, &t.Year, &t.Description,
		&rating,
		&catID, &catName, &catSlug,
		pq.Array(&genreNames), pq.Array(&genreSlugs),
	)
	if err != nil {
		return nil, err
	}

	t.Rating = model.RoundRating(rating)
	if catID != nil {
		t.Category = &catalog.Term{ID: *catID, Name: *catName, Slug: *catSlug}
	}
	t.Genres = make([]catalog.Term, 0, len(genreNames))
	for i := range genreNames {
		t.Genres = append(t.Genres, catalog.Term{Name: genreNames[i], Slug: genreSlugs[i]})
	}

	return &t, nil
}
