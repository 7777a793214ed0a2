package postgres

import (
	"context"
	"database/sql"
	"strings"

	"github.com/lib/pq"
	"github.com/pgvector/pgvector-go"
	"github.com/pkg/errors"

	"github.com/watayuraType-C/playground-ramen-concierge/store"
)

// nullableVector returns nil for an empty embedding so the column stays NULL.
func nullableVector(embedding []float32) any {
	if len(embedding) == 0 {
		return nil
	}
	return pgvector.NewVector(embedding)
}

func (d *DB) CreateShop(ctx context.Context, create *store.Shop) (*store.Shop, error) {
	fields := []string{"uid", "name", "categories", "rating", "location", "review", "embedding", "model", "created_ts", "updated_ts"}
	args := []any{
		create.UID,
		create.Name,
		pq.Array(create.Categories),
		create.Rating,
		create.Location,
		create.Review,
		nullableVector(create.Embedding),
		create.Model,
		create.CreatedTs,
		create.UpdatedTs,
	}

	stmt := `INSERT INTO ramen_shop (` + strings.Join(fields, ", ") + `)
		VALUES (` + placeholders(len(args)) + `)
		RETURNING id`
	if err := d.db.QueryRowContext(ctx, stmt, args...).Scan(&create.ID); err != nil {
		return nil, errors.Wrap(err, "failed to create shop")
	}

	return create, nil
}

func (d *DB) ListShops(ctx context.Context, find *store.FindShop) ([]*store.Shop, error) {
	where, args := []string{"1 = 1"}, []any{}

	if find.ID != nil {
		where, args = append(where, "id = "+placeholder(len(args)+1)), append(args, *find.ID)
	}
	if find.UID != nil {
		where, args = append(where, "uid = "+placeholder(len(args)+1)), append(args, *find.UID)
	}
	if find.MissingEmbedding {
		where = append(where, "embedding IS NULL")
	}

	fields := []string{"id", "uid", "name", "categories", "rating", "location", "review", "model", "created_ts", "updated_ts"}
	if find.WithEmbedding {
		// Read the vector in its text form ("[1,2,3]"); ranking decodes it.
		fields = append(fields, "embedding::text")
	}

	query := `SELECT ` + strings.Join(fields, ", ") + `
		FROM ramen_shop
		WHERE ` + strings.Join(where, " AND ") + `
		ORDER BY created_ts DESC, id DESC`
	if find.Limit != nil {
		query, args = query+" LIMIT "+placeholder(len(args)+1), append(args, *find.Limit)
	}

	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list shops")
	}
	defer rows.Close()

	list := []*store.Shop{}
	for rows.Next() {
		shop := &store.Shop{}
		dest := []any{
			&shop.ID,
			&shop.UID,
			&shop.Name,
			pq.Array(&shop.Categories),
			&shop.Rating,
			&shop.Location,
			&shop.Review,
			&shop.Model,
			&shop.CreatedTs,
			&shop.UpdatedTs,
		}
		var embedding sql.NullString
		if find.WithEmbedding {
			dest = append(dest, &embedding)
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, errors.Wrap(err, "failed to scan shop")
		}
		if embedding.Valid {
			shop.RawEmbedding = embedding.String
		}
		if shop.Categories == nil {
			shop.Categories = []string{}
		}
		list = append(list, shop)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "failed to iterate shops")
	}

	return list, nil
}

func (d *DB) UpdateShop(ctx context.Context, update *store.UpdateShop) (*store.Shop, error) {
	set, args := []string{}, []any{}

	if update.Name != nil {
		set, args = append(set, "name = "+placeholder(len(args)+1)), append(args, *update.Name)
	}
	if update.Categories != nil {
		set, args = append(set, "categories = "+placeholder(len(args)+1)), append(args, pq.Array(*update.Categories))
	}
	if update.Rating != nil {
		set, args = append(set, "rating = "+placeholder(len(args)+1)), append(args, *update.Rating)
	}
	if update.Location != nil {
		set, args = append(set, "location = "+placeholder(len(args)+1)), append(args, *update.Location)
	}
	if update.Review != nil {
		set, args = append(set, "review = "+placeholder(len(args)+1)), append(args, *update.Review)
	}
	if update.Embedding != nil {
		set, args = append(set, "embedding = "+placeholder(len(args)+1)), append(args, nullableVector(update.Embedding))
	}
	if update.Model != nil {
		set, args = append(set, "model = "+placeholder(len(args)+1)), append(args, *update.Model)
	}
	if update.UpdatedTs != nil {
		set, args = append(set, "updated_ts = "+placeholder(len(args)+1)), append(args, *update.UpdatedTs)
	}

	if len(set) == 0 {
		return nil, errors.New("no fields to update")
	}

	args = append(args, update.ID)
	stmt := `UPDATE ramen_shop SET ` + strings.Join(set, ", ") + ` WHERE id = ` + placeholder(len(args)) + `
		RETURNING id, uid, name, categories, rating, location, review, model, created_ts, updated_ts`
	shop := &store.Shop{}
	err := d.db.QueryRowContext(ctx, stmt, args...).Scan(
		&shop.ID, &shop.UID, &shop.Name, pq.Array(&shop.Categories), &shop.Rating,
		&shop.Location, &shop.Review, &shop.Model, &shop.CreatedTs, &shop.UpdatedTs,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errors.Wrapf(store.ErrNotFound, "shop %d", update.ID)
		}
		return nil, errors.Wrap(err, "failed to update shop")
	}

	return shop, nil
}

func (d *DB) DeleteShop(ctx context.Context, delete *store.DeleteShop) error {
	result, err := d.db.ExecContext(ctx, `DELETE FROM ramen_shop WHERE id = `+placeholder(1), delete.ID)
	if err != nil {
		return errors.Wrap(err, "failed to delete shop")
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return errors.Wrapf(store.ErrNotFound, "shop %d", delete.ID)
	}
	return nil
}
