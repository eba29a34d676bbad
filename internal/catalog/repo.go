package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pequenospassos/storefront/internal/inventory"
)

var ErrNotFound = errors.New("product not found")

type Repo struct{ DB *pgxpool.Pool }

const productColumns = `id, name, coalesce(description,''), coalesce(category,''), coalesce(emoji,''),
	price_cents, sizes, active, coalesce(image_url,''), coalesce(image_public_id,''),
	coalesce(video_url,''), coalesce(video_public_id,''), created_at, updated_at`

// List is a lock-free catalog read. Quantities seen here may lag an in-flight
// checkout; they are for display only, never for stock decisions.
func (r *Repo) List(ctx context.Context) ([]Product, error) {
	rows, err := r.DB.Query(ctx, `SELECT `+productColumns+` FROM products ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *Repo) Get(ctx context.Context, id string) (Product, error) {
	row := r.DB.QueryRow(ctx, `SELECT `+productColumns+` FROM products WHERE id=$1`, id)
	p, err := scanProduct(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return Product{}, ErrNotFound
	}
	return p, err
}

func (r *Repo) Create(ctx context.Context, in ProductInput) (Product, error) {
	sizes := in.Sizes
	if sizes == nil {
		sizes = []inventory.SizeStock{}
	}
	raw, err := json.Marshal(sizes)
	if err != nil {
		return Product{}, err
	}
	active := true
	if in.Active != nil {
		active = *in.Active
	}
	row := r.DB.QueryRow(ctx, `
		INSERT INTO products (name, description, category, emoji, price_cents, sizes, active,
			image_url, image_public_id, video_url, video_public_id)
		VALUES ($1, $2, $3, $4, $5, $6::jsonb, $7,
			nullif($8,''), nullif($9,''), nullif($10,''), nullif($11,''))
		RETURNING `+productColumns,
		in.Name, in.Description, in.Category, in.Emoji, in.PriceCents, raw, active,
		in.ImageURL, in.ImagePublicID, in.VideoURL, in.VideoPublicID)
	return scanProduct(row)
}

// Update applies a partial patch; every omitted field keeps its stored value
// via COALESCE, so editing the price can never erase media references or the
// size list.
func (r *Repo) Update(ctx context.Context, id string, p ProductPatch) (Product, error) {
	var sizesRaw []byte
	if p.Sizes != nil {
		raw, err := json.Marshal(*p.Sizes)
		if err != nil {
			return Product{}, err
		}
		sizesRaw = raw
	}
	row := r.DB.QueryRow(ctx, `
		UPDATE products SET
			name            = coalesce($2, name),
			description     = coalesce($3, description),
			category        = coalesce($4, category),
			emoji           = coalesce($5, emoji),
			price_cents     = coalesce($6, price_cents),
			sizes           = coalesce($7::jsonb, sizes),
			active          = coalesce($8, active),
			image_url       = coalesce($9, image_url),
			image_public_id = coalesce($10, image_public_id),
			video_url       = coalesce($11, video_url),
			video_public_id = coalesce($12, video_public_id),
			updated_at      = now()
		WHERE id=$1
		RETURNING `+productColumns,
		id, p.Name, p.Description, p.Category, p.Emoji, p.PriceCents, sizesRaw, p.Active,
		p.ImageURL, p.ImagePublicID, p.VideoURL, p.VideoPublicID)
	prod, err := scanProduct(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return Product{}, ErrNotFound
	}
	return prod, err
}

func (r *Repo) Delete(ctx context.Context, id string) error {
	ct, err := r.DB.Exec(ctx, `DELETE FROM products WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanProduct(row pgx.Row) (Product, error) {
	var p Product
	var raw []byte
	err := row.Scan(&p.ID, &p.Name, &p.Description, &p.Category, &p.Emoji,
		&p.PriceCents, &raw, &p.Active, &p.ImageURL, &p.ImagePublicID,
		&p.VideoURL, &p.VideoPublicID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return Product{}, err
	}
	if err := json.Unmarshal(raw, &p.Sizes); err != nil {
		return Product{}, fmt.Errorf("decode sizes for product %s: %w", p.ID, err)
	}
	if p.Sizes == nil {
		p.Sizes = []inventory.SizeStock{}
	}
	return p, nil
}
