package catalog

import (
	"time"

	"github.com/pequenospassos/storefront/internal/inventory"
)

type Product struct {
	ID            string                `json:"id"`
	Name          string                `json:"name"`
	Description   string                `json:"description"`
	Category      string                `json:"category"`
	Emoji         string                `json:"emoji"`
	PriceCents    int                   `json:"price_cents"`
	Sizes         []inventory.SizeStock `json:"sizes"`
	Active        bool                  `json:"active"`
	ImageURL      string                `json:"image_url,omitempty"`
	ImagePublicID string                `json:"image_public_id,omitempty"`
	VideoURL      string                `json:"video_url,omitempty"`
	VideoPublicID string                `json:"video_public_id,omitempty"`
	CreatedAt     time.Time             `json:"created_at"`
	UpdatedAt     time.Time             `json:"updated_at"`
}

type ProductInput struct {
	Name          string                `json:"name"`
	Description   string                `json:"description"`
	Category      string                `json:"category"`
	Emoji         string                `json:"emoji"`
	PriceCents    int                   `json:"price_cents"`
	Sizes         []inventory.SizeStock `json:"sizes"`
	Active        *bool                 `json:"active"`
	ImageURL      string                `json:"image_url"`
	ImagePublicID string                `json:"image_public_id"`
	VideoURL      string                `json:"video_url"`
	VideoPublicID string                `json:"video_public_id"`
}

// ProductPatch carries a partial update: nil means "leave the stored value
// alone". Editing flows send only the fields they touched, and an omitted
// field must never clobber what is already there.
type ProductPatch struct {
	Name          *string                `json:"name"`
	Description   *string                `json:"description"`
	Category      *string                `json:"category"`
	Emoji         *string                `json:"emoji"`
	PriceCents    *int                   `json:"price_cents"`
	Sizes         *[]inventory.SizeStock `json:"sizes"`
	Active        *bool                  `json:"active"`
	ImageURL      *string                `json:"image_url"`
	ImagePublicID *string                `json:"image_public_id"`
	VideoURL      *string                `json:"video_url"`
	VideoPublicID *string                `json:"video_public_id"`
}
