package models

import "time"

// AccessType classifies how a game can be claimed.
type AccessType string

const (
	AccessFree         AccessType = "free"
	AccessSubscription AccessType = "subscription"
)

// Game represents a free-to-claim offer in the catalog.
type Game struct {
	ID                   int64      `json:"id" gorm:"primaryKey;autoIncrement"`
	Title                string     `json:"title" gorm:"type:text;not null"`
	Description          string     `json:"description" gorm:"type:text;not null"`
	ImageURL             string     `json:"imageUrl" gorm:"column:image_url;type:text;not null"`
	Platform             string     `json:"platform" gorm:"type:varchar(100);not null;index"`
	Rating               *float64   `json:"rating"`
	Genre                *string    `json:"genre" gorm:"type:varchar(100);index"`
	OriginalPrice        *float64   `json:"originalPrice" gorm:"column:original_price"`
	ClaimURL             string     `json:"claimUrl" gorm:"column:claim_url;type:text;not null"`
	EndDate              *time.Time `json:"endDate" gorm:"column:end_date"`
	IsFree               bool       `json:"isFree" gorm:"column:is_free;not null"`
	RequiresSubscription *string    `json:"requiresSubscription" gorm:"column:requires_subscription;type:varchar(100)"`
	CreatedAt            time.Time  `json:"createdAt" gorm:"autoCreateTime:false;index"`
	UpdatedAt            time.Time  `json:"updatedAt" gorm:"autoUpdateTime:false"`
}

// AccessType derives the access classification from RequiresSubscription.
// IsFree is informational and does not take part.
func (g Game) AccessType() AccessType {
	if g.RequiresSubscription == nil || *g.RequiresSubscription == "" {
		return AccessFree
	}
	return AccessSubscription
}

// GameInput is the payload for creating a game.
type GameInput struct {
	Title                string     `json:"title" validate:"required,notblank"`
	Description          string     `json:"description" validate:"required,notblank"`
	ImageURL             string     `json:"imageUrl" validate:"required,notblank"`
	Platform             string     `json:"platform" validate:"required,notblank"`
	Rating               *float64   `json:"rating" validate:"omitnil,gte=0,lte=10"`
	Genre                *string    `json:"genre" validate:"omitnil,ne=All Genres"`
	OriginalPrice        *float64   `json:"originalPrice" validate:"omitnil,gte=0"`
	ClaimURL             string     `json:"claimUrl" validate:"required,notblank"`
	EndDate              *time.Time `json:"endDate"`
	IsFree               *bool      `json:"isFree"`
	RequiresSubscription *string    `json:"requiresSubscription"`

	// SortBy is accepted for compatibility with clients that echo their view
	// state; it is checked but never stored.
	SortBy string `json:"sortBy,omitempty" validate:"omitempty,oneof=latest rating name endDate"`
}

// NewGame builds an unsaved Game from an insert payload with optional
// fields defaulted.
func NewGame(in GameInput) Game {
	isFree := true
	if in.IsFree != nil {
		isFree = *in.IsFree
	}
	return Game{
		Title:                in.Title,
		Description:          in.Description,
		ImageURL:             in.ImageURL,
		Platform:             in.Platform,
		Rating:               in.Rating,
		Genre:                in.Genre,
		OriginalPrice:        in.OriginalPrice,
		ClaimURL:             in.ClaimURL,
		EndDate:              in.EndDate,
		IsFree:               isFree,
		RequiresSubscription: in.RequiresSubscription,
	}
}

// GamePatch is a partial update. Nil pointers and unset Optionals leave the
// stored value untouched; an Optional set to null clears it.
type GamePatch struct {
	Title                *string             `json:"title" validate:"omitnil,notblank"`
	Description          *string             `json:"description" validate:"omitnil,notblank"`
	ImageURL             *string             `json:"imageUrl" validate:"omitnil,notblank"`
	Platform             *string             `json:"platform" validate:"omitnil,notblank"`
	Rating               Optional[float64]   `json:"rating" validate:"omitempty,gte=0,lte=10"`
	Genre                Optional[string]    `json:"genre" validate:"omitempty,ne=All Genres"`
	OriginalPrice        Optional[float64]   `json:"originalPrice" validate:"omitempty,gte=0"`
	ClaimURL             *string             `json:"claimUrl" validate:"omitnil,notblank"`
	EndDate              Optional[time.Time] `json:"endDate" validate:"-"`
	IsFree               *bool               `json:"isFree"`
	RequiresSubscription Optional[string]    `json:"requiresSubscription" validate:"-"`

	SortBy string `json:"sortBy,omitempty" validate:"omitempty,oneof=latest rating name endDate"`
}

// ApplyTo merges the supplied fields over g. ID and timestamps are never
// touched.
func (p GamePatch) ApplyTo(g *Game) {
	setString(&g.Title, p.Title)
	setString(&g.Description, p.Description)
	setString(&g.ImageURL, p.ImageURL)
	setString(&g.Platform, p.Platform)
	setString(&g.ClaimURL, p.ClaimURL)
	if p.IsFree != nil {
		g.IsFree = *p.IsFree
	}
	p.Rating.applyTo(&g.Rating)
	p.Genre.applyTo(&g.Genre)
	p.OriginalPrice.applyTo(&g.OriginalPrice)
	p.EndDate.applyTo(&g.EndDate)
	p.RequiresSubscription.applyTo(&g.RequiresSubscription)
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

// Clone returns a copy of g that shares no pointers with it.
func (g Game) Clone() Game {
	c := g
	c.Rating = clonePtr(g.Rating)
	c.Genre = clonePtr(g.Genre)
	c.OriginalPrice = clonePtr(g.OriginalPrice)
	c.EndDate = clonePtr(g.EndDate)
	c.RequiresSubscription = clonePtr(g.RequiresSubscription)
	return c
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
