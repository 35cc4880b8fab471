package model

import "time"

// Article data model. Author is the username of the creating user, copied
// at creation time rather than referenced.
type Article struct {
	ID          int64      `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Image       string     `json:"image"`
	Author      string     `json:"author"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   *time.Time `json:"updatedAt,omitempty"`
}

// ArticlePatch holds the caller-editable Article fields. A nil field was not
// supplied and is left untouched by Apply.
type ArticlePatch struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Image       *string `json:"image,omitempty"`
}

// Apply shallow-merges the supplied fields over a and returns the result.
func (p *ArticlePatch) Apply(a Article) Article {
	if p == nil {
		return a
	}
	if p.Title != nil {
		a.Title = *p.Title
	}
	if p.Description != nil {
		a.Description = *p.Description
	}
	if p.Image != nil {
		a.Image = *p.Image
	}

	return a
}

func (p *ArticlePatch) Empty() bool {
	return p == nil || (p.Title == nil && p.Description == nil && p.Image == nil)
}
