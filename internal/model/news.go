package model

import "time"

// DateLayout is the calendar-date format accepted for news dates.
const DateLayout = "2006-01-02"

// NewsArticle is a published (or draft) news item.
// Date carries calendar-date semantics and is stored as UTC midnight.
type NewsArticle struct {
	ID        string    `json:"id" bson:"id"`
	Title     string    `json:"title" bson:"title"`
	Excerpt   string    `json:"excerpt" bson:"excerpt"`
	Content   string    `json:"content" bson:"content"`
	Date      time.Time `json:"date" bson:"date"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
	Published bool      `json:"published" bson:"published"`
	Author    *string   `json:"author,omitempty" bson:"author,omitempty"`
}

// NewsInput is the create payload.
type NewsInput struct {
	Title     string  `json:"title"`
	Excerpt   string  `json:"excerpt"`
	Content   string  `json:"content"`
	Date      string  `json:"date"`
	Published *bool   `json:"published"`
	Author    *string `json:"author"`
}

// NewsUpdate is a partial update; only supplied fields change.
type NewsUpdate struct {
	Title     Optional[string] `json:"title"`
	Excerpt   Optional[string] `json:"excerpt"`
	Content   Optional[string] `json:"content"`
	Date      Optional[string] `json:"date"`
	Published Optional[bool]   `json:"published"`
	Author    Optional[string] `json:"author"`
}

// NewsChanges is a validated NewsUpdate ready for the repository.
// Nil fields are left untouched; ClearAuthor removes the author.
type NewsChanges struct {
	Title       *string
	Excerpt     *string
	Content     *string
	Date        *time.Time
	Published   *bool
	Author      *string
	ClearAuthor bool
	UpdatedAt   time.Time
}

// NewsFilter narrows a news query. A nil Published matches every article.
type NewsFilter struct {
	Published *bool
}

// NewsPage is one page of news, latest date first.
type NewsPage struct {
	News    []*NewsArticle `json:"news"`
	Total   int64          `json:"total"`
	Skip    int            `json:"skip"`
	Limit   int            `json:"limit"`
	HasMore bool           `json:"has_more"`
}

// Apply writes the supplied changes onto a.
func (c NewsChanges) Apply(a *NewsArticle) {
	if c.Title != nil {
		a.Title = *c.Title
	}
	if c.Excerpt != nil {
		a.Excerpt = *c.Excerpt
	}
	if c.Content != nil {
		a.Content = *c.Content
	}
	if c.Date != nil {
		a.Date = *c.Date
	}
	if c.Published != nil {
		a.Published = *c.Published
	}
	switch {
	case c.ClearAuthor:
		a.Author = nil
	case c.Author != nil:
		author := *c.Author
		a.Author = &author
	}
	a.UpdatedAt = c.UpdatedAt
}
