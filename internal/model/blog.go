package model

import "time"

// Blog represents a single post.
//
// AuthorID is assigned from the authenticated caller at creation time and is
// immutable afterwards; it is never read from client input. Author is the
// joined user record, populated by the repository on reads so handlers can
// render the nested author summary without a second query. It is nil on
// structs that haven't been loaded from the database.
type Blog struct {
	ID        int64     `json:"id"         db:"id"`
	Title     string    `json:"title"      db:"title"`
	Content   string    `json:"content"    db:"content"`
	AuthorID  int64     `json:"author_id"  db:"author_id"`
	Author    *User     `json:"author,omitempty"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}
