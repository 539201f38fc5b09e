package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/pranaykumar2/private-blog/internal/apperror"
	"github.com/pranaykumar2/private-blog/internal/model"
	"github.com/pranaykumar2/private-blog/internal/repository"
)

// compile-time check that *DB implements repository.BlogRepository
var _ repository.BlogRepository = (*DB)(nil)

const blogColumns = `b.id, b.title, b.content, b.author_id, b.created_at, b.updated_at,
	u.id, u.username, u.email`

// scanBlog reads one joined blogs+users row into a model.Blog with its
// Author populated. Works for both *sql.Row and *sql.Rows.
func scanBlog(row interface{ Scan(...any) error }) (*model.Blog, error) {
	var b model.Blog
	var author model.User

	err := row.Scan(
		&b.ID, &b.Title, &b.Content, &b.AuthorID, &b.CreatedAt, &b.UpdatedAt,
		&author.ID, &author.Username, &author.Email,
	)
	if err != nil {
		return nil, err
	}

	b.Author = &author
	return &b, nil
}

// Create inserts a new blog. The caller sets AuthorID; ID and timestamps are
// filled in here. The author record is loaded back so the created blog can be
// serialized with its nested author without a second round-trip.
func (db *DB) Create(ctx context.Context, blog *model.Blog) error {
	now := time.Now()
	blog.CreatedAt = now
	blog.UpdatedAt = now

	result, err := db.conn.ExecContext(ctx,
		`INSERT INTO blogs (title, content, author_id, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?)`,
		blog.Title,
		blog.Content,
		blog.AuthorID,
		blog.CreatedAt,
		blog.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("sqlite: creating blog: %w", err)
	}

	blog.ID, err = result.LastInsertId()
	if err != nil {
		return fmt.Errorf("sqlite: reading new blog id: %w", err)
	}

	created, err := db.GetByID(ctx, blog.ID)
	if err != nil {
		return fmt.Errorf("sqlite: loading created blog %d: %w", blog.ID, err)
	}
	blog.Author = created.Author

	return nil
}

// GetByID retrieves one blog with its author joined in.
// Returns apperror.ErrNotFound if no blog exists with that ID.
func (db *DB) GetByID(ctx context.Context, id int64) (*model.Blog, error) {
	row := db.conn.QueryRowContext(ctx,
		`SELECT `+blogColumns+`
		 FROM blogs b
		 JOIN users u ON u.id = b.author_id
		 WHERE b.id = ?`,
		id,
	)

	blog, err := scanBlog(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("blog", id)
		}
		return nil, fmt.Errorf("sqlite: getting blog %d: %w", id, err)
	}

	return blog, nil
}

// List retrieves blogs ordered by id ascending. The API guarantees no
// particular ordering, so insertion order is chosen for determinism.
func (db *DB) List(ctx context.Context, opts repository.ListOptions) ([]model.Blog, error) {
	return db.listWhere(ctx, "", nil, opts)
}

// ListByAuthor retrieves one author's blogs ordered by id ascending.
func (db *DB) ListByAuthor(ctx context.Context, authorID int64, opts repository.ListOptions) ([]model.Blog, error) {
	return db.listWhere(ctx, "WHERE b.author_id = ?", []any{authorID}, opts)
}

func (db *DB) listWhere(ctx context.Context, where string, args []any, opts repository.ListOptions) ([]model.Blog, error) {
	query := `SELECT ` + blogColumns + `
		FROM blogs b
		JOIN users u ON u.id = b.author_id ` + where + `
		ORDER BY b.id ASC`

	// Limit <= 0 means unpaginated. SQLite requires a LIMIT clause before
	// OFFSET, so -1 (no limit) stands in when only an offset is given.
	if opts.Limit > 0 || opts.Offset > 0 {
		limit := opts.Limit
		if limit <= 0 {
			limit = -1
		}
		offset := opts.Offset
		if offset < 0 {
			offset = 0
		}
		query += ` LIMIT ? OFFSET ?`
		args = append(args, limit, offset)
	}

	rows, err := db.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing blogs: %w", err)
	}
	defer rows.Close()

	blogs := []model.Blog{}
	for rows.Next() {
		b, err := scanBlog(rows)
		if err != nil {
			return nil, fmt.Errorf("sqlite: scanning blog row: %w", err)
		}
		blogs = append(blogs, *b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating blogs: %w", err)
	}

	return blogs, nil
}

// Update writes title, content, and updated_at. id, author_id, and created_at
// are immutable. RowsAffected == 0 means the blog vanished → not found.
func (db *DB) Update(ctx context.Context, blog *model.Blog) error {
	blog.UpdatedAt = time.Now()

	result, err := db.conn.ExecContext(ctx,
		`UPDATE blogs
		 SET title = ?, content = ?, updated_at = ?
		 WHERE id = ?`,
		blog.Title,
		blog.Content,
		blog.UpdatedAt,
		blog.ID,
	)
	if err != nil {
		return fmt.Errorf("sqlite: updating blog %d: %w", blog.ID, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: checking rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return apperror.NotFound("blog", blog.ID)
	}

	return nil
}

// Delete removes a blog by ID. Same RowsAffected pattern as Update.
func (db *DB) Delete(ctx context.Context, id int64) error {
	result, err := db.conn.ExecContext(ctx,
		`DELETE FROM blogs WHERE id = ?`,
		id,
	)
	if err != nil {
		return fmt.Errorf("sqlite: deleting blog %d: %w", id, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: checking rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return apperror.NotFound("blog", id)
	}

	return nil
}
