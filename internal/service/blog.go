// Package service contains the business logic layer: validation, ownership
// checks, and orchestration between repositories and the auth utilities.
// Services know nothing about HTTP; handlers translate domain errors to
// status codes.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/pranaykumar2/private-blog/internal/apperror"
	"github.com/pranaykumar2/private-blog/internal/model"
	"github.com/pranaykumar2/private-blog/internal/repository"
)

const (
	MaxTitleLength   = 200
	MaxContentLength = 100000 // ~100KB of text
	MaxListLimit     = 100
)

// BlogService handles business logic for blog posts, including the
// author-or-read-only rule: anyone may read, only the author may mutate.
type BlogService struct {
	repo   repository.BlogRepository
	logger *slog.Logger
}

func NewBlogService(repo repository.BlogRepository, logger *slog.Logger) *BlogService {
	return &BlogService{
		repo:   repo,
		logger: logger,
	}
}

// Create validates and saves a new blog post authored by callerID.
//
// The author is always the authenticated caller; handlers never accept an
// author field from the request body, so a caller cannot publish as someone
// else.
func (s *BlogService) Create(ctx context.Context, callerID int64, title, content string) (*model.Blog, error) {
	title = strings.TrimSpace(title)
	if err := validateTitle(title); err != nil {
		return nil, err
	}
	if err := validateContent(content); err != nil {
		return nil, err
	}

	blog := &model.Blog{
		Title:    title,
		Content:  content,
		AuthorID: callerID,
	}

	if err := s.repo.Create(ctx, blog); err != nil {
		s.logger.Error("failed to create blog",
			slog.Int64("authorID", callerID),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("creating blog: %w", err)
	}

	s.logger.Info("blog created",
		slog.Int64("id", blog.ID),
		slog.Int64("authorID", callerID),
	)

	return blog, nil
}

// GetByID retrieves one blog. Reads are public, no ownership check.
// Returns apperror.ErrNotFound if the blog doesn't exist.
func (s *BlogService) GetByID(ctx context.Context, id int64) (*model.Blog, error) {
	return s.repo.GetByID(ctx, id)
}

// List retrieves blogs in id-ascending order. limit <= 0 returns all rows;
// a supplied limit is clamped to MaxListLimit.
func (s *BlogService) List(ctx context.Context, limit, offset int) ([]model.Blog, error) {
	blogs, err := s.repo.List(ctx, listOptions(limit, offset))
	if err != nil {
		s.logger.Error("failed to list blogs", slog.String("error", err.Error()))
		return nil, fmt.Errorf("listing blogs: %w", err)
	}
	return blogs, nil
}

// ListByAuthor retrieves the caller's own blogs in id-ascending order.
func (s *BlogService) ListByAuthor(ctx context.Context, authorID int64, limit, offset int) ([]model.Blog, error) {
	blogs, err := s.repo.ListByAuthor(ctx, authorID, listOptions(limit, offset))
	if err != nil {
		s.logger.Error("failed to list blogs by author",
			slog.Int64("authorID", authorID),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("listing blogs by author: %w", err)
	}
	return blogs, nil
}

// Update modifies an existing blog's title and/or content.
//
// A nil field means "leave unchanged" (both PUT and PATCH share these
// semantics); at least one field must be supplied. The blog is fetched first
// so "not found" (404) is reported before "not yours" (403), and the
// ownership check runs against the stored author, never client input.
func (s *BlogService) Update(ctx context.Context, id, callerID int64, title, content *string) (*model.Blog, error) {
	if title == nil && content == nil {
		return nil, apperror.ValidationFailed("", "at least one of title or content is required")
	}

	blog, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if blog.AuthorID != callerID {
		return nil, apperror.Forbidden("only the author may modify this blog")
	}

	if title != nil {
		t := strings.TrimSpace(*title)
		if err := validateTitle(t); err != nil {
			return nil, err
		}
		blog.Title = t
	}
	if content != nil {
		if err := validateContent(*content); err != nil {
			return nil, err
		}
		blog.Content = *content
	}

	if err := s.repo.Update(ctx, blog); err != nil {
		s.logger.Error("failed to update blog",
			slog.Int64("id", id),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("updating blog: %w", err)
	}

	s.logger.Info("blog updated", slog.Int64("id", blog.ID))

	return blog, nil
}

// Delete removes a blog. Same lookup-then-ownership order as Update.
func (s *BlogService) Delete(ctx context.Context, id, callerID int64) error {
	blog, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if blog.AuthorID != callerID {
		return apperror.Forbidden("only the author may delete this blog")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("blog deleted", slog.Int64("id", id))
	return nil
}

func listOptions(limit, offset int) repository.ListOptions {
	if limit > MaxListLimit {
		limit = MaxListLimit
	}
	if offset < 0 {
		offset = 0
	}
	return repository.ListOptions{Limit: limit, Offset: offset}
}

func validateTitle(title string) error {
	if title == "" {
		return apperror.ValidationFailed("title", "title is required")
	}
	if len(title) > MaxTitleLength {
		return apperror.ValidationFailed("title",
			fmt.Sprintf("title must be %d characters or less", MaxTitleLength))
	}
	return nil
}

func validateContent(content string) error {
	if strings.TrimSpace(content) == "" {
		return apperror.ValidationFailed("content", "content is required")
	}
	if len(content) > MaxContentLength {
		return apperror.ValidationFailed("content",
			fmt.Sprintf("content must be %d characters or less", MaxContentLength))
	}
	return nil
}
