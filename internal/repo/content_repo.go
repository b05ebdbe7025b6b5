// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the homepage
// and blog content.
package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/tbourn/go-domain-finder/internal/domain"
)

// ActiveHomePage returns the active homepage content, or (nil, nil).
func ActiveHomePage(ctx context.Context, db *gorm.DB) (*domain.HomePage, error) {
	var h domain.HomePage
	err := db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("updated_at DESC, id DESC").
		First(&h).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &h, nil
}

// SaveHomePage creates or updates homepage content, keeping at most one
// active row.
func SaveHomePage(ctx context.Context, db *gorm.DB, h *domain.HomePage) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(h).Error; err != nil {
			return err
		}
		if !h.IsActive {
			return nil
		}
		return deactivateOthers[domain.HomePage](tx, h.ID)
	})
}

func publishedPosts(ctx context.Context, db *gorm.DB) *gorm.DB {
	return db.WithContext(ctx).
		Model(&domain.BlogPost{}).
		Where("blog_posts.is_published = ?", true)
}

// byCategorySlug narrows a post query to a category slug; "" means all.
func byCategorySlug(q *gorm.DB, slug string) *gorm.DB {
	if slug == "" {
		return q
	}
	return q.Joins("JOIN blog_categories ON blog_categories.id = blog_posts.category_id").
		Where("blog_categories.slug = ?", slug)
}

// CountPublishedPosts returns the number of published posts, optionally in
// one category.
func CountPublishedPosts(ctx context.Context, db *gorm.DB, categorySlug string) (int64, error) {
	var total int64
	err := byCategorySlug(publishedPosts(ctx, db), categorySlug).Count(&total).Error
	return total, err
}

// ListPublishedPosts returns published posts newest first with author and
// category preloaded, optionally filtered by category slug.
func ListPublishedPosts(ctx context.Context, db *gorm.DB, categorySlug string) ([]domain.BlogPost, error) {
	var out []domain.BlogPost
	err := byCategorySlug(publishedPosts(ctx, db), categorySlug).
		Preload("Author").
		Preload("Category").
		Order("blog_posts.created_at DESC, blog_posts.id DESC").
		Find(&out).Error
	return out, err
}

// FirstFeaturedPost returns the newest featured published post, or (nil, nil).
func FirstFeaturedPost(ctx context.Context, db *gorm.DB) (*domain.BlogPost, error) {
	var p domain.BlogPost
	err := publishedPosts(ctx, db).
		Where("is_featured = ?", true).
		Preload("Author").
		Preload("Category").
		Order("created_at DESC, id DESC").
		First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// GetPublishedPost fetches a published post by id, or ErrNotFound.
func GetPublishedPost(ctx context.Context, db *gorm.DB, id uint) (*domain.BlogPost, error) {
	var p domain.BlogPost
	err := publishedPosts(ctx, db).
		Preload("Author").
		Preload("Category").
		Where("blog_posts.id = ?", id).
		First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// ListRelatedPosts returns up to limit other published posts of the same
// category.
func ListRelatedPosts(ctx context.Context, db *gorm.DB, p *domain.BlogPost, limit int) ([]domain.BlogPost, error) {
	var out []domain.BlogPost
	err := publishedPosts(ctx, db).
		Where("category_id = ? AND id <> ?", p.CategoryID, p.ID).
		Preload("Author").
		Preload("Category").
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&out).Error
	return out, err
}

// ListCategories returns every blog category by name.
func ListCategories(ctx context.Context, db *gorm.DB) ([]domain.BlogCategory, error) {
	var out []domain.BlogCategory
	err := db.WithContext(ctx).Order("name ASC").Find(&out).Error
	return out, err
}

// CategoryBySlug returns the category with slug, or ErrNotFound.
func CategoryBySlug(ctx context.Context, db *gorm.DB, slug string) (*domain.BlogCategory, error) {
	var c domain.BlogCategory
	if err := db.WithContext(ctx).Where("slug = ?", slug).First(&c).Error; err != nil {
		return nil, err
	}
	return &c, nil
}
