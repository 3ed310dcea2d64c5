package repository

import (
	"context"
	"database/sql"

	"eventhub/core/database"
	"eventhub/core/logger"
	"eventhub/modules/category/entity"

	"github.com/google/uuid"
)

// CategoryRepository handles category database operations
type CategoryRepository struct {
	DB database.Database
}

func NewCategoryRepository(db database.Database) *CategoryRepository {
	return &CategoryRepository{DB: db}
}

type CategoryRepositoryInterface interface {
	CreateCategory(ctx context.Context, category *entity.Category) (*entity.Category, error)
	GetCategoryByID(ctx context.Context, id uuid.UUID) (*entity.Category, error)
	GetCategoryBySlug(ctx context.Context, slug string) (*entity.Category, error)
	ListCategories(ctx context.Context) ([]entity.Category, error)
}

func (r *CategoryRepository) CreateCategory(ctx context.Context, category *entity.Category) (*entity.Category, error) {
	query := `
		INSERT INTO categories (slug, name)
		VALUES ($1, $2)
		RETURNING id, slug, name
	`

	var created entity.Category
	err := r.DB.GetContext(ctx, &created, query, category.Slug, category.Name)
	if err != nil {
		if !database.IsUniqueViolation(err) {
			logger.Error("CategoryRepository:CreateCategory", err)
		}
		return nil, err
	}

	return &created, nil
}

func (r *CategoryRepository) GetCategoryByID(ctx context.Context, id uuid.UUID) (*entity.Category, error) {
	query := `SELECT id, slug, name FROM categories WHERE id = $1`

	var category entity.Category
	err := r.DB.GetContext(ctx, &category, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("CategoryRepository:GetCategoryByID", err)
		return nil, err
	}

	return &category, nil
}

func (r *CategoryRepository) GetCategoryBySlug(ctx context.Context, slug string) (*entity.Category, error) {
	query := `SELECT id, slug, name FROM categories WHERE slug = $1`

	var category entity.Category
	err := r.DB.GetContext(ctx, &category, query, slug)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("CategoryRepository:GetCategoryBySlug", err)
		return nil, err
	}

	return &category, nil
}

func (r *CategoryRepository) ListCategories(ctx context.Context) ([]entity.Category, error) {
	query := `SELECT id, slug, name FROM categories ORDER BY name`

	var categories []entity.Category
	err := r.DB.SelectContext(ctx, &categories, query)
	if err != nil {
		logger.Error("CategoryRepository:ListCategories", err)
		return nil, err
	}

	return categories, nil
}
