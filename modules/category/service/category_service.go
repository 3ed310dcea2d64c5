package service

import (
	"context"
	"strings"

	"eventhub/core/database"
	"eventhub/core/errors"
	"eventhub/modules/category/dto"
	"eventhub/modules/category/entity"
	"eventhub/modules/category/repository"

	"github.com/gosimple/slug"
)

// CategoryService handles category business logic
type CategoryService struct {
	repo repository.CategoryRepositoryInterface
}

type CategoryServiceInterface interface {
	CreateCategory(ctx context.Context, req *dto.CreateCategoryRequest) (*dto.CategoryResponse, *errors.AppError)
	GetCategoryBySlug(ctx context.Context, categorySlug string) (*dto.CategoryResponse, *errors.AppError)
	ListCategories(ctx context.Context) ([]dto.CategoryResponse, *errors.AppError)
}

func NewCategoryService(repo repository.CategoryRepositoryInterface) CategoryServiceInterface {
	return &CategoryService{repo: repo}
}

// CreateCategory creates a category with a slug derived from its name. Slugs
// are immutable once created; a colliding name is reported as a conflict.
func (s *CategoryService) CreateCategory(ctx context.Context, req *dto.CreateCategoryRequest) (*dto.CategoryResponse, *errors.AppError) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "category name is required", nil)
	}
	if len(name) > 120 {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "category name must be at most 120 characters", nil)
	}

	category := &entity.Category{
		Slug: slug.Make(name),
		Name: name,
	}

	created, err := s.repo.CreateCategory(ctx, category)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return nil, errors.NewAppError(errors.ErrAlreadyExists, "category already exists", nil)
		}
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to create category", err)
	}

	return dto.ToCategoryResponse(created), nil
}

func (s *CategoryService) GetCategoryBySlug(ctx context.Context, categorySlug string) (*dto.CategoryResponse, *errors.AppError) {
	category, err := s.repo.GetCategoryBySlug(ctx, categorySlug)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to get category", err)
	}
	if category == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "category not found", nil)
	}
	return dto.ToCategoryResponse(category), nil
}

func (s *CategoryService) ListCategories(ctx context.Context) ([]dto.CategoryResponse, *errors.AppError) {
	categories, err := s.repo.ListCategories(ctx)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to list categories", err)
	}
	return dto.ToCategoryResponses(categories), nil
}
