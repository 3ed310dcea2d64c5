package dto

import "eventhub/modules/category/entity"

type CreateCategoryRequest struct {
	Name string `json:"name"`
}

type CategoryResponse struct {
	ID   string `json:"id"`
	Slug string `json:"slug"`
	Name string `json:"name"`
}

func ToCategoryResponse(c *entity.Category) *CategoryResponse {
	if c == nil {
		return nil
	}
	return &CategoryResponse{
		ID:   c.ID.String(),
		Slug: c.Slug,
		Name: c.Name,
	}
}

func ToCategoryResponses(categories []entity.Category) []CategoryResponse {
	result := make([]CategoryResponse, 0, len(categories))
	for i := range categories {
		result = append(result, *ToCategoryResponse(&categories[i]))
	}
	return result
}
