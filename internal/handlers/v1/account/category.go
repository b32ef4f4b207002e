package account

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/finance-tracker/internal/handlers/v1/request"
	"github.com/carson-networks/finance-tracker/internal/ledger"
)

// Category is the API model for a category.
type Category struct {
	ID   string `json:"id,omitempty" doc:"Category ID, generated when empty"`
	Name string `json:"name" minLength:"1" doc:"Category name"`
	Kind string `json:"kind,omitempty" enum:"income,expense" doc:"Category kind, defaults to expense"`
}

type CreateCategoryInput struct {
	Body Category
}

type CategoryOutput struct {
	Status int
	Body   Category
}

type ListCategoriesOutput struct {
	Body struct {
		Categories []Category `json:"categories"`
	}
}

type categoryService interface {
	CreateCategory(ctx context.Context, category ledger.Category) (ledger.Category, error)
	ListCategories(ctx context.Context) ([]ledger.Category, error)
}

// CategoryHandler handles POST /v1/category and GET /v1/categories.
type CategoryHandler struct {
	AccountService categoryService
}

func NewCategoryHandler(svc categoryService) *CategoryHandler {
	return &CategoryHandler{AccountService: svc}
}

func (h *CategoryHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "create-category",
		Method:      http.MethodPost,
		Path:        "/v1/category",
		Summary:     "Create a category",
		Tags:        []string{"Categories"},
	}, h.create)

	huma.Register(api, huma.Operation{
		OperationID: "list-categories",
		Method:      http.MethodGet,
		Path:        "/v1/categories",
		Summary:     "List categories",
		Tags:        []string{"Categories"},
	}, h.list)
}

func (h *CategoryHandler) create(ctx context.Context, input *CreateCategoryInput) (*CategoryOutput, error) {
	created, err := h.AccountService.CreateCategory(ctx, ledger.Category{
		ID:   input.Body.ID,
		Name: input.Body.Name,
		Kind: ledger.CategoryKind(input.Body.Kind),
	})
	if err != nil {
		return nil, request.Error("failed to create category", err)
	}
	return &CategoryOutput{
		Status: http.StatusCreated,
		Body:   Category{ID: created.ID, Name: created.Name, Kind: string(created.Kind)},
	}, nil
}

func (h *CategoryHandler) list(ctx context.Context, input *struct{}) (*ListCategoriesOutput, error) {
	categories, err := h.AccountService.ListCategories(ctx)
	if err != nil {
		return nil, request.Error("failed to list categories", err)
	}
	out := &ListCategoriesOutput{}
	out.Body.Categories = make([]Category, len(categories))
	for i, c := range categories {
		out.Body.Categories[i] = Category{ID: c.ID, Name: c.Name, Kind: string(c.Kind)}
	}
	return out, nil
}
