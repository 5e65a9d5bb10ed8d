package services

import (
	"context"

	"dairy-backend/internal/apperrors"
	"dairy-backend/internal/models"
	"dairy-backend/internal/repositories"
)

type ProductService struct {
	Repo *repositories.ProductRepository
}

func NewProductService(repo *repositories.ProductRepository) *ProductService {
	return &ProductService{Repo: repo}
}

func (s *ProductService) CreateProduct(ctx context.Context, req *models.CreateProductRequest) (*models.Product, error) {
	if req.Name == "" || req.Unit == "" {
		return nil, apperrors.InvalidInputf("name and unit are required")
	}
	if req.DefaultPrice <= 0 {
		return nil, apperrors.InvalidInputf("default price must be positive")
	}

	product := &models.Product{
		Name:         req.Name,
		Unit:         req.Unit,
		DefaultPrice: req.DefaultPrice,
	}

	if err := s.Repo.Create(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

func (s *ProductService) GetProduct(ctx context.Context, id int) (*models.Product, error) {
	return s.Repo.Get(ctx, id)
}

func (s *ProductService) ListProducts(ctx context.Context) ([]*models.Product, error) {
	return s.Repo.List(ctx)
}

func (s *ProductService) UpdateProduct(ctx context.Context, id int, req *models.UpdateProductRequest) (*models.Product, error) {
	if req.Name == "" || req.Unit == "" {
		return nil, apperrors.InvalidInputf("name and unit are required")
	}
	if req.DefaultPrice <= 0 {
		return nil, apperrors.InvalidInputf("default price must be positive")
	}

	product, err := s.Repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	product.Name = req.Name
	product.Unit = req.Unit
	product.DefaultPrice = req.DefaultPrice

	if err := s.Repo.Update(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

// DeleteProduct removes a catalog entry. Historical deliveries are not
// touched; they billed at their own captured price.
func (s *ProductService) DeleteProduct(ctx context.Context, id int) error {
	return s.Repo.Delete(ctx, id)
}
