package product

import (
	"context"
	"errors"
	"math"

	"github.com/zakariamagdyz/memorize-api/internal/domain"
	"github.com/zakariamagdyz/memorize-api/internal/pkg/apperr"

	"gorm.io/gorm"
)

var ErrProductNotFound = apperr.New(apperr.NotFound, "No product found with that id")

type RepositoryInterface interface {
	List(ctx context.Context, offset, limit int) ([]domain.Product, int64, error)
	GetByID(ctx context.Context, id int64) (*domain.Product, error)
	Create(ctx context.Context, p *domain.Product) error
	Update(ctx context.Context, p *domain.Product) error
	Delete(ctx context.Context, id int64) (int64, error)
}

type Service struct {
	products RepositoryInterface
}

func NewService(products RepositoryInterface) *Service {
	return &Service{products: products}
}

func (s *Service) List(ctx context.Context, page, limit int) ([]domain.Product, *PageInfo, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}

	products, total, err := s.products.List(ctx, (page-1)*limit, limit)
	if err != nil {
		return nil, nil, err
	}

	info := &PageInfo{
		Count: total,
		Pages: int64(math.Ceil(float64(total) / float64(limit))),
		Page:  page,
		Limit: limit,
	}
	return products, info, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*domain.Product, error) {
	p, err := s.products.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return p, nil
}

func (s *Service) Create(ctx context.Context, req CreateProductRequest) (*domain.Product, error) {
	p := &domain.Product{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
	}
	if err := s.products.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Service) Update(ctx context.Context, id int64, req UpdateProductRequest) (*domain.Product, error) {
	p, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		p.Name = *req.Name
	}
	if req.Description != nil {
		p.Description = *req.Description
	}
	if req.Price != nil {
		p.Price = *req.Price
	}

	if err := s.products.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	affected, err := s.products.Delete(ctx, id)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrProductNotFound
	}
	return nil
}
