package post

import (
	"context"
	"errors"
	"math"

	"github.com/zakariamagdyz/memorize-api/internal/domain"

	"gorm.io/gorm"
)

const (
	defaultPage  = 1
	defaultLimit = 20
)

type RepositoryInterface interface {
	List(ctx context.Context, offset, limit int) ([]domain.Post, int64, error)
	GetByID(ctx context.Context, id int64) (*domain.Post, error)
	Create(ctx context.Context, p *domain.Post) error
	Update(ctx context.Context, p *domain.Post) error
	Delete(ctx context.Context, id int64) (int64, error)
}

type Service struct {
	posts RepositoryInterface
}

func NewService(posts RepositoryInterface) *Service {
	return &Service{posts: posts}
}

func (s *Service) List(ctx context.Context, page, limit int) ([]domain.Post, *PageInfo, error) {
	if page < 1 {
		page = defaultPage
	}
	if limit < 1 {
		limit = defaultLimit
	}

	posts, total, err := s.posts.List(ctx, (page-1)*limit, limit)
	if err != nil {
		return nil, nil, err
	}

	info := &PageInfo{
		Count: total,
		Pages: int64(math.Ceil(float64(total) / float64(limit))),
		Page:  page,
		Limit: limit,
	}
	return posts, info, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*domain.Post, error) {
	p, err := s.posts.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}
	return p, nil
}

func (s *Service) Create(ctx context.Context, req CreatePostRequest) (*domain.Post, error) {
	p := &domain.Post{
		Title:        req.Title,
		Message:      req.Message,
		Creator:      req.Creator,
		Tags:         req.Tags,
		SelectedFile: req.SelectedFile,
	}
	if err := s.posts.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Service) Update(ctx context.Context, id int64, req UpdatePostRequest) (*domain.Post, error) {
	p, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		p.Title = *req.Title
	}
	if req.Message != nil {
		p.Message = *req.Message
	}
	if req.Tags != nil {
		p.Tags = *req.Tags
	}
	if req.SelectedFile != nil {
		p.SelectedFile = *req.SelectedFile
	}
	if req.LikeCount != nil {
		p.LikeCount = *req.LikeCount
	}

	if err := s.posts.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	affected, err := s.posts.Delete(ctx, id)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrPostNotFound
	}
	return nil
}
