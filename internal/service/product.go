package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Skotchmaster/storefront/internal/events"
	"github.com/Skotchmaster/storefront/internal/models"
	"github.com/Skotchmaster/storefront/internal/transport"
	"github.com/Skotchmaster/storefront/internal/util"
	"github.com/Skotchmaster/storefront/pkg/logging"
)

type ProductService struct {
	Repo   ProductStore
	Index  ProductIndex
	Events Publisher
}

type SearchResult struct {
	Items  []models.Product
	Total  int64
	Page   int
	Size   int
	Offset int
}

func (s *ProductService) CreateProduct(ctx context.Context, req transport.CreateProductRequest) (*models.Product, error) {
	if err := validateRequest(&req); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	prod := &models.Product{
		ID:          uuid.NewString(),
		Name:        req.Name,
		Price:       req.Price,
		Description: req.Description,
		Category:    req.Category,
		ImageURL:    req.ImageURL,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.Repo.CreateProduct(ctx, prod); err != nil {
		return nil, err
	}

	s.reindex(ctx, prod)
	publish(ctx, s.Events, events.TopicProduct, prod.ID, map[string]any{
		"type": events.ProductCreated, "productID": prod.ID, "name": prod.Name, "price": prod.Price,
	})
	return prod, nil
}

func (s *ProductService) GetProducts(ctx context.Context) ([]models.Product, error) {
	return s.Repo.ListProducts(ctx)
}

func (s *ProductService) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	if err := checkID(id); err != nil {
		return nil, err
	}
	prod, err := s.Repo.GetProduct(ctx, id)
	if err != nil {
		return nil, notFound(err, "product")
	}
	return prod, nil
}

// UpdateProduct merges the supplied fields onto the stored product.
func (s *ProductService) UpdateProduct(ctx context.Context, id string, req transport.UpdateProductRequest) (*models.Product, error) {
	if err := checkID(id); err != nil {
		return nil, err
	}
	if err := validateRequest(&req); err != nil {
		return nil, err
	}

	prod, err := s.Repo.GetProduct(ctx, id)
	if err != nil {
		return nil, notFound(err, "product")
	}

	if req.Name != nil {
		prod.Name = *req.Name
	}
	if req.Price != nil {
		prod.Price = *req.Price
	}
	if req.Description != nil {
		prod.Description = *req.Description
	}
	if req.Category != nil {
		prod.Category = *req.Category
	}
	if req.ImageURL != nil {
		prod.ImageURL = *req.ImageURL
	}

	if err := s.Repo.UpdateProduct(ctx, prod); err != nil {
		return nil, notFound(err, "product")
	}

	s.reindex(ctx, prod)
	publish(ctx, s.Events, events.TopicProduct, prod.ID, map[string]any{
		"type": events.ProductUpdated, "productID": prod.ID, "name": prod.Name, "price": prod.Price,
	})
	return prod, nil
}

func (s *ProductService) DeleteProduct(ctx context.Context, id string) (*models.Product, error) {
	prod, err := s.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.Repo.DeleteProduct(ctx, id); err != nil {
		return nil, notFound(err, "product")
	}

	if s.Index != nil {
		if err := s.Index.DeleteProduct(ctx, id); err != nil {
			logging.FromContext(ctx).Warn("unindex_product_failed", "product_id", id, "error", err)
		}
	}
	publish(ctx, s.Events, events.TopicProduct, id, map[string]any{
		"type": events.ProductDeleted, "productID": id,
	})
	return prod, nil
}

// SearchProducts asks the search index first and falls back to the store.
func (s *ProductService) SearchProducts(ctx context.Context, q string, page, size int) (*SearchResult, error) {
	q = strings.TrimSpace(q)
	if q == "" {
		return nil, fmt.Errorf("%w: query is required", ErrValidation)
	}
	offset, limit := util.Calculate(page, size)
	if page < 1 {
		page = 1
	}
	res := &SearchResult{Page: page, Size: limit, Offset: offset}

	if s.Index != nil {
		total, items, err := s.Index.Search(ctx, q, offset, limit)
		if err == nil {
			res.Total, res.Items = total, items
			return res, nil
		}
		logging.FromContext(ctx).Warn("search_index_failed", "reason", "falling back to store", "error", err)
	}

	total, items, err := s.Repo.SearchProducts(ctx, q, offset, limit)
	if err != nil {
		return nil, err
	}
	res.Total, res.Items = total, items
	return res, nil
}

func (s *ProductService) reindex(ctx context.Context, prod *models.Product) {
	if s.Index == nil {
		return
	}
	if err := s.Index.IndexProduct(ctx, prod); err != nil {
		logging.FromContext(ctx).Warn("index_product_failed", "product_id", prod.ID, "error", err)
	}
}
