package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Eswaramoorthy-2004/my-ecom-store/app/models"
	"github.com/Eswaramoorthy-2004/my-ecom-store/app/repositories"
	"github.com/Eswaramoorthy-2004/my-ecom-store/pkg/apperr"
	"github.com/Eswaramoorthy-2004/my-ecom-store/pkg/logger"
	"github.com/Eswaramoorthy-2004/my-ecom-store/pkg/storage"
)

// ProductInput carries the raw admin form fields.
type ProductInput struct {
	Name        string
	Description string
	Price       string
	ImageURL    string
}

func (in ProductInput) toModel(op string) (models.Product, error) {
	price, err := parsePrice(in.Price)
	if err != nil {
		return models.Product{}, apperr.E(apperr.Invalid, op, err)
	}
	return models.Product{
		Name:        in.Name,
		Description: in.Description,
		Price:       price,
		ImageURL:    in.ImageURL,
	}, nil
}

// parsePrice accepts a decimal string and rounds it to cents the way a
// decimal(10,2) column would.
func parsePrice(raw string) (float64, error) {
	p, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0, fmt.Errorf("price %q: %w", raw, err)
	}
	if math.IsNaN(p) || math.IsInf(p, 0) || math.Abs(p) >= 1e8 {
		return 0, fmt.Errorf("price %q out of range", raw)
	}
	return math.Round(p*100) / 100, nil
}

type ProductService struct {
	db       *gorm.DB
	products *repositories.ProductRepository
	carts    *repositories.CartRepository
	disk     storage.Disk
}

// NewProductService wires the service. disk may be nil, in which case image
// uploads fail with apperr.Store.
func NewProductService(db *gorm.DB, disk storage.Disk) *ProductService {
	return &ProductService{
		db:       db,
		products: repositories.NewProductRepository(db),
		carts:    repositories.NewCartRepository(db),
		disk:     disk,
	}
}

// List returns the whole catalogue.
func (s *ProductService) List(ctx context.Context) ([]models.Product, error) {
	products, err := s.products.All(ctx)
	if err != nil {
		return nil, apperr.E(apperr.Store, "products.list", err)
	}
	return products, nil
}

// Find returns one product or apperr.NotFound.
func (s *ProductService) Find(ctx context.Context, id uint) (models.Product, error) {
	const op = "products.find"

	p, err := s.products.Find(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Product{}, apperr.E(apperr.NotFound, op, err)
	}
	if err != nil {
		return models.Product{}, apperr.E(apperr.Store, op, err)
	}
	return p, nil
}

// Create inserts a product. Fields are stored as given; only the price must
// parse.
func (s *ProductService) Create(ctx context.Context, in ProductInput) (models.Product, error) {
	const op = "products.create"

	p, err := in.toModel(op)
	if err != nil {
		return models.Product{}, err
	}
	if err := s.products.Create(ctx, &p); err != nil {
		return models.Product{}, apperr.E(apperr.Store, op, err)
	}

	logger.WithCtx(ctx).Info("product created", "product_id", p.ID)
	return p, nil
}

// Update overwrites every editable field of product id. A stored image the
// product no longer points at is removed from the disk.
func (s *ProductService) Update(ctx context.Context, id uint, in ProductInput) error {
	const op = "products.update"

	p, err := in.toModel(op)
	if err != nil {
		return err
	}
	old, err := s.products.Find(ctx, id)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.E(apperr.Store, op, err)
	}
	if err := s.products.Update(ctx, id, p); err != nil {
		return apperr.E(apperr.Store, op, err)
	}
	if old.ImageURL != p.ImageURL {
		s.RemoveImage(ctx, old.ImageURL)
	}

	logger.WithCtx(ctx).Info("product updated", "product_id", id)
	return nil
}

// Delete removes the product's cart rows and then the product, in one
// transaction. Its stored image goes after the commit.
func (s *ProductService) Delete(ctx context.Context, id uint) error {
	const op = "products.delete"

	old, err := s.products.Find(ctx, id)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.E(apperr.Store, op, err)
	}

	var cleared int64
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		n, err := s.carts.WithTx(tx).DeleteByProduct(ctx, id)
		if err != nil {
			return err
		}
		cleared = n
		return s.products.WithTx(tx).Delete(ctx, id)
	})
	if err != nil {
		return apperr.E(apperr.Store, op, err)
	}
	s.RemoveImage(ctx, old.ImageURL)

	logger.WithCtx(ctx).Info("product deleted", "product_id", id, "cart_rows_removed", cleared)
	return nil
}

// imageTypes maps the accepted sniffed content types to the stored extension.
var imageTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

const sniffLen = 3072

// SaveImage stores an uploaded image under products/<uuid><ext> and returns
// its public URL. The type is sniffed from the content; the client's file
// name and content type are not trusted.
func (s *ProductService) SaveImage(ctx context.Context, filename string, r io.Reader) (string, error) {
	const op = "products.save_image"

	if s.disk == nil {
		return "", apperr.E(apperr.Store, op, errors.New("no storage disk configured"))
	}

	head := make([]byte, sniffLen)
	n, err := io.ReadFull(r, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return "", apperr.E(apperr.Invalid, op, err)
	}
	head = head[:n]

	mt := mimetype.Detect(head)
	ext, ok := imageTypes[mt.String()]
	if !ok {
		return "", apperr.E(apperr.Invalid, op, fmt.Errorf("%s: unsupported image type %s", filename, mt.String()))
	}

	key := "products/" + uuid.NewString() + ext
	if err := s.disk.Put(ctx, key, io.MultiReader(bytes.NewReader(head), r), mt.String()); err != nil {
		return "", apperr.E(apperr.Store, op, err)
	}

	logger.WithCtx(ctx).Info("product image stored", "key", key, "type", mt.String())
	return s.disk.URL(key), nil
}

// RemoveImage deletes the stored object behind url. URLs that point outside
// products/ on the disk, external ones included, are left alone. Failures are
// logged, not returned.
func (s *ProductService) RemoveImage(ctx context.Context, url string) {
	if s.disk == nil || url == "" {
		return
	}
	key, ok := storage.KeyFor(s.disk, url)
	if !ok || !strings.HasPrefix(key, "products/") || !s.disk.Exists(ctx, key) {
		return
	}
	if err := s.disk.Delete(ctx, key); err != nil {
		logger.WithCtx(ctx).Warn("product image not removed", "key", key, "error", err)
		return
	}
	logger.WithCtx(ctx).Info("product image removed", "key", key)
}
