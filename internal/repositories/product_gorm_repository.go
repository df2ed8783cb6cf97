package repositories

import (
	"context"
	"errors"
	"fmt"

	"etalase/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMProductRepository is a GORM implementation of ProductRepository.
type GORMProductRepository struct {
	db *gorm.DB
}

// NewGORMProductRepository creates a new instance of GORMProductRepository.
func NewGORMProductRepository(db *gorm.DB) *GORMProductRepository {
	return &GORMProductRepository{
		db: db,
	}
}

// GetAll retrieves all products, newest first.
func (r *GORMProductRepository) GetAll(ctx context.Context) ([]models.Product, error) {
	products := []models.Product{}
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to get all products: %w", err)
	}
	return products, nil
}

// GetByID retrieves a single product by its ID from the database.
func (r *GORMProductRepository) GetByID(ctx context.Context, id string) (*models.Product, error) {
	var product models.Product
	if err := r.db.WithContext(ctx).First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("product with ID %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get product by ID %s: %w", id, err)
	}
	return &product, nil
}

// Create creates a new product in the database and replaces product with the
// row as stored: price rounded to the column scale, timestamps at the
// store's precision.
func (r *GORMProductRepository) Create(ctx context.Context, product *models.Product) error {
	product.Price = product.Price.Round(models.PriceScale)
	if product.Price.Abs().GreaterThanOrEqual(models.MaxPrice) {
		return fmt.Errorf("failed to create product: %w: %s must be below %s", ErrPriceOutOfRange, product.Price, models.MaxPrice)
	}
	if product.ID == "" {
		product.ID = uuid.New().String()
	}
	if err := r.db.WithContext(ctx).Create(product).Error; err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}

	var stored models.Product
	if err := r.db.WithContext(ctx).First(&stored, "id = ?", product.ID).Error; err != nil {
		return fmt.Errorf("failed to read back product %s: %w", product.ID, err)
	}
	*product = stored
	return nil
}
