package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/alikalatearabi/salemina-main-app-backend/models"
	"github.com/alikalatearabi/salemina-main-app-backend/utils"

	"gorm.io/gorm"
)

type ProductService struct {
	db  *gorm.DB
	rek *RekognitionService
}

func NewProductService(db *gorm.DB, rek *RekognitionService) *ProductService {
	return &ProductService{db: db, rek: rek}
}

type ProductFilter struct {
	Brand        string
	Cluster      string
	ChildCluster string
}

func (s *ProductService) List(ctx context.Context, f ProductFilter) ([]models.Product, error) {
	q := s.db.WithContext(ctx).Order("updated_at DESC")
	if f.Brand != "" {
		q = q.Where("brand = ?", f.Brand)
	}
	if f.Cluster != "" {
		q = q.Where("cluster = ?", f.Cluster)
	}
	if f.ChildCluster != "" {
		q = q.Where("child_cluster = ?", f.ChildCluster)
	}

	var products []models.Product
	err := q.Find(&products).Error
	return products, err
}

func (s *ProductService) Search(ctx context.Context, query string) ([]models.Product, error) {
	pattern := "%" + query + "%"
	var products []models.Product
	err := s.db.WithContext(ctx).
		Where("product_name ILIKE ? OR brand ILIKE ?", pattern, pattern).
		Order("product_name ASC").
		Limit(50).
		Find(&products).Error
	return products, err
}

func (s *ProductService) GetByBarcode(ctx context.Context, barcode string) (*models.Product, error) {
	var product models.Product
	if err := s.db.WithContext(ctx).Where("barcode = ?", barcode).First(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return &product, nil
}

func (s *ProductService) Create(ctx context.Context, product *models.Product) error {
	if product.Barcode == "" || product.ProductName == "" {
		return errors.New("barcode and product name are required")
	}

	var existing models.Product
	err := s.db.WithContext(ctx).Where("barcode = ?", product.Barcode).First(&existing).Error
	if err == nil {
		return fmt.Errorf("product with barcode %s already exists", product.Barcode)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	return s.db.WithContext(ctx).Create(product).Error
}

func (s *ProductService) Update(ctx context.Context, barcode string, apply func(*models.Product)) (*models.Product, error) {
	product, err := s.GetByBarcode(ctx, barcode)
	if err != nil {
		return nil, err
	}
	apply(product)
	return product, s.db.WithContext(ctx).Save(product).Error
}

func (s *ProductService) Delete(ctx context.Context, barcode string) error {
	product, err := s.GetByBarcode(ctx, barcode)
	if err != nil {
		return err
	}
	return s.db.WithContext(ctx).Delete(product).Error
}

// AttachPicture uploads a base64 image and stores the URL on the product.
func (s *ProductService) AttachPicture(ctx context.Context, barcode, imageBase64 string) (*models.Product, error) {
	product, err := s.GetByBarcode(ctx, barcode)
	if err != nil {
		return nil, err
	}
	url, err := utils.UploadProductImage(imageBase64, barcode)
	if err != nil {
		return nil, err
	}
	product.Picture = url
	return product, s.db.WithContext(ctx).Save(product).Error
}

// FindByPhoto runs label detection on a photo and searches the catalog for
// the top label.
func (s *ProductService) FindByPhoto(ctx context.Context, imageBase64 string) ([]models.Product, error) {
	if s.rek == nil {
		return nil, errors.New("photo lookup not configured")
	}
	labels, err := s.rek.RecognizeLabels(imageBase64)
	if err != nil {
		return nil, err
	}
	if len(labels) == 0 {
		return nil, errors.New("no labels detected")
	}
	return s.Search(ctx, labels[0])
}
