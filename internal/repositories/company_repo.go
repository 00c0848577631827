package repositories

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/kretovds/company-registry-bot/internal/models"
)

// Search criteria recognized by CompanyRepo.Search
const (
	SearchByName  = "name"
	SearchByTaxID = "taxid"
	SearchByEmail = "email"
)

var searchColumns = map[string]string{
	SearchByName:  "name",
	SearchByTaxID: "tax_id",
	SearchByEmail: "email",
}

type CompanyRepo interface {
	Create(company *models.Company) error
	CreateAttachment(attachment *models.FileAttachment) error
	Search(criterion, value string) ([]models.Company, error)
	ListAll() ([]models.Company, error)
	GetByID(id uuid.UUID) (*models.Company, error)
	Stats() (companies int64, attachments int64, err error)
}

type companyRepo struct {
	db *gorm.DB
}

func NewCompanyRepo(db *gorm.DB) CompanyRepo {
	return &companyRepo{db: db}
}

func (r *companyRepo) Create(company *models.Company) error {
	return r.db.Create(company).Error
}

func (r *companyRepo) CreateAttachment(attachment *models.FileAttachment) error {
	return r.db.Create(attachment).Error
}

// Search matches the given substring against one of the three recognized
// criteria. An unknown criterion yields an empty result, not an error.
func (r *companyRepo) Search(criterion, value string) ([]models.Company, error) {
	column, ok := searchColumns[criterion]
	if !ok {
		return nil, nil
	}

	var list []models.Company
	err := r.db.
		Where(column+" LIKE ?", "%"+value+"%").
		Order("created_at DESC").
		Find(&list).Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (r *companyRepo) ListAll() ([]models.Company, error) {
	var list []models.Company
	if err := r.db.Order("created_at DESC").Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *companyRepo) GetByID(id uuid.UUID) (*models.Company, error) {
	var c models.Company
	err := r.db.First(&c, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *companyRepo) Stats() (int64, int64, error) {
	var companies, attachments int64
	if err := r.db.Model(&models.Company{}).Count(&companies).Error; err != nil {
		return 0, 0, err
	}
	if err := r.db.Model(&models.FileAttachment{}).Count(&attachments).Error; err != nil {
		return 0, 0, err
	}
	return companies, attachments, nil
}
