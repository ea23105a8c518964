package repositories

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"stash/internal/models"
)

type apiKeyRow struct {
	ID   string `gorm:"primaryKey;type:varchar(36)"`
	Key  string `gorm:"uniqueIndex;type:varchar(255)"`
	User string `gorm:"type:varchar(255)"`
}

// GormApiKeyRepository is the GORM implementation of ApiKeyRepository.
type GormApiKeyRepository struct {
	db    *gorm.DB
	table string
}

func NewGormApiKeyRepository(db *gorm.DB, prefix string) *GormApiKeyRepository {
	return &GormApiKeyRepository{db: db, table: prefix + "api_keys"}
}

// MigrateApiKeys creates the api_keys partition.
func MigrateApiKeys(db *gorm.DB, prefix string) error {
	return db.Table(prefix + "api_keys").AutoMigrate(&apiKeyRow{})
}

// FindByKey resolves a raw key value; absent keys are (nil, nil).
func (r *GormApiKeyRepository) FindByKey(key string) (*models.ApiKey, error) {
	var row apiKeyRow
	err := r.db.Table(r.table).First(&row, "key = ?", key).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, storeErr(err)
	}
	return &models.ApiKey{ID: row.ID, Key: row.Key, User: row.User}, nil
}

func (r *GormApiKeyRepository) Create(apiKey *models.ApiKey) error {
	if apiKey.ID == "" {
		apiKey.ID = uuid.New().String()
	}
	row := apiKeyRow{ID: apiKey.ID, Key: apiKey.Key, User: apiKey.User}
	if err := r.db.Table(r.table).Create(&row).Error; err != nil {
		return storeErr(err)
	}
	return nil
}

func (r *GormApiKeyRepository) Count() (int64, error) {
	var count int64
	if err := r.db.Table(r.table).Count(&count).Error; err != nil {
		return 0, storeErr(err)
	}
	return count, nil
}
