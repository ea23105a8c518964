package repositories

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"stash/internal/models"
)

type logRow struct {
	ID        string    `gorm:"primaryKey;type:varchar(36)"`
	CreatedAt time.Time `gorm:"index"`
	// "user" is reserved in postgres, so the column is named actor.
	Actor     string    `gorm:"column:actor;type:varchar(255)"`
	Level     string    `gorm:"type:varchar(8)"`
	Message   string
	Details   string
}

// GormLogRepository is the GORM implementation of LogRepository. Retention is
// enforced by sweeping expired rows on every append, the equivalent of a TTL
// index on created_at.
type GormLogRepository struct {
	db    *gorm.DB
	table string
}

func NewGormLogRepository(db *gorm.DB, prefix string) *GormLogRepository {
	return &GormLogRepository{db: db, table: prefix + "access_logs"}
}

// MigrateLogs creates the log partition.
func MigrateLogs(db *gorm.DB, prefix string) error {
	return db.Table(prefix + "access_logs").AutoMigrate(&logRow{})
}

func (r *GormLogRepository) Append(user string, level models.LogLevel, message string, details map[string]any) error {
	if details == nil {
		details = map[string]any{}
	}
	encoded, err := json.Marshal(details)
	if err != nil {
		return err
	}
	row := logRow{
		ID:        uuid.New().String(),
		CreatedAt: time.Now(),
		Actor:     user,
		Level:     string(level),
		Message:   message,
		Details:   string(encoded),
	}
	if err := r.db.Table(r.table).Create(&row).Error; err != nil {
		return storeErr(err)
	}
	_, _ = r.ExpireOlderThan(time.Now().Add(-models.LogRetention))
	return nil
}

func (r *GormLogRepository) Query(users []string, levels []models.LogLevel) ([]models.Log, error) {
	query := r.db.Table(r.table).Order("created_at")
	if len(users) > 0 {
		query = query.Where("actor IN ?", users)
	}
	if len(levels) > 0 {
		names := make([]string, 0, len(levels))
		for _, level := range levels {
			names = append(names, string(level))
		}
		query = query.Where("level IN ?", names)
	}
	var rows []logRow
	if err := query.Find(&rows).Error; err != nil {
		return nil, storeErr(err)
	}
	logs := make([]models.Log, 0, len(rows))
	for _, row := range rows {
		var details map[string]any
		if err := json.Unmarshal([]byte(row.Details), &details); err != nil {
			details = map[string]any{}
		}
		logs = append(logs, models.Log{
			ID:        row.ID,
			CreatedAt: row.CreatedAt,
			User:      row.Actor,
			Level:     models.LogLevel(row.Level),
			Message:   row.Message,
			Details:   details,
		})
	}
	return logs, nil
}

func (r *GormLogRepository) ExpireOlderThan(cutoff time.Time) (int64, error) {
	res := r.db.Table(r.table).Where("created_at < ?", cutoff).Delete(&logRow{})
	if res.Error != nil {
		return 0, storeErr(res.Error)
	}
	return res.RowsAffected, nil
}
