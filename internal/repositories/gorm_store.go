package repositories

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"stash/internal/models"
)

// storedRecord is the row shape shared by every category partition: the full
// storage representation as a JSON document plus extracted columns for the
// queries that need indexes (tag name uniqueness, day/month equality).
type storedRecord struct {
	ID        string `gorm:"primaryKey;type:varchar(36)"`
	Seq       int64  `gorm:"index"`
	Name      string `gorm:"type:varchar(255)"`
	Day       string `gorm:"type:varchar(2)"`
	Month     string `gorm:"type:varchar(2)"`
	Tags      string
	Data      string
	CreatedAt time.Time
}

// GormStore is the GORM implementation of Store for one partition.
type GormStore struct {
	db    *gorm.DB
	cat   models.Category
	table string
}

// NewGormStore builds a store for the category's partition. A non-empty
// prefix isolates test runs from real data.
func NewGormStore(db *gorm.DB, cat models.Category, prefix string) *GormStore {
	return &GormStore{db: db, cat: cat, table: prefix + cat.Collection}
}

// MigratePartitions creates every category partition plus the unique index
// backing Tag.name uniqueness.
func MigratePartitions(db *gorm.DB, prefix string) error {
	for _, cat := range models.Categories() {
		table := prefix + cat.Collection
		if err := db.Table(table).AutoMigrate(&storedRecord{}); err != nil {
			return fmt.Errorf("failed to migrate partition %s: %w", table, err)
		}
	}
	tagTable := prefix + models.TagCategory.Collection
	stmt := fmt.Sprintf("CREATE UNIQUE INDEX IF NOT EXISTS idx_%s_name ON %s (name)", tagTable, tagTable)
	if err := db.Exec(stmt).Error; err != nil {
		return fmt.Errorf("failed to create tag name index: %w", err)
	}
	return nil
}

// seqCounter makes insertion sequence numbers strictly increasing even when
// two creates land in the same clock tick.
var seqCounter atomic.Int64

func nextSeq() int64 {
	for {
		seq := time.Now().UnixNano()
		prev := seqCounter.Load()
		if seq <= prev {
			seq = prev + 1
		}
		if seqCounter.CompareAndSwap(prev, seq) {
			return seq
		}
	}
}

// storeErr maps driver failures onto the port's sentinel errors.
func storeErr(err error) error {
	msg := err.Error()
	if strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "duplicate key value") {
		return fmt.Errorf("%w: %s", ErrConflict, msg)
	}
	return fmt.Errorf("%w: %s", ErrUnavailable, msg)
}

func (s *GormStore) rowFor(id string, rec models.Record) (*storedRecord, error) {
	data, err := models.Storage(rec)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize record: %w", err)
	}
	tags, err := json.Marshal(rec.TagList())
	if err != nil {
		return nil, fmt.Errorf("failed to serialize tags: %w", err)
	}
	row := &storedRecord{
		ID:   id,
		Seq:  nextSeq(),
		Tags: string(tags),
		Data: string(data),
	}
	switch r := rec.(type) {
	case *models.Tag:
		row.Name = r.Name
	case *models.Date:
		row.Day = r.Day
		row.Month = r.Month
	}
	return row, nil
}

func (s *GormStore) decode(row storedRecord) (models.Record, error) {
	rec, err := s.cat.Decode(row.ID, []byte(row.Data))
	if err != nil {
		return nil, fmt.Errorf("corrupt record %s in %s: %w", row.ID, s.table, err)
	}
	return rec, nil
}

func (s *GormStore) decodeAll(rows []storedRecord) ([]models.Record, error) {
	records := make([]models.Record, 0, len(rows))
	for _, row := range rows {
		rec, err := s.decode(row)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, nil
}

func (s *GormStore) Create(rec models.Record) (string, error) {
	row, err := s.rowFor(uuid.New().String(), rec)
	if err != nil {
		return "", err
	}
	if err := s.db.Table(s.table).Create(row).Error; err != nil {
		return "", storeErr(err)
	}
	rec.SetRecordID(row.ID)
	return row.ID, nil
}

func (s *GormStore) FindPaginated(page, count int) ([]models.Record, error) {
	var rows []storedRecord
	err := s.db.Table(s.table).
		Order("seq").
		Offset((page - 1) * count).
		Limit(count).
		Find(&rows).Error
	if err != nil {
		return nil, storeErr(err)
	}
	return s.decodeAll(rows)
}

func (s *GormStore) FindAll() ([]models.Record, error) {
	var rows []storedRecord
	if err := s.db.Table(s.table).Order("seq").Find(&rows).Error; err != nil {
		return nil, storeErr(err)
	}
	return s.decodeAll(rows)
}

func (s *GormStore) FindByID(id string) (models.Record, error) {
	var row storedRecord
	err := s.db.Table(s.table).First(&row, "id = ?", id).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, storeErr(err)
	}
	return s.decode(row)
}

func (s *GormStore) UpdateByID(id string, rec models.Record) (models.Record, error) {
	row, err := s.rowFor(id, rec)
	if err != nil {
		return nil, err
	}
	// Full replace: the document column and every derived column are
	// rewritten, so fields missing from rec are cleared.
	res := s.db.Table(s.table).Where("id = ?", id).Updates(map[string]any{
		"name":  row.Name,
		"day":   row.Day,
		"month": row.Month,
		"tags":  row.Tags,
		"data":  row.Data,
	})
	if res.Error != nil {
		return nil, storeErr(res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, nil
	}
	rec.SetRecordID(id)
	return rec, nil
}

func (s *GormStore) TagOne(id, tag string) (models.Record, error) {
	rec, err := s.FindByID(id)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, nil
	}
	for _, existing := range rec.TagList() {
		if existing == tag {
			return rec, nil
		}
	}
	rec.SetTagList(append(rec.TagList(), tag))
	return s.UpdateByID(id, rec)
}

func (s *GormStore) DeleteByID(id string) (bool, error) {
	res := s.db.Table(s.table).Where("id = ?", id).Delete(&storedRecord{})
	if res.Error != nil {
		return false, storeErr(res.Error)
	}
	return res.RowsAffected > 0, nil
}

func (s *GormStore) DeleteAll() (int64, error) {
	res := s.db.Table(s.table).Where("1 = 1").Delete(&storedRecord{})
	if res.Error != nil {
		return 0, storeErr(res.Error)
	}
	return res.RowsAffected, nil
}

func (s *GormStore) FindByDayMonth(day, month string) ([]models.Record, error) {
	var rows []storedRecord
	err := s.db.Table(s.table).
		Where("day = ? AND month = ?", day, month).
		Order("seq").
		Find(&rows).Error
	if err != nil {
		return nil, storeErr(err)
	}
	return s.decodeAll(rows)
}

func (s *GormStore) FindTagged(tag string) ([]models.Record, error) {
	records, err := s.FindAll()
	if err != nil {
		return nil, err
	}
	tagged := make([]models.Record, 0)
	for _, rec := range records {
		for _, t := range rec.TagList() {
			if t == tag {
				tagged = append(tagged, rec)
				break
			}
		}
	}
	return tagged, nil
}

func (s *GormStore) CascadeTagDelete(tag string) error {
	return s.rewriteTags(tag, "")
}

func (s *GormStore) CascadeTagRename(oldTag, newTag string) error {
	return s.rewriteTags(oldTag, newTag)
}

// rewriteTags replays a tag mutation across this partition: newTag == ""
// removes the tag, anything else renames it in place.
func (s *GormStore) rewriteTags(oldTag, newTag string) error {
	records, err := s.FindTagged(oldTag)
	if err != nil {
		return err
	}
	for _, rec := range records {
		rewritten := make([]string, 0, len(rec.TagList()))
		for _, t := range rec.TagList() {
			if t == oldTag {
				if newTag == "" {
					continue
				}
				t = newTag
			}
			rewritten = append(rewritten, t)
		}
		rec.SetTagList(rewritten)
		if _, err := s.UpdateByID(rec.RecordID(), rec); err != nil {
			return err
		}
	}
	return nil
}
