package db

import (
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type recordRow struct {
	Key       string `gorm:"column:record_key;primaryKey"`
	Payload   string `gorm:"column:payload;not null"`
	UpdatedAt time.Time
}

func (recordRow) TableName() string {
	return "records"
}

// RecordRepository stores serialized records in the SQLite records table.
type RecordRepository struct {
	database *gorm.DB
}

func NewRecordRepository(database *gorm.DB) *RecordRepository {
	return &RecordRepository{database: database}
}

func (repo *RecordRepository) Get(key string) ([]byte, bool, error) {
	row := recordRow{}
	result := repo.database.
		Where("record_key = ?", key).
		Limit(1).
		Find(&row)
	if result.Error != nil {
		return nil, false, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, false, nil
	}
	return []byte(row.Payload), true, nil
}

func (repo *RecordRepository) Put(key string, value []byte) error {
	return upsertRecord(repo.database, key, value)
}

func (repo *RecordRepository) PutMany(values map[string][]byte) error {
	return repo.database.Transaction(func(tx *gorm.DB) error {
		for key, value := range values {
			if err := upsertRecord(tx, key, value); err != nil {
				return fmt.Errorf("write record %s: %w", key, err)
			}
		}
		return nil
	})
}

func (repo *RecordRepository) Close() error {
	sqlDB, err := repo.database.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func upsertRecord(database *gorm.DB, key string, value []byte) error {
	row := recordRow{
		Key:       key,
		Payload:   string(value),
		UpdatedAt: time.Now().UTC(),
	}
	return database.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "record_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"payload", "updated_at"}),
	}).Create(&row).Error
}
