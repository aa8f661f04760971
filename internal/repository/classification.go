package repository

import (
	"time"

	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/user/cinesight/internal/model"
)

type ClassificationRepository struct {
	db *gorm.DB
}

func NewClassificationRepository(db *gorm.DB) *ClassificationRepository {
	return &ClassificationRepository{db: db}
}

// Insert 写入一条分类记录
func (r *ClassificationRepository) Insert(rec *model.ClassificationRecord) error {
	rec.CreatedAt = time.Now()
	return r.db.Create(rec).Error
}

// Recent 返回最近的 limit 条分类记录
func (r *ClassificationRepository) Recent(limit int) ([]model.ClassificationRecord, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	var records []model.ClassificationRecord
	err := r.db.
		Order("created_at DESC").
		Limit(limit).
		Find(&records).Error
	return records, err
}

// FindSimilar 按剧情简介向量检索最相似的历史分类（余弦距离）
func (r *ClassificationRepository) FindSimilar(embedding []float32, limit int) ([]model.ClassificationRecord, error) {
	if limit <= 0 || limit > 20 {
		limit = 5
	}
	var records []model.ClassificationRecord
	vec := pgvector.NewVector(embedding)
	err := r.db.
		Where("embedding IS NOT NULL").
		Clauses(clause.OrderBy{Expression: clause.Expr{
			SQL:                "embedding <=> ?",
			Vars:               []interface{}{vec},
			WithoutParentheses: true,
		}}).
		Limit(limit).
		Find(&records).Error
	return records, err
}

// DeleteOlderThan 清理 days 天之前的分类记录，返回删除条数
func (r *ClassificationRepository) DeleteOlderThan(days int) (int64, error) {
	cutoff := time.Now().AddDate(0, 0, -days)
	result := r.db.Where("created_at < ?", cutoff).Delete(&model.ClassificationRecord{})
	return result.RowsAffected, result.Error
}

// CountAll 分类记录总数
func (r *ClassificationRepository) CountAll() (int64, error) {
	var count int64
	err := r.db.Model(&model.ClassificationRecord{}).Count(&count).Error
	return count, err
}
