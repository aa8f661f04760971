package model

import (
	"time"

	"github.com/lib/pq"
	"github.com/pgvector/pgvector-go"
)

// SessionUser 专门用于 Session 存储的用户信息结构
type SessionUser struct {
	Username string
	Role     string
}

// ClassificationRecord LLM 类型分类历史记录。
// 每次「随机电影 + LLM 分类 + 数据集类型比对」的结果落一条，
// Embedding 存剧情简介向量，用于检索相似的历史分类。
type ClassificationRecord struct {
	ID            int              `json:"id" gorm:"primaryKey"`
	WikiMovieID   string           `json:"wiki_movie_id" gorm:"index"`
	MovieName     string           `json:"movie_name"`
	PlotSummary   string           `json:"plot_summary"`
	DatasetGenres pq.StringArray   `json:"dataset_genres" gorm:"type:text[]"`
	LLMGenres     pq.StringArray   `json:"llm_genres" gorm:"type:text[]"`
	MatchedGenres pq.StringArray   `json:"matched_genres" gorm:"type:text[]"`
	Contained     bool             `json:"contained"` // LLM 结果是否完全包含于数据集类型
	Provider      string           `json:"provider"`  // ollama / gemini
	Model         string           `json:"model"`
	RequesterHash string           `json:"-"` // 请求来源 IP 的匿名哈希
	Embedding     *pgvector.Vector `json:"-" gorm:"type:vector(768)"`
	CreatedAt     time.Time        `json:"created_at" gorm:"index"`
}
