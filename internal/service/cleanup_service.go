package service

import (
	"log"
	"time"

	"github.com/user/cinesight/internal/repository"
)

// CleanupService 清理服务
type CleanupService struct {
	repos *repository.Repositories
}

// NewCleanupService 创建清理服务
func NewCleanupService(repos *repository.Repositories) *CleanupService {
	return &CleanupService{repos: repos}
}

// Start 启动定时清理任务
func (s *CleanupService) Start() {
	if s.repos == nil {
		return
	}

	ticker := time.NewTicker(24 * time.Hour)

	// 启动时先运行一次
	go s.runCleanup()

	go func() {
		for range ticker.C {
			s.runCleanup()
		}
	}()
}

func (s *CleanupService) runCleanup() {
	log.Println("[CleanupService] 开始清理过期数据...")

	// 清理超过 90 天的分类历史记录
	affected, err := s.repos.Classification.DeleteOlderThan(90)
	if err != nil {
		log.Printf("[CleanupService] 清理分类历史失败: %v", err)
	} else if affected > 0 {
		log.Printf("[CleanupService] 已清理 %d 条过期分类历史", affected)
	}
}
