package service

import (
	"fmt"
	"log"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/user/cinesight/internal/dataset"
	"github.com/user/cinesight/internal/utils"
)

// 趋势页的预置类型列表
var trendGenres = []string{
	"Drama", "Comedy", "Action", "Thriller", "Horror",
	"Romance Film", "Science Fiction", "Fantasy", "Mystery", "Documentary",
}

// InsightService 聚合查询服务。
// 数据集聚合本身是纯读计算，这里只负责缓存结果和合并并发的相同计算。
type InsightService struct {
	ds *dataset.Manager
	sf singleflight.Group

	movieTypes *utils.QueryCache[[]dataset.GenreCount]
	heights    *utils.QueryCache[[]dataset.ActorRecord]
	releases   *utils.QueryCache[[]dataset.YearCount]
	births     *utils.QueryCache[[]dataset.BirthBucket]
}

// NewInsightService 创建聚合查询服务
func NewInsightService(ds *dataset.Manager) *InsightService {
	return &InsightService{
		ds:         ds,
		movieTypes: utils.NewQueryCache[[]dataset.GenreCount](64, 10*time.Minute),
		heights:    utils.NewQueryCache[[]dataset.ActorRecord](128, 10*time.Minute),
		releases:   utils.NewQueryCache[[]dataset.YearCount](128, 10*time.Minute),
		births:     utils.NewQueryCache[[]dataset.BirthBucket](8, 10*time.Minute),
	}
}

// TrendGenres 趋势页可选的类型列表
func (s *InsightService) TrendGenres() []string {
	return trendGenres
}

// MovieTypes 最常见的前 n 个电影类型
func (s *InsightService) MovieTypes(n int) ([]dataset.GenreCount, error) {
	key := fmt.Sprintf("movie_types:%d", n)
	if cached, ok := s.movieTypes.Get(key); ok {
		return cached, nil
	}

	val, err, _ := s.sf.Do(key, func() (interface{}, error) {
		return s.ds.MovieType(n)
	})
	if err != nil {
		return nil, err
	}

	result := val.([]dataset.GenreCount)
	s.movieTypes.Set(key, result)
	return result, nil
}

// ActorCounts 每部电影演员数的直方图
func (s *InsightService) ActorCounts() ([]dataset.ActorBucket, error) {
	const key = "actor_counts"
	if cached, ok := utils.CacheGet(key); ok {
		return cached.([]dataset.ActorBucket), nil
	}

	val, err, _ := s.sf.Do(key, func() (interface{}, error) {
		return s.ds.ActorCount()
	})
	if err != nil {
		return nil, err
	}

	result := val.([]dataset.ActorBucket)
	utils.CacheSet(key, result, 10*time.Minute)
	return result, nil
}

// ActorHeights 按性别和身高区间过滤后的演员记录
func (s *InsightService) ActorHeights(gender string, maxHeight, minHeight float64) ([]dataset.ActorRecord, error) {
	key := fmt.Sprintf("heights:%s:%v:%v", gender, minHeight, maxHeight)
	if cached, ok := s.heights.Get(key); ok {
		return cached, nil
	}

	val, err, _ := s.sf.Do(key, func() (interface{}, error) {
		return s.ds.ActorDistributions(gender, maxHeight, minHeight)
	})
	if err != nil {
		return nil, err
	}

	result := val.([]dataset.ActorRecord)
	s.heights.Set(key, result)
	return result, nil
}

// Genders 数据中出现过的性别（下拉框选项）
func (s *InsightService) Genders() ([]string, error) {
	const key = "genders"
	if cached, ok := utils.CacheGet(key); ok {
		return cached.([]string), nil
	}

	result, err := s.ds.ValidGenders()
	if err != nil {
		return nil, err
	}
	utils.CacheSet(key, result, 10*time.Minute)
	return result, nil
}

// Releases 每年上映电影数（可按类型过滤）
func (s *InsightService) Releases(genre string) ([]dataset.YearCount, error) {
	key := "releases:" + genre
	if cached, ok := s.releases.Get(key); ok {
		return cached, nil
	}

	val, err, _ := s.sf.Do(key, func() (interface{}, error) {
		return s.ds.Releases(genre)
	})
	if err != nil {
		return nil, err
	}

	result := val.([]dataset.YearCount)
	s.releases.Set(key, result)
	return result, nil
}

// Births 演员出生的年份/月份分布
func (s *InsightService) Births(mode string) ([]dataset.BirthBucket, error) {
	// 宽松的 mode 归一在数据层完成，这里按归一后的值做缓存键
	key := "births:" + dataset.ResolveAgeMode(mode)
	if cached, ok := s.births.Get(key); ok {
		return cached, nil
	}

	val, err, _ := s.sf.Do(key, func() (interface{}, error) {
		return s.ds.Ages(mode)
	})
	if err != nil {
		return nil, err
	}

	result := val.([]dataset.BirthBucket)
	s.births.Set(key, result)
	return result, nil
}

// Status 数据集状态
func (s *InsightService) Status() dataset.Status {
	return s.ds.Status()
}

// Refresh 重新下载/解压/加载数据集并清空所有缓存。
// 用 singleflight 合并并发触发的刷新。
func (s *InsightService) Refresh() {
	s.sf.Do("refresh", func() (interface{}, error) {
		log.Println("[InsightService] 开始刷新数据集...")
		s.ds.Reload()

		utils.CacheClear()
		s.movieTypes.Clear()
		s.heights.Clear()
		s.releases.Clear()
		s.births.Clear()

		log.Println("[InsightService] 数据集刷新完成")
		return nil, nil
	})
}
