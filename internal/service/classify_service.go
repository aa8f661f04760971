package service

import (
	"fmt"
	"log"
	"math/rand"
	"sync"

	"github.com/pgvector/pgvector-go"

	"github.com/user/cinesight/internal/config"
	"github.com/user/cinesight/internal/dataset"
	"github.com/user/cinesight/internal/model"
	"github.com/user/cinesight/internal/repository"
	"github.com/user/cinesight/internal/utils"
)

const classifyPromptFormat = "Classify the following movie summary into genres: %s. " +
	"Only list the genres, separated by commas. Do not include any additional information or brackets."

// GenreScore 三个集合的大小，对应原型页上的打分图
type GenreScore struct {
	Database int `json:"database"`
	LLM      int `json:"llm"`
	Matching int `json:"matching"`
}

// ClassificationResult 一次「随机电影 + LLM 分类」的比对结果
type ClassificationResult struct {
	WikiMovieID   string     `json:"wiki_movie_id"`
	MovieName     string     `json:"movie_name"`
	PlotSummary   string     `json:"plot_summary"`
	DatasetGenres []string   `json:"dataset_genres"`
	LLMGenres     []string   `json:"llm_genres"`
	MatchedGenres []string   `json:"matched_genres"`
	Contained     bool       `json:"contained"`
	Provider      string     `json:"provider"`
	Score         GenreScore `json:"score"`
}

// ClassifyService 随机抽一部有剧情简介和类型标注的电影，
// 让 LLM 根据简介给出类型，再与数据集标注做大小写不敏感的集合比对。
// LLM 调用优先走本地 Ollama，失败且配置了 GEMINI_API_KEY 时退回 Gemini。
type ClassifyService struct {
	ds    *dataset.Manager
	cfg   *config.Config
	repos *repository.Repositories // 可为 nil：无数据库时不记历史

	mu  sync.Mutex
	rng *rand.Rand
}

// NewClassifyService 创建分类服务
func NewClassifyService(ds *dataset.Manager, cfg *config.Config, repos *repository.Repositories, seed int64) *ClassifyService {
	return &ClassifyService{
		ds:    ds,
		cfg:   cfg,
		repos: repos,
		rng:   rand.New(rand.NewSource(seed)),
	}
}

// HistoryEnabled 是否启用了分类历史（需要数据库）
func (s *ClassifyService) HistoryEnabled() bool {
	return s.repos != nil
}

// candidate 候选电影：有类型标注且能找到剧情简介
type candidate struct {
	wikiMovieID string
	movieName   string
	genresCell  string
	plotSummary string
}

// candidates 扫出所有同时有类型标注和剧情简介的电影
func (s *ClassifyService) candidates() ([]candidate, error) {
	movies := s.ds.Table("movie_metadata")
	if movies == nil {
		return nil, fmt.Errorf("%w: movie_metadata 数据表缺失", dataset.ErrMissingData)
	}
	plots := s.ds.Table("plot_summaries")
	if plots == nil {
		return nil, fmt.Errorf("%w: plot_summaries 数据表缺失", dataset.ErrMissingData)
	}

	idIdx := movies.ColumnIndex("wiki_movie_id")
	nameIdx := movies.ColumnIndex("movie_name")
	genresIdx := movies.ColumnIndex("genres")
	plotIDIdx := plots.ColumnIndex("wiki_movie_id")
	plotIdx := plots.ColumnIndex("plot_summary")
	if idIdx < 0 || nameIdx < 0 || genresIdx < 0 || plotIDIdx < 0 || plotIdx < 0 {
		return nil, fmt.Errorf("%w: 缺少必需列", dataset.ErrMissingData)
	}

	summaries := make(map[string]string, len(plots.Rows))
	for _, row := range plots.Rows {
		id := plots.Cell(row, plotIDIdx)
		if id != "" {
			summaries[id] = plots.Cell(row, plotIdx)
		}
	}

	var result []candidate
	for _, row := range movies.Rows {
		genresCell := movies.Cell(row, genresIdx)
		if genresCell == "" {
			continue
		}
		id := movies.Cell(row, idIdx)
		summary, ok := summaries[id]
		if !ok || summary == "" {
			continue
		}
		result = append(result, candidate{
			wikiMovieID: id,
			movieName:   movies.Cell(row, nameIdx),
			genresCell:  genresCell,
			plotSummary: summary,
		})
	}
	return result, nil
}

// Shuffle 随机抽一部电影做 LLM 分类并比对
func (s *ClassifyService) Shuffle(requesterIP string) (*ClassificationResult, error) {
	all, err := s.candidates()
	if err != nil {
		return nil, err
	}
	if len(all) == 0 {
		return nil, fmt.Errorf("%w: 没有同时具备剧情简介和类型标注的电影", dataset.ErrMissingData)
	}

	s.mu.Lock()
	pick := all[s.rng.Intn(len(all))]
	s.mu.Unlock()

	datasetGenres := dataset.DecodeGenres(pick.genresCell)

	llmText, provider, err := s.classify(pick.plotSummary)
	if err != nil {
		return nil, fmt.Errorf("LLM 分类失败: %w", err)
	}

	// 大小写不敏感、去空格的字符串集合比对
	llmGenres := utils.ParseGenreList(llmText)
	dbGenres := utils.NormalizeGenres(datasetGenres)
	matched := utils.IntersectGenres(llmGenres, dbGenres)
	contained := utils.GenresSubset(llmGenres, dbGenres)

	result := &ClassificationResult{
		WikiMovieID:   pick.wikiMovieID,
		MovieName:     pick.movieName,
		PlotSummary:   pick.plotSummary,
		DatasetGenres: datasetGenres,
		LLMGenres:     llmGenres,
		MatchedGenres: matched,
		Contained:     contained,
		Provider:      provider,
		Score: GenreScore{
			Database: len(dbGenres),
			LLM:      len(llmGenres),
			Matching: len(matched),
		},
	}

	// 历史记录异步落库，失败不影响本次结果
	if s.repos != nil {
		go s.persist(result, requesterIP)
	}

	return result, nil
}

// classify 调用 LLM，返回自由文本和实际使用的通道
func (s *ClassifyService) classify(summary string) (string, string, error) {
	prompt := fmt.Sprintf(classifyPromptFormat, summary)

	text, err := utils.OllamaChat(s.cfg.OllamaHost, s.cfg.OllamaChatModel, prompt)
	if err == nil {
		return text, "ollama", nil
	}
	log.Printf("[ClassifyService] Ollama 调用失败: %v", err)

	if s.cfg.GeminiAPIKey != "" {
		text, gerr := utils.GenerateGeminiText(s.cfg.GeminiAPIKey, s.cfg.GeminiModel, prompt)
		if gerr == nil {
			return text, "gemini", nil
		}
		log.Printf("[ClassifyService] Gemini 调用失败: %v", gerr)
		return "", "", gerr
	}
	return "", "", err
}

// persist 写入分类历史，并尽量附带剧情简介向量
func (s *ClassifyService) persist(result *ClassificationResult, requesterIP string) {
	rec := &model.ClassificationRecord{
		WikiMovieID:   result.WikiMovieID,
		MovieName:     result.MovieName,
		PlotSummary:   result.PlotSummary,
		DatasetGenres: result.DatasetGenres,
		LLMGenres:     result.LLMGenres,
		MatchedGenres: result.MatchedGenres,
		Contained:     result.Contained,
		Provider:      result.Provider,
		Model:         s.modelName(result.Provider),
		RequesterHash: utils.HashIP(requesterIP),
	}

	if emb, err := utils.GenerateEmbedding(s.cfg.OllamaHost, s.cfg.OllamaEmbedModel, result.PlotSummary); err == nil {
		vec := pgvector.NewVector(emb)
		rec.Embedding = &vec
	} else {
		log.Printf("[ClassifyService] 生成向量失败（跳过）: %v", err)
	}

	if err := s.repos.Classification.Insert(rec); err != nil {
		log.Printf("[ClassifyService] 写入分类历史失败: %v", err)
	}
}

func (s *ClassifyService) modelName(provider string) string {
	if provider == "gemini" {
		return s.cfg.GeminiModel
	}
	return s.cfg.OllamaChatModel
}

// History 最近的分类历史
func (s *ClassifyService) History(limit int) ([]model.ClassificationRecord, error) {
	if s.repos == nil {
		return nil, fmt.Errorf("分类历史未启用（未配置数据库）")
	}
	return s.repos.Classification.Recent(limit)
}

// Similar 检索与给定文本剧情最相似的历史分类
func (s *ClassifyService) Similar(text string, limit int) ([]model.ClassificationRecord, error) {
	if s.repos == nil {
		return nil, fmt.Errorf("分类历史未启用（未配置数据库）")
	}
	emb, err := utils.GenerateEmbedding(s.cfg.OllamaHost, s.cfg.OllamaEmbedModel, text)
	if err != nil {
		return nil, fmt.Errorf("生成向量失败: %w", err)
	}
	return s.repos.Classification.FindSimilar(emb, limit)
}
