package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/user/cinesight/internal/config"
	"github.com/user/cinesight/internal/dataset"
	"github.com/user/cinesight/internal/utils"
)

func writeTSV(t *testing.T, dir, name string, rows [][]string) {
	t.Helper()
	var b strings.Builder
	for _, row := range rows {
		b.WriteString(strings.Join(row, "\t"))
		b.WriteString("\n")
	}
	if err := os.WriteFile(filepath.Join(dir, name), []byte(b.String()), 0o644); err != nil {
		t.Fatalf("写入测试文件失败: %v", err)
	}
}

// newStatsRouter 构造加载了小数据集的统计路由（不含页面和模板）
func newStatsRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	utils.InitCache()

	dir := t.TempDir()
	writeTSV(t, dir, "movie_metadata.tsv", [][]string{
		{"1", "/m/1", "Alpha", "1995-02-10", "", "90", "{}", "{}", `{"/m/01": "Drama"}`},
		{"2", "/m/2", "Beta", "2001", "", "100", "{}", "{}", `{"/m/01": "Drama", "/m/02": "Comedy"}`},
	})
	writeTSV(t, dir, "character_metadata.tsv", [][]string{
		{"1", "/m/1", "", "Captain", "1956-07-09", "M", "1.80", "", "Tom", "", "", "", ""},
		{"1", "/m/1", "", "Doctor", "1956-10-14", "F", "1.70", "", "Rita", "", "", "", ""},
	})

	ds := dataset.NewManager(dataset.Options{DownloadDir: filepath.Dir(dir), ExtractedDir: dir})
	ds.LoadAll()

	h := NewHandler(ds, nil, &config.Config{})

	r := gin.New()
	stats := r.Group("/api/stats")
	{
		stats.GET("/movie-types", h.MovieTypes)
		stats.GET("/actor-counts", h.ActorCounts)
		stats.GET("/actor-heights", h.ActorHeights)
		stats.GET("/genders", h.Genders)
		stats.GET("/releases", h.Releases)
		stats.GET("/births", h.Births)
	}
	return r
}

func doGet(t *testing.T, r *gin.Engine, url string) (*httptest.ResponseRecorder, utils.Response) {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, url, nil)
	r.ServeHTTP(w, req)

	var body utils.Response
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("响应不是合法 JSON: %v", err)
	}
	return w, body
}

func TestMovieTypesEndpoint(t *testing.T) {
	r := newStatsRouter(t)

	w, body := doGet(t, r, "/api/stats/movie-types?n=10")
	if w.Code != http.StatusOK || !body.Success {
		t.Fatalf("状态码 = %d，body = %+v", w.Code, body)
	}

	var counts []dataset.GenreCount
	raw, _ := json.Marshal(body.Data)
	if err := json.Unmarshal(raw, &counts); err != nil {
		t.Fatalf("解析结果失败: %v", err)
	}
	if len(counts) != 2 || counts[0].MovieType != "Drama" || counts[0].Count != 2 {
		t.Errorf("movie-types 结果 = %+v，期望 Drama 居首且计数 2", counts)
	}
}

func TestMovieTypesRejectsNonIntegerN(t *testing.T) {
	r := newStatsRouter(t)

	w, body := doGet(t, r, "/api/stats/movie-types?n=ten")
	if w.Code != http.StatusBadRequest || body.Success {
		t.Errorf("n=ten 状态码 = %d，期望 400", w.Code)
	}

	w, _ = doGet(t, r, "/api/stats/movie-types?n=0")
	if w.Code != http.StatusBadRequest {
		t.Errorf("n=0 状态码 = %d，期望 400", w.Code)
	}
}

func TestActorHeightsEndpoint(t *testing.T) {
	r := newStatsRouter(t)

	w, body := doGet(t, r, "/api/stats/actor-heights?gender=F&min_height=1.5&max_height=2.0")
	if w.Code != http.StatusOK {
		t.Fatalf("状态码 = %d", w.Code)
	}
	var records []dataset.ActorRecord
	raw, _ := json.Marshal(body.Data)
	if err := json.Unmarshal(raw, &records); err != nil {
		t.Fatalf("解析结果失败: %v", err)
	}
	if len(records) != 1 || records[0].ActorName != "Rita" {
		t.Errorf("gender=F 结果 = %+v，期望只有 Rita", records)
	}

	w, _ = doGet(t, r, "/api/stats/actor-heights?min_height=short")
	if w.Code != http.StatusBadRequest {
		t.Errorf("min_height=short 状态码 = %d，期望 400", w.Code)
	}

	w, _ = doGet(t, r, "/api/stats/actor-heights?gender=X")
	if w.Code != http.StatusBadRequest {
		t.Errorf("gender=X 状态码 = %d，期望 400", w.Code)
	}
}

func TestBirthsEndpointReportsResolvedMode(t *testing.T) {
	r := newStatsRouter(t)

	w, body := doGet(t, r, "/api/stats/births?mode=M")
	if w.Code != http.StatusOK {
		t.Fatalf("状态码 = %d", w.Code)
	}
	data, ok := body.Data.(map[string]interface{})
	if !ok || data["mode"] != "M" {
		t.Errorf("births 响应 = %+v，期望 mode=M", body.Data)
	}

	// 无法识别的 mode 静默回退到按年
	w, body = doGet(t, r, "/api/stats/births?mode=weekly")
	if w.Code != http.StatusOK {
		t.Fatalf("mode=weekly 状态码 = %d，期望回退为 200", w.Code)
	}
	if data, ok := body.Data.(map[string]interface{}); !ok || data["mode"] != "Y" {
		t.Errorf("mode=weekly 响应 = %+v，期望回退到 Y", body.Data)
	}
}

func TestStatsEndpointsWithoutDataset(t *testing.T) {
	gin.SetMode(gin.TestMode)

	ds := dataset.NewManager(dataset.Options{DownloadDir: t.TempDir(), ExtractedDir: filepath.Join(t.TempDir(), "missing")})
	ds.LoadAll()
	h := NewHandler(ds, nil, &config.Config{})

	r := gin.New()
	r.GET("/api/stats/movie-types", h.MovieTypes)

	w, body := doGet(t, r, "/api/stats/movie-types")
	if w.Code != http.StatusServiceUnavailable || body.Success {
		t.Errorf("空数据集状态码 = %d，期望 503", w.Code)
	}
}
