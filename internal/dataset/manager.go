package dataset

import (
	"archive/tar"
	"compress/gzip"
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"
)

// Options 数据集管理器配置
type Options struct {
	BaseURL      string        // 压缩包所在远程目录
	Filename     string        // 压缩包文件名
	DownloadDir  string        // 压缩包保存目录（也是解压的父目录）
	ExtractedDir string        // 解压后的数据目录
	Timeout      time.Duration // 下载超时，默认 60 秒
}

// Manager 数据集管理器。
// 负责下载、解压、按文件加载内存表，并提供聚合查询。
// 表集合在 Bootstrap 时填充一次，之后只读；Reload 持写锁重建。
type Manager struct {
	opts   Options
	client *http.Client

	mu     sync.RWMutex
	tables map[string]*Table
}

// NewManager 创建数据集管理器
func NewManager(opts Options) *Manager {
	if opts.Timeout <= 0 {
		opts.Timeout = 60 * time.Second
	}
	return &Manager{
		opts:   opts,
		client: &http.Client{Timeout: opts.Timeout},
		tables: make(map[string]*Table),
	}
}

// ArchivePath 压缩包本地路径
func (m *Manager) ArchivePath() string {
	return filepath.Join(m.opts.DownloadDir, m.opts.Filename)
}

// Bootstrap 执行完整流程：下载（如缺失）-> 解压（如缺失）-> 加载全部数据表。
// 下载或解压失败只记录日志不中断：后续加载发现目录缺失时得到空数据集，
// 由各聚合方法自己的前置检查兜底。
func (m *Manager) Bootstrap() {
	if err := os.MkdirAll(m.opts.DownloadDir, 0o755); err != nil {
		log.Printf("[Dataset] 创建下载目录失败: %v", err)
	}
	m.EnsureLocalCopy()
	m.EnsureExtracted()
	m.LoadAll()
}

// Reload 重新执行完整流程（管理接口触发）
func (m *Manager) Reload() {
	m.Bootstrap()
}

// EnsureLocalCopy 确保压缩包存在于本地，缺失时流式下载（内存占用有界）
func (m *Manager) EnsureLocalCopy() {
	path := m.ArchivePath()
	if _, err := os.Stat(path); err == nil {
		return
	}

	url := m.opts.BaseURL + m.opts.Filename
	log.Printf("[Dataset] 开始下载 %s ...", url)

	resp, err := m.client.Get(url)
	if err != nil {
		log.Printf("[Dataset] 下载失败: %v", err)
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		log.Printf("[Dataset] 下载失败，状态码: %d", resp.StatusCode)
		return
	}

	tmp := path + ".part"
	file, err := os.Create(tmp)
	if err != nil {
		log.Printf("[Dataset] 创建文件失败: %v", err)
		return
	}

	if _, err := io.Copy(file, resp.Body); err != nil {
		file.Close()
		os.Remove(tmp)
		log.Printf("[Dataset] 写入压缩包失败: %v", err)
		return
	}
	file.Close()

	if err := os.Rename(tmp, path); err != nil {
		log.Printf("[Dataset] 重命名压缩包失败: %v", err)
		return
	}
	log.Println("[Dataset] 下载完成")
}

// EnsureExtracted 确保压缩包已解压，目录缺失时解包到下载目录下
func (m *Manager) EnsureExtracted() {
	if _, err := os.Stat(m.opts.ExtractedDir); err == nil {
		return
	}

	log.Println("[Dataset] 开始解压数据集...")
	if err := m.extract(); err != nil {
		log.Printf("[Dataset] 解压失败: %v", err)
		return
	}
	log.Println("[Dataset] 解压完成")
}

func (m *Manager) extract() error {
	file, err := os.Open(m.ArchivePath())
	if err != nil {
		return fmt.Errorf("打开压缩包失败: %w", err)
	}
	defer file.Close()

	gz, err := gzip.NewReader(file)
	if err != nil {
		return fmt.Errorf("读取 gzip 失败: %w", err)
	}
	defer gz.Close()

	tr := tar.NewReader(gz)
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("读取 tar 失败: %w", err)
		}

		// 防御路径穿越
		target := filepath.Join(m.opts.DownloadDir, filepath.Clean(hdr.Name))
		if !strings.HasPrefix(target, filepath.Clean(m.opts.DownloadDir)+string(os.PathSeparator)) {
			continue
		}

		switch hdr.Typeflag {
		case tar.TypeDir:
			if err := os.MkdirAll(target, 0o755); err != nil {
				return err
			}
		case tar.TypeReg:
			if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
				return err
			}
			out, err := os.Create(target)
			if err != nil {
				return err
			}
			if _, err := io.Copy(out, tr); err != nil {
				out.Close()
				return err
			}
			out.Close()
		}
	}
}

// LoadAll 扫描解压目录，把每个 .tsv/.txt 文件加载为一张内存表。
// 单个文件解析失败只跳过该表；目录缺失记录日志并得到空数据集。
func (m *Manager) LoadAll() {
	tables := make(map[string]*Table)

	entries, err := os.ReadDir(m.opts.ExtractedDir)
	if err != nil {
		log.Printf("[Dataset] 解压目录不存在: %v", err)
		m.mu.Lock()
		m.tables = tables
		m.mu.Unlock()
		return
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := filepath.Ext(entry.Name())
		if ext != ".tsv" && ext != ".txt" {
			continue
		}

		t, err := m.loadFile(filepath.Join(m.opts.ExtractedDir, entry.Name()))
		if err != nil {
			log.Printf("[Dataset] 加载 %s 失败: %v", entry.Name(), err)
			continue
		}
		tables[t.Name] = t
		log.Printf("[Dataset] 已加载数据表 %s（%d 行）", t.Name, len(t.Rows))
	}

	m.mu.Lock()
	m.tables = tables
	m.mu.Unlock()
}

// loadFile 把单个制表符分隔、无表头的文件解析成 Table。
// 表名取文件基本名（去扩展名，点转下划线），命中已识别数据集时按位置赋列名。
func (m *Manager) loadFile(path string) (*Table, error) {
	base := filepath.Base(path)
	name := strings.TrimSuffix(base, filepath.Ext(base))
	name = strings.ReplaceAll(name, ".", "_")

	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.Comma = '\t'
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	var rows [][]string
	var badLines int
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			// 行级容错：坏行跳过，不放弃整个文件
			badLines++
			continue
		}
		row := make([]string, len(rec))
		copy(row, rec)
		rows = append(rows, row)
	}
	if badLines > 0 {
		log.Printf("[Dataset] %s 跳过 %d 个无法解析的行", base, badLines)
	}

	t := &Table{Name: name, Rows: rows}
	if cols, ok := RecognizedSchema(name); ok {
		t.Columns = cols
	}
	return t, nil
}

// Table 按名称取数据表，不存在返回 nil
func (m *Manager) Table(name string) *Table {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.tables[name]
}

// TableNames 返回已加载的数据表名（排序后）
func (m *Manager) TableNames() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.tableNamesLocked()
}

// TableInfo 数据表概况
type TableInfo struct {
	Name    string `json:"name"`
	Rows    int    `json:"rows"`
	Columns int    `json:"columns"`
}

// Status 数据集状态
type Status struct {
	ArchiveExists   bool        `json:"archive_exists"`
	ExtractedExists bool        `json:"extracted_exists"`
	Tables          []TableInfo `json:"tables"`
}

// Status 返回当前数据集状态（管理页展示用）
func (m *Manager) Status() Status {
	var s Status
	if _, err := os.Stat(m.ArchivePath()); err == nil {
		s.ArchiveExists = true
	}
	if _, err := os.Stat(m.opts.ExtractedDir); err == nil {
		s.ExtractedExists = true
	}

	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, name := range m.tableNamesLocked() {
		t := m.tables[name]
		cols := len(t.Columns)
		if cols == 0 && len(t.Rows) > 0 {
			cols = len(t.Rows[0])
		}
		s.Tables = append(s.Tables, TableInfo{Name: name, Rows: len(t.Rows), Columns: cols})
	}
	return s
}

func (m *Manager) tableNamesLocked() []string {
	names := make([]string, 0, len(m.tables))
	for name := range m.tables {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
