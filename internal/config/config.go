package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Config 应用配置
type Config struct {
	Env       string
	AppSecret string
	Port      string
	SiteName  string
	SiteUrl   string

	// 数据集相关配置
	DatasetBaseURL  string // 数据集下载地址（目录）
	DatasetFilename string // 压缩包文件名
	DownloadDir     string // 压缩包保存目录
	ExtractedDir    string // 解压后的数据目录

	// 数据库（可选，仅用于分类历史记录）
	DatabaseURL string

	// LLM 相关配置
	OllamaHost       string
	OllamaChatModel  string
	OllamaEmbedModel string
	GeminiAPIKey     string
	GeminiModel      string

	// 管理员账号
	AdminUser     string
	AdminPassword string
}

// Load 加载配置
func Load() *Config {
	dbURL := getEnv("DATABASE_URL", "")
	if dbURL == "" && getEnv("DB_HOST", "") != "" {
		dbUser := getEnv("DB_USER", "postgres")
		dbPass := getEnv("DB_PASSWORD", "postgres")
		dbHost := getEnv("DB_HOST", "localhost")
		dbPort := getEnv("DB_PORT", "5432")
		dbName := getEnv("DB_NAME", "cinesight")
		dbSSL := getEnv("DB_SSLMODE", "disable")

		dbURL = fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
			dbUser, dbPass, dbHost, dbPort, dbName, dbSSL)
	}

	appSecret := getEnv("APP_SECRET", "your-secret-key-change-in-production")
	if getEnv("APP_ENV", "development") == "production" && appSecret == "your-secret-key-change-in-production" {
		fmt.Println("【严重警告】生产环境正在使用默认密钥！请立即设置 APP_SECRET 环境变量。")
	}

	downloadDir := getEnv("DATASET_DOWNLOAD_DIR", "downloads")
	filename := getEnv("DATASET_FILENAME", "MovieSummaries.tar.gz")

	// 解压目录默认按压缩包名推断（MovieSummaries.tar.gz -> downloads/MovieSummaries）
	extracted := getEnv("DATASET_EXTRACTED_DIR", "")
	if extracted == "" {
		base := strings.TrimSuffix(filename, ".tar.gz")
		base = strings.TrimSuffix(base, ".tgz")
		extracted = filepath.Join(downloadDir, base)
	}

	return &Config{
		Env:       getEnv("APP_ENV", "development"),
		AppSecret: appSecret,
		Port:      getEnv("PORT", "5008"),
		SiteName:  getEnv("SITE_NAME", "CineSight"),
		SiteUrl:   getEnv("SITE_URL", "http://localhost:5008"),

		DatasetBaseURL:  getEnv("DATASET_BASE_URL", "http://www.cs.cmu.edu/~ark/personas/data/"),
		DatasetFilename: filename,
		DownloadDir:     downloadDir,
		ExtractedDir:    extracted,

		DatabaseURL: dbURL,

		OllamaHost:       getEnv("OLLAMA_HOST", "http://localhost:11434"),
		OllamaChatModel:  getEnv("OLLAMA_CHAT_MODEL", "mistral"),
		OllamaEmbedModel: getEnv("OLLAMA_EMBED_MODEL", "nomic-embed-text"),
		GeminiAPIKey:     getEnv("GEMINI_API_KEY", ""),
		GeminiModel:      getEnv("GEMINI_MODEL", "gemini-2.0-flash"),

		AdminUser:     getEnv("ADMIN_USER", "admin"),
		AdminPassword: getEnv("ADMIN_PASSWORD", ""),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
