package configs

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"kompetensi_backend/internals/helpers/logger"
)

// =======================
// ENV LOADER
// =======================
func LoadEnv() {
	log := logger.Default()
	if os.Getenv("RAILWAY_ENVIRONMENT") == "" {
		if err := godotenv.Load(); err != nil {
			log.Info("⚠️ Tidak menemukan .env file, menggunakan ENV dari sistem")
		} else {
			log.Info("✅ .env file berhasil dimuat!")
		}
	} else {
		log.Info("🚀 Running in Railway, menggunakan ENV dari sistem")
	}
}

func GetEnv(key string, defaultValue ...string) string {
	value, exists := os.LookupEnv(key)
	if !exists && len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return value
}

func GetEnvInt(key string, def int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func GetEnvBool(key string, def bool) bool {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}

func GetEnvDuration(key string, def time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return d
}

func GetEnvList(key string, def ...string) []string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	out := make([]string, 0)
	for _, p := range strings.Split(v, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// =======================
// APP CONFIG
// =======================
type DBConfig struct {
	Driver      string // postgres | sqlite
	SQLitePath  string
	User        string
	Password    string
	Host        string
	Port        string
	Name        string
	SSLMode     string
	AppName     string
	AutoMigrate bool
	LogLevel    string
}

type JWTConfig struct {
	Secret   string
	TTL      time.Duration
	Issuer   string
	Audience string
}

type StorageConfig struct {
	Driver string // supabase | s3 | oss | memory
	Bucket string
	Public bool

	// supabase REST
	SupabaseURL string
	ServiceKey  string

	// s3-compatible (termasuk endpoint S3 milik Supabase)
	S3Endpoint  string
	S3Region    string
	S3AccessKey string
	S3SecretKey string
	S3PublicURL string

	// aliyun oss
	OSSEndpoint        string
	OSSAccessKeyID     string
	OSSAccessKeySecret string
}

type HelpConfig struct {
	MaxFileMB       int
	ThumbnailMaxW   int
	ThumbnailMaxH   int
	ThumbnailQ      float32
	AllowedDocTypes []string
}

type ReaperConfig struct {
	Enabled  bool
	Schedule string
	Grace    time.Duration
	DryRun   bool
}

type AppConfig struct {
	Env                 string
	Port                string
	LogLevel            string
	LogPretty           bool
	CORSOrigins         []string
	RequestTimeout      time.Duration
	PasswordMinLen      int
	StrictCompetencyRef bool
	SeedOnStart         bool
	SeedDir             string
	CookieSecure        bool
	BlacklistCleanup    time.Duration

	DB      DBConfig
	JWT     JWTConfig
	Storage StorageConfig
	Help    HelpConfig
	Reaper  ReaperConfig
}

// Load membaca seluruh konfigurasi dari ENV. Panggil setelah LoadEnv.
func Load() AppConfig {
	return AppConfig{
		Env:                 GetEnv("APP_ENV", "development"),
		Port:                GetEnv("PORT", "3000"),
		LogLevel:            GetEnv("LOG_LEVEL", "info"),
		LogPretty:           GetEnvBool("LOG_PRETTY", false),
		CORSOrigins:         GetEnvList("CORS_ORIGINS", "http://localhost:5173", "http://localhost:3000"),
		RequestTimeout:      GetEnvDuration("REQUEST_TIMEOUT", 5*time.Second),
		PasswordMinLen:      GetEnvInt("PASSWORD_MIN_LEN", 6),
		StrictCompetencyRef: GetEnvBool("INDICATOR_STRICT_COMPETENCY_REF", false),
		SeedOnStart:         GetEnvBool("SEED_ON_START", false),
		SeedDir:             GetEnv("SEED_DIR", "internals/seeds/data"),
		CookieSecure:        GetEnvBool("COOKIE_SECURE", GetEnv("APP_ENV", "development") == "production"),
		BlacklistCleanup:    GetEnvDuration("BLACKLIST_CLEANUP_INTERVAL", 24*time.Hour),

		DB: DBConfig{
			Driver:      strings.ToLower(GetEnv("DB_DRIVER", "postgres")),
			SQLitePath:  GetEnv("DB_SQLITE_PATH", "kompetensi.db"),
			User:        GetEnv("DB_USER"),
			Password:    GetEnv("DB_PASSWORD"),
			Host:        GetEnv("DB_HOST"),
			Port:        GetEnv("DB_PORT", "5432"),
			Name:        GetEnv("DB_NAME", "postgres"),
			SSLMode:     GetEnv("DB_SSLMODE", "require"),
			AppName:     GetEnv("DB_APP_NAME", "kompetensi"),
			AutoMigrate: GetEnvBool("DB_AUTO_MIGRATE", false),
			LogLevel:    GetEnv("DB_LOG_LEVEL", "warn"),
		},
		JWT: JWTConfig{
			Secret:   GetEnv("JWT_SECRET"),
			TTL:      GetEnvDuration("JWT_TTL", 12*time.Hour),
			Issuer:   GetEnv("JWT_ISSUER", "kompetensi"),
			Audience: GetEnv("JWT_AUDIENCE", "authenticated"),
		},
		Storage: StorageConfig{
			Driver:             strings.ToLower(GetEnv("STORAGE_DRIVER", "supabase")),
			Bucket:             GetEnv("STORAGE_BUCKET", "help-center"),
			Public:             GetEnvBool("STORAGE_PUBLIC", true),
			SupabaseURL:        strings.TrimRight(GetEnv("SUPABASE_URL"), "/"),
			ServiceKey:         GetEnv("SUPABASE_SERVICE_KEY"),
			S3Endpoint:         GetEnv("S3_ENDPOINT"),
			S3Region:           GetEnv("S3_REGION", "ap-southeast-1"),
			S3AccessKey:        GetEnv("S3_ACCESS_KEY_ID"),
			S3SecretKey:        GetEnv("S3_SECRET_ACCESS_KEY"),
			S3PublicURL:        strings.TrimRight(GetEnv("S3_PUBLIC_URL"), "/"),
			OSSEndpoint:        GetEnv("ALI_OSS_ENDPOINT"),
			OSSAccessKeyID:     GetEnv("ALI_OSS_ACCESS_KEY"),
			OSSAccessKeySecret: GetEnv("ALI_OSS_SECRET_KEY"),
		},
		Help: HelpConfig{
			MaxFileMB:     GetEnvInt("HELP_MAX_FILE_MB", 10),
			ThumbnailMaxW: GetEnvInt("THUMBNAIL_MAX_W", 1280),
			ThumbnailMaxH: GetEnvInt("THUMBNAIL_MAX_H", 720),
			ThumbnailQ:    float32(GetEnvInt("THUMBNAIL_QUALITY", 82)),
			AllowedDocTypes: GetEnvList("HELP_ALLOWED_DOC_TYPES",
				"pdf", "doc", "docx", "xls", "xlsx", "ppt", "pptx", "txt", "png", "jpg", "jpeg"),
		},
		Reaper: ReaperConfig{
			Enabled:  GetEnvBool("REAPER_ENABLED", true),
			Schedule: GetEnv("REAPER_SCHEDULE", "15 2 * * *"),
			Grace:    time.Duration(GetEnvInt("REAPER_GRACE_HOURS", 24)) * time.Hour,
			DryRun:   GetEnvBool("REAPER_DRY_RUN", false),
		},
	}
}

// Validate mengecek kombinasi konfigurasi wajib. Dikembalikan sebagai daftar
// pesan supaya main bisa log semuanya sekaligus.
func (c AppConfig) Validate() []string {
	var problems []string
	if c.JWT.Secret == "" {
		problems = append(problems, "JWT_SECRET belum diset")
	}
	if c.DB.Driver == "postgres" && c.DB.Host == "" {
		problems = append(problems, "DB_HOST belum diset")
	}
	switch c.Storage.Driver {
	case "supabase":
		if c.Storage.SupabaseURL == "" || c.Storage.ServiceKey == "" {
			problems = append(problems, "SUPABASE_URL / SUPABASE_SERVICE_KEY belum diset")
		}
	case "s3":
		if c.Storage.S3Endpoint == "" || c.Storage.S3AccessKey == "" || c.Storage.S3SecretKey == "" {
			problems = append(problems, "S3_ENDPOINT / S3_ACCESS_KEY_ID / S3_SECRET_ACCESS_KEY belum diset")
		}
	case "oss":
		if c.Storage.OSSEndpoint == "" || c.Storage.OSSAccessKeyID == "" || c.Storage.OSSAccessKeySecret == "" {
			problems = append(problems, "ALI_OSS_ENDPOINT / ALI_OSS_ACCESS_KEY / ALI_OSS_SECRET_KEY belum diset")
		}
	case "memory":
	default:
		problems = append(problems, "STORAGE_DRIVER tidak dikenal: "+c.Storage.Driver)
	}
	return problems
}
