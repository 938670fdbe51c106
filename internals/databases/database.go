package database

import (
	"fmt"
	"log"
	"net/url"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"attendance_backend/internals/configs"
	classModel "attendance_backend/internals/features/academics/classes/model"
	subjectModel "attendance_backend/internals/features/academics/subjects/model"
	attendanceModel "attendance_backend/internals/features/attendance/records/model"
	authModel "attendance_backend/internals/features/users/auth/model"
	userModel "attendance_backend/internals/features/users/users/model"
)

var DB *gorm.DB

// DSN membangun connection string. DATABASE_URL menang atas DB_*.
// TimeZone=UTC wajib: kolom date dibandingkan dengan parameter timestamp UTC midnight.
func DSN(cfg *configs.Config) string {
	const opts = "-c statement_timeout=3000 -c TimeZone=UTC"
	if cfg.DatabaseURL != "" {
		u, err := url.Parse(cfg.DatabaseURL)
		if err == nil {
			q := u.Query()
			if q.Get("options") == "" {
				q.Set("options", opts)
			}
			if q.Get("application_name") == "" {
				q.Set("application_name", "attendance")
			}
			u.RawQuery = q.Encode()
			return u.String()
		}
		log.Printf("[WARN] DATABASE_URL tidak bisa di-parse, dipakai apa adanya: %v", err)
		return cfg.DatabaseURL
	}
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&application_name=attendance&options=%s",
		url.QueryEscape(cfg.DBUser),
		url.QueryEscape(cfg.DBPassword),
		cfg.DBHost,
		cfg.DBPort,
		cfg.DBName,
		cfg.DBSSLMode,
		url.QueryEscape(opts),
	)
}

func ConnectDB(cfg *configs.Config) *gorm.DB {
	log.Println("[INFO] Koneksi ke PostgreSQL...")

	level := gormLogger.Warn
	if cfg.Environment == "development" {
		level = gormLogger.Info
	}

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  DSN(cfg),
		PreferSimpleProtocol: true, // cocok untuk PgBouncer (transaction pooling)
	}), &gorm.Config{
		Logger:  configs.NewGormLogger(level),
		NowFunc: func() time.Time { return time.Now().UTC() },
	})
	if err != nil {
		log.Fatalf("[ERROR] Gagal konek DB: %v", err)
	}
	DB = db
	log.Println("[INFO] DB connected.")
	return db
}

func TunePool(db *gorm.DB) {
	sqlDB, err := db.DB()
	if err != nil {
		log.Printf("[WARN] pool tune err: %v", err)
		return
	}
	sqlDB.SetMaxOpenConns(20)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxIdleTime(60 * time.Second)
	sqlDB.SetConnMaxLifetime(10 * time.Minute)
}

func WarmUpQueries(db *gorm.DB) {
	go func() {
		time.Sleep(500 * time.Millisecond) // beri waktu server naik
		if err := Ping(db); err != nil {
			log.Printf("[WARN] warm-up ping err: %v", err)
		}
	}()
}

func Ping(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

// AutoMigrate membuat tabel + unique index (natural key absensi, membership, kode kelas/mapel).
// Urutan penting: tabel yang direferensikan FK dulu.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&userModel.UserModel{},
		&classModel.ClassModel{},
		&subjectModel.SubjectModel{},
		&classModel.UserClassModel{},
		&subjectModel.ClassSubjectModel{},
		&attendanceModel.AttendanceRecordModel{},
		&authModel.TokenBlacklist{},
	)
}
