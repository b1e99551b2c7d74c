package database

import (
	"fmt"
	"log"
	"os"
	"sync"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	configModel "iglesiamqv_backend/internals/features/config/model"
	mediaModel "iglesiamqv_backend/internals/features/media/model"
	userModel "iglesiamqv_backend/internals/features/users/user/model"
)

// Store encapsula la conexión y su disponibilidad. Se inyecta explícitamente
// en cada controlador; ningún handler consulta estado global. Cuando DB es
// nil (o el ping falla) la aplicación opera en modo demostración.
type Store struct {
	DB *gorm.DB

	mu       sync.Mutex
	lastPing time.Time
	lastOK   bool
}

// NewStore envuelve una conexión ya abierta (tests).
func NewStore(db *gorm.DB) *Store {
	return &Store{DB: db}
}

// Connect abre la conexión a PostgreSQL. Un fallo NO es fatal: se devuelve
// un Store sin conexión y el servidor sigue en modo demostración.
func Connect() *Store {
	log.Println("🔌 Conectando a PostgreSQL...")

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		sslmode := getenv("DB_SSLMODE", "require")
		dsn = fmt.Sprintf(
			"postgres://%s:%s@%s:%s/%s?sslmode=%s&application_name=iglesiamqv&options=-c statement_timeout=3000",
			os.Getenv("DB_USER"),
			os.Getenv("DB_PASSWORD"),
			os.Getenv("DB_HOST"),
			os.Getenv("DB_PORT"),
			os.Getenv("DB_NAME"),
			sslmode,
		)
	}

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  dsn,
		PreferSimpleProtocol: true, // compatible con PgBouncer (transaction pooling)
	}), &gorm.Config{})
	if err != nil {
		log.Printf("❌ Error conectando a PostgreSQL: %v", err)
		return &Store{}
	}
	log.Println("✅ DB conectada.")
	return &Store{DB: db}
}

// Available reporta si la base de datos responde. El ping se cachea unos
// segundos para no golpear la conexión en cada request.
func (s *Store) Available() bool {
	if s == nil || s.DB == nil {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if time.Since(s.lastPing) < 5*time.Second {
		return s.lastOK
	}
	s.lastPing = time.Now()
	sqlDB, err := s.DB.DB()
	if err != nil {
		s.lastOK = false
		return false
	}
	s.lastOK = sqlDB.Ping() == nil
	return s.lastOK
}

func (s *Store) Close() {
	if s == nil || s.DB == nil {
		return
	}
	if sqlDB, err := s.DB.DB(); err == nil {
		_ = sqlDB.Close()
	}
}

func TunePool(s *Store) {
	sqlDB, err := s.DB.DB()
	if err != nil {
		log.Printf("pool tune err: %v", err)
		return
	}
	sqlDB.SetMaxOpenConns(20)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxIdleTime(60 * time.Second)
	sqlDB.SetConnMaxLifetime(10 * time.Minute)
}

// Migrate crea/actualiza las tablas del dominio.
func Migrate(s *Store) error {
	return s.DB.AutoMigrate(
		&userModel.UserModel{},
		&mediaModel.MediaModel{},
		&configModel.ConfiguracionModel{},
	)
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
