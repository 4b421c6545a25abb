package service_test

import (
	"testing"
	"time"

	"go-stock-tracker/internal/model"
	"go-stock-tracker/internal/repository"
	"go-stock-tracker/internal/service"
	"go-stock-tracker/pkg/config"
	"go-stock-tracker/pkg/database"
	"go-stock-tracker/pkg/jwt"
	"go-stock-tracker/pkg/logger"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	// A single connection keeps every session on the same in-memory DB.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.Migrate(db))
	return db
}

type testEnv struct {
	db       *gorm.DB
	products service.ProductService
	stock    service.StockService
	reports  service.ReportService
	auth     service.AuthService
	users    repository.UserRepository
	tokens   *jwt.Manager
}

func newEnv(t *testing.T, strictDelete bool) *testEnv {
	t.Helper()

	db := newTestDB(t)
	log := logger.New(logger.Config{Env: "development", Level: "error"})

	productRepo := repository.NewProductRepo(db)
	stockInRepo := repository.NewStockInRepo(db)
	stockOutRepo := repository.NewStockOutRepo(db)
	reportRepo := repository.NewReportRepo(db)
	userRepo := repository.NewUserRepo(db)
	tokens := newTestTokens()

	return &testEnv{
		db:       db,
		products: service.NewProductService(db, productRepo, nil, log),
		stock:    service.NewStockService(db, productRepo, stockInRepo, stockOutRepo, nil, log, strictDelete),
		reports:  service.NewReportService(reportRepo),
		auth:     service.NewAuthService(userRepo, tokens, log),
		users:    userRepo,
		tokens:   tokens,
	}
}

func newTestTokens() *jwt.Manager {
	return jwt.NewManager(config.JWTConfig{
		Secret:          "test-secret",
		ExpirationHours: 1,
		Issuer:          "go-stock-tracker-test",
	})
}

func newTestEnv(t *testing.T) *testEnv {
	return newEnv(t, false)
}

func newStrictEnv(t *testing.T) *testEnv {
	return newEnv(t, true)
}

func createProduct(t *testing.T, env *testEnv, name string, quantity int) *model.Product {
	t.Helper()
	p, err := env.products.Create(name, quantity, "tester")
	require.NoError(t, err)
	return p
}

func (env *testEnv) reload(t *testing.T, p *model.Product) *model.Product {
	t.Helper()
	fresh, err := env.products.Get(p.ID)
	require.NoError(t, err)
	return fresh
}

// backdate rewrites a movement's date directly, for windowed report tests.
func (env *testEnv) backdate(t *testing.T, mdl interface{}, id uuid.UUID, date time.Time) {
	t.Helper()
	require.NoError(t, env.db.Model(mdl).Where("id = ?", id).Update("date", date).Error)
}

func (env *testEnv) countRows(t *testing.T, mdl interface{}) int64 {
	t.Helper()
	var n int64
	require.NoError(t, env.db.Model(mdl).Count(&n).Error)
	return n
}
