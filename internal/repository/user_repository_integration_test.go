package repository

import (
	"context"
	"log"
	"os"
	"testing"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/HarshChauhan111/stream-sync-lite/internal/model"
	_ "github.com/HarshChauhan111/stream-sync-lite/migrations"
)

type UserRepositoryIntegrationTestSuite struct {
	suite.Suite
	db   *sqlx.DB
	repo UserRepository
	pgc  *postgres.PostgresContainer
	ctx  context.Context
}

func (s *UserRepositoryIntegrationTestSuite) SetupSuite() {
	s.ctx = context.Background()

	pgc, err := postgres.Run(s.ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("test-db"),
		postgres.WithUsername("user"),
		postgres.WithPassword("password"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(5*time.Second),
		),
	)
	if err != nil {
		log.Fatalf("could not start postgres container: %s", err)
	}
	s.pgc = pgc

	connStr, err := pgc.ConnectionString(s.ctx, "sslmode=disable")
	assert.NoError(s.T(), err)

	db, err := sqlx.Connect("pgx", connStr)
	assert.NoError(s.T(), err)
	s.db = db

	err = goose.SetDialect("postgres")
	assert.NoError(s.T(), err)
	err = goose.Up(db.DB, "../../migrations")
	assert.NoError(s.T(), err)

	s.repo = NewPostgresUserRepository(s.db)
}

func (s *UserRepositoryIntegrationTestSuite) TearDownSuite() {
	s.db.Close()
	if err := s.pgc.Terminate(s.ctx); err != nil {
		log.Fatalf("failed to terminate pg container: %s", err)
	}
}

func (s *UserRepositoryIntegrationTestSuite) TestUserRepository_CreateAndFindByEmail() {
	// Arrange
	testEmail := "integration@test.com"
	user := &model.User{
		Name:         "Integration Test User",
		Email:        testEmail,
		PasswordHash: "hashed_password",
		Role:         model.RoleUser,
	}

	// Act: Create new user
	err := s.repo.Create(s.ctx, user)

	// Assert: Make sure user created successfully
	assert.NoError(s.T(), err)
	assert.NotZero(s.T(), user.ID)

	// Act: Find user by email
	foundUser, err := s.repo.FindByEmail(s.ctx, testEmail)

	// Assert: Make sure user found successfully
	assert.NoError(s.T(), err)
	assert.NotNil(s.T(), foundUser)
	assert.Equal(s.T(), user.ID, foundUser.ID)
	assert.Equal(s.T(), testEmail, foundUser.Email)
}

func (s *UserRepositoryIntegrationTestSuite) TestUserRepository_DuplicateEmailRejected() {
	user := &model.User{
		Name:         "First",
		Email:        "dup@test.com",
		PasswordHash: "hash",
		Role:         model.RoleUser,
	}
	assert.NoError(s.T(), s.repo.Create(s.ctx, user))

	dup := &model.User{
		Name:         "Second",
		Email:        "dup@test.com",
		PasswordHash: "other-hash",
		Role:         model.RoleUser,
	}
	err := s.repo.Create(s.ctx, dup)
	assert.Error(s.T(), err)
}

func (s *UserRepositoryIntegrationTestSuite) TestUserRepository_FindByEmail_NotFound() {
	// Act
	foundUser, err := s.repo.FindByEmail(s.ctx, "nonexistent@test.com")

	// Assert
	assert.NoError(s.T(), err)
	assert.Nil(s.T(), foundUser)
}

func TestUserRepositoryIntegration(t *testing.T) {
	if os.Getenv("DOCKER_HOST") == "" {
		t.Skip("Docker is not available, skipping integration test.")
	}
	suite.Run(t, new(UserRepositoryIntegrationTestSuite))
}
