package repositories

import (
	"testing"
	"time"

	"perkline/internal/database"
	"perkline/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

// CursorRepositorySuite defines the test suite for CursorRepository
type CursorRepositorySuite struct {
	suite.Suite
	db     *database.DB
	repo   CursorRepositoryInterface
	userID uuid.UUID
}

// SetupTest runs before each test in the suite
func (s *CursorRepositorySuite) SetupTest() {
	s.db = database.SetupTestDB(s.T())
	s.repo = NewCursorRepository(s.db.DB)
	s.userID = uuid.New()
}

// TearDownTest runs after each test in the suite
func (s *CursorRepositorySuite) TearDownTest() {
	database.CleanupTestDB(s.T(), s.db)
}

// TestCursorRepositorySuite runs the test suite
func TestCursorRepositorySuite(t *testing.T) {
	suite.Run(t, new(CursorRepositorySuite))
}

func (s *CursorRepositorySuite) TestGet_NeverScanned() {
	cursor, err := s.repo.Get(s.userID)
	s.NoError(err)
	s.Nil(cursor)
}

func (s *CursorRepositorySuite) TestAdvance_CreatesCursor() {
	key := models.ScanKey{
		PostedAt:      time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC),
		TransactionID: uuid.New(),
	}

	err := s.repo.Advance(s.userID, key)
	s.NoError(err)

	cursor, err := s.repo.Get(s.userID)
	s.NoError(err)
	s.NotNil(cursor)
	s.True(key.PostedAt.Equal(cursor.LastPostedAt))
	s.Equal(key.TransactionID, cursor.LastTransactionID)
}

func (s *CursorRepositorySuite) TestAdvance_Forward() {
	first := models.ScanKey{
		PostedAt:      time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		TransactionID: uuid.New(),
	}
	second := models.ScanKey{
		PostedAt:      time.Date(2024, 6, 2, 0, 0, 0, 0, time.UTC),
		TransactionID: uuid.New(),
	}

	s.NoError(s.repo.Advance(s.userID, first))
	s.NoError(s.repo.Advance(s.userID, second))

	cursor, err := s.repo.Get(s.userID)
	s.NoError(err)
	s.True(second.PostedAt.Equal(cursor.LastPostedAt))
}

func (s *CursorRepositorySuite) TestAdvance_RejectsBackwards() {
	newer := models.ScanKey{
		PostedAt:      time.Date(2024, 6, 2, 0, 0, 0, 0, time.UTC),
		TransactionID: uuid.New(),
	}
	older := models.ScanKey{
		PostedAt:      time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		TransactionID: uuid.New(),
	}

	s.NoError(s.repo.Advance(s.userID, newer))

	err := s.repo.Advance(s.userID, older)
	s.ErrorIs(err, ErrCursorRegression)

	cursor, err := s.repo.Get(s.userID)
	s.NoError(err)
	s.True(newer.PostedAt.Equal(cursor.LastPostedAt))
}

func (s *CursorRepositorySuite) TestAdvance_RejectsSameKey() {
	key := models.ScanKey{
		PostedAt:      time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		TransactionID: uuid.New(),
	}

	s.NoError(s.repo.Advance(s.userID, key))
	s.ErrorIs(s.repo.Advance(s.userID, key), ErrCursorRegression)
}

func (s *CursorRepositorySuite) TestReset_MovesBackwards() {
	newer := models.ScanKey{
		PostedAt:      time.Date(2024, 6, 2, 0, 0, 0, 0, time.UTC),
		TransactionID: uuid.New(),
	}
	older := models.ScanKey{
		PostedAt:      time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		TransactionID: uuid.New(),
	}

	s.NoError(s.repo.Advance(s.userID, newer))
	s.NoError(s.repo.Reset(s.userID, older))

	cursor, err := s.repo.Get(s.userID)
	s.NoError(err)
	s.True(older.PostedAt.Equal(cursor.LastPostedAt))
	s.Equal(older.TransactionID, cursor.LastTransactionID)
}
