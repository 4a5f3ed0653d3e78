package service

import (
	"context"
	"time"

	"grower/events"
	"grower/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockUserRepository is a mock implementation of UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Get(ctx context.Context, userID int64) (*models.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetForUpdate(ctx context.Context, userID int64) (*models.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) Create(ctx context.Context, userID int64, username string) (*models.User, error) {
	args := m.Called(ctx, userID, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) UpdateUsername(ctx context.Context, userID int64, username string) error {
	args := m.Called(ctx, userID, username)
	return args.Error(0)
}

func (m *MockUserRepository) ApplyGrowth(ctx context.Context, userID int64, growth int64, day time.Time) (*models.User, error) {
	args := m.Called(ctx, userID, growth, day)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) ApplyChallengeOutcome(ctx context.Context, userID int64, delta int64, won bool) (*models.User, error) {
	args := m.Called(ctx, userID, delta, won)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) AddLength(ctx context.Context, userID int64, amount int64) (*models.User, error) {
	args := m.Called(ctx, userID, amount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) Leaderboard(ctx context.Context, limit int) ([]*models.User, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.User), args.Error(1)
}

// MockQuestRepository is a mock implementation of QuestRepository
type MockQuestRepository struct {
	mock.Mock
}

func (m *MockQuestRepository) GetActive(ctx context.Context) ([]*models.Quest, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Quest), args.Error(1)
}

func (m *MockQuestRepository) GetActiveByType(ctx context.Context, questType models.QuestType) ([]*models.Quest, error) {
	args := m.Called(ctx, questType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Quest), args.Error(1)
}

func (m *MockQuestRepository) InsertIfAbsent(ctx context.Context, quests []*models.Quest) (int, error) {
	args := m.Called(ctx, quests)
	return args.Int(0), args.Error(1)
}

// MockUserQuestRepository is a mock implementation of UserQuestRepository
type MockUserQuestRepository struct {
	mock.Mock
}

func (m *MockUserQuestRepository) GetByUser(ctx context.Context, userID int64) ([]*models.UserQuestProgress, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.UserQuestProgress), args.Error(1)
}

func (m *MockUserQuestRepository) GetForUpdate(ctx context.Context, userID, questID int64) (*models.UserQuestProgress, error) {
	args := m.Called(ctx, userID, questID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.UserQuestProgress), args.Error(1)
}

func (m *MockUserQuestRepository) Create(ctx context.Context, progress *models.UserQuestProgress) error {
	args := m.Called(ctx, progress)
	return args.Error(0)
}

func (m *MockUserQuestRepository) Update(ctx context.Context, progress *models.UserQuestProgress) error {
	args := m.Called(ctx, progress)
	return args.Error(0)
}

// MockChallengeRepository is a mock implementation of ChallengeRepository
type MockChallengeRepository struct {
	mock.Mock
}

func (m *MockChallengeRepository) Create(ctx context.Context, record *models.ChallengeRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockChallengeRepository) GetByID(ctx context.Context, challengeID int64) (*models.ChallengeRecord, error) {
	args := m.Called(ctx, challengeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ChallengeRecord), args.Error(1)
}

func (m *MockChallengeRepository) ListByUser(ctx context.Context, userID int64, limit int) ([]*models.ChallengeRecord, error) {
	args := m.Called(ctx, userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.ChallengeRecord), args.Error(1)
}

// MockProposalRepository is a mock implementation of ProposalRepository
type MockProposalRepository struct {
	mock.Mock
}

func (m *MockProposalRepository) Create(ctx context.Context, proposal *models.ChallengeProposal) error {
	args := m.Called(ctx, proposal)
	return args.Error(0)
}

func (m *MockProposalRepository) GetForUpdate(ctx context.Context, token uuid.UUID) (*models.ChallengeProposal, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ChallengeProposal), args.Error(1)
}

func (m *MockProposalRepository) Update(ctx context.Context, proposal *models.ChallengeProposal) error {
	args := m.Called(ctx, proposal)
	return args.Error(0)
}

// MockGroupSettingsRepository is a mock implementation of GroupSettingsRepository
type MockGroupSettingsRepository struct {
	mock.Mock
}

func (m *MockGroupSettingsRepository) GetOrCreate(ctx context.Context, groupName string) (*models.GroupSettings, error) {
	args := m.Called(ctx, groupName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.GroupSettings), args.Error(1)
}

func (m *MockGroupSettingsRepository) Update(ctx context.Context, settings *models.GroupSettings) error {
	args := m.Called(ctx, settings)
	return args.Error(0)
}

// MockEventPublisher is a mock implementation of EventPublisher
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(event events.Event) {
	m.Called(event)
}

// MockProgressRecorder is a mock implementation of ProgressRecorder
type MockProgressRecorder struct {
	mock.Mock
}

func (m *MockProgressRecorder) RecordProgress(ctx context.Context, userID, groupID int64, questType models.QuestType, value int64) ([]models.QuestCompletion, error) {
	args := m.Called(ctx, userID, groupID, questType, value)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.QuestCompletion), args.Error(1)
}

// MockUnitOfWork is a mock implementation of UnitOfWork. Transaction calls
// go through mock.Mock; repositories are plain fields set by the test.
type MockUnitOfWork struct {
	mock.Mock
	UserRepo      UserRepository
	QuestRepo     QuestRepository
	UserQuestRepo UserQuestRepository
	ChallengeRepo ChallengeRepository
	ProposalRepo  ProposalRepository
	SettingsRepo  GroupSettingsRepository
	Publisher     EventPublisher
}

func (m *MockUnitOfWork) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUnitOfWork) Commit() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockUnitOfWork) Rollback() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockUnitOfWork) UserRepository() UserRepository                   { return m.UserRepo }
func (m *MockUnitOfWork) QuestRepository() QuestRepository                 { return m.QuestRepo }
func (m *MockUnitOfWork) UserQuestRepository() UserQuestRepository         { return m.UserQuestRepo }
func (m *MockUnitOfWork) ChallengeRepository() ChallengeRepository         { return m.ChallengeRepo }
func (m *MockUnitOfWork) ProposalRepository() ProposalRepository           { return m.ProposalRepo }
func (m *MockUnitOfWork) GroupSettingsRepository() GroupSettingsRepository { return m.SettingsRepo }
func (m *MockUnitOfWork) EventBus() EventPublisher                         { return m.Publisher }

// MockUnitOfWorkFactory is a mock implementation of UnitOfWorkFactory
type MockUnitOfWorkFactory struct {
	mock.Mock
}

func (m *MockUnitOfWorkFactory) CreateForGroup(groupID int64) UnitOfWork {
	args := m.Called(groupID)
	return args.Get(0).(UnitOfWork)
}
