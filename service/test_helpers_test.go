package service

import (
	"time"

	"grower/config"
	"grower/models"

	"github.com/stretchr/testify/mock"
)

// fixedClock always returns the same instant
type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time { return c.now }

// scriptedRandom replays the given values in order and then repeats the last one
type scriptedRandom struct {
	values []int
	calls  []int
}

func (r *scriptedRandom) IntN(n int) int {
	r.calls = append(r.calls, n)
	if len(r.values) == 0 {
		return 0
	}
	v := r.values[0]
	if len(r.values) > 1 {
		r.values = r.values[1:]
	}
	return v % n
}

// testUnitOfWork wires fresh repository mocks into a MockUnitOfWork that
// expects Begin, Commit and Rollback
type testUnitOfWork struct {
	uow       *MockUnitOfWork
	factory   *MockUnitOfWorkFactory
	users     *MockUserRepository
	quests    *MockQuestRepository
	progress  *MockUserQuestRepository
	history   *MockChallengeRepository
	proposals *MockProposalRepository
	settings  *MockGroupSettingsRepository
	publisher *MockEventPublisher
}

func newTestUnitOfWork(groupID int64) *testUnitOfWork {
	tu := &testUnitOfWork{
		uow:       new(MockUnitOfWork),
		factory:   new(MockUnitOfWorkFactory),
		users:     new(MockUserRepository),
		quests:    new(MockQuestRepository),
		progress:  new(MockUserQuestRepository),
		history:   new(MockChallengeRepository),
		proposals: new(MockProposalRepository),
		settings:  new(MockGroupSettingsRepository),
		publisher: new(MockEventPublisher),
	}
	tu.uow.UserRepo = tu.users
	tu.uow.QuestRepo = tu.quests
	tu.uow.UserQuestRepo = tu.progress
	tu.uow.ChallengeRepo = tu.history
	tu.uow.ProposalRepo = tu.proposals
	tu.uow.SettingsRepo = tu.settings
	tu.uow.Publisher = tu.publisher

	tu.factory.On("CreateForGroup", groupID).Return(tu.uow)
	tu.uow.On("Begin", mock.Anything).Return(nil)
	tu.uow.On("Commit").Return(nil)
	tu.uow.On("Rollback").Return(nil)
	return tu
}

// withSettings makes the group settings lookup return s
func (tu *testUnitOfWork) withSettings(s *models.GroupSettings) *testUnitOfWork {
	tu.settings.On("GetOrCreate", mock.Anything, "").Return(s, nil)
	return tu
}

func enabledSettings(groupID int64) *models.GroupSettings {
	return &models.GroupSettings{
		GroupID:            groupID,
		DailyGrowthEnabled: true,
		ChallengesEnabled:  true,
		QuestsEnabled:      true,
	}
}

func testConfig() *config.Config {
	return config.NewTestConfig()
}

var testNow = time.Date(2024, 6, 15, 14, 30, 0, 0, time.UTC)
