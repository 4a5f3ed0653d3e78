package service

import (
	"context"
	"time"

	"grower/events"
	"grower/models"

	"github.com/google/uuid"
)

// UserRepository defines group-scoped access to ledger rows
type UserRepository interface {
	// Get returns the user in the current group, or nil if absent
	Get(ctx context.Context, userID int64) (*models.User, error)

	// GetForUpdate returns the user and locks the row until the transaction ends
	GetForUpdate(ctx context.Context, userID int64) (*models.User, error)

	// Create inserts a fresh row with length 0 and no growth date
	Create(ctx context.Context, userID int64, username string) (*models.User, error)

	// UpdateUsername refreshes the stored display name
	UpdateUsername(ctx context.Context, userID int64, username string) error

	// ApplyGrowth adds growth to length and stamps the growth day
	ApplyGrowth(ctx context.Context, userID int64, growth int64, day time.Time) (*models.User, error)

	// ApplyChallengeOutcome adds delta to length (floored at 0) and bumps the challenge tallies
	ApplyChallengeOutcome(ctx context.Context, userID int64, delta int64, won bool) (*models.User, error)

	// AddLength adds a non-negative amount to length
	AddLength(ctx context.Context, userID int64, amount int64) (*models.User, error)

	// Leaderboard returns up to limit users ordered by length desc, user id asc
	Leaderboard(ctx context.Context, limit int) ([]*models.User, error)
}

// QuestRepository defines group-scoped access to quest templates
type QuestRepository interface {
	// GetActive returns every active quest of the group
	GetActive(ctx context.Context) ([]*models.Quest, error)

	// GetActiveByType returns the active quests listening to questType
	GetActiveByType(ctx context.Context, questType models.QuestType) ([]*models.Quest, error)

	// InsertIfAbsent inserts quests whose title is not yet taken and returns how many were inserted
	InsertIfAbsent(ctx context.Context, quests []*models.Quest) (int, error)
}

// UserQuestRepository defines group-scoped access to quest progress
type UserQuestRepository interface {
	// GetByUser returns all progress rows of a user
	GetByUser(ctx context.Context, userID int64) ([]*models.UserQuestProgress, error)

	// GetForUpdate returns and locks one progress row, or nil if absent
	GetForUpdate(ctx context.Context, userID, questID int64) (*models.UserQuestProgress, error)

	// Create inserts a progress row
	Create(ctx context.Context, progress *models.UserQuestProgress) error

	// Update stores progress and completion of an existing row
	Update(ctx context.Context, progress *models.UserQuestProgress) error
}

// ChallengeRepository defines access to the challenge audit log
type ChallengeRepository interface {
	// Create appends a record and fills in its id and timestamp
	Create(ctx context.Context, record *models.ChallengeRecord) error

	// GetByID returns a record of the current group, or nil if absent
	GetByID(ctx context.Context, challengeID int64) (*models.ChallengeRecord, error)

	// ListByUser returns the latest records the user took part in
	ListByUser(ctx context.Context, userID int64, limit int) ([]*models.ChallengeRecord, error)
}

// ProposalRepository defines access to pending challenge proposals
type ProposalRepository interface {
	// Create stores a new proposal
	Create(ctx context.Context, proposal *models.ChallengeProposal) error

	// GetForUpdate locks a proposal by token regardless of group, or returns nil if absent
	GetForUpdate(ctx context.Context, token uuid.UUID) (*models.ChallengeProposal, error)

	// Update stores the state, challenge id and response time
	Update(ctx context.Context, proposal *models.ChallengeProposal) error
}

// GroupSettingsRepository defines access to the current group's settings
type GroupSettingsRepository interface {
	// GetOrCreate returns the settings, inserting defaults on first use
	GetOrCreate(ctx context.Context, groupName string) (*models.GroupSettings, error)

	// Update stores all mutable fields
	Update(ctx context.Context, settings *models.GroupSettings) error
}

// EventPublisher defines the interface for publishing events
type EventPublisher interface {
	Publish(event events.Event)
}

// ProgressRecorder receives quest progress events raised by other services
type ProgressRecorder interface {
	RecordProgress(ctx context.Context, userID, groupID int64, questType models.QuestType, value int64) ([]models.QuestCompletion, error)
}

// LedgerService defines score ledger operations
type LedgerService interface {
	// GetOrCreate returns the user's row in the group, creating it on first contact
	GetOrCreate(ctx context.Context, userID, groupID int64, username string) (*models.User, error)

	// CanGrowToday reports whether the user has not grown yet today
	CanGrowToday(user *models.User) bool

	// Grow applies the daily random growth
	Grow(ctx context.Context, userID, groupID int64, username string) (*models.GrowthResult, error)

	// Leaderboard returns the top users of the group
	Leaderboard(ctx context.Context, groupID int64, limit int) ([]*models.User, error)

	// Stats returns a user's row or a NotFoundError
	Stats(ctx context.Context, userID, groupID int64) (*models.User, error)
}

// ChallengeService defines challenge operations
type ChallengeService interface {
	// ValidateAmount applies the default to 0 and checks the configured bounds
	ValidateAmount(amount int64) (int64, error)

	// CanChallenge checks eligibility and returns a human readable reason when refused
	CanChallenge(ctx context.Context, challengerID, opponentID, groupID, amount int64) (bool, string, error)

	// Propose stores a proposal that the opponent can answer once
	Propose(ctx context.Context, challengerID, opponentID, groupID, amount int64) (*models.ChallengeProposal, error)

	// Respond accepts or declines a proposal on behalf of responderID
	Respond(ctx context.Context, token uuid.UUID, responderID, responderGroupID int64, accept bool) (*models.ChallengeResponse, error)

	// Resolve picks a winner and transfers the stake
	Resolve(ctx context.Context, challengerID, opponentID, groupID, amount int64) (*models.ChallengeResult, error)
}

// QuestService defines quest operations
type QuestService interface {
	ProgressRecorder

	// GetActiveQuests returns the active quests of a group
	GetActiveQuests(ctx context.Context, groupID int64) ([]*models.Quest, error)

	// GetUserProgress returns the user's progress keyed by quest id
	GetUserProgress(ctx context.Context, userID, groupID int64) (map[int64]*models.UserQuestProgress, error)

	// ListQuestStatus pairs every active quest with the user's progress
	ListQuestStatus(ctx context.Context, userID, groupID int64) ([]*models.QuestStatus, error)

	// SeedDefaults installs the default quests and returns how many were new
	SeedDefaults(ctx context.Context, groupID int64) (int, error)
}

// GroupSettingsService defines group settings operations
type GroupSettingsService interface {
	// GetOrCreate returns the group's settings
	GetOrCreate(ctx context.Context, groupID int64, groupName string) (*models.GroupSettings, error)

	// SetFeature switches one feature on or off
	SetFeature(ctx context.Context, groupID int64, feature models.Feature, enabled bool) (*models.GroupSettings, error)

	// SetLeaderRole sets or clears (nil) the role given to the group leader
	SetLeaderRole(ctx context.Context, groupID int64, roleID *int64) (*models.GroupSettings, error)
}

// UnitOfWork defines the interface for transactional repository operations
type UnitOfWork interface {
	// Begin starts a new transaction
	Begin(ctx context.Context) error

	// Commit commits the transaction and flushes pending events
	Commit() error

	// Rollback rolls back the transaction and discards pending events.
	// It is a no-op after Commit.
	Rollback() error

	// Repository getters
	UserRepository() UserRepository
	QuestRepository() QuestRepository
	UserQuestRepository() UserQuestRepository
	ChallengeRepository() ChallengeRepository
	ProposalRepository() ProposalRepository
	GroupSettingsRepository() GroupSettingsRepository
	EventBus() EventPublisher
}

// UnitOfWorkFactory defines the interface for creating UnitOfWork instances
type UnitOfWorkFactory interface {
	// CreateForGroup creates a new UnitOfWork scoped to a specific group
	CreateForGroup(groupID int64) UnitOfWork
}
