package repository

import (
	"context"
	"errors"
	"fmt"

	"grower/database"
	"grower/events"
	"grower/service"

	"github.com/jackc/pgx/v5"
	log "github.com/sirupsen/logrus"
)

// unitOfWork binds group-scoped repositories to one transaction
type unitOfWork struct {
	db               *database.DB
	tx               pgx.Tx
	ctx              context.Context
	groupID          int64
	transactionalBus *events.TransactionalBus
	userRepo         service.UserRepository
	questRepo        service.QuestRepository
	userQuestRepo    service.UserQuestRepository
	challengeRepo    service.ChallengeRepository
	proposalRepo     service.ProposalRepository
	settingsRepo     service.GroupSettingsRepository
}

// NewUnitOfWorkFactory creates a new UnitOfWork factory. Events published
// inside a unit of work reach eventBus only after a successful commit.
func NewUnitOfWorkFactory(db *database.DB, eventBus *events.Bus) service.UnitOfWorkFactory {
	return &unitOfWorkFactory{
		db:       db,
		eventBus: eventBus,
	}
}

type unitOfWorkFactory struct {
	db       *database.DB
	eventBus *events.Bus
}

// CreateForGroup creates a new UnitOfWork scoped to groupID
func (f *unitOfWorkFactory) CreateForGroup(groupID int64) service.UnitOfWork {
	return &unitOfWork{
		db:               f.db,
		groupID:          groupID,
		transactionalBus: events.NewTransactionalBus(f.eventBus),
	}
}

// Begin starts a new transaction
func (u *unitOfWork) Begin(ctx context.Context) error {
	if u.tx != nil {
		return fmt.Errorf("transaction already started")
	}

	tx, err := u.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	u.tx = tx
	u.ctx = ctx

	u.userRepo = newUserRepository(tx, u.groupID)
	u.questRepo = newQuestRepository(tx, u.groupID)
	u.userQuestRepo = newUserQuestRepository(tx, u.groupID)
	u.challengeRepo = newChallengeRepository(tx, u.groupID)
	u.proposalRepo = newProposalRepository(tx, u.groupID)
	u.settingsRepo = newGroupSettingsRepository(tx, u.groupID)

	return nil
}

// Commit commits the transaction and flushes pending events
func (u *unitOfWork) Commit() error {
	if u.tx == nil {
		return fmt.Errorf("no transaction to commit")
	}

	if err := u.tx.Commit(u.ctx); err != nil {
		u.transactionalBus.Discard()
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	u.tx = nil

	if err := u.transactionalBus.Flush(u.ctx); err != nil {
		log.WithFields(log.Fields{
			"groupID": u.groupID,
			"error":   err,
		}).Error("Failed to flush events after commit")
	}

	return nil
}

// Rollback rolls back the transaction and discards pending events
func (u *unitOfWork) Rollback() error {
	if u.tx == nil {
		return nil
	}

	err := u.tx.Rollback(u.ctx)
	u.tx = nil
	u.transactionalBus.Discard()

	if err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		return fmt.Errorf("failed to rollback transaction: %w", err)
	}
	return nil
}

func mustBegin[T any](repo T, started bool) T {
	if !started {
		panic("unit of work not started - call Begin() first")
	}
	return repo
}

// UserRepository returns the user repository for this unit of work
func (u *unitOfWork) UserRepository() service.UserRepository {
	return mustBegin(u.userRepo, u.userRepo != nil)
}

// QuestRepository returns the quest repository for this unit of work
func (u *unitOfWork) QuestRepository() service.QuestRepository {
	return mustBegin(u.questRepo, u.questRepo != nil)
}

// UserQuestRepository returns the quest progress repository for this unit of work
func (u *unitOfWork) UserQuestRepository() service.UserQuestRepository {
	return mustBegin(u.userQuestRepo, u.userQuestRepo != nil)
}

// ChallengeRepository returns the challenge history repository for this unit of work
func (u *unitOfWork) ChallengeRepository() service.ChallengeRepository {
	return mustBegin(u.challengeRepo, u.challengeRepo != nil)
}

// ProposalRepository returns the proposal repository for this unit of work
func (u *unitOfWork) ProposalRepository() service.ProposalRepository {
	return mustBegin(u.proposalRepo, u.proposalRepo != nil)
}

// GroupSettingsRepository returns the settings repository for this unit of work
func (u *unitOfWork) GroupSettingsRepository() service.GroupSettingsRepository {
	return mustBegin(u.settingsRepo, u.settingsRepo != nil)
}

// EventBus returns the transactional event publisher for this unit of work
func (u *unitOfWork) EventBus() service.EventPublisher {
	return u.transactionalBus
}
