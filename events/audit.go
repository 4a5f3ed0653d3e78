package events

import (
	"context"

	log "github.com/sirupsen/logrus"
)

// AuditFields flattens an event into log fields
func AuditFields(event Event) log.Fields {
	fields := log.Fields{"eventType": event.Type()}

	switch e := event.(type) {
	case LengthChangedEvent:
		fields["userID"] = e.UserID
		fields["groupID"] = e.GroupID
		fields["oldLength"] = e.OldLength
		fields["newLength"] = e.NewLength
		fields["delta"] = e.Delta()
		fields["reason"] = e.Reason
	case ChallengeResolvedEvent:
		fields["challengeID"] = e.ChallengeID
		fields["groupID"] = e.GroupID
		fields["winnerID"] = e.WinnerID
		fields["loserID"] = e.LoserID
		fields["amount"] = e.Amount
	case QuestCompletedEvent:
		fields["userID"] = e.UserID
		fields["groupID"] = e.GroupID
		fields["questID"] = e.QuestID
		fields["title"] = e.Title
		fields["reward"] = e.Reward
	}

	return fields
}

// SubscribeAuditLog writes every committed event to logger at info level
func SubscribeAuditLog(bus *Bus, logger log.FieldLogger) {
	handler := func(ctx context.Context, event Event) {
		logger.WithFields(AuditFields(event)).Info("audit")
	}
	for _, t := range []EventType{EventTypeLengthChanged, EventTypeChallengeResolved, EventTypeQuestCompleted} {
		bus.Subscribe(t, handler)
	}
}
