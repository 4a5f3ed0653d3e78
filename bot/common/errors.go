package common

import (
	"errors"
	"fmt"

	"grower/service"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

const genericErrorMessage = "Something went wrong. Please try again later."

// BotError separates what the member sees from what gets logged
type BotError struct {
	UserMessage string
	LogMessage  string
	Err         error
}

func (e *BotError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.LogMessage, e.Err)
	}
	return e.LogMessage
}

func (e *BotError) Unwrap() error {
	return e.Err
}

// IsSystem reports whether the error came from storage or another internal failure
func (e *BotError) IsSystem() bool {
	return e.Err != nil
}

// NewUserError creates an error caused by the member's request
func NewUserError(userMessage string, logMessage string) *BotError {
	return &BotError{
		UserMessage: userMessage,
		LogMessage:  logMessage,
	}
}

// NewSystemError creates an error for storage or unexpected failures
func NewSystemError(err error, logMessage string) *BotError {
	return &BotError{
		UserMessage: genericErrorMessage,
		LogMessage:  logMessage,
		Err:         err,
	}
}

// FromServiceError maps the service error taxonomy onto a BotError.
// Validation, authorization and not-found reasons are shown as is.
func FromServiceError(err error, logMessage string) *BotError {
	var validationErr *service.ValidationError
	var authErr *service.AuthorizationError
	switch {
	case errors.As(err, &validationErr):
		return NewUserError(validationErr.Reason, logMessage)
	case errors.As(err, &authErr):
		return NewUserError(authErr.Reason, logMessage)
	case service.IsNotFound(err):
		return NewUserError("Nothing found. Use /start or /grow first.", logMessage)
	default:
		return NewSystemError(err, logMessage)
	}
}

// RespondWithError sends an ephemeral error message as the interaction response
func RespondWithError(s *discordgo.Session, i *discordgo.InteractionCreate, message string) {
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: "❌ " + message,
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	})
	if err != nil {
		log.Errorf("Error sending error response: %v", err)
	}
}

// FollowUpWithError sends an ephemeral error message after a deferred response
func FollowUpWithError(s *discordgo.Session, i *discordgo.InteractionCreate, message string) {
	_, err := s.FollowupMessageCreate(i.Interaction, false, &discordgo.WebhookParams{
		Content: "❌ " + message,
		Flags:   discordgo.MessageFlagsEphemeral,
	})
	if err != nil {
		log.Errorf("Error sending follow-up error message: %v", err)
	}
}

// HandleError logs err and answers the member with the matching message
func HandleError(s *discordgo.Session, i *discordgo.InteractionCreate, err error, deferred bool) {
	var botErr *BotError
	if !errors.As(err, &botErr) {
		botErr = NewSystemError(err, "Unexpected error in bot interaction")
	}

	fields := log.Fields{
		"guild_id":     i.GuildID,
		"error":        botErr.Error(),
		"user_message": botErr.UserMessage,
	}
	if user := InteractionUser(i); user != nil {
		fields["user_id"] = user.ID
	}
	if botErr.IsSystem() {
		log.WithFields(fields).Error(botErr.LogMessage)
	} else {
		log.WithFields(fields).Debug(botErr.LogMessage)
	}

	if deferred {
		FollowUpWithError(s, i, botErr.UserMessage)
	} else {
		RespondWithError(s, i, botErr.UserMessage)
	}
}
