package models

// GrowthResult is the outcome of a growth attempt
type GrowthResult struct {
	OK        bool
	Message   string
	Growth    int64
	NewLength int64
	Completed []QuestCompletion
}
