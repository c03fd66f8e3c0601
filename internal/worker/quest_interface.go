package worker

import "context"

// QuestProgressInterface is the slice of the quest service jobs need.
// Declared here to avoid a dependency cycle with the services package.
type QuestProgressInterface interface {
	BumpWeekly(ctx context.Context, profileID string, words, quizzes int) error
}
