package worker

import "context"

// ChallengeBumpJob pushes quiz and word counts onto the weekly challenge
// after a star award commits. It runs off the request path; a failure is
// logged by the pool and never affects the award that triggered it.
type ChallengeBumpJob struct {
	Quests    QuestProgressInterface
	ProfileID string
	Words     int
	Quizzes   int
}

func (j *ChallengeBumpJob) Name() string { return "challenge_bump" }

func (j *ChallengeBumpJob) Run(ctx context.Context) error {
	return j.Quests.BumpWeekly(ctx, j.ProfileID, j.Words, j.Quizzes)
}
