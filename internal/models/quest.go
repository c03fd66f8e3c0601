package models

// Quest types recognized by the daily quest catalog.
const (
	QuestTypeQuizComplete = "quiz_complete"
	QuestTypeWordsCorrect = "words_correct"
	QuestTypeAccuracy     = "accuracy"
	QuestTypeStarsEarned  = "stars_earned"
	QuestTypePerfectQuiz  = "perfect_quiz"
)

// QuestSlot is one of the three goals in a daily quest set.
type QuestSlot struct {
	Type     string `json:"type"`
	Target   int    `json:"target"`
	Progress int    `json:"progress"`
	Reward   int    `json:"reward"`
	Done     bool   `json:"done"`
}

// DailyQuestSet holds exactly one record per profile per calendar day.
// Slot types are distinct within a set; once a slot is done its progress
// is frozen.
type DailyQuestSet struct {
	ID           int64       `json:"id"`
	ProfileID    string      `json:"profile_id"`
	QuestDate    string      `json:"quest_date"` // local date, YYYY-MM-DD
	Slots        []QuestSlot `json:"slots"`
	AllCompleted bool        `json:"all_completed"`
}

// QuestTemplate is a catalog entry daily quests are sampled from.
type QuestTemplate struct {
	Type   string
	Target int
	Reward int
}
