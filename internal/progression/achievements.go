package progression

// CriteriaType is the closed set of achievement unlock conditions.
type CriteriaType string

const (
	CriteriaGoalsCreated   CriteriaType = "goals_created"
	CriteriaGoalsCompleted CriteriaType = "goals_completed"
	CriteriaStreakDays     CriteriaType = "streak_days"
	CriteriaLevel          CriteriaType = "level"
)

// AchievementRule is an achievement template reduced to what unlock checks
// need: a criteria kind and a threshold.
type AchievementRule struct {
	ID             int64
	CriteriaType   CriteriaType
	CriteriaTarget int
}

// UserStats are the aggregates achievement criteria are evaluated against.
type UserStats struct {
	TotalXP        int
	CurrentStreak  int
	GoalsCreated   int
	GoalsCompleted int
}

// CheckAchievements returns the IDs of achievements whose criteria the user's
// aggregates now satisfy and that are not yet in the unlocked set. It never
// mutates anything: persisting the unlock (and awarding its XP exactly once)
// is the caller's responsibility. Rules with an unknown criteria type are
// skipped.
func CheckAchievements(stats UserStats, rules []AchievementRule, unlocked map[int64]bool) []int64 {
	var newly []int64
	for _, rule := range rules {
		if unlocked[rule.ID] {
			continue
		}

		var value int
		switch rule.CriteriaType {
		case CriteriaGoalsCreated:
			value = stats.GoalsCreated
		case CriteriaGoalsCompleted:
			value = stats.GoalsCompleted
		case CriteriaStreakDays:
			value = stats.CurrentStreak
		case CriteriaLevel:
			value = Level(stats.TotalXP)
		default:
			continue
		}

		if value >= rule.CriteriaTarget {
			newly = append(newly, rule.ID)
		}
	}
	return newly
}
