package stats

// DefaultDailyGoal is the number of answers per day the progress bar aims at.
const DefaultDailyGoal = 50

// GoalProgress returns today's answers as a percentage of goal, rounded
// down and capped at 100.
func GoalProgress(total, goal int) int {
	if goal <= 0 {
		goal = DefaultDailyGoal
	}
	return min(100, max(0, total)*100/goal)
}
