package achievements

// Level is the user's rank derived from total completions.
type Level struct {
	Number int
	Title  string
	// Next is the completion count that reaches the following level, or 0
	// at the top level.
	Next int
	// Progress through the current level, in [0, 1].
	Progress float64
}

var levelThresholds = []int{0, 5, 15, 30, 50, 100, 200, 300, 500, 1000}

var levelTitles = []string{
	"Beginner", "Novice", "Apprentice", "Regular", "Dedicated",
	"Expert", "Master", "Grandmaster", "Legend", "Habit God",
}

// MaxLevel is the highest reachable level.
const MaxLevel = 10

func LevelFor(totalCompletions int) Level {
	n := 1
	for i := len(levelThresholds) - 1; i >= 0; i-- {
		if totalCompletions >= levelThresholds[i] {
			n = i + 1
			break
		}
	}

	l := Level{Number: n, Title: levelTitles[n-1]}
	if n == MaxLevel {
		l.Progress = 1
		return l
	}
	prev, next := levelThresholds[n-1], levelThresholds[n]
	l.Next = next
	l.Progress = float64(totalCompletions-prev) / float64(next-prev)
	if l.Progress < 0 {
		l.Progress = 0
	}
	return l
}
