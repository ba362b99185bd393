package productivity

// Level is one gamification tier. An employee's XP is their lifetime count of
// ticket assignments (raw, not fractional); their level is the highest tier
// whose MinXP does not exceed it.
type Level struct {
	MinXP int
	Name  string
	Icon  string
	Color string
}

// Levels are the tiers in ascending MinXP order.
var Levels = []Level{
	{MinXP: 0, Name: "Rookie", Icon: "🧽", Color: "#9ca3af"},
	{MinXP: 25, Name: "Washer", Icon: "🚿", Color: "#60a5fa"},
	{MinXP: 75, Name: "Detailer", Icon: "✨", Color: "#34d399"},
	{MinXP: 200, Name: "Pro", Icon: "🏆", Color: "#fbbf24"},
	{MinXP: 500, Name: "Legend", Icon: "🔥", Color: "#f87171"},
}

// LevelFor returns the highest tier whose MinXP does not exceed xp.
func LevelFor(xp int) Level {
	current := Levels[0]
	for _, l := range Levels {
		if xp >= l.MinXP {
			current = l
		}
	}
	return current
}

// ProgressToNext returns progress toward the next tier in [0, 1]. At the top
// tier progress is fixed at 1.
func ProgressToNext(xp int) float64 {
	for i, l := range Levels {
		if xp < l.MinXP {
			prev := Levels[i-1]
			p := float64(xp-prev.MinXP) / float64(l.MinXP-prev.MinXP)
			if p > 1 {
				return 1
			}
			return p
		}
	}
	return 1
}
