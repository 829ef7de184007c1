package catalogs

import "time"

// DemoSeed returns the six records installed into an empty catalog.
func DemoSeed(now time.Time) []*Video {
	ms := now.UnixMilli()
	demo := func(id, title, category string, ageMS int64, tags ...string) *Video {
		return &Video{
			ID:        id,
			Title:     title,
			Category:  category,
			Tags:      tags,
			Source:    SourceDemo,
			CreatedAt: ms - ageMS,
		}
	}

	return []*Video{
		demo("d1", "Hello", "Greetings", 86400000, "basic", "beginner"),
		demo("d2", "Thank You", "Greetings", 80000000, "basic", "polite"),
		demo("d3", "One", "Numbers", 70000000, "number", "counting"),
		demo("d4", "Happy", "Emotions", 60000000, "feeling"),
		demo("d5", "A", "Alphabet", 50000000, "fingerspelling"),
		demo("d6", "Water", "Food & Drink", 40000000, "basic"),
	}
}
