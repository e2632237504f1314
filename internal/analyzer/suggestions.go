package analyzer

// DefaultMaxSuggestions is the largest number of suggestions returned
const DefaultMaxSuggestions = 4

// SuggestionSelector samples coping suggestions for a category
type SuggestionSelector struct {
	table map[Category][]string
	max   int
	rand  Rand
}

// NewSuggestionSelector creates a selector over table returning at most max
// entries per call
func NewSuggestionSelector(table map[Category][]string, max int, r Rand) *SuggestionSelector {
	return &SuggestionSelector{table: table, max: max, rand: r}
}

// Select returns a random sample without replacement of the category's
// suggestions, in random order. It returns an empty slice when include is
// false or the category has no suggestions.
func (s *SuggestionSelector) Select(category Category, include bool) []string {
	if !include || s.max <= 0 {
		return []string{}
	}

	candidates := s.table[category]
	if len(candidates) == 0 {
		return []string{}
	}

	n := min(s.max, len(candidates))
	perm := s.rand.Perm(len(candidates))

	picked := make([]string, 0, n)
	for _, idx := range perm[:n] {
		picked = append(picked, candidates[idx])
	}
	return picked
}

// DefaultSuggestions returns the built-in suggestion lists. Neutral has none.
// The returned map is shared and must not be modified.
func DefaultSuggestions() map[Category][]string {
	return defaultSuggestions
}

var defaultSuggestions = map[Category][]string{
	Happy: {
		"Share your joy with someone special today",
		"Take a moment to savor this positive feeling",
		"Consider keeping a gratitude journal to remember these moments",
		"Use this positive energy to tackle a challenge you've been avoiding",
		"Practice mindfulness to fully appreciate this happiness",
	},
	Sad: {
		"Allow yourself to feel these emotions - they're valid and temporary",
		"Reach out to a trusted friend or family member for support",
		"Consider gentle activities like walking in nature or listening to music",
		"Practice self-compassion and avoid harsh self-judgment",
		"If feelings persist, consider speaking with a counselor",
	},
	Anxious: {
		"Try the 4-7-8 breathing technique: inhale for 4, hold for 7, exhale for 8",
		"Break down your worries into smaller, manageable action steps",
		"Practice grounding techniques: name 5 things you can see, 4 you can touch, 3 you can hear",
		"Consider mindfulness meditation or progressive muscle relaxation",
		"Talk to someone you trust about your concerns",
	},
	Angry: {
		"Take 10 deep breaths before responding to what triggered you",
		"Try physical exercise to release built-up tension safely",
		"Ask yourself: 'What am I really feeling underneath this anger?'",
		"Practice 'I' statements when expressing your feelings to others",
		"Consider whether this situation will matter in 5 years",
	},
	Excited: {
		"Channel this positive energy into a meaningful project",
		"Share your excitement with others who will celebrate with you",
		"Plan concrete steps to make the most of this momentum",
		"Use this motivation to tackle tasks you've been putting off",
		"Document this feeling to remember during tougher times",
	},
	Confused: {
		"Take time to gather more information before making decisions",
		"Break complex situations into smaller, clearer components",
		"Seek perspective from someone with relevant experience",
		"Remember that confusion often precedes clarity and growth",
		"Consider writing down your thoughts to organize them",
	},
	Calm: {
		"Enjoy this peaceful moment and notice what created it",
		"Use this mental clarity to reflect on important decisions",
		"Practice gratitude for this sense of balance and well-being",
		"Consider what habits or practices help you maintain this state",
		"Share your calm energy with others who might need it",
	},
	Frustrated: {
		"Take a break and return to the situation with fresh perspective",
		"Try a completely different approach to the problem",
		"Ask for help or advice from someone who might have insights",
		"Remember that obstacles are often opportunities in disguise",
		"Focus on what you can control rather than what you can't",
	},
	Hopeful: {
		"Build on this optimism by creating concrete action plans",
		"Share your positive outlook with others who might benefit",
		"Use this momentum to take the next step toward your goals",
		"Document your hopes and dreams to revisit when motivation wanes",
		"Celebrate small wins along the way to maintain this feeling",
	},
	Disappointed: {
		"Acknowledge your feelings without judgment - disappointment is natural",
		"Look for lessons or silver linings in this experience",
		"Focus on what you can control moving forward",
		"Remember that setbacks often set us up for bigger comebacks",
		"Consider adjusting expectations while maintaining your core values",
	},
	Overwhelmed: {
		"Make a list of everything on your mind, then prioritize ruthlessly",
		"Focus on completing one task at a time rather than multitasking",
		"Delegate or eliminate non-essential activities",
		"Take regular breaks to prevent burnout",
		"Consider asking for help - you don't have to handle everything alone",
	},
	Confident: {
		"Use this confidence to tackle a challenge you've been avoiding",
		"Share your knowledge or skills with others who could benefit",
		"Set a new goal that stretches your capabilities",
		"Remember this feeling during times of self-doubt",
		"Consider mentoring someone who could use your confidence",
	},
	Worried: {
		"Write the worry down and ask how likely the outcome really is",
		"Set aside a short, fixed 'worry time' instead of worrying all day",
		"Separate what you can influence from what you cannot",
		"Plan one small step that addresses the concern",
		"Share the worry with someone you trust",
	},
	Grateful: {
		"Write a thank-you note to someone who has impacted your life",
		"Start a daily gratitude practice to cultivate this feeling",
		"Look for ways to pay your blessings forward to others",
		"Share your appreciation with the people who matter to you",
		"Use this gratitude as motivation to help others",
	},
	Lonely: {
		"Reach out to an old friend or family member you haven't contacted recently",
		"Consider joining a group or class based on your interests",
		"Practice self-compassion - being alone doesn't mean being lonely",
		"Engage in activities that connect you with your community",
		"Remember that feeling lonely is temporary and you have value",
	},
	Stressed: {
		"Identify the specific sources of your stress and address them one by one",
		"Practice stress-relief techniques like deep breathing or meditation",
		"Ensure you're getting enough sleep, exercise, and proper nutrition",
		"Consider time management strategies to better organize your responsibilities",
		"Don't hesitate to ask for help when you need it",
	},
	Proud: {
		"Take time to fully acknowledge and celebrate your achievement",
		"Share your success with people who supported you along the way",
		"Reflect on the skills and qualities that led to this success",
		"Use this confidence to set your next meaningful goal",
		"Consider how you can help others achieve similar success",
	},
	Guilty: {
		"Name what happened without exaggerating or minimizing it",
		"If an apology is due, offer a sincere and specific one",
		"Focus on what you would do differently next time",
		"Treat yourself with the understanding you would offer a friend",
		"Consider a small action that repairs the situation",
	},
	Jealous: {
		"Notice what the jealousy says about what you value",
		"Limit comparisons, especially on social media",
		"Turn the feeling into a concrete goal for yourself",
		"List a few things in your own life you appreciate",
		"Talk openly with the people involved if the feeling persists",
	},
}
