package analyzer

// Tiers holds the keyword phrases for one category, grouped by weight
type Tiers struct {
	Primary    []string // strongest signal
	Secondary  []string
	Contextual []string // situational hints
}

// Lexicon maps each scored category to its keyword tiers.
// Neutral has no entry: it is only ever chosen when nothing else scores.
type Lexicon map[Category]Tiers

// DefaultLexicon returns the built-in keyword table. The returned map is
// shared and must not be modified.
func DefaultLexicon() Lexicon {
	return defaultLexicon
}

var defaultLexicon = Lexicon{
	Happy: {
		Primary:    []string{"happy", "joy", "joyful", "elated", "ecstatic", "blissful"},
		Secondary:  []string{"great", "amazing", "wonderful", "fantastic", "awesome", "brilliant", "cheerful", "delighted", "pleased"},
		Contextual: []string{"celebration", "success", "achievement", "victory", "win"},
	},
	Sad: {
		Primary:    []string{"sad", "depressed", "melancholy", "grief", "sorrow", "despair"},
		Secondary:  []string{"down", "blue", "gloomy", "miserable", "heartbroken", "disappointed"},
		Contextual: []string{"crying", "tears", "loss", "farewell", "goodbye", "miss"},
	},
	Anxious: {
		Primary:    []string{"anxious", "anxiety", "worried", "nervous", "panic", "fearful"},
		Secondary:  []string{"scared", "afraid", "uneasy", "restless", "tense", "on edge"},
		Contextual: []string{"stress", "pressure", "overwhelming", "uncertain", "doubt"},
	},
	Angry: {
		Primary:    []string{"angry", "mad", "furious", "rage", "irate", "livid"},
		Secondary:  []string{"irritated", "annoyed", "frustrated", "outraged", "hostile", "bitter"},
		Contextual: []string{"hate", "disgusted", "fed up", "can't stand", "infuriating"},
	},
	Excited: {
		Primary:    []string{"excited", "thrilled", "exhilarated", "energetic", "pumped"},
		Secondary:  []string{"eager", "enthusiastic", "animated", "vibrant", "spirited"},
		Contextual: []string{"can't wait", "looking forward", "anticipating", "psyched"},
	},
	Confused: {
		Primary:    []string{"confused", "puzzled", "perplexed", "bewildered", "baffled"},
		Secondary:  []string{"lost", "unclear", "uncertain", "mixed up", "stumped"},
		Contextual: []string{"don't understand", "makes no sense", "what's going on"},
	},
	Calm: {
		Primary:    []string{"calm", "peaceful", "serene", "tranquil", "composed"},
		Secondary:  []string{"relaxed", "quiet", "still", "balanced", "centered"},
		Contextual: []string{"meditation", "mindful", "zen", "at peace", "harmony"},
	},
	Frustrated: {
		Primary:    []string{"frustrated", "exasperated", "aggravated", "vexed"},
		Secondary:  []string{"stuck", "blocked", "hindered", "bothered", "irked"},
		Contextual: []string{"nothing works", "keep trying", "obstacles", "barriers"},
	},
	Hopeful: {
		Primary:    []string{"hopeful", "optimistic", "positive", "confident", "upbeat"},
		Secondary:  []string{"encouraged", "inspired", "motivated", "determined"},
		Contextual: []string{"better tomorrow", "things will improve", "light at the end", "faith"},
	},
	Disappointed: {
		Primary:    []string{"disappointed", "let down", "discouraged", "deflated"},
		Secondary:  []string{"dissatisfied", "disheartened", "dismayed", "disillusioned"},
		Contextual: []string{"expected more", "didn't work out", "fell short", "not what i hoped"},
	},
	Overwhelmed: {
		Primary:    []string{"overwhelmed", "swamped", "buried", "overloaded"},
		Secondary:  []string{"too much", "can't handle", "drowning", "suffocating"},
		Contextual: []string{"so many things", "no time", "pressure", "breaking point"},
	},
	Confident: {
		Primary:    []string{"confident", "sure", "certain", "assured", "self-assured"},
		Secondary:  []string{"capable", "strong", "empowered", "bold", "fearless"},
		Contextual: []string{"i can do this", "believe in myself", "ready", "prepared"},
	},
	Worried: {
		Primary:    []string{"concerned", "apprehensive", "troubled", "preoccupied"},
		Secondary:  []string{"what if", "fret", "dread", "uneasy about"},
		Contextual: []string{"keep thinking about", "might go wrong", "just in case", "hope it's okay"},
	},
	Grateful: {
		Primary:    []string{"grateful", "thankful", "appreciative", "blessed"},
		Secondary:  []string{"fortunate", "lucky", "appreciate", "value"},
		Contextual: []string{"thank you", "so grateful", "thanks so much", "count my blessings"},
	},
	Lonely: {
		Primary:    []string{"lonely", "alone", "isolated", "solitary"},
		Secondary:  []string{"disconnected", "abandoned", "forsaken", "left out"},
		Contextual: []string{"no one understands", "by myself", "missing people", "social isolation"},
	},
	Stressed: {
		Primary:    []string{"stressed", "pressure", "tension", "strain"},
		Secondary:  []string{"overwhelmed", "burned out", "exhausted", "drained"},
		Contextual: []string{"deadlines", "workload", "responsibilities", "juggling"},
	},
	Proud: {
		Primary:    []string{"proud", "accomplished", "satisfied", "fulfilled"},
		Secondary:  []string{"achieved", "successful", "impressed", "pleased"},
		Contextual: []string{"hard work paid off", "exceeded expectations", "milestone", "breakthrough"},
	},
	Guilty: {
		Primary:    []string{"guilty", "ashamed", "remorseful", "regretful"},
		Secondary:  []string{"my fault", "blame myself", "regret", "apologize"},
		Contextual: []string{"should have", "shouldn't have", "let them down", "make it up"},
	},
	Jealous: {
		Primary:    []string{"jealous", "envious", "resentful", "covetous"},
		Secondary:  []string{"envy", "unfair", "left behind", "why them"},
		Contextual: []string{"wish i had", "compare myself", "better than me", "they have everything"},
	},
}

var (
	highIntensityMarkers = []string{
		"extremely", "incredibly", "absolutely", "completely", "totally",
		"utterly", "so much", "overwhelming", "intense", "severe",
	}
	lowIntensityMarkers = []string{
		"slightly", "somewhat", "a little", "kind of", "sort of",
		"mildly", "barely", "hardly", "just a bit",
	}
)
