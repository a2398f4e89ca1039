package constants

import "time"

var CacheTTL = struct {
	Champion time.Duration
	Items    time.Duration
	Patch    time.Duration
}{
	Champion: 60 * time.Minute, // normalized champion entities
	Items:    60 * time.Minute, // item and rune sets
	Patch:    6 * time.Hour,    // latest patch label
}

var Paths = struct {
	ChampionsDir string
	ItemsDir     string
	RunesDir     string
	IndexFile    string
}{
	ChampionsDir: "champions_clean",
	ItemsDir:     "items",
	RunesDir:     "runes",
	IndexFile:    "champion_index.json",
}

// MetaDefaults are the display placeholders used when a record carries no meta figures.
var MetaDefaults = struct {
	WinRate     string
	PickRate    string
	BanRate     string
	Patch       string
	LastUpdated string
	Views       string
}{
	WinRate:     "50%",
	PickRate:    "5%",
	BanRate:     "2%",
	Patch:       "6.1f",
	LastUpdated: "N/A",
	Views:       "1,000",
}

var Placeholders = struct {
	ChampionImage      string
	UnknownName        string
	UnknownRole        string
	AbilityDescription string
	RuneTree           string
}{
	ChampionImage:      "/placeholder-champion.svg",
	UnknownName:        "Unknown",
	UnknownRole:        "Unknown",
	AbilityDescription: "No description available.",
	RuneTree:           "Unknown",
}

var RedisKeys = struct {
	Champion string
}{
	Champion: "wrguide:champion:%s",
}

var PatchSource = struct {
	URL              string
	Timeout          time.Duration
	UserAgent        string
	FailureThreshold int
	Cooldown         time.Duration
}{
	URL:              "https://wildrift.leagueoflegends.com/en-us/news/game-updates/",
	Timeout:          15 * time.Second,
	UserAgent:        "Mozilla/5.0 (compatible; WildRiftGuideBot/1.0)",
	FailureThreshold: 3,
	Cooldown:         10 * time.Minute,
}

var LoaderConfig = struct {
	MaxConcurrentLoads int
}{
	MaxConcurrentLoads: 8,
}
