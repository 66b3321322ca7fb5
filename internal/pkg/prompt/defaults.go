package prompt

import (
	"embed"
)

//go:embed prompts/*.st
var defaultFS embed.FS

// Slot names used by the default templates
const (
	SlotInput     = "input"
	SlotDocuments = "documents"
	SlotName      = "name"
	SlotPlayer    = "player"
)

func mustDefault(file string) *Template {
	data, err := defaultFS.ReadFile("prompts/" + file)
	if err != nil {
		panic(err)
	}
	return New(file, string(data))
}

// RAG answers a question from retrieved documents or replies "I don't know.".
func RAG() *Template { return mustDefault("rag.st") }

func Celeb() *Template { return mustDefault("celeb.st") }

func PlayerSystem() *Template { return mustDefault("player_system.st") }

func PlayerUser() *Template { return mustDefault("player_user.st") }

func PlayerAchievements() *Template { return mustDefault("player_achievements.st") }

// AchievementsFormat is appended to achievement requests to get a parseable JSON array.
func AchievementsFormat() *Template { return mustDefault("achievements_format.st") }
