package entity

// Message roles understood by the generation provider
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

type Message struct {
	Role    string
	Content string
}

// Player is the structured reply for the player details endpoint.
type Player struct {
	PlayerName   string   `json:"playerName"`
	Achievements []string `json:"achievements"`
}

type Achievement struct {
	Title       string `json:"title"`
	Year        int    `json:"year,omitempty"`
	Description string `json:"description"`
}

// ErrorResponse is the JSON body of every failed request.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}
