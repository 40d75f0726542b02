package domain

// Max length of board and section names.
const NameMaxLength = 250

// Max length of task text.
const TextMaxLength = 250

// DefaultBoardName is used when a board is provisioned for a new user.
const DefaultBoardName = "Default Board"

// DefaultSectionNames are created, in order, for every provisioned board.
var DefaultSectionNames = []string{
	"TODO",
	"DOING",
	"DONE",
}

// Board is a user's single kanban workspace.
type Board struct {
	ID      int64  `json:"id"`
	OwnerID int64  `json:"owner_id"`
	Name    string `json:"name"`
}

// Section is a named column within a board. Position is the explicit rank of
// the section; sections sharing a position are ordered by ID.
type Section struct {
	ID       int64  `json:"id"`
	BoardID  int64  `json:"board_id"`
	Name     string `json:"name"`
	Position int    `json:"position"`
}

// Task is a single work item belonging to exactly one section.
type Task struct {
	ID        int64  `json:"id"`
	SectionID int64  `json:"section_id"`
	Text      string `json:"text"`
}
