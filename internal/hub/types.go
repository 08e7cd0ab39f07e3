package hub

import "time"

// User is the identity bound to a connection at session start. It is rebuilt
// from token claims on every connect and lives exactly as long as its
// connection.
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Photo string `json:"photo"`
}

// Connection is one live transport session with a bound user. RoomID is
// empty while the connection is in no room; a connection is in at most one
// room at a time.
type Connection struct {
	ID     string
	User   User
	RoomID string
}

// Message is immutable once appended. Author display fields are denormalized
// so history survives the author's disconnect.
type Message struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	UserID    string `json:"userId"`
	UserName  string `json:"userName"`
	UserPhoto string `json:"userPhoto"`
	Timestamp string `json:"timestamp"`
}

// Room lives for the rest of the process once created; there is no deletion
// path. Members holds connection ids.
type Room struct {
	ID        string
	Name      string
	Messages  []Message
	Members   map[string]struct{}
	CreatedAt time.Time
}

// RoomUser is the member shape exposed in room_joined payloads and room
// summaries.
type RoomUser struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Photo string `json:"photo"`
}

// RoomSummary is one entry of the rooms_updated snapshot.
type RoomSummary struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	UserCount int        `json:"userCount"`
	Users     []RoomUser `json:"users"`
}
