package websocket

// Command is the inbound envelope a client sends over the socket.
type Command struct {
	Action string `json:"action"`
	Name   string `json:"name,omitempty"`
	RoomID string `json:"roomId,omitempty"`
	Text   string `json:"text,omitempty"`
}

const (
	ActionCreateRoom  = "create_room"
	ActionJoinRoom    = "join_room"
	ActionSendMessage = "send_message"
)

// EventAnnouncement carries operator messages injected through Redis; it is
// a transport-level event, not a hub one.
const EventAnnouncement = "announcement"

type AnnouncementPayload struct {
	Text string `json:"text"`
}
