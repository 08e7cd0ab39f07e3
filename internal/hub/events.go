package hub

// Event names match the wire protocol the browser client listens on.
const (
	EventLoginSuccess = "login_success"
	EventRoomCreated  = "room_created"
	EventRoomJoined   = "room_joined"
	EventUserJoined   = "user_joined"
	EventUserLeft     = "user_left"
	EventNewMessage   = "new_message"
	EventRoomsUpdated = "rooms_updated"
	EventError        = "error"
)

// Event is the envelope every delivery uses, whatever the scope.
type Event struct {
	Name string      `json:"event"`
	Data interface{} `json:"data"`
}

type RoomCreatedPayload struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type RoomJoinedPayload struct {
	RoomID   string     `json:"roomId"`
	RoomName string     `json:"roomName"`
	Messages []Message  `json:"messages"`
	Users    []RoomUser `json:"users"`
}

type UserJoinedPayload struct {
	UserID    string `json:"userId"`
	UserName  string `json:"userName"`
	UserPhoto string `json:"userPhoto"`
}

type UserLeftPayload struct {
	UserID   string `json:"userId"`
	UserName string `json:"userName"`
}

type ErrorPayload struct {
	Message string `json:"message"`
}
