package models

// Room types as stored in the rooms table. Classrooms (CR) host single
// sections, lecture halls (LT) host combined sections.
const (
	RoomTypeClassroom = "CR"
	RoomTypeHall      = "LT"
)

// Room is a physical teaching space.
type Room struct {
	ID         int64  `db:"id" json:"id"`
	RoomNumber string `db:"room_number" json:"roomNumber"`
	RoomType   string `db:"room_type" json:"roomType"`
	Capacity   int    `db:"capacity" json:"capacity"`
}
