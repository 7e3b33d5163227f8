package domain

type AirplaneType struct {
	ID   int64  `json:"id"`
	Name string `json:"name" validate:"notblank"`
}

type Airplane struct {
	ID             int64  `json:"id"`
	Name           string `json:"name" validate:"notblank"`
	Rows           int    `json:"rows" validate:"gte=1"`
	SeatsInRow     int    `json:"seats_in_row" validate:"gte=1"`
	AirplaneTypeID int64  `json:"airplane_type" validate:"required"`
}

// Capacity is derived and never stored.
func (a Airplane) Capacity() int {
	return a.Rows * a.SeatsInRow
}

func (a Airplane) Layout() SeatLayout {
	return SeatLayout{Rows: a.Rows, SeatsInRow: a.SeatsInRow}
}

type AirplaneListItem struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Rows         int    `json:"rows"`
	SeatsInRow   int    `json:"seats_in_row"`
	AirplaneType string `json:"airplane_type"`
	Capacity     int    `json:"capacity"`
}

type AirplaneDetail struct {
	ID           int64        `json:"id"`
	Name         string       `json:"name"`
	Rows         int          `json:"rows"`
	SeatsInRow   int          `json:"seats_in_row"`
	AirplaneType AirplaneType `json:"airplane_type"`
	Capacity     int          `json:"capacity"`
}

type AirplaneFilter struct {
	Name   string
	TypeID int64
}

type Crew struct {
	ID        int64  `json:"id"`
	FirstName string `json:"first_name" validate:"notblank"`
	LastName  string `json:"last_name" validate:"notblank"`
}

func (c Crew) FullName() string {
	return c.FirstName + " " + c.LastName
}
