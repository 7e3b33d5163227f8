package domain

import "time"

type Flight struct {
	ID            int64     `json:"id"`
	RouteID       int64     `json:"route" validate:"required"`
	AirplaneID    int64     `json:"airplane" validate:"required"`
	DepartureTime time.Time `json:"departure_time" validate:"required"`
	ArrivalTime   time.Time `json:"arrival_time" validate:"required"`
	CrewIDs       []int64   `json:"crews" validate:"dive,gt=0"`
}

// FlightListItem is the listing shape of a flight. TicketsAvailable is computed
// per query from committed tickets.
type FlightListItem struct {
	ID               int64     `json:"id"`
	Source           string    `json:"source"`
	Destination      string    `json:"destination"`
	Airplane         string    `json:"airplane"`
	DepartureTime    time.Time `json:"departure_time"`
	ArrivalTime      time.Time `json:"arrival_time"`
	Crews            []string  `json:"crews"`
	TicketsAvailable int       `json:"tickets_available"`
}

type FlightDetail struct {
	ID            int64            `json:"id"`
	Route         RouteListItem    `json:"route"`
	Airplane      AirplaneListItem `json:"airplane"`
	DepartureTime time.Time        `json:"departure_time"`
	ArrivalTime   time.Time        `json:"arrival_time"`
	Crews         []Crew           `json:"crews"`
	TakenPlaces   []Place          `json:"taken_places"`
}

type Place struct {
	Row  int `json:"row"`
	Seat int `json:"seat"`
}

// FlightFilter narrows flight listings. Zero values mean "no filter".
type FlightFilter struct {
	Source      string
	Destination string
	Airplane    string
	Departure   *time.Time
	Arrival     *time.Time
}
