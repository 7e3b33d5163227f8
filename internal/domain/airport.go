package domain

type Airport struct {
	ID             int64   `json:"id"`
	Name           string  `json:"name" validate:"notblank"`
	ClosestBigCity string  `json:"closest_big_city" validate:"notblank"`
	Image          *string `json:"image"`
}

// Route is directional. Source and destination may be the same airport.
type Route struct {
	ID            int64 `json:"id"`
	SourceID      int64 `json:"source" validate:"required"`
	DestinationID int64 `json:"destination" validate:"required"`
	Distance      int   `json:"distance" validate:"gte=0"`
}

type RouteListItem struct {
	ID          int64  `json:"id"`
	Source      string `json:"source"`
	Destination string `json:"destination"`
	Distance    int    `json:"distance"`
}

type RouteDetail struct {
	ID          int64   `json:"id"`
	Source      Airport `json:"source"`
	Destination Airport `json:"destination"`
	Distance    int     `json:"distance"`
}

type RouteFilter struct {
	Source      string
	Destination string
}
