package campusmap

import (
	"context"

	"github.com/campus-events/portal/internal/gateway"
	"github.com/campus-events/portal/internal/models"
)

// markerPage is the map page that carries room markers.
const markerPage = 6

// Static marker positions (percent offsets) for the rooms drawn on page 6.
var roomPositions = map[string]Position{
	"B502": {Top: "50%", Left: "38%"},
	"B504": {Top: "35%", Left: "40%"},
	"B506": {Top: "25%", Left: "40%"},
}

// Position is a marker's offset on the page, as percentages of the
// rendered document.
type Position struct {
	Top  string `json:"top"`
	Left string `json:"left"`
}

// Marker is one room pin: the static position joined to the live room
// record and the events booked into it.
type Marker struct {
	Room     models.Room    `json:"room"`
	Position Position       `json:"position"`
	Events   []models.Event `json:"events"`
}

// Markers resolves the static page positions against live rooms and
// annotates each with that room's events. Pages other than the marker page
// have no pins.
func Markers(ctx context.Context, api *gateway.Client, page int) ([]Marker, error) {
	if page != markerPage {
		return []Marker{}, nil
	}
	rooms, err := api.ListRooms(ctx, gateway.RoomListParams{Limit: gateway.Ptr(100)})
	if err != nil {
		return nil, err
	}
	events, err := api.ListEvents(ctx, gateway.EventListParams{Limit: gateway.Ptr(100)})
	if err != nil {
		return nil, err
	}

	markers := make([]Marker, 0, len(roomPositions))
	for i := range rooms {
		room := rooms[i]
		pos, ok := roomPositions[room.Name]
		if !ok {
			continue
		}
		marker := Marker{Room: room, Position: pos, Events: []models.Event{}}
		for j := range events {
			if events[j].RoomID != nil && *events[j].RoomID == room.ID {
				marker.Events = append(marker.Events, events[j])
			}
		}
		markers = append(markers, marker)
	}
	return markers, nil
}
