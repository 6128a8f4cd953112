package navigation

import (
	"strconv"

	"homehub/utils/errors"
)

// Destination names a screen of the rendering client.
type Destination string

const (
	Welcome         Destination = "Welcome"
	Login           Destination = "Login"
	Signup          Destination = "Signup"
	Tabs            Destination = "Tabs"
	Notifications   Destination = "Notifications"
	PropertyDetails Destination = "PropertyDetails"
)

// Tab names inside the Tabs destination.
const (
	TabHome      = "Home"
	TabBookmarks = "Bookmarks"
	TabGrid      = "Grid"
	TabChat      = "Chat"
	TabSettings  = "Settings"
)

var (
	unauthenticatedGraph = []Destination{Welcome, Login, Signup}
	authenticatedGraph   = []Destination{Tabs, Notifications, PropertyDetails}
	tabs                 = []string{TabHome, TabBookmarks, TabGrid, TabChat, TabSettings}
)

// Graph is the set of screens reachable in a controller state.
type Graph struct {
	Destinations []Destination `json:"destinations"`
	Tabs         []string      `json:"tabs,omitempty"`
}

// Route is a resolved navigation request.
type Route struct {
	Destination Destination       `json:"destination"`
	Params      map[string]string `json:"params,omitempty"`
}

func graphFor(state State) Graph {
	switch state {
	case StateUnauthenticated:
		return Graph{Destinations: append([]Destination{}, unauthenticatedGraph...)}
	case StateAuthenticated:
		return Graph{
			Destinations: append([]Destination{}, authenticatedGraph...),
			Tabs:         append([]string{}, tabs...),
		}
	default:
		return Graph{Destinations: []Destination{}}
	}
}

func (g Graph) has(d Destination) bool {
	for _, v := range g.Destinations {
		if v == d {
			return true
		}
	}
	return false
}

func validTab(name string) bool {
	for _, t := range tabs {
		if t == name {
			return true
		}
	}
	return false
}

func invalidParam(message, details string) error {
	return errors.NewAPIError(errors.ErrInvalidInput.Code, message, errors.ErrInvalidInput.Status, details)
}

// resolve checks destination-specific params.
func resolve(d Destination, params map[string]string, listingExists func(int) bool, notificationExists func(string) bool) (Route, error) {
	route := Route{Destination: d}
	switch d {
	case PropertyDetails:
		raw, ok := params["property_id"]
		if !ok {
			return Route{}, invalidParam("PropertyDetails requires property_id", "")
		}
		id, err := strconv.Atoi(raw)
		if err != nil {
			return Route{}, invalidParam("property_id must be an integer", raw)
		}
		if listingExists != nil && !listingExists(id) {
			return Route{}, errors.ErrNotFound
		}
		route.Params = map[string]string{"property_id": raw}
	case Notifications:
		if id, ok := params["notification_id"]; ok {
			if notificationExists != nil && !notificationExists(id) {
				return Route{}, errors.ErrNotFound
			}
			route.Params = map[string]string{"notification_id": id}
		}
	case Tabs:
		screen := params["screen"]
		if screen == "" {
			screen = TabHome
		}
		if !validTab(screen) {
			return Route{}, invalidParam("Unknown tab", screen)
		}
		route.Params = map[string]string{"screen": screen}
	}
	return route, nil
}
