package usecases

import "houses-api/entities"

// Actor is the authenticated identity behind a request.
type Actor struct {
	ID   string
	Role string
}

func (a Actor) IsAdmin() bool { return a.Role == entities.RoleAdmin }

func ActorFromUser(u *entities.User) Actor {
	return Actor{ID: u.ID, Role: u.Role}
}
