package users

import (
	"github.com/taskfolio/taskfolio/internal/bus"
)

// Register wires the service's handlers onto the bus. Called once during
// startup; registering twice panics.
func Register(b *bus.Bus, s *Service) {
	bus.Handle(b, s.RegisterUser)
	bus.Handle(b, s.RenameUser)
	bus.Handle(b, s.DeleteUser)
	bus.Handle(b, s.GetUser)
	bus.Handle(b, s.ListUsers)
}
