package todolists

import (
	"github.com/taskfolio/taskfolio/internal/bus"
	"github.com/taskfolio/taskfolio/internal/contracts"
)

// Register wires the service's handlers and subscriptions onto the bus.
// Called once during startup; registering twice panics.
func Register(b *bus.Bus, s *Service) {
	bus.Handle(b, s.CreateList)
	bus.Handle(b, s.RenameList)
	bus.Handle(b, s.DeleteList)
	bus.Handle(b, s.AddItem)
	bus.Handle(b, s.AddItems)
	bus.Handle(b, s.RemoveItem)
	bus.Handle(b, s.RenameItem)
	bus.Handle(b, s.CompleteItem)
	bus.Handle(b, s.ReopenItem)
	bus.Handle(b, s.GetList)
	bus.Handle(b, s.ListLists)
	bus.Handle(b, s.Snapshot)

	bus.Subscribe[contracts.UserDeleted](b, "todolists.cascade_delete", s.OnUserDeleted)
}
