package action

import "github.com/ds124wfegd/mineru-extract/internal/entity"

// Catalog lists every action served by this process.
type Catalog struct {
	actions []Action
}

func NewCatalog(actions ...Action) *Catalog {
	return &Catalog{actions: actions}
}

func (c *Catalog) List() []Action {
	return c.actions
}

func (c *Catalog) Find(name string) (Action, error) {
	for _, a := range c.actions {
		if a.Name == name {
			return a, nil
		}
	}
	return Action{}, entity.ErrActionNotFound
}
