// Package cart holds the shopping-cart state container.
//
// State only changes through Reduce. The Container wraps one session's state,
// writes every new state through the storage adapter and hydrates from it on construction.
package cart

import "github.com/01moynul/artstudio-golang/internal/models"

// Action is one of AddItem, RemoveItem, UpdateQuantity or Clear.
type Action interface {
	isAction()
}

// AddItem adds one of Item. An existing line with the same id gets quantity+1.
type AddItem struct {
	Item models.CartItem
}

// RemoveItem drops the line with ID. Absent ids are a no-op.
type RemoveItem struct {
	ID string
}

// UpdateQuantity sets the line's quantity; below 1 it removes the line.
type UpdateQuantity struct {
	ID       string
	Quantity int
}

// Clear empties the cart.
type Clear struct{}

func (AddItem) isAction()        {}
func (RemoveItem) isAction()     {}
func (UpdateQuantity) isAction() {}
func (Clear) isAction()          {}

// Reduce returns the state after applying action. It never mutates state.
func Reduce(state models.CartState, action Action) models.CartState {
	next := state.Clone()

	switch a := action.(type) {
	case AddItem:
		if i := next.Find(a.Item.ID); i >= 0 {
			next.Items[i].Quantity++
		} else {
			item := a.Item
			item.Quantity = 1
			next.Items = append(next.Items, item)
		}

	case RemoveItem:
		next.Items = without(next.Items, a.ID)

	case UpdateQuantity:
		if a.Quantity < 1 {
			next.Items = without(next.Items, a.ID)
			break
		}
		if i := next.Find(a.ID); i >= 0 {
			next.Items[i].Quantity = a.Quantity
		}

	case Clear:
		next.Items = nil
	}

	if next.Items == nil {
		next.Items = []models.CartItem{}
	}
	next.Recompute()
	return next
}

func without(items []models.CartItem, id string) []models.CartItem {
	out := items[:0]
	for _, item := range items {
		if item.ID != id {
			out = append(out, item)
		}
	}
	return out
}

// Empty is the state of a new cart.
func Empty() models.CartState {
	return models.CartState{Items: []models.CartItem{}}
}

// ItemFromArtwork copies the artwork's display fields into a cart line.
func ItemFromArtwork(a *models.ArtworkRecord) models.CartItem {
	return models.CartItem{
		ID:       a.ID,
		Title:    a.Title,
		Price:    a.Price,
		Image:    a.PreviewImage(),
		Category: a.Category,
		Size:     a.Size,
		Medium:   a.Medium,
		Quantity: 1,
	}
}
