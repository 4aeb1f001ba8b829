package models

// CartItem is one artwork line in a visitor's cart.
// Display fields are copied from the artwork when the item is added.
type CartItem struct {
	ID       string  `json:"id"`
	Title    string  `json:"title"`
	Price    float64 `json:"price"`
	Image    string  `json:"image,omitempty"`
	Category string  `json:"category,omitempty"`
	Size     string  `json:"size,omitempty"`
	Medium   string  `json:"medium,omitempty"`
	Quantity int     `json:"quantity"`
}

// LineTotal is price times quantity.
func (i CartItem) LineTotal() float64 {
	return i.Price * float64(i.Quantity)
}

// CartState is the whole cart. Total and ItemCount are derived from Items
// and must only be set through Recompute.
type CartState struct {
	Items     []CartItem `json:"items"`
	Total     float64    `json:"total"`
	ItemCount int        `json:"itemCount"`
}

// Recompute refreshes Total and ItemCount from Items.
func (s *CartState) Recompute() {
	var total float64
	var count int
	for _, item := range s.Items {
		total += item.LineTotal()
		count += item.Quantity
	}
	s.Total = total
	s.ItemCount = count
}

// Find returns the index of the item with the given id, or -1.
func (s *CartState) Find(id string) int {
	for i := range s.Items {
		if s.Items[i].ID == id {
			return i
		}
	}
	return -1
}

// Clone returns a deep copy so reducers never share the Items backing array.
func (s CartState) Clone() CartState {
	out := CartState{Total: s.Total, ItemCount: s.ItemCount}
	if s.Items != nil {
		out.Items = make([]CartItem, len(s.Items))
		copy(out.Items, s.Items)
	}
	return out
}
