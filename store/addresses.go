package store

import (
	"encoding/json"
	"slices"

	"storefront-api/models"
)

// AddressState is an immutable view of the address book and the address
// currently chosen for checkout.
type AddressState struct {
	addresses  []models.Address
	selectedID string
}

func (s AddressState) All() []models.Address {
	out := make([]models.Address, len(s.addresses))
	for i, a := range s.addresses {
		out[i] = a.Clone()
	}
	return out
}

func (s AddressState) ByID(id string) (models.Address, bool) {
	i := s.indexOf(id)
	if i < 0 {
		return models.Address{}, false
	}
	return s.addresses[i].Clone(), true
}

func (s AddressState) Default() (models.Address, bool) {
	for _, a := range s.addresses {
		if a.IsDefault {
			return a.Clone(), true
		}
	}
	return models.Address{}, false
}

// Selected resolves the checkout pointer; false when nothing is selected.
func (s AddressState) Selected() (models.Address, bool) {
	if s.selectedID == "" {
		return models.Address{}, false
	}
	return s.ByID(s.selectedID)
}

func (s AddressState) SelectedID() string {
	return s.selectedID
}

func (s AddressState) Len() int {
	return len(s.addresses)
}

func (s AddressState) MarshalJSON() ([]byte, error) {
	var selected *string
	if s.selectedID != "" {
		id := s.selectedID
		selected = &id
	}
	return json.Marshal(struct {
		Addresses  []models.Address `json:"addresses"`
		SelectedID *string          `json:"selected_id"`
	}{s.All(), selected})
}

func (s AddressState) indexOf(id string) int {
	return slices.IndexFunc(s.addresses, func(a models.Address) bool { return a.ID == id })
}

// withDefault returns a copy of addrs where only id carries isDefault
func withDefault(addrs []models.Address, id string) []models.Address {
	out := make([]models.Address, len(addrs))
	for i, a := range addrs {
		a.IsDefault = a.ID == id
		out[i] = a
	}
	return out
}

// Addresses manages the address book. At most one address is the default
// at any time, and exactly one right after Add or SetDefault.
type Addresses struct {
	*observable[AddressState]
	cfg settings
}

func NewAddresses(opts ...Option) *Addresses {
	return &Addresses{
		observable: newObservable(AddressState{}),
		cfg:        applyOptions(opts),
	}
}

// Add stores a new address. The first address, or one requesting it,
// becomes the sole default and is selected for checkout.
func (s *Addresses) Add(in models.AddressInput) models.Address {
	now := s.cfg.now()
	addr := models.Address{
		ID:           "addr_" + s.cfg.newID(),
		UserID:       in.UserID,
		Type:         in.Type,
		Label:        in.Label,
		FullName:     in.FullName,
		PhoneNumber:  in.PhoneNumber,
		AddressLine1: in.AddressLine1,
		AddressLine2: in.AddressLine2,
		Landmark:     in.Landmark,
		City:         in.City,
		State:        in.State,
		Pincode:      in.Pincode,
		Latitude:     in.Latitude,
		Longitude:    in.Longitude,
		IsDefault:    in.IsDefault,
		IsActive:     in.IsActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}.Clone()

	s.update(func(cur AddressState) (AddressState, bool) {
		addrs := append(slices.Clone(cur.addresses), addr)
		selected := cur.selectedID
		if len(addrs) == 1 || addr.IsDefault {
			addrs = withDefault(addrs, addr.ID)
			selected = addr.ID
		}
		addr = addrs[len(addrs)-1]
		return AddressState{addresses: addrs, selectedID: selected}, true
	})
	return addr.Clone()
}

// Update merges patch into the address. Setting IsDefault makes the
// address the sole default; clearing it leaves the book without one.
func (s *Addresses) Update(id string, patch models.AddressPatch) (models.Address, bool) {
	var updated models.Address
	_, ok := s.update(func(cur AddressState) (AddressState, bool) {
		i := cur.indexOf(id)
		if i < 0 {
			return cur, false
		}
		addrs := slices.Clone(cur.addresses)
		a := patch.Apply(addrs[i])
		a.UpdatedAt = s.cfg.now()
		addrs[i] = a
		if patch.IsDefault != nil {
			if *patch.IsDefault {
				addrs = withDefault(addrs, id)
			} else {
				addrs[i].IsDefault = false
			}
		}
		updated = addrs[i].Clone()
		return AddressState{addresses: addrs, selectedID: cur.selectedID}, true
	})
	return updated, ok
}

// Delete removes the address. A deleted default hands the flag to the
// first remaining address; a deleted selection clears the selection.
func (s *Addresses) Delete(id string) bool {
	_, ok := s.update(func(cur AddressState) (AddressState, bool) {
		i := cur.indexOf(id)
		if i < 0 {
			return cur, false
		}
		wasDefault := cur.addresses[i].IsDefault
		addrs := slices.Delete(slices.Clone(cur.addresses), i, i+1)
		if wasDefault && len(addrs) > 0 {
			addrs[0].IsDefault = true
		}
		selected := cur.selectedID
		if selected == id {
			selected = ""
		}
		return AddressState{addresses: addrs, selectedID: selected}, true
	})
	return ok
}

// SetDefault makes id the sole default and selects it for checkout.
func (s *Addresses) SetDefault(id string) bool {
	_, ok := s.update(func(cur AddressState) (AddressState, bool) {
		if cur.indexOf(id) < 0 {
			return cur, false
		}
		return AddressState{addresses: withDefault(cur.addresses, id), selectedID: id}, true
	})
	return ok
}

// Select points checkout at id without touching the default flag.
// An empty id clears the selection; unknown ids are ignored.
func (s *Addresses) Select(id string) bool {
	_, ok := s.update(func(cur AddressState) (AddressState, bool) {
		if id != "" && cur.indexOf(id) < 0 {
			return cur, false
		}
		return AddressState{addresses: cur.addresses, selectedID: id}, true
	})
	return ok
}

// Clear empties the address book and the selection.
func (s *Addresses) Clear() {
	s.update(func(AddressState) (AddressState, bool) {
		return AddressState{}, true
	})
}
