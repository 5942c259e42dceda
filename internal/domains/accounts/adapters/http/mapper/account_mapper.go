package mapper

import (
	"encoding/json"

	accounttypes "github.com/aquaflow/aquaflow-api/internal/domains/accounts/application/types"
	"github.com/aquaflow/aquaflow-api/internal/domains/accounts/domain"
)

// OptionalAreaRef preserves the difference between an absent areaId field
// and an explicit null while decoding partial updates.
type OptionalAreaRef struct {
	Present bool
	Value   *int64
}

// UnmarshalJSON records presence before decoding the value.
func (o *OptionalAreaRef) UnmarshalJSON(data []byte) error {
	o.Present = true
	if string(data) == "null" {
		o.Value = nil
		return nil
	}
	return json.Unmarshal(data, &o.Value)
}

func (o OptionalAreaRef) toPatch() accounttypes.AreaRefPatch {
	return accounttypes.AreaRefPatch{Set: o.Present, ID: o.Value}
}

// User is the HTTP representation of an account.
type User struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Name     string `json:"name"`
	Phone    string `json:"phone,omitempty"`
	Type     string `json:"type"`
	AreaID   *int64 `json:"areaId,omitempty"`
}

// CreateUser captures the inbound registration payload.
type CreateUser struct {
	Username string `json:"username" binding:"required"`
	Name     string `json:"name" binding:"required"`
	Phone    string `json:"phone"`
	Type     string `json:"type" binding:"required"`
	AreaID   *int64 `json:"areaId"`
}

// MutationUser captures partial profile updates while preserving field presence.
type MutationUser struct {
	Name   *string         `json:"name,omitempty"`
	Phone  *string         `json:"phone,omitempty"`
	AreaID OptionalAreaRef `json:"areaId"`
}

// Address is the HTTP representation of a delivery address.
type Address struct {
	ID        int64  `json:"id"`
	UserID    int64  `json:"userId"`
	Label     string `json:"label,omitempty"`
	Street    string `json:"street"`
	City      string `json:"city"`
	State     string `json:"state,omitempty"`
	Zip       string `json:"zip,omitempty"`
	IsDefault bool   `json:"isDefault"`
	AreaID    *int64 `json:"areaId,omitempty"`
}

// CreateAddress captures the inbound address payload.
type CreateAddress struct {
	Label     string `json:"label"`
	Street    string `json:"street" binding:"required"`
	City      string `json:"city" binding:"required"`
	State     string `json:"state"`
	Zip       string `json:"zip"`
	IsDefault bool   `json:"isDefault"`
	AreaID    *int64 `json:"areaId"`
}

// MutationAddress captures partial address updates while preserving field presence.
type MutationAddress struct {
	Label     *string         `json:"label,omitempty"`
	Street    *string         `json:"street,omitempty"`
	City      *string         `json:"city,omitempty"`
	State     *string         `json:"state,omitempty"`
	Zip       *string         `json:"zip,omitempty"`
	IsDefault *bool           `json:"isDefault,omitempty"`
	AreaID    OptionalAreaRef `json:"areaId"`
}

// ToCreateUserInput converts the registration payload into an application input.
func ToCreateUserInput(model CreateUser) accounttypes.CreateUserInput {
	return accounttypes.CreateUserInput{
		Username: model.Username,
		Name:     model.Name,
		Phone:    model.Phone,
		Type:     model.Type,
		AreaID:   cloneID(model.AreaID),
	}
}

// ToUpdateUserInput converts a partial update payload, preserving presence.
func ToUpdateUserInput(id int64, model MutationUser) accounttypes.UpdateUserInput {
	return accounttypes.UpdateUserInput{
		ID:     id,
		Name:   cloneString(model.Name),
		Phone:  cloneString(model.Phone),
		AreaID: model.AreaID.toPatch(),
	}
}

// ToCreateAddressInput converts the address payload into an application input.
func ToCreateAddressInput(userID int64, model CreateAddress) accounttypes.CreateAddressInput {
	return accounttypes.CreateAddressInput{
		UserID:    userID,
		Label:     model.Label,
		Street:    model.Street,
		City:      model.City,
		State:     model.State,
		Zip:       model.Zip,
		IsDefault: model.IsDefault,
		AreaID:    cloneID(model.AreaID),
	}
}

// ToUpdateAddressInput converts a partial address update, preserving presence.
func ToUpdateAddressInput(id int64, model MutationAddress) accounttypes.UpdateAddressInput {
	return accounttypes.UpdateAddressInput{
		ID:        id,
		Label:     cloneString(model.Label),
		Street:    cloneString(model.Street),
		City:      cloneString(model.City),
		State:     cloneString(model.State),
		Zip:       cloneString(model.Zip),
		IsDefault: cloneBool(model.IsDefault),
		AreaID:    model.AreaID.toPatch(),
	}
}

// FromDomainUser maps an account aggregate into its transport shape.
func FromDomainUser(u *domain.User) User {
	return User{
		ID:       u.ID,
		Username: u.Username,
		Name:     u.Name,
		Phone:    u.Phone,
		Type:     string(u.Type),
		AreaID:   cloneID(u.AreaID),
	}
}

// FromDomainAddress maps an address into its transport shape.
func FromDomainAddress(a *domain.Address) Address {
	return Address{
		ID:        a.ID,
		UserID:    a.UserID,
		Label:     a.Label,
		Street:    a.Street,
		City:      a.City,
		State:     a.State,
		Zip:       a.Zip,
		IsDefault: a.IsDefault,
		AreaID:    cloneID(a.AreaID),
	}
}

// FromDomainAddressList maps a slice of addresses to transport shapes.
func FromDomainAddressList(list []*domain.Address) []Address {
	result := make([]Address, 0, len(list))
	for _, a := range list {
		result = append(result, FromDomainAddress(a))
	}
	return result
}

func cloneID(value *int64) *int64 {
	if value == nil {
		return nil
	}
	copy := *value
	return &copy
}

func cloneString(value *string) *string {
	if value == nil {
		return nil
	}
	copy := *value
	return &copy
}

func cloneBool(value *bool) *bool {
	if value == nil {
		return nil
	}
	copy := *value
	return &copy
}
