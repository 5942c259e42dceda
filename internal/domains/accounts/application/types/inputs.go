package types

// AreaRefPatch distinguishes "leave the area reference untouched" from
// "explicitly clear it" on partial updates. Set=false means absent.
type AreaRefPatch struct {
	Set bool
	ID  *int64
}

// CreateUserInput captures the request to register an account.
type CreateUserInput struct {
	Username string
	Name     string
	Phone    string
	Type     string
	AreaID   *int64
}

// UpdateUserInput applies a partial profile update. Only non-nil fields
// are written; the account type is immutable and deliberately absent.
type UpdateUserInput struct {
	ID     int64
	Name   *string
	Phone  *string
	AreaID AreaRefPatch
}

// CreateAddressInput captures a new delivery address.
type CreateAddressInput struct {
	UserID    int64
	Label     string
	Street    string
	City      string
	State     string
	Zip       string
	IsDefault bool
	AreaID    *int64
}

// UpdateAddressInput applies a partial address update.
type UpdateAddressInput struct {
	ID        int64
	Label     *string
	Street    *string
	City      *string
	State     *string
	Zip       *string
	IsDefault *bool
	AreaID    AreaRefPatch
}
