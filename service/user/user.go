package user

import (
	"github.com/francoispqt/gojay"
	"github.com/shopmesh/shopmesh/service"
)

//User represents a user record
type User struct {
	ID   int
	Name string
}

func (u *User) MarshalJSONObject(enc *gojay.Encoder) {
	enc.IntKey("id", u.ID)
	enc.StringKey("name", u.Name)
}

func (u *User) IsNil() bool {
	return u == nil
}

func (u *User) UnmarshalJSONObject(dec *gojay.Decoder, key string) error {
	switch key {
	case "id":
		return dec.Int(&u.ID)
	case "name":
		return dec.String(&u.Name)
	}
	return nil
}

func (u *User) NKeys() int {
	return 2
}

//Defaults returns the seed user collection
func Defaults() []*User {
	return []*User{
		{ID: 1, Name: "John Doe"},
		{ID: 2, Name: "Jane Smith"},
	}
}

//NewStore creates a store seeded with default users
func NewStore() (*service.Store, error) {
	store := service.NewStore()
	for _, item := range Defaults() {
		data, err := gojay.MarshalJSONObject(item)
		if err != nil {
			return nil, err
		}
		store.Append(data)
	}
	return store, nil
}
