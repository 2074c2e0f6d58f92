package product

import (
	"github.com/francoispqt/gojay"
	"github.com/shopmesh/shopmesh/service"
)

//Product represents a product record
type Product struct {
	ID    int
	Name  string
	Price float64
}

func (p *Product) MarshalJSONObject(enc *gojay.Encoder) {
	enc.IntKey("id", p.ID)
	enc.StringKey("name", p.Name)
	enc.FloatKey("price", p.Price)
}

func (p *Product) IsNil() bool {
	return p == nil
}

func (p *Product) UnmarshalJSONObject(dec *gojay.Decoder, key string) error {
	switch key {
	case "id":
		return dec.Int(&p.ID)
	case "name":
		return dec.String(&p.Name)
	case "price":
		return dec.Float(&p.Price)
	}
	return nil
}

func (p *Product) NKeys() int {
	return 3
}

//Defaults returns the seed product collection
func Defaults() []*Product {
	return []*Product{
		{ID: 1, Name: "Laptop", Price: 999.99},
		{ID: 2, Name: "Phone", Price: 499.99},
	}
}

//NewStore creates a store seeded with default products
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
