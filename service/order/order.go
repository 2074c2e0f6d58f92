package order

import (
	"github.com/francoispqt/gojay"
	"github.com/pkg/errors"
	"github.com/shopmesh/shopmesh/service"
)

//Order represents an order record
type Order struct {
	ID        int
	UserID    int
	ProductID int
	Quantity  int
}

func (o *Order) MarshalJSONObject(enc *gojay.Encoder) {
	enc.IntKey("id", o.ID)
	enc.IntKey("userId", o.UserID)
	enc.IntKey("productId", o.ProductID)
	enc.IntKey("quantity", o.Quantity)
}

func (o *Order) IsNil() bool {
	return o == nil
}

func (o *Order) UnmarshalJSONObject(dec *gojay.Decoder, key string) error {
	switch key {
	case "id":
		return dec.Int(&o.ID)
	case "userId":
		return dec.Int(&o.UserID)
	case "productId":
		return dec.Int(&o.ProductID)
	case "quantity":
		return dec.Int(&o.Quantity)
	}
	return nil
}

func (o *Order) NKeys() int {
	return 4
}

//Appender validates and stores inbound orders
type Appender struct{}

//Append decodes, validates and stores an order, an order without ID gets the next one
func (a *Appender) Append(store *service.Store, data []byte) ([]byte, error) {
	order := &Order{}
	if err := gojay.UnmarshalJSONObject(data, order); err != nil {
		return nil, errors.Wrapf(err, "failed to decode order: %s", data)
	}
	if order.UserID <= 0 {
		return nil, errors.New("order userId was missing")
	}
	if order.ProductID <= 0 {
		return nil, errors.New("order productId was missing")
	}
	if order.Quantity <= 0 {
		order.Quantity = 1
	}
	if order.ID == 0 {
		order.ID = store.Size() + 1
	}
	encoded, err := gojay.MarshalJSONObject(order)
	if err != nil {
		return nil, err
	}
	store.Append(encoded)
	return encoded, nil
}

//NewAppender creates an order appender
func NewAppender() *Appender {
	return &Appender{}
}
