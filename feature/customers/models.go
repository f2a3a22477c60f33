package customers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"loyalty-sync/core/utils"
)

// Customer is a loyalty-enrolled customer. Only CustomerID is mandatory.
type Customer struct {
	CustomerID     string  `json:"customerId" gorm:"column:customerId"`
	Status         *string `json:"status,omitempty" gorm:"column:status"`
	WholesalerID   *int    `json:"wholesalerId,omitempty" gorm:"column:wholesalerId"`
	WholesalerName *string `json:"wholesalerName,omitempty" gorm:"column:wholesalerName"`
}

// remoteCustomer is the loosely typed partner payload.
type remoteCustomer struct {
	CustomerID     any `json:"customerId"`
	Status         any `json:"status"`
	WholesalerID   any `json:"wholesalerId"`
	WholesalerName any `json:"wholesalerName"`
}

func (r remoteCustomer) toCustomer() Customer {
	return Customer{
		CustomerID:     strings.TrimSpace(utils.ToString(r.CustomerID)),
		Status:         utils.NullableString(r.Status),
		WholesalerID:   utils.NullableInt(r.WholesalerID),
		WholesalerName: utils.NullableString(r.WholesalerName),
	}
}

// decodeRoster accepts either a bare array or an object wrapping it in "customers" or "data".
func decodeRoster(body json.RawMessage) ([]remoteCustomer, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, nil
	}

	dec := func(data []byte, out any) error {
		d := json.NewDecoder(bytes.NewReader(data))
		d.UseNumber()
		return d.Decode(out)
	}

	var list []remoteCustomer
	if trimmed[0] == '[' {
		if err := dec(trimmed, &list); err != nil {
			return nil, err
		}
		return list, nil
	}

	var wrapped struct {
		Customers []remoteCustomer `json:"customers"`
		Data      []remoteCustomer `json:"data"`
	}
	if err := dec(trimmed, &wrapped); err != nil {
		return nil, err
	}
	if wrapped.Customers != nil {
		return wrapped.Customers, nil
	}
	if wrapped.Data != nil {
		return wrapped.Data, nil
	}
	return nil, fmt.Errorf("unexpected roster payload")
}
