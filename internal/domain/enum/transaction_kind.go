package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// TransactionKind represents the kind of business document a cart composes into
type TransactionKind int

const (
	TransactionKindUninitialized TransactionKind = 0
	TransactionKindTakeAway      TransactionKind = 1
	TransactionKindDineIn        TransactionKind = 2
	TransactionKindQuotation     TransactionKind = 3
	TransactionKindConversion    TransactionKind = 4
)

func (k TransactionKind) String() string {
	names := [...]string{"Uninitialized", "Take Away", "Dine In", "Quotation", "Sales Invoice Conversion"}
	if k < 0 || int(k) >= len(names) {
		return "Uninitialized"
	}
	return names[k]
}

func (k TransactionKind) MarshalJSON() ([]byte, error) {
	return json.Marshal(k.String())
}

func (k *TransactionKind) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		// Try unmarshaling as int
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*k = TransactionKind(i)
		return nil
	}
	switch str {
	case "Take Away":
		*k = TransactionKindTakeAway
	case "Dine In":
		*k = TransactionKindDineIn
	case "Quotation":
		*k = TransactionKindQuotation
	case "Sales Invoice Conversion":
		*k = TransactionKindConversion
	default:
		*k = TransactionKindUninitialized
	}
	return nil
}

func (k TransactionKind) Value() (driver.Value, error) {
	return int64(k), nil
}

func (k *TransactionKind) Scan(value interface{}) error {
	if value == nil {
		*k = TransactionKindUninitialized
		return nil
	}
	switch v := value.(type) {
	case int64:
		*k = TransactionKind(v)
	case int:
		*k = TransactionKind(v)
	}
	return nil
}
