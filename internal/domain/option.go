package domain

// Option represents a single row of the options table. Values are stored
// JSON-encoded.
type Option struct {
	Key      string `db:"option_key"`
	Value    []byte `db:"option_value"`
	Autoload bool   `db:"autoload"`
}

type OptionTable struct {
	Key      string
	Value    string
	Autoload string
}

func GetOptionTable() OptionTable {
	return OptionTable{
		Key:      "option_key",
		Value:    "option_value",
		Autoload: "autoload",
	}
}

func (OptionTable) TableName() string {
	return "options"
}
