package models

type ContextKey string

// Filter is the generic field/operator/value condition every data query
// accepts. Operators follow the "eq", "ne", "gt", "lt", "gte", "lte",
// "contains", "in" convention.
type Filter struct {
	Field    string      `json:"field" bson:"field"`
	Operator string      `json:"operator" bson:"operator"`
	Value    interface{} `json:"value" bson:"value"`
}

// FiltersFromMap converts an open key/value filter map into Filter
// conditions. A key of the form "field__op" selects the operator,
// a bare key means equality.
func FiltersFromMap(filters map[string]any) []Filter {
	var out []Filter
	for k, v := range filters {
		field := k
		operator := "eq"
		for i := 0; i+1 < len(k); i++ {
			if k[i] == '_' && k[i+1] == '_' {
				field = k[:i]
				operator = k[i+2:]
				break
			}
		}
		out = append(out, Filter{Field: field, Operator: operator, Value: v})
	}
	return out
}
