package column

// Values is a boxed reference column used by tests and by types whose
// physical encoding has not been specialized yet. Production column types
// (flat numerics, dictionary strings, arrays) live with their data types;
// this container only satisfies the Column contract.
type Values struct {
	values []interface{}
	// zero value appended by AppendDefault
	def interface{}
}

// NewValues creates an empty boxed column whose default value is def.
func NewValues(def interface{}) *Values {
	return &Values{
		values: make([]interface{}, 0, 64),
		def:    def,
	}
}

func (c *Values) Len() int {
	return len(c.values)
}

func (c *Values) Get(i int) interface{} {
	return c.values[i]
}

func (c *Values) Append(value interface{}) error {
	c.values = append(c.values, value)
	return nil
}

func (c *Values) AppendDefault() {
	c.values = append(c.values, c.def)
}

func (c *Values) ByteSize() int64 {
	var total int64
	for _, v := range c.values {
		total += sizeOfValue(v)
	}
	return total
}

func (c *Values) Clear() {
	c.values = c.values[:0]
}

func sizeOfValue(v interface{}) int64 {
	switch t := v.(type) {
	case string:
		return int64(len(t)) + 16 // string header overhead
	case []byte:
		return int64(len(t)) + 24
	case bool:
		return 1
	case nil:
		return 8
	default:
		return 8
	}
}
