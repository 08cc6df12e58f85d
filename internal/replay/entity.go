package replay

// PropKind tags the decoded value of a send-prop.
type PropKind string

const (
	PropInt    PropKind = "int"
	PropFloat  PropKind = "float"
	PropString PropKind = "string"
)

// PropIdentifier names a networked property by its send-table and field.
type PropIdentifier struct {
	Table string `json:"table"`
	Name  string `json:"name"`
}

// PropValue is the decoded value of one property update. Accessors return
// the type's zero value on a kind mismatch; a malformed value is never an
// error at this layer.
type PropValue struct {
	Kind     PropKind `json:"kind"`
	IntVal   int64    `json:"int,omitempty"`
	FloatVal float64  `json:"float,omitempty"`
	StrVal   string   `json:"string,omitempty"`
}

// Int returns the integer value, or 0 if the prop is not an integer.
func (v PropValue) Int() int64 {
	if v.Kind != PropInt {
		return 0
	}
	return v.IntVal
}

// Float returns the float value, or 0 if the prop is not a float.
func (v PropValue) Float() float64 {
	if v.Kind != PropFloat {
		return 0
	}
	return v.FloatVal
}

// Text returns the string value, or "" if the prop is not a string.
func (v PropValue) Text() string {
	if v.Kind != PropString {
		return ""
	}
	return v.StrVal
}

// IntProp builds an integer PropValue. Test and fixture helper.
func IntProp(v int64) PropValue { return PropValue{Kind: PropInt, IntVal: v} }

// FloatProp builds a float PropValue.
func FloatProp(v float64) PropValue { return PropValue{Kind: PropFloat, FloatVal: v} }

// SendProp pairs a property identifier with its updated value.
type SendProp struct {
	Ident PropIdentifier `json:"ident"`
	Value PropValue      `json:"value"`
}

// PacketEntity is one entity's worth of property updates for the current
// tick. ServerClass indexes the class list from the data tables.
type PacketEntity struct {
	ID          EntityID   `json:"id"`
	ServerClass ClassID    `json:"server_class"`
	Props       []SendProp `json:"props"`
}
