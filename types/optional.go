package types

type (
	// OptionalInteger is an integer that may be absent. The MML grammar
	// lets most numeric arguments be omitted, and omitted is not the same
	// as zero, so the distinction is kept explicit.
	OptionalInteger struct {
		value  int
		exists bool
	}
)

func NewOptionalInteger(value int, exists bool) OptionalInteger {
	return OptionalInteger{value, exists}
}

func NewOptionalIntegerOf(value int) OptionalInteger {
	return OptionalInteger{
		value:  value,
		exists: true,
	}
}

func NewEmptyOptionalInteger() OptionalInteger {
	return OptionalInteger{
		exists: false,
	}
}

func (i OptionalInteger) Unpack() (int, bool) {
	return i.value, i.exists
}

func (i OptionalInteger) Value() int {
	if !i.exists {
		panic("Access value of empty OptionalInteger")
	}
	return i.value
}

// OrDefault returns the value, or def when the integer is absent.
func (i OptionalInteger) OrDefault(def int) int {
	if !i.exists {
		return def
	}
	return i.value
}

func (i OptionalInteger) Empty() bool {
	return !i.exists
}

func (i OptionalInteger) Equals(value int) bool {
	return i.exists && i.value == value
}
