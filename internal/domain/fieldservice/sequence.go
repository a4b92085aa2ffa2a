package fieldservice

// Sequence is a named monotonic counter, advanced inside the caller's transaction.
type Sequence struct {
	Name  string `gorm:"column:name;primaryKey" json:"name"`
	Value int64  `gorm:"column:value;not null" json:"value"`
}

func (Sequence) TableName() string { return "sequence_counter" }
