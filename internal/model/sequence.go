package model

// Sequence is a named counter. A row is locked and incremented inside the
// same transaction as the insert that consumes the value, so two concurrent
// creates can never read the same number.
type Sequence struct {
	Name  string `gorm:"type:varchar(50);primaryKey" json:"name"`
	Value int64  `gorm:"not null;default:0" json:"value"`
}

// TableName specifies the table name for GORM.
func (Sequence) TableName() string {
	return "sequences"
}

// SeqProductCode feeds the P#### product code allocator.
const SeqProductCode = "product_code"
