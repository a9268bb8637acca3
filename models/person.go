package models

// Person is a deduplicated identity credited by entries. People are created
// implicitly the first time an entry references their name and deliberately
// survive the deletion of their last entry, acting as a lightweight directory.
type Person struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"not null" json:"name"`
	// NameKey is the lowercased name; the unique index on it is what makes
	// concurrent find-or-create calls converge on a single row.
	NameKey string `gorm:"uniqueIndex;not null" json:"-"`
}

func (Person) TableName() string {
	return "people"
}
