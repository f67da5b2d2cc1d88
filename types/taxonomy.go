package types

// Category is the root of the archive taxonomy.
type Category struct {
	// ID is the unique identifier of the category.
	ID int `json:"id" db:"id"`

	// Name is the human-readable label of the category.
	Name string `json:"name" db:"name"`
}

// Subcategory groups folders under a Category.
type Subcategory struct {
	// ID is the unique identifier of the subcategory.
	ID int `json:"id" db:"id"`

	// Name is the human-readable label of the subcategory.
	Name string `json:"name" db:"name"`

	// CategoryID identifies the owning category.
	CategoryID int `json:"category_id" db:"category_id"`
}

// Folder is the last taxonomy level; files are filed directly under it.
type Folder struct {
	// ID is the unique identifier of the folder.
	ID int `json:"id" db:"id"`

	// Name is the human-readable label of the folder.
	Name string `json:"name" db:"name"`

	// SubcategoryID identifies the owning subcategory.
	SubcategoryID int `json:"subcategory_id" db:"subcategory_id"`
}
