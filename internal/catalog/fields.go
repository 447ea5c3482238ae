package catalog

// Field names a product attribute the query engine can filter or sort on.
// The registry below is the single source of truth for column names, value
// kinds and nullability; the sort resolver, cursor codec and keyset builder
// all consult it rather than hard-coding per-field behaviour.
type Field string

const (
	FieldID          Field = "id"
	FieldName        Field = "name"
	FieldPrice       Field = "price"
	FieldStock       Field = "stock"
	FieldIsActive    Field = "is_active"
	FieldIsFeatured  Field = "is_featured"
	FieldHasVariants Field = "has_variants"
	FieldCreatedAt   Field = "created_at"
)

type fieldKind int

const (
	kindUUID fieldKind = iota
	kindText
	kindNumeric
	kindInteger
	kindBool
	kindTimestamp
)

type fieldInfo struct {
	column   string
	kind     fieldKind
	nullable bool
}

var fieldRegistry = map[Field]fieldInfo{
	FieldID:          {column: "p.id", kind: kindUUID},
	FieldName:        {column: "p.name", kind: kindText},
	FieldPrice:       {column: "p.price", kind: kindNumeric, nullable: true},
	FieldStock:       {column: "p.stock", kind: kindInteger, nullable: true},
	FieldIsActive:    {column: "p.is_active", kind: kindBool},
	FieldIsFeatured:  {column: "p.is_featured", kind: kindBool},
	FieldHasVariants: {column: "p.has_variants", kind: kindBool},
	FieldCreatedAt:   {column: "p.created_at", kind: kindTimestamp},
}

// Column returns the qualified column expression for the field.
func (f Field) Column() string {
	return fieldRegistry[f].column
}

// Nullable reports whether the underlying column admits NULL.
func (f Field) Nullable() bool {
	return fieldRegistry[f].nullable
}
