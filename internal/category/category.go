package category

// Category classifies what an expense was for. The set is closed: the mobile
// client offers exactly these and the store rejects anything else.
type Category string

const (
	Rent        Category = "rent"
	Fuel        Category = "fuel"
	Bills       Category = "bills"
	Grocery     Category = "grocery"
	Transport   Category = "transport"
	PetSupplies Category = "pet_supplies"
	Food        Category = "food"
	Fun         Category = "fun"
	Shopping    Category = "shopping"
	Party       Category = "party"
	Movies      Category = "movies"
	Other       Category = "other"
)

// Type is the coarse essential / non-essential classification derived from a
// category. Every category maps to exactly one type.
type Type string

const (
	TypeEssential    Type = "essential"
	TypeNonEssential Type = "non_essential"
)

// typeByCategory is the static mapping. It is total over the enum; TypeOf
// handles anything outside it.
var typeByCategory = map[Category]Type{
	Rent:        TypeEssential,
	Fuel:        TypeEssential,
	Bills:       TypeEssential,
	Grocery:     TypeEssential,
	Transport:   TypeEssential,
	PetSupplies: TypeEssential,

	Food:     TypeNonEssential,
	Fun:      TypeNonEssential,
	Shopping: TypeNonEssential,
	Party:    TypeNonEssential,
	Movies:   TypeNonEssential,
	Other:    TypeNonEssential,
}

// labels are the display names the add-expense screen shows.
var labels = map[Category]string{
	Rent:        "Rent",
	Fuel:        "Fuel",
	Bills:       "Bills",
	Grocery:     "Grocery",
	Transport:   "Transport",
	PetSupplies: "Pet Supplies",
	Food:        "Food",
	Fun:         "Fun",
	Shopping:    "Shopping",
	Party:       "Party",
	Movies:      "Movies",
	Other:       "Other",
}

// ordered keeps catalog output stable: essentials first, then the rest,
// matching the order the client renders.
var ordered = []Category{
	Rent, Fuel, Bills, Grocery, Transport, PetSupplies,
	Food, Fun, Shopping, Party, Movies, Other,
}

// All returns every category in display order.
func All() []Category {
	out := make([]Category, len(ordered))
	copy(out, ordered)
	return out
}

// IsValid reports whether c is a member of the closed enumeration.
func IsValid(c Category) bool {
	_, ok := typeByCategory[c]
	return ok
}

// TypeOf returns the type for a category. A category outside the mapping
// falls back to non-essential; persisted data written before a category was
// removed from the enum still aggregates instead of erroring.
func TypeOf(c Category) Type {
	if t, ok := typeByCategory[c]; ok {
		return t
	}
	return TypeNonEssential
}

// IsEssential is a convenience over TypeOf.
func IsEssential(c Category) bool {
	return TypeOf(c) == TypeEssential
}

// Label returns the display name for a category, or the raw value when the
// category is unknown.
func Label(c Category) string {
	if l, ok := labels[c]; ok {
		return l
	}
	return string(c)
}
