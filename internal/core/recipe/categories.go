package recipe

// Category a fixed browse label; searching a category runs the label as the query
type Category struct {
	Name   string `json:"name"`
	NameBN string `json:"name_bn"`
}

var categories = []Category{
	{Name: "Breakfast", NameBN: "সকালের নাস্তা"},
	{Name: "Lunch", NameBN: "দুপুরের খাবার"},
	{Name: "Dinner", NameBN: "রাতের খাবার"},
	{Name: "Dessert", NameBN: "মিষ্টান্ন"},
	{Name: "Snacks", NameBN: "জলখাবার"},
	{Name: "Bangladeshi", NameBN: "বাংলাদেশি"},
	{Name: "Indian", NameBN: "ভারতীয়"},
	{Name: "Chinese", NameBN: "চাইনিজ"},
	{Name: "Street Food", NameBN: "স্ট্রিট ফুড"},
	{Name: "Seafood", NameBN: "সামুদ্রিক খাবার"},
}

// Categories returns a copy of the browse categories
func Categories() []Category {
	out := make([]Category, len(categories))
	copy(out, categories)
	return out
}
