package category

type CategoryResponse struct {
	Name  string `json:"name"`
	Label string `json:"label"`
	Type  Type   `json:"type"`
}

type CategoriesResponse struct {
	Categories []CategoryResponse `json:"categories"`
}
