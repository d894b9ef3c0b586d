package models

type NutritionalInfo struct {
	Calories int `json:"calories"`
	Protein  int `json:"protein"`
	Carbs    int `json:"carbs"`
	Fats     int `json:"fats"`
}

type Menu struct {
	ID              string           `json:"id"`
	Name            string           `json:"name"`
	Description     string           `json:"description"`
	Price           float64          `json:"price"`
	Category        Category         `json:"category"`
	ImageURL        string           `json:"imageUrl,omitempty"`
	BestSeller      bool             `json:"bestSeller"`
	Available       bool             `json:"available"`
	PreparationTime int              `json:"preparationTime,omitempty"`
	SpicyLevel      int              `json:"spicyLevel,omitempty"`
	Allergens       []string         `json:"allergens,omitempty"`
	NutritionalInfo *NutritionalInfo `json:"nutritionalInfo,omitempty"`
}

// MenuRequest is the payload for creating or updating a menu item.
// The category is referenced by id; the gateway resolves it.
type MenuRequest struct {
	Name            string           `json:"name"`
	Description     string           `json:"description"`
	Price           float64          `json:"price"`
	CategoryID      string           `json:"categoryId"`
	ImageURL        string           `json:"imageUrl,omitempty"`
	Available       bool             `json:"available"`
	PreparationTime int              `json:"preparationTime,omitempty"`
	SpicyLevel      int              `json:"spicyLevel,omitempty"`
	Allergens       []string         `json:"allergens,omitempty"`
	NutritionalInfo *NutritionalInfo `json:"nutritionalInfo,omitempty"`
}
