package model

// SocialAccount is one linked social profile on a user.
type SocialAccount struct {
	Provider   string `json:"provider"`
	AccountURL string `json:"account_url"`
}

// UserProfile is the editable part of GET/PUT /users.
type UserProfile struct {
	FullName       string          `json:"full_name"`
	PhoneNumber    string          `json:"phone_number"`
	Country        string          `json:"country"`
	Birthdate      string          `json:"birthdate"`
	Bio            string          `json:"bio"`
	SocialAccounts []SocialAccount `json:"social_accounts"`
}

// Countries is the fixed country list offered by the profile editor.
var Countries = []string{
	"United States", "Canada", "Mexico", "United Kingdom", "Germany", "France", "Spain", "Italy",
	"Netherlands", "Belgium", "Switzerland", "Austria", "Sweden", "Norway", "Denmark", "Finland",
	"Ireland", "Portugal", "Poland", "Czech Republic", "Greece", "Turkey", "Russia", "China",
	"Japan", "South Korea", "India", "Pakistan", "Brazil", "Argentina", "Colombia", "Chile",
	"Peru", "Venezuela", "Australia", "New Zealand", "Indonesia", "Malaysia", "Philippines",
	"Thailand", "Vietnam", "Singapore", "Hong Kong", "Israel", "United Arab Emirates", "Saudi Arabia",
	"South Africa", "Nigeria", "Egypt", "Kenya", "Morocco", "Romania", "Hungary", "Bulgaria",
	"Slovakia", "Slovenia", "Estonia", "Lithuania", "Latvia", "Ukraine",
}
