package app

// Plan is one premium subscription option.
type Plan struct {
	Name  string
	Price string
	Note  string
}

var Plans = []Plan{
	{Name: "Monthly", Price: "₩3,900 / month"},
	{Name: "Yearly", Price: "₩39,000 / year", Note: "billed once a year, two months free"},
}

// PremiumFeatures is the list shown on the upsell.
var PremiumFeatures = []string{
	"Custom theme colours",
	"Mood-based automatic dark mode",
	"Password lock",
	"Emotion statistics report",
	"No ads",
}
