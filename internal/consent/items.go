package consent

// Item is one agreement on the consent screen.
type Item struct {
	ID       string
	Label    string
	Required bool
	Document string
}

const (
	Terms      = "terms"
	Privacy    = "privacy"
	ThirdParty = "thirdParty"
	Location   = "location"
	Marketing  = "marketing"
)

// Items in display order.
var Items = []Item{
	{
		ID:       Terms,
		Label:    "[Required] Terms of service",
		Required: true,
		Document: `Terms of Service

These terms set out the conditions and procedures for using the diary service,
and the rights, duties and responsibilities of the company and its members.

Article 1 (Purpose)
These terms govern the use of the diary service provided by the company.

Article 2 (Definitions)
"Service" means the diary service provided by the company.
"Member" means a person who agrees to these terms and uses the service.

Article 3 (Changes)
The company may change these terms when necessary and will announce changes
inside the service.`,
	},
	{
		ID:       Privacy,
		Label:    "[Required] Collection and use of personal information",
		Required: true,
		Document: `Collection and Use of Personal Information

1. Items collected
- Required: email address, nickname, date of birth, gender
- Optional: profile picture

2. Purpose
- Providing the service and managing accounts
- Improving the service and personalizing it

3. Retention
Until the member leaves the service or the period required by law.`,
	},
	{
		ID:       ThirdParty,
		Label:    "[Required] Provision of personal information to third parties",
		Required: true,
		Document: `Provision of Personal Information to Third Parties

1. Recipients
- Payment service providers
- Service operation and maintenance contractors

2. Items provided
- Email address, payment information

3. Purpose
- Processing payments
- Operating and maintaining the service

4. Retention
Until the member leaves the service or the period required by law.`,
	},
	{
		ID:       Location,
		Label:    "[Required] Location-based services",
		Required: true,
		Document: `Location-Based Services

1. How location is collected
- GPS, Wi-Fi and Bluetooth of the mobile device

2. Purpose
- Writing location-tagged diary entries
- Location-based reminders

3. Retention
Until the member leaves the service or the period required by law.`,
	},
	{
		ID:       Marketing,
		Label:    "[Optional] Marketing messages",
		Required: false,
		Document: `Marketing Messages

1. Channels
- Email, in-app notifications, SMS

2. Content
- Service updates and events
- Personalized offers and promotions

3. Opting out
You can change this at any time from the settings menu.`,
	},
}

// Lookup finds an item by id.
func Lookup(id string) (Item, bool) {
	for _, it := range Items {
		if it.ID == id {
			return it, true
		}
	}
	return Item{}, false
}
