package catalog

const (
	CategoryRegular     = "regular"
	CategoryDeep        = "deep"
	CategorySpecialized = "specialized"
)

const (
	FrequencyOneTime  = "one-time"
	FrequencyWeekly   = "weekly"
	FrequencyBiweekly = "biweekly"
	FrequencyMonthly  = "monthly"
)

var defaultFrequencies = []Frequency{
	{ID: FrequencyOneTime, Name: "One-time", Discount: 0},
	{ID: FrequencyWeekly, Name: "Weekly", Discount: 0.15},
	{ID: FrequencyBiweekly, Name: "Bi-weekly", Discount: 0.1},
	{ID: FrequencyMonthly, Name: "Monthly", Discount: 0.05},
}

var defaultTimeSlots = []string{
	"8:00 AM", "9:00 AM", "10:00 AM", "11:00 AM", "12:00 PM", "1:00 PM", "2:00 PM", "3:00 PM", "4:00 PM",
}

var defaultServices = []Service{
	{
		ID:           "regular",
		Name:         "Regular Cleaning",
		Description:  "Weekly, bi-weekly, or monthly cleaning services to keep your home consistently clean",
		Category:     CategoryRegular,
		BasePrice:    80,
		PerRoomPrice: 15,
		Duration:     "2-3 hours",
		Locations:    []string{"toronto", "vancouver", "montreal", "paris", "lyon"},
		Features: []string{
			"Dusting all surfaces",
			"Vacuuming carpets and rugs",
			"Mopping hard floors",
			"Bathroom cleaning and sanitizing",
			"Kitchen cleaning",
			"Trash removal",
			"Making beds",
			"Light organizing",
		},
	},
	{
		ID:           "deep",
		Name:         "Deep Cleaning",
		Description:  "Comprehensive deep cleaning for your entire home, perfect for seasonal cleaning",
		Category:     CategoryDeep,
		BasePrice:    150,
		PerRoomPrice: 25,
		Duration:     "4-6 hours",
		Locations:    []string{"toronto", "vancouver", "montreal", "paris", "lyon"},
		Features: []string{
			"Everything in regular cleaning",
			"Inside appliance cleaning",
			"Baseboards and window sills",
			"Light fixture cleaning",
			"Cabinet interior cleaning",
			"Detailed bathroom scrubbing",
			"Refrigerator cleaning",
			"Oven deep clean",
		},
	},
	{
		ID:           "kitchen",
		Name:         "Kitchen & Bathroom Deep Clean",
		Description:  "Specialized deep cleaning for kitchens and bathrooms with attention to detail",
		Category:     CategorySpecialized,
		BasePrice:    120,
		PerRoomPrice: 20,
		Duration:     "3-4 hours",
		Locations:    []string{"toronto", "vancouver", "montreal", "paris"},
		Features: []string{
			"Oven deep cleaning",
			"Refrigerator interior cleaning",
			"Cabinet cleaning inside/out",
			"Tile and grout scrubbing",
			"Bathroom deep sanitization",
			"Sink and faucet polishing",
			"Countertop deep clean",
			"Floor scrubbing",
		},
	},
	{
		ID:           "carpet",
		Name:         "Carpet & Upholstery Cleaning",
		Description:  "Professional carpet and upholstery cleaning using advanced equipment",
		Category:     CategorySpecialized,
		BasePrice:    100,
		PerRoomPrice: 18,
		Duration:     "2-3 hours",
		Locations:    []string{"toronto", "vancouver", "montreal"},
		Features: []string{
			"Professional steam cleaning",
			"Stain removal treatment",
			"Odor elimination",
			"Fabric protection application",
			"Quick drying process",
			"Furniture moving",
			"Pre-treatment of high traffic areas",
			"Post-cleaning inspection",
		},
	},
	{
		ID:           "window",
		Name:         "Window Cleaning",
		Description:  "Interior and exterior window cleaning for crystal clear views",
		Category:     CategorySpecialized,
		BasePrice:    60,
		PerRoomPrice: 10,
		Duration:     "1-2 hours",
		Locations:    []string{"toronto", "vancouver", "paris", "lyon"},
		Features: []string{
			"Interior window cleaning",
			"Exterior window cleaning",
			"Screen cleaning and repair",
			"Window sill cleaning",
			"Streak-free finish",
			"Frame cleaning",
			"Mirror cleaning",
			"Glass door cleaning",
		},
	},
	{
		ID:           "movein",
		Name:         "Move-in/Move-out Cleaning",
		Description:  "Complete cleaning service for moving in or out of your home",
		Category:     CategorySpecialized,
		BasePrice:    200,
		PerRoomPrice: 30,
		Duration:     "5-8 hours",
		Locations:    []string{"toronto", "vancouver", "montreal", "paris", "lyon"},
		Features: []string{
			"Complete deep cleaning",
			"Inside all cabinets and drawers",
			"All appliance cleaning",
			"Floor deep cleaning",
			"Wall washing",
			"Light fixture cleaning",
			"Bathroom sanitization",
			"Final walkthrough",
		},
	},
}
