package catalog

import (
	"github.com/AtRiskMedia/microsite-go/internal/domain/entities/catalog"
)

// DefaultTemplates returns the compiled-in starter catalog. Each call returns
// fresh values so callers can never mutate a shared default.
func DefaultTemplates() []*catalog.Template {
	return []*catalog.Template{
		{
			ID:       "local-cafe",
			Name:     "Local Café",
			Category: "food-and-drink",
			Tags:     []string{"cafe", "restaurant", "menu"},
			Pages: []catalog.Page{
				{
					ID:    "home",
					Path:  "/",
					Title: "Home",
					Sections: []catalog.Section{
						{
							ID:   "cafe-hero",
							Kind: "hero",
							Defaults: map[string]any{
								"heading":    "Fresh roasted, every morning",
								"subheading": "Neighbourhood coffee, pastries and light lunches",
								"ctaLabel":   "See the menu",
							},
						},
						{
							ID:   "cafe-menu",
							Kind: "menu",
							Defaults: map[string]any{
								"heading": "Our menu",
								"items": []any{
									map[string]any{"name": "Flat white", "price": "4.50"},
									map[string]any{"name": "Almond croissant", "price": "3.75"},
									map[string]any{"name": "Soup of the day", "price": "8.00"},
								},
							},
						},
						{
							ID:   "cafe-testimonials",
							Kind: "testimonials",
							Defaults: map[string]any{
								"heading": "What regulars say",
								"quotes": []any{
									map[string]any{"author": "Sam", "text": "Best espresso on the block."},
									map[string]any{"author": "Priya", "text": "My Saturday morning ritual."},
								},
							},
						},
						{
							ID:   "cafe-contact",
							Kind: "contact",
							Defaults: map[string]any{
								"heading": "Find us",
								"address": "123 Main Street",
								"hours":   "Mon–Sun 7am–4pm",
							},
						},
					},
				},
			},
		},
		{
			ID:       "trade-services",
			Name:     "Trade Services",
			Category: "services",
			Tags:     []string{"plumber", "electrician", "contractor"},
			Pages: []catalog.Page{
				{
					ID:    "home",
					Path:  "/",
					Title: "Home",
					Sections: []catalog.Section{
						{
							ID:   "trade-hero",
							Kind: "hero",
							Defaults: map[string]any{
								"heading":    "Reliable trades, on time",
								"subheading": "Licensed and insured for residential and commercial work",
								"ctaLabel":   "Request a quote",
							},
						},
						{
							ID:   "trade-services",
							Kind: "services",
							Defaults: map[string]any{
								"heading": "What we do",
								"services": []any{
									map[string]any{"name": "Emergency repairs", "description": "24/7 callout"},
									map[string]any{"name": "Installations", "description": "Fixtures, fittings and appliances"},
									map[string]any{"name": "Inspections", "description": "Compliance checks and reports"},
								},
							},
						},
						{
							ID:   "trade-gallery",
							Kind: "gallery",
							Defaults: map[string]any{
								"heading": "Recent work",
								"images":  []any{},
							},
						},
						{
							ID:   "trade-contact",
							Kind: "contact",
							Defaults: map[string]any{
								"heading": "Get in touch",
								"phone":   "",
								"email":   "",
							},
						},
					},
				},
			},
		},
		{
			ID:       "fitness-studio",
			Name:     "Fitness Studio",
			Category: "health-and-wellness",
			Tags:     []string{"gym", "fitness", "classes"},
			Pages: []catalog.Page{
				{
					ID:    "home",
					Path:  "/",
					Title: "Home",
					Sections: []catalog.Section{
						{
							ID:   "studio-hero",
							Kind: "hero",
							Defaults: map[string]any{
								"heading":    "Train with intent",
								"subheading": "Small-group classes and personal coaching",
								"ctaLabel":   "Book a trial class",
							},
						},
						{
							ID:   "studio-schedule",
							Kind: "schedule",
							Defaults: map[string]any{
								"heading": "Weekly schedule",
								"classes": []any{
									map[string]any{"name": "Strength basics", "day": "Monday", "time": "6:00pm"},
									map[string]any{"name": "Mobility", "day": "Wednesday", "time": "7:00am"},
									map[string]any{"name": "Conditioning", "day": "Saturday", "time": "9:00am"},
								},
							},
						},
						{
							ID:   "studio-video",
							Kind: "video",
							Defaults: map[string]any{
								"heading":  "Inside the studio",
								"videoUrl": "",
							},
						},
						{
							ID:   "studio-contact",
							Kind: "contact",
							Defaults: map[string]any{
								"heading": "Visit us",
								"address": "",
								"phone":   "",
							},
						},
					},
				},
			},
		},
	}
}
