package domain

// SampleDeck is the storefront's starter deck.
func SampleDeck(name string) Deck {
	return Deck{
		Name: name,
		Slides: []Slide{
			{
				ID:       "1",
				ImageURL: "https://images.unsplash.com/photo-1441986300917-64674bd600d8?w=1920&h=600&fit=crop&crop=center&auto=format&q=80",
				ImageAlt: "A curated collection of stylish fashion items and accessories",
				Title:    "Latest fashion trends",
				Subtitle: "Take a look right now",
				CTA:      &CallToAction{Text: "Shop now", Link: "/products"},
				Priority: true,
			},
			{
				ID:       "2",
				ImageURL: "https://images.unsplash.com/photo-1441984904996-e0b6ba687e04?w=1920&h=600&fit=crop&crop=center&auto=format&q=80",
				ImageAlt: "A premium collection of new-season fashion",
				Title:    "New collection out now",
				Subtitle: "Available in limited quantities",
				CTA:      &CallToAction{Text: "Learn more", Link: "/products/new"},
			},
		},
	}
}
