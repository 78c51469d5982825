package dashboard

import "time"

// Dataset bundles the reference data the board renders: per-product
// performance rows, the content placements that join them to campaigns, and
// the campaign flights themselves.
type Dataset struct {
	Metrics   []MetricRow
	Content   []ContentRow
	Campaigns []Campaign
}

// NewDemoDataset returns the built-in sample dataset. Content dates are
// derived from now so the default presets always have rows to show.
func NewDemoDataset(now time.Time) *Dataset {
	today := dayOf(now)
	daysAgo := func(n int) time.Time { return today.AddDate(0, 0, -n) }

	return &Dataset{
		Metrics: []MetricRow{
			{
				Key: "1", Image: "https://placehold.co/48x48", ProductID: "B08RXT2YVL",
				SKU: "H-32-RD", Name: "Wireless Earbuds Pro", Creator: "Ivan Ivanov",
				Units: 320, Clicks: 4100, Conversion: 7.8, CommissionRate: 7, Margin: 32,
				Spend: 1250, Sales: 9800, Profit: 3136, PromotionalCosts: 410, TotalExpenses: 1660,
			},
			{
				Key: "2", Image: "https://placehold.co/48x48", ProductID: "B0BBB22222",
				SKU: "H-33-BL", Name: "Smart Water Bottle", Creator: "Ivan Ivanov",
				Units: 185, Clicks: 2650, Conversion: 7.0, CommissionRate: 7, Margin: 28,
				Spend: 840, Sales: 5550, Profit: 1554, PromotionalCosts: 260, TotalExpenses: 1100,
			},
			{
				Key: "3", Image: "https://placehold.co/48x48", ProductID: "B0CCC33333",
				SKU: "H-34-GN", Name: "Yoga Mat Premium", Creator: "Maria Smirnova",
				Units: 240, Clicks: 3050, Conversion: 7.9, CommissionRate: 7, Margin: 35,
				Spend: 980, Sales: 7200, Profit: 2520, PromotionalCosts: 330, TotalExpenses: 1310,
			},
			{
				Key: "4", Image: "https://placehold.co/48x48", ProductID: "B0DDD44444",
				SKU: "H-35-BK", Name: "LED Desk Lamp", Creator: "Maria Smirnova",
				Units: 130, Clicks: 1900, Conversion: 6.8, CommissionRate: 7, Margin: 26,
				Spend: 560, Sales: 3900, Profit: 1014, PromotionalCosts: 180, TotalExpenses: 740,
			},
			{
				Key: "5", Image: "https://placehold.co/48x48", ProductID: "B0EEE55555",
				SKU: "H-36-WH", Name: "Portable Blender", Creator: "Ivan Ivanov",
				Units: 95, Clicks: 1450, Conversion: 6.6, CommissionRate: 7, Margin: 24,
				Spend: 430, Sales: 2850, Profit: 684, PromotionalCosts: 140, TotalExpenses: 570,
			},
			{
				Key: "6", Image: "https://placehold.co/48x48", ProductID: "B0FFF66666",
				SKU: "H-37-GY", Name: "Ergonomic Mouse", Creator: "Maria Smirnova",
				Units: 150, Clicks: 2100, Conversion: 7.1, CommissionRate: 7, Margin: 30,
				Spend: 620, Sales: 4500, Profit: 1350, PromotionalCosts: 210, TotalExpenses: 830,
			},
			{
				Key: "7", Image: "https://placehold.co/48x48", ProductID: "B0GGG77777",
				SKU: "H-38-NV", Name: "Travel Backpack 30L", Creator: "Ivan Ivanov",
				Units: 210, Clicks: 2800, Conversion: 7.5, CommissionRate: 7, Margin: 33,
				Spend: 890, Sales: 6300, Profit: 2079, PromotionalCosts: 290, TotalExpenses: 1180,
			},
			{
				Key: "8", Image: "https://placehold.co/48x48", ProductID: "B0HHH88888",
				SKU: "H-39-OR", Name: "Stainless Tumbler", Creator: "Maria Smirnova",
				Units: 110, Clicks: 1600, Conversion: 6.9, CommissionRate: 7, Margin: 25,
				Spend: 480, Sales: 3300, Profit: 825, PromotionalCosts: 160, TotalExpenses: 640,
			},
		},
		Content: []ContentRow{
			{Key: "c1", ProductID: "B08RXT2YVL", Creator: "Ivan Ivanov", Date: daysAgo(1), Campaign: "Amazon", Link: "https://youtube.com/watch?v=rev-001"},
			{Key: "c2", ProductID: "B0BBB22222", Creator: "Ivan Ivanov", Date: daysAgo(2), Campaign: "Amazon", Link: "https://instagram.com/p/rev-002"},
			{Key: "c3", ProductID: "B0CCC33333", Creator: "Maria Smirnova", Date: daysAgo(3), Campaign: "eBay", Link: "https://youtube.com/watch?v=rev-003"},
			{Key: "c4", ProductID: "B0DDD44444", Creator: "Maria Smirnova", Date: daysAgo(4), Campaign: "eBay", Link: "https://instagram.com/p/rev-004"},
			{Key: "c5", ProductID: "B0EEE55555", Creator: "Ivan Ivanov", Date: daysAgo(5), Campaign: "Shopify", Link: "https://youtube.com/watch?v=rev-005"},
			{Key: "c6", ProductID: "B0FFF66666", Creator: "Maria Smirnova", Date: daysAgo(6), Campaign: "Shopify", Link: "https://instagram.com/p/rev-006"},
			{Key: "c7", ProductID: "B0GGG77777", Creator: "Ivan Ivanov", Date: daysAgo(7), Campaign: "Amazon", Link: "https://youtube.com/watch?v=rev-007"},
			{Key: "c8", ProductID: "B0HHH88888", Creator: "Maria Smirnova", Date: daysAgo(8), Campaign: "eBay", Link: "https://instagram.com/p/rev-008"},
			{Key: "c9", ProductID: "B08RXT2YVL", Creator: "Ivan Ivanov", Date: daysAgo(9), Campaign: "Shopify", Link: "https://youtube.com/watch?v=rev-009"},
			{Key: "c10", ProductID: "B0CCC33333", Creator: "Maria Smirnova", Date: daysAgo(10), Campaign: "Amazon", Link: "https://instagram.com/p/rev-010"},
			{Key: "c11", ProductID: "B0EEE55555", Creator: "Ivan Ivanov", Date: daysAgo(11), Campaign: "eBay", Link: "https://youtube.com/watch?v=rev-011"},
			{Key: "c12", ProductID: "B0GGG77777", Creator: "Maria Smirnova", Date: daysAgo(11), Campaign: "Shopify", Link: "https://instagram.com/p/rev-012"},
		},
		Campaigns: []Campaign{
			{Name: "Amazon", Status: CampaignActive, Start: daysAgo(20), End: today.AddDate(0, 0, 10)},
			{Name: "eBay", Status: CampaignPending, Start: today.AddDate(0, 0, 5), End: today.AddDate(0, 0, 35)},
			{Name: "Shopify", Status: CampaignCompleted, Start: daysAgo(60), End: daysAgo(15)},
		},
	}
}

// CampaignOptions lists distinct campaign names in first-appearance order.
func (d *Dataset) CampaignOptions() []string {
	return distinct(d.Content, func(r ContentRow) string { return r.Campaign })
}

// CreatorOptions lists distinct creator names in first-appearance order.
func (d *Dataset) CreatorOptions() []string {
	return distinct(d.Metrics, func(r MetricRow) string { return r.Creator })
}

// ProductOptions lists distinct product ids in first-appearance order.
func (d *Dataset) ProductOptions() []string {
	return distinct(d.Metrics, func(r MetricRow) string { return r.ProductID })
}

// LinkOptions lists distinct content links in first-appearance order.
func (d *Dataset) LinkOptions() []string {
	return distinct(d.Content, func(r ContentRow) string { return r.Link })
}

func distinct[T any](rows []T, key func(T) string) []string {
	seen := make(map[string]struct{}, len(rows))
	var out []string
	for _, row := range rows {
		k := key(row)
		if k == "" {
			continue
		}
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, k)
	}
	return out
}
