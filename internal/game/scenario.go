// Package game implements the toy-shop round engine: demand, sales,
// weighted-average inventory costing, round settlement, and the lifecycle
// state machine that sequences a game from configuration to finish.
package game

// Scenario is a demand shock in effect for a single day. The multiplier
// scales the demand coefficient, so values above 1 steepen the price
// sensitivity curve and values below 1 flatten it.
type Scenario struct {
	Name       string  `json:"name"`
	Narrative  string  `json:"narrative"`
	Multiplier float64 `json:"multiplier"`
}

// Catalog is the fixed set of demand scenarios. One entry is drawn
// uniformly at the start of every day. Read-only.
var Catalog = []Scenario{
	{
		Name:       "Holiday Season",
		Narrative:  "It's the holiday season! Parents are eager to buy toys for their children. Customer demand is significantly higher than usual.",
		Multiplier: 1.8,
	},
	{
		Name:       "Economic Recession",
		Narrative:  "The economy is in a downturn. Customers are being more careful with their spending, and demand for toys has decreased.",
		Multiplier: 0.6,
	},
	{
		Name:       "New Competitor Opens",
		Narrative:  "A new toy shop just opened nearby, offering similar products. Customers now have more options, reducing your demand.",
		Multiplier: 0.7,
	},
	{
		Name:       "Successful Marketing Campaign",
		Narrative:  "Your recent marketing campaign was a hit! More customers are aware of your shop and demand has increased.",
		Multiplier: 1.3,
	},
	{
		Name:       "Back to School",
		Narrative:  "It's back-to-school season. While demand for toys drops as parents focus on school supplies, there's still some interest in educational toys.",
		Multiplier: 0.8,
	},
	{
		Name:       "Local Festival",
		Narrative:  "A popular local festival is happening nearby. Increased foot traffic brings more customers to your shop, boosting demand.",
		Multiplier: 1.5,
	},
	{
		Name:       "Product Recall in Industry",
		Narrative:  "A major competitor had a product recall, making customers more cautious. Demand for all toys has decreased temporarily.",
		Multiplier: 0.65,
	},
	{
		Name:       "Celebrity Endorsement",
		Narrative:  "A popular celebrity mentioned your toys on social media! The buzz has significantly increased customer interest and demand.",
		Multiplier: 1.6,
	},
	{
		Name:       "Rainy Weekend",
		Narrative:  "It's a rainy weekend, and families are looking for indoor activities. More customers are visiting toy shops, increasing demand.",
		Multiplier: 1.2,
	},
	{
		Name:       "Supply Chain Issues",
		Narrative:  "Industry-wide supply chain problems have made customers aware of potential shortages. This has increased demand as customers buy proactively.",
		Multiplier: 1.4,
	},
}
