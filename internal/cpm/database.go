package cpm

import "time"

// Category is one revenue tier in the static CPM database. AvgCPM is
// USD per thousand monetized views; all figures are derived estimates
// from public advertiser reports, never platform-confirmed numbers.
type Category struct {
	Name     string
	Parent   string
	Keywords []string
	AvgCPM   float64
	Low      float64
	High     float64
	Source   string
}

// categories is the lookup database, ordered roughly by CPM tier. The
// match cascade scans all of it, so ordering only affects ties.
var categories = []Category{
	// Finance & business
	{"personal finance", "finance", []string{"personal finance", "budgeting", "saving money", "frugal living", "debt free"}, 22.0, 12.0, 36.0, "Advertiser benchmark reports 2024"},
	{"investing", "finance", []string{"investing", "stock market", "index funds", "dividend", "etf investing"}, 20.0, 10.0, 32.0, "Advertiser benchmark reports 2024"},
	{"credit cards", "finance", []string{"credit card", "credit score", "cashback"}, 18.0, 10.0, 30.0, "Affiliate network payout surveys"},
	{"cryptocurrency", "finance", []string{"crypto", "bitcoin", "ethereum", "defi", "nft"}, 14.0, 6.0, 25.0, "Creator earnings disclosures"},
	{"real estate", "finance", []string{"real estate", "property investing", "house flipping", "rental property"}, 16.0, 8.0, 28.0, "Advertiser benchmark reports 2024"},
	{"insurance", "finance", []string{"insurance", "life insurance", "health insurance"}, 24.0, 14.0, 40.0, "Advertiser benchmark reports 2024"},
	{"accounting", "finance", []string{"accounting", "taxes", "tax filing", "bookkeeping"}, 15.0, 8.0, 24.0, "Affiliate network payout surveys"},
	{"business", "business", []string{"business", "entrepreneur", "startup", "small business"}, 14.0, 7.0, 22.0, "Creator earnings disclosures"},
	{"marketing", "business", []string{"marketing", "digital marketing", "seo", "social media marketing", "email marketing"}, 13.0, 7.0, 22.0, "Creator earnings disclosures"},
	{"ecommerce", "business", []string{"ecommerce", "dropshipping", "amazon fba", "shopify", "print on demand"}, 12.0, 6.0, 20.0, "Affiliate network payout surveys"},
	{"make money online", "business", []string{"make money online", "side hustle", "passive income", "affiliate marketing"}, 13.0, 6.0, 22.0, "Creator earnings disclosures"},
	{"freelancing", "business", []string{"freelancing", "remote work", "upwork", "fiverr"}, 10.0, 5.0, 16.0, "Creator earnings disclosures"},

	// Tech & software
	{"software development", "technology", []string{"programming", "coding", "software development", "web development", "python", "javascript"}, 11.0, 6.0, 18.0, "Developer channel earnings surveys"},
	{"artificial intelligence", "technology", []string{"ai", "artificial intelligence", "machine learning", "chatgpt", "ai tools"}, 12.0, 6.0, 20.0, "Developer channel earnings surveys"},
	{"cybersecurity", "technology", []string{"cybersecurity", "hacking", "ethical hacking", "infosec"}, 12.0, 6.0, 18.0, "Developer channel earnings surveys"},
	{"cloud computing", "technology", []string{"cloud computing", "aws", "azure", "devops", "kubernetes"}, 13.0, 7.0, 20.0, "Developer channel earnings surveys"},
	{"tech reviews", "technology", []string{"tech review", "smartphone review", "gadget", "unboxing"}, 8.0, 4.0, 14.0, "Creator earnings disclosures"},
	{"pc building", "technology", []string{"pc build", "pc building", "gaming pc", "computer hardware"}, 7.0, 4.0, 12.0, "Creator earnings disclosures"},
	{"data science", "technology", []string{"data science", "data analytics", "sql", "excel"}, 11.0, 6.0, 18.0, "Developer channel earnings surveys"},
	{"vpn and privacy", "technology", []string{"vpn", "online privacy", "data privacy"}, 14.0, 8.0, 24.0, "Affiliate network payout surveys"},

	// Education
	{"online education", "education", []string{"online course", "study tips", "learning", "education"}, 9.0, 5.0, 15.0, "Creator earnings disclosures"},
	{"language learning", "education", []string{"language learning", "learn english", "learn spanish", "learn japanese"}, 8.0, 4.0, 13.0, "Creator earnings disclosures"},
	{"math and science", "education", []string{"math", "physics", "chemistry", "science explained"}, 7.0, 4.0, 12.0, "Creator earnings disclosures"},
	{"test prep", "education", []string{"test prep", "sat prep", "exam", "ielts"}, 9.0, 5.0, 14.0, "Creator earnings disclosures"},
	{"tutorials", "education", []string{"tutorial", "how to", "guide", "explained", "for beginners"}, 7.0, 4.0, 12.0, "Creator earnings disclosures"},

	// Health & lifestyle
	{"fitness", "health", []string{"fitness", "workout", "gym", "home workout", "bodybuilding"}, 9.0, 5.0, 15.0, "Creator earnings disclosures"},
	{"weight loss", "health", []string{"weight loss", "diet", "keto", "intermittent fasting"}, 11.0, 6.0, 18.0, "Advertiser benchmark reports 2024"},
	{"nutrition", "health", []string{"nutrition", "healthy eating", "meal prep", "supplements"}, 10.0, 5.0, 16.0, "Advertiser benchmark reports 2024"},
	{"mental health", "health", []string{"mental health", "anxiety", "therapy", "mindfulness"}, 9.0, 5.0, 14.0, "Creator earnings disclosures"},
	{"yoga and meditation", "health", []string{"yoga", "meditation", "breathwork"}, 7.0, 4.0, 12.0, "Creator earnings disclosures"},
	{"beauty", "lifestyle", []string{"beauty", "makeup", "skincare", "haircare"}, 8.0, 4.0, 14.0, "Creator earnings disclosures"},
	{"fashion", "lifestyle", []string{"fashion", "outfit", "streetwear", "thrifting"}, 6.0, 3.0, 10.0, "Creator earnings disclosures"},
	{"travel", "lifestyle", []string{"travel", "travel vlog", "backpacking", "digital nomad"}, 6.0, 3.0, 11.0, "Creator earnings disclosures"},
	{"cooking", "lifestyle", []string{"cooking", "recipes", "baking", "food review"}, 6.0, 3.0, 10.0, "Creator earnings disclosures"},
	{"parenting", "lifestyle", []string{"parenting", "pregnancy", "baby", "mom life"}, 8.0, 4.0, 13.0, "Advertiser benchmark reports 2024"},
	{"home improvement", "lifestyle", []string{"home improvement", "diy home", "renovation", "woodworking", "interior design"}, 8.0, 4.0, 13.0, "Creator earnings disclosures"},
	{"gardening", "lifestyle", []string{"gardening", "houseplants", "homesteading"}, 6.0, 3.0, 10.0, "Creator earnings disclosures"},
	{"cars", "automotive", []string{"cars", "car review", "auto repair", "detailing", "ev"}, 8.0, 4.0, 14.0, "Creator earnings disclosures"},

	// Entertainment & gaming
	{"gaming", "gaming", []string{"gaming", "gameplay", "minecraft", "fortnite", "roblox", "speedrun"}, 4.0, 2.0, 8.0, "Creator earnings disclosures"},
	{"game guides", "gaming", []string{"game guide", "game tips", "walkthrough", "build guide"}, 5.0, 2.5, 9.0, "Creator earnings disclosures"},
	{"esports", "gaming", []string{"esports", "competitive gaming", "tournament highlights"}, 4.0, 2.0, 7.0, "Creator earnings disclosures"},
	{"anime and manga", "entertainment", []string{"anime", "manga", "anime recap", "otaku"}, 4.0, 2.0, 8.0, "Creator earnings disclosures"},
	{"movies and tv", "entertainment", []string{"movie review", "film analysis", "tv show", "trailer reaction"}, 4.5, 2.0, 8.0, "Creator earnings disclosures"},
	{"celebrity news", "entertainment", []string{"celebrity", "drama", "gossip"}, 3.5, 1.5, 6.0, "Creator earnings disclosures"},
	{"music", "entertainment", []string{"music", "song cover", "music production", "beat making"}, 4.0, 2.0, 7.0, "Creator earnings disclosures"},
	{"true crime", "entertainment", []string{"true crime", "crime documentary", "mystery"}, 6.0, 3.0, 10.0, "Creator earnings disclosures"},
	{"asmr", "entertainment", []string{"asmr", "relaxing sounds", "sleep sounds"}, 3.5, 1.5, 6.0, "Creator earnings disclosures"},
	{"compilations", "entertainment", []string{"compilation", "top 10", "best moments", "fails"}, 3.0, 1.5, 5.5, "Creator earnings disclosures"},
	{"sports", "entertainment", []string{"sports", "football", "basketball", "highlights"}, 5.0, 2.5, 9.0, "Creator earnings disclosures"},
	{"pets", "lifestyle", []string{"pets", "dog training", "cat", "aquarium"}, 5.0, 2.5, 9.0, "Creator earnings disclosures"},
	{"history", "education", []string{"history", "world war", "ancient", "documentary"}, 6.0, 3.0, 11.0, "Creator earnings disclosures"},
}

// parentFallbacks maps a broad category name to a representative tier
// used when only a category hint is available.
var parentFallbacks = map[string]Category{
	"finance":       {Name: "finance (general)", Parent: "finance", AvgCPM: 16.0, Low: 8.0, High: 28.0, Source: "Parent tier estimate"},
	"business":      {Name: "business (general)", Parent: "business", AvgCPM: 12.0, Low: 6.0, High: 20.0, Source: "Parent tier estimate"},
	"technology":    {Name: "technology (general)", Parent: "technology", AvgCPM: 10.0, Low: 5.0, High: 17.0, Source: "Parent tier estimate"},
	"education":     {Name: "education (general)", Parent: "education", AvgCPM: 8.0, Low: 4.0, High: 13.0, Source: "Parent tier estimate"},
	"health":        {Name: "health (general)", Parent: "health", AvgCPM: 9.0, Low: 5.0, High: 15.0, Source: "Parent tier estimate"},
	"lifestyle":     {Name: "lifestyle (general)", Parent: "lifestyle", AvgCPM: 6.5, Low: 3.0, High: 11.0, Source: "Parent tier estimate"},
	"automotive":    {Name: "automotive (general)", Parent: "automotive", AvgCPM: 8.0, Low: 4.0, High: 14.0, Source: "Parent tier estimate"},
	"gaming":        {Name: "gaming (general)", Parent: "gaming", AvgCPM: 4.5, Low: 2.0, High: 8.0, Source: "Parent tier estimate"},
	"entertainment": {Name: "entertainment (general)", Parent: "entertainment", AvgCPM: 4.0, Low: 2.0, High: 7.0, Source: "Parent tier estimate"},
}

// defaultCategory covers niches nothing else matches.
var defaultCategory = Category{
	Name: "general content", Parent: "general",
	AvgCPM: 4.0, Low: 2.0, High: 8.0,
	Source: "Platform-wide average estimate",
}

// inferredParents maps common niche words to a parent category, checked
// in order; first hit wins.
var inferredParents = []struct {
	word   string
	parent string
}{
	{"money", "finance"},
	{"invest", "finance"},
	{"trading", "finance"},
	{"startup", "business"},
	{"software", "technology"},
	{"coding", "technology"},
	{"app", "technology"},
	{"study", "education"},
	{"learn", "education"},
	{"course", "education"},
	{"health", "health"},
	{"doctor", "health"},
	{"game", "gaming"},
	{"anime", "entertainment"},
	{"movie", "entertainment"},
	{"funny", "entertainment"},
	{"vlog", "lifestyle"},
	{"food", "lifestyle"},
	{"car", "automotive"},
}

// geoMultipliers scale CPM by primary audience country. Unlisted
// countries use geoDefault.
var geoMultipliers = map[string]float64{
	"US": 1.00,
	"AU": 0.90,
	"CA": 0.85,
	"GB": 0.85,
	"NZ": 0.80,
	"DE": 0.75,
	"NO": 0.75,
	"CH": 0.75,
	"NL": 0.70,
	"SE": 0.70,
	"JP": 0.60,
	"FR": 0.60,
	"KR": 0.55,
}

const geoDefault = 0.5

// seasonalMultipliers reflect the ad-spend cycle: Q4 peak, January
// trough after budgets reset.
var seasonalMultipliers = map[time.Month]float64{
	time.January:   0.75,
	time.February:  0.85,
	time.March:     0.95,
	time.April:     0.95,
	time.May:       1.00,
	time.June:      0.95,
	time.July:      0.90,
	time.August:    0.95,
	time.September: 1.00,
	time.October:   1.05,
	time.November:  1.20,
	time.December:  1.25,
}
