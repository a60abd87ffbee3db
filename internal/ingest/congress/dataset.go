package congress

import "github.com/jaideeprtx/nj-trades/pkg/models"

// Member is a congress member the generator draws from.
type Member struct {
	Name    string
	Chamber models.Chamber
	Party   models.Party
	State   string
}

// Stock is a tradable asset with its sector.
type Stock struct {
	Ticker string
	Name   string
	Sector string
}

// Dataset is the fixture data the congress adapter generates trades from.
type Dataset struct {
	Members      []Member
	Stocks       []Stock
	AmountRanges []string
	Notable      []NotableTrade
}

// NotableTrade is a fixed, widely reported disclosure included in every dataset.
type NotableTrade struct {
	Member          Member
	Ticker          string
	Asset           string
	TransactionType string
	AmountRange     string
	TransactionDate string
	DisclosureDate  string
}

// DefaultDataset returns a fresh copy of the bundled fixtures.
func DefaultDataset() Dataset {
	return Dataset{
		Members:      append([]Member(nil), defaultMembers...),
		Stocks:       append([]Stock(nil), defaultStocks...),
		AmountRanges: append([]string(nil), defaultAmountRanges...),
		Notable:      append([]NotableTrade(nil), defaultNotable...),
	}
}

var defaultMembers = []Member{
	{"Nancy Pelosi", models.ChamberHouse, models.PartyDemocrat, "CA"},
	{"Josh Gottheimer", models.ChamberHouse, models.PartyDemocrat, "NJ"},
	{"Ro Khanna", models.ChamberHouse, models.PartyDemocrat, "CA"},
	{"Suzan DelBene", models.ChamberHouse, models.PartyDemocrat, "WA"},
	{"Lois Frankel", models.ChamberHouse, models.PartyDemocrat, "FL"},
	{"Debbie Wasserman Schultz", models.ChamberHouse, models.PartyDemocrat, "FL"},
	{"Daniel Goldman", models.ChamberHouse, models.PartyDemocrat, "NY"},
	{"Kathy Manning", models.ChamberHouse, models.PartyDemocrat, "NC"},
	{"Marie Gluesenkamp Perez", models.ChamberHouse, models.PartyDemocrat, "WA"},
	{"Susie Lee", models.ChamberHouse, models.PartyDemocrat, "NV"},
	{"Tom Malinowski", models.ChamberHouse, models.PartyDemocrat, "NJ"},
	{"Kurt Schrader", models.ChamberHouse, models.PartyDemocrat, "OR"},
	{"Cindy Axne", models.ChamberHouse, models.PartyDemocrat, "IA"},
	{"Dean Phillips", models.ChamberHouse, models.PartyDemocrat, "MN"},
	{"Sean Casten", models.ChamberHouse, models.PartyDemocrat, "IL"},
	{"Raja Krishnamoorthi", models.ChamberHouse, models.PartyDemocrat, "IL"},
	{"Gilbert Cisneros", models.ChamberHouse, models.PartyDemocrat, "CA"},
	{"Dwight Evans", models.ChamberHouse, models.PartyDemocrat, "PA"},
	{"Earl Blumenauer", models.ChamberHouse, models.PartyDemocrat, "OR"},
	{"Judy Chu", models.ChamberHouse, models.PartyDemocrat, "CA"},
	{"Dan Crenshaw", models.ChamberHouse, models.PartyRepublican, "TX"},
	{"Marjorie Taylor Greene", models.ChamberHouse, models.PartyRepublican, "GA"},
	{"Michael McCaul", models.ChamberHouse, models.PartyRepublican, "TX"},
	{"Pat Fallon", models.ChamberHouse, models.PartyRepublican, "TX"},
	{"Brian Mast", models.ChamberHouse, models.PartyRepublican, "FL"},
	{"French Hill", models.ChamberHouse, models.PartyRepublican, "AR"},
	{"Mark Green", models.ChamberHouse, models.PartyRepublican, "TN"},
	{"Kevin Hern", models.ChamberHouse, models.PartyRepublican, "OK"},
	{"Michael Guest", models.ChamberHouse, models.PartyRepublican, "MS"},
	{"Roger Williams", models.ChamberHouse, models.PartyRepublican, "TX"},
	{"Austin Scott", models.ChamberHouse, models.PartyRepublican, "GA"},
	{"John Curtis", models.ChamberHouse, models.PartyRepublican, "UT"},
	{"John Rutherford", models.ChamberHouse, models.PartyRepublican, "FL"},
	{"Michael Waltz", models.ChamberHouse, models.PartyRepublican, "FL"},
	{"Gary Palmer", models.ChamberHouse, models.PartyRepublican, "AL"},
	{"Rich McCormick", models.ChamberHouse, models.PartyRepublican, "GA"},
	{"Steve Womack", models.ChamberHouse, models.PartyRepublican, "AR"},
	{"Diana Harshbarger", models.ChamberHouse, models.PartyRepublican, "TN"},
	{"Greg Steube", models.ChamberHouse, models.PartyRepublican, "FL"},
	{"Bill Huizenga", models.ChamberHouse, models.PartyRepublican, "MI"},
	{"Mark Kelly", models.ChamberSenate, models.PartyDemocrat, "AZ"},
	{"Gary Peters", models.ChamberSenate, models.PartyDemocrat, "MI"},
	{"Mark Warner", models.ChamberSenate, models.PartyDemocrat, "VA"},
	{"Sheldon Whitehouse", models.ChamberSenate, models.PartyDemocrat, "RI"},
	{"Jacky Rosen", models.ChamberSenate, models.PartyDemocrat, "NV"},
	{"Debbie Stabenow", models.ChamberSenate, models.PartyDemocrat, "MI"},
	{"Tom Carper", models.ChamberSenate, models.PartyDemocrat, "DE"},
	{"Tina Smith", models.ChamberSenate, models.PartyDemocrat, "MN"},
	{"Jeanne Shaheen", models.ChamberSenate, models.PartyDemocrat, "NH"},
	{"John Hickenlooper", models.ChamberSenate, models.PartyDemocrat, "CO"},
	{"Tommy Tuberville", models.ChamberSenate, models.PartyRepublican, "AL"},
	{"John Hoeven", models.ChamberSenate, models.PartyRepublican, "ND"},
	{"Roger Wicker", models.ChamberSenate, models.PartyRepublican, "MS"},
	{"Cynthia Lummis", models.ChamberSenate, models.PartyRepublican, "WY"},
	{"Bill Hagerty", models.ChamberSenate, models.PartyRepublican, "TN"},
	{"Markwayne Mullin", models.ChamberSenate, models.PartyRepublican, "OK"},
	{"John Kennedy", models.ChamberSenate, models.PartyRepublican, "LA"},
	{"Pete Ricketts", models.ChamberSenate, models.PartyRepublican, "NE"},
	{"Mike Braun", models.ChamberSenate, models.PartyRepublican, "IN"},
	{"Tim Scott", models.ChamberSenate, models.PartyRepublican, "SC"},
}

var defaultStocks = []Stock{
	{"NVDA", "NVIDIA Corporation", "Tech"},
	{"AAPL", "Apple Inc", "Tech"},
	{"MSFT", "Microsoft Corporation", "Tech"},
	{"GOOGL", "Alphabet Inc Class A", "Tech"},
	{"AMZN", "Amazon.com Inc", "Tech"},
	{"META", "Meta Platforms Inc", "Tech"},
	{"TSLA", "Tesla Inc", "Tech"},
	{"AMD", "Advanced Micro Devices", "Tech"},
	{"CRM", "Salesforce Inc", "Tech"},
	{"AVGO", "Broadcom Inc", "Tech"},
	{"ORCL", "Oracle Corporation", "Tech"},
	{"ADBE", "Adobe Inc", "Tech"},
	{"INTC", "Intel Corporation", "Tech"},
	{"QCOM", "Qualcomm Inc", "Tech"},
	{"NFLX", "Netflix Inc", "Tech"},
	{"JPM", "JPMorgan Chase & Co", "Finance"},
	{"BAC", "Bank of America Corp", "Finance"},
	{"WFC", "Wells Fargo & Co", "Finance"},
	{"GS", "Goldman Sachs Group", "Finance"},
	{"MS", "Morgan Stanley", "Finance"},
	{"BLK", "BlackRock Inc", "Finance"},
	{"C", "Citigroup Inc", "Finance"},
	{"V", "Visa Inc", "Finance"},
	{"MA", "Mastercard Inc", "Finance"},
	{"AXP", "American Express Co", "Finance"},
	{"LMT", "Lockheed Martin Corp", "Defense"},
	{"RTX", "Raytheon Technologies", "Defense"},
	{"NOC", "Northrop Grumman Corp", "Defense"},
	{"GD", "General Dynamics Corp", "Defense"},
	{"BA", "Boeing Company", "Defense"},
	{"LHX", "L3Harris Technologies", "Defense"},
	{"JNJ", "Johnson & Johnson", "Healthcare"},
	{"UNH", "UnitedHealth Group", "Healthcare"},
	{"PFE", "Pfizer Inc", "Healthcare"},
	{"MRK", "Merck & Co Inc", "Healthcare"},
	{"ABBV", "AbbVie Inc", "Healthcare"},
	{"LLY", "Eli Lilly and Co", "Healthcare"},
	{"TMO", "Thermo Fisher Scientific", "Healthcare"},
	{"BMY", "Bristol-Myers Squibb", "Healthcare"},
	{"XOM", "Exxon Mobil Corp", "Energy"},
	{"CVX", "Chevron Corporation", "Energy"},
	{"COP", "ConocoPhillips", "Energy"},
	{"OXY", "Occidental Petroleum", "Energy"},
	{"SLB", "Schlumberger Ltd", "Energy"},
	{"NEE", "NextEra Energy Inc", "Energy"},
	{"DIS", "Walt Disney Co", "Consumer"},
	{"NKE", "Nike Inc", "Consumer"},
	{"SBUX", "Starbucks Corp", "Consumer"},
	{"MCD", "McDonalds Corp", "Consumer"},
	{"KO", "Coca-Cola Co", "Consumer"},
	{"PEP", "PepsiCo Inc", "Consumer"},
	{"WMT", "Walmart Inc", "Consumer"},
	{"COST", "Costco Wholesale Corp", "Consumer"},
	{"HD", "Home Depot Inc", "Consumer"},
	{"TGT", "Target Corporation", "Consumer"},
}

var defaultAmountRanges = []string{
	"$1,001 - $15,000",
	"$15,001 - $50,000",
	"$50,001 - $100,000",
	"$100,001 - $250,000",
	"$250,001 - $500,000",
	"$500,001 - $1,000,000",
	"$1,000,001 - $5,000,000",
	"$5,000,001 - $25,000,000",
}

var defaultNotable = []NotableTrade{
	{Member{"Nancy Pelosi", models.ChamberHouse, models.PartyDemocrat, "CA"}, "NVDA", "NVIDIA Corporation", models.CongressPurchase, "$1,000,001 - $5,000,000", "2024-11-15", "2024-12-01"},
	{Member{"Nancy Pelosi", models.ChamberHouse, models.PartyDemocrat, "CA"}, "GOOGL", "Alphabet Inc Class A", models.CongressPurchase, "$500,001 - $1,000,000", "2024-11-10", "2024-11-28"},
	{Member{"Nancy Pelosi", models.ChamberHouse, models.PartyDemocrat, "CA"}, "AAPL", "Apple Inc", models.CongressPurchase, "$1,000,001 - $5,000,000", "2024-10-20", "2024-11-05"},
	{Member{"Nancy Pelosi", models.ChamberHouse, models.PartyDemocrat, "CA"}, "TSLA", "Tesla Inc", models.CongressSale, "$500,001 - $1,000,000", "2024-09-15", "2024-10-01"},
	{Member{"Tommy Tuberville", models.ChamberSenate, models.PartyRepublican, "AL"}, "MSFT", "Microsoft Corporation", models.CongressSale, "$50,001 - $100,000", "2024-11-20", "2024-12-05"},
	{Member{"Tommy Tuberville", models.ChamberSenate, models.PartyRepublican, "AL"}, "NVDA", "NVIDIA Corporation", models.CongressPurchase, "$250,001 - $500,000", "2024-10-05", "2024-10-25"},
	{Member{"Dan Crenshaw", models.ChamberHouse, models.PartyRepublican, "TX"}, "AAPL", "Apple Inc", models.CongressPurchase, "$15,001 - $50,000", "2024-11-18", "2024-12-02"},
	{Member{"Michael McCaul", models.ChamberHouse, models.PartyRepublican, "TX"}, "AVGO", "Broadcom Inc", models.CongressPurchase, "$250,001 - $500,000", "2024-11-16", "2024-12-01"},
	{Member{"Mark Warner", models.ChamberSenate, models.PartyDemocrat, "VA"}, "MSFT", "Microsoft Corporation", models.CongressPurchase, "$1,000,001 - $5,000,000", "2024-10-28", "2024-11-15"},
	{Member{"Josh Gottheimer", models.ChamberHouse, models.PartyDemocrat, "NJ"}, "META", "Meta Platforms Inc", models.CongressPurchase, "$100,001 - $250,000", "2024-11-12", "2024-11-30"},
}
