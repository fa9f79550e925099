package output

// DefaultAssumptions lists the modeling simplifications shown in detailed reports
var DefaultAssumptions = []string{
	"Returns are adjusted by risk tolerance: conservative -1.5%, moderate 0%, aggressive +1%, floored at 1%",
	"Contributions are added at the end of each year and grow at the contribution increase rate",
	"Taxes are a flat rate applied to portfolio withdrawals only",
	"Social Security and pension income rise with inflation in retirement",
	"Monte Carlo success means reaching 25x current savings by retirement",
	"Risk metrics use a 15% market volatility benchmark and a normal 95% VaR",
}
