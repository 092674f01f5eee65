package output

// DefaultAssumptions lists the modelling simplifications rendered in detailed
// outputs. They describe the built-in rule tables; a custom rule book may
// change the figures.
var DefaultAssumptions = []string{
	"Income is annualised from a single monthly figure (x12)",
	"Betting stakes: KES 2,000/month occasional, KES 10,000/month frequent",
	"Freelancer digital asset turnover: 10% of gross income when not declared",
	"Per diem benefit: tax on the excess over the 2024 limit at a flat 30%",
	"Loss carry-forward: at most 75% of 2025 profit, no multi-year ledger",
	"PAYE bands are the same in both years; only the relief ordering changes",
}
