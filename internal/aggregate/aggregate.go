// Package aggregate derives dashboard and report figures from a snapshot of
// products and transactions. Every function is pure: it never mutates its
// inputs and never touches the store, so calling it twice over the same
// snapshot yields identical results.
package aggregate

import (
	"sort"
	"time"

	"go-inventory-ledger/internal/model"
)

// DayMovement is the total IN and OUT quantity for one calendar day.
type DayMovement struct {
	Date     string `json:"date"` // YYYY-MM-DD
	StockIn  int    `json:"stock_in"`
	StockOut int    `json:"stock_out"`
}

// CategoryCount is the number of active products in one category.
type CategoryCount struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
}

// TotalActiveProducts counts products with the active flag set.
func TotalActiveProducts(products []model.Product) int {
	count := 0
	for _, p := range products {
		if p.IsActive {
			count++
		}
	}
	return count
}

// TotalStockValue sums price * quantity over active products.
func TotalStockValue(products []model.Product) int64 {
	var total int64
	for _, p := range products {
		if p.IsActive {
			total += p.Price * int64(p.Quantity)
		}
	}
	return total
}

// LowStock returns active products at or below their reorder level. The set
// includes out-of-stock products; subtract OutOfStock for the strict set.
func LowStock(products []model.Product) []model.Product {
	var out []model.Product
	for _, p := range products {
		if p.IsActive && p.Quantity <= p.ReorderLevel {
			out = append(out, p)
		}
	}
	return out
}

// OutOfStock returns active products with zero quantity.
func OutOfStock(products []model.Product) []model.Product {
	var out []model.Product
	for _, p := range products {
		if p.IsActive && p.Quantity == 0 {
			out = append(out, p)
		}
	}
	return out
}

// DailyMovementTotals sums IN and OUT quantities for transactions whose
// timestamp falls on the given calendar day.
func DailyMovementTotals(transactions []model.Transaction, day time.Time) (stockIn, stockOut int) {
	dayStart := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	dayEnd := dayStart.AddDate(0, 0, 1)
	for _, tx := range transactions {
		if tx.TransactionDate.Before(dayStart) || !tx.TransactionDate.Before(dayEnd) {
			continue
		}
		switch tx.Type {
		case model.TxIn:
			stockIn += tx.Quantity
		case model.TxOut:
			stockOut += tx.Quantity
		}
	}
	return stockIn, stockOut
}

// SevenDayTrend reports movement totals for the trailing 7 calendar days,
// oldest first, today last. Days with no transactions report zeros.
func SevenDayTrend(transactions []model.Transaction, now time.Time) []DayMovement {
	trend := make([]DayMovement, 0, 7)
	for offset := 6; offset >= 0; offset-- {
		day := now.AddDate(0, 0, -offset)
		in, out := DailyMovementTotals(transactions, day)
		trend = append(trend, DayMovement{
			Date:     day.Format("2006-01-02"),
			StockIn:  in,
			StockOut: out,
		})
	}
	return trend
}

// MovementsByDay groups movement totals by calendar day, ascending. Only
// days with at least one transaction appear; use SevenDayTrend when a
// zero-filled fixed window is wanted.
func MovementsByDay(transactions []model.Transaction) []DayMovement {
	index := make(map[string]int)
	var out []DayMovement
	for _, tx := range transactions {
		date := tx.TransactionDate.Format("2006-01-02")
		i, ok := index[date]
		if !ok {
			index[date] = len(out)
			i = len(out)
			out = append(out, DayMovement{Date: date})
		}
		switch tx.Type {
		case model.TxIn:
			out[i].StockIn += tx.Quantity
		case model.TxOut:
			out[i].StockOut += tx.Quantity
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}

// TopProductsByValue ranks active products descending by price * quantity,
// ties broken by input order, truncated to n.
func TopProductsByValue(products []model.Product, n int) []model.Product {
	var active []model.Product
	for _, p := range products {
		if p.IsActive {
			active = append(active, p)
		}
	}
	sort.SliceStable(active, func(i, j int) bool {
		return active[i].Price*int64(active[i].Quantity) > active[j].Price*int64(active[j].Quantity)
	})
	if n >= 0 && len(active) > n {
		active = active[:n]
	}
	return active
}

// CategoryDistribution counts active products per category, in first-seen
// category order.
func CategoryDistribution(products []model.Product) []CategoryCount {
	index := make(map[string]int)
	var out []CategoryCount
	for _, p := range products {
		if !p.IsActive {
			continue
		}
		if i, ok := index[p.Category]; ok {
			out[i].Count++
			continue
		}
		index[p.Category] = len(out)
		out = append(out, CategoryCount{Category: p.Category, Count: 1})
	}
	return out
}
